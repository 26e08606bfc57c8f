package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/selex/internal/dispatcher/execctx"
)

// escapeLine is the answer that cancels a prompt, as pressing Escape would.
const escapeLine = "\x1b"

// LinePrompt reads prompt answers line by line. Each attempt is checked with
// the request validator; an invalid answer is reported and the question is
// asked again. End of input, or a line holding only ESC, cancels the prompt.
type LinePrompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompt creates a prompt reading from in and writing questions to
// out. The reader is shared with the REPL so both consume the same stream.
func NewLinePrompt(in *bufio.Reader, out io.Writer) *LinePrompt {
	if out == nil {
		out = io.Discard
	}
	return &LinePrompt{in: in, out: out}
}

// Request asks for a single answer.
func (p *LinePrompt) Request(ctx context.Context, req execctx.PromptRequest) (string, error) {
	text := req.Text
	if text == "" {
		text = execctx.DefaultPromptText
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		fmt.Fprintf(p.out, "%s: ", text)
		line, readErr := p.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return "", readErr
		}
		if readErr != nil && line == "" {
			fmt.Fprintln(p.out)
			return "", execctx.ErrPromptCancelled
		}

		answer := strings.TrimRight(line, "\r\n")
		if answer == escapeLine {
			return "", execctx.ErrPromptCancelled
		}

		if req.Validate != nil {
			if err := req.Validate(answer); err != nil {
				fmt.Fprintf(p.out, "%v\n", err)
				if readErr != nil {
					return "", execctx.ErrPromptCancelled
				}
				continue
			}
		}
		return answer, nil
	}
}
