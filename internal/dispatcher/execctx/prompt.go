package execctx

import "context"

// DefaultPromptText is shown when asking for a selection pattern.
const DefaultPromptText = "Selection RegExp"

// PromptRequest describes one request for a pattern.
type PromptRequest struct {
	// Text is the prompt shown to the user.
	Text string

	// Validate is called on every attempt. A non-nil error rejects the
	// input and the prompt must ask again.
	Validate func(input string) error
}

// Prompt obtains a pattern string from the user.
// Request blocks until the user submits a valid value or cancels, in which
// case it returns ErrPromptCancelled.
type Prompt interface {
	Request(ctx context.Context, req PromptRequest) (string, error)
}

// PromptFunc adapts a function to Prompt.
type PromptFunc func(ctx context.Context, req PromptRequest) (string, error)

// Request calls f.
func (f PromptFunc) Request(ctx context.Context, req PromptRequest) (string, error) {
	return f(ctx, req)
}

// StaticPrompt answers every request with a fixed sequence of inputs.
// Inputs rejected by the validator are skipped; running out of inputs
// cancels. It is used by scripts and non-interactive runs.
type StaticPrompt struct {
	inputs []string
}

// NewStaticPrompt creates a prompt that replays inputs in order.
func NewStaticPrompt(inputs ...string) *StaticPrompt {
	return &StaticPrompt{inputs: inputs}
}

// Request implements Prompt.
func (p *StaticPrompt) Request(ctx context.Context, req PromptRequest) (string, error) {
	for len(p.inputs) > 0 {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		in := p.inputs[0]
		p.inputs = p.inputs[1:]
		if req.Validate != nil && req.Validate(in) != nil {
			continue
		}
		return in, nil
	}
	return "", ErrPromptCancelled
}

// Remaining returns the number of unread inputs.
func (p *StaticPrompt) Remaining() int {
	return len(p.inputs)
}
