package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/selex/internal/config"
	"github.com/dshills/selex/internal/dispatcher/handler"
	"github.com/dshills/selex/internal/engine/selection"
)

// RegionReport describes one region for output.
type RegionReport struct {
	Index   int    `json:"index" yaml:"index"`
	Primary bool   `json:"primary,omitempty" yaml:"primary,omitempty"`
	Anchor  int    `json:"anchor" yaml:"anchor"`
	Active  int    `json:"active" yaml:"active"`
	Start   string `json:"start" yaml:"start"`
	End     string `json:"end" yaml:"end"`
	Text    string `json:"text" yaml:"text"`
}

// Report describes a session state, optionally with the result that
// produced it.
type Report struct {
	Status  string         `json:"status,omitempty" yaml:"status,omitempty"`
	Message string         `json:"message,omitempty" yaml:"message,omitempty"`
	Pattern string         `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Regions []RegionReport `json:"regions" yaml:"regions"`
}

// NewReport builds a report of the session regions.
func NewReport(s *Session) Report {
	doc := s.Document()
	regions := s.Regions()
	primary := s.PrimaryIndex()

	rep := Report{Regions: make([]RegionReport, len(regions))}
	for i, r := range regions {
		anchor, active := selection.Offsets(doc, r)
		rep.Regions[i] = RegionReport{
			Index:   i,
			Primary: i == primary,
			Anchor:  anchor,
			Active:  active,
			Start:   positionString(r.Start()),
			End:     positionString(r.End()),
			Text:    selection.Text(doc, r),
		}
	}
	return rep
}

// WithResult annotates the report with a command result.
func (r Report) WithResult(res handler.Result) Report {
	r.Status = res.Status.String()
	r.Message = res.Message
	if res.Error != nil {
		r.Message = res.Error.Error()
	}
	r.Pattern = res.Pattern
	return r
}

// WriteReport renders rep in the given format.
func WriteReport(w io.Writer, format string, rep Report) error {
	switch strings.ToLower(format) {
	case "", config.FormatText:
		return writeText(w, rep)
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, rep Report) error {
	if rep.Status != "" {
		line := rep.Status
		if rep.Message != "" {
			line += ": " + rep.Message
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	for _, r := range rep.Regions {
		marker := " "
		if r.Primary {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %d  %d:%d  %s-%s  %q\n",
			marker, r.Index, r.Anchor, r.Active, r.Start, r.End, r.Text); err != nil {
			return err
		}
	}
	return nil
}

func positionString(p selection.Position) string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
