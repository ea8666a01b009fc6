// Package bubbletea implements the interactive line selector as a terminal
// UI. Selection completes before any revision-graph mutation starts; the
// selector's only output is a set of target-coordinate line ranges.
package bubbletea

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	jjview "github.com/brychanrobot/jjview"
	"github.com/brychanrobot/jjview/reconstruct"
)

// Compile-time interface verification.
var _ jjview.Selector = (*Selector)(nil)

// Selector runs the selection TUI and reports the chosen ranges.
type Selector struct {
	modelOpts []ModelOption
	differ    jjview.Differ
	tokenizer jjview.Tokenizer
	detector  jjview.LanguageDetector
	input     io.Reader
	output    io.Writer
}

// SelectorOption configures a Selector.
type SelectorOption func(*Selector)

// WithModelOptions passes options through to the underlying model.
func WithModelOptions(opts ...ModelOption) SelectorOption {
	return func(s *Selector) { s.modelOpts = append(s.modelOpts, opts...) }
}

// WithDiffer enables the copyable diff preview of the pending partition.
func WithDiffer(d jjview.Differ) SelectorOption {
	return func(s *Selector) { s.differ = d }
}

// WithHighlighting enables syntax highlighting for languages the detector
// recognizes.
func WithHighlighting(tok jjview.Tokenizer, det jjview.LanguageDetector) SelectorOption {
	return func(s *Selector) {
		s.tokenizer = tok
		s.detector = det
	}
}

// WithInput overrides the program's input stream. Used in tests.
func WithInput(r io.Reader) SelectorOption {
	return func(s *Selector) { s.input = r }
}

// WithOutput overrides the program's output stream. Used in tests.
func WithOutput(w io.Writer) SelectorOption {
	return func(s *Selector) { s.output = w }
}

// NewSelector creates an interactive selector.
func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select displays the request and blocks until the user confirms or cancels.
func (s *Selector) Select(ctx context.Context, req jjview.SelectionRequest) ([]jjview.LineRange, bool, error) {
	opts := s.modelOpts
	if s.differ != nil {
		opts = append(opts, WithPreview(func(sel []jjview.LineRange) string {
			wanted := reconstruct.Reconstruct(reconstruct.Request{
				Base:       req.Base,
				Hunks:      req.Hunks,
				Selections: sel,
			})
			out, err := s.differ.Unified("a/"+req.Path, "b/"+req.Path, req.Base, wanted)
			if err != nil {
				return ""
			}
			return out
		}))
	}
	if s.tokenizer != nil && s.detector != nil {
		if lang := s.detector.DetectFromPath(req.Path); lang != "" {
			opts = append(opts, WithTokenizer(s.tokenizer, lang))
		}
	}
	model := NewModel(req, opts...)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if s.input != nil {
		progOpts = append(progOpts, tea.WithInput(s.input))
	}
	if s.output != nil {
		progOpts = append(progOpts, tea.WithOutput(s.output))
	}

	final, err := tea.NewProgram(model, progOpts...).Run()
	if err != nil {
		return nil, false, fmt.Errorf("run selector: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return nil, false, fmt.Errorf("unexpected final model %T", final)
	}
	if !m.Confirmed() {
		return nil, false, nil
	}
	return m.Ranges(), true, nil
}
