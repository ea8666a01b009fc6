package jj

import "context"

// SetRunner replaces command execution for tests.
func (e *Engine) SetRunner(run func(ctx context.Context, args ...string) (string, error)) {
	e.run = run
}
