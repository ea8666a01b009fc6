// Package mock provides hand-written test doubles for the root interfaces.
// Each mock exposes function fields; unset fields panic, which keeps tests
// honest about the calls they expect.
package mock

import (
	"context"
	"io"

	jjview "github.com/brychanrobot/jjview"
)

// Compile-time interface verification.
var (
	_ jjview.Engine   = (*Engine)(nil)
	_ jjview.Parser   = (*Parser)(nil)
	_ jjview.Differ   = (*Differ)(nil)
	_ jjview.Selector = (*Selector)(nil)
)

// Engine is a mock jjview.Engine.
type Engine struct {
	ContentAtFn    func(ctx context.Context, rev jjview.Rev, path string) (string, error)
	DiffTextFn     func(ctx context.Context, from, to jjview.Rev, path string) (string, error)
	FoldFn         func(ctx context.Context, from, into jjview.Rev, path string, override *string) error
	NewScratchFn   func(ctx context.Context, parent jjview.Rev) (jjview.Rev, error)
	AbandonFn      func(ctx context.Context, rev jjview.Rev) error
	CreateAnchorFn func(ctx context.Context, name string, rev jjview.Rev) error
	DeleteAnchorFn func(ctx context.Context, name string) error
	SetWorkingFn   func(ctx context.Context, ref string) error
	RestoreFileFn  func(ctx context.Context, path string, from string) error
}

func (e *Engine) ContentAt(ctx context.Context, rev jjview.Rev, path string) (string, error) {
	return e.ContentAtFn(ctx, rev, path)
}

func (e *Engine) DiffText(ctx context.Context, from, to jjview.Rev, path string) (string, error) {
	return e.DiffTextFn(ctx, from, to, path)
}

func (e *Engine) Fold(ctx context.Context, from, into jjview.Rev, path string, override *string) error {
	return e.FoldFn(ctx, from, into, path, override)
}

func (e *Engine) NewScratch(ctx context.Context, parent jjview.Rev) (jjview.Rev, error) {
	return e.NewScratchFn(ctx, parent)
}

func (e *Engine) Abandon(ctx context.Context, rev jjview.Rev) error {
	return e.AbandonFn(ctx, rev)
}

func (e *Engine) CreateAnchor(ctx context.Context, name string, rev jjview.Rev) error {
	return e.CreateAnchorFn(ctx, name, rev)
}

func (e *Engine) DeleteAnchor(ctx context.Context, name string) error {
	return e.DeleteAnchorFn(ctx, name)
}

func (e *Engine) SetWorking(ctx context.Context, ref string) error {
	return e.SetWorkingFn(ctx, ref)
}

func (e *Engine) RestoreFile(ctx context.Context, path string, from string) error {
	return e.RestoreFileFn(ctx, path, from)
}

// Parser is a mock jjview.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (*jjview.Diff, error)
}

func (p *Parser) Parse(r io.Reader) (*jjview.Diff, error) {
	return p.ParseFn(r)
}

// Differ is a mock jjview.Differ.
type Differ struct {
	UnifiedFn func(aName, bName, a, b string) (string, error)
}

func (d *Differ) Unified(aName, bName, a, b string) (string, error) {
	return d.UnifiedFn(aName, bName, a, b)
}

// Selector is a mock jjview.Selector.
type Selector struct {
	SelectFn func(ctx context.Context, req jjview.SelectionRequest) ([]jjview.LineRange, bool, error)
}

func (s *Selector) Select(ctx context.Context, req jjview.SelectionRequest) ([]jjview.LineRange, bool, error) {
	return s.SelectFn(ctx, req)
}
