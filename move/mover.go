// Package move orchestrates partial change moves between adjacent revisions.
// It sequences reads and writes through the version engine around the pure
// reconstruction step; it owns no revision-graph state of its own.
package move

import (
	"context"
	"errors"
	"fmt"
	"strings"

	jjview "github.com/brychanrobot/jjview"
	"github.com/brychanrobot/jjview/reconstruct"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

// Mover implements the two partial-move operations. Operations are one-shot:
// they either complete with both revisions in the conserved-content state or
// fail with the working copy at its pre-operation revision. They are not safe
// to run concurrently with each other or with outside mutation of the same
// graph; serialize calls through a Queue.
type Mover struct {
	engine jjview.Engine
	parser jjview.Parser
	log    commonlog.Logger
}

// NewMover creates a Mover over the given engine and diff parser.
func NewMover(engine jjview.Engine, parser jjview.Parser) *Mover {
	return &Mover{
		engine: engine,
		parser: parser,
		log:    commonlog.GetLogger("jjview.move"),
	}
}

// MoveToAncestor moves the selected lines of the diff between ancestor and
// source into ancestor. The rest of the diff stays in source, which the
// engine re-derives when the fold rebases it.
func (m *Mover) MoveToAncestor(ctx context.Context, source, ancestor jjview.Rev, path string, selections []jjview.LineRange) error {
	base, hunks, err := m.fetch(ctx, ancestor, source, path)
	if err != nil {
		return err
	}

	wanted := reconstruct.Reconstruct(reconstruct.Request{
		Base:       base,
		Hunks:      hunks,
		Selections: selections,
	})

	m.log.Infof("moving %d selection(s) in %s from %s into %s", len(selections), path, source, ancestor)
	if err := m.engine.Fold(ctx, source, ancestor, path, &wanted); err != nil {
		return fmt.Errorf("fold into ancestor: %w", err)
	}
	return nil
}

// MoveToDescendant moves the selected lines of the diff between grandparent
// and ancestor out of ancestor and into descendant as a local modification.
// Removing content from the ancestor propagates to the descendant when it
// rebases, so the descendant's pre-operation content is restored afterwards
// from its original (now hidden) revision; the net effect only moves the
// split point between the two revisions.
func (m *Mover) MoveToDescendant(ctx context.Context, grandparent, ancestor, descendant jjview.Rev, path string, selections []jjview.LineRange) error {
	base, hunks, err := m.fetch(ctx, grandparent, ancestor, path)
	if err != nil {
		return err
	}

	// The ancestor keeps everything not selected.
	wanted := reconstruct.Reconstruct(reconstruct.Request{
		Base:       base,
		Hunks:      hunks,
		Selections: selections,
		Inverse:    true,
	})

	// The descendant's identifier is not stable across the fold below; the
	// pin follows it through the rebase. The original identifier keeps
	// addressing the pre-operation snapshot.
	pin, err := AcquirePin(ctx, m.engine, descendant)
	if err != nil {
		return err
	}
	defer pin.Release(ctx)

	scratch, err := m.engine.NewScratch(ctx, grandparent)
	if err != nil {
		return fmt.Errorf("create scratch revision: %w", err)
	}

	m.log.Infof("rewriting %s in %s via scratch %s", path, ancestor, scratch)
	foldErr := m.engine.Fold(ctx, scratch, ancestor, path, &wanted)
	// An override fold leaves the scratch in place on every outcome.
	if aerr := m.engine.Abandon(ctx, scratch); aerr != nil {
		m.log.Errorf("failed to abandon scratch %s: %s", scratch, aerr.Error())
	}
	if foldErr != nil {
		return fmt.Errorf("fold scratch into ancestor: %w", foldErr)
	}

	if err := m.engine.SetWorking(ctx, pin.Name()); err != nil {
		return fmt.Errorf("set working revision to descendant: %w", err)
	}
	if err := m.engine.RestoreFile(ctx, path, string(descendant)); err != nil {
		return fmt.Errorf("restore descendant content: %w", err)
	}
	return nil
}

// fetch reads the base content at base and the diff from base to to,
// concurrently, and parses the diff into hunks for path. A path missing at
// base is empty content, which is what moving a newly added file needs.
func (m *Mover) fetch(ctx context.Context, base, to jjview.Rev, path string) (string, []jjview.Hunk, error) {
	var content, diffText string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := m.engine.ContentAt(gctx, base, path)
		if err != nil {
			if errors.Is(err, jjview.ErrFileNotFound) {
				return nil
			}
			return fmt.Errorf("read %s at %s: %w", path, base, err)
		}
		content = c
		return nil
	})
	g.Go(func() error {
		d, err := m.engine.DiffText(gctx, base, to, path)
		if err != nil {
			return fmt.Errorf("diff %s between %s and %s: %w", path, base, to, err)
		}
		diffText = d
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", nil, err
	}

	if strings.TrimSpace(diffText) == "" {
		return content, nil, nil
	}
	diff, err := m.parser.Parse(strings.NewReader(diffText))
	if err != nil {
		return "", nil, fmt.Errorf("parse diff: %w", err)
	}
	return content, diff.FileHunks(path), nil
}
