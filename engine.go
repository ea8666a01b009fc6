package jjview

import "context"

// Engine is the version engine adapter. The core uses it to read file content
// and diffs at revisions and to request structural operations; it never
// mutates graph topology itself. The jj package implements it by shelling out
// to the Jujutsu CLI, but nothing in the core assumes that.
type Engine interface {
	// ContentAt returns the full content of path at rev.
	// Returns ErrFileNotFound if the path does not exist there.
	ContentAt(ctx context.Context, rev Rev, path string) (string, error)

	// DiffText returns unified-diff text for path between two revisions.
	DiffText(ctx context.Context, from, to Rev, path string) (string, error)

	// Fold absorbs from's changes for path into into. If override is
	// non-nil, into's final content for path is forced to that value, and
	// from is left to the engine's descendant rebase, which re-derives it
	// with whatever changes the override did not absorb. Descendants of
	// into are rebased by the engine as a side effect.
	Fold(ctx context.Context, from, into Rev, path string, override *string) error

	// NewScratch creates a disposable revision on top of parent, carrying no
	// changes of its own, and returns its identifier.
	NewScratch(ctx context.Context, parent Rev) (Rev, error)

	// Abandon discards a revision. Used to clean up a scratch revision when
	// the fold that would have retired it fails.
	Abandon(ctx context.Context, rev Rev) error

	// CreateAnchor attaches a movable, user-invisible label to rev. The
	// label follows the revision through rebases, which makes it a stable
	// handle across folds that renumber descendants.
	CreateAnchor(ctx context.Context, name string, rev Rev) error

	// DeleteAnchor removes the label. Deleting an unknown anchor is an error.
	DeleteAnchor(ctx context.Context, name string) error

	// SetWorking points the working copy at a revision or anchor name.
	// Subsequent RestoreFile calls target that revision.
	SetWorking(ctx context.Context, ref string) error

	// RestoreFile overwrites the working copy's file at path with the
	// content it has at the given revision or anchor.
	RestoreFile(ctx context.Context, path string, from string) error
}
