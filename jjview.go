// Package jjview provides domain types for moving hunk-level selections of
// changes between adjacent revisions of a version-controlled file.
//
// The root package holds only types and interfaces. Implementations live in
// subpackages: gitdiff (diff parsing), difflib (diff generation), jj (the
// Jujutsu CLI engine), reconstruct (selective content reconstruction), move
// (the partial-move orchestrator) and bubbletea (the interactive selector).
package jjview

import "errors"

// Rev is an opaque revision identifier in the version engine's DAG.
// The core never inspects its contents; it only passes it back to the engine.
type Rev string

// ErrFileNotFound reports that a path does not exist at a revision.
// Callers moving newly-added files treat this as empty content, not a failure.
var ErrFileNotFound = errors.New("file not found at revision")
