// Package difflib generates unified-diff text with go-difflib. Together with
// the gitdiff parser it turns any pair of content blobs into hunks without
// asking the version engine for a diff.
package difflib

import (
	"fmt"
	"strings"

	jjview "github.com/brychanrobot/jjview"
	"github.com/pmezard/go-difflib/difflib"
)

// defaultContext is the number of context lines around each hunk.
const defaultContext = 3

// Compile-time interface verification.
var _ jjview.Differ = (*Differ)(nil)

// Differ produces classic unified patches (---/+++ headers, @@ hunks).
type Differ struct {
	context int
}

// NewDiffer creates a differ with the default context width.
func NewDiffer() *Differ {
	return &Differ{context: defaultContext}
}

// Unified returns a unified diff from a to b. An empty string means the
// blobs are identical.
func (d *Differ) Unified(aName, bName, a, b string) (string, error) {
	if a == b {
		return "", nil
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(a),
		B:        splitLinesKeepNL(b),
		FromFile: aName,
		ToFile:   bName,
		Context:  d.context,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("generate diff: %w", err)
	}
	return s, nil
}

// splitLinesKeepNL splits content into lines that keep their newline
// terminators, which difflib needs to produce correct hunks. A final line
// without a newline stays unterminated.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
