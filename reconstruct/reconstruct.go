// Package reconstruct rebuilds file content from a base blob and a parsed
// diff under a partial line selection. It is the pure core of partial change
// moving: given the hunks between two revisions of a file and a set of
// selected target lines, it produces the content that contains exactly the
// selected changes (or exactly the unselected ones, when inverted).
package reconstruct

import (
	"strings"

	jjview "github.com/brychanrobot/jjview"
)

// Request carries everything a reconstruction needs. Selections are
// 0-indexed inclusive ranges in target-content coordinates. When Inverse is
// false the output contains the selected changes applied to Base; when true
// it contains everything except the selected changes.
type Request struct {
	Base       string
	Hunks      []jjview.Hunk
	Selections []jjview.LineRange
	Inverse    bool
}

// Reconstruct computes the content described by the request. It is total
// over well-formed requests: an empty selection returns Base unchanged (or
// the full target when inverted), and hunks pointing past the end of Base
// degrade by treating the exhausted base lines as absent. The output's
// trailing-newline presence matches Base's.
func Reconstruct(req Request) string {
	base, trailingNL := splitLines(req.Base)
	sel := jjview.NormalizeRanges(req.Selections)

	out := make([]string, 0, len(base))
	cursor := 0 // next unconsumed base line, 0-indexed

	for _, h := range req.Hunks {
		// Base content before the hunk is outside any change and is copied
		// verbatim; selection logic never sees it.
		hunkStart := h.OldStart - 1
		for cursor < hunkStart && cursor < len(base) {
			out = append(out, base[cursor])
			cursor++
		}

		target := h.NewStart - 1 // target-coordinate counter, 0-indexed
		lines := h.Lines
		for i := 0; i < len(lines); {
			if lines[i].Type == jjview.LineContext {
				if cursor < len(base) {
					out = append(out, base[cursor])
					cursor++
				}
				target++
				i++
				continue
			}

			// Maximal contiguous non-context block.
			j := i
			deletions, additions := 0, 0
			for j < len(lines) && lines[j].Type != jjview.LineContext {
				if lines[j].Type == jjview.LineDeleted {
					deletions++
				} else {
					additions++
				}
				j++
			}

			if deletions == 0 {
				// Pure insertions have no competing old content, so each
				// added line is an independent unit of selection.
				for k := i; k < j; k++ {
					if jjview.RangesContain(sel, target) != req.Inverse {
						out = append(out, lines[k].Content)
					}
					target++
				}
				i = j
				continue
			}

			// A block with deletions is atomic: its old and new lines occupy
			// the same conceptual position and are mutually exclusive
			// outcomes. A pure deletion occupies a single target index.
			spanLen := additions
			if spanLen == 0 {
				spanLen = 1
			}
			span := jjview.LineRange{Start: target, End: target + spanLen - 1}
			if jjview.RangesIntersect(sel, span) != req.Inverse {
				for k := i; k < j; k++ {
					if lines[k].Type == jjview.LineAdded {
						out = append(out, lines[k].Content)
					}
				}
				// Consume the replaced base lines without emitting them.
				cursor += deletions
				if cursor > len(base) {
					cursor = len(base)
				}
			} else {
				for n := 0; n < deletions && cursor < len(base); n++ {
					out = append(out, base[cursor])
					cursor++
				}
			}
			target += additions
			i = j
		}
	}

	for cursor < len(base) {
		out = append(out, base[cursor])
		cursor++
	}

	// A base of empty lines joins to "", but its newline still belongs to
	// the output: "\n" must reconstruct to "\n", not "".
	s := strings.Join(out, "\n")
	if trailingNL {
		s += "\n"
	}
	return s
}

// Apply returns the full target content the hunks describe, i.e. a
// reconstruction with every change selected.
func Apply(base string, hunks []jjview.Hunk) string {
	return Reconstruct(Request{
		Base:       base,
		Hunks:      hunks,
		Selections: nil,
		Inverse:    true,
	})
}

// splitLines splits content into lines without terminators and reports
// whether it ended with a newline. Empty content yields no lines.
func splitLines(content string) ([]string, bool) {
	if content == "" {
		return nil, false
	}
	trailingNL := strings.HasSuffix(content, "\n")
	if trailingNL {
		content = content[:len(content)-1]
	}
	return strings.Split(content, "\n"), trailingNL
}
