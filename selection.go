package jjview

import (
	"context"
	"sort"
)

// LineRange is a span of selected lines, 0-indexed and inclusive on both
// ends. Coordinates are target-content line numbers: the coordinate space of
// the content that contains the selection, not necessarily the final output.
type LineRange struct {
	Start int
	End   int
}

// Contains reports whether the line index falls inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line <= r.End
}

// Intersects reports whether two ranges share at least one line index.
// The test is inclusive on both ends: touching a single boundary index
// counts as intersecting.
func (r LineRange) Intersects(other LineRange) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// NormalizeRanges sorts ranges, drops inverted ones (End < Start) and merges
// overlapping or adjacent spans. The result covers exactly the union of the
// input's line indices.
func NormalizeRanges(ranges []LineRange) []LineRange {
	valid := make([]LineRange, 0, len(ranges))
	for _, r := range ranges {
		if r.End >= r.Start {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	sort.Slice(valid, func(i, j int) bool {
		if valid[i].Start != valid[j].Start {
			return valid[i].Start < valid[j].Start
		}
		return valid[i].End < valid[j].End
	})
	merged := valid[:1]
	for _, r := range valid[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End+1 {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// RangesContain reports whether any of the (already normalized or not)
// ranges contains the line index.
func RangesContain(ranges []LineRange, line int) bool {
	for _, r := range ranges {
		if r.Contains(line) {
			return true
		}
	}
	return false
}

// RangesIntersect reports whether any range intersects the given span.
func RangesIntersect(ranges []LineRange, span LineRange) bool {
	for _, r := range ranges {
		if r.Intersects(span) {
			return true
		}
	}
	return false
}

// SelectionRequest describes the content a user picks lines from.
type SelectionRequest struct {
	// Path is the file the hunks belong to, shown for context.
	Path string
	// Base is the content the hunks apply to.
	Base string
	// Hunks describe the change being partitioned, in base order.
	Hunks []Hunk
}

// Selector captures a line selection from the user. Selection happens
// entirely before any revision-graph mutation begins; the returned ranges are
// in target-content coordinates. ok is false when the user cancelled.
type Selector interface {
	Select(ctx context.Context, req SelectionRequest) (ranges []LineRange, ok bool, err error)
}
