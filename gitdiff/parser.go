// Package gitdiff parses unified diffs using the go-gitdiff library.
package gitdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	jjview "github.com/brychanrobot/jjview"
)

// Compile-time interface verification.
var _ jjview.Parser = (*Parser)(nil)

// Parser parses unified-diff text into domain types.
type Parser struct{}

// NewParser creates a new go-gitdiff-based parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads diff content and returns the parsed result. Only the hunk
// headers and the +/-/space line prefixes are semantically required; git
// extended headers are accepted and used to classify the file operation.
func (p *Parser) Parse(r io.Reader) (*jjview.Diff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	diff := &jjview.Diff{Files: make([]jjview.FileDiff, 0, len(files))}
	for _, f := range files {
		diff.Files = append(diff.Files, convertFile(f))
	}
	return diff, nil
}

func convertFile(f *gitdiff.File) jjview.FileDiff {
	// go-gitdiff strips the conventional a/ and b/ prefixes only when a
	// "diff --git" header names the file; plain unified diffs keep them.
	fd := jjview.FileDiff{
		OldPath:   strings.TrimPrefix(f.OldName, "a/"),
		NewPath:   strings.TrimPrefix(f.NewName, "b/"),
		Operation: fileOp(f),
		IsBinary:  f.IsBinary,
	}
	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, convertFragment(frag))
	}
	return fd
}

func fileOp(f *gitdiff.File) jjview.FileOp {
	switch {
	case f.IsNew:
		return jjview.FileAdded
	case f.IsDelete:
		return jjview.FileDeleted
	case f.IsRename:
		return jjview.FileRenamed
	case f.IsCopy:
		return jjview.FileCopied
	default:
		return jjview.FileModified
	}
}

func convertFragment(frag *gitdiff.TextFragment) jjview.Hunk {
	h := jjview.Hunk{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
		Lines:    make([]jjview.Line, 0, len(frag.Lines)),
	}
	for _, l := range frag.Lines {
		h.Lines = append(h.Lines, convertLine(l))
	}
	return h
}

func convertLine(l gitdiff.Line) jjview.Line {
	var typ jjview.LineType
	switch l.Op {
	case gitdiff.OpAdd:
		typ = jjview.LineAdded
	case gitdiff.OpDelete:
		typ = jjview.LineDeleted
	default:
		typ = jjview.LineContext
	}
	// go-gitdiff keeps the line terminator; a missing one is the
	// "\ No newline at end of file" case.
	content, hadNL := strings.CutSuffix(l.Line, "\n")
	return jjview.Line{
		Type:      typ,
		Content:   content,
		NoNewline: !hadNL,
	}
}
