package jjview

// Diff represents a parsed diff containing one or more file changes.
type Diff struct {
	Files []FileDiff
}

// FileHunks returns the hunks for the given path, matching either side of a
// rename. Returns nil if the diff does not touch the path.
func (d *Diff) FileHunks(path string) []Hunk {
	for _, f := range d.Files {
		if f.OldPath == path || f.NewPath == path {
			return f.Hunks
		}
	}
	return nil
}

// FileDiff represents changes to a single file.
type FileDiff struct {
	OldPath   string // empty for new files
	NewPath   string // empty for deleted files
	Operation FileOp
	IsBinary  bool // binary files have no hunks
	Hunks     []Hunk
}

// FileOp represents the type of operation performed on a file.
type FileOp int

// File operation types.
const (
	FileModified FileOp = iota
	FileAdded
	FileDeleted
	FileRenamed
	FileCopied
)

// Hunk represents a contiguous block of changes within a file.
// OldStart and NewStart are 1-indexed line positions, as in @@ headers.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Line represents a single line within a hunk. Content carries no trailing
// newline.
type Line struct {
	Type      LineType
	Content   string
	NoNewline bool // "\ No newline at end of file" marker
}

// LineType represents the type of a diff line.
type LineType int

// Line types.
const (
	LineContext LineType = iota
	LineAdded
	LineDeleted
)
