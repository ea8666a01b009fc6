// Command jjview moves a hunk-level selection of changes between adjacent
// revisions of a Jujutsu repository.
//
// Usage:
//
//	jjview -f path/to/file               # move selected lines from @ into @-
//	jjview -f path/to/file -d descendant # move selected lines from @- into @
//	jjview -f path/to/file --lines 3-5,9 # non-interactive selection
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	jjview "github.com/brychanrobot/jjview"
	"github.com/brychanrobot/jjview/bubbletea"
	"github.com/brychanrobot/jjview/chroma"
	"github.com/brychanrobot/jjview/difflib"
	jjviewfs "github.com/brychanrobot/jjview/fs"
	"github.com/brychanrobot/jjview/gitdiff"
	"github.com/brychanrobot/jjview/jj"
	"github.com/brychanrobot/jjview/jsonl"
	"github.com/brychanrobot/jjview/move"
)

// Directions a selection can move in.
const (
	dirAncestor   = "ancestor"
	dirDescendant = "descendant"
)

// Options are the resolved command-line arguments.
type Options struct {
	Path        string
	Direction   string
	Revision    string // the revision whose relationship to its parent is being repartitioned
	Parent      string // defaults to Revision + "-"
	Grandparent string // defaults to Parent + "-"
	Lines       string // non-interactive selection, e.g. "0-2,5"
}

// App wires the collaborators behind Run. Tests replace them with mocks.
type App struct {
	Engine   jjview.Engine
	Parser   jjview.Parser
	Selector jjview.Selector
	Journal  *jsonl.Journal
	Queue    *move.Queue
	Out      io.Writer
}

// Run executes one move operation.
func (a *App) Run(ctx context.Context, opts Options) error {
	if opts.Path == "" {
		return errors.New("a file path is required")
	}
	if opts.Direction != dirAncestor && opts.Direction != dirDescendant {
		return fmt.Errorf("unknown direction %q", opts.Direction)
	}

	revision := opts.Revision
	if revision == "" {
		revision = "@"
	}
	parent := opts.Parent
	if parent == "" {
		parent = revision + "-"
	}
	grandparent := opts.Grandparent
	if grandparent == "" {
		grandparent = parent + "-"
	}

	// The selection happens against the diff the move will repartition:
	// parent..revision for ancestor moves, grandparent..parent for
	// descendant moves.
	baseRev, targetRev := jjview.Rev(parent), jjview.Rev(revision)
	if opts.Direction == dirDescendant {
		baseRev, targetRev = jjview.Rev(grandparent), jjview.Rev(parent)
	}

	base, hunks, err := a.loadDiff(ctx, baseRev, targetRev, opts.Path)
	if err != nil {
		return err
	}
	if len(hunks) == 0 {
		fmt.Fprintf(a.Out, "no changes to %s between %s and %s\n", opts.Path, baseRev, targetRev)
		return nil
	}

	selections, ok, err := a.selections(ctx, opts, base, hunks)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.Out, "cancelled")
		return nil
	}
	if len(selections) == 0 {
		fmt.Fprintln(a.Out, "nothing selected")
		return nil
	}

	mover := move.NewMover(a.Engine, a.Parser)
	err = a.Queue.Do(ctx, func() error {
		if opts.Direction == dirAncestor {
			return mover.MoveToAncestor(ctx, jjview.Rev(revision), jjview.Rev(parent), opts.Path, selections)
		}
		return mover.MoveToDescendant(ctx, jjview.Rev(grandparent), jjview.Rev(parent), jjview.Rev(revision), opts.Path, selections)
	})
	if err != nil {
		return err
	}

	if a.Journal != nil {
		rec := jsonl.Record{
			Time:     time.Now(),
			Path:     opts.Path,
			Ancestor: parent,
			Ranges:   selections,
		}
		if opts.Direction == dirAncestor {
			rec.Op = "to-ancestor"
			rec.Source = revision
		} else {
			rec.Op = "to-descendant"
			rec.Descendant = revision
		}
		if err := a.Journal.Append(rec); err != nil {
			commonlog.GetLogger("jjview.cmd").Errorf("journal append failed: %s", err.Error())
		}
	}

	fmt.Fprintf(a.Out, "moved %d range(s) of %s to %s\n", len(selections), opts.Path, opts.Direction)
	return nil
}

// loadDiff fetches the base content and parses the diff for the selection
// view. A path missing at the base revision means a newly added file.
func (a *App) loadDiff(ctx context.Context, from, to jjview.Rev, path string) (string, []jjview.Hunk, error) {
	base, err := a.Engine.ContentAt(ctx, from, path)
	if err != nil && !errors.Is(err, jjview.ErrFileNotFound) {
		return "", nil, err
	}
	diffText, err := a.Engine.DiffText(ctx, from, to, path)
	if err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(diffText) == "" {
		return base, nil, nil
	}
	diff, err := a.Parser.Parse(strings.NewReader(diffText))
	if err != nil {
		return "", nil, err
	}
	return base, diff.FileHunks(path), nil
}

func (a *App) selections(ctx context.Context, opts Options, base string, hunks []jjview.Hunk) ([]jjview.LineRange, bool, error) {
	if opts.Lines != "" {
		ranges, err := parseLines(opts.Lines)
		if err != nil {
			return nil, false, err
		}
		return ranges, true, nil
	}
	return a.Selector.Select(ctx, jjview.SelectionRequest{
		Path:  opts.Path,
		Base:  base,
		Hunks: hunks,
	})
}

// parseLines parses a selection like "0-2,5" into normalized ranges.
// Line numbers are 0-indexed target-content coordinates.
func parseLines(spec string) ([]jjview.LineRange, error) {
	var ranges []jjview.LineRange
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		start, end, found := strings.Cut(part, "-")
		s, err := strconv.Atoi(strings.TrimSpace(start))
		if err != nil {
			return nil, fmt.Errorf("bad line spec %q: %w", part, err)
		}
		e := s
		if found {
			e, err = strconv.Atoi(strings.TrimSpace(end))
			if err != nil {
				return nil, fmt.Errorf("bad line spec %q: %w", part, err)
			}
		}
		if s < 0 || e < s {
			return nil, fmt.Errorf("bad line spec %q: inverted or negative range", part)
		}
		ranges = append(ranges, jjview.LineRange{Start: s, End: e})
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("empty line spec %q", spec)
	}
	return jjview.NormalizeRanges(ranges), nil
}

func main() {
	var opts Options
	var repo, journalPath string
	var verbosity int
	var noJournal, plain bool

	pflag.StringVarP(&opts.Path, "file", "f", "", "file to move changes in (required)")
	pflag.StringVarP(&opts.Direction, "direction", "d", dirAncestor, "move direction: ancestor or descendant")
	pflag.StringVarP(&opts.Revision, "revision", "r", "@", "revision whose boundary with its parent moves")
	pflag.StringVar(&opts.Parent, "parent", "", "parent revision (default: revision's parent)")
	pflag.StringVar(&opts.Grandparent, "grandparent", "", "grandparent revision (default: parent's parent)")
	pflag.StringVar(&opts.Lines, "lines", "", "0-indexed target lines to move, e.g. \"0-2,5\" (skips the TUI)")
	pflag.StringVarP(&repo, "repository", "R", ".", "repository root")
	pflag.StringVar(&journalPath, "journal", jjviewfs.DefaultJournalPath(), "operation journal path")
	pflag.BoolVar(&noJournal, "no-journal", false, "disable the operation journal")
	pflag.BoolVar(&plain, "plain", false, "disable syntax highlighting")
	pflag.CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	pflag.Parse()

	commonlog.Configure(verbosity, nil)

	selectorOpts := []bubbletea.SelectorOption{
		bubbletea.WithDiffer(difflib.NewDiffer()),
	}
	if !plain {
		selectorOpts = append(selectorOpts,
			bubbletea.WithHighlighting(chroma.NewTokenizer(), chroma.NewDetector()))
	}

	app := &App{
		Engine:   jj.NewEngine(repo),
		Parser:   gitdiff.NewParser(),
		Selector: bubbletea.NewSelector(selectorOpts...),
		Queue:    &move.Queue{},
		Out:      os.Stdout,
	}
	if !noJournal {
		app.Journal = jsonl.NewJournal(journalPath)
	}

	if err := app.Run(context.Background(), opts); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
