package main_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jjview "github.com/brychanrobot/jjview"
	main "github.com/brychanrobot/jjview/cmd/jjview"
	"github.com/brychanrobot/jjview/gitdiff"
	"github.com/brychanrobot/jjview/jsonl"
	"github.com/brychanrobot/jjview/mock"
	"github.com/brychanrobot/jjview/move"
)

const insertDiff = `diff --git a/f.txt b/f.txt
index 0000000..1111111 100644
--- a/f.txt
+++ b/f.txt
@@ -1,2 +1,3 @@
 a
+x
 b
`

func newEngine(base, diffText string) *mock.Engine {
	return &mock.Engine{
		ContentAtFn: func(_ context.Context, _ jjview.Rev, _ string) (string, error) {
			return base, nil
		},
		DiffTextFn: func(_ context.Context, _, _ jjview.Rev, _ string) (string, error) {
			return diffText, nil
		},
	}
}

func TestApp_Run_MovesSelectedLinesToAncestor(t *testing.T) {
	t.Parallel()

	engine := newEngine("a\nb\n", insertDiff)
	var foldFrom, foldInto jjview.Rev
	var foldOverride *string
	engine.FoldFn = func(_ context.Context, from, into jjview.Rev, path string, override *string) error {
		foldFrom, foldInto = from, into
		foldOverride = override
		require.Equal(t, "f.txt", path)
		return nil
	}

	out := &bytes.Buffer{}
	journal := jsonl.NewJournal(filepath.Join(t.TempDir(), "journal.jsonl"))
	app := &main.App{
		Engine:  engine,
		Parser:  gitdiff.NewParser(),
		Journal: journal,
		Queue:   &move.Queue{},
		Out:     out,
	}

	err := app.Run(context.Background(), main.Options{
		Path:      "f.txt",
		Direction: "ancestor",
		Lines:     "1",
	})
	require.NoError(t, err)

	assert.Equal(t, jjview.Rev("@"), foldFrom)
	assert.Equal(t, jjview.Rev("@-"), foldInto)
	require.NotNil(t, foldOverride)
	assert.Equal(t, "a\nx\nb\n", *foldOverride)
	assert.Contains(t, out.String(), "moved 1 range(s)")

	records, err := journal.Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "to-ancestor", records[0].Op)
	assert.Equal(t, "f.txt", records[0].Path)
	assert.Equal(t, "@", records[0].Source)
	assert.Equal(t, "@-", records[0].Ancestor)
	assert.Equal(t, []jjview.LineRange{{Start: 1, End: 1}}, records[0].Ranges)
}

func TestApp_Run_InteractiveSelectionReachesSelector(t *testing.T) {
	t.Parallel()

	engine := newEngine("a\nb\n", insertDiff)
	folded := false
	engine.FoldFn = func(_ context.Context, _, _ jjview.Rev, _ string, _ *string) error {
		folded = true
		return nil
	}

	var captured jjview.SelectionRequest
	app := &main.App{
		Engine: engine,
		Parser: gitdiff.NewParser(),
		Selector: &mock.Selector{
			SelectFn: func(_ context.Context, req jjview.SelectionRequest) ([]jjview.LineRange, bool, error) {
				captured = req
				return []jjview.LineRange{{Start: 1, End: 1}}, true, nil
			},
		},
		Queue: &move.Queue{},
		Out:   &bytes.Buffer{},
	}

	err := app.Run(context.Background(), main.Options{Path: "f.txt", Direction: "ancestor"})
	require.NoError(t, err)

	assert.Equal(t, "f.txt", captured.Path)
	assert.Equal(t, "a\nb\n", captured.Base)
	require.Len(t, captured.Hunks, 1)
	assert.True(t, folded)
}

func TestApp_Run_CancelledSelection(t *testing.T) {
	t.Parallel()

	engine := newEngine("a\nb\n", insertDiff)
	engine.FoldFn = func(_ context.Context, _, _ jjview.Rev, _ string, _ *string) error {
		t.Error("fold should not run after a cancelled selection")
		return nil
	}

	out := &bytes.Buffer{}
	app := &main.App{
		Engine: engine,
		Parser: gitdiff.NewParser(),
		Selector: &mock.Selector{
			SelectFn: func(_ context.Context, _ jjview.SelectionRequest) ([]jjview.LineRange, bool, error) {
				return nil, false, nil
			},
		},
		Queue: &move.Queue{},
		Out:   out,
	}

	err := app.Run(context.Background(), main.Options{Path: "f.txt", Direction: "ancestor"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "cancelled")
}

func TestApp_Run_NoChanges(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	app := &main.App{
		Engine: newEngine("a\nb\n", ""),
		Parser: gitdiff.NewParser(),
		Selector: &mock.Selector{
			SelectFn: func(_ context.Context, _ jjview.SelectionRequest) ([]jjview.LineRange, bool, error) {
				t.Error("selector should not run without changes")
				return nil, false, nil
			},
		},
		Queue: &move.Queue{},
		Out:   out,
	}

	err := app.Run(context.Background(), main.Options{Path: "f.txt", Direction: "ancestor"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "no changes")
}

func TestApp_Run_DescendantDirectionUsesGrandparentDiff(t *testing.T) {
	t.Parallel()

	var diffFrom, diffTo jjview.Rev
	engine := newEngine("a\nb\n", insertDiff)
	engine.DiffTextFn = func(_ context.Context, from, to jjview.Rev, _ string) (string, error) {
		diffFrom, diffTo = from, to
		return insertDiff, nil
	}
	engine.FoldFn = func(_ context.Context, _, _ jjview.Rev, _ string, _ *string) error { return nil }
	engine.NewScratchFn = func(_ context.Context, parent jjview.Rev) (jjview.Rev, error) { return "scratch", nil }
	engine.CreateAnchorFn = func(_ context.Context, _ string, _ jjview.Rev) error { return nil }
	engine.DeleteAnchorFn = func(_ context.Context, _ string) error { return nil }
	engine.SetWorkingFn = func(_ context.Context, _ string) error { return nil }
	engine.RestoreFileFn = func(_ context.Context, _, _ string) error { return nil }
	engine.AbandonFn = func(_ context.Context, _ jjview.Rev) error { return nil }

	app := &main.App{
		Engine: engine,
		Parser: gitdiff.NewParser(),
		Queue:  &move.Queue{},
		Out:    &bytes.Buffer{},
	}

	err := app.Run(context.Background(), main.Options{
		Path:      "f.txt",
		Direction: "descendant",
		Lines:     "1",
	})
	require.NoError(t, err)

	// The selection view must show the grandparent..parent diff.
	assert.Equal(t, jjview.Rev("@--"), diffFrom)
	assert.Equal(t, jjview.Rev("@-"), diffTo)
}

func TestApp_Run_BadDirection(t *testing.T) {
	t.Parallel()

	app := &main.App{Out: &bytes.Buffer{}}
	err := app.Run(context.Background(), main.Options{Path: "f.txt", Direction: "sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown direction")
}

func TestApp_Run_MissingPath(t *testing.T) {
	t.Parallel()

	app := &main.App{Out: &bytes.Buffer{}}
	err := app.Run(context.Background(), main.Options{Direction: "ancestor"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file path is required")
}

func TestApp_Run_BadLineSpec(t *testing.T) {
	t.Parallel()

	engine := newEngine("a\nb\n", insertDiff)
	engine.FoldFn = func(_ context.Context, _, _ jjview.Rev, _ string, _ *string) error {
		t.Error("fold should not run with an invalid line spec")
		return nil
	}

	app := &main.App{
		Engine: engine,
		Parser: gitdiff.NewParser(),
		Queue:  &move.Queue{},
		Out:    &bytes.Buffer{},
	}

	for _, spec := range []string{"abc", "3-1", "-2", ","} {
		err := app.Run(context.Background(), main.Options{
			Path:      "f.txt",
			Direction: "ancestor",
			Lines:     spec,
		})
		require.Error(t, err, "spec %q", spec)
	}
}

func TestApp_Run_FoldErrorSurfaces(t *testing.T) {
	t.Parallel()

	engine := newEngine("a\nb\n", insertDiff)
	engine.FoldFn = func(_ context.Context, _, _ jjview.Rev, _ string, _ *string) error {
		return errors.New("immutable commit")
	}

	app := &main.App{
		Engine: engine,
		Parser: gitdiff.NewParser(),
		Queue:  &move.Queue{},
		Out:    &bytes.Buffer{},
	}

	err := app.Run(context.Background(), main.Options{
		Path:      "f.txt",
		Direction: "ancestor",
		Lines:     "1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "immutable commit")
}
