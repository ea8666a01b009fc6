package jsonl_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	jjview "github.com/brychanrobot/jjview"
	"github.com/brychanrobot/jjview/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournal(t *testing.T) {
	t.Parallel()

	t.Run("round-trips records", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "journal.jsonl")
		journal := jsonl.NewJournal(path)

		first := jsonl.Record{
			Time:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
			Op:       "to-ancestor",
			Path:     "main.go",
			Source:   "src",
			Ancestor: "anc",
			Ranges:   []jjview.LineRange{{Start: 1, End: 3}},
		}
		second := jsonl.Record{
			Time:       time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
			Op:         "to-descendant",
			Path:       "util.go",
			Ancestor:   "anc",
			Descendant: "desc",
			Ranges:     []jjview.LineRange{{Start: 0, End: 0}, {Start: 9, End: 12}},
		}
		require.NoError(t, journal.Append(first))
		require.NoError(t, journal.Append(second))

		records, err := journal.Load()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, first, records[0])
		assert.Equal(t, second, records[1])
	})

	t.Run("missing file is an empty journal", func(t *testing.T) {
		t.Parallel()

		journal := jsonl.NewJournal(filepath.Join(t.TempDir(), "nope.jsonl"))
		records, err := journal.Load()

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "deep", "state", "journal.jsonl")
		journal := jsonl.NewJournal(path)

		require.NoError(t, journal.Append(jsonl.Record{Op: "to-ancestor"}))
		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("returns error with line number for malformed line", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.jsonl")
		content := `{"op":"to-ancestor","path":"a.go","ranges":[]}
not valid json
{"op":"to-descendant","path":"b.go","ranges":[]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := jsonl.NewJournal(path).Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("skips blank lines", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "blanks.jsonl")
		content := `{"op":"to-ancestor","path":"a.go","ranges":[]}

{"op":"to-descendant","path":"b.go","ranges":[]}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		records, err := jsonl.NewJournal(path).Load()

		require.NoError(t, err)
		assert.Len(t, records, 2)
	})
}
