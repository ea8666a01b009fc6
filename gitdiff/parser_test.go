package gitdiff_test

import (
	"strings"
	"testing"

	jjview "github.com/brychanrobot/jjview"
	"github.com/brychanrobot/jjview/gitdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("parses a modification with a replacement hunk", func(t *testing.T) {
		t.Parallel()

		diffText := `diff --git a/main.go b/main.go
index 1234567..89abcde 100644
--- a/main.go
+++ b/main.go
@@ -1,4 +1,4 @@
 line1
-line2
+line2mod
 line3
 line4
`
		parser := gitdiff.NewParser()
		diff, err := parser.Parse(strings.NewReader(diffText))

		require.NoError(t, err)
		require.Len(t, diff.Files, 1)
		f := diff.Files[0]
		assert.Equal(t, "main.go", f.OldPath)
		assert.Equal(t, "main.go", f.NewPath)
		assert.Equal(t, jjview.FileModified, f.Operation)

		require.Len(t, f.Hunks, 1)
		h := f.Hunks[0]
		assert.Equal(t, 1, h.OldStart)
		assert.Equal(t, 4, h.OldCount)
		assert.Equal(t, 1, h.NewStart)
		assert.Equal(t, 4, h.NewCount)

		require.Len(t, h.Lines, 5)
		assert.Equal(t, jjview.Line{Type: jjview.LineContext, Content: "line1"}, h.Lines[0])
		assert.Equal(t, jjview.Line{Type: jjview.LineDeleted, Content: "line2"}, h.Lines[1])
		assert.Equal(t, jjview.Line{Type: jjview.LineAdded, Content: "line2mod"}, h.Lines[2])
		assert.Equal(t, jjview.Line{Type: jjview.LineContext, Content: "line3"}, h.Lines[3])
		assert.Equal(t, jjview.Line{Type: jjview.LineContext, Content: "line4"}, h.Lines[4])
	})

	t.Run("parses a new file", func(t *testing.T) {
		t.Parallel()

		diffText := `diff --git a/hello.go b/hello.go
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/hello.go
@@ -0,0 +1,3 @@
+package main
+
+func hello() {}
`
		parser := gitdiff.NewParser()
		diff, err := parser.Parse(strings.NewReader(diffText))

		require.NoError(t, err)
		require.Len(t, diff.Files, 1)
		f := diff.Files[0]
		assert.Equal(t, "hello.go", f.NewPath)
		assert.Equal(t, jjview.FileAdded, f.Operation)
		require.Len(t, f.Hunks, 1)
		assert.Equal(t, 0, f.Hunks[0].OldStart)
		assert.Equal(t, 1, f.Hunks[0].NewStart)
		require.Len(t, f.Hunks[0].Lines, 3)
		for _, l := range f.Hunks[0].Lines {
			assert.Equal(t, jjview.LineAdded, l.Type)
		}
	})

	t.Run("marks a missing trailing newline", func(t *testing.T) {
		t.Parallel()

		diffText := `diff --git a/a.txt b/a.txt
index 1234567..89abcde 100644
--- a/a.txt
+++ b/a.txt
@@ -1 +1 @@
-old
+new
\ No newline at end of file
`
		parser := gitdiff.NewParser()
		diff, err := parser.Parse(strings.NewReader(diffText))

		require.NoError(t, err)
		require.Len(t, diff.Files, 1)
		lines := diff.Files[0].Hunks[0].Lines
		require.Len(t, lines, 2)
		assert.False(t, lines[0].NoNewline)
		assert.True(t, lines[1].NoNewline)
		assert.Equal(t, "new", lines[1].Content)
	})

	t.Run("strips a/ and b/ prefixes from a plain unified diff", func(t *testing.T) {
		t.Parallel()

		// Without a "diff --git" header the library keeps the a/ b/
		// prefixes from the ---/+++ lines.
		diffText := `--- a/f.txt
+++ b/f.txt
@@ -1,2 +1,3 @@
 a
+x
 b
`
		parser := gitdiff.NewParser()
		diff, err := parser.Parse(strings.NewReader(diffText))

		require.NoError(t, err)
		require.Len(t, diff.Files, 1)
		assert.Equal(t, "f.txt", diff.Files[0].OldPath)
		assert.Equal(t, "f.txt", diff.Files[0].NewPath)
		assert.NotEmpty(t, diff.FileHunks("f.txt"))
	})

	t.Run("rejects a truncated hunk", func(t *testing.T) {
		t.Parallel()

		// Header promises five lines, body delivers one.
		diffText := `--- a/a.txt
+++ b/a.txt
@@ -1,5 +1,5 @@
 context
`
		parser := gitdiff.NewParser()
		_, err := parser.Parse(strings.NewReader(diffText))

		assert.Error(t, err)
	})

	t.Run("empty input yields an empty diff", func(t *testing.T) {
		t.Parallel()

		parser := gitdiff.NewParser()
		diff, err := parser.Parse(strings.NewReader(""))

		require.NoError(t, err)
		assert.Empty(t, diff.Files)
	})
}
