package jjview

// Differ generates unified-diff text from two content blobs. Composing a
// Differ with a Parser turns any pair of blobs into hunks without involving
// the version engine.
type Differ interface {
	// Unified returns a unified diff from a to b, with aName/bName used in
	// the ---/+++ headers (conventionally prefixed "a/" and "b/").
	Unified(aName, bName, a, b string) (string, error)
}
