package fs

import (
	"os"
	"path/filepath"
)

// DefaultStateDir returns the default state directory for jjview.
// Uses XDG_STATE_HOME if set, otherwise falls back to ~/.local/state/jjview.
func DefaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "jjview")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "jjview")
}

// DefaultJournalPath returns the default location of the operation journal.
func DefaultJournalPath() string {
	return filepath.Join(DefaultStateDir(), "journal.jsonl")
}
