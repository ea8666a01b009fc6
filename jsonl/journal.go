// Package jsonl records completed move operations as JSON lines, one record
// per line. The journal is append-only and survives crashes between
// operations; it exists for auditing, not for resuming interrupted moves.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jjview "github.com/brychanrobot/jjview"
)

// maxLineSize bounds a single journal line (1MB); selections are small but
// paths and revision ids are unbounded in principle.
const maxLineSize = 1024 * 1024

// Record describes one completed move operation.
type Record struct {
	Time       time.Time          `json:"time"`
	Op         string             `json:"op"` // "to-ancestor" or "to-descendant"
	Path       string             `json:"path"`
	Source     string             `json:"source,omitempty"`
	Ancestor   string             `json:"ancestor"`
	Descendant string             `json:"descendant,omitempty"`
	Ranges     []jjview.LineRange `json:"ranges"`
}

// Journal appends and loads records at a fixed path.
type Journal struct {
	path string
}

// NewJournal creates a journal backed by the given file path. The file and
// its directory are created on first append.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// Append writes one record.
func (j *Journal) Append(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0o755); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}
	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	return nil
}

// Load reads every record in order. A missing file is an empty journal.
// Blank lines are skipped; a malformed line fails with its line number.
func (j *Journal) Load() ([]Record, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return records, nil
}
