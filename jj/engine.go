// Package jj implements the version engine adapter by shelling out to the
// Jujutsu CLI. The interface allows alternative implementations (a library
// binding, an RPC service) without changing callers.
package jj

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	jjview "github.com/brychanrobot/jjview"
	"github.com/tliron/commonlog"
)

// Compile-time interface verification.
var _ jjview.Engine = (*Engine)(nil)

// Engine runs jj commands against one repository.
type Engine struct {
	dir string
	bin string
	log commonlog.Logger
	run func(ctx context.Context, args ...string) (string, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithBinary overrides the jj executable name or path.
func WithBinary(bin string) Option {
	return func(e *Engine) { e.bin = bin }
}

// NewEngine creates an engine for the repository rooted at dir.
func NewEngine(dir string, opts ...Option) *Engine {
	e := &Engine{
		dir: dir,
		bin: "jj",
		log: commonlog.GetLogger("jjview.jj"),
	}
	e.run = e.exec
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// exec runs one jj command and returns its stdout. Failures carry the
// command and its stderr.
func (e *Engine) exec(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"--repository", e.dir}, args...)
	e.log.Debugf("jj %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, e.bin, full...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("jj %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// ContentAt returns the content of path at rev. A path absent at the
// revision yields jjview.ErrFileNotFound.
func (e *Engine) ContentAt(ctx context.Context, rev jjview.Rev, path string) (string, error) {
	out, err := e.run(ctx, "file", "show", "-r", string(rev), path)
	if err != nil {
		if strings.Contains(err.Error(), "No such path") {
			return "", jjview.ErrFileNotFound
		}
		return "", err
	}
	return out, nil
}

// DiffText returns git-format unified-diff text for path between from and to.
func (e *Engine) DiffText(ctx context.Context, from, to jjview.Rev, path string) (string, error) {
	return e.run(ctx, "diff", "--git", "--from", string(from), "--to", string(to), path)
}

// Fold squashes from's changes for path into into. With an override, the
// squash is skipped entirely: jj rebases descendants after any amend, and a
// squash would first empty from's diff for the path, so the rebase would
// re-derive from as the override too, dropping every change the override
// leaves out. Writing the override straight into into instead makes the
// rebase 3-way-merge from against it, leaving from exactly the changes the
// override does not contain.
func (e *Engine) Fold(ctx context.Context, from, into jjview.Rev, path string, override *string) error {
	if override == nil {
		_, err := e.run(ctx, "squash", "--from", string(from), "--into", string(into), path)
		return err
	}

	// The working revision is needed afterwards; best effort only.
	prev := ""
	if cur, err := e.workingRev(ctx); err == nil {
		prev = cur
	}

	if _, err := e.run(ctx, "edit", string(into)); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(e.dir, path), []byte(*override), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	// Any jj command snapshots the working copy; status is the cheapest.
	if _, err := e.run(ctx, "status"); err != nil {
		return err
	}
	if prev != "" && prev != string(into) {
		if _, err := e.run(ctx, "edit", prev); err != nil {
			e.log.Warningf("could not return to previous working revision %s: %s", prev, err.Error())
		}
	}
	return nil
}

// NewScratch creates an empty revision on top of parent and returns its
// change id. jj prints the new id only to stderr, so the revision is tagged
// with a unique description and looked up by it.
func (e *Engine) NewScratch(ctx context.Context, parent jjview.Rev) (jjview.Rev, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate scratch tag: %w", err)
	}
	msg := "jjview scratch " + hex.EncodeToString(buf)

	if _, err := e.run(ctx, "new", "--no-edit", "-m", msg, string(parent)); err != nil {
		return "", err
	}
	out, err := e.run(ctx, "log", "--no-graph", "-r", fmt.Sprintf("description(%q)", msg), "-T", "change_id")
	if err != nil {
		return "", err
	}
	id := strings.TrimSpace(out)
	if id == "" {
		return "", fmt.Errorf("scratch revision %q not found after creation", msg)
	}
	return jjview.Rev(id), nil
}

// Abandon discards a revision.
func (e *Engine) Abandon(ctx context.Context, rev jjview.Rev) error {
	_, err := e.run(ctx, "abandon", string(rev))
	return err
}

// CreateAnchor attaches a bookmark to rev. Bookmarks follow the revision
// through rebases, which is exactly the stable-handle property anchors need.
func (e *Engine) CreateAnchor(ctx context.Context, name string, rev jjview.Rev) error {
	_, err := e.run(ctx, "bookmark", "create", name, "-r", string(rev))
	return err
}

// DeleteAnchor removes the bookmark.
func (e *Engine) DeleteAnchor(ctx context.Context, name string) error {
	_, err := e.run(ctx, "bookmark", "delete", name)
	return err
}

// SetWorking checks out a revision or bookmark.
func (e *Engine) SetWorking(ctx context.Context, ref string) error {
	_, err := e.run(ctx, "edit", ref)
	return err
}

// RestoreFile overwrites path in the working copy with its content at from.
// Hidden revisions remain addressable by id, so a pre-rebase commit works as
// the source.
func (e *Engine) RestoreFile(ctx context.Context, path string, from string) error {
	_, err := e.run(ctx, "restore", "--from", from, path)
	return err
}

func (e *Engine) workingRev(ctx context.Context) (string, error) {
	out, err := e.run(ctx, "log", "--no-graph", "-r", "@", "-T", "change_id")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
