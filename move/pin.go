package move

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	jjview "github.com/brychanrobot/jjview"
	"github.com/tliron/commonlog"
)

// pinPrefix namespaces anchors so stray ones are recognizable in the repo.
const pinPrefix = "jjview/pin-"

// Pin is a scoped handle on a revision that stays valid while the engine
// rebases or renumbers it. Acquire one before a fold that disturbs the
// revision and release it in a deferred call.
type Pin struct {
	name     string
	engine   jjview.Engine
	log      commonlog.Logger
	released bool
}

// AcquirePin attaches a uniquely named anchor to rev and returns the handle.
func AcquirePin(ctx context.Context, engine jjview.Engine, rev jjview.Rev) (*Pin, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate pin name: %w", err)
	}
	name := pinPrefix + hex.EncodeToString(buf)
	if err := engine.CreateAnchor(ctx, name, rev); err != nil {
		return nil, fmt.Errorf("create anchor %s: %w", name, err)
	}
	return &Pin{
		name:   name,
		engine: engine,
		log:    commonlog.GetLogger("jjview.move"),
	}, nil
}

// Name returns the anchor name, usable wherever the engine accepts a
// revision reference.
func (p *Pin) Name() string {
	return p.name
}

// Release deletes the anchor. Repeat calls are no-ops. Deletion failures are
// logged, not returned, so a failing cleanup cannot mask the error that
// triggered the unwind.
func (p *Pin) Release(ctx context.Context) {
	if p.released {
		return
	}
	p.released = true
	if err := p.engine.DeleteAnchor(ctx, p.name); err != nil {
		p.log.Errorf("failed to delete anchor %s: %s", p.name, err.Error())
	}
}
