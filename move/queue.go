package move

import (
	"context"
	"sync"
)

// Queue serializes graph-mutating operations. The engine offers no
// transactions across calls, so two interleaved operations can leave anchors
// dangling or restores acting on stale content; callers route every mutation
// through one Queue to rule that out.
type Queue struct {
	mu sync.Mutex
}

// Do runs fn exclusively, after any operation already in flight. It returns
// the context's error instead if ctx is done before fn gets its turn.
func (q *Queue) Do(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}
