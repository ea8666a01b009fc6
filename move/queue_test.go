package move_test

import (
	"context"
	"runtime"
	"sync"
	"testing"

	"github.com/brychanrobot/jjview/move"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_SerializesOperations(t *testing.T) {
	t.Parallel()

	var q move.Queue
	var inFlight, maxInFlight int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Do(context.Background(), func() error {
				mu.Lock()
				inFlight++
				if inFlight > maxInFlight {
					maxInFlight = inFlight
				}
				mu.Unlock()

				// Yield so an overlapping operation would be observed.
				runtime.Gosched()

				mu.Lock()
				inFlight--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight, "operations must never overlap")
}

func TestQueue_HonorsCancelledContext(t *testing.T) {
	t.Parallel()

	var q move.Queue
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := q.Do(ctx, func() error {
		ran = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, ran, "a cancelled operation must not start")
}
