package gate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "user:42", UserKey(42))
	assert.Equal(t, "channel:7", ChannelKey(7))
}

func TestMemoryGate(t *testing.T) {
	exerciseGate(t, NewMemoryGate())
}

func TestMemoryGate_ConcurrentAcquire(t *testing.T) {
	g := NewMemoryGate()
	ctx := context.Background()

	var acquired atomic.Int32
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := g.Acquire(ctx, UserKey(1)); err == nil {
				acquired.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), acquired.Load())
}

// exerciseGate checks the behaviour every Gate shares
func exerciseGate(t *testing.T, g Gate) {
	ctx := context.Background()

	release, err := g.Acquire(ctx, UserKey(1))
	require.NoError(t, err)

	_, err = g.Acquire(ctx, UserKey(1))
	assert.ErrorIs(t, err, ErrBusy)

	other, err := g.Acquire(ctx, UserKey(2))
	require.NoError(t, err, "different keys do not block each other")
	other()

	channel, err := g.Acquire(ctx, ChannelKey(1))
	require.NoError(t, err)
	defer channel()

	release()
	release() // second release is harmless

	again, err := g.Acquire(ctx, UserKey(1))
	require.NoError(t, err)
	again()
}
