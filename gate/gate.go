// Package gate serializes commands per user and broadcasts per channel.
package gate

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrBusy is returned when the key is already held
var ErrBusy = errors.New("another command is still running")

// Gate hands out exclusive holds on keys. Acquire never waits: a held key
// fails fast with ErrBusy.
type Gate interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// UserKey is the gate key for a user's commands
func UserKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// ChannelKey is the gate key for channel-wide operations such as rain
func ChannelKey(channelID int64) string {
	return fmt.Sprintf("channel:%d", channelID)
}

// MemoryGate is a process-local Gate
type MemoryGate struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryGate() *MemoryGate {
	return &MemoryGate{held: make(map[string]struct{})}
}

func (g *MemoryGate) Acquire(_ context.Context, key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.held[key]; ok {
		return nil, ErrBusy
	}
	g.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.held, key)
			g.mu.Unlock()
		})
	}, nil
}
