// Package notify fans out "collection changed" signals. Stores publish after
// every committed write; subscribers re-read the full result set.
package notify

import (
	"context"
	"sync"
)

type Notifier interface {
	Publish(ctx context.Context, collection string) error
	// Subscribe returns a channel that receives a signal after each change to
	// collection. Signals coalesce; the channel closes with ctx.
	Subscribe(ctx context.Context, collection string) (<-chan struct{}, error)
}

// Local is an in-process Notifier.
type Local struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewLocal() *Local {
	return &Local{subs: make(map[string]map[chan struct{}]struct{})}
}

func (l *Local) Publish(_ context.Context, collection string) error {
	l.Broadcast(collection)
	return nil
}

// Broadcast signals every subscriber of collection without blocking.
func (l *Local) Broadcast(collection string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for ch := range l.subs[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (l *Local) Subscribe(ctx context.Context, collection string) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	l.mu.Lock()
	if l.subs[collection] == nil {
		l.subs[collection] = make(map[chan struct{}]struct{})
	}
	l.subs[collection][ch] = struct{}{}
	l.mu.Unlock()

	go func() {
		<-ctx.Done()
		l.mu.Lock()
		delete(l.subs[collection], ch)
		if len(l.subs[collection]) == 0 {
			delete(l.subs, collection)
		}
		l.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}
