package audit

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
)

type Event struct {
	TenantID string
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			logs.Log.WithError(err).WithField("action", ev.Action).Warn("audit write failed")
		}
		cancel()
	}
}

// Dispatch never blocks and never fails the caller; a full queue drops the
// event. A nil or closed Dispatcher ignores events.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		logs.Log.WithField("action", ev.Action).Warn("audit dispatcher closed, dropping event")
		return
	}
	select {
	case d.queue <- ev:
	default:
		logs.Log.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close drains queued events and stops the worker. Later calls to Dispatch
// drop their events.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
