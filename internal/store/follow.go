package store

import (
	"context"

	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
)

// Follow turns change signals into full result sets: one read right away and
// one after every signal. Failed reads are logged and skipped; the next
// signal retries. The returned channel closes when ctx is done or signals
// closes.
func Follow(
	ctx context.Context,
	signals <-chan struct{},
	read func(ctx context.Context) ([]Doc, error),
) <-chan []Doc {

	out := make(chan []Doc, 1)

	go func() {
		defer close(out)

		emit := func() bool {
			docs, err := read(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return false
				}
				logs.Log.WithError(err).Warn("subscription read failed")
				return true
			}
			select {
			case out <- docs:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok || !emit() {
					return
				}
			}
		}
	}()

	return out
}
