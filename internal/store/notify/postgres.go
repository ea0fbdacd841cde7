package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
)

const pgChannel = "gym_doc_changes"

// Postgres uses LISTEN/NOTIFY on a single channel; the payload is the
// collection path. One listener connection fans out to local subscribers.
type Postgres struct {
	pool  *pgxpool.Pool
	local *Local

	once sync.Once
}

func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open notify pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping notify pool: %w", err)
	}
	return &Postgres{pool: pool, local: NewLocal()}, nil
}

func (p *Postgres) Publish(ctx context.Context, collection string) error {
	if _, err := p.pool.Exec(ctx, "SELECT pg_notify($1, $2)", pgChannel, collection); err != nil {
		return fmt.Errorf("notify %s: %w", collection, err)
	}
	return nil
}

func (p *Postgres) Subscribe(ctx context.Context, collection string) (<-chan struct{}, error) {
	p.once.Do(func() { go p.listen(context.Background()) })
	return p.local.Subscribe(ctx, collection)
}

func (p *Postgres) listen(ctx context.Context) {
	for {
		if err := p.listenOnce(ctx); err != nil {
			logs.Log.WithError(err).Warn("postgres listener stopped, reconnecting")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}

func (p *Postgres) listenOnce(ctx context.Context) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgChannel); err != nil {
		return err
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		p.local.Broadcast(n.Payload)
	}
}

func (p *Postgres) Close() {
	p.pool.Close()
}
