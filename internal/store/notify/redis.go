package notify

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const channelPrefix = "gym:docs:"

// Redis carries change signals over redis pub/sub so several API instances
// sharing one database see each other's writes.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// NewRedisFromURL parses a redis:// url and pings the server.
func NewRedisFromURL(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Publish(ctx context.Context, collection string) error {
	if err := r.client.Publish(ctx, channelPrefix+collection, "changed").Err(); err != nil {
		return fmt.Errorf("publish change for %s: %w", collection, err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context, collection string) (<-chan struct{}, error) {
	ps := r.client.Subscribe(ctx, channelPrefix+collection)
	// Wait for the subscription to be confirmed so no publish is missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", collection, err)
	}

	out := make(chan struct{}, 1)
	msgs := ps.Channel()

	go func() {
		defer close(out)
		defer ps.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()

	return out, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
