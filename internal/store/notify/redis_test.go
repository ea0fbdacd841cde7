package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/gym-scheduler/internal/store/notify"
)

func TestRedisRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r, err := notify.NewRedisFromURL(ctx, "redis://"+mr.Addr())
	require.NoError(t, err)
	defer r.Close()

	ch, err := r.Subscribe(ctx, "tenants/t1/shifts")
	require.NoError(t, err)

	require.NoError(t, r.Publish(ctx, "tenants/t1/shifts"))

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no signal received over redis")
	}
}

func TestRedisFromURLRejectsBadURL(t *testing.T) {
	_, err := notify.NewRedisFromURL(context.Background(), "not-a-url://")
	require.Error(t, err)
}
