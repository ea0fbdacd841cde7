package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/gym-scheduler/internal/store/memory"
)

func TestDispatcherPersistsEvents(t *testing.T) {
	s := memory.New()
	logger := New(s)
	d := NewDispatcher(logger)

	d.Dispatch(Event{TenantID: "t1", ActorID: "owner", Action: "shift_created", Entity: "shift", EntityID: "s1"})
	d.Dispatch(Event{TenantID: "t1", Action: "client_booked", Entity: "shift", EntityID: "s1", Metadata: map[string]string{"clientId": "c1"}})
	d.Dispatch(Event{TenantID: "t2", Action: "shift_created", Entity: "shift"})
	d.Close()

	entries, _, err := logger.Search(context.Background(), "t1", Filter{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var booked bool
	for _, e := range entries {
		if e.Action == "client_booked" {
			booked = true
			assert.JSONEq(t, `{"clientId":"c1"}`, e.Metadata)
		}
	}
	assert.True(t, booked)
}

func TestSearchNewestFirstWithLimit(t *testing.T) {
	s := memory.New()
	logger := New(s)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		logger.now = func() time.Time { return at }
		require.NoError(t, logger.Log(context.Background(), Event{TenantID: "t1", Action: at.Format("15")}))
	}

	entries, total, err := logger.Search(context.Background(), "t1", Filter{}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, entries, 2)
	assert.Equal(t, "02", entries[0].Action)
	assert.Equal(t, "01", entries[1].Action)
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	s := memory.New()
	logger := New(s)
	d := NewDispatcher(logger)

	d.Dispatch(Event{TenantID: "t1", Action: "shift_created"})
	d.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, func() {
				d.Dispatch(Event{TenantID: "t1", Action: "client_booked"})
			})
		}()
	}
	wg.Wait()
	assert.NotPanics(t, d.Close)

	entries, _, err := logger.Search(context.Background(), "t1", Filter{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shift_created", entries[0].Action)
}

func TestNilDispatcherIsSafe(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(Event{Action: "x"})
		d.Close()
	})
}

func TestSearchFiltersAndPages(t *testing.T) {
	s := memory.New()
	logger := New(s)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{TenantID: "t1", Action: "client_booked", Entity: "shift"},
		{TenantID: "t1", Action: "payment_recorded", Entity: "payment"},
		{TenantID: "t1", Action: "client_booked", Entity: "shift"},
		{TenantID: "t1", Action: "client_booked", Entity: "shift"},
	}
	for i, ev := range events {
		at := base.Add(time.Duration(i) * 24 * time.Hour)
		logger.now = func() time.Time { return at }
		require.NoError(t, logger.Log(ctx, ev))
	}

	page, total, err := logger.Search(ctx, "t1", Filter{Action: "client_booked"}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, base.Add(72*time.Hour), page[0].CreatedAt.UTC())

	page, _, err = logger.Search(ctx, "t1", Filter{Action: "client_booked"}, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, base, page[0].CreatedAt.UTC())

	page, total, err = logger.Search(ctx, "t1", Filter{From: base.Add(24 * time.Hour), To: base.Add(72 * time.Hour)}, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 2)

	page, total, err = logger.Search(ctx, "t1", Filter{Entity: "payment"}, 5, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, page)
}
