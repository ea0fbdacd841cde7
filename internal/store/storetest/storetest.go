// Package storetest holds the behaviour every store.Store backend must share.
// Backend packages run it against their own implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

// Run exercises s under a fresh tenant namespace so it can share a database
// with other runs.
func Run(t *testing.T, s store.Store) {
	ctx := context.Background()
	root := "tenants/" + uuid.NewString()

	t.Run("create get update", func(t *testing.T) {
		coll := root + "/clients"
		id, err := s.Create(ctx, coll, map[string]any{"name": "Ana", "phone": "1"})
		require.NoError(t, err)

		require.NoError(t, s.Update(ctx, store.Join(coll, id), map[string]any{"phone": "2"}))

		doc, err := s.Get(ctx, store.Join(coll, id))
		require.NoError(t, err)
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, "Ana", doc.Data["name"])
		assert.Equal(t, "2", doc.Data["phone"])
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := s.Get(ctx, root+"/clients/"+uuid.NewString())
		assert.ErrorIs(t, err, store.ErrNotFound)

		err = s.Update(ctx, root+"/clients/"+uuid.NewString(), map[string]any{"x": "y"})
		assert.ErrorIs(t, err, store.ErrNotFound)

		assert.NoError(t, s.Delete(ctx, root+"/clients/"+uuid.NewString()))
	})

	t.Run("conditional update", func(t *testing.T) {
		path := root + "/shifts/s1"
		require.NoError(t, s.Set(ctx, path, map[string]any{"capacity": 2, "bookedClients": []string{}}))

		doc, err := s.Get(ctx, path)
		require.NoError(t, err)

		require.NoError(t, s.UpdateIf(ctx, path, doc.Version, map[string]any{"bookedClients": []string{"c1"}}))
		err = s.UpdateIf(ctx, path, doc.Version, map[string]any{"bookedClients": []string{"c2"}})
		assert.ErrorIs(t, err, store.ErrConflict)

		after, err := s.Get(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, []any{"c1"}, after.Data["bookedClients"])
		assert.NotEqual(t, doc.Version, after.Version)
	})

	t.Run("query filters", func(t *testing.T) {
		coll := root + "/payments"
		require.NoError(t, s.Set(ctx, coll+"/p1", map[string]any{"clientId": "c1", "tags": []string{"a"}}))
		require.NoError(t, s.Set(ctx, coll+"/p2", map[string]any{"clientId": "c2", "tags": []string{"a", "b"}}))

		docs, err := s.Query(ctx, coll, store.Eq("clientId", "c1"))
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "p1", docs[0].ID)

		docs, err = s.Query(ctx, coll, store.ArrayContains("tags", "b"))
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "p2", docs[0].ID)
	})

	t.Run("subscribe", func(t *testing.T) {
		sctx, cancel := context.WithCancel(ctx)
		defer cancel()

		coll := root + "/modalities"
		ch, err := s.Subscribe(sctx, coll)
		require.NoError(t, err)

		first := next(t, ch)
		assert.Empty(t, first)

		require.NoError(t, s.Set(ctx, coll+"/m1", map[string]any{"name": "Yoga"}))
		assert.Eventually(t, func() bool {
			select {
			case docs := <-ch:
				return len(docs) == 1
			default:
				return false
			}
		}, 5*time.Second, 20*time.Millisecond)
	})

	t.Run("transaction", func(t *testing.T) {
		path := root + "/settings/brand"
		err := s.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
			if _, err := tx.Get(path); err != store.ErrNotFound {
				return err
			}
			return tx.Set(path, map[string]any{"imageUrl": ""})
		})
		require.NoError(t, err)

		doc, err := s.Get(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "", doc.Data["imageUrl"])
	})
}

func next(t *testing.T, ch <-chan []store.Doc) []store.Doc {
	t.Helper()
	select {
	case docs := <-ch:
		return docs
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot received")
		return nil
	}
}
