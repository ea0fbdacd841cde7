// Package firestore adapts Cloud Firestore to store.Store. Document versions
// are the server update times in nanoseconds, so UpdateIf is a
// LastUpdateTime precondition.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Get(ctx context.Context, path string) (*store.Doc, error) {
	snap, err := s.client.Doc(path).Get(ctx)
	if err != nil {
		return nil, translate(path, err)
	}
	return toDoc(snap)
}

func (s *Store) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	ref := s.client.Collection(collection).NewDoc()
	if _, err := ref.Create(ctx, orEmpty(data)); err != nil {
		return "", translate(ref.Path, err)
	}
	return ref.ID, nil
}

func (s *Store) Set(ctx context.Context, path string, data map[string]any) error {
	_, err := s.client.Doc(path).Set(ctx, orEmpty(data))
	return translate(path, err)
}

func (s *Store) Update(ctx context.Context, path string, data map[string]any) error {
	_, err := s.client.Doc(path).Update(ctx, updates(data))
	return translate(path, err)
}

func (s *Store) UpdateIf(ctx context.Context, path string, version int64, data map[string]any) error {
	_, err := s.client.Doc(path).Update(ctx, updates(data),
		firestore.LastUpdateTime(time.Unix(0, version)))
	return translate(path, err)
}

func (s *Store) Delete(ctx context.Context, path string) error {
	_, err := s.client.Doc(path).Delete(ctx)
	return translate(path, err)
}

func (s *Store) Query(ctx context.Context, collection string, filters ...store.Filter) ([]store.Doc, error) {
	snaps, err := s.query(collection, filters).Documents(ctx).GetAll()
	if err != nil {
		return nil, translate(collection, err)
	}
	return toDocs(snaps)
}

func (s *Store) Subscribe(ctx context.Context, collection string, filters ...store.Filter) (<-chan []store.Doc, error) {
	it := s.query(collection, filters).Snapshots(ctx)
	out := make(chan []store.Doc, 1)

	go func() {
		defer close(out)
		defer it.Stop()

		for {
			qs, err := it.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					logs.Log.WithError(err).WithField("collection", collection).Warn("firestore snapshot listener stopped")
				}
				return
			}

			snaps, err := qs.Documents.GetAll()
			if err != nil {
				logs.Log.WithError(err).WithField("collection", collection).Warn("firestore snapshot read failed")
				continue
			}
			docs, err := toDocs(snaps)
			if err != nil {
				logs.Log.WithError(err).WithField("collection", collection).Warn("firestore snapshot decode failed")
				continue
			}

			select {
			case out <- docs:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, ftx *firestore.Transaction) error {
		return fn(ctx, &fsTx{client: s.client, tx: ftx})
	})
	if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrConflict) {
		return err
	}
	if status.Code(err) == codes.Aborted {
		return store.ErrConflict
	}
	return err
}

type fsTx struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (t *fsTx) Get(path string) (*store.Doc, error) {
	snap, err := t.tx.Get(t.client.Doc(path))
	if err != nil {
		return nil, translate(path, err)
	}
	return toDoc(snap)
}

func (t *fsTx) Set(path string, data map[string]any) error {
	return t.tx.Set(t.client.Doc(path), orEmpty(data))
}

func (t *fsTx) Delete(path string) error {
	return t.tx.Delete(t.client.Doc(path))
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (s *Store) query(collection string, filters []store.Filter) firestore.Query {
	q := s.client.Collection(collection).Query
	for _, f := range filters {
		q = q.Where(f.Field, string(f.Op), store.NormalizeValue(f.Value))
	}
	return q
}

func updates(data map[string]any) []firestore.Update {
	out := make([]firestore.Update, 0, len(data))
	for k, v := range data {
		out = append(out, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	return out
}

func orEmpty(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return data
}

func toDoc(snap *firestore.DocumentSnapshot) (*store.Doc, error) {
	data, err := store.Normalize(snap.Data())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", snap.Ref.Path, err)
	}
	return &store.Doc{
		ID:         snap.Ref.ID,
		Path:       relative(snap.Ref),
		Data:       data,
		Version:    snap.UpdateTime.UnixNano(),
		CreateTime: snap.CreateTime,
		UpdateTime: snap.UpdateTime,
	}, nil
}

func toDocs(snaps []*firestore.DocumentSnapshot) ([]store.Doc, error) {
	out := make([]store.Doc, 0, len(snaps))
	for _, snap := range snaps {
		d, err := toDoc(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// relative strips the "projects/.../documents/" prefix Firestore puts on
// every reference path.
func relative(ref *firestore.DocumentRef) string {
	segs := []string{ref.ID}
	for c := ref.Parent; c != nil; {
		segs = append([]string{c.ID}, segs...)
		if c.Parent == nil {
			break
		}
		segs = append([]string{c.Parent.ID}, segs...)
		c = c.Parent.Parent
	}
	return store.Join(segs...)
}

func translate(path string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, iterator.Done) {
		return store.ErrNotFound
	}
	switch status.Code(err) {
	case codes.NotFound:
		return store.ErrNotFound
	case codes.FailedPrecondition:
		return store.ErrConflict
	case codes.AlreadyExists:
		return store.ErrExists
	}
	return fmt.Errorf("firestore %s: %w", path, err)
}
