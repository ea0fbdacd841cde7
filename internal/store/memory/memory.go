// Package memory is an in-process store.Store used by tests and local runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/gym-scheduler/internal/store"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/notify"
)

type entry struct {
	data       map[string]any
	version    int64
	createTime time.Time
	updateTime time.Time
}

type Store struct {
	mu     sync.RWMutex
	docs   map[string]*entry
	notify *notify.Local
	now    func() time.Time
}

func New() *Store {
	return &Store{
		docs:   make(map[string]*entry),
		notify: notify.NewLocal(),
		now:    time.Now,
	}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Get(_ context.Context, path string) (*store.Doc, error) {
	if !store.ValidDocPath(path) {
		return nil, fmt.Errorf("invalid document path %q", path)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.docs[path]
	if !ok {
		return nil, store.ErrNotFound
	}
	return snapshot(path, e), nil
}

func (s *Store) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	if !store.ValidCollectionPath(collection) {
		return "", fmt.Errorf("invalid collection path %q", collection)
	}
	id := uuid.NewString()
	if err := s.Set(ctx, store.Join(collection, id), data); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Set(_ context.Context, path string, data map[string]any) error {
	norm, err := s.validate(path, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.put(path, norm)
	s.mu.Unlock()

	s.changed(path)
	return nil
}

func (s *Store) Update(_ context.Context, path string, data map[string]any) error {
	return s.merge(path, data, nil)
}

func (s *Store) UpdateIf(_ context.Context, path string, version int64, data map[string]any) error {
	return s.merge(path, data, &version)
}

func (s *Store) merge(path string, data map[string]any, version *int64) error {
	norm, err := s.validate(path, data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	e, ok := s.docs[path]
	if !ok {
		s.mu.Unlock()
		return store.ErrNotFound
	}
	if version != nil && e.version != *version {
		s.mu.Unlock()
		return store.ErrConflict
	}
	for k, v := range norm {
		e.data[k] = v
	}
	e.version++
	e.updateTime = s.now()
	s.mu.Unlock()

	s.changed(path)
	return nil
}

func (s *Store) Delete(_ context.Context, path string) error {
	if !store.ValidDocPath(path) {
		return fmt.Errorf("invalid document path %q", path)
	}

	s.mu.Lock()
	_, ok := s.docs[path]
	delete(s.docs, path)
	s.mu.Unlock()

	if ok {
		s.changed(path)
	}
	return nil
}

func (s *Store) Query(_ context.Context, collection string, filters ...store.Filter) ([]store.Doc, error) {
	if !store.ValidCollectionPath(collection) {
		return nil, fmt.Errorf("invalid collection path %q", collection)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query(collection, filters), nil
}

func (s *Store) query(collection string, filters []store.Filter) []store.Doc {
	out := []store.Doc{}
	for path, e := range s.docs {
		parent, _ := store.Split(path)
		if parent != collection || !store.Match(e.data, filters) {
			continue
		}
		out = append(out, *snapshot(path, e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (s *Store) Subscribe(ctx context.Context, collection string, filters ...store.Filter) (<-chan []store.Doc, error) {
	if !store.ValidCollectionPath(collection) {
		return nil, fmt.Errorf("invalid collection path %q", collection)
	}
	signals, err := s.notify.Subscribe(ctx, collection)
	if err != nil {
		return nil, err
	}
	return store.Follow(ctx, signals, func(ctx context.Context) ([]store.Doc, error) {
		return s.Query(ctx, collection, filters...)
	}), nil
}

func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	s.mu.Lock()
	tx := &memTx{s: s, writes: map[string]map[string]any{}}
	err := fn(ctx, tx)
	if err == nil {
		for _, path := range tx.order {
			if data := tx.writes[path]; data == nil {
				delete(s.docs, path)
			} else {
				s.put(path, data)
			}
		}
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	for _, path := range tx.order {
		s.changed(path)
	}
	return nil
}

// put must be called with mu held.
func (s *Store) put(path string, data map[string]any) {
	now := s.now()
	if e, ok := s.docs[path]; ok {
		e.data = data
		e.version++
		e.updateTime = now
		return
	}
	s.docs[path] = &entry{data: data, version: 1, createTime: now, updateTime: now}
}

func (s *Store) validate(path string, data map[string]any) (map[string]any, error) {
	if !store.ValidDocPath(path) {
		return nil, fmt.Errorf("invalid document path %q", path)
	}
	return store.Normalize(data)
}

func (s *Store) changed(path string) {
	collection, _ := store.Split(path)
	s.notify.Broadcast(collection)
}

func snapshot(path string, e *entry) *store.Doc {
	data, _ := store.Normalize(e.data)
	_, id := store.Split(path)
	return &store.Doc{
		ID:         id,
		Path:       path,
		Data:       data,
		Version:    e.version,
		CreateTime: e.createTime,
		UpdateTime: e.updateTime,
	}
}

// memTx reads through to the store; the store lock is held for its lifetime.
type memTx struct {
	s      *Store
	writes map[string]map[string]any
	order  []string
}

func (t *memTx) Get(path string) (*store.Doc, error) {
	if !store.ValidDocPath(path) {
		return nil, fmt.Errorf("invalid document path %q", path)
	}
	e, ok := t.s.docs[path]
	if !ok {
		return nil, store.ErrNotFound
	}
	return snapshot(path, e), nil
}

func (t *memTx) Set(path string, data map[string]any) error {
	norm, err := t.s.validate(path, data)
	if err != nil {
		return err
	}
	t.record(path, norm)
	return nil
}

func (t *memTx) Delete(path string) error {
	if !store.ValidDocPath(path) {
		return fmt.Errorf("invalid document path %q", path)
	}
	t.record(path, nil)
	return nil
}

func (t *memTx) record(path string, data map[string]any) {
	if _, seen := t.writes[path]; !seen {
		t.order = append(t.order, path)
	}
	t.writes[path] = data
}
