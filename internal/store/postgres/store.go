// Package postgres stores documents as JSONB rows through gorm. Versions are
// bumped in the same statement as the write, so conditional updates are a
// single "UPDATE ... WHERE version = ?".
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/gym-scheduler/internal/logs"
	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
	"github.com/BruksfildServices01/gym-scheduler/internal/store/notify"
)

const uniqueViolation = "23505"

type Store struct {
	db       *gorm.DB
	notifier notify.Notifier
}

func New(db *gorm.DB, notifier notify.Notifier) *Store {
	return &Store{db: db, notifier: notifier}
}

var _ store.Store = (*Store)(nil)

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (s *Store) Get(ctx context.Context, path string) (*store.Doc, error) {
	var row models.DocumentRow
	err := s.db.WithContext(ctx).Where("path = ?", path).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return toDoc(row)
}

func (s *Store) Query(ctx context.Context, collection string, filters ...store.Filter) ([]store.Doc, error) {
	q := s.db.WithContext(ctx).Where("collection = ?", collection)

	for _, f := range filters {
		switch f.Op {
		case store.OpEqual:
			v, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			q = q.Where("data -> CAST(? AS text) = CAST(? AS jsonb)", f.Field, string(v))
		case store.OpArrayContains:
			v, err := json.Marshal([]any{f.Value})
			if err != nil {
				return nil, err
			}
			q = q.Where("data -> CAST(? AS text) @> CAST(? AS jsonb)", f.Field, string(v))
		default:
			return nil, fmt.Errorf("unsupported filter op %q", f.Op)
		}
	}

	var rows []models.DocumentRow
	if err := q.Order("path ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}

	out := make([]store.Doc, 0, len(rows))
	for _, row := range rows {
		d, err := toDoc(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *Store) Subscribe(ctx context.Context, collection string, filters ...store.Filter) (<-chan []store.Doc, error) {
	signals, err := s.notifier.Subscribe(ctx, collection)
	if err != nil {
		return nil, err
	}
	return store.Follow(ctx, signals, func(ctx context.Context) ([]store.Doc, error) {
		return s.Query(ctx, collection, filters...)
	}), nil
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (s *Store) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	path := store.Join(collection, id)

	row, err := newRow(path, data)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("create in %s: %w", collection, err)
	}
	s.publish(ctx, collection)
	return id, nil
}

func (s *Store) Set(ctx context.Context, path string, data map[string]any) error {
	if err := upsert(s.db.WithContext(ctx), path, data); err != nil {
		return err
	}
	s.publishPath(ctx, path)
	return nil
}

func (s *Store) Update(ctx context.Context, path string, data map[string]any) error {
	return s.merge(ctx, path, data, nil)
}

func (s *Store) UpdateIf(ctx context.Context, path string, version int64, data map[string]any) error {
	return s.merge(ctx, path, data, &version)
}

func (s *Store) merge(ctx context.Context, path string, data map[string]any, version *int64) error {
	patch, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	q := s.db.WithContext(ctx).Model(&models.DocumentRow{}).Where("path = ?", path)
	if version != nil {
		q = q.Where("version = ?", *version)
	}

	res := q.Updates(map[string]any{
		"data":       gorm.Expr("data || CAST(? AS jsonb)", string(patch)),
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", path, res.Error)
	}

	if res.RowsAffected == 0 {
		if _, err := s.Get(ctx, path); err != nil {
			return err
		}
		return store.ErrConflict
	}

	s.publishPath(ctx, path)
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	res := s.db.WithContext(ctx).Where("path = ?", path).Delete(&models.DocumentRow{})
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", path, res.Error)
	}
	if res.RowsAffected > 0 {
		s.publishPath(ctx, path)
	}
	return nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	var touched []string

	err := s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		tx := &pgTx{db: gtx, absent: map[string]bool{}}
		if err := fn(ctx, tx); err != nil {
			return err
		}
		touched = tx.touched
		return nil
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return store.ErrConflict
	}
	if err != nil {
		return err
	}

	for _, path := range touched {
		s.publishPath(ctx, path)
	}
	return nil
}

type pgTx struct {
	db *gorm.DB
	// absent remembers paths read as missing; writing them must not race
	// with a concurrent insert, so they are inserted without upsert.
	absent  map[string]bool
	touched []string
}

func (t *pgTx) Get(path string) (*store.Doc, error) {
	var row models.DocumentRow
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("path = ?", path).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		t.absent[path] = true
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	return toDoc(row)
}

func (t *pgTx) Set(path string, data map[string]any) error {
	t.touched = append(t.touched, path)
	if t.absent[path] {
		row, err := newRow(path, data)
		if err != nil {
			return err
		}
		return t.db.Create(&row).Error
	}
	return upsert(t.db, path, data)
}

func (t *pgTx) Delete(path string) error {
	t.touched = append(t.touched, path)
	return t.db.Where("path = ?", path).Delete(&models.DocumentRow{}).Error
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func upsert(db *gorm.DB, path string, data map[string]any) error {
	row, err := newRow(path, data)
	if err != nil {
		return err
	}
	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "path"}},
		DoUpdates: clause.Assignments(map[string]any{
			"data":       gorm.Expr("EXCLUDED.data"),
			"version":    gorm.Expr("documents.version + 1"),
			"updated_at": gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func newRow(path string, data map[string]any) (models.DocumentRow, error) {
	if !store.ValidDocPath(path) {
		return models.DocumentRow{}, fmt.Errorf("invalid document path %q", path)
	}
	if data == nil {
		data = map[string]any{}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return models.DocumentRow{}, fmt.Errorf("encode %s: %w", path, err)
	}
	collection, id := store.Split(path)
	now := time.Now()
	return models.DocumentRow{
		Path:       path,
		Collection: collection,
		DocID:      id,
		Data:       datatypes.JSON(b),
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func toDoc(row models.DocumentRow) (*store.Doc, error) {
	data := map[string]any{}
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, &data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", row.Path, err)
		}
	}
	return &store.Doc{
		ID:         row.DocID,
		Path:       row.Path,
		Data:       data,
		Version:    row.Version,
		CreateTime: row.CreatedAt,
		UpdateTime: row.UpdatedAt,
	}, nil
}

func (s *Store) publishPath(ctx context.Context, path string) {
	collection, _ := store.Split(path)
	s.publish(ctx, collection)
}

func (s *Store) publish(ctx context.Context, collection string) {
	if err := s.notifier.Publish(ctx, collection); err != nil {
		logs.Log.WithError(err).WithField("collection", collection).Warn("change notification failed")
	}
}
