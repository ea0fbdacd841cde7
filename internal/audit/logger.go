package audit

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/BruksfildServices01/gym-scheduler/internal/models"
	"github.com/BruksfildServices01/gym-scheduler/internal/store"
)

const collection = "auditLogs"

type Logger struct {
	store store.Store
	now   func() time.Time
}

func New(s store.Store) *Logger {
	return &Logger{store: s, now: time.Now}
}

func path(tenantID string) string {
	return store.Join("tenants", tenantID, collection)
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ActorID:   ev.ActorID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: l.now(),
	}

	data, err := store.Encode(entry)
	if err != nil {
		return err
	}
	_, err = l.store.Create(ctx, path(ev.TenantID), data)
	return err
}

// Filter narrows Search. Zero fields match everything; To is exclusive.
type Filter struct {
	Action string
	Entity string
	From   time.Time
	To     time.Time
}

// Search returns one page of matching entries, newest first, and the total
// number of matches. A limit of zero or less returns every match.
func (l *Logger) Search(ctx context.Context, tenantID string, f Filter, page, limit int) ([]models.AuditLog, int, error) {
	var filters []store.Filter
	if f.Action != "" {
		filters = append(filters, store.Eq("action", f.Action))
	}
	if f.Entity != "" {
		filters = append(filters, store.Eq("entity", f.Entity))
	}

	docs, err := l.store.Query(ctx, path(tenantID), filters...)
	if err != nil {
		return nil, 0, err
	}
	all, err := store.DecodeAll[models.AuditLog](docs)
	if err != nil {
		return nil, 0, err
	}

	entries := all[:0]
	for _, e := range all {
		if !f.From.IsZero() && e.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !e.CreatedAt.Before(f.To) {
			continue
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	total := len(entries)
	if limit <= 0 {
		return entries, total, nil
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= total {
		return []models.AuditLog{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return entries[start:end], total, nil
}
