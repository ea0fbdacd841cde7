// Package store is the document store port the gym core runs on. Backends
// live in the sub-packages; all of them share the semantics documented here.
package store

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound = errors.New("document not found")
	// ErrConflict is returned by UpdateIf when the stored version moved on.
	ErrConflict = errors.New("document version conflict")
	ErrExists   = errors.New("document already exists")
)

type Op string

const (
	OpEqual         Op = "=="
	OpArrayContains Op = "array-contains"
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

func ArrayContains(field string, value any) Filter {
	return Filter{Field: field, Op: OpArrayContains, Value: value}
}

type Doc struct {
	ID         string
	Path       string
	Data       map[string]any
	Version    int64
	CreateTime time.Time
	UpdateTime time.Time
}

type Store interface {
	Get(ctx context.Context, path string) (*Doc, error)

	// Create adds a document with a server-assigned id and returns that id.
	Create(ctx context.Context, collection string, data map[string]any) (string, error)

	// Set upserts the document, replacing its data.
	Set(ctx context.Context, path string, data map[string]any) error

	// Update merges data into an existing document.
	Update(ctx context.Context, path string, data map[string]any) error

	// UpdateIf merges data only when the stored version equals version.
	UpdateIf(ctx context.Context, path string, version int64, data map[string]any) error

	Delete(ctx context.Context, path string) error

	Query(ctx context.Context, collection string, filters ...Filter) ([]Doc, error)

	// Subscribe delivers the full current result set immediately and again
	// after every change to the collection. The channel closes with ctx.
	Subscribe(ctx context.Context, collection string, filters ...Filter) (<-chan []Doc, error)

	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the view of the store inside RunTransaction. Reads must happen
// before writes.
type Tx interface {
	Get(path string) (*Doc, error)
	Set(path string, data map[string]any) error
	Delete(path string) error
}

// --------------------------------------------------
// Paths
// --------------------------------------------------

func Join(parts ...string) string {
	return strings.Join(parts, "/")
}

// Split returns the parent collection and the document id of a path.
func Split(path string) (collection, id string) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

// ValidDocPath reports whether path addresses a document: an even, non-zero
// number of non-empty segments.
func ValidDocPath(path string) bool {
	segs := strings.Split(path, "/")
	if len(segs) == 0 || len(segs)%2 != 0 {
		return false
	}
	for _, s := range segs {
		if s == "" {
			return false
		}
	}
	return true
}

func ValidCollectionPath(path string) bool {
	segs := strings.Split(path, "/")
	if len(segs)%2 != 1 {
		return false
	}
	for _, s := range segs {
		if s == "" {
			return false
		}
	}
	return true
}
