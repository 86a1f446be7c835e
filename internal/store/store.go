// Package store is the persistence gateway shared by every entity
// repository. Documents are addressed by their domain "id" field; the
// backend's own identifier never leaves this package.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// MaxList caps every listing. Callers ask for MaxList+1 to detect truncation.
const MaxList = 1000

const IDField = "id"

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

type Collection[T any] interface {
	Insert(ctx context.Context, doc T) error
	FindByID(ctx context.Context, id string) (T, error)
	FindOne(ctx context.Context, filter bson.M) (T, error)
	// Find returns matching documents, newest first, at most limit of them.
	Find(ctx context.Context, filter bson.M, limit int64) ([]T, error)
	Update(ctx context.Context, id string, set bson.M) (T, error)
	Push(ctx context.Context, id, field string, value interface{}) (T, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter bson.M) (int64, error)
}

// Page is a capped listing with an explicit truncation flag.
type Page[T any] struct {
	Items     []T
	Truncated bool
}

// List fetches up to MaxList documents and reports whether more exist.
func List[T any](ctx context.Context, col Collection[T], filter bson.M) (Page[T], error) {
	items, err := col.Find(ctx, filter, MaxList+1)
	if err != nil {
		return Page[T]{}, err
	}
	if len(items) > MaxList {
		return Page[T]{Items: items[:MaxList], Truncated: true}, nil
	}
	return Page[T]{Items: items}, nil
}

// Timestamp rounds t to the millisecond precision BSON dates keep, in UTC,
// so a value returned to the caller equals the stored one.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
