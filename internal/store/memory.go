package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryCollection keeps documents in their BSON form so that field names,
// equality filters and $set/$push behave as they do against Mongo. Only
// top-level equality filters are supported.
type MemoryCollection[T any] struct {
	mu     sync.RWMutex
	docs   []bson.M
	unique []string
}

// NewMemoryCollection enforces uniqueness of the id field and of every
// field named in unique.
func NewMemoryCollection[T any](unique ...string) *MemoryCollection[T] {
	return &MemoryCollection[T]{unique: append([]string{IDField}, unique...)}
}

func (c *MemoryCollection[T]) Insert(ctx context.Context, doc T) error {
	m, err := canonical(doc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, field := range c.unique {
		v, ok := m[field]
		if !ok {
			continue
		}
		for _, existing := range c.docs {
			if reflect.DeepEqual(existing[field], v) {
				return ErrDuplicate
			}
		}
	}
	c.docs = append(c.docs, m)
	return nil
}

func (c *MemoryCollection[T]) FindByID(ctx context.Context, id string) (T, error) {
	return c.FindOne(ctx, bson.M{IDField: id})
}

func (c *MemoryCollection[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	items, err := c.Find(ctx, filter, 1)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(items) == 0 {
		var zero T
		return zero, ErrNotFound
	}
	return items[0], nil
}

func (c *MemoryCollection[T]) Find(ctx context.Context, filter bson.M, limit int64) ([]T, error) {
	f, err := canonical(filter)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]T, 0)
	for i := len(c.docs) - 1; i >= 0; i-- {
		if limit > 0 && int64(len(items)) >= limit {
			break
		}
		if !matches(c.docs[i], f) {
			continue
		}
		item, err := decode[T](c.docs[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *MemoryCollection[T]) Update(ctx context.Context, id string, set bson.M) (T, error) {
	return c.modify(id, func(m bson.M) error {
		for k, v := range set {
			m[k] = v
		}
		return nil
	})
}

func (c *MemoryCollection[T]) Push(ctx context.Context, id, field string, value interface{}) (T, error) {
	return c.modify(id, func(m bson.M) error {
		switch current := m[field].(type) {
		case nil:
			m[field] = bson.A{value}
		case bson.A:
			m[field] = append(current, value)
		default:
			return fmt.Errorf("push: field %q is not an array", field)
		}
		return nil
	})
}

func (c *MemoryCollection[T]) modify(id string, apply func(bson.M) error) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return zero, ErrNotFound
	}
	working := bson.M{}
	for k, v := range c.docs[idx] {
		working[k] = v
	}
	if err := apply(working); err != nil {
		return zero, err
	}
	m, err := canonical(working)
	if err != nil {
		return zero, err
	}
	c.docs[idx] = m
	return decode[T](m)
}

func (c *MemoryCollection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	c.docs = append(c.docs[:idx], c.docs[idx+1:]...)
	return nil
}

func (c *MemoryCollection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	f, err := canonical(filter)
	if err != nil {
		return 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, doc := range c.docs {
		if matches(doc, f) {
			n++
		}
	}
	return n, nil
}

func (c *MemoryCollection[T]) indexOf(id string) int {
	for i, doc := range c.docs {
		if doc[IDField] == id {
			return i
		}
	}
	return -1
}

func matches(doc, filter bson.M) bool {
	for k, v := range filter {
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}

// canonical round-trips v through BSON so stored values and filter values
// share the same Go types.
func canonical(v interface{}) (bson.M, error) {
	if v == nil {
		return bson.M{}, nil
	}
	if m, ok := v.(bson.M); ok && m == nil {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := bson.M{}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decode[T any](m bson.M) (T, error) {
	var out T
	raw, err := bson.Marshal(m)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(raw, &out)
	return out, err
}
