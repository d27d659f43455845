package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorrupt is returned when a stored document is not valid JSON for its type.
var ErrCorrupt = errors.New("stored data is corrupt")

// Collection persists a whole []T as one JSON array under a single key.
// There are no partial writes: Save and Update always replace the value.
type Collection[T any] struct {
	repo *KVRepo
	key  string
}

func NewCollection[T any](repo *KVRepo, key string) *Collection[T] {
	return &Collection[T]{repo: repo, key: key}
}

func (c *Collection[T]) Key() string { return c.key }

// Load returns the stored items, or an empty slice when nothing is stored.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.repo.Get(ctx, c.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}
	return decodeItems[T](c.key, raw)
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	data, err := encodeItems(c.key, items)
	if err != nil {
		return err
	}
	return c.repo.Put(ctx, c.key, data)
}

// Update loads, applies fn and saves in one transaction.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return c.repo.Update(ctx, c.key, func(raw []byte, ok bool) ([]byte, error) {
		items := []T{}
		if ok {
			var err error
			items, err = decodeItems[T](c.key, raw)
			if err != nil {
				return nil, err
			}
		}
		next, err := fn(items)
		if err != nil {
			return nil, err
		}
		return encodeItems(c.key, next)
	})
}

// Clear removes the key entirely; a later Load returns an empty slice.
func (c *Collection[T]) Clear(ctx context.Context) error {
	return c.repo.Delete(ctx, c.key)
}

func decodeItems[T any](key string, raw []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func encodeItems[T any](key string, items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	return data, nil
}
