// Package kv stores every collection as a Redis hash of JSON records.
// It mirrors the site's browser-side storage: records are read whole,
// filtered and ordered in process, and written back as JSON.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"irportal/internal/domain"
)

// maxTxRetries bounds optimistic WATCH/MULTI retries under contention
const maxTxRetries = 64

// errSkip aborts a mutation without writing
var errSkip = errors.New("kv: skip write")

// Connect opens a Redis client from a redis:// URL and checks it responds
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// collection is one hash: field = record id, value = JSON record
type collection[T any] struct {
	client *redis.Client
	key    string
	name   string
}

func newCollection[T any](client *redis.Client, prefix, name string) *collection[T] {
	return &collection[T]{client: client, key: prefix + name, name: name}
}

func (c *collection[T]) all(ctx context.Context) ([]T, error) {
	values, err := c.client.HVals(ctx, c.key).Result()
	if err != nil {
		return nil, domain.NewStorageError("list "+c.name, err)
	}
	return decodeAll[T](c.name, values)
}

// get returns nil, nil when id is absent
func (c *collection[T]) get(ctx context.Context, id string) (*T, error) {
	raw, err := c.client.HGet(ctx, c.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStorageError("get "+c.name, err)
	}
	return decode[T](c.name, raw)
}

// insert writes a new record; an existing id is a conflict
func (c *collection[T]) insert(ctx context.Context, id string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return domain.NewStorageError("encode "+c.name, err)
	}

	created, err := c.client.HSetNX(ctx, c.key, id, data).Result()
	if err != nil {
		return domain.NewStorageError("create "+c.name, err)
	}
	if !created {
		return fmt.Errorf("%s %s: %w", c.name, id, domain.ErrConflict)
	}
	return nil
}

// mutate runs fn on the current record inside a WATCH/MULTI transaction.
// fn receives nil when the record is absent; returning errSkip leaves the
// hash untouched. The transaction is retried when the hash changed
// between the read and the write.
func (c *collection[T]) mutate(ctx context.Context, op string, id string, fn func(current *T, others []T) (*T, error), needOthers bool) error {
	txf := func(tx *redis.Tx) error {
		current, err := c.readTx(ctx, tx, id)
		if err != nil {
			return err
		}

		var others []T
		if needOthers {
			values, err := tx.HGetAll(ctx, c.key).Result()
			if err != nil {
				return domain.NewStorageError(op, err)
			}
			delete(values, id)
			rest := make([]string, 0, len(values))
			for _, raw := range values {
				rest = append(rest, raw)
			}
			if others, err = decodeAll[T](c.name, rest); err != nil {
				return err
			}
		}

		next, err := fn(current, others)
		if err != nil {
			return err
		}

		data, err := json.Marshal(next)
		if err != nil {
			return domain.NewStorageError("encode "+c.name, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, c.key, id, data)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := c.client.Watch(ctx, txf, c.key)
		switch {
		case err == nil, errors.Is(err, errSkip):
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case isDomainError(err):
			return err
		default:
			return domain.NewStorageError(op, err)
		}
	}
	return domain.NewStorageError(op, fmt.Errorf("%s %s: too much contention", c.name, id))
}

func (c *collection[T]) readTx(ctx context.Context, tx *redis.Tx, id string) (*T, error) {
	raw, err := tx.HGet(ctx, c.key, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStorageError("get "+c.name, err)
	}
	return decode[T](c.name, raw)
}

// replace overwrites an existing record (wraps domain.ErrNotFound if missing)
func (c *collection[T]) replace(ctx context.Context, id string, v *T) error {
	return c.mutate(ctx, "update "+c.name, id, func(current *T, _ []T) (*T, error) {
		if current == nil {
			return nil, fmt.Errorf("%s %s: %w", c.name, id, domain.ErrNotFound)
		}
		return v, nil
	}, false)
}

// remove deletes a record; a missing id is not an error
func (c *collection[T]) remove(ctx context.Context, id string) error {
	if err := c.client.HDel(ctx, c.key, id).Err(); err != nil {
		return domain.NewStorageError("delete "+c.name, err)
	}
	return nil
}

func decode[T any](name, raw string) (*T, error) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, domain.NewStorageError("decode "+name, err)
	}
	return &v, nil
}

func decodeAll[T any](name string, values []string) ([]T, error) {
	out := make([]T, 0, len(values))
	for _, raw := range values {
		v, err := decode[T](name, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrStorage)
}

// sortNewestFirst orders by created time descending, then id ascending
func sortNewestFirst[T any](items []T, key func(*T) (time.Time, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(&items[i])
		tj, idj := key(&items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi < idj
	})
}
