// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists one cart document per user.
type Store interface {
	// Load returns the stored cart for a user; the bool reports presence.
	Load(ctx context.Context, userID uint) (*Cart, bool, error)
	// Save writes the cart document unconditionally.
	Save(ctx context.Context, c *Cart) error
	// Mutate runs fn against the user's cart (an empty cart if none is
	// stored yet) and persists the result as one atomic step. Concurrent
	// mutations of the same cart must not lose updates. When fn returns an
	// error the stored state is left untouched and the error is returned.
	Mutate(ctx context.Context, userID uint, fn func(*Cart) error) (*Cart, error)
}

// maxTxRetries bounds optimistic-lock retries before giving up
const maxTxRetries = 5

// RedisStore keeps each cart as a JSON document under cart:user:<id>.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed cart store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func cartKey(userID uint) string {
	return fmt.Sprintf("cart:user:%d", userID)
}

// Load implements Store
func (s *RedisStore) Load(ctx context.Context, userID uint) (*Cart, bool, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cart for user %d: %w", userID, err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, false, fmt.Errorf("corrupt cart document for user %d: %w", userID, err)
	}

	return &c, true, nil
}

// Save implements Store
func (s *RedisStore) Save(ctx context.Context, c *Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart for user %d: %w", c.UserID, err)
	}

	if err := s.client.Set(ctx, cartKey(c.UserID), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart for user %d: %w", c.UserID, err)
	}

	return nil
}

// Mutate implements Store. The read-modify-write cycle runs under WATCH so a
// concurrent writer invalidates the transaction instead of being overwritten;
// invalidated attempts are retried.
func (s *RedisStore) Mutate(ctx context.Context, userID uint, fn func(*Cart) error) (*Cart, error) {
	key := cartKey(userID)

	var out *Cart
	txn := func(tx *redis.Tx) error {
		var c *Cart

		data, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
			c = NewCart(userID)
		case err != nil:
			return fmt.Errorf("failed to load cart for user %d: %w", userID, err)
		default:
			c = &Cart{}
			if err := json.Unmarshal([]byte(data), c); err != nil {
				return fmt.Errorf("corrupt cart document for user %d: %w", userID, err)
			}
		}

		if err := fn(c); err != nil {
			return err
		}
		c.UpdatedAt = time.Now().UTC()

		payload, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode cart for user %d: %w", userID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err != nil {
			return err
		}

		out = c
		return nil
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	return nil, fmt.Errorf("cart mutation for user %d aborted after %d conflicting writes", userID, maxTxRetries)
}
