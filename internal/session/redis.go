package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	cartKeyPrefix = "storefront:cart:"
	// maxUpdateAttempts bounds optimistic retries when another request
	// changes the same cart between WATCH and EXEC.
	maxUpdateAttempts = 10
)

type redisCartStore struct {
	redisClient *redis.Client
	keyPrefix   string
	log         *logrus.Logger
}

// NewRedisCartStore keeps each cart as a JSON string under its own key.
func NewRedisCartStore(redisClient *redis.Client, logger *logrus.Logger) domain.CartStore {
	return &redisCartStore{
		redisClient: redisClient,
		keyPrefix:   cartKeyPrefix,
		log:         logger,
	}
}

func (s *redisCartStore) Load(ctx context.Context, sessionID string) (domain.Cart, error) {
	return s.read(ctx, s.redisClient, sessionID)
}

// cartGetter is satisfied by both *redis.Client and *redis.Tx.
type cartGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *redisCartStore) read(ctx context.Context, cmd cartGetter, sessionID string) (domain.Cart, error) {
	val, err := cmd.Get(ctx, s.keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to load cart for session %s: %w", sessionID, err)
	}

	c := domain.Cart{}
	if err := json.Unmarshal(val, &c); err != nil {
		s.log.Warnf("Discarding unreadable cart for session %s: %v", sessionID, err)
		return domain.Cart{}, nil
	}
	return c, nil
}

func encodeCart(sessionID string, c domain.Cart) ([]byte, error) {
	if c == nil {
		c = domain.Cart{}
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart for session %s: %w", sessionID, err)
	}
	return payload, nil
}

func (s *redisCartStore) Save(ctx context.Context, sessionID string, c domain.Cart, ttl time.Duration) error {
	payload, err := encodeCart(sessionID, c)
	if err != nil {
		return err
	}
	if err := s.redisClient.Set(ctx, s.keyPrefix+sessionID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart for session %s: %w", sessionID, err)
	}
	s.log.Debugf("Saved cart for session %s with %d lines", sessionID, len(c))
	return nil
}

// Update reads and writes the cart inside WATCH/MULTI and retries when
// another writer got there first.
func (s *redisCartStore) Update(ctx context.Context, sessionID string, ttl time.Duration, fn func(domain.Cart) (domain.Cart, error)) (domain.Cart, error) {
	key := s.keyPrefix + sessionID
	var next domain.Cart

	txf := func(tx *redis.Tx) error {
		current, err := s.read(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		next, err = fn(current)
		if err != nil {
			return err
		}
		payload, err := encodeCart(sessionID, next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := s.redisClient.Watch(ctx, txf, key)
		if err == nil {
			s.log.Debugf("Updated cart for session %s with %d lines", sessionID, len(next))
			if next == nil {
				next = domain.Cart{}
			}
			return next, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
		s.log.Debugf("Cart for session %s changed during update, retry %d", sessionID, attempt)
	}
	return nil, fmt.Errorf("cart for session %s kept changing during update: %w", sessionID, domain.ErrConflict)
}

func (s *redisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.redisClient.Del(ctx, s.keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart for session %s: %w", sessionID, err)
	}
	return nil
}
