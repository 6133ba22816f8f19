package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/communityhub/backend/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "listing:"

// Store is a read-through cache for listing responses. Keys are
// resource-name + serialized filter params; concurrent fetches for the
// same key are collapsed to one, and any mutation on a resource drops
// every key under that resource's prefix.
type Store struct {
	redis redis.UniversalClient
	ttl   time.Duration
	group singleflight.Group
}

func NewStore(client redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{
		redis: client,
		ttl:   ttl,
	}
}

// GetOrFetch returns the cached payload for resource+params, calling fetch
// on a miss. Cache failures degrade to a direct fetch; they never fail the
// request.
func (s *Store) GetOrFetch(ctx context.Context, resource, params string, fetch func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	key := keyPrefix + resource + ":" + params

	if cached, err := s.redis.Get(ctx, key).Bytes(); err == nil {
		return cached, nil
	} else if !errors.Is(err, redis.Nil) {
		logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		payload, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		if err := s.redis.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}

		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	//nolint:forcetypeassert
	return v.([]byte), nil
}

// Invalidate drops every cached listing for the resource.
func (s *Store) Invalidate(ctx context.Context, resource string) {
	pattern := keyPrefix + resource + ":*"

	iter := s.redis.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("cache invalidate scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}

	if len(keys) == 0 {
		return
	}

	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("cache invalidate del failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

// MarshalListing is the shared helper services use to build cacheable
// payloads.
func MarshalListing(v any) ([]byte, error) {
	return json.Marshal(v)
}
