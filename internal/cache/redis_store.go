package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps entries as JSON strings that expire after ttl.
type RedisStore struct {
	rdb       redis.Cmdable
	namespace string
	ttl       time.Duration
}

func NewRedisStore(rdb redis.Cmdable, namespace string, ttl time.Duration) *RedisStore {
	if namespace == "" {
		namespace = ExtractionNamespace
	}
	return &RedisStore{rdb: rdb, namespace: namespace, ttl: ttl}
}

func (s *RedisStore) key(prompt string) string { return Key(s.namespace, prompt) }

func (s *RedisStore) Lookup(ctx context.Context, prompt string) (*Entry, error) {
	key := s.key(prompt)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e, ok := decodeEntry(raw)
	if !ok {
		// unreadable entries are evicted and count as a miss
		_ = s.rdb.Del(ctx, key).Err()
		return nil, nil
	}
	return e, nil
}

func (s *RedisStore) Save(ctx context.Context, prompt string, e Entry) error {
	if strings.TrimSpace(e.GeneratedText) == "" {
		return ErrEmptyEntry
	}
	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now().UTC()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(prompt), b, s.ttl).Err()
}

func (s *RedisStore) Forget(ctx context.Context, prompt string) error {
	return s.rdb.Del(ctx, s.key(prompt)).Err()
}

func decodeEntry(raw []byte) (*Entry, bool) {
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false
	}
	if strings.TrimSpace(e.GeneratedText) == "" {
		return nil, false
	}
	return &e, true
}
