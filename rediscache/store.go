// Package rediscache, ExecuteCached için Redis tabanlı bir sonuç deposu
// sağlar. Aynı Redis'e bağlanan birden fazla süreç SELECT sonuçlarını
// paylaşabilir.
//
// Satırlar JSON olarak saklanır; bu yüzden okunan sayısal değerler float64
// olarak döner. Result.Decode bunları hedef alanın tipine çevirir.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	securesql "github.com/biyonik/go-secure-sql"
)

// DefaultPrefix is prepended to every key unless WithPrefix overrides it.
const DefaultPrefix = "securesql:"

var _ securesql.ResultCache = (*Store)(nil)

// Store implements securesql.ResultCache on top of a go-redis client.
type Store struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL, saklanan sonuçların ömrünü belirler. 0 süresiz saklar.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// New, verilen istemci üzerinde bir Store oluşturur. *redis.Client,
// *redis.ClusterClient ve *redis.Ring kullanılabilir.
//
// Örnek:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	qb := securesql.New(securesql.WithCache(rediscache.New(client, rediscache.WithTTL(time.Minute))))
func New(client redis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Get implements securesql.ResultCache. A missing key is a miss, not an error.
func (s *Store) Get(ctx context.Context, key string) (*securesql.Result, bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("rediscache: get %s: %w", key, err)
	}

	var res securesql.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false, fmt.Errorf("rediscache: decode %s: %w", key, err)
	}
	return &res, true, nil
}

// Set implements securesql.ResultCache.
func (s *Store) Set(ctx context.Context, key string, res *securesql.Result) error {
	if res == nil {
		return nil
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("rediscache: encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.key(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("rediscache: set %s: %w", key, err)
	}
	return nil
}

// Delete removes a memoized result.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("rediscache: delete %s: %w", key, err)
	}
	return nil
}
