// Package redis provides a Blacklist backed by Redis keys that expire
// together with the token they revoke.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces blacklist keys when no prefix is configured.
const DefaultPrefix = "readinglog:blacklist:"

// Blacklist stores one key per revoked token fingerprint. Redis drops the key
// once its TTL elapses, so there is nothing left for housekeeping to sweep.
type Blacklist struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

// NewBlacklist connects to redisURL (for example redis://:pass@host:6379/0)
// and fails fast when the server does not answer a PING.
func NewBlacklist(ctx context.Context, redisURL, prefix string) (*Blacklist, error) {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &Blacklist{rdb: rdb, prefix: prefix, now: time.Now}, nil
}

func (b *Blacklist) key(hash string) string { return b.prefix + hash }

// Add writes the entry with a TTL matching the remaining token lifetime.
// Tokens that have already expired are skipped, they are rejected anyway.
func (b *Blacklist) Add(ctx context.Context, t domain.BlacklistedToken) error {
	ttl := t.ExpiresAt.Sub(b.now())
	if ttl <= 0 {
		return nil
	}
	return b.rdb.Set(ctx, b.key(t.TokenHash), "1", ttl).Err()
}

func (b *Blacklist) IsBlacklisted(ctx context.Context, hash string, _ time.Time) (bool, error) {
	n, err := b.rdb.Exists(ctx, b.key(hash)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpired is a no-op; key expiry already purges stale entries.
func (b *Blacklist) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (b *Blacklist) Ping(ctx context.Context) error { return b.rdb.Ping(ctx).Err() }

func (b *Blacklist) Close() error { return b.rdb.Close() }
