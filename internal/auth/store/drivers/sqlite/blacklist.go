package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/store/drivers/sqlite/gen"
)

type blacklistRepo struct {
	q *gen.Queries
}

func (r *blacklistRepo) Add(ctx context.Context, t domain.BlacklistedToken) error {
	now := time.Now()
	return r.q.AddBlacklistedToken(ctx, gen.AddBlacklistedTokenParams{
		TokenHash: t.TokenHash,
		ExpiredAt: toMillis(t.ExpiresAt),
		CreatedAt: toMillis(now),
	})
}

func (r *blacklistRepo) IsBlacklisted(ctx context.Context, hash string, now time.Time) (bool, error) {
	return r.q.IsTokenBlacklisted(ctx, gen.IsTokenBlacklistedParams{
		TokenHash: hash,
		Now:       toMillis(now),
	})
}

func (r *blacklistRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredBlacklistedTokens(ctx, toMillis(now))
}
