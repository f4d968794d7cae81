package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/store"
	"github.com/aussiebroadwan/readinglog/internal/auth/store/drivers/sqlite/gen"
)

type refreshTokensRepo struct {
	q *gen.Queries
}

func (r *refreshTokensRepo) Upsert(ctx context.Context, t domain.RefreshToken) error {
	return r.q.UpsertRefreshToken(ctx, gen.UpsertRefreshTokenParams{
		MemberID:  t.MemberID,
		TokenHash: t.TokenHash,
		ExpiresAt: toMillis(t.ExpiresAt),
		CreatedAt: toMillis(t.CreatedAt),
		UpdatedAt: toMillis(t.UpdatedAt),
	})
}

func (r *refreshTokensRepo) GetByMemberID(ctx context.Context, memberID int64) (domain.RefreshToken, error) {
	row, err := r.q.GetRefreshTokenByMemberID(ctx, memberID)
	if err != nil {
		return domain.RefreshToken{}, mapNotFound(err)
	}
	return mapRefreshToken(row), nil
}

func (r *refreshTokensRepo) Rotate(ctx context.Context, expectedHash string, next domain.RefreshToken) error {
	n, err := r.q.RotateRefreshToken(ctx, gen.RotateRefreshTokenParams{
		TokenHash:    next.TokenHash,
		ExpiresAt:    toMillis(next.ExpiresAt),
		UpdatedAt:    toMillis(next.UpdatedAt),
		MemberID:     next.MemberID,
		ExpectedHash: expectedHash,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func (r *refreshTokensRepo) DeleteByMemberID(ctx context.Context, memberID int64) error {
	return r.q.DeleteRefreshTokenByMemberID(ctx, memberID)
}

func (r *refreshTokensRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredRefreshTokens(ctx, toMillis(now))
}
