package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/store"
	"github.com/aussiebroadwan/readinglog/pkg/cryptox"
)

// TokenBlacklist revokes access tokens ahead of their natural expiry. Tokens
// are keyed by fingerprint so the raw string is never stored.
type TokenBlacklist struct {
	Store store.Blacklist
	Now   func() time.Time
}

func (b *TokenBlacklist) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// AddToBlacklist records token as revoked until expiresAt. Adding the same
// token twice overwrites the first entry.
func (b *TokenBlacklist) AddToBlacklist(ctx context.Context, token string, expiresAt time.Time) error {
	err := b.Store.Add(ctx, domain.BlacklistedToken{
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return autherr.New(autherr.KindInternal, "blacklist.add", err)
	}
	return nil
}

// IsBlacklisted reports whether token was revoked and its entry is still live.
func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	ok, err := b.Store.IsBlacklisted(ctx, cryptox.FingerprintToken(token), b.now())
	if err != nil {
		return false, autherr.New(autherr.KindInternal, "blacklist.is_blacklisted", err)
	}
	return ok, nil
}
