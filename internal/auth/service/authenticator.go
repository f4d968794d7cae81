package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/principal"
	"github.com/aussiebroadwan/readinglog/internal/auth/store"
	"github.com/aussiebroadwan/readinglog/pkg/cryptox"
	"github.com/aussiebroadwan/readinglog/pkg/slogx"
)

// Authenticator drives the token lifecycle of a member: login, reissue,
// logout and per-request authentication.
//
// Codec should report every parse failure as unauthorized, see
// UnauthorizedOnFailure.
type Authenticator struct {
	Store     store.Store
	Blacklist *TokenBlacklist
	Codec     TokenCodec

	// RevokeRefreshOnLogout deletes the member's refresh token on logout.
	// When false logout only blacklists the access token.
	RevokeRefreshOnLogout bool

	// AdminEmails are granted the admin role when their member is created.
	AdminEmails []string

	Now func() time.Time

	reissue singleflight.Group
}

func (a *Authenticator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *Authenticator) isAdminEmail(email string) bool {
	if email == "" {
		return false
	}
	for _, e := range a.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

// Login issues a fresh token pair for an existing member and stores the
// refresh token, replacing any the member held before.
func (a *Authenticator) Login(ctx context.Context, m domain.Member) (domain.TokenPair, error) {
	const op = "authenticator.login"

	pair, row, err := a.mint(m)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if err := a.Store.RefreshTokens().Upsert(ctx, row); err != nil {
		return domain.TokenPair{}, autherr.New(autherr.KindInternal, op, err)
	}

	slogx.FromContext(ctx).Info("member logged in", slog.Int64("member_id", m.ID))
	return pair, nil
}

// LoginWithOAuth2 resolves the member behind a provider profile, creating it
// on first sight, and logs it in. Email, nickname and image follow the
// provider on every login.
func (a *Authenticator) LoginWithOAuth2(ctx context.Context, info domain.OAuth2UserInfo) (domain.TokenPair, error) {
	const op = "authenticator.login_oauth2"

	if info.ProviderID == "" {
		return domain.TokenPair{}, autherr.Newf(autherr.KindMalformedProfile, op, "provider id is missing")
	}

	var (
		pair    domain.TokenPair
		created bool
		member  domain.Member
	)
	login := func(tx store.Tx) error {
		m, isNew, err := a.resolveMember(ctx, tx, info)
		if err != nil {
			return err
		}
		p, row, err := a.mint(m)
		if err != nil {
			return err
		}
		if err := tx.RefreshTokens().Upsert(ctx, row); err != nil {
			return err
		}
		pair, created, member = p, isNew, m
		return nil
	}

	err := a.Store.WithTx(ctx, login)
	if errors.Is(err, store.ErrAlreadyExists) {
		// Another login created the member first; the second pass finds it.
		err = a.Store.WithTx(ctx, login)
	}
	if err != nil {
		if autherr.KindOf(err) != autherr.KindInternal {
			return domain.TokenPair{}, err
		}
		return domain.TokenPair{}, autherr.New(autherr.KindInternal, op, err)
	}

	slogx.FromContext(ctx).Info("member logged in",
		slog.Int64("member_id", member.ID),
		slog.String("provider", info.ProviderType.String()),
		slog.Bool("created", created),
	)
	return pair, nil
}

func (a *Authenticator) resolveMember(ctx context.Context, tx store.Tx, info domain.OAuth2UserInfo) (domain.Member, bool, error) {
	m, err := tx.Members().GetByProvider(ctx, info.ProviderType, info.ProviderID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		role := domain.RoleUser
		if a.isAdminEmail(info.Email) {
			role = domain.RoleAdmin
		}
		now := a.now()
		m, err = tx.Members().Create(ctx, domain.Member{
			Email:        info.Email,
			Nickname:     info.Nickname,
			Image:        info.Image,
			ProviderType: info.ProviderType,
			ProviderID:   info.ProviderID,
			Role:         role,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return domain.Member{}, false, err
		}
		return m, true, nil
	case err != nil:
		return domain.Member{}, false, err
	}

	if m.Email != info.Email || m.Nickname != info.Nickname || m.Image != info.Image {
		if err := tx.Members().UpdateProfile(ctx, m.ID, info.Email, info.Nickname, info.Image, a.now()); err != nil {
			return domain.Member{}, false, err
		}
		m.Email, m.Nickname, m.Image = info.Email, info.Nickname, info.Image
	}
	return m, false, nil
}

// Reissue trades a refresh token for a new pair. The presented token must
// be the one currently stored for its member; afterwards it is dead.
//
// Concurrent calls with the same token inside this process share one
// rotation and all receive the same pair. Across processes the store's
// compare-and-swap lets exactly one rotation win.
func (a *Authenticator) Reissue(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	const op = "authenticator.reissue"

	if refreshToken == "" {
		return domain.TokenPair{}, autherr.Newf(autherr.KindInvalidRequest, op, "refresh token is required")
	}

	parsed, err := a.Codec.ParseRefreshToken(refreshToken)
	if err != nil {
		return domain.TokenPair{}, autherr.Unauthorized(op, err)
	}

	fp := cryptox.FingerprintToken(refreshToken)
	v, err, shared := a.reissue.Do(fp, func() (any, error) {
		// The flight outlives whichever caller started it.
		return a.rotate(context.WithoutCancel(ctx), parsed.Claims.MemberID, fp)
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Info("token reissued",
		slog.Int64("member_id", parsed.Claims.MemberID),
		slog.Bool("shared", shared),
	)
	return v.(domain.TokenPair), nil
}

func (a *Authenticator) rotate(ctx context.Context, memberID int64, fp string) (domain.TokenPair, error) {
	const op = "authenticator.reissue"
	l := slogx.FromContext(ctx)

	var pair domain.TokenPair
	err := a.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.RefreshTokens().GetByMemberID(ctx, memberID)
		if errors.Is(err, store.ErrNotFound) {
			return autherr.Newf(autherr.KindUnauthorized, op, "refresh token has been revoked")
		}
		if err != nil {
			return err
		}

		if !cryptox.EqualFingerprints(current.TokenHash, fp) {
			l.Debug("stale refresh token presented", slog.String("fingerprint", fp))
			return autherr.Newf(autherr.KindUnauthorized, op, "refresh token is no longer valid")
		}
		if current.Expired(a.now()) {
			return &autherr.Error{Kind: autherr.KindUnauthorized, Op: op, Reason: autherr.KindExpiredToken}
		}

		m, err := tx.Members().GetByID(ctx, memberID)
		if errors.Is(err, store.ErrNotFound) {
			return autherr.Newf(autherr.KindUnauthorized, op, "member no longer exists")
		}
		if err != nil {
			return err
		}

		p, row, err := a.mint(m)
		if err != nil {
			return err
		}

		err = tx.RefreshTokens().Rotate(ctx, fp, row)
		if errors.Is(err, store.ErrConflict) {
			return autherr.Newf(autherr.KindUnauthorized, op, "refresh token is no longer valid")
		}
		if err != nil {
			return err
		}

		pair = p
		return nil
	})
	if err != nil {
		if autherr.KindOf(err) != autherr.KindInternal {
			return domain.TokenPair{}, err
		}
		return domain.TokenPair{}, autherr.New(autherr.KindInternal, op, err)
	}
	return pair, nil
}

// Logout revokes the access token the principal authenticated with. The
// token stays blacklisted until its own expiry.
func (a *Authenticator) Logout(ctx context.Context, p principal.Principal) error {
	const op = "authenticator.logout"

	if p.Token == "" {
		return autherr.New(autherr.KindMissingToken, op, nil)
	}

	if err := a.Blacklist.AddToBlacklist(ctx, p.Token, p.ExpiresAt); err != nil {
		return err
	}

	if a.RevokeRefreshOnLogout {
		if err := a.Store.RefreshTokens().DeleteByMemberID(ctx, p.MemberID); err != nil {
			return autherr.New(autherr.KindInternal, op, err)
		}
	}

	slogx.FromContext(ctx).Info("member logged out",
		slog.Int64("member_id", p.MemberID),
		slog.Bool("refresh_revoked", a.RevokeRefreshOnLogout),
	)
	return nil
}

// Authenticate verifies an access token and resolves the principal behind
// it. The blacklist is consulted only after the signature and expiry hold.
func (a *Authenticator) Authenticate(ctx context.Context, accessToken string) (principal.Principal, error) {
	const op = "authenticator.authenticate"

	if accessToken == "" {
		return principal.Principal{}, autherr.New(autherr.KindMissingToken, op, nil)
	}

	parsed, err := a.Codec.ParseAccessToken(accessToken)
	if err != nil {
		return principal.Principal{}, autherr.Unauthorized(op, err)
	}

	revoked, err := a.Blacklist.IsBlacklisted(ctx, accessToken)
	if err != nil {
		return principal.Principal{}, err
	}
	if revoked {
		return principal.Principal{}, autherr.Newf(autherr.KindUnauthorized, op, "the token has been revoked")
	}

	return principal.Principal{
		MemberID:  parsed.Claims.MemberID,
		Email:     parsed.Claims.Email,
		Nickname:  parsed.Claims.Nickname,
		IsAdmin:   parsed.Claims.IsAdmin,
		Token:     accessToken,
		ExpiresAt: parsed.ExpiresAt,
	}, nil
}

// mint signs a pair for m and returns the refresh row to persist.
func (a *Authenticator) mint(m domain.Member) (domain.TokenPair, domain.RefreshToken, error) {
	access, err := a.Codec.GenerateAccessToken(m.Claims())
	if err != nil {
		return domain.TokenPair{}, domain.RefreshToken{}, err
	}
	refresh, err := a.Codec.GenerateRefreshToken(m.ID)
	if err != nil {
		return domain.TokenPair{}, domain.RefreshToken{}, err
	}

	now := a.now()
	row := domain.RefreshToken{
		MemberID:  m.ID,
		TokenHash: cryptox.FingerprintToken(refresh.Token),
		ExpiresAt: refresh.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return domain.TokenPair{Access: access, Refresh: refresh}, row, nil
}
