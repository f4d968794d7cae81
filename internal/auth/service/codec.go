package service

import (
	"errors"
	"strconv"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/pkg/jwtx"
)

// TokenCodec signs and verifies member tokens in domain terms.
type TokenCodec interface {
	GenerateAccessToken(claims domain.ClaimsPayload) (domain.TokenGeneration, error)
	GenerateRefreshToken(memberID int64) (domain.TokenGeneration, error)
	ParseAccessToken(token string) (domain.ParsedToken, error)
	ParseRefreshToken(token string) (domain.ParsedToken, error)
}

type jwtCodec struct {
	c *jwtx.Codec
}

// NewTokenCodec adapts a jwtx.Codec. Parse failures come back as
// KindExpiredToken or KindInvalidToken and never carry the jwtx error.
func NewTokenCodec(c *jwtx.Codec) TokenCodec {
	return jwtCodec{c: c}
}

func (j jwtCodec) GenerateAccessToken(claims domain.ClaimsPayload) (domain.TokenGeneration, error) {
	if claims.MemberID <= 0 {
		return domain.TokenGeneration{}, autherr.Newf(autherr.KindInternal, "codec.generate_access", "member id must be positive")
	}
	tok, exp, err := j.c.GenerateAccessToken(subject(claims.MemberID), jwtx.Profile{
		Email:    claims.Email,
		Nickname: claims.Nickname,
		Admin:    claims.IsAdmin,
	})
	if err != nil {
		return domain.TokenGeneration{}, autherr.New(autherr.KindInternal, "codec.generate_access", err)
	}
	return domain.TokenGeneration{Token: tok, ExpiresAt: exp}, nil
}

func (j jwtCodec) GenerateRefreshToken(memberID int64) (domain.TokenGeneration, error) {
	if memberID <= 0 {
		return domain.TokenGeneration{}, autherr.Newf(autherr.KindInternal, "codec.generate_refresh", "member id must be positive")
	}
	tok, exp, err := j.c.GenerateRefreshToken(subject(memberID))
	if err != nil {
		return domain.TokenGeneration{}, autherr.New(autherr.KindInternal, "codec.generate_refresh", err)
	}
	return domain.TokenGeneration{Token: tok, ExpiresAt: exp}, nil
}

func (j jwtCodec) ParseAccessToken(token string) (domain.ParsedToken, error) {
	claims, err := j.c.ParseAccessToken(token)
	if err != nil {
		return domain.ParsedToken{}, classify("codec.parse_access", err)
	}
	return parsed(claims), nil
}

func (j jwtCodec) ParseRefreshToken(token string) (domain.ParsedToken, error) {
	claims, err := j.c.ParseRefreshToken(token)
	if err != nil {
		return domain.ParsedToken{}, classify("codec.parse_refresh", err)
	}
	return parsed(claims), nil
}

func subject(memberID int64) string { return strconv.FormatInt(memberID, 10) }

func parsed(c *jwtx.Claims) domain.ParsedToken {
	// MemberID was already checked by the jwtx parser.
	id, _ := c.MemberID()
	return domain.ParsedToken{
		Claims: domain.ClaimsPayload{
			MemberID: id,
			Email:    c.Email,
			Nickname: c.Nickname,
			IsAdmin:  c.Admin,
		},
		ID:        c.ID,
		ExpiresAt: c.Expiry(),
	}
}

func classify(op string, err error) error {
	if errors.Is(err, jwtx.ErrExpired) {
		return &autherr.Error{Kind: autherr.KindExpiredToken, Op: op}
	}
	return &autherr.Error{Kind: autherr.KindInvalidToken, Op: op}
}

type unauthorizedCodec struct {
	TokenCodec
}

// UnauthorizedOnFailure wraps inner so every parse failure is reported as
// KindUnauthorized. The original kind survives as the error's Reason.
func UnauthorizedOnFailure(inner TokenCodec) TokenCodec {
	return unauthorizedCodec{TokenCodec: inner}
}

func (u unauthorizedCodec) ParseAccessToken(token string) (domain.ParsedToken, error) {
	p, err := u.TokenCodec.ParseAccessToken(token)
	if err != nil {
		return domain.ParsedToken{}, autherr.Unauthorized("codec.parse_access", err)
	}
	return p, nil
}

func (u unauthorizedCodec) ParseRefreshToken(token string) (domain.ParsedToken, error) {
	p, err := u.TokenCodec.ParseRefreshToken(token)
	if err != nil {
		return domain.ParsedToken{}, autherr.Unauthorized("codec.parse_refresh", err)
	}
	return p, nil
}
