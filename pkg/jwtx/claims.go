package jwtx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token TTL constants. Services override them through config.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 30 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 14 * 24 * time.Hour
)

// TokenType separates access from refresh tokens so neither can stand in
// for the other.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Profile is the member identity baked into an access token.
type Profile struct {
	Email    string
	Nickname string
	Admin    bool
}

// Claims are the claims carried by both token types. Refresh tokens only
// populate the registered claims and Type.
type Claims struct {
	jwt.RegisteredClaims

	Type TokenType `json:"typ"`

	Email    string `json:"email,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Admin    bool   `json:"admin,omitempty"`
}

// NewAccessClaims builds access-token claims. Times are whole seconds, so
// the returned ExpiresAt is exactly what ends up in the signed token.
func NewAccessClaims(subject string, p Profile, ttl time.Duration, issuer string, now time.Time) Claims {
	c := newRegistered(subject, TypeAccess, ttl, issuer, now)
	c.Email = p.Email
	c.Nickname = p.Nickname
	c.Admin = p.Admin
	return c
}

// NewRefreshClaims builds refresh-token claims.
func NewRefreshClaims(subject string, ttl time.Duration, issuer string, now time.Time) Claims {
	return newRegistered(subject, TypeRefresh, ttl, issuer, now)
}

func newRegistered(subject string, typ TokenType, ttl time.Duration, issuer string, now time.Time) Claims {
	issued := now.UTC().Truncate(time.Second)
	expires := issued.Add(ttl).Truncate(time.Second)

	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issued),
			NotBefore: jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
			ID:        NewJTI(),
		},
		Type: typ,
	}
}

// NewJTI returns a random identifier for the "jti" claim. It keeps two
// tokens minted for the same subject in the same second distinct.
func NewJTI() string {
	return uuid.NewString()
}

// MemberID parses the subject as a positive numeric member id.
func (c *Claims) MemberID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidClaim
	}
	return id, nil
}

// Expiry returns the exp claim, or the zero time when it is absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
