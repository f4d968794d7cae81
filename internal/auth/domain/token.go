package domain

import "time"

// ClaimsPayload is the member identity embedded in an access token. It is
// built at login or reissue and never mutated afterwards.
type ClaimsPayload struct {
	MemberID int64
	Email    string
	Nickname string
	IsAdmin  bool
}

// TokenGeneration is a freshly signed token and the instant it stops being
// valid. It only lives long enough to be written into a response.
type TokenGeneration struct {
	Token     string
	ExpiresAt time.Time
}

// ExpiresAtMillis returns the expiry as epoch milliseconds, the unit used on the wire.
func (g TokenGeneration) ExpiresAtMillis() int64 {
	return g.ExpiresAt.UnixMilli()
}

// TokenPair is what login and reissue hand back to the caller.
type TokenPair struct {
	Access  TokenGeneration
	Refresh TokenGeneration
}

// ParsedToken is a verified token together with the parts of its claims the
// auth pipeline needs after verification.
type ParsedToken struct {
	Claims    ClaimsPayload
	ID        string // jti
	ExpiresAt time.Time
}

// RefreshToken is the single live refresh token row a member may own.
type RefreshToken struct {
	MemberID  int64
	TokenHash string // base64url SHA-256 of the token string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the row is stale at now.
func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// BlacklistedToken marks a revoked access token until its own natural expiry.
type BlacklistedToken struct {
	TokenHash string
	ExpiresAt time.Time
}
