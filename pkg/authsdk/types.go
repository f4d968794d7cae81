package authsdk

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the JSON body of every error the service returns.
// Client code should use the APIError type from errors.go instead.
type ErrorResponse struct {
	// Error is the stable machine readable code (e.g., "unauthorized")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// Token Types
// ============================================================================

// TokenPairResponse is returned by login and reissue.
type TokenPairResponse struct {
	AccessToken string `json:"accessToken"`

	// AccessTokenExpiresAt is the access token expiry in epoch milliseconds
	AccessTokenExpiresAt int64 `json:"accessTokenExpiresAt"`

	RefreshToken string `json:"refreshToken"`

	// RefreshTokenExpiresAt is the refresh token expiry in epoch milliseconds
	RefreshTokenExpiresAt int64 `json:"refreshTokenExpiresAt"`

	// TokenType is always "Bearer"
	TokenType string `json:"tokenType"`
}

// ReissueRequest is the body of POST /api/v1/auth/reissue.
type ReissueRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ============================================================================
// Member Types
// ============================================================================

// MemberResponse describes the authenticated member.
type MemberResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	Image        string `json:"image,omitempty"`
	ProviderType string `json:"providerType"`
	Role         string `json:"role"`
}

// ============================================================================
// Admin Types
// ============================================================================

// HousekeepingResponse reports how many rows one sweep removed.
type HousekeepingResponse struct {
	RefreshTokensDeleted int64 `json:"refreshTokensDeleted"`
	BlacklistDeleted     int64 `json:"blacklistDeleted"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Signer indicates the JWT signing capability status
	Signer string `json:"signer"`

	// Blacklist indicates the token blacklist backend status
	Blacklist string `json:"blacklist"`
}
