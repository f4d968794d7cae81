package domain

import "time"

// Role is the coarse permission level of a member.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Member is a registered reader. Members are created on first OAuth2 login
// and keyed by (ProviderType, ProviderID).
type Member struct {
	ID           int64
	Email        string
	Nickname     string
	Image        string
	ProviderType ProviderType
	ProviderID   string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the member holds the admin role.
func (m Member) IsAdmin() bool { return m.Role == RoleAdmin }

// Claims projects the member onto the payload carried by access tokens.
func (m Member) Claims() ClaimsPayload {
	return ClaimsPayload{
		MemberID: m.ID,
		Email:    m.Email,
		Nickname: m.Nickname,
		IsAdmin:  m.IsAdmin(),
	}
}
