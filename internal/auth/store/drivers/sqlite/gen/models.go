package gen

type Member struct {
	ID           int64
	Email        string
	Nickname     string
	Image        string
	ProviderType string
	ProviderID   string
	Role         string
	CreatedAt    int64
	UpdatedAt    int64
}

type RefreshToken struct {
	MemberID  int64
	TokenHash string
	ExpiresAt int64
	CreatedAt int64
	UpdatedAt int64
}

type BlacklistedToken struct {
	TokenHash string
	ExpiredAt int64
	CreatedAt int64
}
