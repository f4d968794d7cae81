package domain_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestParseProviderType(t *testing.T) {
	tests := []struct {
		in   string
		want domain.ProviderType
		ok   bool
	}{
		{"kakao", domain.ProviderKakao, true},
		{"NAVER", domain.ProviderNaver, true},
		{" google ", domain.ProviderGoogle, true},
		{"github", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseProviderType(tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, domain.ErrUnknownProvider)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMemberClaims(t *testing.T) {
	m := domain.Member{ID: 42, Email: "reader@example.com", Nickname: "reader", Role: domain.RoleAdmin}

	require.Equal(t, domain.ClaimsPayload{
		MemberID: 42,
		Email:    "reader@example.com",
		Nickname: "reader",
		IsAdmin:  true,
	}, m.Claims())

	m.Role = domain.RoleUser
	require.False(t, m.Claims().IsAdmin)
}

func TestRefreshTokenExpired(t *testing.T) {
	exp := time.UnixMilli(1_700_000_000_000)
	rt := domain.RefreshToken{ExpiresAt: exp}

	require.False(t, rt.Expired(exp.Add(-time.Millisecond)))
	require.True(t, rt.Expired(exp), "expiry instant itself is stale")
	require.True(t, rt.Expired(exp.Add(time.Second)))
}

func TestTokenGenerationMillis(t *testing.T) {
	g := domain.TokenGeneration{ExpiresAt: time.Unix(1_700_000_000, 0)}
	require.Equal(t, int64(1_700_000_000_000), g.ExpiresAtMillis())
}
