package auth_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/readinglog/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestOAuth2LoginCreatesMember verifies a first provider login registers the
// member and a second login resolves the same member.
func TestOAuth2LoginCreatesMember(t *testing.T) {
	provider := newFakeGoogle(t)
	baseURL := setupAuthContainer(t, provider, nil)
	client := authsdk.NewSDKClient(baseURL)

	reader := identity{Sub: "g-100", Email: "reader@example.com", Name: "Reader"}
	session := login(t, client, provider, reader)

	me, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "reader@example.com", me.Email)
	require.Equal(t, "Reader", me.Nickname)
	require.Equal(t, "google", me.ProviderType)
	require.Equal(t, "USER", me.Role)

	reader.Name = "Renamed Reader"
	again := login(t, client, provider, reader)
	me2, err := again.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, me.ID, me2.ID)
	require.Equal(t, "Renamed Reader", me2.Nickname)
}

// TestOAuth2LoginRejectsBadCode verifies a code the provider refuses is a
// provider failure rather than a server error.
func TestOAuth2LoginRejectsBadCode(t *testing.T) {
	provider := newFakeGoogle(t)
	baseURL := setupAuthContainer(t, provider, nil)
	client := authsdk.NewSDKClient(baseURL)

	_, err := client.OAuth2Login(t.Context(), "google", "never-issued")
	require.Error(t, err)
	require.True(t, authsdk.IsCode(err, authsdk.ErrorCodeProviderError), err.Error())
}

// TestOAuth2LoginUnconfiguredProvider verifies a provider without
// credentials is reported as unsupported.
func TestOAuth2LoginUnconfiguredProvider(t *testing.T) {
	provider := newFakeGoogle(t)
	baseURL := setupAuthContainer(t, provider, nil)
	client := authsdk.NewSDKClient(baseURL)

	_, err := client.OAuth2Login(t.Context(), "kakao", "whatever")
	require.True(t, authsdk.IsCode(err, authsdk.ErrorCodeUnsupportedProvider), err)
}

// TestReissueRotatesRefreshToken verifies each refresh token is single use.
func TestReissueRotatesRefreshToken(t *testing.T) {
	provider := newFakeGoogle(t)
	baseURL := setupAuthContainer(t, provider, nil)
	client := authsdk.NewSDKClient(baseURL)

	session := login(t, client, provider, identity{Sub: "g-200", Email: "rotate@example.com", Name: "Rotate"})
	first := session.RefreshToken()

	pair, err := client.Reissue(t.Context(), first)
	require.NoError(t, err)
	assertTokenPair(t, pair)
	require.NotEqual(t, first, pair.RefreshToken)

	// Replaying the consumed token is refused.
	_, err = client.Reissue(t.Context(), first)
	assertStatus(t, err, http.StatusUnauthorized)

	// The rotated token still works.
	next, err := client.Reissue(t.Context(), pair.RefreshToken)
	require.NoError(t, err)
	assertTokenPair(t, next)
}

// TestReissueRejectsGarbage verifies malformed and missing refresh tokens.
func TestReissueRejectsGarbage(t *testing.T) {
	baseURL := setupAuthContainer(t, nil, nil)
	client := authsdk.NewSDKClient(baseURL)

	_, err := client.Reissue(t.Context(), "not-a-jwt")
	assertStatus(t, err, http.StatusUnauthorized)

	_, err = client.Reissue(t.Context(), "")
	assertStatus(t, err, http.StatusBadRequest)
}

// TestLogoutRevokesAccessToken verifies a logged out access token is refused
// and that the refresh token died with it.
func TestLogoutRevokesAccessToken(t *testing.T) {
	provider := newFakeGoogle(t)
	baseURL := setupAuthContainer(t, provider, nil)
	client := authsdk.NewSDKClient(baseURL)

	session := login(t, client, provider, identity{Sub: "g-300", Email: "bye@example.com", Name: "Bye"})
	stale := &authsdk.TokenPairResponse{
		AccessToken:          session.AccessToken(),
		AccessTokenExpiresAt: time.Now().Add(10 * time.Minute).UnixMilli(),
		RefreshToken:         session.RefreshToken(),
		TokenType:            "Bearer",
	}
	require.NoError(t, session.Logout(t.Context()))
	require.Empty(t, session.AccessToken())

	// The old access token has not expired, only the blacklist stops it.
	_, err := client.NewSession(stale).Me(t.Context())
	assertStatus(t, err, http.StatusUnauthorized)

	_, err = client.Reissue(t.Context(), stale.RefreshToken)
	assertStatus(t, err, http.StatusUnauthorized)
}

// TestAdminHousekeeping verifies the admin route is gated on role.
func TestAdminHousekeeping(t *testing.T) {
	provider := newFakeGoogle(t)
	baseURL := setupAuthContainer(t, provider, nil)
	client := authsdk.NewSDKClient(baseURL)

	member := login(t, client, provider, identity{Sub: "g-400", Email: "member@example.com", Name: "Member"})
	_, err := member.RunHousekeeping(t.Context())
	assertStatus(t, err, http.StatusForbidden)

	admin := login(t, client, provider, identity{Sub: "g-401", Email: adminEmail, Name: "Admin"})
	report, err := admin.RunHousekeeping(t.Context())
	require.NoError(t, err)
	require.NotNil(t, report)
}
