package authsdk

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// expiryBuffer reissues a little before the access token actually expires.
const expiryBuffer = 30 * time.Second

// Session represents an authenticated member with automatic token reissue.
// All Session methods reissue the pair when the access token is about to
// expire. Sessions are safe for concurrent use.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(client *SDKClient, pair *TokenPairResponse) *Session {
	s := &Session{client: client}
	s.setTokens(pair)
	return s
}

func (s *Session) setTokens(pair *TokenPairResponse) {
	s.accessToken = pair.AccessToken
	s.refreshToken = pair.RefreshToken
	s.expiresAt = time.UnixMilli(pair.AccessTokenExpiresAt).Add(-expiryBuffer)
}

// AccessToken returns the current access token without reissuing.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// getValidToken returns an access token that is not about to expire,
// reissuing the pair when needed.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	return s.reissue(ctx)
}

// Reissue rotates the session's token pair now.
func (s *Session) Reissue(ctx context.Context) error {
	_, err := s.reissue(ctx)
	return err
}

func (s *Session) reissue(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have reissued while we waited for the lock.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if s.refreshToken == "" {
		return "", errors.New("session has no refresh token")
	}

	pair, err := s.client.Reissue(ctx, s.refreshToken)
	if err != nil {
		return "", err
	}
	s.setTokens(pair)
	return s.accessToken, nil
}

// Me returns the authenticated member.
func (s *Session) Me(ctx context.Context) (*MemberResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/v1/members/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var m MemberResponse
	if err := decodeJSON(resp, &m, http.StatusOK); err != nil {
		return nil, err
	}
	return &m, nil
}

// Logout revokes the session's access token. The session is unusable
// afterwards.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	if err != nil {
		return err
	}
	if err := checkStatusNoContent(resp); err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken, s.refreshToken, s.expiresAt = "", "", time.Time{}
	s.mu.Unlock()
	return nil
}

// RunHousekeeping triggers one cleanup sweep. Requires an admin member.
func (s *Session) RunHousekeeping(ctx context.Context) (*HousekeepingResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/v1/admin/housekeeping", nil, nil)
	if err != nil {
		return nil, err
	}

	var r HousekeepingResponse
	if err := decodeJSON(resp, &r, http.StatusOK); err != nil {
		return nil, err
	}
	return &r, nil
}
