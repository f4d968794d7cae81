package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Reissue trades a refresh token for a new token pair. The presented refresh
// token is dead afterwards.
func (c *SDKClient) Reissue(ctx context.Context, refreshToken string) (*TokenPairResponse, error) {
	body, err := json.Marshal(ReissueRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/reissue", bytes.NewReader(body), map[string]string{
		"Content-Type": "application/json",
	})
	if err != nil {
		return nil, err
	}

	var pair TokenPairResponse
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return nil, err
	}
	return &pair, nil
}

// OAuth2Login completes a provider login with the authorization code the
// provider redirected back with.
func (c *SDKClient) OAuth2Login(ctx context.Context, provider, code string) (*TokenPairResponse, error) {
	path := "/oauth2/" + url.PathEscape(provider) + "?" + url.Values{"code": {code}}.Encode()

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var pair TokenPairResponse
	if err := decodeJSON(resp, &pair, http.StatusOK); err != nil {
		return nil, err
	}
	return &pair, nil
}

// AuthenticateWithOAuth2 logs in with a provider code and returns a Session.
func (c *SDKClient) AuthenticateWithOAuth2(ctx context.Context, provider, code string) (*Session, error) {
	pair, err := c.OAuth2Login(ctx, provider, code)
	if err != nil {
		return nil, err
	}
	return newSession(c, pair), nil
}
