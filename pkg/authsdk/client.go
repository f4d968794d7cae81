package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the readinglog authentication service.
// It provides access to unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSession wraps an existing token pair in a Session.
func (c *SDKClient) NewSession(pair *TokenPairResponse) *Session {
	return newSession(c, pair)
}
