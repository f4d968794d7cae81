// Package social exchanges OAuth2 authorization codes with the supported
// identity providers and maps their user-info payloads onto one profile.
package social

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"golang.org/x/oauth2"
)

// maxProfileBody caps how much of a user-info response we read.
const maxProfileBody = 1 << 20

// ProviderConfig are the credentials and endpoints for one provider. Empty
// endpoint fields fall back to the provider's public defaults.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

type endpoints struct {
	auth, token, userInfo string
	style                 oauth2.AuthStyle
	scopes                []string
}

var defaults = map[domain.ProviderType]endpoints{
	domain.ProviderKakao: {
		auth:     "https://kauth.kakao.com/oauth/authorize",
		token:    "https://kauth.kakao.com/oauth/token",
		userInfo: "https://kapi.kakao.com/v2/user/me",
		style:    oauth2.AuthStyleInParams,
		scopes:   []string{"profile_nickname", "profile_image", "account_email"},
	},
	domain.ProviderNaver: {
		auth:     "https://nid.naver.com/oauth2.0/authorize",
		token:    "https://nid.naver.com/oauth2.0/token",
		userInfo: "https://openapi.naver.com/v1/nid/me",
		style:    oauth2.AuthStyleInParams,
	},
	domain.ProviderGoogle: {
		auth:     "https://accounts.google.com/o/oauth2/auth",
		token:    "https://oauth2.googleapis.com/token",
		userInfo: "https://openidconnect.googleapis.com/v1/userinfo",
		style:    oauth2.AuthStyleAutoDetect,
		scopes:   []string{"openid", "email", "profile"},
	},
}

type provider struct {
	oauth    *oauth2.Config
	userInfo string
}

// Client talks to the configured providers. Providers without a client id
// are treated as unsupported.
type Client struct {
	providers  map[domain.ProviderType]provider
	httpClient *http.Client
}

// NewClient builds a Client. A nil httpClient gets a 10 second timeout.
func NewClient(configs map[domain.ProviderType]ProviderConfig, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	c := &Client{
		providers:  make(map[domain.ProviderType]provider, len(configs)),
		httpClient: httpClient,
	}

	for pt, cfg := range configs {
		if cfg.ClientID == "" {
			continue
		}
		def, ok := defaults[pt]
		if !ok || !Supported(pt) {
			return nil, fmt.Errorf("social: no defaults for provider %q", pt)
		}

		scopes := cfg.Scopes
		if len(scopes) == 0 {
			scopes = def.scopes
		}

		c.providers[pt] = provider{
			oauth: &oauth2.Config{
				ClientID:     cfg.ClientID,
				ClientSecret: cfg.ClientSecret,
				RedirectURL:  cfg.RedirectURL,
				Scopes:       scopes,
				Endpoint: oauth2.Endpoint{
					AuthURL:   orDefault(cfg.AuthURL, def.auth),
					TokenURL:  orDefault(cfg.TokenURL, def.token),
					AuthStyle: def.style,
				},
			},
			userInfo: orDefault(cfg.UserInfoURL, def.userInfo),
		}
	}

	return c, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Configured reports whether provider has credentials.
func (c *Client) Configured(pt domain.ProviderType) bool {
	_, ok := c.providers[pt]
	return ok
}

// AuthCodeURL is where a browser should be sent to start a login.
func (c *Client) AuthCodeURL(pt domain.ProviderType, state string) (string, error) {
	p, ok := c.providers[pt]
	if !ok {
		return "", unsupported(pt)
	}
	return p.oauth.AuthCodeURL(state), nil
}

// FetchUserInfo exchanges code for a provider access token, fetches the
// member's profile with it and maps the result.
func (c *Client) FetchUserInfo(ctx context.Context, pt domain.ProviderType, code string) (domain.OAuth2UserInfo, error) {
	const op = "social.fetch_user_info"

	p, ok := c.providers[pt]
	if !ok {
		return domain.OAuth2UserInfo{}, unsupported(pt)
	}
	if code == "" {
		return domain.OAuth2UserInfo{}, autherr.Newf(autherr.KindInvalidRequest, op, "authorization code is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return domain.OAuth2UserInfo{}, autherr.New(autherr.KindProviderFailure, op, fmt.Errorf("exchange code: %w", err))
	}

	resp, err := p.oauth.Client(ctx, tok).Get(p.userInfo)
	if err != nil {
		return domain.OAuth2UserInfo{}, autherr.New(autherr.KindProviderFailure, op, fmt.Errorf("fetch profile: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileBody))
	if err != nil {
		return domain.OAuth2UserInfo{}, autherr.New(autherr.KindProviderFailure, op, fmt.Errorf("read profile: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return domain.OAuth2UserInfo{}, autherr.New(autherr.KindProviderFailure, op, fmt.Errorf("profile endpoint returned %d", resp.StatusCode))
	}

	return Map(pt, body)
}

func unsupported(pt domain.ProviderType) error {
	return autherr.Newf(autherr.KindUnsupportedProvider, "social", "provider %q is not configured", pt)
}
