package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/service"
	"github.com/aussiebroadwan/readinglog/pkg/httpx"
	"github.com/aussiebroadwan/readinglog/pkg/idx"
)

//go:generate mockgen -destination=mocks_test.go -package=http . ProfileFetcher,Sweeper

// ProfileFetcher exchanges a provider authorization code for the member's
// canonical profile.
type ProfileFetcher interface {
	FetchUserInfo(ctx context.Context, provider domain.ProviderType, code string) (domain.OAuth2UserInfo, error)
}

type OAuth2CallbackHandler struct {
	Profiles      ProfileFetcher
	Authenticator *service.Authenticator
}

// ServeHTTP completes a provider login.
//
//	@Summary		OAuth2 login callback
//	@Description	Exchanges the provider authorization code for the member's profile, creates the member on first login and returns a token pair.
//	@Tags			OAuth2
//	@Produce		json
//	@Param			provider	path		string						true	"Provider"	Enums(kakao, naver, google)
//	@Param			code		query		string						true	"Authorization code"
//	@Success		200			{object}	authsdk.TokenPairResponse	"Token pair"
//	@Failure		400			{object}	authsdk.ErrorResponse		"Missing code or unsupported provider"
//	@Failure		401			{object}	authsdk.ErrorResponse		"Provider returned an incomplete profile"
//	@Failure		502			{object}	authsdk.ErrorResponse		"Provider could not be reached"
//	@Router			/oauth2/{provider} [get].
func (h *OAuth2CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "http.oauth2_callback"

	provider, err := domain.ParseProviderType(r.PathValue("provider"))
	if err != nil {
		writeError(w, r, autherr.Newf(autherr.KindUnsupportedProvider, op, "provider %q is not supported", r.PathValue("provider")))
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, r, badRequest(op, "code is required"))
		return
	}

	info, err := h.Profiles.FetchUserInfo(r.Context(), provider, code)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pair, err := h.Authenticator.LoginWithOAuth2(r.Context(), info)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenPairResponse(pair))
}

// AuthorizeURLBuilder knows where each provider's consent page lives.
type AuthorizeURLBuilder interface {
	AuthCodeURL(provider domain.ProviderType, state string) (string, error)
}

type OAuth2AuthorizeHandler struct {
	Providers AuthorizeURLBuilder
}

// ServeHTTP sends the browser to the provider's consent page. The caller may
// pass its own state and check it when the provider redirects back; a fresh
// one is generated otherwise.
//
//	@Summary		Start an OAuth2 login
//	@Description	Redirects to the provider's authorization page. The provider then redirects back with a code for GET /oauth2/{provider}.
//	@Tags			OAuth2
//	@Param			provider	path	string	true	"Provider"	Enums(kakao, naver, google)
//	@Param			state		query	string	false	"Opaque state echoed back by the provider"
//	@Success		302
//	@Failure		400	{object}	authsdk.ErrorResponse	"Unsupported or unconfigured provider"
//	@Router			/oauth2/{provider}/authorize [get].
func (h *OAuth2AuthorizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "http.oauth2_authorize"

	provider, err := domain.ParseProviderType(r.PathValue("provider"))
	if err != nil {
		writeError(w, r, autherr.Newf(autherr.KindUnsupportedProvider, op, "provider %q is not supported", r.PathValue("provider")))
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = idx.New().String()
	}

	target, err := h.Providers.AuthCodeURL(provider, state)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	http.Redirect(w, r, target, http.StatusFound)
}
