package http

import (
	"net/http"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/principal"
	"github.com/aussiebroadwan/readinglog/internal/auth/service"
	"github.com/aussiebroadwan/readinglog/pkg/authsdk"
	"github.com/aussiebroadwan/readinglog/pkg/httpx"
)

func tokenPairResponse(p domain.TokenPair) authsdk.TokenPairResponse {
	return authsdk.TokenPairResponse{
		AccessToken:           p.Access.Token,
		AccessTokenExpiresAt:  p.Access.ExpiresAtMillis(),
		RefreshToken:          p.Refresh.Token,
		RefreshTokenExpiresAt: p.Refresh.ExpiresAtMillis(),
		TokenType:             "Bearer",
	}
}

type ReissueHandler struct {
	Authenticator *service.Authenticator
}

// ServeHTTP trades a refresh token for a new token pair.
//
//	@Summary		Reissue tokens
//	@Description	Trades a refresh token for a new access and refresh token pair. The presented refresh token is dead afterwards.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.ReissueRequest		true	"Refresh token"
//	@Success		200		{object}	authsdk.TokenPairResponse	"New token pair"
//	@Failure		400		{object}	authsdk.ErrorResponse		"Malformed body or empty token"
//	@Failure		401		{object}	authsdk.ErrorResponse		"Invalid, expired or rotated refresh token"
//	@Router			/api/v1/auth/reissue [post].
func (h *ReissueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "http.reissue"

	var req authsdk.ReissueRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, badRequest(op, "request body must be a JSON object with a refreshToken"))
		return
	}
	if req.RefreshToken == "" {
		writeError(w, r, badRequest(op, "refreshToken is required"))
		return
	}

	pair, err := h.Authenticator.Reissue(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tokenPairResponse(pair))
}

type LogoutHandler struct {
	Authenticator *service.Authenticator
}

// ServeHTTP revokes the presented access token.
//
//	@Summary		Logout
//	@Description	Blacklists the presented access token until it expires and, depending on configuration, deletes the member's refresh token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204	"Logged out"
//	@Failure		400	{object}	authsdk.ErrorResponse	"No access token presented"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid, expired or revoked access token"
//	@Router			/api/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, ok := principal.Get(r.Context())
	if !ok {
		writeError(w, r, autherr.New(autherr.KindMissingToken, "http.logout", nil))
		return
	}

	if err := h.Authenticator.Logout(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
