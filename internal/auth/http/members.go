package http

import (
	"net/http"

	"github.com/aussiebroadwan/readinglog/internal/auth/principal"
	"github.com/aussiebroadwan/readinglog/internal/auth/service"
	"github.com/aussiebroadwan/readinglog/pkg/authsdk"
	"github.com/aussiebroadwan/readinglog/pkg/httpx"
)

type MeHandler struct {
	Members *service.MemberService
}

// ServeHTTP returns the authenticated member.
//
//	@Summary		Current member
//	@Description	Returns the profile of the member the access token belongs to.
//	@Tags			Members
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.MemberResponse	"Member profile"
//	@Failure		401	{object}	authsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/api/v1/members/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := principal.CanActivate(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	m, err := h.Members.Get(r.Context(), p.MemberID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MemberResponse{
		ID:           m.ID,
		Email:        m.Email,
		Nickname:     m.Nickname,
		Image:        m.Image,
		ProviderType: m.ProviderType.String(),
		Role:         string(m.Role),
	})
}
