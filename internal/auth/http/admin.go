package http

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/internal/auth/service"
	"github.com/aussiebroadwan/readinglog/pkg/authsdk"
	"github.com/aussiebroadwan/readinglog/pkg/httpx"
)

// Sweeper runs one housekeeping pass.
type Sweeper interface {
	RunOnce(ctx context.Context) (service.Report, error)
}

type HousekeepingHandler struct {
	Sweeper Sweeper
}

// ServeHTTP triggers a synchronous cleanup sweep.
//
//	@Summary		Run housekeeping
//	@Description	Deletes expired refresh tokens and blacklist entries now. Requires an admin member.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.HousekeepingResponse	"Rows deleted"
//	@Failure		401	{object}	authsdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.ErrorResponse			"Member is not an admin"
//	@Router			/api/v1/admin/housekeeping [post].
func (h *HousekeepingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report, err := h.Sweeper.RunOnce(r.Context())
	if err != nil {
		writeError(w, r, autherr.New(autherr.KindInternal, "http.housekeeping", err))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.HousekeepingResponse{
		RefreshTokensDeleted: report.RefreshTokensDeleted,
		BlacklistDeleted:     report.BlacklistDeleted,
	})
}
