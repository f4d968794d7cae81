package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/pkg/authsdk"
	"github.com/aussiebroadwan/readinglog/pkg/httpx"
	"github.com/aussiebroadwan/readinglog/pkg/slogx"
)

// writeError renders err. This is the only place a failure kind becomes an
// HTTP status and body.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var e *autherr.Error
	if !errors.As(err, &e) {
		e = &autherr.Error{Kind: autherr.KindInternal, Cause: err}
	}

	apiErr := authsdk.APIError{
		StatusCode:  e.Kind.Status(),
		Code:        e.Kind.Code(),
		Description: e.Description(),
	}

	switch e.Kind {
	case autherr.KindMissingToken:
		log.Info("request rejected", slog.String("op", e.Op), slog.String("error", apiErr.Code))
		httpx.WriteBearerError(w, apiErr.StatusCode, "", apiErr.Code, apiErr.Description)
	case autherr.KindInvalidToken, autherr.KindExpiredToken, autherr.KindUnauthorized:
		log.Info("request unauthorized",
			slog.String("op", e.Op),
			slog.String("reason", autherr.ReasonOf(e).Code()),
		)
		httpx.WriteBearerError(w, apiErr.StatusCode, "invalid_token", apiErr.Code, apiErr.Description)
	case autherr.KindForbidden:
		log.Info("request forbidden", slog.String("op", e.Op))
		httpx.WriteBearerError(w, apiErr.StatusCode, "insufficient_scope", apiErr.Code, apiErr.Description)
	case autherr.KindInvalidRequest, autherr.KindUnsupportedProvider, autherr.KindMalformedProfile:
		log.Info("request rejected", slog.String("op", e.Op), slog.String("error", apiErr.Code))
		httpx.WriteJSON(w, apiErr.StatusCode, apiErr)
	case autherr.KindProviderFailure:
		log.Warn("oauth2 provider failure", slog.String("op", e.Op), slog.Any("err", e.Cause))
		httpx.WriteJSON(w, apiErr.StatusCode, apiErr)
	case autherr.KindInternal:
		log.Error("internal error", slog.String("op", e.Op), slog.Any("err", err))
		httpx.WriteJSON(w, apiErr.StatusCode, apiErr)
	default:
		log.Error("unclassified error", slog.String("op", e.Op), slog.Any("err", err))
		httpx.WriteError(w, http.StatusInternalServerError, autherr.CodeInternal, autherr.KindInternal.Message())
	}
}

func badRequest(op, format string, args ...any) error {
	return autherr.Newf(autherr.KindInvalidRequest, op, format, args...)
}
