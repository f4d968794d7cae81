package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/readinglog/internal/auth/principal"
	"github.com/aussiebroadwan/readinglog/internal/auth/service"
	"github.com/aussiebroadwan/readinglog/pkg/httpx"
	"github.com/aussiebroadwan/readinglog/pkg/slogx"
)

// Scope gives every request its own principal slot and empties it when the
// request finishes, whether the handler returns or panics.
func Scope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, clear := principal.Scope(r.Context())
		defer clear()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authenticate resolves the bearer token into the request's principal. A
// request without a token is rejected unless optional is set, in which case
// it continues anonymously. A token that is present but invalid, expired or
// revoked is always rejected.
func Authenticate(auth *service.Authenticator, optional bool) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := httpx.BearerToken(r)
			if !ok {
				if optional {
					next.ServeHTTP(w, r)
					return
				}
				_, err := principal.CanActivate(r.Context())
				writeError(w, r, err)
				return
			}

			p, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, r, err)
				return
			}

			ctx := r.Context()
			if err := principal.Set(ctx, p); err != nil {
				writeError(w, r, err)
				return
			}
			ctx = slogx.Annotate(ctx, "member_id", p.MemberID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireMember admits only requests with a principal.
func RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := principal.CanActivate(r.Context()); err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin admits only admin principals.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := principal.RequireAdmin(r.Context()); err != nil {
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MemberKey is a rate limit key extractor for authenticated routes.
func MemberKey(r *http.Request) string {
	p, ok := principal.Get(r.Context())
	if !ok {
		return ""
	}
	return "member:" + strconv.FormatInt(p.MemberID, 10)
}
