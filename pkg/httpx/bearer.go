package httpx

import (
	"net/http"
	"strings"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively. It reports false when
// the header is missing, uses another scheme or carries an empty token.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// WriteBearerError writes an RFC 6750 challenge followed by a JSON body.
// bearerCode is the RFC error ("invalid_token", "insufficient_scope"), or
// empty when the request simply carried no credentials.
func WriteBearerError(w http.ResponseWriter, status int, bearerCode, errCode, description string) {
	challenge := `Bearer realm="readinglog"`
	if bearerCode != "" {
		challenge += `, error="` + bearerCode + `"`
		if description != "" {
			challenge += `, error_description="` + description + `"`
		}
	}

	w.Header().Set("WWW-Authenticate", challenge)
	WriteError(w, status, errCode, description)
}
