package auth

import (
	"net/http"
	"strings"
)

// CookieName is the cookie carrying the session token.
const CookieName = "token"

// TokenFromRequest returns the session token from the cookie, falling back to
// an "Authorization: Bearer" header. It returns "" when neither is present.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}

	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
