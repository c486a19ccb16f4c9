// Package visitorcookie reads and writes the cookie naming a visitor's
// navigation session.
package visitorcookie

import (
	"net/http"
	"strings"

	"github.com/louisbranch/showcase/internal/services/web/platform/requestmeta"
)

// Name is the visitor cookie name.
const Name = "showcase_visitor"

// Read returns the trimmed visitor id when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Write sets the visitor cookie.
func Write(w http.ResponseWriter, r *http.Request, visitorID string, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(visitorID),
		Path:     "/",
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}
