package ws

import (
	"net/http"
	"strings"

	"github.com/Vovarama1992/docreader/internal/view"
)

// CheckOrigin admits same-origin upgrades plus the listed origins. A "*"
// entry admits everything.
func CheckOrigin(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = true
	}

	return func(r *http.Request) bool {
		if set["*"] {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return origin == view.BaseURLFromRequest(r) || set[origin]
	}
}
