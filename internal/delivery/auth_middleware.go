package delivery

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/Vovarama1992/docreader/internal/domain"
	"github.com/Vovarama1992/docreader/internal/models"
	"github.com/Vovarama1992/docreader/internal/ports"
	"github.com/Vovarama1992/docreader/internal/view"
)

const SessionCookieName = "docreader_session"

type ctxKey int

const (
	sessionKey ctxKey = iota
	expiredKey
)

type SessionCookie struct {
	Secure bool
}

func (c SessionCookie) Set(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func SessionFrom(ctx context.Context) *models.Session {
	s, _ := ctx.Value(sessionKey).(*models.Session)
	return s
}

func sessionExpired(ctx context.Context) bool {
	v, _ := ctx.Value(expiredKey).(bool)
	return v
}

// LoadSession attaches the session, if any, to the request context. Cookie
// sessions slide: every request reissues the cookie with a fresh expiry.
func LoadSession(auth ports.AuthService, cookie SessionCookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			token := r.Header.Get("X-Auth")
			fromCookie := false
			if token == "" {
				if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
					token = c.Value
					fromCookie = true
				}
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			session, err := auth.ValidateToken(ctx, token)
			if err != nil {
				if fromCookie {
					cookie.Clear(w)
				}
				if errors.Is(err, domain.ErrSessionExpired) {
					ctx = context.WithValue(ctx, expiredKey, true)
				}
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if fromCookie {
				if fresh, err := auth.Refresh(session); err == nil {
					cookie.Set(w, fresh, session.ExpiresAt)
				}
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey, session)))
		})
	}
}

// RequireAuth guards JSON endpoints.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if SessionFrom(r.Context()) == nil {
			msg := "authentication required"
			if sessionExpired(r.Context()) {
				msg = domain.ErrSessionExpired.Error()
			}
			fail(w, http.StatusUnauthorized, CodeUnauthorized, msg)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePage guards HTML pages by redirecting to the login form.
func RequirePage(urls *view.URLBuilder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionFrom(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			q := url.Values{}
			if sessionExpired(r.Context()) {
				q.Set("error", "session_expired")
			} else {
				q.Set("redirect", r.URL.RequestURI())
			}
			http.Redirect(w, r, urls.URL("/login?"+q.Encode()), http.StatusFound)
		})
	}
}

// RequireAdmin must run after RequirePage.
func RequireAdmin(urls *view.URLBuilder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !SessionFrom(r.Context()).IsAdmin() {
				http.Redirect(w, r, urls.URL("/dashboard?error=unauthorized"), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
