package delivery

import (
	"net/http"

	"github.com/Vovarama1992/docreader/internal/ports"
	"github.com/Vovarama1992/docreader/internal/view"
	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Auth    *AuthHandler
	History *HistoryHandler
	Pages   *PageHandler
	WS      http.HandlerFunc
}

func RegisterRoutes(r chi.Router, auth ports.AuthService, cookie SessionCookie, urls *view.URLBuilder, h Handlers) {

	r.Use(LoadSession(auth, cookie))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// public
	r.Get("/", h.Pages.Home)
	r.Get("/login", h.Pages.Login)
	r.Get("/register", h.Pages.Register)
	r.Get("/verify-otp", h.Pages.VerifyOTP)
	r.Get("/reset-password", h.Pages.ResetPassword)
	r.Get("/about", h.Pages.About)
	r.Get("/terms", h.Pages.Terms)
	r.Get("/privacy", h.Pages.Privacy)
	r.Post("/api/login", h.Auth.Login)
	r.Post("/api/logout", h.Auth.Logout)
	r.Post("/api/auth/register", h.Auth.Register)
	r.Post("/api/auth/verify-otp", h.Auth.VerifyOTP)
	r.Post("/api/auth/forgot-password", h.Auth.ForgotPassword)
	r.Post("/api/auth/reset-password", h.Auth.ResetPassword)

	// pages
	r.Group(func(r chi.Router) {
		r.Use(RequirePage(urls))
		r.Get("/dashboard", h.Pages.Dashboard)

		r.With(RequireAdmin(urls)).Get("/admin", h.Pages.Admin)
	})

	// api
	r.Group(func(r chi.Router) {
		r.Use(RequireAuth)

		r.Get("/api/history", h.History.List)
		r.Get("/api/history/table", h.History.Table)
		r.Get("/api/history/{id}", h.History.Get)
		r.Post("/api/history/{id}/position", h.History.UpdatePosition)
		r.Delete("/api/history/{id}", h.History.Delete)

		if h.WS != nil {
			r.Get("/ws", h.WS)
		}
	})

	r.NotFound(h.Pages.NotFound)
}
