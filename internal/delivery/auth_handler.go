package delivery

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vovarama1992/docreader/internal/domain"
	"github.com/Vovarama1992/docreader/internal/ports"
	"github.com/Vovarama1992/docreader/internal/view"
	"github.com/Vovarama1992/go-utils/logger"
)

type AuthHandler struct {
	auth   ports.AuthService
	cookie SessionCookie
	urls   *view.URLBuilder
	log    *logger.ZapLogger
}

func NewAuthHandler(auth ports.AuthService, cookie SessionCookie, urls *view.URLBuilder, log *logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		cookie: cookie,
		urls:   urls,
		log:    log,
	}
}

func isJSON(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/json"
}

// safeRedirect only follows local paths, never another host.
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return "/dashboard"
	}
	return target
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Redirect string `json:"redirect"`
}

// POST /api/login accepts JSON from scripts and urlencoded posts from the
// login page. Form posts are answered with redirects.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	asJSON := isJSON(r)

	var req loginRequest
	if asJSON {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			fail(w, http.StatusBadRequest, CodeValidation, "invalid json: "+err.Error())
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			fail(w, http.StatusBadRequest, CodeValidation, "invalid form")
			return
		}
		req.Email = r.PostForm.Get("email")
		req.Password = r.PostForm.Get("password")
		req.Redirect = r.PostForm.Get("redirect")
	}

	email := view.StripTags(req.Email)
	if !domain.IsValidEmail(email) || req.Password == "" {
		h.loginFailed(w, r, asJSON, req.Redirect, CodeValidation, "email and password are required")
		return
	}

	token, session, err := h.auth.Login(r.Context(), email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrPendingActivation) {
			h.loginFailed(w, r, asJSON, req.Redirect, CodePending, err.Error())
			return
		}
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.log.Log(logger.LogEntry{
				Level:   "info",
				Message: "login rejected",
				Fields:  map[string]any{"email": email},
			})
			h.loginFailed(w, r, asJSON, req.Redirect, CodeUnauthorized, err.Error())
			return
		}
		failErr(w, h.log, "login", err)
		return
	}

	h.cookie.Set(w, token, session.ExpiresAt)

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "login success",
		Fields:  map[string]any{"userID": session.UserID},
	})

	if !asJSON {
		http.Redirect(w, r, h.urls.URL(safeRedirect(req.Redirect)), http.StatusSeeOther)
		return
	}
	ok(w, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":    session.UserID,
			"email": session.Email,
			"role":  session.Role,
		},
	})
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, asJSON bool, redirect, code, msg string) {
	if asJSON {
		status := http.StatusBadRequest
		switch code {
		case CodeUnauthorized:
			status = http.StatusUnauthorized
		case CodePending:
			status = http.StatusForbidden
		}
		fail(w, status, code, msg)
		return
	}

	q := url.Values{}
	q.Set("error", "login_failed")
	if code == CodePending {
		q.Set("error", "pending_activation")
	}
	if redirect != "" {
		q.Set("redirect", safeRedirect(redirect))
	}
	http.Redirect(w, r, h.urls.URL("/login?"+q.Encode()), http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookie.Clear(w)

	if !isJSON(r) {
		http.Redirect(w, r, h.urls.URL("/login"), http.StatusSeeOther)
		return
	}
	ok(w, nil)
}

// readFields decodes a flat JSON object or an urlencoded form.
func readFields(r *http.Request) (map[string]string, error) {
	if isJSON(r) {
		fields := map[string]string{}
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return nil, errors.New("invalid json: " + err.Error())
		}
		return fields, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, errors.New("invalid form")
	}
	fields := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		fields[k] = r.PostForm.Get(k)
	}
	return fields, nil
}

// flashFor names the page flash for an auth error.
func flashFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return "email_taken"
	case errors.Is(err, domain.ErrWeakPassword):
		return "weak_password"
	case errors.Is(err, domain.ErrInvalidOTP):
		return "invalid_otp"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_email"
	}
	return ""
}

// formBack sends a form post back to page with the email kept and the
// error or notice in the query.
func (h *AuthHandler) formBack(w http.ResponseWriter, r *http.Request, page, email, param, value string) {
	q := url.Values{}
	if email != "" {
		q.Set("email", email)
	}
	if value != "" {
		q.Set(param, value)
	}
	target := page
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, h.urls.URL(target), http.StatusSeeOther)
}

// authFailed answers a failed register/verify/reset call. Form posts go back
// to page when the error has a flash, anything else is reported as JSON.
func (h *AuthHandler) authFailed(w http.ResponseWriter, r *http.Request, page, email, op string, err error) {
	if !isJSON(r) {
		if flash := flashFor(err); flash != "" {
			h.formBack(w, r, page, email, "error", flash)
			return
		}
	}
	failErr(w, h.log, op, err)
}

// POST /api/auth/register creates a pending account and mails its code.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		fail(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}

	email := view.StripTags(fields["email"])
	if !domain.IsValidEmail(email) {
		h.authFailed(w, r, "/register", "", "register", fmt.Errorf("%w: email", domain.ErrInvalidInput))
		return
	}

	if err := h.auth.Register(r.Context(), email, fields["password"]); err != nil {
		h.authFailed(w, r, "/register", email, "register", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "registration pending",
		Fields:  map[string]any{"email": email},
	})

	if !isJSON(r) {
		h.formBack(w, r, "/verify-otp", email, "notice", "code_sent")
		return
	}
	ok(w, map[string]string{"message": "verification code sent"})
}

// POST /api/auth/verify-otp activates a pending account.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		fail(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}

	email := view.StripTags(fields["email"])
	otp := strings.TrimSpace(fields["otp"])
	if !domain.IsValidEmail(email) || otp == "" {
		h.authFailed(w, r, "/verify-otp", email, "verify otp", domain.ErrInvalidOTP)
		return
	}

	if err := h.auth.VerifyRegistration(r.Context(), email, otp); err != nil {
		h.authFailed(w, r, "/verify-otp", email, "verify otp", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "account activated",
		Fields:  map[string]any{"email": email},
	})

	if !isJSON(r) {
		h.formBack(w, r, "/login", "", "notice", "activated")
		return
	}
	ok(w, nil)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		fail(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}

	email := view.StripTags(fields["email"])
	if !domain.IsValidEmail(email) {
		if !isJSON(r) {
			h.formBack(w, r, "/reset-password", "", "error", "invalid_email")
			return
		}
		fail(w, http.StatusBadRequest, CodeValidation, "invalid email")
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), email); err != nil {
		failErr(w, h.log, "forgot password", err)
		return
	}

	if !isJSON(r) {
		h.formBack(w, r, "/reset-password", email, "notice", "code_sent")
		return
	}
	ok(w, map[string]string{"message": "if the account exists a code has been sent"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	fields, err := readFields(r)
	if err != nil {
		fail(w, http.StatusBadRequest, CodeValidation, err.Error())
		return
	}

	email := view.StripTags(fields["email"])
	otp := strings.TrimSpace(fields["otp"])
	if !domain.IsValidEmail(email) || otp == "" {
		if !isJSON(r) {
			h.formBack(w, r, "/reset-password", email, "error", "invalid_otp")
			return
		}
		fail(w, http.StatusBadRequest, CodeValidation, "email and otp are required")
		return
	}

	if err := h.auth.ResetPassword(r.Context(), email, otp, fields["password"]); err != nil {
		h.authFailed(w, r, "/reset-password", email, "reset password", err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "password reset",
		Fields:  map[string]any{"email": email},
	})

	if !isJSON(r) {
		h.formBack(w, r, "/login", "", "notice", "password_reset")
		return
	}
	ok(w, nil)
}
