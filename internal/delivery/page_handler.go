package delivery

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/docreader/internal/ports"
	"github.com/Vovarama1992/docreader/internal/view"
	"github.com/Vovarama1992/go-utils/logger"
)

type PageHandler struct {
	layout   *view.Layout
	renderer *view.HistoryRenderer
	history  ports.HistoryService
	urls     *view.URLBuilder
	pageSize int
	log      *logger.ZapLogger
}

func NewPageHandler(
	layout *view.Layout,
	renderer *view.HistoryRenderer,
	history ports.HistoryService,
	urls *view.URLBuilder,
	pageSize int,
	log *logger.ZapLogger,
) *PageHandler {
	return &PageHandler{
		layout:   layout,
		renderer: renderer,
		history:  history,
		urls:     urls,
		pageSize: pageSize,
		log:      log,
	}
}

var flashKeys = map[string]view.MessageKey{
	"unauthorized":       view.MsgFlashUnauthorized,
	"session_expired":    view.MsgFlashSessionExpired,
	"login_failed":       view.MsgFlashLoginFailed,
	"pending_activation": view.MsgFlashPending,
	"email_taken":        view.MsgFlashEmailTaken,
	"invalid_email":      view.MsgFlashInvalidEmail,
	"invalid_otp":        view.MsgFlashInvalidOTP,
	"weak_password":      view.MsgFlashWeakPassword,
}

var noticeKeys = map[string]view.MessageKey{
	"code_sent":      view.MsgNoticeCodeSent,
	"activated":      view.MsgNoticeActivated,
	"password_reset": view.MsgNoticePasswordReset,
}

func (h *PageHandler) message(keys map[string]view.MessageKey, value string) string {
	key, found := keys[value]
	if !found {
		return ""
	}
	return h.layout.Localizer().T(key)
}

func (h *PageHandler) flash(r *http.Request) string {
	return h.message(flashKeys, r.URL.Query().Get("error"))
}

func (h *PageHandler) notice(r *http.Request) string {
	return h.message(noticeKeys, r.URL.Query().Get("notice"))
}

// render buffers the document so a template error can still become a 500.
func (h *PageHandler) render(w http.ResponseWriter, status int, page view.Page, data view.PageData) {
	var buf bytes.Buffer
	if err := h.layout.Render(&buf, page, data); err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "render page failed",
			Error:   err,
			Fields:  map[string]any{"page": string(page)},
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if SessionFrom(r.Context()) != nil {
		target = "/dashboard"
	}
	http.Redirect(w, r, h.urls.URL(target), http.StatusFound)
}

// GET /login
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	if SessionFrom(r.Context()) != nil {
		http.Redirect(w, r, h.urls.URL("/dashboard"), http.StatusFound)
		return
	}

	redirect := r.URL.Query().Get("redirect")
	if redirect != "" {
		redirect = safeRedirect(redirect)
	}

	h.render(w, http.StatusOK, view.PageLogin, view.PageData{
		Title:  h.layout.Localizer().T(view.MsgTitleLogin),
		Flash:  h.flash(r),
		Notice: h.notice(r),
		Body:   view.LoginBody{Redirect: redirect},
	})
}

// guestOnly sends signed-in users to the dashboard.
func (h *PageHandler) guestOnly(w http.ResponseWriter, r *http.Request) bool {
	if SessionFrom(r.Context()) != nil {
		http.Redirect(w, r, h.urls.URL("/dashboard"), http.StatusFound)
		return false
	}
	return true
}

// GET /register
func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.guestOnly(w, r) {
		return
	}
	h.render(w, http.StatusOK, view.PageRegister, view.PageData{
		Title: h.layout.Localizer().T(view.MsgTitleRegister),
		Flash: h.flash(r),
	})
}

// GET /verify-otp
func (h *PageHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	if !h.guestOnly(w, r) {
		return
	}
	h.render(w, http.StatusOK, view.PageVerifyOTP, view.PageData{
		Title:  h.layout.Localizer().T(view.MsgTitleVerifyOTP),
		Flash:  h.flash(r),
		Notice: h.notice(r),
		Body:   view.OTPBody{Email: view.StripTags(r.URL.Query().Get("email"))},
	})
}

// GET /reset-password asks for an email first. Once the email is known it
// shows the code and new password form.
func (h *PageHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if !h.guestOnly(w, r) {
		return
	}
	email := view.StripTags(r.URL.Query().Get("email"))
	h.render(w, http.StatusOK, view.PageResetPassword, view.PageData{
		Title:  h.layout.Localizer().T(view.MsgTitleResetPassword),
		Flash:  h.flash(r),
		Notice: h.notice(r),
		Body:   view.OTPBody{Email: email, CodeSent: email != ""},
	})
}

func (h *PageHandler) static(page view.Page, title, heading, text view.MessageKey) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc := h.layout.Localizer()
		h.render(w, http.StatusOK, page, view.PageData{
			Title:   loc.T(title),
			Session: SessionFrom(r.Context()),
			Body:    view.StaticBody{Heading: loc.T(heading), Text: loc.T(text)},
		})
	}
}

// GET /about
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.static(view.PageAbout, view.MsgTitleAbout, view.MsgFooterAbout, view.MsgAboutBody)(w, r)
}

// GET /terms
func (h *PageHandler) Terms(w http.ResponseWriter, r *http.Request) {
	h.static(view.PageTerms, view.MsgTitleTerms, view.MsgFooterTerms, view.MsgTermsBody)(w, r)
}

// GET /privacy
func (h *PageHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	h.static(view.PagePrivacy, view.MsgTitlePrivacy, view.MsgFooterPrivacy, view.MsgPrivacyBody)(w, r)
}

// GET /dashboard
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := SessionFrom(r.Context())

	page, err := h.history.ListPage(r.Context(), session.UserID, queryInt(r, "page"), h.pageSize)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "dashboard history failed",
			Error:   err,
			Fields:  map[string]any{"userID": session.UserID},
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	table, err := h.renderer.RenderTable(page.Items)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "render history table failed",
			Error:   err,
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	body := view.DashboardBody{
		Table: table,
		Page:  page.Page,
		Pages: page.Pages,
	}
	if page.Page > 1 {
		body.PrevURL = h.urls.URL("/dashboard?page=" + strconv.Itoa(page.Page-1))
	}
	if page.Page < page.Pages {
		body.NextURL = h.urls.URL("/dashboard?page=" + strconv.Itoa(page.Page+1))
	}

	h.render(w, http.StatusOK, view.PageDashboard, view.PageData{
		Title:   h.layout.Localizer().T(view.MsgTitleDashboard),
		Session: session,
		Flash:   h.flash(r),
		Body:    body,
	})
}

// GET /admin
func (h *PageHandler) Admin(w http.ResponseWriter, r *http.Request) {
	total, err := h.history.TotalCount(r.Context())
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "admin total failed",
			Error:   err,
		})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, view.PageAdmin, view.PageData{
		Title:   h.layout.Localizer().T(view.MsgTitleAdmin),
		Session: SessionFrom(r.Context()),
		Body:    view.AdminBody{TotalAudio: total},
	})
}

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, view.PageNotFound, view.PageData{
		Title:   h.layout.Localizer().T(view.MsgTitleNotFound),
		Session: SessionFrom(r.Context()),
	})
}
