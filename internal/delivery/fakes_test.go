package delivery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Vovarama1992/docreader/internal/domain"
	"github.com/Vovarama1992/docreader/internal/models"
	"github.com/Vovarama1992/docreader/internal/view"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	tokenUser    = "tok-user"
	tokenAdmin   = "tok-admin"
	tokenExpired = "tok-expired"
)

type fakeAuth struct {
	resetRequests []string
	registered    []string
	verified      []string
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (string, *models.Session, error) {
	if email == "an@example.com" && password == "secret" {
		s := &models.Session{ID: "s1", UserID: 1, Email: email, Role: models.RoleUser, ExpiresAt: time.Now().Add(time.Hour)}
		return tokenUser, s, nil
	}
	if email == "pending@example.com" && password == "secret" {
		return "", nil, domain.ErrPendingActivation
	}
	return "", nil, domain.ErrInvalidCredentials
}

func (f *fakeAuth) ValidateToken(ctx context.Context, token string) (*models.Session, error) {
	switch token {
	case tokenUser:
		return &models.Session{ID: "s1", UserID: 1, Email: "an@example.com", Role: models.RoleUser}, nil
	case tokenAdmin:
		return &models.Session{ID: "s2", UserID: 2, Email: "admin@example.com", Role: models.RoleAdmin}, nil
	case tokenExpired:
		return nil, domain.ErrSessionExpired
	}
	return nil, domain.ErrInvalidToken
}

func (f *fakeAuth) Refresh(session *models.Session) (string, error) {
	session.ExpiresAt = time.Now().Add(30 * time.Minute)
	if session.IsAdmin() {
		return tokenAdmin, nil
	}
	return tokenUser, nil
}

func (f *fakeAuth) RequestPasswordReset(ctx context.Context, email string) error {
	f.resetRequests = append(f.resetRequests, email)
	return nil
}

func (f *fakeAuth) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if otp != "123456" {
		return domain.ErrInvalidOTP
	}
	if len(newPassword) < 6 {
		return domain.ErrWeakPassword
	}
	return nil
}

func (f *fakeAuth) Register(ctx context.Context, email, password string) error {
	if len(password) < 6 {
		return domain.ErrWeakPassword
	}
	if email == "an@example.com" {
		return domain.ErrEmailTaken
	}
	f.registered = append(f.registered, email)
	return nil
}

func (f *fakeAuth) VerifyRegistration(ctx context.Context, email, otp string) error {
	if otp != "123456" {
		return domain.ErrInvalidOTP
	}
	f.verified = append(f.verified, email)
	return nil
}

type memRepo struct {
	mu      sync.Mutex
	records map[int64]models.HistoryRecord
}

func newMemRepo(recs ...models.HistoryRecord) *memRepo {
	m := &memRepo{records: make(map[int64]models.HistoryRecord)}
	for _, r := range recs {
		m.records[r.ID] = r
	}
	return m
}

func (m *memRepo) byUser(userID int64) []models.HistoryRecord {
	var out []models.HistoryRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (m *memRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := m.byUser(userID)
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byUser(userID)), nil
}

func (m *memRepo) GetByID(ctx context.Context, id int64) (*models.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, found := m.records[id]
	if !found {
		return nil, nil
	}
	return &r, nil
}

func (m *memRepo) UpdatePosition(ctx context.Context, id, userID int64, position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.records[id]
	r.Position = position
	m.records[id] = r
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, found := m.records[id]
	if !found || r.UserID != userID {
		return false, nil
	}
	delete(m.records, id)
	return true, nil
}

func (m *memRepo) CountAll(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

func strPtr(s string) *string { return &s }

func seedHistory() []models.HistoryRecord {
	return []models.HistoryRecord{
		{ID: 11, UserID: 1, Text: strPtr("Bài báo sáng nay"), Voice: strPtr("vi-VN-HoaiMyNeural"), AudioURL: strPtr("/uploads/audio/11.mp3"), CreatedAt: "2024-05-01 08:30:00"},
		{ID: 12, UserID: 1, Text: strPtr("Chương hai"), Position: 75, CreatedAt: "2024-05-02 09:00:00"},
		{ID: 21, UserID: 2, Text: strPtr("admin note"), CreatedAt: "2024-05-03 10:00:00"},
	}
}

type testApp struct {
	router http.Handler
	repo   *memRepo
	auth   *fakeAuth
	svc    *domain.HistoryService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	zl := logger.NewZapLogger(zap.NewNop().Sugar())
	repo := newMemRepo(seedHistory()...)
	auth := &fakeAuth{}
	svc := domain.NewHistoryService(repo)

	urls := view.NewURLBuilder("")
	loc := view.NewLocalizer(view.DefaultLanguage)
	renderer := view.NewHistoryRenderer(view.WithLocalizer(loc), view.WithTimezone(time.UTC))
	layout := view.NewLayout(urls, loc, "test")
	cookie := SessionCookie{}

	r := chi.NewRouter()
	RegisterRoutes(r, auth, cookie, urls, Handlers{
		Auth:    NewAuthHandler(auth, cookie, urls, zl),
		History: NewHistoryHandler(svc, renderer, 20, zl),
		Pages:   NewPageHandler(layout, renderer, svc, urls, 20, zl),
	})

	return &testApp{router: r, repo: repo, auth: auth, svc: svc}
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func withCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	return req
}

func withHeader(req *http.Request, token string) *http.Request {
	req.Header.Set("X-Auth", token)
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}
