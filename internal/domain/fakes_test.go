package domain

import (
	"context"
	"sync"
	"time"

	"github.com/Vovarama1992/docreader/internal/models"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) byID(id int64) *models.User {
	for _, u := range r.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) CreatePending(ctx context.Context, email, passwordHash, otpHash string, expiresAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	id := int64(len(r.users) + 100)
	r.users[email] = &models.User{
		ID:             id,
		Email:          email,
		PasswordHash:   passwordHash,
		Role:           models.RoleUser,
		Status:         models.StatusPending,
		ResetOTPHash:   &otpHash,
		ResetExpiresAt: &expiresAt,
	}
	return id, nil
}

func (r *fakeUserRepo) Activate(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byID(userID)
	u.Status = models.StatusActive
	u.ResetOTPHash = nil
	u.ResetExpiresAt = nil
	return nil
}

func (r *fakeUserRepo) SetResetOTP(ctx context.Context, userID int64, otpHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byID(userID)
	u.ResetOTPHash = &otpHash
	u.ResetExpiresAt = &expiresAt
	return nil
}

func (r *fakeUserRepo) ResetPassword(ctx context.Context, userID int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.byID(userID)
	u.PasswordHash = passwordHash
	u.Status = models.StatusActive
	u.ResetOTPHash = nil
	u.ResetExpiresAt = nil
	return nil
}

type fakeMailer struct {
	sent map[string]string
}

func (m *fakeMailer) SendOTP(ctx context.Context, email, otp string) error {
	if m.sent == nil {
		m.sent = map[string]string{}
	}
	m.sent[email] = otp
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	records map[int64]*models.HistoryRecord
	order   []int64
	writes  int

	lastLimit, lastOffset int
}

func newFakeHistoryRepo(recs ...models.HistoryRecord) *fakeHistoryRepo {
	r := &fakeHistoryRepo{records: map[int64]*models.HistoryRecord{}}
	for i := range recs {
		rec := recs[i]
		r.records[rec.ID] = &rec
		r.order = append(r.order, rec.ID)
	}
	return r
}

func (r *fakeHistoryRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit, r.lastOffset = limit, offset

	var all []models.HistoryRecord
	for _, id := range r.order {
		if rec, ok := r.records[id]; ok && rec.UserID == userID {
			all = append(all, *rec)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeHistoryRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeHistoryRepo) GetByID(ctx context.Context, id int64) (*models.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeHistoryRepo) UpdatePosition(ctx context.Context, id, userID int64, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	r.records[id].Position = position
	return nil
}

func (r *fakeHistoryRepo) Delete(ctx context.Context, id, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

func (r *fakeHistoryRepo) CountAll(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}
