package domain

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/Vovarama1992/docreader/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHistory(userID int64, n int) []models.HistoryRecord {
	out := make([]models.HistoryRecord, 0, n)
	for i := 1; i <= n; i++ {
		text := fmt.Sprintf("text %d", i)
		out = append(out, models.HistoryRecord{
			ID:        int64(userID*100 + int64(i)),
			UserID:    userID,
			Text:      &text,
			CreatedAt: fmt.Sprintf("2024-01-%02d 10:00:00", i),
		})
	}
	return out
}

func TestListPage_Pagination(t *testing.T) {
	repo := newFakeHistoryRepo(append(sampleHistory(1, 5), sampleHistory(2, 3)...)...)
	svc := NewHistoryService(repo)

	page, err := svc.ListPage(context.Background(), 1, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(103), page.Items[0].ID)
	assert.Equal(t, 2, repo.lastOffset)
}

func TestListPage_Clamping(t *testing.T) {
	repo := newFakeHistoryRepo()
	svc := NewHistoryService(repo)
	ctx := context.Background()

	page, err := svc.ListPage(ctx, 1, -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.Limit)
	assert.Equal(t, 1, page.Pages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	page, err = svc.ListPage(ctx, 1, 1, 50000)
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.Limit)
	assert.Equal(t, MaxPageSize, repo.lastLimit)
}

func TestListPage_HugePageDoesNotOverflow(t *testing.T) {
	repo := newFakeHistoryRepo(sampleHistory(1, 3)...)
	svc := NewHistoryService(repo)
	ctx := context.Background()

	for _, page := range []int{math.MaxInt / 10, math.MaxInt / 20, math.MaxInt} {
		got, err := svc.ListPage(ctx, 1, page, 20)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, repo.lastOffset, 0, page)
		assert.Empty(t, got.Items)
		assert.Equal(t, 3, got.Total)
	}
}

func TestGet_Ownership(t *testing.T) {
	svc := NewHistoryService(newFakeHistoryRepo(sampleHistory(1, 1)...))
	ctx := context.Background()

	rec, err := svc.Get(ctx, 1, 101)
	require.NoError(t, err)
	assert.Equal(t, "text 1", *rec.Text)

	_, err = svc.Get(ctx, 2, 101)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePosition(t *testing.T) {
	repo := newFakeHistoryRepo(sampleHistory(1, 1)...)
	svc := NewHistoryService(repo)
	ctx := context.Background()

	upd, err := svc.UpdatePosition(ctx, 1, 101, 45)
	require.NoError(t, err)
	assert.True(t, upd.Changed)
	assert.Equal(t, 0, upd.PreviousPosition)
	assert.Equal(t, 45, upd.Position)
	assert.Equal(t, 1, repo.writes)

	select {
	case ev := <-svc.Events():
		assert.Equal(t, models.PositionEvent{UserID: 1, ID: 101, Position: 45}, ev)
	default:
		t.Fatal("expected a position event")
	}

	// same position: no write, no event
	upd, err = svc.UpdatePosition(ctx, 1, 101, 45)
	require.NoError(t, err)
	assert.False(t, upd.Changed)
	assert.Equal(t, 1, repo.writes)
	assert.Len(t, svc.Events(), 0)
}

func TestUpdatePosition_NegativeClampedToZero(t *testing.T) {
	recs := sampleHistory(1, 1)
	recs[0].Position = 30
	repo := newFakeHistoryRepo(recs...)
	svc := NewHistoryService(repo)

	upd, err := svc.UpdatePosition(context.Background(), 1, 101, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, upd.Position)
	assert.Equal(t, 30, upd.PreviousPosition)
	assert.Equal(t, 0, repo.records[101].Position)
}

func TestUpdatePosition_AboveColumnRange(t *testing.T) {
	repo := newFakeHistoryRepo(sampleHistory(1, 1)...)
	svc := NewHistoryService(repo)
	ctx := context.Background()

	_, err := svc.UpdatePosition(ctx, 1, 101, MaxPosition+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, repo.writes)

	upd, err := svc.UpdatePosition(ctx, 1, 101, MaxPosition)
	require.NoError(t, err)
	assert.Equal(t, MaxPosition, upd.Position)
}

func TestUpdatePosition_OtherUser(t *testing.T) {
	repo := newFakeHistoryRepo(sampleHistory(1, 1)...)
	svc := NewHistoryService(repo)

	_, err := svc.UpdatePosition(context.Background(), 2, 101, 10)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, 0, repo.writes)
}

func TestUpdatePosition_FullBufferDoesNotBlock(t *testing.T) {
	repo := newFakeHistoryRepo(sampleHistory(1, 1)...)
	svc := NewHistoryService(repo)
	ctx := context.Background()

	for i := 1; i <= cap(svc.events)+5; i++ {
		_, err := svc.UpdatePosition(ctx, 1, 101, i)
		require.NoError(t, err)
	}
	assert.Len(t, svc.Events(), cap(svc.events))
}

func TestDelete(t *testing.T) {
	repo := newFakeHistoryRepo(append(sampleHistory(1, 2), sampleHistory(2, 1)...)...)
	svc := NewHistoryService(repo)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, 1, 201), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, 1, 101))
	assert.ErrorIs(t, svc.Delete(ctx, 1, 101), ErrNotFound)

	total, err := svc.TotalCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}
