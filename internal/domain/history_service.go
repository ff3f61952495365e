package domain

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/Vovarama1992/docreader/internal/models"
	"github.com/Vovarama1992/docreader/internal/ports"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 10000

	// MaxPosition is the largest value the INTEGER position column holds.
	MaxPosition = math.MaxInt32
)

type HistoryService struct {
	repo   ports.HistoryRepository
	events chan models.PositionEvent
}

func NewHistoryService(repo ports.HistoryRepository) *HistoryService {
	return &HistoryService{
		repo:   repo,
		events: make(chan models.PositionEvent, 100),
	}
}

func (s *HistoryService) Events() <-chan models.PositionEvent { return s.events }

// ListPage returns one page of a user's history, newest first. Out of range
// page and limit values are clamped rather than rejected.
func (s *HistoryService) ListPage(ctx context.Context, userID int64, page, limit int) (*models.HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	// keeps (page-1)*limit from overflowing
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	var (
		items []models.HistoryRecord
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.ListByUser(gctx, userID, limit, (page-1)*limit)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.CountByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if items == nil {
		items = []models.HistoryRecord{}
	}

	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}

	return &models.HistoryPage{
		Items: items,
		Total: total,
		Page:  page,
		Pages: pages,
		Limit: limit,
	}, nil
}

func (s *HistoryService) Get(ctx context.Context, userID, id int64) (*models.HistoryRecord, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.UserID != userID {
		return nil, ErrForbidden
	}
	return rec, nil
}

// UpdatePosition stores a playback position. Negative positions become 0,
// positions above MaxPosition are rejected and an unchanged position is not
// written.
func (s *HistoryService) UpdatePosition(ctx context.Context, userID, id int64, position int) (*models.PositionUpdate, error) {
	if position < 0 {
		position = 0
	}
	if position > MaxPosition {
		return nil, fmt.Errorf("%w: position above %d", ErrInvalidInput, MaxPosition)
	}

	rec, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	upd := &models.PositionUpdate{
		ID:               id,
		Position:         position,
		PreviousPosition: rec.Position,
	}
	if rec.Position == position {
		return upd, nil
	}

	if err := s.repo.UpdatePosition(ctx, id, userID, position); err != nil {
		return nil, err
	}
	upd.Changed = true

	s.publish(models.PositionEvent{UserID: userID, ID: id, Position: position})
	return upd, nil
}

func (s *HistoryService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	ok, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *HistoryService) TotalCount(ctx context.Context) (int, error) {
	return s.repo.CountAll(ctx)
}

// publish never blocks a request; with no listener draining the channel
// events are dropped once the buffer is full.
func (s *HistoryService) publish(ev models.PositionEvent) {
	select {
	case s.events <- ev:
	default:
		log.Printf("[history][EVENT-DROP] user=%d id=%d", ev.UserID, ev.ID)
	}
}
