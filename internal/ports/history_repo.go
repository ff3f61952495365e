package ports

import (
	"context"

	"github.com/Vovarama1992/docreader/internal/models"
)

type HistoryRepository interface {
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.HistoryRecord, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	GetByID(ctx context.Context, id int64) (*models.HistoryRecord, error)
	UpdatePosition(ctx context.Context, id, userID int64, position int) error
	Delete(ctx context.Context, id, userID int64) (bool, error)

	// admin
	CountAll(ctx context.Context) (int, error)
}
