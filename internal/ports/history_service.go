package ports

import (
	"context"

	"github.com/Vovarama1992/docreader/internal/models"
)

type HistoryService interface {
	ListPage(ctx context.Context, userID int64, page, limit int) (*models.HistoryPage, error)
	Get(ctx context.Context, userID, id int64) (*models.HistoryRecord, error)
	UpdatePosition(ctx context.Context, userID, id int64, position int) (*models.PositionUpdate, error)
	Delete(ctx context.Context, userID, id int64) error
	TotalCount(ctx context.Context) (int, error)
}
