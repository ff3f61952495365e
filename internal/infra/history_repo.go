package infra

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Vovarama1992/docreader/internal/models"
	"github.com/Vovarama1992/docreader/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresHistoryRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresHistoryRepo(pool *pgxpool.Pool) ports.HistoryRepository {
	return &PostgresHistoryRepo{pool: pool}
}

// timestamps leave the database as plain text; the renderer parses them
const historyColumns = `
	id, user_id, text, voice, audio_url, lang, position,
	to_char(created_at, 'YYYY-MM-DD HH24:MI:SS'),
	to_char(updated_at, 'YYYY-MM-DD HH24:MI:SS')`

func scanHistory(row pgx.Row) (*models.HistoryRecord, error) {
	var h models.HistoryRecord
	err := row.Scan(
		&h.ID,
		&h.UserID,
		&h.Text,
		&h.Voice,
		&h.AudioURL,
		&h.Lang,
		&h.Position,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *PostgresHistoryRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + `
		FROM audio_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	out := make([]models.HistoryRecord, 0, limit)
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return out, nil
}

func (r *PostgresHistoryRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audio_history WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

func (r *PostgresHistoryRepo) GetByID(ctx context.Context, id int64) (*models.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + `
		FROM audio_history
		WHERE id = $1
	`
	h, err := scanHistory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get history by id: %w", err)
	}
	return h, nil
}

func (r *PostgresHistoryRepo) UpdatePosition(ctx context.Context, id, userID int64, position int) error {
	query := `
		UPDATE audio_history
		SET position = $1, updated_at = now()
		WHERE id = $2 AND user_id = $3
	`
	tag, err := r.pool.Exec(ctx, query, position, id, userID)
	if err != nil {
		return fmt.Errorf("update position: %w", err)
	}
	log.Printf("[DB][POS] id=%d user=%d position=%d rows=%d", id, userID, position, tag.RowsAffected())
	return nil
}

func (r *PostgresHistoryRepo) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM audio_history WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete history: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresHistoryRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audio_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count all history: %w", err)
	}
	return n, nil
}
