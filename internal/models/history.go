package models

type HistoryRecord struct {
	ID        int64   `db:"id" json:"id"`
	UserID    int64   `db:"user_id" json:"user_id"`
	Text      *string `db:"text" json:"text"`           // nullable
	Voice     *string `db:"voice" json:"voice"`         // nullable
	AudioURL  *string `db:"audio_url" json:"audio_url"` // nullable, có thể rỗng
	Lang      string  `db:"lang" json:"lang"`
	Position  int     `db:"position" json:"position"` // giây, 0 = chưa nghe
	CreatedAt string  `db:"created_at" json:"created_at"`
	UpdatedAt string  `db:"updated_at" json:"updated_at"`
}

type HistoryPage struct {
	Items []HistoryRecord `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Pages int             `json:"pages"`
	Limit int             `json:"limit"`
}

type PositionUpdate struct {
	ID               int64 `json:"id"`
	Position         int   `json:"position"`
	PreviousPosition int   `json:"previous_position"`
	Changed          bool  `json:"changed"`
}

// PositionEvent is published after a stored position changes.
type PositionEvent struct {
	UserID   int64
	ID       int64
	Position int
}
