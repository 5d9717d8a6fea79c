package models

import "time"

type Favorite struct {
	ID        int64     `db:"id" json:"id"`
	PhotoID   int64     `db:"photo_id" json:"photo_id"`
	UserID    *int64    `db:"user_id" json:"user_id"`
	SessionID *string   `db:"session_id" json:"session_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
