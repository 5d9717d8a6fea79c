package models

import (
	"time"
)

type User struct {
	ID        int64      `db:"id" json:"id"`
	Email     string     `db:"email" json:"email"`
	Name      string     `db:"name" json:"name"`
	Phone     *string    `db:"phone" json:"phone"`
	Password  []byte     `db:"hashed_password" json:"-"`
	IsActive  bool       `db:"is_active" json:"is_active"`
	IsAdmin   bool       `db:"is_admin" json:"-"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at"`
}

// UserPatch частичное обновление профиля. SetPhone=true означает, что phone был в запросе (null очищает).
type UserPatch struct {
	Name     *string
	Phone    *string
	SetPhone bool
}
