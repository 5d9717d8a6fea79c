package models

import (
	"time"
)

// Gallery представляет собой модель галереи
type Gallery struct {
	ID                  int64      `db:"id" json:"id"`
	Name                string     `db:"name" json:"name"`
	ShootingDate        *time.Time `db:"shooting_date" json:"shooting_date"`
	IsPublic            bool       `db:"is_public" json:"is_public"`
	IsPasswordProtected bool       `db:"is_password_protected" json:"is_password_protected"`
	PasswordHash        *string    `db:"password_hash" json:"-"`
	CoverPhotoID        *int64     `db:"cover_photo_id" json:"cover_photo_id"`
	ViewCount           int64      `db:"view_count" json:"view_count"`
	OwnerID             int64      `db:"owner_id" json:"owner_id"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           *time.Time `db:"updated_at" json:"updated_at"`
}

// GalleryPatch частичное обновление галереи.
// SetPassword=true означает, что поле password присутствовало в запросе.
type GalleryPatch struct {
	Name                *string
	ShootingDate        *time.Time
	IsPasswordProtected *bool
	SetPassword         bool
	Password            string
}

// GalleryDetail галерея со сценами и фотографиями.
type GalleryDetail struct {
	Gallery
	Scenes []SceneDetail `json:"scenes"`
}
