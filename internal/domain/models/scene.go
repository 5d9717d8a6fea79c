package models

import "time"

const DefaultSceneName = "New Scene"

type Scene struct {
	ID         int64      `db:"id" json:"id"`
	GalleryID  int64      `db:"gallery_id" json:"gallery_id"`
	Name       string     `db:"name" json:"name"`
	OrderIndex int        `db:"order_index" json:"order_index"`
	PhotoCount int        `db:"photo_count" json:"photo_count"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at" json:"updated_at"`
}

type ScenePatch struct {
	Name       *string
	OrderIndex *int
}

type SceneDetail struct {
	Scene
	Photos []PhotoView `json:"photos"`
}
