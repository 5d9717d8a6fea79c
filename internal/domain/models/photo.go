package models

import (
	"time"
)

// Photo метаданные фотографии. Сам файл лежит в объектном хранилище под ключом Filename.
type Photo struct {
	ID               int64     `db:"id" json:"id"`
	SceneID          int64     `db:"scene_id" json:"scene_id"`
	Filename         string    `db:"filename" json:"filename"`
	OriginalFilename string    `db:"original_filename" json:"original_filename"`
	FilePath         string    `db:"file_path" json:"file_path"`
	FileSize         int64     `db:"file_size" json:"file_size"`
	MimeType         string    `db:"mime_type" json:"mime_type"`
	Width            *int      `db:"width" json:"width"`
	Height           *int      `db:"height" json:"height"`
	OrderIndex       int       `db:"order_index" json:"order_index"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// PhotoView фото с вычисляемыми полями для ответа.
type PhotoView struct {
	Photo
	URL        string `json:"url"`
	IsFavorite bool   `json:"is_favorite"`
}

// Upload один файл из multipart-запроса.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type UploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
	// Internal is true when the failure was not caused by the file itself.
	Internal bool `json:"-"`
}

type UploadResult struct {
	Uploaded []PhotoView     `json:"uploaded"`
	Failed   []UploadFailure `json:"failed"`
}

// PhotoFile содержимое фото для стриминга клиенту.
type PhotoFile struct {
	Data        []byte
	ContentType string
	Filename    string
}
