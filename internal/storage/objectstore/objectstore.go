package objectstore

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultExt         = ".jpg"
	DefaultContentType = "image/jpeg"

	viewPath = "/api/photos/view/"
)

// Store общий интерфейс MinIO и локального хранилища.
type Store interface {
	EnsureBucket(ctx context.Context) error
	Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	GetWithContentType(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) bool
	URLFor(key string) string
}

var (
	_ Store = (*MinioStorage)(nil)
	_ Store = (*LocalStorage)(nil)
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// NewObjectKey генерирует уникальный ключ: uuid v4 без дефисов плюс расширение исходного файла.
func NewObjectKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || ext == "." {
		ext = DefaultExt
	}

	return strings.ReplaceAll(uuid.NewString(), "-", "") + ext
}

// ContentTypeByExt угадывает MIME-тип по расширению ключа.
func ContentTypeByExt(key string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(key))]; ok {
		return ct
	}

	return DefaultContentType
}

// ViewURL адрес стриминга фото через наш API, а не напрямую из хранилища.
func ViewURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + viewPath + key
}

// StoragePath путь, который сохраняется в photos.file_path.
func StoragePath(key string) string {
	return "/uploads/" + key
}

// validKey отсекает ключи с разделителями пути.
func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, `/\`) && key != "." && key != ".."
}
