package objectstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/storage"
)

// LocalStorage хранит объекты в каталоге на диске. Удобно для локальной разработки без MinIO.
type LocalStorage struct {
	log     *slog.Logger
	baseDir string
	baseURL string
}

func NewLocal(log *slog.Logger, baseDir, baseURL string) *LocalStorage {
	return &LocalStorage{
		log:     log,
		baseDir: baseDir,
		baseURL: baseURL,
	}
}

// EnsureBucket создаёт базовый каталог.
func (s *LocalStorage) EnsureBucket(_ context.Context) error {
	const op = "storage.objectstore.LocalStorage.EnsureBucket"

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *LocalStorage) Upload(ctx context.Context, data []byte, originalName, _ string) (string, error) {
	const op = "storage.objectstore.LocalStorage.Upload"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key := NewObjectKey(originalName)
	fullPath := filepath.Join(s.baseDir, key)

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return key, nil
}

func (s *LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "storage.objectstore.LocalStorage.Get"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !validKey(key) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrObjectNotFound)
	}

	data, err := os.ReadFile(filepath.Join(s.baseDir, key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return data, nil
}

func (s *LocalStorage) GetWithContentType(ctx context.Context, key string) ([]byte, string, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}

	return data, ContentTypeByExt(key), nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) bool {
	const op = "storage.objectstore.LocalStorage.Delete"

	if !validKey(key) {
		return false
	}

	if err := os.Remove(filepath.Join(s.baseDir, key)); err != nil {
		// как и RemoveObject в minio, отсутствующий объект считается удалённым
		if errors.Is(err, os.ErrNotExist) {
			return true
		}

		s.log.Warn("failed to delete object", slog.String("op", op), slog.String("key", key), sl.Err(err))
		return false
	}

	return true
}

func (s *LocalStorage) URLFor(key string) string {
	return ViewURL(s.baseURL, key)
}
