package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/storage"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/patrickmn/go-cache"
)

type MinioStorage struct {
	log     *slog.Logger
	client  *minio.Client
	bucket  string
	baseURL string
	types   *cache.Cache
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
}

// NewMinio создаёт клиента без обращения к серверу. Бакет создаётся отдельно через EnsureBucket.
func NewMinio(log *slog.Logger, cfg MinioConfig, baseURL string) (*MinioStorage, error) {
	const op = "storage.objectstore.NewMinio"

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &MinioStorage{
		log:     log,
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
		types:   cache.New(10*time.Minute, 20*time.Minute),
	}, nil
}

// EnsureBucket создаёт бакет, если его нет.
func (s *MinioStorage) EnsureBucket(ctx context.Context) error {
	const op = "storage.objectstore.MinioStorage.EnsureBucket"

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// another instance may have created it concurrently
		if code := minio.ToErrorResponse(err).Code; code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists" {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("bucket created", slog.String("bucket", s.bucket))

	return nil
}

func (s *MinioStorage) Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	const op = "storage.objectstore.MinioStorage.Upload"

	if contentType == "" {
		contentType = DefaultContentType
	}

	key := NewObjectKey(originalName)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": originalName,
				"uploaded-at":       time.Now().UTC().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.types.SetDefault(key, contentType)

	return key, nil
}

func (s *MinioStorage) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "storage.objectstore.MinioStorage.Get"

	if !validKey(key) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrObjectNotFound)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapMinioErr(err))
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapMinioErr(err))
	}

	return data, nil
}

// GetWithContentType берёт MIME-тип из метаданных объекта, при неудаче угадывает по расширению.
func (s *MinioStorage) GetWithContentType(ctx context.Context, key string) ([]byte, string, error) {
	const op = "storage.objectstore.MinioStorage.GetWithContentType"

	data, err := s.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}

	if ct, ok := s.types.Get(key); ok {
		return data, ct.(string), nil
	}

	contentType := ContentTypeByExt(key)

	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		s.log.Warn("failed to stat object, using extension", slog.String("op", op), slog.String("key", key), sl.Err(err))
	} else if info.ContentType != "" {
		contentType = info.ContentType
	}

	s.types.SetDefault(key, contentType)

	return data, contentType, nil
}

// Delete удаляет объект. Ошибки не возвращаются, только логируются.
func (s *MinioStorage) Delete(ctx context.Context, key string) bool {
	const op = "storage.objectstore.MinioStorage.Delete"

	if !validKey(key) {
		return false
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		s.log.Error("failed to delete object", slog.String("op", op), slog.String("key", key), sl.Err(err))
		return false
	}

	s.types.Delete(key)

	return true
}

func (s *MinioStorage) URLFor(key string) string {
	return ViewURL(s.baseURL, key)
}

func mapMinioErr(err error) error {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) && (resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket") {
		return storage.ErrObjectNotFound
	}

	return err
}
