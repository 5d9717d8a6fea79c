package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/imageinfo"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/metrics"
	"yougallery/internal/storage"
	"yougallery/internal/storage/objectstore"
)

type PhotoStore interface {
	NextOrderIndex(ctx context.Context, sceneID int64) (int, error)
	CreatePhoto(ctx context.Context, photo models.Photo) (models.Photo, error)
	PhotoByID(ctx context.Context, photoID int64) (models.Photo, error)
	DeletePhoto(ctx context.Context, photoID int64) error
}

type CoverSetter interface {
	SetCover(ctx context.Context, galleryID, photoID int64) error
}

type ObjectStore interface {
	Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	GetWithContentType(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) bool
}

type AccessChecker interface {
	OwnedScene(ctx context.Context, sceneID, ownerID int64) (models.Scene, models.Gallery, error)
	OwnedPhoto(ctx context.Context, photoID, ownerID int64) (models.Photo, models.Gallery, error)
}

type PhotoBuilder interface {
	Photos(ctx context.Context, photos []models.Photo, identity models.Identity) ([]models.PhotoView, error)
}

type KeyPurger interface {
	Purge(ctx context.Context, keys []string)
}

type PhotoService struct {
	log     *slog.Logger
	photos  PhotoStore
	covers  CoverSetter
	store   ObjectStore
	access  AccessChecker
	builder PhotoBuilder
	purger  KeyPurger
}

func NewPhotoService(
	log *slog.Logger,
	photos PhotoStore,
	covers CoverSetter,
	store ObjectStore,
	access AccessChecker,
	builder PhotoBuilder,
	purger KeyPurger,
) *PhotoService {
	return &PhotoService{
		log:     log,
		photos:  photos,
		covers:  covers,
		store:   store,
		access:  access,
		builder: builder,
		purger:  purger,
	}
}

// UploadPhotos загружает файлы в сцену. Каждый файл обрабатывается независимо:
// ошибка одного файла не откатывает уже сохранённые.
// order_index получают только успешно загруженные файлы, подряд от текущего максимума.
func (s *PhotoService) UploadPhotos(ctx context.Context, sceneID, ownerID int64, files []models.Upload) (models.UploadResult, error) {
	const op = "service.PhotoService.UploadPhotos"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("scene_id", sceneID),
		slog.Int("files", len(files)),
	)

	if _, _, err := s.access.OwnedScene(ctx, sceneID, ownerID); err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	if len(files) == 0 {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "No files provided"))
	}

	next, err := s.photos.NextOrderIndex(ctx, sceneID)
	if err != nil {
		log.Error("failed to get order index", sl.Err(err))
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	created := make([]models.Photo, 0, len(files))
	failed := make([]models.UploadFailure, 0)

	for _, file := range files {
		photo, failure := s.uploadOne(ctx, log, sceneID, next, file)
		if failure != nil {
			failed = append(failed, *failure)
			continue
		}

		created = append(created, photo)
		next++
	}

	uploaded, err := s.builder.Photos(ctx, created, models.Identity{})
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("upload finished", slog.Int("uploaded", len(uploaded)), slog.Int("failed", len(failed)))

	return models.UploadResult{Uploaded: uploaded, Failed: failed}, nil
}

func (s *PhotoService) uploadOne(ctx context.Context, log *slog.Logger, sceneID int64, orderIndex int, file models.Upload) (models.Photo, *models.UploadFailure) {
	log = log.With(slog.String("filename", file.Filename))

	info, err := imageinfo.Inspect(file.Data)
	if err != nil {
		log.Info("rejected non-image file", sl.Err(err))
		metrics.PhotoUploads.WithLabelValues("invalid").Inc()
		return models.Photo{}, &models.UploadFailure{Filename: file.Filename, Error: "Invalid image file"}
	}

	key, err := s.store.Upload(ctx, file.Data, file.Filename, info.MimeType)
	if err != nil {
		log.Error("failed to store object", sl.Err(err))
		metrics.PhotoUploads.WithLabelValues("error").Inc()
		return models.Photo{}, &models.UploadFailure{Filename: file.Filename, Error: "Failed to store file", Internal: true}
	}

	width, height := info.Width, info.Height
	photo, err := s.photos.CreatePhoto(ctx, models.Photo{
		SceneID:          sceneID,
		Filename:         key,
		OriginalFilename: file.Filename,
		FilePath:         objectstore.StoragePath(key),
		FileSize:         int64(len(file.Data)),
		MimeType:         info.MimeType,
		Width:            &width,
		Height:           &height,
		OrderIndex:       orderIndex,
	})
	if err != nil {
		log.Error("failed to save photo", sl.Err(err))
		// объект без строки в БД никому не нужен
		s.store.Delete(ctx, key)
		metrics.PhotoUploads.WithLabelValues("error").Inc()
		return models.Photo{}, &models.UploadFailure{Filename: file.Filename, Error: "Failed to save photo", Internal: true}
	}

	metrics.PhotoUploads.WithLabelValues("ok").Inc()
	return photo, nil
}

// ViewByID отдаёт файл фото по его id.
func (s *PhotoService) ViewByID(ctx context.Context, photoID int64) (models.PhotoFile, error) {
	const op = "service.PhotoService.ViewByID"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("photo_id", photoID),
	)

	photo, err := s.photos.PhotoByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			return models.PhotoFile{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrNotFound, "Photo not found"))
		}
		log.Error("failed to get photo", sl.Err(err))
		return models.PhotoFile{}, fmt.Errorf("%s: %w", op, err)
	}

	data, err := s.store.Get(ctx, photo.Filename)
	if err != nil {
		return models.PhotoFile{}, fmt.Errorf("%s: %w", op, s.objectErr(log, err))
	}

	contentType := photo.MimeType
	if contentType == "" {
		contentType = objectstore.ContentTypeByExt(photo.Filename)
	}

	return models.PhotoFile{Data: data, ContentType: contentType, Filename: photo.OriginalFilename}, nil
}

// ViewByKey отдаёт объект напрямую по ключу хранилища.
func (s *PhotoService) ViewByKey(ctx context.Context, key string) (models.PhotoFile, error) {
	const op = "service.PhotoService.ViewByKey"
	log := s.log.With(
		slog.String("op", op),
		slog.String("key", key),
	)

	data, contentType, err := s.store.GetWithContentType(ctx, key)
	if err != nil {
		return models.PhotoFile{}, fmt.Errorf("%s: %w", op, s.objectErr(log, err))
	}

	return models.PhotoFile{Data: data, ContentType: contentType, Filename: key}, nil
}

// DeletePhoto удаляет объект из хранилища, затем строку в БД.
// Неудачное удаление объекта не мешает удалению строки.
func (s *PhotoService) DeletePhoto(ctx context.Context, photoID, ownerID int64) error {
	const op = "service.PhotoService.DeletePhoto"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("photo_id", photoID),
	)

	photo, _, err := s.access.OwnedPhoto(ctx, photoID, ownerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.purger.Purge(ctx, []string{photo.Filename})

	if err := s.photos.DeletePhoto(ctx, photoID); err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			return fmt.Errorf("%s: %w", op, models.Errorf(models.ErrNotFound, "Photo not found"))
		}
		log.Error("failed to delete photo", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("photo deleted")
	return nil
}

// SetCover делает фото обложкой его галереи.
func (s *PhotoService) SetCover(ctx context.Context, photoID, ownerID int64) error {
	const op = "service.PhotoService.SetCover"

	_, gallery, err := s.access.OwnedPhoto(ctx, photoID, ownerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.covers.SetCover(ctx, gallery.ID, photoID); err != nil {
		s.log.Error("failed to set cover", slog.String("op", op), slog.Int64("gallery_id", gallery.ID), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *PhotoService) objectErr(log *slog.Logger, err error) error {
	if errors.Is(err, storage.ErrObjectNotFound) {
		log.Warn("object missing in storage")
		return models.Errorf(models.ErrNotFound, "Photo file not found in storage")
	}

	log.Error("failed to read object", sl.Err(err))
	return err
}
