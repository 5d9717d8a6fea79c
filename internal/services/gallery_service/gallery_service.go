package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/metrics"

	"golang.org/x/crypto/bcrypt"
)

const defaultListLimit = 100

type GalleryStore interface {
	CreateGalleryWithScene(ctx context.Context, gallery models.Gallery, sceneName string) (models.Gallery, error)
	ListByOwner(ctx context.Context, ownerID int64, skip, limit uint64) ([]models.Gallery, error)
	UpdateGalleryFields(ctx context.Context, id int64, updates map[string]interface{}) (models.Gallery, error)
	DeleteGallery(ctx context.Context, id int64) error
	IncrementViewCount(ctx context.Context, id int64) (models.Gallery, error)
	StorageKeysByGallery(ctx context.Context, galleryID int64) ([]string, error)
}

type SceneLister interface {
	ScenesByGallery(ctx context.Context, galleryID int64) ([]models.Scene, error)
}

type GalleryPhotoLister interface {
	PhotosByGallery(ctx context.Context, galleryID int64) ([]models.Photo, error)
}

type GalleryFavoriteLister interface {
	GalleryFavoritePhotos(ctx context.Context, galleryID int64) ([]models.Photo, error)
}

type AccessChecker interface {
	OwnedGallery(ctx context.Context, galleryID, ownerID int64) (models.Gallery, error)
	PublicGallery(ctx context.Context, galleryID int64, viewer models.Viewer) (models.Gallery, error)
	CheckPassword(ctx context.Context, galleryID int64, password string) error
}

type DetailBuilder interface {
	Gallery(ctx context.Context, gallery models.Gallery, scenes []models.Scene, photos []models.Photo, identity models.Identity) (models.GalleryDetail, error)
	Photos(ctx context.Context, photos []models.Photo, identity models.Identity) ([]models.PhotoView, error)
}

type KeyPurger interface {
	Purge(ctx context.Context, keys []string)
}

type GalleryService struct {
	log       *slog.Logger
	galleries GalleryStore
	scenes    SceneLister
	photos    GalleryPhotoLister
	favorites GalleryFavoriteLister
	access    AccessChecker
	builder   DetailBuilder
	purger    KeyPurger
}

func NewGalleryService(
	log *slog.Logger,
	galleries GalleryStore,
	scenes SceneLister,
	photos GalleryPhotoLister,
	favorites GalleryFavoriteLister,
	access AccessChecker,
	builder DetailBuilder,
	purger KeyPurger,
) *GalleryService {
	return &GalleryService{
		log:       log,
		galleries: galleries,
		scenes:    scenes,
		photos:    photos,
		favorites: favorites,
		access:    access,
		builder:   builder,
		purger:    purger,
	}
}

// CreateGallery создает галерею вместе со сценой по умолчанию.
// Галерея всегда публичная, пароль только включает защиту.
func (s *GalleryService) CreateGallery(ctx context.Context, ownerID int64, name string, shootingDate *time.Time, password string) (models.Gallery, error) {
	const op = "service.GalleryService.CreateGallery"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("owner_id", ownerID),
	)

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Gallery name is required"))
	}

	gallery := models.Gallery{
		Name:         name,
		ShootingDate: shootingDate,
		IsPublic:     true,
		OwnerID:      ownerID,
	}

	if password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			log.Error("failed to hash password", sl.Err(err))
			return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
		}
		gallery.PasswordHash = &hash
		gallery.IsPasswordProtected = true
	}

	created, err := s.galleries.CreateGalleryWithScene(ctx, gallery, models.DefaultSceneName)
	if err != nil {
		log.Error("failed to create gallery", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery created", slog.Int64("gallery_id", created.ID))
	return created, nil
}

// ListGalleries возвращает галереи владельца, новые первыми.
func (s *GalleryService) ListGalleries(ctx context.Context, ownerID int64, skip, limit uint64) ([]models.Gallery, error) {
	const op = "service.GalleryService.ListGalleries"

	if limit == 0 {
		limit = defaultListLimit
	}

	galleries, err := s.galleries.ListByOwner(ctx, ownerID, skip, limit)
	if err != nil {
		s.log.Error("failed to list galleries", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if galleries == nil {
		galleries = []models.Gallery{}
	}

	return galleries, nil
}

// GalleryDetail полная галерея для владельца. Избранное считается от владельца.
func (s *GalleryService) GalleryDetail(ctx context.Context, galleryID, ownerID int64) (models.GalleryDetail, error) {
	const op = "service.GalleryService.GalleryDetail"

	gallery, err := s.access.OwnedGallery(ctx, galleryID, ownerID)
	if err != nil {
		return models.GalleryDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	detail, err := s.assemble(ctx, gallery, models.Identity{UserID: ownerID})
	if err != nil {
		s.log.Error("failed to assemble gallery", slog.String("op", op), slog.Int64("gallery_id", galleryID), sl.Err(err))
		return models.GalleryDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	return detail, nil
}

// PublicGalleryDetail публичный просмотр. Каждый вызов увеличивает view_count.
func (s *GalleryService) PublicGalleryDetail(ctx context.Context, galleryID int64, viewer models.Viewer) (models.GalleryDetail, error) {
	const op = "service.GalleryService.PublicGalleryDetail"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("gallery_id", galleryID),
	)

	if _, err := s.access.PublicGallery(ctx, galleryID, viewer); err != nil {
		return models.GalleryDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery, err := s.galleries.IncrementViewCount(ctx, galleryID)
	if err != nil {
		log.Error("failed to increment view count", sl.Err(err))
		return models.GalleryDetail{}, fmt.Errorf("%s: %w", op, err)
	}
	metrics.GalleryPublicViews.Inc()

	detail, err := s.assemble(ctx, gallery, viewer.Identity())
	if err != nil {
		log.Error("failed to assemble gallery", sl.Err(err))
		return models.GalleryDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("public gallery served", slog.Int64("view_count", gallery.ViewCount))
	return detail, nil
}

// UpdateGallery частично обновляет галерею.
// Пароль и флаг защиты меняются только вместе, is_public всегда true.
func (s *GalleryService) UpdateGallery(ctx context.Context, galleryID, ownerID int64, patch models.GalleryPatch) (models.Gallery, error) {
	const op = "service.GalleryService.UpdateGallery"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("gallery_id", galleryID),
	)

	current, err := s.access.OwnedGallery(ctx, galleryID, ownerID)
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	updates := map[string]interface{}{
		"is_public": true,
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Gallery name is required"))
		}
		updates["name"] = name
	}

	if patch.ShootingDate != nil {
		updates["shooting_date"] = *patch.ShootingDate
	}

	switch {
	case patch.SetPassword && patch.Password != "":
		hash, err := hashPassword(patch.Password)
		if err != nil {
			log.Error("failed to hash password", sl.Err(err))
			return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
		}
		updates["password_hash"] = hash
		updates["is_password_protected"] = true
	case patch.SetPassword:
		updates["password_hash"] = nil
		updates["is_password_protected"] = false
	case patch.IsPasswordProtected != nil && !*patch.IsPasswordProtected:
		updates["password_hash"] = nil
		updates["is_password_protected"] = false
	case patch.IsPasswordProtected != nil && current.PasswordHash == nil:
		return models.Gallery{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Password is required to protect a gallery"))
	}

	updated, err := s.galleries.UpdateGalleryFields(ctx, galleryID, updates)
	if err != nil {
		log.Error("failed to update gallery", sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery updated")
	return updated, nil
}

// DeleteGallery удаляет объекты всех фото галереи, затем саму галерею.
// Сцены, фото и избранное удаляются каскадом.
func (s *GalleryService) DeleteGallery(ctx context.Context, galleryID, ownerID int64) error {
	const op = "service.GalleryService.DeleteGallery"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("gallery_id", galleryID),
	)

	if _, err := s.access.OwnedGallery(ctx, galleryID, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	keys, err := s.galleries.StorageKeysByGallery(ctx, galleryID)
	if err != nil {
		log.Error("failed to collect storage keys", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.purger.Purge(ctx, keys)

	if err := s.galleries.DeleteGallery(ctx, galleryID); err != nil {
		log.Error("failed to delete gallery", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("gallery deleted", slog.Int("photos", len(keys)))
	return nil
}

func (s *GalleryService) CheckPassword(ctx context.Context, galleryID int64, password string) error {
	const op = "service.GalleryService.CheckPassword"

	if err := s.access.CheckPassword(ctx, galleryID, password); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GalleryFavorites фото галереи, отмеченные хотя бы одним посетителем.
func (s *GalleryService) GalleryFavorites(ctx context.Context, galleryID, ownerID int64) ([]models.PhotoView, error) {
	const op = "service.GalleryService.GalleryFavorites"

	if _, err := s.access.OwnedGallery(ctx, galleryID, ownerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photos, err := s.favorites.GalleryFavoritePhotos(ctx, galleryID)
	if err != nil {
		s.log.Error("failed to list gallery favorites", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views, err := s.builder.Photos(ctx, photos, models.Identity{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := range views {
		views[i].IsFavorite = true
	}

	return views, nil
}

func (s *GalleryService) assemble(ctx context.Context, gallery models.Gallery, identity models.Identity) (models.GalleryDetail, error) {
	scenes, err := s.scenes.ScenesByGallery(ctx, gallery.ID)
	if err != nil {
		return models.GalleryDetail{}, err
	}

	photos, err := s.photos.PhotosByGallery(ctx, gallery.ID)
	if err != nil {
		return models.GalleryDetail{}, err
	}

	return s.builder.Gallery(ctx, gallery, scenes, photos, identity)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", models.Errorf(models.ErrValidation, "Password is too long")
		}
		return "", err
	}

	return string(hash), nil
}
