package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/storage"
)

type FavoriteStore interface {
	FindFavorite(ctx context.Context, photoID int64, identity models.Identity) (models.Favorite, error)
	AddFavorite(ctx context.Context, photoID int64, identity models.Identity) error
	DeleteFavorite(ctx context.Context, favoriteID int64) error
	FavoritePhotos(ctx context.Context, identity models.Identity) ([]models.Photo, error)
}

type PhotoProvider interface {
	PhotoByID(ctx context.Context, photoID int64) (models.Photo, error)
}

type PhotoBuilder interface {
	Photos(ctx context.Context, photos []models.Photo, identity models.Identity) ([]models.PhotoView, error)
}

type FavoriteService struct {
	log       *slog.Logger
	favorites FavoriteStore
	photos    PhotoProvider
	builder   PhotoBuilder
}

func NewFavoriteService(log *slog.Logger, favorites FavoriteStore, photos PhotoProvider, builder PhotoBuilder) *FavoriteService {
	return &FavoriteService{
		log:       log,
		favorites: favorites,
		photos:    photos,
		builder:   builder,
	}
}

// ToggleFavorite добавляет фото в избранное или убирает его оттуда.
// Возвращает новое состояние.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, photoID int64, identity models.Identity) (bool, error) {
	const op = "service.FavoriteService.ToggleFavorite"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("photo_id", photoID),
		slog.Bool("user", identity.IsUser()),
	)

	if identity.IsEmpty() {
		return false, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "session_id is required for anonymous favorites"))
	}

	if _, err := s.photos.PhotoByID(ctx, photoID); err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			return false, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrNotFound, "Photo not found"))
		}
		log.Error("failed to get photo", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.favorites.FindFavorite(ctx, photoID, identity)
	switch {
	case err == nil:
		if err := s.favorites.DeleteFavorite(ctx, existing.ID); err != nil && !errors.Is(err, storage.ErrFavoriteNotFound) {
			log.Error("failed to remove favorite", sl.Err(err))
			return false, fmt.Errorf("%s: %w", op, err)
		}
		log.Debug("favorite removed")
		return false, nil
	case errors.Is(err, storage.ErrFavoriteNotFound):
		if err := s.favorites.AddFavorite(ctx, photoID, identity); err != nil {
			log.Error("failed to add favorite", sl.Err(err))
			return false, fmt.Errorf("%s: %w", op, err)
		}
		log.Debug("favorite added")
		return true, nil
	default:
		log.Error("failed to find favorite", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}
}

// ListFavorites избранное пользователя или анонимной сессии.
// Без identity возвращается пустой список.
func (s *FavoriteService) ListFavorites(ctx context.Context, identity models.Identity) ([]models.PhotoView, error) {
	const op = "service.FavoriteService.ListFavorites"

	if identity.IsEmpty() {
		return []models.PhotoView{}, nil
	}

	photos, err := s.favorites.FavoritePhotos(ctx, identity)
	if err != nil {
		s.log.Error("failed to list favorites", slog.String("op", op), sl.Err(err))
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
