package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/sl"
)

type SceneStore interface {
	CreateScene(ctx context.Context, galleryID int64, name string, orderIndex *int) (models.Scene, error)
	ScenesByGallery(ctx context.Context, galleryID int64) ([]models.Scene, error)
	UpdateSceneFields(ctx context.Context, sceneID int64, updates map[string]interface{}) (models.Scene, error)
	DeleteScene(ctx context.Context, sceneID int64) error
	StorageKeysByScene(ctx context.Context, sceneID int64) ([]string, error)
}

type ScenePhotoLister interface {
	PhotosByScene(ctx context.Context, sceneID int64) ([]models.Photo, error)
}

type AccessChecker interface {
	OwnedGallery(ctx context.Context, galleryID, ownerID int64) (models.Gallery, error)
	PublicGallery(ctx context.Context, galleryID int64, viewer models.Viewer) (models.Gallery, error)
	OwnedScene(ctx context.Context, sceneID, ownerID int64) (models.Scene, models.Gallery, error)
	PublicScene(ctx context.Context, sceneID int64, viewer models.Viewer) (models.Scene, models.Gallery, error)
}

type SceneBuilder interface {
	Scene(ctx context.Context, scene models.Scene, photos []models.Photo, identity models.Identity) (models.SceneDetail, error)
	Photos(ctx context.Context, photos []models.Photo, identity models.Identity) ([]models.PhotoView, error)
}

type KeyPurger interface {
	Purge(ctx context.Context, keys []string)
}

type SceneService struct {
	log     *slog.Logger
	scenes  SceneStore
	photos  ScenePhotoLister
	access  AccessChecker
	builder SceneBuilder
	purger  KeyPurger
}

func NewSceneService(log *slog.Logger, scenes SceneStore, photos ScenePhotoLister, access AccessChecker, builder SceneBuilder, purger KeyPurger) *SceneService {
	return &SceneService{
		log:     log,
		scenes:  scenes,
		photos:  photos,
		access:  access,
		builder: builder,
		purger:  purger,
	}
}

func (s *SceneService) ListScenes(ctx context.Context, galleryID, ownerID int64) ([]models.Scene, error) {
	const op = "service.SceneService.ListScenes"

	if _, err := s.access.OwnedGallery(ctx, galleryID, ownerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.list(ctx, op, galleryID)
}

func (s *SceneService) PublicScenes(ctx context.Context, galleryID int64, viewer models.Viewer) ([]models.Scene, error) {
	const op = "service.SceneService.PublicScenes"

	if _, err := s.access.PublicGallery(ctx, galleryID, viewer); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.list(ctx, op, galleryID)
}

// CreateScene добавляет сцену в конец галереи, если orderIndex не задан.
func (s *SceneService) CreateScene(ctx context.Context, galleryID, ownerID int64, name string, orderIndex *int) (models.Scene, error) {
	const op = "service.SceneService.CreateScene"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("gallery_id", galleryID),
	)

	if _, err := s.access.OwnedGallery(ctx, galleryID, ownerID); err != nil {
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Scene{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Scene name is required"))
	}

	if orderIndex != nil && *orderIndex < 0 {
		return models.Scene{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "order_index must not be negative"))
	}

	scene, err := s.scenes.CreateScene(ctx, galleryID, name, orderIndex)
	if err != nil {
		log.Error("failed to create scene", sl.Err(err))
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("scene created", slog.Int64("scene_id", scene.ID), slog.Int("order_index", scene.OrderIndex))
	return scene, nil
}

// SceneDetail сцена с фото для владельца.
func (s *SceneService) SceneDetail(ctx context.Context, sceneID, ownerID int64) (models.SceneDetail, error) {
	const op = "service.SceneService.SceneDetail"

	scene, _, err := s.access.OwnedScene(ctx, sceneID, ownerID)
	if err != nil {
		return models.SceneDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	photos, err := s.photos.PhotosByScene(ctx, sceneID)
	if err != nil {
		s.log.Error("failed to list photos", slog.String("op", op), sl.Err(err))
		return models.SceneDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	detail, err := s.builder.Scene(ctx, scene, photos, models.Identity{UserID: ownerID})
	if err != nil {
		return models.SceneDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	return detail, nil
}

func (s *SceneService) UpdateScene(ctx context.Context, sceneID, ownerID int64, patch models.ScenePatch) (models.Scene, error) {
	const op = "service.SceneService.UpdateScene"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("scene_id", sceneID),
	)

	current, _, err := s.access.OwnedScene(ctx, sceneID, ownerID)
	if err != nil {
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{}, 2)

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.Scene{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Scene name is required"))
		}
		updates["name"] = name
	}

	if patch.OrderIndex != nil {
		if *patch.OrderIndex < 0 {
			return models.Scene{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "order_index must not be negative"))
		}
		updates["order_index"] = *patch.OrderIndex
	}

	if len(updates) == 0 {
		return current, nil
	}

	scene, err := s.scenes.UpdateSceneFields(ctx, sceneID, updates)
	if err != nil {
		log.Error("failed to update scene", sl.Err(err))
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("scene updated")
	return scene, nil
}

// DeleteScene удаляет объекты фото сцены, затем сцену.
func (s *SceneService) DeleteScene(ctx context.Context, sceneID, ownerID int64) error {
	const op = "service.SceneService.DeleteScene"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("scene_id", sceneID),
	)

	if _, _, err := s.access.OwnedScene(ctx, sceneID, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	keys, err := s.scenes.StorageKeysByScene(ctx, sceneID)
	if err != nil {
		log.Error("failed to collect storage keys", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.purger.Purge(ctx, keys)

	if err := s.scenes.DeleteScene(ctx, sceneID); err != nil {
		log.Error("failed to delete scene", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("scene deleted", slog.Int("photos", len(keys)))
	return nil
}

func (s *SceneService) ScenePhotos(ctx context.Context, sceneID, ownerID int64) ([]models.PhotoView, error) {
	const op = "service.SceneService.ScenePhotos"

	if _, _, err := s.access.OwnedScene(ctx, sceneID, ownerID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.photoViews(ctx, op, sceneID, models.Identity{UserID: ownerID})
}

// PublicScenePhotos фото сцены для посетителя с его избранным.
func (s *SceneService) PublicScenePhotos(ctx context.Context, sceneID int64, viewer models.Viewer) ([]models.PhotoView, error) {
	const op = "service.SceneService.PublicScenePhotos"

	if _, _, err := s.access.PublicScene(ctx, sceneID, viewer); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return s.photoViews(ctx, op, sceneID, viewer.Identity())
}

func (s *SceneService) list(ctx context.Context, op string, galleryID int64) ([]models.Scene, error) {
	scenes, err := s.scenes.ScenesByGallery(ctx, galleryID)
	if err != nil {
		s.log.Error("failed to list scenes", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if scenes == nil {
		scenes = []models.Scene{}
	}

	return scenes, nil
}

func (s *SceneService) photoViews(ctx context.Context, op string, sceneID int64, identity models.Identity) ([]models.PhotoView, error) {
	photos, err := s.photos.PhotosByScene(ctx, sceneID)
	if err != nil {
		s.log.Error("failed to list photos", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views, err := s.builder.Photos(ctx, photos, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return views, nil
}
