package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type GalleryProvider interface {
	GalleryByID(ctx context.Context, id int64) (models.Gallery, error)
}

type SceneProvider interface {
	SceneByID(ctx context.Context, sceneID int64) (models.Scene, error)
}

type PhotoProvider interface {
	PhotoByID(ctx context.Context, photoID int64) (models.Photo, error)
}

// Engine решает, может ли вызывающий читать или менять галерею, сцену или фото.
// Чужие объекты возвращаются как ErrNotFound, чтобы не раскрывать их существование.
type Engine struct {
	log             *slog.Logger
	galleries       GalleryProvider
	scenes          SceneProvider
	photos          PhotoProvider
	enforcePassword bool
}

func New(log *slog.Logger, galleries GalleryProvider, scenes SceneProvider, photos PhotoProvider, enforcePassword bool) *Engine {
	return &Engine{
		log:             log,
		galleries:       galleries,
		scenes:          scenes,
		photos:          photos,
		enforcePassword: enforcePassword,
	}
}

func (e *Engine) OwnedGallery(ctx context.Context, galleryID, ownerID int64) (models.Gallery, error) {
	const op = "access.Engine.OwnedGallery"

	gallery, err := e.gallery(ctx, op, galleryID)
	if err != nil {
		return models.Gallery{}, err
	}

	if gallery.OwnerID != ownerID {
		e.log.Debug("ownership mismatch", slog.String("op", op), slog.Int64("gallery_id", galleryID), slog.Int64("user_id", ownerID))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, galleryNotFound())
	}

	return gallery, nil
}

func (e *Engine) OwnedScene(ctx context.Context, sceneID, ownerID int64) (models.Scene, models.Gallery, error) {
	const op = "access.Engine.OwnedScene"

	scene, err := e.scene(ctx, op, sceneID)
	if err != nil {
		return models.Scene{}, models.Gallery{}, err
	}

	gallery, err := e.gallery(ctx, op, scene.GalleryID)
	if err != nil || gallery.OwnerID != ownerID {
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return models.Scene{}, models.Gallery{}, err
		}
		return models.Scene{}, models.Gallery{}, fmt.Errorf("%s: %w", op, sceneNotFound())
	}

	return scene, gallery, nil
}

func (e *Engine) OwnedPhoto(ctx context.Context, photoID, ownerID int64) (models.Photo, models.Gallery, error) {
	const op = "access.Engine.OwnedPhoto"

	photo, err := e.photos.PhotoByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, storage.ErrPhotoNotFound) {
			return models.Photo{}, models.Gallery{}, fmt.Errorf("%s: %w", op, photoNotFound())
		}
		e.log.Error("failed to get photo", slog.String("op", op), sl.Err(err))
		return models.Photo{}, models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	_, gallery, err := e.OwnedScene(ctx, photo.SceneID, ownerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Photo{}, models.Gallery{}, fmt.Errorf("%s: %w", op, photoNotFound())
		}
		return models.Photo{}, models.Gallery{}, err
	}

	return photo, gallery, nil
}

// PublicGallery проверяет доступ к публичному представлению галереи.
func (e *Engine) PublicGallery(ctx context.Context, galleryID int64, viewer models.Viewer) (models.Gallery, error) {
	const op = "access.Engine.PublicGallery"

	gallery, err := e.gallery(ctx, op, galleryID)
	if err != nil {
		return models.Gallery{}, err
	}

	if !gallery.IsPublic {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, galleryNotFound())
	}

	if e.enforcePassword && gallery.IsPasswordProtected &&
		gallery.OwnerID != viewer.UserID && !viewer.HasUnlocked(gallery.ID) {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrPasswordRequired, "Gallery password required"))
	}

	return gallery, nil
}

func (e *Engine) PublicScene(ctx context.Context, sceneID int64, viewer models.Viewer) (models.Scene, models.Gallery, error) {
	const op = "access.Engine.PublicScene"

	scene, err := e.scene(ctx, op, sceneID)
	if err != nil {
		return models.Scene{}, models.Gallery{}, err
	}

	gallery, err := e.PublicGallery(ctx, scene.GalleryID, viewer)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Scene{}, models.Gallery{}, fmt.Errorf("%s: %w", op, sceneNotFound())
		}
		return models.Scene{}, models.Gallery{}, err
	}

	return scene, gallery, nil
}

// CheckPassword сверяет пароль с хэшем галереи.
func (e *Engine) CheckPassword(ctx context.Context, galleryID int64, password string) error {
	const op = "access.Engine.CheckPassword"

	gallery, err := e.gallery(ctx, op, galleryID)
	if err != nil {
		return err
	}

	if !gallery.IsPasswordProtected || gallery.PasswordHash == nil {
		return fmt.Errorf("%s: %w", op, models.Errorf(models.ErrNotFound, "Gallery not found or not password protected"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*gallery.PasswordHash), []byte(password)); err != nil {
		e.log.Info("incorrect gallery password", slog.String("op", op), slog.Int64("gallery_id", galleryID))
		return fmt.Errorf("%s: %w", op, models.Errorf(models.ErrUnauthorized, "Incorrect password"))
	}

	return nil
}

func (e *Engine) gallery(ctx context.Context, op string, galleryID int64) (models.Gallery, error) {
	gallery, err := e.galleries.GalleryByID(ctx, galleryID)
	if err != nil {
		if errors.Is(err, storage.ErrGalleryNotFound) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, galleryNotFound())
		}
		e.log.Error("failed to get gallery", slog.String("op", op), sl.Err(err))
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

func (e *Engine) scene(ctx context.Context, op string, sceneID int64) (models.Scene, error) {
	scene, err := e.scenes.SceneByID(ctx, sceneID)
	if err != nil {
		if errors.Is(err, storage.ErrSceneNotFound) {
			return models.Scene{}, fmt.Errorf("%s: %w", op, sceneNotFound())
		}
		e.log.Error("failed to get scene", slog.String("op", op), sl.Err(err))
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}

	return scene, nil
}

func galleryNotFound() error {
	return models.Errorf(models.ErrNotFound, "Gallery not found")
}

func sceneNotFound() error {
	return models.Errorf(models.ErrNotFound, "Scene not found")
}

func photoNotFound() error {
	return models.Errorf(models.ErrNotFound, "Photo not found")
}
