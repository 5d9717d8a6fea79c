package repository

import (
	"context"

	"yougallery/internal/domain/models"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (int64, error)
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) (models.User, error)
	UpdatePassword(ctx context.Context, userID int64, hash []byte) error
	DeleteUser(ctx context.Context, userID int64) error
}

type GalleryRepository interface {
	CreateGalleryWithScene(ctx context.Context, gallery models.Gallery, sceneName string) (models.Gallery, error)
	GalleryByID(ctx context.Context, id int64) (models.Gallery, error)
	ListByOwner(ctx context.Context, ownerID int64, skip, limit uint64) ([]models.Gallery, error)
	UpdateGalleryFields(ctx context.Context, id int64, updates map[string]interface{}) (models.Gallery, error)
	DeleteGallery(ctx context.Context, id int64) error
	IncrementViewCount(ctx context.Context, id int64) (models.Gallery, error)
	SetCover(ctx context.Context, galleryID, photoID int64) error
	StorageKeysByGallery(ctx context.Context, galleryID int64) ([]string, error)
	StorageKeysByOwner(ctx context.Context, ownerID int64) ([]string, error)
}

type SceneRepository interface {
	CreateScene(ctx context.Context, galleryID int64, name string, orderIndex *int) (models.Scene, error)
	ScenesByGallery(ctx context.Context, galleryID int64) ([]models.Scene, error)
	SceneByID(ctx context.Context, sceneID int64) (models.Scene, error)
	UpdateSceneFields(ctx context.Context, sceneID int64, updates map[string]interface{}) (models.Scene, error)
	DeleteScene(ctx context.Context, sceneID int64) error
	StorageKeysByScene(ctx context.Context, sceneID int64) ([]string, error)
}

type PhotoRepository interface {
	NextOrderIndex(ctx context.Context, sceneID int64) (int, error)
	CreatePhoto(ctx context.Context, photo models.Photo) (models.Photo, error)
	PhotoByID(ctx context.Context, photoID int64) (models.Photo, error)
	PhotosByScene(ctx context.Context, sceneID int64) ([]models.Photo, error)
	PhotosByGallery(ctx context.Context, galleryID int64) ([]models.Photo, error)
	DeletePhoto(ctx context.Context, photoID int64) error
}

type FavoriteRepository interface {
	FindFavorite(ctx context.Context, photoID int64, identity models.Identity) (models.Favorite, error)
	AddFavorite(ctx context.Context, photoID int64, identity models.Identity) error
	DeleteFavorite(ctx context.Context, favoriteID int64) error
	FavoritePhotoIDs(ctx context.Context, identity models.Identity, photoIDs []int64) (map[int64]bool, error)
	FavoritePhotos(ctx context.Context, identity models.Identity) ([]models.Photo, error)
	GalleryFavoritePhotos(ctx context.Context, galleryID int64) ([]models.Photo, error)
}

type ContactRepository interface {
	SaveMessage(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error)
	ListMessages(ctx context.Context, skip, limit uint64) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id int64) (models.ContactMessage, error)
}

// OrphanRepository журнал ключей объектов, которые нужно удалить из хранилища.
type OrphanRepository interface {
	AddPending(ctx context.Context, keys ...string) error
	RemovePending(ctx context.Context, keys ...string) error
	ListPending(ctx context.Context, limit int64) ([]string, error)
}
