package repository

import (
	redisapp "yougallery/internal/storage/redis"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Repository struct {
	User     UserRepository
	Gallery  GalleryRepository
	Scene    SceneRepository
	Photo    PhotoRepository
	Favorite FavoriteRepository
	Contact  ContactRepository
	Orphan   OrphanRepository
}

// New собирает репозитории. Без rdb журнал удалений не ведётся и Orphan остаётся nil.
func New(db *pgxpool.Pool, rdb *redisapp.Client) *Repository {
	repo := &Repository{
		User:     NewUserRepository(db),
		Gallery:  NewGalleryRepo(db),
		Scene:    NewSceneRepo(db),
		Photo:    NewPhotoRepo(db),
		Favorite: NewFavoriteRepo(db),
		Contact:  NewContactRepo(db),
	}

	if rdb != nil {
		repo.Orphan = NewRedisOrphanRepo(rdb)
	}

	return repo
}
