// Package readmodel собирает вложенные ответы gallery -> scenes -> photos.
package readmodel

import (
	"context"
	"fmt"

	"yougallery/internal/domain/models"
)

type FavoriteChecker interface {
	FavoritePhotoIDs(ctx context.Context, identity models.Identity, photoIDs []int64) (map[int64]bool, error)
}

type URLResolver interface {
	URLFor(key string) string
}

type Builder struct {
	favorites FavoriteChecker
	urls      URLResolver
}

func New(favorites FavoriteChecker, urls URLResolver) *Builder {
	return &Builder{favorites: favorites, urls: urls}
}

// Photos добавляет к фото URL и флаг избранного для identity.
// Порядок входного среза сохраняется.
func (b *Builder) Photos(ctx context.Context, photos []models.Photo, identity models.Identity) ([]models.PhotoView, error) {
	const op = "readmodel.Builder.Photos"

	views := make([]models.PhotoView, 0, len(photos))
	if len(photos) == 0 {
		return views, nil
	}

	favs := map[int64]bool{}
	if !identity.IsEmpty() {
		ids := make([]int64, 0, len(photos))
		for _, p := range photos {
			ids = append(ids, p.ID)
		}

		var err error
		favs, err = b.favorites.FavoritePhotoIDs(ctx, identity, ids)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	for _, p := range photos {
		views = append(views, models.PhotoView{
			Photo:      p,
			URL:        b.urls.URLFor(p.Filename),
			IsFavorite: favs[p.ID],
		})
	}

	return views, nil
}

// Gallery раскладывает фото по сценам. Сцены и фото должны прийти уже отсортированными по order_index.
func (b *Builder) Gallery(ctx context.Context, gallery models.Gallery, scenes []models.Scene, photos []models.Photo, identity models.Identity) (models.GalleryDetail, error) {
	const op = "readmodel.Builder.Gallery"

	views, err := b.Photos(ctx, photos, identity)
	if err != nil {
		return models.GalleryDetail{}, fmt.Errorf("%s: %w", op, err)
	}

	byScene := make(map[int64][]models.PhotoView, len(scenes))
	for _, v := range views {
		byScene[v.SceneID] = append(byScene[v.SceneID], v)
	}

	detail := models.GalleryDetail{
		Gallery: gallery,
		Scenes:  make([]models.SceneDetail, 0, len(scenes)),
	}
	for _, s := range scenes {
		sp := byScene[s.ID]
		if sp == nil {
			sp = []models.PhotoView{}
		}
		s.PhotoCount = len(sp)
		detail.Scenes = append(detail.Scenes, models.SceneDetail{Scene: s, Photos: sp})
	}

	return detail, nil
}

func (b *Builder) Scene(ctx context.Context, scene models.Scene, photos []models.Photo, identity models.Identity) (models.SceneDetail, error) {
	views, err := b.Photos(ctx, photos, identity)
	if err != nil {
		return models.SceneDetail{}, fmt.Errorf("readmodel.Builder.Scene: %w", err)
	}

	scene.PhotoCount = len(views)
	return models.SceneDetail{Scene: scene, Photos: views}, nil
}
