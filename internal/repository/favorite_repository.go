package repository

import (
	"context"
	"errors"
	"fmt"

	"yougallery/internal/domain/models"
	"yougallery/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

type FavoriteRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewFavoriteRepo(db *pgxpool.Pool) *FavoriteRepo {
	return &FavoriteRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindFavorite ищет отметку строго по типу идентичности: user_id не совпадает с session_id
func (r *FavoriteRepo) FindFavorite(ctx context.Context, photoID int64, identity models.Identity) (models.Favorite, error) {
	const op = "repository.FavoriteRepo.FindFavorite"

	query, args, err := r.sb.Select("id", "photo_id", "user_id", "session_id", "created_at").
		From("user_favorites").
		Where(sq.Eq{"photo_id": photoID}).
		Where(identityFilter("", identity)).
		ToSql()
	if err != nil {
		return models.Favorite{}, fmt.Errorf("%s: %w", op, err)
	}

	var f models.Favorite
	err = r.db.QueryRow(ctx, query, args...).Scan(&f.ID, &f.PhotoID, &f.UserID, &f.SessionID, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Favorite{}, fmt.Errorf("%s: %w", op, storage.ErrFavoriteNotFound)
		}
		return models.Favorite{}, fmt.Errorf("%s: %w", op, err)
	}

	return f, nil
}

// AddFavorite вставляет отметку, повторная вставка игнорируется уникальным индексом
func (r *FavoriteRepo) AddFavorite(ctx context.Context, photoID int64, identity models.Identity) error {
	const op = "repository.FavoriteRepo.AddFavorite"

	var userID *int64
	var sessionID *string
	if identity.IsUser() {
		userID = &identity.UserID
	} else {
		sessionID = &identity.SessionID
	}

	query, args, err := r.sb.Insert("user_favorites").
		Columns("photo_id", "user_id", "session_id").
		Values(photoID, userID, sessionID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *FavoriteRepo) DeleteFavorite(ctx context.Context, favoriteID int64) error {
	const op = "repository.FavoriteRepo.DeleteFavorite"

	query, args, err := r.sb.Delete("user_favorites").Where(sq.Eq{"id": favoriteID}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrFavoriteNotFound)
	}

	return nil
}

// FavoritePhotoIDs возвращает, какие из photoIDs отмечены данной идентичностью
func (r *FavoriteRepo) FavoritePhotoIDs(ctx context.Context, identity models.Identity, photoIDs []int64) (map[int64]bool, error) {
	const op = "repository.FavoriteRepo.FavoritePhotoIDs"

	result := make(map[int64]bool, len(photoIDs))
	if identity.IsEmpty() || len(photoIDs) == 0 {
		return result, nil
	}

	query, args, err := r.sb.Select("photo_id").
		From("user_favorites").
		Where(identityFilter("", identity)).
		Where(sq.Expr("photo_id = ANY(?)", pq.Array(photoIDs))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// FavoritePhotos фото, отмеченные идентичностью, последние первыми
func (r *FavoriteRepo) FavoritePhotos(ctx context.Context, identity models.Identity) ([]models.Photo, error) {
	const op = "repository.FavoriteRepo.FavoritePhotos"

	if identity.IsEmpty() {
		return []models.Photo{}, nil
	}

	builder := r.sb.Select(prefixColumns("p", photoColumns)...).
		From("photos p").
		Join("user_favorites f ON f.photo_id = p.id").
		Where(identityFilter("f.", identity)).
		OrderBy("f.created_at DESC", "f.id DESC")

	photos, err := queryPhotos(ctx, r.db, builder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photos, nil
}

// GalleryFavoritePhotos фото галереи, которые кто-либо добавил в избранное
func (r *FavoriteRepo) GalleryFavoritePhotos(ctx context.Context, galleryID int64) ([]models.Photo, error) {
	const op = "repository.FavoriteRepo.GalleryFavoritePhotos"

	builder := r.sb.Select(prefixColumns("p", photoColumns)...).
		From("photos p").
		Join("scenes s ON s.id = p.scene_id").
		Where(sq.Eq{"s.gallery_id": galleryID}).
		Where("EXISTS (SELECT 1 FROM user_favorites f WHERE f.photo_id = p.id)").
		OrderBy("s.order_index ASC", "s.id ASC", "p.order_index ASC", "p.id ASC")

	photos, err := queryPhotos(ctx, r.db, builder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photos, nil
}

func identityFilter(prefix string, identity models.Identity) sq.Eq {
	if identity.IsUser() {
		return sq.Eq{prefix + "user_id": identity.UserID}
	}

	return sq.Eq{prefix + "session_id": identity.SessionID}
}
