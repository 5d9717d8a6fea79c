package repository

import (
	"context"
	"errors"
	"fmt"

	"yougallery/internal/domain/models"
	"yougallery/internal/storage"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var galleryColumns = []string{
	"id",
	"name",
	"shooting_date",
	"is_public",
	"is_password_protected",
	"password_hash",
	"cover_photo_id",
	"view_count",
	"owner_id",
	"created_at",
	"updated_at",
}

type GalleryRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewGalleryRepo(db *pgxpool.Pool) *GalleryRepo {
	return &GalleryRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateGalleryWithScene создает галерею и её первую сцену в одной транзакции
func (r *GalleryRepo) CreateGalleryWithScene(ctx context.Context, gallery models.Gallery, sceneName string) (models.Gallery, error) {
	const op = "repository.GalleryRepo.CreateGalleryWithScene"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback(ctx)

	query, args, err := r.sb.Insert("galleries").
		Columns(
			"name",
			"shooting_date",
			"is_public",
			"is_password_protected",
			"password_hash",
			"owner_id",
		).
		Values(
			gallery.Name,
			gallery.ShootingDate,
			gallery.IsPublic,
			gallery.IsPasswordProtected,
			gallery.PasswordHash,
			gallery.OwnerID,
		).
		Suffix("RETURNING " + joinColumns(galleryColumns)).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanGallery(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err = r.sb.Insert("scenes").
		Columns("gallery_id", "name", "order_index").
		Values(created.ID, sceneName, 0).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return models.Gallery{}, fmt.Errorf("%s: create default scene: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Gallery{}, fmt.Errorf("%s: commit: %w", op, err)
	}

	return created, nil
}

// GalleryByID возвращает галерею по ID
func (r *GalleryRepo) GalleryByID(ctx context.Context, id int64) (models.Gallery, error) {
	const op = "repository.GalleryRepo.GalleryByID"

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

// ListByOwner возвращает галереи пользователя, новые первыми
func (r *GalleryRepo) ListByOwner(ctx context.Context, ownerID int64, skip, limit uint64) ([]models.Gallery, error) {
	const op = "repository.GalleryRepo.ListByOwner"

	query, args, err := r.sb.Select(galleryColumns...).
		From("galleries").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		Offset(skip).
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	galleries := make([]models.Gallery, 0)
	for rows.Next() {
		gallery, err := scanGallery(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		galleries = append(galleries, gallery)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return galleries, nil
}

// UpdateGalleryFields частично обновляет галерею
func (r *GalleryRepo) UpdateGalleryFields(ctx context.Context, id int64, updates map[string]interface{}) (models.Gallery, error) {
	const op = "repository.GalleryRepo.UpdateGalleryFields"

	allowedFields := map[string]bool{
		"name":                  true,
		"shooting_date":         true,
		"is_public":             true,
		"is_password_protected": true,
		"password_hash":         true,
	}

	builder := r.sb.Update("galleries").Set("updated_at", squirrel.Expr("NOW()"))

	for field, value := range updates {
		if !allowedFields[field] {
			return models.Gallery{}, fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}
		builder = builder.Set(field, value)
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(galleryColumns)).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

// DeleteGallery удаляет галерею по ID, сцены, фото и избранное удаляются каскадно
func (r *GalleryRepo) DeleteGallery(ctx context.Context, id int64) error {
	const op = "repository.GalleryRepo.DeleteGallery"

	query, args, err := r.sb.Delete("galleries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	return nil
}

// IncrementViewCount атомарно увеличивает счётчик просмотров
func (r *GalleryRepo) IncrementViewCount(ctx context.Context, id int64) (models.Gallery, error) {
	const op = "repository.GalleryRepo.IncrementViewCount"

	query, args, err := r.sb.Update("galleries").
		Set("view_count", squirrel.Expr("view_count + 1")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(galleryColumns)).
		ToSql()
	if err != nil {
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	gallery, err := scanGallery(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Gallery{}, fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
		}
		return models.Gallery{}, fmt.Errorf("%s: %w", op, err)
	}

	return gallery, nil
}

func (r *GalleryRepo) SetCover(ctx context.Context, galleryID, photoID int64) error {
	const op = "repository.GalleryRepo.SetCover"

	query, args, err := r.sb.Update("galleries").
		Set("cover_photo_id", photoID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": galleryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrGalleryNotFound)
	}

	return nil
}

// StorageKeysByGallery ключи объектов всех фото галереи
func (r *GalleryRepo) StorageKeysByGallery(ctx context.Context, galleryID int64) ([]string, error) {
	const op = "repository.GalleryRepo.StorageKeysByGallery"

	builder := r.sb.Select("p.filename").
		From("photos p").
		Join("scenes s ON s.id = p.scene_id").
		Where(squirrel.Eq{"s.gallery_id": galleryID})

	keys, err := collectKeys(ctx, r.db, builder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return keys, nil
}

// StorageKeysByOwner ключи объектов всех фото пользователя
func (r *GalleryRepo) StorageKeysByOwner(ctx context.Context, ownerID int64) ([]string, error) {
	const op = "repository.GalleryRepo.StorageKeysByOwner"

	builder := r.sb.Select("p.filename").
		From("photos p").
		Join("scenes s ON s.id = p.scene_id").
		Join("galleries g ON g.id = s.gallery_id").
		Where(squirrel.Eq{"g.owner_id": ownerID})

	keys, err := collectKeys(ctx, r.db, builder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return keys, nil
}

func scanGallery(row pgx.Row) (models.Gallery, error) {
	var g models.Gallery
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.ShootingDate,
		&g.IsPublic,
		&g.IsPasswordProtected,
		&g.PasswordHash,
		&g.CoverPhotoID,
		&g.ViewCount,
		&g.OwnerID,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

func collectKeys(ctx context.Context, db *pgxpool.Pool, builder squirrel.SelectBuilder) ([]string, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
