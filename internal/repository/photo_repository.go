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
)

var photoColumns = []string{
	"id",
	"scene_id",
	"filename",
	"original_filename",
	"file_path",
	"file_size",
	"mime_type",
	"width",
	"height",
	"order_index",
	"created_at",
}

type PhotoRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPhotoRepo(db *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// NextOrderIndex max(order_index)+1 по сцене, 0 если фото нет
func (r *PhotoRepo) NextOrderIndex(ctx context.Context, sceneID int64) (int, error) {
	const op = "repository.PhotoRepo.NextOrderIndex"

	query, args, err := r.sb.Select("COALESCE(MAX(order_index) + 1, 0)").
		From("photos").
		Where(sq.Eq{"scene_id": sceneID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var next int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return next, nil
}

// CreatePhoto сохраняет метаданные одного файла в собственной транзакции
func (r *PhotoRepo) CreatePhoto(ctx context.Context, photo models.Photo) (models.Photo, error) {
	const op = "repository.PhotoRepo.CreatePhoto"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.Photo{}, fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback(ctx)

	query, args, err := r.sb.Insert("photos").
		Columns(
			"scene_id",
			"filename",
			"original_filename",
			"file_path",
			"file_size",
			"mime_type",
			"width",
			"height",
			"order_index",
		).
		Values(
			photo.SceneID,
			photo.Filename,
			photo.OriginalFilename,
			photo.FilePath,
			photo.FileSize,
			photo.MimeType,
			photo.Width,
			photo.Height,
			photo.OrderIndex,
		).
		Suffix("RETURNING " + joinColumns(photoColumns)).
		ToSql()
	if err != nil {
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := scanPhoto(tx.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Photo{}, fmt.Errorf("%s: commit: %w", op, err)
	}

	return created, nil
}

func (r *PhotoRepo) PhotoByID(ctx context.Context, photoID int64) (models.Photo, error) {
	const op = "repository.PhotoRepo.PhotoByID"

	query, args, err := r.sb.Select(photoColumns...).
		From("photos").
		Where(sq.Eq{"id": photoID}).
		ToSql()
	if err != nil {
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	photo, err := scanPhoto(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Photo{}, fmt.Errorf("%s: %w", op, storage.ErrPhotoNotFound)
		}
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	return photo, nil
}

func (r *PhotoRepo) PhotosByScene(ctx context.Context, sceneID int64) ([]models.Photo, error) {
	const op = "repository.PhotoRepo.PhotosByScene"

	builder := r.sb.Select(photoColumns...).
		From("photos").
		Where(sq.Eq{"scene_id": sceneID}).
		OrderBy("order_index ASC", "id ASC")

	photos, err := queryPhotos(ctx, r.db, builder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photos, nil
}

// PhotosByGallery все фото галереи в порядке сцен, затем фото
func (r *PhotoRepo) PhotosByGallery(ctx context.Context, galleryID int64) ([]models.Photo, error) {
	const op = "repository.PhotoRepo.PhotosByGallery"

	builder := r.sb.Select(prefixColumns("p", photoColumns)...).
		From("photos p").
		Join("scenes s ON s.id = p.scene_id").
		Where(sq.Eq{"s.gallery_id": galleryID}).
		OrderBy("s.order_index ASC", "s.id ASC", "p.order_index ASC", "p.id ASC")

	photos, err := queryPhotos(ctx, r.db, builder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return photos, nil
}

// DeletePhoto удаляет фото и сбрасывает обложку галереи, если она указывала на него
func (r *PhotoRepo) DeletePhoto(ctx context.Context, photoID int64) error {
	const op = "repository.PhotoRepo.DeletePhoto"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback(ctx)

	query, args, err := r.sb.Update("galleries").
		Set("cover_photo_id", nil).
		Where(sq.Eq{"cover_photo_id": photoID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: reset cover: %w", op, err)
	}

	query, args, err = r.sb.Delete("photos").Where(sq.Eq{"id": photoID}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPhotoNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func scanPhoto(row pgx.Row) (models.Photo, error) {
	var p models.Photo
	err := row.Scan(
		&p.ID,
		&p.SceneID,
		&p.Filename,
		&p.OriginalFilename,
		&p.FilePath,
		&p.FileSize,
		&p.MimeType,
		&p.Width,
		&p.Height,
		&p.OrderIndex,
		&p.CreatedAt,
	)
	return p, err
}

func queryPhotos(ctx context.Context, db *pgxpool.Pool, builder sq.SelectBuilder) ([]models.Photo, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]models.Photo, 0)
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	return photos, rows.Err()
}
