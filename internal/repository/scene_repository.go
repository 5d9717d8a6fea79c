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

var sceneColumns = []string{"id", "gallery_id", "name", "order_index", "created_at", "updated_at"}

type SceneRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewSceneRepo(db *pgxpool.Pool) *SceneRepo {
	return &SceneRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreateScene добавляет сцену. Без orderIndex сцена встаёт в конец галереи.
func (r *SceneRepo) CreateScene(ctx context.Context, galleryID int64, name string, orderIndex *int) (models.Scene, error) {
	const op = "repository.SceneRepo.CreateScene"

	var order interface{} = sq.Expr("(SELECT COALESCE(MAX(order_index) + 1, 0) FROM scenes WHERE gallery_id = ?)", galleryID)
	if orderIndex != nil {
		order = *orderIndex
	}

	query, args, err := r.sb.Insert("scenes").
		Columns("gallery_id", "name", "order_index").
		Values(galleryID, name, order).
		Suffix("RETURNING " + joinColumns(sceneColumns)).
		ToSql()
	if err != nil {
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}

	var s models.Scene
	err = r.db.QueryRow(ctx, query, args...).Scan(&s.ID, &s.GalleryID, &s.Name, &s.OrderIndex, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// ScenesByGallery сцены галереи по порядку, с количеством фото
func (r *SceneRepo) ScenesByGallery(ctx context.Context, galleryID int64) ([]models.Scene, error) {
	const op = "repository.SceneRepo.ScenesByGallery"

	query, args, err := r.selectWithCount().
		Where(sq.Eq{"s.gallery_id": galleryID}).
		OrderBy("s.order_index ASC", "s.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	scenes := make([]models.Scene, 0)
	for rows.Next() {
		scene, err := scanScene(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		scenes = append(scenes, scene)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return scenes, nil
}

func (r *SceneRepo) SceneByID(ctx context.Context, sceneID int64) (models.Scene, error) {
	const op = "repository.SceneRepo.SceneByID"

	query, args, err := r.selectWithCount().
		Where(sq.Eq{"s.id": sceneID}).
		ToSql()
	if err != nil {
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}

	scene, err := scanScene(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Scene{}, fmt.Errorf("%s: %w", op, storage.ErrSceneNotFound)
		}
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}

	return scene, nil
}

func (r *SceneRepo) UpdateSceneFields(ctx context.Context, sceneID int64, updates map[string]interface{}) (models.Scene, error) {
	const op = "repository.SceneRepo.UpdateSceneFields"

	allowedFields := map[string]bool{
		"name":        true,
		"order_index": true,
	}

	builder := r.sb.Update("scenes").Set("updated_at", sq.Expr("NOW()"))

	for field, value := range updates {
		if !allowedFields[field] {
			return models.Scene{}, fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}
		builder = builder.Set(field, value)
	}

	query, args, err := builder.Where(sq.Eq{"id": sceneID}).ToSql()
	if err != nil {
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return models.Scene{}, fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return models.Scene{}, fmt.Errorf("%s: %w", op, storage.ErrSceneNotFound)
	}

	return r.SceneByID(ctx, sceneID)
}

// DeleteScene удаляет сцену, фото и избранное удаляются каскадно.
// Обложка галереи сбрасывается, если она была в этой сцене.
func (r *SceneRepo) DeleteScene(ctx context.Context, sceneID int64) error {
	const op = "repository.SceneRepo.DeleteScene"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", op, err)
	}
	defer tx.Rollback(ctx)

	query, args, err := r.sb.Update("galleries").
		Set("cover_photo_id", nil).
		Where(sq.Expr("cover_photo_id IN (SELECT id FROM photos WHERE scene_id = ?)", sceneID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: reset cover: %w", op, err)
	}

	query, args, err = r.sb.Delete("scenes").Where(sq.Eq{"id": sceneID}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrSceneNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func (r *SceneRepo) StorageKeysByScene(ctx context.Context, sceneID int64) ([]string, error) {
	const op = "repository.SceneRepo.StorageKeysByScene"

	keys, err := collectKeys(ctx, r.db, r.sb.Select("filename").From("photos").Where(sq.Eq{"scene_id": sceneID}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return keys, nil
}

func (r *SceneRepo) selectWithCount() sq.SelectBuilder {
	cols := append(prefixColumns("s", sceneColumns), "COUNT(p.id) AS photo_count")

	return r.sb.Select(cols...).
		From("scenes s").
		LeftJoin("photos p ON p.scene_id = s.id").
		GroupBy("s.id")
}

func scanScene(row pgx.Row) (models.Scene, error) {
	var s models.Scene
	err := row.Scan(&s.ID, &s.GalleryID, &s.Name, &s.OrderIndex, &s.CreatedAt, &s.UpdatedAt, &s.PhotoCount)
	return s, err
}
