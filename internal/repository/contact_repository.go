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

var contactColumns = []string{"id", "name", "email", "message", "is_read", "created_at"}

type ContactRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContactRepo(db *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ContactRepo) SaveMessage(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error) {
	const op = "repository.ContactRepo.SaveMessage"

	query, args, err := r.sb.Insert("contact_messages").
		Columns("name", "email", "message").
		Values(msg.Name, msg.Email, msg.Message).
		Suffix("RETURNING " + joinColumns(contactColumns)).
		ToSql()
	if err != nil {
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanContact(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

// ListMessages сообщения, новые первыми
func (r *ContactRepo) ListMessages(ctx context.Context, skip, limit uint64) ([]models.ContactMessage, error) {
	const op = "repository.ContactRepo.ListMessages"

	query, args, err := r.sb.Select(contactColumns...).
		From("contact_messages").
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

	messages := make([]models.ContactMessage, 0)
	for rows.Next() {
		msg, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return messages, nil
}

func (r *ContactRepo) MarkRead(ctx context.Context, id int64) (models.ContactMessage, error) {
	const op = "repository.ContactRepo.MarkRead"

	query, args, err := r.sb.Update("contact_messages").
		Set("is_read", true).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(contactColumns)).
		ToSql()
	if err != nil {
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	msg, err := scanContact(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ContactMessage{}, fmt.Errorf("%s: %w", op, storage.ErrMessageNotFound)
		}
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	return msg, nil
}

func scanContact(row pgx.Row) (models.ContactMessage, error) {
	var m models.ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.IsRead, &m.CreatedAt)
	return m, err
}
