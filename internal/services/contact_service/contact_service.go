package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/storage"
)

const defaultListLimit = 100

type ContactStore interface {
	SaveMessage(ctx context.Context, msg models.ContactMessage) (models.ContactMessage, error)
	ListMessages(ctx context.Context, skip, limit uint64) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id int64) (models.ContactMessage, error)
}

type ContactService struct {
	log  *slog.Logger
	repo ContactStore
}

func NewContactService(log *slog.Logger, repo ContactStore) *ContactService {
	return &ContactService{log: log, repo: repo}
}

// CreateMessage сохраняет сообщение из формы обратной связи.
func (s *ContactService) CreateMessage(ctx context.Context, name, email, message string) (models.ContactMessage, error) {
	const op = "service.ContactService.CreateMessage"
	log := s.log.With(slog.String("op", op))

	msg := models.ContactMessage{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}

	if msg.Name == "" || msg.Message == "" {
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Name and message are required"))
	}

	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Invalid email address"))
	}

	saved, err := s.repo.SaveMessage(ctx, msg)
	if err != nil {
		log.Error("failed to save message", sl.Err(err))
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("contact message received", slog.Int64("id", saved.ID))
	return saved, nil
}

func (s *ContactService) ListMessages(ctx context.Context, skip, limit uint64) ([]models.ContactMessage, error) {
	const op = "service.ContactService.ListMessages"

	if limit == 0 {
		limit = defaultListLimit
	}

	msgs, err := s.repo.ListMessages(ctx, skip, limit)
	if err != nil {
		s.log.Error("failed to list messages", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if msgs == nil {
		msgs = []models.ContactMessage{}
	}

	return msgs, nil
}

func (s *ContactService) MarkRead(ctx context.Context, id int64) (models.ContactMessage, error) {
	const op = "service.ContactService.MarkRead"

	msg, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrMessageNotFound) {
			return models.ContactMessage{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrNotFound, "Message not found"))
		}
		s.log.Error("failed to mark message read", slog.String("op", op), sl.Err(err))
		return models.ContactMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	return msg, nil
}
