package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	UserByID(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) (models.User, error)
	UpdatePassword(ctx context.Context, userID int64, hash []byte) error
	DeleteUser(ctx context.Context, userID int64) error
}

type OwnerKeys interface {
	StorageKeysByOwner(ctx context.Context, ownerID int64) ([]string, error)
}

type KeyPurger interface {
	Purge(ctx context.Context, keys []string)
}

type UserService struct {
	log    *slog.Logger
	users  UserStore
	keys   OwnerKeys
	purger KeyPurger
}

func NewUserService(log *slog.Logger, users UserStore, keys OwnerKeys, purger KeyPurger) *UserService {
	return &UserService{
		log:    log,
		users:  users,
		keys:   keys,
		purger: purger,
	}
}

// UpdateProfile меняет имя и телефон. Пустой patch возвращает текущий профиль.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, patch models.UserPatch) (models.User, error) {
	const op = "service.UserService.UpdateProfile"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	updates := make(map[string]interface{}, 2)

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.User{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Name must not be empty"))
		}
		updates["name"] = name
	}

	if patch.SetPhone {
		if patch.Phone == nil {
			updates["phone"] = nil
		} else {
			updates["phone"] = strings.TrimSpace(*patch.Phone)
		}
	}

	if len(updates) == 0 {
		return s.user(ctx, op, userID)
	}

	user, err := s.users.UpdateProfile(ctx, userID, updates)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrNotFound, "User not found"))
		}
		log.Error("failed to update profile", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("profile updated")
	return user, nil
}

// UpdatePassword требует текущий пароль.
func (s *UserService) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	const op = "service.UserService.UpdatePassword"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	user, err := s.user(ctx, op, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(currentPassword)); err != nil {
		log.Info("incorrect current password")
		return fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Incorrect current password"))
	}

	if newPassword == "" {
		return fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "New password must not be empty"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Password is too long"))
		}
		log.Error("failed to hash password", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		log.Error("failed to update password", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("password updated")
	return nil
}

// DeleteAccount удаляет объекты всех фото пользователя, затем самого пользователя.
// Галереи, сцены, фото и избранное удаляются каскадом.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	const op = "service.UserService.DeleteAccount"
	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", userID),
	)

	keys, err := s.keys.StorageKeysByOwner(ctx, userID)
	if err != nil {
		log.Error("failed to collect storage keys", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.purger.Purge(ctx, keys)

	if err := s.users.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, models.Errorf(models.ErrNotFound, "User not found"))
		}
		log.Error("failed to delete user", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("account deleted", slog.Int("photos", len(keys)))
	return nil
}

func (s *UserService) user(ctx context.Context, op string, userID int64) (models.User, error) {
	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrNotFound, "User not found"))
		}
		s.log.Error("failed to get user", slog.String("op", op), sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
