package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/jwt"
	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

const tokenType = "bearer"

type Auth struct {
	log         *slog.Logger
	usrSaver    UserSaver
	usrProvider UserProvider
	secret      string
	tokenTTL    time.Duration
}

type UserSaver interface {
	SaveUser(ctx context.Context, user models.User) (int64, error)
}

type UserProvider interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

func New(log *slog.Logger, userSaver UserSaver, userProvider UserProvider, secret string, tokenTTL time.Duration) *Auth {
	return &Auth{
		log:         log,
		usrSaver:    userSaver,
		usrProvider: userProvider,
		secret:      secret,
		tokenTTL:    tokenTTL,
	}
}

// Register создаёт пользователя с bcrypt-хэшем пароля.
func (a *Auth) Register(ctx context.Context, email, name, password string, phone *string) (models.User, error) {
	const op = "auth.Register"

	email = strings.TrimSpace(email)

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("register user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			log.Warn("password too long", sl.Err(err))

			return models.User{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrValidation, "Password is too long"))
		}

		log.Error("failed to generate password hash", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	_, err = a.usrSaver.SaveUser(ctx, models.User{
		Email:    email,
		Name:     name,
		Phone:    phone,
		Password: passHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists", sl.Err(err))

			return models.User{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrConflict, "Email already registered"))
		}

		log.Error("failed to save user", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := a.usrProvider.UserByEmail(ctx, email)
	if err != nil {
		log.Error("failed to load registered user", sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))

	return user, nil
}

// Login проверяет пароль и выдаёт подписанный токен.
func (a *Auth) Login(ctx context.Context, email, password string) (models.Token, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("username", email),
	)

	log.Info("attempting to login user")

	user, err := a.usrProvider.UserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))

			return models.Token{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrUnauthorized, "Incorrect email or password"))
		}
		log.Error("failed to get user", sl.Err(err))

		return models.Token{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return models.Token{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrUnauthorized, "Incorrect email or password"))
	}

	token, err := jwt.NewToken(user, a.secret, a.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return models.Token{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully")

	return models.Token{AccessToken: token, TokenType: tokenType}, nil
}

// Authenticate проверяет токен и возвращает активного пользователя.
func (a *Auth) Authenticate(ctx context.Context, token string) (models.User, error) {
	const op = "auth.Authenticate"

	claims, err := jwt.ParseToken(token, a.secret)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrUnauthorized, "Could not validate credentials"))
	}

	user, err := a.usrProvider.UserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrUnauthorized, "Could not validate credentials"))
		}
		a.log.Error("failed to get user", slog.String("op", op), sl.Err(err))

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if !user.IsActive {
		return models.User{}, fmt.Errorf("%s: %w", op, models.Errorf(models.ErrUnauthorized, "Inactive user"))
	}

	return user, nil
}
