package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/jwt"
	"yougallery/internal/lib/logger/handlers/slogdiscard"
	"yougallery/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "secret"

type MockUserSaver struct {
	mock.Mock
}

func (m *MockUserSaver) SaveUser(ctx context.Context, user models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) UserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func newTestAuth() (*Auth, *MockUserSaver, *MockUserProvider) {
	saver := new(MockUserSaver)
	provider := new(MockUserProvider)
	return New(slogdiscard.NewDiscardLogger(), saver, provider, testSecret, 30*time.Minute), saver, provider
}

func hashed(t *testing.T, password string) []byte {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestAuth_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		a, saver, provider := newTestAuth()

		saver.On("SaveUser", ctx, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "a@x.com" && u.Name == "A" &&
				bcrypt.CompareHashAndPassword(u.Password, []byte("pw1")) == nil
		})).Return(int64(1), nil).Once()
		provider.On("UserByEmail", ctx, "a@x.com").Return(models.User{ID: 1, Email: "a@x.com", IsActive: true}, nil).Once()

		user, err := a.Register(ctx, " a@x.com ", "A", "pw1", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		saver.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		a, saver, _ := newTestAuth()
		saver.On("SaveUser", ctx, mock.Anything).Return(int64(0), storage.ErrUserExists).Once()

		_, err := a.Register(ctx, "a@x.com", "A", "pw1", nil)
		assert.ErrorIs(t, err, models.ErrConflict)

		msg, ok := models.PublicMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "Email already registered", msg)
	})

	t.Run("storage failure", func(t *testing.T) {
		a, saver, _ := newTestAuth()
		saver.On("SaveUser", ctx, mock.Anything).Return(int64(0), errors.New("db down")).Once()

		_, err := a.Register(ctx, "a@x.com", "A", "pw1", nil)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, models.ErrConflict))
	})

	t.Run("multibyte password over bcrypt limit", func(t *testing.T) {
		a, saver, _ := newTestAuth()

		_, err := a.Register(ctx, "a@x.com", "A", strings.Repeat("ж", 40), nil)
		assert.ErrorIs(t, err, models.ErrValidation)

		msg, ok := models.PublicMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "Password is too long", msg)
		saver.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
	})
}

func TestAuth_Login(t *testing.T) {
	ctx := context.Background()
	user := models.User{ID: 7, Email: "a@x.com", IsActive: true, Password: hashed(t, "pw1")}

	tests := []struct {
		name      string
		password  string
		setup     func(p *MockUserProvider)
		wantError error
	}{
		{
			name:     "success",
			password: "pw1",
			setup: func(p *MockUserProvider) {
				p.On("UserByEmail", ctx, "a@x.com").Return(user, nil).Once()
			},
		},
		{
			name:     "wrong password",
			password: "nope",
			setup: func(p *MockUserProvider) {
				p.On("UserByEmail", ctx, "a@x.com").Return(user, nil).Once()
			},
			wantError: models.ErrUnauthorized,
		},
		{
			name:     "unknown user",
			password: "pw1",
			setup: func(p *MockUserProvider) {
				p.On("UserByEmail", ctx, "a@x.com").Return(models.User{}, storage.ErrUserNotFound).Once()
			},
			wantError: models.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, provider := newTestAuth()
			tt.setup(provider)

			token, err := a.Login(ctx, "a@x.com", tt.password)

			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "bearer", token.TokenType)

			claims, err := jwt.ParseToken(token.AccessToken, testSecret)
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", claims.Subject)
		})
	}
}

func TestAuth_Authenticate(t *testing.T) {
	ctx := context.Background()
	active := models.User{ID: 1, Email: "a@x.com", IsActive: true}
	inactive := models.User{ID: 2, Email: "b@x.com"}

	validToken, err := jwt.NewToken(active, testSecret, time.Minute)
	require.NoError(t, err)
	inactiveToken, err := jwt.NewToken(inactive, testSecret, time.Minute)
	require.NoError(t, err)
	foreignToken, err := jwt.NewToken(active, "other", time.Minute)
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		a, _, provider := newTestAuth()
		provider.On("UserByEmail", ctx, "a@x.com").Return(active, nil).Once()

		user, err := a.Authenticate(ctx, validToken)
		require.NoError(t, err)
		assert.Equal(t, active.ID, user.ID)
	})

	t.Run("bad signature", func(t *testing.T) {
		a, _, _ := newTestAuth()
		_, err := a.Authenticate(ctx, foreignToken)
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})

	t.Run("inactive", func(t *testing.T) {
		a, _, provider := newTestAuth()
		provider.On("UserByEmail", ctx, "b@x.com").Return(inactive, nil).Once()

		_, err := a.Authenticate(ctx, inactiveToken)
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})

	t.Run("deleted user", func(t *testing.T) {
		a, _, provider := newTestAuth()
		provider.On("UserByEmail", ctx, "a@x.com").Return(models.User{}, storage.ErrUserNotFound).Once()

		_, err := a.Authenticate(ctx, validToken)
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})
}
