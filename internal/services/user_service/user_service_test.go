package services

import (
	"context"
	"errors"
	"testing"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/handlers/slogdiscard"
	"yougallery/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) UserByID(ctx context.Context, userID int64) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) UpdateProfile(ctx context.Context, userID int64, updates map[string]interface{}) (models.User, error) {
	args := m.Called(ctx, userID, updates)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) UpdatePassword(ctx context.Context, userID int64, hash []byte) error {
	return m.Called(ctx, userID, hash).Error(0)
}

func (m *MockUserStore) DeleteUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

type MockOwnerKeys struct {
	mock.Mock
}

func (m *MockOwnerKeys) StorageKeysByOwner(ctx context.Context, ownerID int64) ([]string, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]string), args.Error(1)
}

type MockPurger struct {
	mock.Mock
}

func (m *MockPurger) Purge(ctx context.Context, keys []string) {
	m.Called(ctx, keys)
}

func newTestService() (*UserService, *MockUserStore, *MockOwnerKeys, *MockPurger) {
	users, keys, purger := new(MockUserStore), new(MockOwnerKeys), new(MockPurger)
	return NewUserService(slogdiscard.NewDiscardLogger(), users, keys, purger), users, keys, purger
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	name := " Alice "
	phone := "+380000000"

	tests := []struct {
		name    string
		patch   models.UserPatch
		updates map[string]interface{}
		wantErr error
	}{
		{name: "name and phone", patch: models.UserPatch{Name: &name, Phone: &phone, SetPhone: true}, updates: map[string]interface{}{"name": "Alice", "phone": phone}},
		{name: "clear phone", patch: models.UserPatch{SetPhone: true}, updates: map[string]interface{}{"phone": nil}},
		{name: "blank name", patch: models.UserPatch{Name: strPtr("  ")}, wantErr: models.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, _, _ := newTestService()
			if tt.updates != nil {
				users.On("UpdateProfile", ctx, int64(1), tt.updates).Return(models.User{ID: 1, Name: "Alice"}, nil).Once()
			}

			_, err := svc.UpdateProfile(ctx, 1, tt.patch)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			users.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateProfile_Empty(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newTestService()
	users.On("UserByID", ctx, int64(1)).Return(models.User{ID: 1, Name: "A"}, nil).Once()

	user, err := svc.UpdateProfile(ctx, 1, models.UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, "A", user.Name)
	users.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("old"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{ID: 1, Password: hash}

	t.Run("success", func(t *testing.T) {
		svc, users, _, _ := newTestService()
		users.On("UserByID", ctx, int64(1)).Return(user, nil).Once()
		users.On("UpdatePassword", ctx, int64(1), mock.MatchedBy(func(h []byte) bool {
			return bcrypt.CompareHashAndPassword(h, []byte("new")) == nil
		})).Return(nil).Once()

		require.NoError(t, svc.UpdatePassword(ctx, 1, "old", "new"))
		users.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		svc, users, _, _ := newTestService()
		users.On("UserByID", ctx, int64(1)).Return(user, nil).Once()

		err := svc.UpdatePassword(ctx, 1, "bad", "new")
		assert.ErrorIs(t, err, models.ErrValidation)
		msg, _ := models.PublicMessage(err)
		assert.Equal(t, "Incorrect current password", msg)
	})

	t.Run("user gone", func(t *testing.T) {
		svc, users, _, _ := newTestService()
		users.On("UserByID", ctx, int64(1)).Return(models.User{}, storage.ErrUserNotFound).Once()

		assert.ErrorIs(t, svc.UpdatePassword(ctx, 1, "old", "new"), models.ErrNotFound)
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("purges owned photos first", func(t *testing.T) {
		svc, users, keys, purger := newTestService()
		owned := []string{"a.jpg", "b.jpg"}
		keys.On("StorageKeysByOwner", ctx, int64(1)).Return(owned, nil).Once()
		purger.On("Purge", ctx, owned).Once()
		users.On("DeleteUser", ctx, int64(1)).Return(nil).Once()

		require.NoError(t, svc.DeleteAccount(ctx, 1))
		purger.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("keys failure", func(t *testing.T) {
		svc, users, keys, _ := newTestService()
		keys.On("StorageKeysByOwner", ctx, int64(1)).Return([]string(nil), errors.New("db down")).Once()

		assert.Error(t, svc.DeleteAccount(ctx, 1))
		users.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})
}

func strPtr(s string) *string { return &s }
