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
)

type MockFavoriteStore struct {
	mock.Mock
}

func (m *MockFavoriteStore) FindFavorite(ctx context.Context, photoID int64, identity models.Identity) (models.Favorite, error) {
	args := m.Called(ctx, photoID, identity)
	return args.Get(0).(models.Favorite), args.Error(1)
}

func (m *MockFavoriteStore) AddFavorite(ctx context.Context, photoID int64, identity models.Identity) error {
	return m.Called(ctx, photoID, identity).Error(0)
}

func (m *MockFavoriteStore) DeleteFavorite(ctx context.Context, favoriteID int64) error {
	return m.Called(ctx, favoriteID).Error(0)
}

func (m *MockFavoriteStore) FavoritePhotos(ctx context.Context, identity models.Identity) ([]models.Photo, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).([]models.Photo), args.Error(1)
}

type MockPhotoProvider struct {
	mock.Mock
}

func (m *MockPhotoProvider) PhotoByID(ctx context.Context, photoID int64) (models.Photo, error) {
	args := m.Called(ctx, photoID)
	return args.Get(0).(models.Photo), args.Error(1)
}

type MockBuilder struct {
	mock.Mock
}

func (m *MockBuilder) Photos(ctx context.Context, photos []models.Photo, identity models.Identity) ([]models.PhotoView, error) {
	args := m.Called(ctx, photos, identity)
	return args.Get(0).([]models.PhotoView), args.Error(1)
}

func newTestService() (*FavoriteService, *MockFavoriteStore, *MockPhotoProvider, *MockBuilder) {
	favs, photos, builder := new(MockFavoriteStore), new(MockPhotoProvider), new(MockBuilder)
	return NewFavoriteService(slogdiscard.NewDiscardLogger(), favs, photos, builder), favs, photos, builder
}

func TestFavoriteService_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	session := models.Identity{SessionID: "s1"}

	tests := []struct {
		name     string
		identity models.Identity
		setup    func(favs *MockFavoriteStore, photos *MockPhotoProvider)
		want     bool
		wantErr  error
	}{
		{
			name:     "adds when absent",
			identity: session,
			setup: func(favs *MockFavoriteStore, photos *MockPhotoProvider) {
				photos.On("PhotoByID", ctx, int64(5)).Return(models.Photo{ID: 5}, nil).Once()
				favs.On("FindFavorite", ctx, int64(5), session).Return(models.Favorite{}, storage.ErrFavoriteNotFound).Once()
				favs.On("AddFavorite", ctx, int64(5), session).Return(nil).Once()
			},
			want: true,
		},
		{
			name:     "removes when present",
			identity: session,
			setup: func(favs *MockFavoriteStore, photos *MockPhotoProvider) {
				photos.On("PhotoByID", ctx, int64(5)).Return(models.Photo{ID: 5}, nil).Once()
				favs.On("FindFavorite", ctx, int64(5), session).Return(models.Favorite{ID: 77}, nil).Once()
				favs.On("DeleteFavorite", ctx, int64(77)).Return(nil).Once()
			},
			want: false,
		},
		{
			name:     "unknown photo",
			identity: models.Identity{UserID: 1},
			setup: func(_ *MockFavoriteStore, photos *MockPhotoProvider) {
				photos.On("PhotoByID", ctx, int64(5)).Return(models.Photo{}, storage.ErrPhotoNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
		{
			name:     "no identity",
			identity: models.Identity{},
			setup:    func(*MockFavoriteStore, *MockPhotoProvider) {},
			wantErr:  models.ErrValidation,
		},
		{
			name:     "lookup failure",
			identity: session,
			setup: func(favs *MockFavoriteStore, photos *MockPhotoProvider) {
				photos.On("PhotoByID", ctx, int64(5)).Return(models.Photo{ID: 5}, nil).Once()
				favs.On("FindFavorite", ctx, int64(5), session).Return(models.Favorite{}, errors.New("db down")).Once()
			},
			wantErr: errors.New("any"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, favs, photos, _ := newTestService()
			tt.setup(favs, photos)

			got, err := svc.ToggleFavorite(ctx, 5, tt.identity)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, models.ErrNotFound) || errors.Is(tt.wantErr, models.ErrValidation) {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			favs.AssertExpectations(t)
		})
	}
}

func TestFavoriteService_ListFavorites(t *testing.T) {
	ctx := context.Background()

	t.Run("no identity", func(t *testing.T) {
		svc, favs, _, _ := newTestService()

		got, err := svc.ListFavorites(ctx, models.Identity{})
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.NotNil(t, got)
		favs.AssertNotCalled(t, "FavoritePhotos", mock.Anything, mock.Anything)
	})

	t.Run("session favorites are flagged", func(t *testing.T) {
		svc, favs, _, builder := newTestService()
		id := models.Identity{SessionID: "s1"}
		photos := []models.Photo{{ID: 5}}
		favs.On("FavoritePhotos", ctx, id).Return(photos, nil).Once()
		builder.On("Photos", ctx, photos, models.Identity{}).Return([]models.PhotoView{{Photo: photos[0]}}, nil).Once()

		got, err := svc.ListFavorites(ctx, id)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(5), got[0].ID)
		assert.True(t, got[0].IsFavorite)
	})
}
