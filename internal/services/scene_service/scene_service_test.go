package services

import (
	"context"
	"testing"

	"yougallery/internal/domain/models"
	"yougallery/internal/lib/logger/handlers/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSceneStore struct {
	mock.Mock
}

func (m *MockSceneStore) CreateScene(ctx context.Context, galleryID int64, name string, orderIndex *int) (models.Scene, error) {
	args := m.Called(ctx, galleryID, name, orderIndex)
	return args.Get(0).(models.Scene), args.Error(1)
}

func (m *MockSceneStore) ScenesByGallery(ctx context.Context, galleryID int64) ([]models.Scene, error) {
	args := m.Called(ctx, galleryID)
	return args.Get(0).([]models.Scene), args.Error(1)
}

func (m *MockSceneStore) UpdateSceneFields(ctx context.Context, sceneID int64, updates map[string]interface{}) (models.Scene, error) {
	args := m.Called(ctx, sceneID, updates)
	return args.Get(0).(models.Scene), args.Error(1)
}

func (m *MockSceneStore) DeleteScene(ctx context.Context, sceneID int64) error {
	return m.Called(ctx, sceneID).Error(0)
}

func (m *MockSceneStore) StorageKeysByScene(ctx context.Context, sceneID int64) ([]string, error) {
	args := m.Called(ctx, sceneID)
	return args.Get(0).([]string), args.Error(1)
}

type MockPhotoLister struct {
	mock.Mock
}

func (m *MockPhotoLister) PhotosByScene(ctx context.Context, sceneID int64) ([]models.Photo, error) {
	args := m.Called(ctx, sceneID)
	return args.Get(0).([]models.Photo), args.Error(1)
}

type MockAccess struct {
	mock.Mock
}

func (m *MockAccess) OwnedGallery(ctx context.Context, galleryID, ownerID int64) (models.Gallery, error) {
	args := m.Called(ctx, galleryID, ownerID)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockAccess) PublicGallery(ctx context.Context, galleryID int64, viewer models.Viewer) (models.Gallery, error) {
	args := m.Called(ctx, galleryID, viewer)
	return args.Get(0).(models.Gallery), args.Error(1)
}

func (m *MockAccess) OwnedScene(ctx context.Context, sceneID, ownerID int64) (models.Scene, models.Gallery, error) {
	args := m.Called(ctx, sceneID, ownerID)
	return args.Get(0).(models.Scene), args.Get(1).(models.Gallery), args.Error(2)
}

func (m *MockAccess) PublicScene(ctx context.Context, sceneID int64, viewer models.Viewer) (models.Scene, models.Gallery, error) {
	args := m.Called(ctx, sceneID, viewer)
	return args.Get(0).(models.Scene), args.Get(1).(models.Gallery), args.Error(2)
}

type MockBuilder struct {
	mock.Mock
}

func (m *MockBuilder) Scene(ctx context.Context, scene models.Scene, photos []models.Photo, identity models.Identity) (models.SceneDetail, error) {
	args := m.Called(ctx, scene, photos, identity)
	return args.Get(0).(models.SceneDetail), args.Error(1)
}

func (m *MockBuilder) Photos(ctx context.Context, photos []models.Photo, identity models.Identity) ([]models.PhotoView, error) {
	args := m.Called(ctx, photos, identity)
	return args.Get(0).([]models.PhotoView), args.Error(1)
}

type MockPurger struct {
	mock.Mock
}

func (m *MockPurger) Purge(ctx context.Context, keys []string) {
	m.Called(ctx, keys)
}

type fixture struct {
	svc     *SceneService
	scenes  *MockSceneStore
	photos  *MockPhotoLister
	access  *MockAccess
	builder *MockBuilder
	purger  *MockPurger
}

func newFixture() *fixture {
	f := &fixture{
		scenes:  new(MockSceneStore),
		photos:  new(MockPhotoLister),
		access:  new(MockAccess),
		builder: new(MockBuilder),
		purger:  new(MockPurger),
	}
	f.svc = NewSceneService(slogdiscard.NewDiscardLogger(), f.scenes, f.photos, f.access, f.builder, f.purger)
	return f
}

func intPtr(i int) *int { return &i }

func TestSceneService_CreateScene(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		sceneName  string
		orderIndex *int
		wantErr    error
	}{
		{name: "appended", sceneName: "Ceremony"},
		{name: "explicit order", sceneName: "Party", orderIndex: intPtr(7)},
		{name: "empty name", sceneName: "", wantErr: models.ErrValidation},
		{name: "negative order", sceneName: "X", orderIndex: intPtr(-1), wantErr: models.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.access.On("OwnedGallery", ctx, int64(1), int64(1)).Return(models.Gallery{ID: 1, OwnerID: 1}, nil).Once()
			if tt.wantErr == nil {
				f.scenes.On("CreateScene", ctx, int64(1), tt.sceneName, tt.orderIndex).
					Return(models.Scene{ID: 3, GalleryID: 1, Name: tt.sceneName}, nil).Once()
			}

			scene, err := f.svc.CreateScene(ctx, 1, 1, tt.sceneName, tt.orderIndex)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(3), scene.ID)
		})
	}
}

func TestSceneService_CreateScene_ForeignGallery(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.access.On("OwnedGallery", ctx, int64(1), int64(2)).Return(models.Gallery{}, models.Errorf(models.ErrNotFound, "Gallery not found")).Once()

	_, err := f.svc.CreateScene(ctx, 1, 2, "x", nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSceneService_UpdateScene(t *testing.T) {
	ctx := context.Background()
	current := models.Scene{ID: 3, GalleryID: 1, Name: "Old"}

	t.Run("rename and reorder", func(t *testing.T) {
		f := newFixture()
		name := "New"
		f.access.On("OwnedScene", ctx, int64(3), int64(1)).Return(current, models.Gallery{ID: 1}, nil).Once()
		f.scenes.On("UpdateSceneFields", ctx, int64(3), map[string]interface{}{"name": "New", "order_index": 2}).
			Return(models.Scene{ID: 3, Name: "New", OrderIndex: 2}, nil).Once()

		got, err := f.svc.UpdateScene(ctx, 3, 1, models.ScenePatch{Name: &name, OrderIndex: intPtr(2)})
		require.NoError(t, err)
		assert.Equal(t, 2, got.OrderIndex)
	})

	t.Run("empty patch returns current", func(t *testing.T) {
		f := newFixture()
		f.access.On("OwnedScene", ctx, int64(3), int64(1)).Return(current, models.Gallery{ID: 1}, nil).Once()

		got, err := f.svc.UpdateScene(ctx, 3, 1, models.ScenePatch{})
		require.NoError(t, err)
		assert.Equal(t, current, got)
		f.scenes.AssertNotCalled(t, "UpdateSceneFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSceneService_DeleteScene(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	keys := []string{"a.jpg"}
	f.access.On("OwnedScene", ctx, int64(3), int64(1)).Return(models.Scene{ID: 3}, models.Gallery{ID: 1}, nil).Once()
	f.scenes.On("StorageKeysByScene", ctx, int64(3)).Return(keys, nil).Once()
	f.purger.On("Purge", ctx, keys).Once()
	f.scenes.On("DeleteScene", ctx, int64(3)).Return(nil).Once()

	require.NoError(t, f.svc.DeleteScene(ctx, 3, 1))
	f.purger.AssertExpectations(t)
	f.scenes.AssertExpectations(t)
}

func TestSceneService_PublicScenePhotos(t *testing.T) {
	ctx := context.Background()
	viewer := models.Viewer{UserID: 8, SessionID: "s1"}
	photos := []models.Photo{{ID: 1, SceneID: 3}}

	f := newFixture()
	f.access.On("PublicScene", ctx, int64(3), viewer).Return(models.Scene{ID: 3}, models.Gallery{ID: 1}, nil).Once()
	f.photos.On("PhotosByScene", ctx, int64(3)).Return(photos, nil).Once()
	f.builder.On("Photos", ctx, photos, models.Identity{UserID: 8}).
		Return([]models.PhotoView{{Photo: photos[0], IsFavorite: true}}, nil).Once()

	views, err := f.svc.PublicScenePhotos(ctx, 3, viewer)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].IsFavorite)
}

func TestSceneService_ListScenes_Empty(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.access.On("OwnedGallery", ctx, int64(1), int64(1)).Return(models.Gallery{ID: 1}, nil).Once()
	f.scenes.On("ScenesByGallery", ctx, int64(1)).Return([]models.Scene(nil), nil).Once()

	scenes, err := f.svc.ListScenes(ctx, 1, 1)
	require.NoError(t, err)
	assert.NotNil(t, scenes)
}
