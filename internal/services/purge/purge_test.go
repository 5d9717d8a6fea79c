package purge

import (
	"context"
	"errors"
	"testing"

	"yougallery/internal/lib/logger/handlers/slogdiscard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) AddPending(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockLedger) RemovePending(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockLedger) ListPending(ctx context.Context, limit int64) ([]string, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]string), args.Error(1)
}

type MockObjectDeleter struct {
	mock.Mock
}

func (m *MockObjectDeleter) Delete(ctx context.Context, key string) bool {
	return m.Called(ctx, key).Bool(0)
}

func TestPurger_Purge(t *testing.T) {
	ctx := context.Background()

	t.Run("clears only deleted keys", func(t *testing.T) {
		ledger, store := new(MockLedger), new(MockObjectDeleter)
		ledger.On("AddPending", ctx, []string{"a.jpg", "b.jpg"}).Return(nil).Once()
		store.On("Delete", ctx, "a.jpg").Return(true).Once()
		store.On("Delete", ctx, "b.jpg").Return(false).Once()
		ledger.On("RemovePending", ctx, []string{"a.jpg"}).Return(nil).Once()

		New(slogdiscard.NewDiscardLogger(), ledger, store).Purge(ctx, []string{"a.jpg", "b.jpg"})

		ledger.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("ledger failure does not block deletion", func(t *testing.T) {
		ledger, store := new(MockLedger), new(MockObjectDeleter)
		ledger.On("AddPending", ctx, mock.Anything).Return(errors.New("redis down")).Once()
		ledger.On("RemovePending", ctx, mock.Anything).Return(errors.New("redis down")).Once()
		store.On("Delete", ctx, "a.jpg").Return(true).Once()

		New(slogdiscard.NewDiscardLogger(), ledger, store).Purge(ctx, []string{"a.jpg"})

		store.AssertExpectations(t)
	})

	t.Run("without ledger", func(t *testing.T) {
		store := new(MockObjectDeleter)
		store.On("Delete", ctx, "a.jpg").Return(false).Once()

		New(slogdiscard.NewDiscardLogger(), nil, store).Purge(ctx, []string{"a.jpg"})

		store.AssertExpectations(t)
	})

	t.Run("no keys", func(t *testing.T) {
		ledger, store := new(MockLedger), new(MockObjectDeleter)
		New(slogdiscard.NewDiscardLogger(), ledger, store).Purge(ctx, nil)

		ledger.AssertNotCalled(t, "AddPending", mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestPurger_Sweep(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		pending []string
		listErr error
		results map[string]bool
		want    int
	}{
		{name: "empty ledger", pending: []string{}},
		{name: "list failure", pending: []string{}, listErr: errors.New("redis down")},
		{
			name:    "retries pending keys",
			pending: []string{"a.jpg", "b.jpg"},
			results: map[string]bool{"a.jpg": true, "b.jpg": true},
			want:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, store := new(MockLedger), new(MockObjectDeleter)
			ledger.On("ListPending", ctx, int64(sweepBatch)).Return(tt.pending, tt.listErr).Once()
			for key, ok := range tt.results {
				store.On("Delete", ctx, key).Return(ok).Once()
			}
			if tt.want > 0 {
				ledger.On("RemovePending", ctx, mock.Anything).Return(nil).Once()
			}

			got := New(slogdiscard.NewDiscardLogger(), ledger, store).Sweep(ctx)

			assert.Equal(t, tt.want, got)
			ledger.AssertExpectations(t)
		})
	}
}

func TestPurger_SweepWithoutLedger(t *testing.T) {
	assert.Equal(t, 0, New(slogdiscard.NewDiscardLogger(), nil, new(MockObjectDeleter)).Sweep(context.Background()))
}
