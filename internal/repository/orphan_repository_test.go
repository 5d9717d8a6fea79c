package repository_test

import (
	"context"
	"testing"

	"yougallery/internal/repository"
	redisapp "yougallery/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const pendingKey = "storage:pending_deletes"

func NewMockClient() (*redisapp.Client, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return &redisapp.Client{Client: db}, mock
}

func setupOrphanRepo() (*repository.RedisOrphanRepo, redismock.ClientMock) {
	db, mock := NewMockClient()
	return repository.NewRedisOrphanRepo(db), mock
}

func TestRedisOrphanRepo_AddPending(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupOrphanRepo()

	t.Run("successful add", func(t *testing.T) {
		mock.ExpectSAdd(pendingKey, "a.jpg", "b.jpg").SetVal(2)
		err := repo.AddPending(ctx, "a.jpg", "b.jpg")
		assert.NoError(t, err)
	})

	t.Run("no keys is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.AddPending(ctx))
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSAdd(pendingKey, "a.jpg").SetErr(redis.ErrClosed)
		err := repo.AddPending(ctx, "a.jpg")
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisOrphanRepo_RemovePending(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupOrphanRepo()

	t.Run("successful remove", func(t *testing.T) {
		mock.ExpectSRem(pendingKey, "a.jpg").SetVal(1)
		assert.NoError(t, repo.RemovePending(ctx, "a.jpg"))
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSRem(pendingKey, "a.jpg").SetErr(redis.ErrClosed)
		assert.ErrorIs(t, repo.RemovePending(ctx, "a.jpg"), redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisOrphanRepo_ListPending(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupOrphanRepo()

	t.Run("keys returned", func(t *testing.T) {
		mock.ExpectSRandMemberN(pendingKey, 100).SetVal([]string{"a.jpg", "b.jpg"})
		keys, err := repo.ListPending(ctx, 100)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"a.jpg", "b.jpg"}, keys)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectSRandMemberN(pendingKey, 100).SetErr(redis.ErrClosed)
		_, err := repo.ListPending(ctx, 100)
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
