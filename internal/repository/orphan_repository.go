package repository

import (
	"context"
	"fmt"

	redisapp "yougallery/internal/storage/redis"
)

const pendingDeletesKey = "storage:pending_deletes"

// RedisOrphanRepo хранит ключи объектов, удаление которых ещё не подтверждено хранилищем.
type RedisOrphanRepo struct {
	Client *redisapp.Client
}

func NewRedisOrphanRepo(client *redisapp.Client) *RedisOrphanRepo {
	return &RedisOrphanRepo{Client: client}
}

func (r *RedisOrphanRepo) AddPending(ctx context.Context, keys ...string) error {
	const op = "repository.RedisOrphanRepo.AddPending"

	if len(keys) == 0 {
		return nil
	}

	if err := r.Client.SAdd(ctx, pendingDeletesKey, toArgs(keys)...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisOrphanRepo) RemovePending(ctx context.Context, keys ...string) error {
	const op = "repository.RedisOrphanRepo.RemovePending"

	if len(keys) == 0 {
		return nil
	}

	if err := r.Client.SRem(ctx, pendingDeletesKey, toArgs(keys)...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ListPending возвращает до limit ключей из журнала в произвольном порядке.
func (r *RedisOrphanRepo) ListPending(ctx context.Context, limit int64) ([]string, error) {
	const op = "repository.RedisOrphanRepo.ListPending"

	keys, err := r.Client.SRandMemberN(ctx, pendingDeletesKey, limit).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return keys, nil
}

func toArgs(keys []string) []interface{} {
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	return args
}
