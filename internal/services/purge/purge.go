// Package purge удаляет объекты фотографий из хранилища с записью в журнал,
// чтобы неудачные удаления можно было повторить.
package purge

import (
	"context"
	"log/slog"

	"yougallery/internal/lib/logger/sl"
	"yougallery/internal/metrics"
)

const sweepBatch = 500

type Ledger interface {
	AddPending(ctx context.Context, keys ...string) error
	RemovePending(ctx context.Context, keys ...string) error
	ListPending(ctx context.Context, limit int64) ([]string, error)
}

type ObjectDeleter interface {
	Delete(ctx context.Context, key string) bool
}

type Purger struct {
	log    *slog.Logger
	ledger Ledger
	store  ObjectDeleter
}

// New создаёт Purger. ledger может быть nil: тогда удаление остаётся best-effort без повторов.
func New(log *slog.Logger, ledger Ledger, store ObjectDeleter) *Purger {
	return &Purger{
		log:    log,
		ledger: ledger,
		store:  store,
	}
}

// Purge удаляет объекты по ключам. Ошибки только логируются, вызывающий
// удаляет строки в БД в любом случае.
func (p *Purger) Purge(ctx context.Context, keys []string) {
	const op = "purge.Purger.Purge"

	if len(keys) == 0 {
		return
	}

	log := p.log.With(slog.String("op", op), slog.Int("keys", len(keys)))

	if p.ledger != nil {
		if err := p.ledger.AddPending(ctx, keys...); err != nil {
			log.Warn("failed to record pending deletes", sl.Err(err))
		}
	}

	deleted := p.deleteAll(ctx, log, keys)

	if p.ledger != nil && len(deleted) > 0 {
		if err := p.ledger.RemovePending(ctx, deleted...); err != nil {
			log.Warn("failed to clear pending deletes", sl.Err(err))
		}
	}

	if failed := len(keys) - len(deleted); failed > 0 {
		log.Warn("some objects were not deleted", slog.Int("failed", failed))
	}
}

// Sweep повторяет удаление ключей, оставшихся в журнале. Возвращает число удалённых.
func (p *Purger) Sweep(ctx context.Context) int {
	const op = "purge.Purger.Sweep"

	if p.ledger == nil {
		return 0
	}

	log := p.log.With(slog.String("op", op))

	keys, err := p.ledger.ListPending(ctx, sweepBatch)
	if err != nil {
		log.Error("failed to list pending deletes", sl.Err(err))
		return 0
	}

	if len(keys) == 0 {
		return 0
	}

	deleted := p.deleteAll(ctx, log, keys)
	if len(deleted) > 0 {
		if err := p.ledger.RemovePending(ctx, deleted...); err != nil {
			log.Error("failed to clear pending deletes", sl.Err(err))
		}
	}

	log.Info("sweep finished", slog.Int("pending", len(keys)), slog.Int("deleted", len(deleted)))

	return len(deleted)
}

func (p *Purger) deleteAll(ctx context.Context, log *slog.Logger, keys []string) []string {
	deleted := make([]string, 0, len(keys))

	for _, key := range keys {
		if p.store.Delete(ctx, key) {
			metrics.ObjectDeletes.WithLabelValues("ok").Inc()
			deleted = append(deleted, key)
			continue
		}

		metrics.ObjectDeletes.WithLabelValues("failed").Inc()
		log.Debug("object delete failed", slog.String("key", key))
	}

	return deleted
}
