package memory

import (
	"context"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/repository"
)

type idempotencyRepository struct {
	db *idempotencyTable
}

func NewIdempotencyRepository(db *DB) repository.IdempotencyRepository {
	return &idempotencyRepository{db: db.idempotency}
}

func idempotencyID(key, subject string) string {
	return subject + "\x00" + key
}

func (repo *idempotencyRepository) GetByKey(_ context.Context, key, subject string) (*entity.IdempotencyKey, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if k, ok := repo.db.table[idempotencyID(key, subject)]; ok {
		cp := *k
		return &cp, nil
	}
	return nil, nil
}

func (repo *idempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	k := *ikey
	k.CreatedAt = time.Now()
	repo.db.table[idempotencyID(k.Key, k.Subject)] = &k
	return nil
}

func (repo *idempotencyRepository) DeleteExpired(_ context.Context) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, k := range repo.db.table {
		if k.IsExpired() {
			delete(repo.db.table, id)
		}
	}
	return nil
}
