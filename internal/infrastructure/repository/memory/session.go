package memory

import (
	"context"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/repository"
)

type sessionRepository struct {
	db *sessionTable
}

func NewSessionRepository(db *DB) repository.SessionRepository {
	return &sessionRepository{db: db.sessions}
}

func (repo *sessionRepository) Create(_ context.Context, session *entity.ConsoleSession) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s := *session
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	repo.db.table[s.IDHash] = &s
	return nil
}

func (repo *sessionRepository) GetByIDHash(_ context.Context, idHash string) (*entity.ConsoleSession, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.table[idHash]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (repo *sessionRepository) Touch(_ context.Context, idHash string, lastActivity, verifiedAt time.Time) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.table[idHash]
	if !ok {
		return nil
	}
	s.LastActivity = lastActivity
	if !verifiedAt.IsZero() {
		s.VerifiedAt = verifiedAt
	}
	return nil
}

func (repo *sessionRepository) Delete(_ context.Context, idHash string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.table, idHash)
	return nil
}

func (repo *sessionRepository) DeleteExpired(_ context.Context, now time.Time, idleTimeout time.Duration) (int64, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var n int64
	for id, s := range repo.db.table {
		if s.IsExpired(now) || s.IdleFor(now) > idleTimeout {
			delete(repo.db.table, id)
			n++
		}
	}
	return n, nil
}
