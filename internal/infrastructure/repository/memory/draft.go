package memory

import (
	"context"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/repository"
)

type draftRepository struct {
	db  *draftTable
	now func() time.Time
}

func NewDraftRepository(db *DB) repository.DraftRepository {
	return &draftRepository{db: db.drafts, now: time.Now}
}

func (repo *draftRepository) Get(_ context.Context, sessionID string) (*entity.Draft, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if d, ok := repo.db.table[sessionID]; ok {
		return d.Clone(), nil
	}
	return nil, nil
}

func (repo *draftRepository) Update(_ context.Context, sessionID string, fn func(*entity.Draft) error) (*entity.Draft, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	current, ok := repo.db.table[sessionID]
	if !ok {
		current = entity.NewDraft(sessionID, repo.now())
	}

	// fn works on a copy so a failed update leaves the stored draft untouched
	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	repo.db.table[sessionID] = working
	return working.Clone(), nil
}

func (repo *draftRepository) Delete(_ context.Context, sessionID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.table, sessionID)
	return nil
}
