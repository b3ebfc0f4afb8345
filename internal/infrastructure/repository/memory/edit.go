package memory

import (
	"context"
	"sort"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/repository"
)

type editRepository struct {
	db *editTable
}

func NewStudentEditRepository(db *DB) repository.StudentEditRepository {
	return &editRepository{db: db.edits}
}

func (repo *editRepository) Put(_ context.Context, edit *entity.StudentEdit) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	fields, ok := repo.db.table[edit.StudentID]
	if !ok {
		fields = make(map[entity.StudentField]entity.StudentEdit)
		repo.db.table[edit.StudentID] = fields
	}
	fields[edit.Field] = *edit
	return nil
}

func (repo *editRepository) ListByStudent(_ context.Context, studentID string) ([]entity.StudentEdit, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	edits := make([]entity.StudentEdit, 0, len(repo.db.table[studentID]))
	for _, e := range repo.db.table[studentID] {
		edits = append(edits, e)
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Field < edits[j].Field })
	return edits, nil
}
