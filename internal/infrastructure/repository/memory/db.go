// Package memory holds process-local repositories used when DB_DRIVER=memory
// and for drafts, which never leave the process.
package memory

import (
	"sync"

	"github.com/sangkips/academy-console/internal/domain/entity"
)

// DB groups the in-memory tables.
type DB struct {
	sessions    *sessionTable
	idempotency *idempotencyTable
	drafts      *draftTable
	edits       *editTable
}

type sessionTable struct {
	mutex sync.RWMutex
	table map[string]*entity.ConsoleSession
}

type idempotencyTable struct {
	mutex sync.RWMutex
	table map[string]*entity.IdempotencyKey
}

type draftTable struct {
	mutex sync.Mutex
	table map[string]*entity.Draft
}

type editTable struct {
	mutex sync.RWMutex
	table map[string]map[entity.StudentField]entity.StudentEdit
}

// NewDB returns empty tables.
func NewDB() *DB {
	return &DB{
		sessions:    &sessionTable{table: make(map[string]*entity.ConsoleSession)},
		idempotency: &idempotencyTable{table: make(map[string]*entity.IdempotencyKey)},
		drafts:      &draftTable{table: make(map[string]*entity.Draft)},
		edits:       &editTable{table: make(map[string]map[entity.StudentField]entity.StudentEdit)},
	}
}
