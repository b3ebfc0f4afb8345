package repository

import (
	"context"

	"github.com/sangkips/academy-console/internal/domain/entity"
)

// DraftRepository holds one receipt draft per console session.
type DraftRepository interface {
	// Get returns a copy of the session's draft, or nil when there is none.
	Get(ctx context.Context, sessionID string) (*entity.Draft, error)
	// Update applies fn to the session's draft under the repository lock,
	// creating an empty draft first if needed. Changes made by fn are kept
	// only when it returns nil. The returned draft is a copy.
	Update(ctx context.Context, sessionID string, fn func(*entity.Draft) error) (*entity.Draft, error)
	Delete(ctx context.Context, sessionID string) error
}
