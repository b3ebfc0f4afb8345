package repository

import (
	"context"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
)

// SessionRepository stores console sessions keyed by the hash of their id
type SessionRepository interface {
	Create(ctx context.Context, session *entity.ConsoleSession) error
	// GetByIDHash returns nil, nil when no session matches.
	GetByIDHash(ctx context.Context, idHash string) (*entity.ConsoleSession, error)
	// Touch records activity and, when verifiedAt is non-zero, a fresh verification.
	Touch(ctx context.Context, idHash string, lastActivity, verifiedAt time.Time) error
	Delete(ctx context.Context, idHash string) error
	DeleteExpired(ctx context.Context, now time.Time, idleTimeout time.Duration) (int64, error)
}
