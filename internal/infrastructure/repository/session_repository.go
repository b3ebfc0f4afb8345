package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
	domainRepo "github.com/sangkips/academy-console/internal/domain/repository"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new console session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.ConsoleSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByIDHash(ctx context.Context, idHash string) (*entity.ConsoleSession, error) {
	var session entity.ConsoleSession
	err := r.db.WithContext(ctx).First(&session, "id_hash = ?", idHash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) Touch(ctx context.Context, idHash string, lastActivity, verifiedAt time.Time) error {
	updates := map[string]interface{}{"last_activity": lastActivity}
	if !verifiedAt.IsZero() {
		updates["verified_at"] = verifiedAt
	}
	return r.db.WithContext(ctx).
		Model(&entity.ConsoleSession{}).
		Where("id_hash = ?", idHash).
		Updates(updates).Error
}

func (r *sessionRepository) Delete(ctx context.Context, idHash string) error {
	return r.db.WithContext(ctx).Delete(&entity.ConsoleSession{}, "id_hash = ?", idHash).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time, idleTimeout time.Duration) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(StaleSessionScope(now, idleTimeout)).
		Delete(&entity.ConsoleSession{})
	return result.RowsAffected, result.Error
}
