package repository

import (
	"time"

	"gorm.io/gorm"
)

// StaleSessionScope matches sessions past their absolute expiry or idle for
// longer than idleTimeout.
func StaleSessionScope(now time.Time, idleTimeout time.Duration) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expires_at < ? OR last_activity < ?", now, now.Add(-idleTimeout))
	}
}

// ExpiredKeyScope matches idempotency keys past their expiry.
func ExpiredKeyScope(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expires_at < ?", now)
	}
}
