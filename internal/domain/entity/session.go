package entity

import (
	"time"
)

// ConsoleSession is the server-side half of a signed-in console.
// The browser only holds the opaque session id; the backend token stays here.
type ConsoleSession struct {
	IDHash       string    `gorm:"primaryKey;size:128"`
	Token        string    `gorm:"type:text;not null" json:"-"`
	Username     string    `gorm:"size:255"`
	Role         string    `gorm:"size:64"`
	VerifiedAt   time.Time `gorm:"not null"`
	LastActivity time.Time `gorm:"not null;index"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for ConsoleSession
func (ConsoleSession) TableName() string {
	return "console_sessions"
}

// IsExpired reports whether the session outlived its absolute lifetime.
func (s *ConsoleSession) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// IdleFor returns how long the session has gone without activity.
func (s *ConsoleSession) IdleFor(now time.Time) time.Duration {
	return now.Sub(s.LastActivity)
}

// IsAdmin reports whether the signed-in user may run maintenance actions.
func (s *ConsoleSession) IsAdmin() bool {
	return s.Role == "admin"
}
