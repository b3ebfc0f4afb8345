package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/academy-console/internal/config"
	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/enum"
	"github.com/sangkips/academy-console/internal/domain/repository"
	"github.com/sangkips/academy-console/internal/infrastructure/backend"
	"github.com/sangkips/academy-console/pkg/apperror"
	"github.com/sangkips/academy-console/pkg/idle"
	"github.com/sangkips/academy-console/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// AuthBackend is the part of the backend the session guard talks to.
type AuthBackend interface {
	Login(ctx context.Context, in backend.LoginRequest) (*backend.LoginResult, error)
	VerifyToken(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
}

// SessionService signs operators in and out and guards every console request.
type SessionService struct {
	sessions repository.SessionRepository
	drafts   repository.DraftRepository
	auth     AuthBackend
	cfg      config.SessionConfig
	clock    idle.Clock
	log      *zap.Logger

	mu        sync.Mutex
	watchdogs map[string]*idle.Watchdog
}

// NewSessionService creates a new session service
func NewSessionService(
	sessions repository.SessionRepository,
	drafts repository.DraftRepository,
	auth AuthBackend,
	cfg config.SessionConfig,
	clock idle.Clock,
	log *zap.Logger,
) *SessionService {
	if clock == nil {
		clock = idle.RealClock
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = idle.DefaultTimeout
	}
	return &SessionService{
		sessions:  sessions,
		drafts:    drafts,
		auth:      auth,
		cfg:       cfg,
		clock:     clock,
		log:       log,
		watchdogs: make(map[string]*idle.Watchdog),
	}
}

// HashSessionID derives the storage key of a session id.
func HashSessionID(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// LoginInput represents the login input
type LoginInput struct {
	ContactNumber string
	Password      string
	Role          string
}

// LoginOutput carries the opaque id the browser keeps in its cookie.
type LoginOutput struct {
	SessionID string
	Session   *entity.ConsoleSession
}

// Login authenticates against the backend and opens a console session.
func (s *SessionService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.ContactNumber) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "contact_number", Message: "Contact number is required"})
	}
	if input.Password == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "password", Message: "Password is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	result, err := s.auth.Login(ctx, backend.LoginRequest{
		ContactNumber: strings.TrimSpace(input.ContactNumber),
		Password:      input.Password,
		Role:          input.Role,
	})
	if err != nil {
		// A 401 here is a bad password, not a revoked session.
		var be *backend.Error
		if errors.As(err, &be) {
			return nil, apperror.NewAppError(statusFor(be.Status), messageOr(be.Message))
		}
		return nil, backendError(err)
	}

	id, err := newSessionID()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.cfg.MaxAge)
	if exp, err := utils.TokenExpiry(result.AuthToken); err == nil && !exp.IsZero() && (s.cfg.MaxAge <= 0 || exp.Before(expiresAt)) {
		expiresAt = exp
	}

	role := result.Role
	if role == "" {
		role = input.Role
	}
	session := &entity.ConsoleSession{
		IDHash:       HashSessionID(id),
		Token:        result.AuthToken,
		Username:     result.Username,
		Role:         role,
		VerifiedAt:   now,
		LastActivity: now,
		ExpiresAt:    expiresAt,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	s.watch(session)

	s.log.Info("console session opened", zap.String("user", session.Username), zap.String("role", session.Role))
	return &LoginOutput{SessionID: id, Session: session}, nil
}

// GuardResult is the outcome of Guard.
type GuardResult struct {
	State   enum.GuardState
	Session *entity.ConsoleSession
}

// Guard resolves the session behind a cookie value. A session that has not
// been verified within the verify interval is checked against the backend
// once; any rejection or error ends it.
func (s *SessionService) Guard(ctx context.Context, sessionID string) (*GuardResult, error) {
	redirect := &GuardResult{State: enum.GuardStateRedirectToLogin}
	if sessionID == "" {
		return redirect, apperror.ErrSessionRequired
	}

	hash := HashSessionID(sessionID)
	session, err := s.sessions.GetByIDHash(ctx, hash)
	if err != nil {
		return redirect, err
	}
	if session == nil {
		return redirect, apperror.ErrSessionRequired
	}

	now := s.clock.Now()
	if session.IsExpired(now) || session.IdleFor(now) >= s.cfg.IdleTimeout {
		s.end(ctx, session, false)
		return redirect, apperror.ErrSessionExpired
	}

	if now.Sub(session.VerifiedAt) >= s.cfg.VerifyInterval {
		if err := s.auth.VerifyToken(ctx, session.Token); err != nil {
			s.log.Info("session verification failed", zap.String("user", session.Username), zap.Error(err))
			s.end(ctx, session, false)
			return redirect, apperror.ErrSessionRevoked
		}
		session.VerifiedAt = now
		if err := s.sessions.Touch(ctx, hash, session.LastActivity, now); err != nil {
			return redirect, err
		}
	}

	s.watch(session)
	return &GuardResult{State: enum.GuardStateAuthorized, Session: session}, nil
}

// ActivityOutput tells the console when it will be signed out.
type ActivityOutput struct {
	Deadline time.Time `json:"deadline"`
}

// RecordActivity restarts the idle timer of a session for a qualifying
// browser event.
func (s *SessionService) RecordActivity(ctx context.Context, session *entity.ConsoleSession, event string) (*ActivityOutput, error) {
	e := idle.Event(strings.ToLower(strings.TrimSpace(event)))
	if !e.Valid() {
		return nil, apperror.NewFieldError("event", "Unknown activity event")
	}

	w := s.watch(session)
	if err := w.Touch(e); err != nil {
		if errors.Is(err, idle.ErrExpired) {
			return nil, apperror.ErrSessionExpired
		}
		return nil, err
	}

	now := s.clock.Now()
	if err := s.sessions.Touch(ctx, session.IDHash, now, time.Time{}); err != nil {
		return nil, err
	}
	session.LastActivity = now
	return &ActivityOutput{Deadline: w.Deadline()}, nil
}

// Logout ends the session and tells the backend.
func (s *SessionService) Logout(ctx context.Context, session *entity.ConsoleSession) error {
	if session == nil {
		return nil
	}
	s.end(ctx, session, true)
	return nil
}

// Revoke ends a session the backend no longer accepts.
func (s *SessionService) Revoke(ctx context.Context, session *entity.ConsoleSession) {
	if session == nil {
		return
	}
	s.log.Info("session revoked by backend", zap.String("user", session.Username))
	s.end(ctx, session, false)
}

// Sweep removes sessions that expired while nobody was watching them.
func (s *SessionService) Sweep(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.clock.Now(), s.cfg.IdleTimeout)
}

// watch returns the session's watchdog, arming one if none is running.
func (s *SessionService) watch(session *entity.ConsoleSession) *idle.Watchdog {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.watchdogs[session.IDHash]; ok && !w.Expired() {
		return w
	}
	snapshot := *session
	w := idle.New(s.clock, s.cfg.IdleTimeout, func() { s.expire(&snapshot) })
	s.watchdogs[session.IDHash] = w
	return w
}

func (s *SessionService) expire(session *entity.ConsoleSession) {
	s.log.Info("session idle timeout", zap.String("user", session.Username), zap.Duration("timeout", s.cfg.IdleTimeout))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.end(ctx, session, s.cfg.NotifyBackendOnIdle)
}

func (s *SessionService) end(ctx context.Context, session *entity.ConsoleSession, notifyBackend bool) {
	s.mu.Lock()
	if w, ok := s.watchdogs[session.IDHash]; ok {
		w.Stop()
		delete(s.watchdogs, session.IDHash)
	}
	s.mu.Unlock()

	if notifyBackend && session.Token != "" {
		if err := s.auth.Logout(ctx, session.Token); err != nil {
			s.log.Warn("backend logout failed", zap.String("user", session.Username), zap.Error(err))
		}
	}
	if err := s.sessions.Delete(ctx, session.IDHash); err != nil {
		s.log.Warn("failed to delete session", zap.Error(err))
	}
	if err := s.drafts.Delete(ctx, session.IDHash); err != nil {
		s.log.Warn("failed to delete draft", zap.Error(err))
	}
}
