package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/academy-console/internal/config"
	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/enum"
	"github.com/sangkips/academy-console/internal/infrastructure/backend"
	"github.com/sangkips/academy-console/internal/infrastructure/repository/memory"
	"github.com/sangkips/academy-console/pkg/apperror"
	"github.com/sangkips/academy-console/pkg/idle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	svc      *SessionService
	backend  *fakeBackend
	clock    *idle.FakeClock
	sessions *memory.DB
	drafts   *DraftService
}

func newSessionFixture(t *testing.T, notify bool) *sessionFixture {
	t.Helper()
	db := memory.NewDB()
	fb := newFakeBackend()
	clock := idle.NewFakeClock(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	draftRepo := memory.NewDraftRepository(db)
	svc := NewSessionService(
		memory.NewSessionRepository(db),
		draftRepo,
		fb,
		config.SessionConfig{
			IdleTimeout:         15 * time.Minute,
			MaxAge:              12 * time.Hour,
			VerifyInterval:      5 * time.Minute,
			NotifyBackendOnIdle: notify,
		},
		clock,
		nil,
	)
	return &sessionFixture{
		svc:      svc,
		backend:  fb,
		clock:    clock,
		sessions: db,
		drafts:   NewDraftService(draftRepo, fb, nil, config.ReceiptConfig{}),
	}
}

func (f *sessionFixture) login(t *testing.T) *LoginOutput {
	t.Helper()
	out, err := f.svc.Login(context.Background(), &LoginInput{ContactNumber: "9999999999", Password: "secret"})
	require.NoError(t, err)
	return out
}

func TestLoginValidation(t *testing.T) {
	f := newSessionFixture(t, false)

	_, err := f.svc.Login(context.Background(), &LoginInput{})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	assert.Len(t, appErr.Errors, 2)
}

func TestLoginRejectedCredentials(t *testing.T) {
	f := newSessionFixture(t, false)
	f.backend.loginErr = &backend.Error{Status: http.StatusUnauthorized, Message: "Invalid credentials"}

	_, err := f.svc.Login(context.Background(), &LoginInput{ContactNumber: "1", Password: "x"})
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)
	assert.Equal(t, "Invalid credentials", appErr.Message)
	assert.Empty(t, appErr.Redirect)
}

func TestLoginKeepsTokenServerSide(t *testing.T) {
	f := newSessionFixture(t, false)
	out := f.login(t)

	assert.NotEmpty(t, out.SessionID)
	assert.NotEqual(t, out.SessionID, out.Session.IDHash)
	assert.Equal(t, HashSessionID(out.SessionID), out.Session.IDHash)
	assert.Equal(t, "tok", out.Session.Token)

	res, err := f.svc.Guard(context.Background(), out.SessionID)
	require.NoError(t, err)
	assert.Equal(t, enum.GuardStateAuthorized, res.State)
	assert.Equal(t, 0, f.backend.verifyCalls)
}

func TestGuardWithoutSession(t *testing.T) {
	f := newSessionFixture(t, false)

	for _, id := range []string{"", "unknown"} {
		res, err := f.svc.Guard(context.Background(), id)
		assert.ErrorIs(t, err, apperror.ErrSessionRequired)
		assert.Equal(t, enum.GuardStateRedirectToLogin, res.State)
	}
}

func TestIdleTimeoutEndsSession(t *testing.T) {
	f := newSessionFixture(t, true)
	out := f.login(t)
	ctx := context.Background()

	sess := out.Session
	_, err := f.drafts.Start(ctx, sess)
	require.NoError(t, err)

	f.clock.Advance(15 * time.Minute)

	_, err = f.svc.Guard(ctx, out.SessionID)
	assert.ErrorIs(t, err, apperror.ErrSessionRequired)
	assert.Equal(t, 1, f.backend.logoutCalls)

	view, err := f.drafts.View(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, enum.DraftStateEmpty, view.Draft.State)
	assert.Empty(t, view.ReceiptNumber)
}

func TestActivityPostponesTimeout(t *testing.T) {
	f := newSessionFixture(t, false)
	out := f.login(t)
	ctx := context.Background()

	f.clock.Advance(14 * time.Minute)
	act, err := f.svc.RecordActivity(ctx, out.Session, "keydown")
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now().Add(15*time.Minute), act.Deadline)

	f.clock.Advance(2 * time.Minute)
	res, err := f.svc.Guard(ctx, out.SessionID)
	require.NoError(t, err)
	assert.Equal(t, enum.GuardStateAuthorized, res.State)
	// the verify interval passed, so the token was checked once
	assert.Equal(t, 1, f.backend.verifyCalls)
	assert.Equal(t, 0, f.backend.logoutCalls)
}

func TestRecordActivityRejectsUnknownEvent(t *testing.T) {
	f := newSessionFixture(t, false)
	out := f.login(t)

	_, err := f.svc.RecordActivity(context.Background(), out.Session, "click")
	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	assert.Equal(t, "event", appErr.Errors[0].Field)
}

func TestFailedVerificationEndsSession(t *testing.T) {
	f := newSessionFixture(t, false)
	out := f.login(t)
	ctx := context.Background()

	f.clock.Advance(6 * time.Minute)
	f.backend.verifyErr = &backend.Error{Status: http.StatusUnauthorized, Message: "jwt expired"}

	res, err := f.svc.Guard(ctx, out.SessionID)
	assert.ErrorIs(t, err, apperror.ErrSessionRevoked)
	assert.Equal(t, enum.GuardStateRedirectToLogin, res.State)

	// no retry: the session is gone
	f.backend.verifyErr = nil
	_, err = f.svc.Guard(ctx, out.SessionID)
	assert.ErrorIs(t, err, apperror.ErrSessionRequired)
	assert.Equal(t, 1, f.backend.verifyCalls)
}

func TestStaleSessionRejectedAfterRestart(t *testing.T) {
	f := newSessionFixture(t, false)
	ctx := context.Background()
	now := f.clock.Now()

	repo := memory.NewSessionRepository(f.sessions)
	require.NoError(t, repo.Create(ctx, &entity.ConsoleSession{
		IDHash:       HashSessionID("left-open"),
		Token:        "tok",
		VerifiedAt:   now.Add(-20 * time.Minute),
		LastActivity: now.Add(-20 * time.Minute),
		ExpiresAt:    now.Add(time.Hour),
	}))

	_, err := f.svc.Guard(ctx, "left-open")
	assert.ErrorIs(t, err, apperror.ErrSessionExpired)

	got, err := repo.GetByIDHash(ctx, HashSessionID("left-open"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLogout(t *testing.T) {
	f := newSessionFixture(t, false)
	out := f.login(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Logout(ctx, out.Session))
	assert.Equal(t, 1, f.backend.logoutCalls)

	_, err := f.svc.Guard(ctx, out.SessionID)
	assert.ErrorIs(t, err, apperror.ErrSessionRequired)

	// the stopped watchdog never fires
	f.clock.Advance(time.Hour)
	assert.Equal(t, 1, f.backend.logoutCalls)
}
