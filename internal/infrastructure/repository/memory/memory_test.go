package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftUpdateKeepsChangesOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository(NewDB())

	d, err := repo.Update(ctx, "s1", func(d *entity.Draft) error {
		d.ErrorMessage = "kept"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "kept", d.ErrorMessage)

	_, err = repo.Update(ctx, "s1", func(d *entity.Draft) error {
		d.ErrorMessage = "discarded"
		return errors.New("nope")
	})
	require.Error(t, err)

	stored, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "kept", stored.ErrorMessage)

	require.NoError(t, repo.Delete(ctx, "s1"))
	stored, err = repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSessionDeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(NewDB())
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &entity.ConsoleSession{IDHash: "fresh", LastActivity: now, ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.ConsoleSession{IDHash: "idle", LastActivity: now.Add(-20 * time.Minute), ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.ConsoleSession{IDHash: "old", LastActivity: now, ExpiresAt: now.Add(-time.Second)}))

	n, err := repo.DeleteExpired(ctx, now, 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	s, err := repo.GetByIDHash(ctx, "fresh")
	require.NoError(t, err)
	require.NotNil(t, s)

	later := now.Add(time.Minute)
	require.NoError(t, repo.Touch(ctx, "fresh", later, time.Time{}))
	s, _ = repo.GetByIDHash(ctx, "fresh")
	assert.Equal(t, later, s.LastActivity)
}

func TestIdempotencyKeysAreScopedBySubject(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(NewDB())

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{Key: "k", Subject: "a", ResponseCode: 200, ExpiresAt: time.Now().Add(time.Hour)}))

	got, err := repo.GetByKey(ctx, "k", "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 200, got.ResponseCode)

	got, err = repo.GetByKey(ctx, "k", "b")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEditRepositoryKeepsLatestPerField(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentEditRepository(NewDB())

	require.NoError(t, repo.Put(ctx, &entity.StudentEdit{StudentID: "s", Field: entity.StudentFieldLevel, Value: "3", State: enum.EditStatePending}))
	require.NoError(t, repo.Put(ctx, &entity.StudentEdit{StudentID: "s", Field: entity.StudentFieldLevel, Value: "3", State: enum.EditStateConfirmed}))
	require.NoError(t, repo.Put(ctx, &entity.StudentEdit{StudentID: "s", Field: entity.StudentFieldStatus, Value: "Dropped", State: enum.EditStateFailed}))

	edits, err := repo.ListByStudent(ctx, "s")
	require.NoError(t, err)
	require.Len(t, edits, 2)
	assert.Equal(t, entity.StudentFieldLevel, edits[0].Field)
	assert.Equal(t, enum.EditStateConfirmed, edits[0].State)
}
