package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/academy-console/internal/infrastructure/backend"
	"github.com/sangkips/academy-console/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminPurgeRequiresAdmin(t *testing.T) {
	fb := newFakeBackend()
	svc := NewAdminService(fb, nil)
	ctx := context.Background()

	staff := testSession()
	staff.Role = "staff"
	assert.ErrorIs(t, svc.PurgeStudents(ctx, staff), apperror.ErrForbidden)
	assert.ErrorIs(t, svc.PurgeReceipts(ctx, staff), apperror.ErrForbidden)
	assert.Equal(t, 0, fb.purgedStudents+fb.purgedReceipts)

	require.NoError(t, svc.PurgeStudents(ctx, testSession()))
	require.NoError(t, svc.PurgeReceipts(ctx, testSession()))
	assert.Equal(t, 1, fb.purgedStudents)
	assert.Equal(t, 1, fb.purgedReceipts)
}

func TestBackendError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"unauthorized", &backend.Error{Status: 401, Message: "jwt expired"}, http.StatusUnauthorized, apperror.ErrSessionRevoked.Message},
		{"client error", &backend.Error{Status: 409, Message: "Duplicate"}, http.StatusConflict, "Duplicate"},
		{"server error", &backend.Error{Status: 500}, http.StatusBadGateway, GenericFailure},
		{"bad shape", &backend.ParseError{Endpoint: "GET /x", Err: errors.New("eof")}, http.StatusBadGateway, "Unexpected response from server"},
		{"transport", &backend.TransportError{Endpoint: "GET /x", Err: errors.New("refused")}, http.StatusServiceUnavailable, GenericFailure},
		{"not found", backend.ErrReceiptNotFound, http.StatusNotFound, "Receipt not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := apperror.GetAppError(backendError(tt.err))
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.msg, appErr.Message)
		})
	}
	assert.NoError(t, backendError(nil))
}
