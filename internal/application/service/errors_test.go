package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sangkips/academy-console/internal/infrastructure/backend"
	"github.com/sangkips/academy-console/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendFailureWithoutMessage(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    int
	}{
		{name: "empty 500", status: http.StatusInternalServerError, wantMessage: GenericFailure, wantCode: http.StatusBadGateway},
		{name: "empty 400", status: http.StatusBadRequest, wantMessage: GenericFailure, wantCode: http.StatusBadRequest},
		{name: "non json 502", status: http.StatusBadGateway, body: "<html>upstream down</html>", wantMessage: GenericFailure, wantCode: http.StatusBadGateway},
		{name: "message kept", status: http.StatusBadRequest, body: `{"message":"Receipt number already exists"}`, wantMessage: "Receipt number already exists", wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					_, _ = io.WriteString(w, tt.body)
				}
			}))
			t.Cleanup(srv.Close)
			client := backend.NewClient(srv.URL, time.Second, nil, nil)

			_, err := client.CreateReceipt(context.Background(), "tok", &backend.ReceiptSubmission{Number: "1"})
			require.Error(t, err)
			assert.Equal(t, tt.wantMessage, failureMessage(err))

			var appErr *apperror.AppError
			require.True(t, errors.As(backendError(err), &appErr), "got %v", backendError(err))
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantMessage, appErr.Message)
		})
	}
}
