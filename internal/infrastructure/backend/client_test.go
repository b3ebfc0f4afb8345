package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, nil, nil)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantStatus int
		wantMsg    string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"success":true,"authToken":"tok","username":"admin","role":"admin"}`,
		},
		{
			name:       "rejected with error body",
			status:     http.StatusBadRequest,
			body:       `{"error":"Please try to login with correct credentials"}`,
			wantErr:    true,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Please try to login with correct credentials",
		},
		{
			name:       "success false",
			status:     http.StatusOK,
			body:       `{"success":false,"message":"User not found"}`,
			wantErr:    true,
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "User not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/auth/login", r.URL.Path)
				assert.Empty(t, r.Header.Get(TokenHeader))
				var in LoginRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
				assert.Equal(t, "9876543210", in.ContactNumber)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))

			res, err := c.Login(context.Background(), LoginRequest{ContactNumber: "9876543210", Password: "pw"})
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "tok", res.AuthToken)
				assert.Equal(t, "admin", res.Role)
				return
			}
			var be *Error
			require.True(t, errors.As(err, &be), "got %v", err)
			assert.Equal(t, tt.wantStatus, be.Status)
			assert.Equal(t, tt.wantMsg, be.Message)
		})
	}
}

func TestLoginRejectsMalformedReply(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"username":"admin"}`)
	}))

	_, err := c.Login(context.Background(), LoginRequest{})
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestVerifyTokenUnauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "stale", r.Header.Get(TokenHeader))
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Please authenticate using a valid token"}`)
	}))

	err := c.VerifyToken(context.Background(), "stale")
	assert.True(t, IsUnauthorized(err))
}

func TestListStudentsValidatesEachRecord(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"_id":"1","name":"Asha","level":"2","status":"Active"},{"name":"no id"}]`)
	}))

	_, err := c.ListStudents(context.Background(), "tok")
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "GET /api/admin/fetchalluser", pe.Endpoint)
}

func TestCreateReceiptSendsMultipartForm(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/addreciept", r.URL.Path)
		assert.Equal(t, "tok", r.Header.Get(TokenHeader))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "120", r.FormValue("reciept_number"))
		assert.Equal(t, "S-7", r.FormValue("scode"))
		assert.Equal(t, "4", r.FormValue("paid_upto"))
		assert.Equal(t, "1740.00", r.FormValue("net_amount"))
		assert.Equal(t, "500.00", r.FormValue("exercisenkitFee"))
		assert.Equal(t, "ONE THOUSAND, SEVEN HUNDRED FORTY", r.FormValue("totalAmountInWords"))

		file, header, err := r.FormFile("reciept_img")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "receipt_120.pdf", header.Filename)
		data, _ := io.ReadAll(file)
		assert.Equal(t, "%PDF-", string(data))

		_, _ = io.WriteString(w, `{"success":true,"message":"Receipt added","reciept":{"_id":"r-1"}}`)
	}))

	id, err := c.CreateReceipt(context.Background(), "tok", &ReceiptSubmission{
		Number:        "120",
		StudentCode:   "S-7",
		Name:          "Asha",
		Course:        "BRAINOBRAIN",
		PaidUpto:      4,
		Date:          time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		CourseFee:     decimal.NewFromInt(1000),
		ExerciseFee:   decimal.NewFromInt(500),
		NetAmount:     decimal.RequireFromString("1740"),
		AmountInWords: "ONE THOUSAND, SEVEN HUNDRED FORTY",
		PaymentMode:   "cash",
		Attachment:    []byte("%PDF-"),
	})
	require.NoError(t, err)
	assert.Equal(t, "r-1", id)
}

func TestCreateReceiptFailureMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"Receipt number already exists"}`)
	}))

	_, err := c.CreateReceipt(context.Background(), "tok", &ReceiptSubmission{Number: "1"})
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "Receipt number already exists", be.Message)
}

func TestEmptyFailureLeavesMessageBlank(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.CreateReceipt(context.Background(), "tok", &ReceiptSubmission{Number: "1"})
	var be *Error
	require.True(t, errors.As(err, &be))
	assert.Equal(t, http.StatusInternalServerError, be.Status)
	assert.Empty(t, be.Message)
	assert.Equal(t, "backend: status 500: Internal Server Error", be.Error())
}

func TestListReceiptsAcceptsSingleObject(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"_id":"r1","reciept_number":5,"name":"Asha","net_amount":"118"}`)
	}))

	list, err := c.ListReceipts(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.FlexString("5"), list[0].ReceiptNumber)
	assert.True(t, list[0].NetAmount.Equal(decimal.NewFromInt(118)))
}

func TestNextReceiptNumbers(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"receiptNumber":121,"mreceiptNumber":"m-9"}`)
	}))

	n, err := c.NextReceiptNumbers(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "121", n.Standard.String())
	assert.Equal(t, "m-9", n.Alternate.String())
}

func TestTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond, nil, nil)

	_, err := c.ListStudents(context.Background(), "tok")
	var te *TransportError
	assert.True(t, errors.As(err, &te))
}
