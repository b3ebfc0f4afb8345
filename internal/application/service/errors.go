package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/sangkips/academy-console/internal/infrastructure/backend"
	"github.com/sangkips/academy-console/pkg/apperror"
)

// GenericFailure is shown when the backend gives no usable message.
const GenericFailure = "Something went wrong. Please try again."

var errUnexpectedReply = apperror.NewAppError(http.StatusBadGateway, "Unexpected response from server")

// backendError maps a backend client error onto the console's error taxonomy.
// A rejected token always ends the session.
func backendError(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}

	var be *backend.Error
	var pe *backend.ParseError
	var te *backend.TransportError
	switch {
	case errors.As(err, &be):
		if be.Unauthorized() {
			return apperror.ErrSessionRevoked
		}
		return apperror.NewAppError(statusFor(be.Status), messageOr(be.Message))
	case errors.As(err, &pe):
		return errUnexpectedReply
	case errors.As(err, &te), errors.Is(err, context.DeadlineExceeded):
		return apperror.ErrUnavailable
	case errors.Is(err, backend.ErrReceiptNotFound):
		return apperror.NewNotFoundError("Receipt")
	}
	return err
}

// failureMessage is the text recorded on a draft after a failed call.
func failureMessage(err error) string {
	var be *backend.Error
	if errors.As(err, &be) {
		return messageOr(be.Message)
	}
	return GenericFailure
}

func messageOr(msg string) string {
	if msg == "" {
		return GenericFailure
	}
	return msg
}

func statusFor(status int) int {
	if status >= 400 && status < 500 {
		return status
	}
	return http.StatusBadGateway
}
