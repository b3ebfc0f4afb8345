package service

import (
	"context"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/pkg/apperror"
	"go.uber.org/zap"
)

// AdminBackend is the part of the backend that wipes data.
type AdminBackend interface {
	PurgeStudents(ctx context.Context, token string) error
	PurgeReceipts(ctx context.Context, token string) error
}

// AdminService runs destructive maintenance for admins.
type AdminService struct {
	backend AdminBackend
	log     *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(backend AdminBackend, log *zap.Logger) *AdminService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminService{backend: backend, log: log}
}

// PurgeStudents deletes every student record.
func (s *AdminService) PurgeStudents(ctx context.Context, session *entity.ConsoleSession) error {
	if !session.IsAdmin() {
		return apperror.ErrForbidden
	}
	if err := s.backend.PurgeStudents(ctx, session.Token); err != nil {
		return backendError(err)
	}
	s.log.Warn("student data purged", zap.String("user", session.Username))
	return nil
}

// PurgeReceipts deletes every receipt record.
func (s *AdminService) PurgeReceipts(ctx context.Context, session *entity.ConsoleSession) error {
	if !session.IsAdmin() {
		return apperror.ErrForbidden
	}
	if err := s.backend.PurgeReceipts(ctx, session.Token); err != nil {
		return backendError(err)
	}
	s.log.Warn("receipt data purged", zap.String("user", session.Username))
	return nil
}
