package repository

import (
	"context"

	"github.com/sangkips/academy-console/internal/domain/entity"
)

// StudentEditRepository records the latest edit per student and field.
type StudentEditRepository interface {
	Put(ctx context.Context, edit *entity.StudentEdit) error
	ListByStudent(ctx context.Context, studentID string) ([]entity.StudentEdit, error)
}
