package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/enum"
	"github.com/sangkips/academy-console/internal/domain/repository"
	"github.com/sangkips/academy-console/internal/infrastructure/backend"
	"github.com/sangkips/academy-console/pkg/apperror"
	"github.com/sangkips/academy-console/pkg/pagination"
	"github.com/sangkips/academy-console/pkg/utils"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// StudentBackend is the part of the backend that owns student records.
type StudentBackend interface {
	ListStudents(ctx context.Context, token string) ([]entity.Student, error)
	GetStudent(ctx context.Context, token, id string) (*entity.Student, error)
	CreateUser(ctx context.Context, token string, in backend.StudentInput) (string, error)
	UpdateStudent(ctx context.Context, token, id string, fields map[string]any) error
}

// StudentService handles student lookup, the roster and inline edits.
type StudentService struct {
	backend  StudentBackend
	edits    repository.StudentEditRepository
	pageSize int
	log      *zap.Logger
	now      func() time.Time
}

// NewStudentService creates a new student service
func NewStudentService(backend StudentBackend, edits repository.StudentEditRepository, pageSize int, log *zap.Logger) *StudentService {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPerPage
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &StudentService{
		backend:  backend,
		edits:    edits,
		pageSize: pageSize,
		log:      log,
		now:      time.Now,
	}
}

func nameMatches(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// Lookup finds students by name for the fee form. An empty query finds nothing.
func (s *StudentService) Lookup(ctx context.Context, session *entity.ConsoleSession, query string) ([]entity.Student, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Student{}, nil
	}

	students, err := s.backend.ListStudents(ctx, session.Token)
	if err != nil {
		return nil, backendError(err)
	}

	matches := make([]entity.Student, 0)
	for _, st := range students {
		if nameMatches(st.Name, query) {
			matches = append(matches, st)
		}
	}
	return matches, nil
}

// RosterQuery filters the roster. Status defaults to Active; "all" lists every status.
type RosterQuery struct {
	Search string
	Status string
	Params pagination.PaginationParams
}

func (s *StudentService) filter(ctx context.Context, session *entity.ConsoleSession, query *RosterQuery) ([]entity.Student, error) {
	var status *enum.StudentStatus
	switch strings.ToLower(strings.TrimSpace(query.Status)) {
	case "all":
	case "":
		active := enum.StudentStatusActive
		status = &active
	default:
		st, err := enum.ParseStudentStatus(query.Status)
		if err != nil {
			return nil, apperror.NewFieldError("status", "Unknown status")
		}
		status = &st
	}

	students, err := s.backend.ListStudents(ctx, session.Token)
	if err != nil {
		return nil, backendError(err)
	}

	search := strings.TrimSpace(query.Search)
	out := make([]entity.Student, 0, len(students))
	for _, st := range students {
		if status != nil && st.Status != *status {
			continue
		}
		if search != "" && !nameMatches(st.Name, search) {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

// Roster returns one page of the filtered roster.
func (s *StudentService) Roster(ctx context.Context, session *entity.ConsoleSession, query *RosterQuery) (*pagination.PaginatedResult[entity.Student], error) {
	students, err := s.filter(ctx, session, query)
	if err != nil {
		return nil, err
	}
	params := query.Params
	if params.PerPage <= 0 {
		params.PerPage = s.pageSize
	}
	return pagination.Paginate(students, &params), nil
}

// Get fetches one student.
func (s *StudentService) Get(ctx context.Context, session *entity.ConsoleSession, id string) (*entity.Student, error) {
	student, err := s.backend.GetStudent(ctx, session.Token, id)
	if err != nil {
		return nil, backendError(err)
	}
	return student, nil
}

// RegisterInput represents a new student registration
type RegisterInput struct {
	backend.StudentInput
}

// RegisterOutput identifies the newly created student.
type RegisterOutput struct {
	StudentID string `json:"student_id"`
}

// Register creates a student. The backend answers with a token for the new
// user; its user.id claim is the student id.
func (s *StudentService) Register(ctx context.Context, session *entity.ConsoleSession, input *RegisterInput) (*RegisterOutput, error) {
	in := input.StudentInput

	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "contact_number", Message: "Contact number is required"})
	}
	if strings.TrimSpace(in.Course) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "course", Message: "Course is required"})
	}
	level, err := entity.ParseLevel(in.Level)
	if err != nil || !level.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "level", Message: "Level must be between 1 and 10"})
	}
	if in.Status != "" {
		if _, err := enum.ParseStudentStatus(in.Status); err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "Unknown status"})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	in.Level = level.String()
	if in.Role == "" {
		in.Role = "student"
	}

	token, err := s.backend.CreateUser(ctx, session.Token, in)
	if err != nil {
		return nil, backendError(err)
	}
	id, err := utils.ExtractUserID(token)
	if err != nil {
		s.log.Warn("registration token without user id", zap.Error(err))
		return nil, errUnexpectedReply
	}

	s.log.Info("student registered", zap.String("student", id))
	return &RegisterOutput{StudentID: id}, nil
}

// UpdateField changes a student's level or status. The edit is tracked as
// pending until the backend answers.
func (s *StudentService) UpdateField(ctx context.Context, session *entity.ConsoleSession, id string, field entity.StudentField, value string) (*entity.StudentEdit, error) {
	var normalized string
	switch field {
	case entity.StudentFieldLevel:
		level, err := entity.ParseLevel(value)
		if err != nil || !level.Valid() {
			return nil, apperror.NewFieldError("level", "Level must be between 1 and 10")
		}
		normalized = level.String()
	case entity.StudentFieldStatus:
		status, err := enum.ParseStudentStatus(value)
		if err != nil || strings.TrimSpace(value) == "" {
			return nil, apperror.NewFieldError("status", "Unknown status")
		}
		normalized = status.String()
	default:
		return nil, apperror.NewFieldError("field", fmt.Sprintf("Field %q cannot be edited", field))
	}

	edit := &entity.StudentEdit{
		StudentID: id,
		Field:     field,
		Value:     normalized,
		State:     enum.EditStatePending,
		UpdatedAt: s.now(),
	}
	if err := s.edits.Put(ctx, edit); err != nil {
		return nil, err
	}

	err := s.backend.UpdateStudent(ctx, session.Token, id, map[string]any{string(field): normalized})
	edit.UpdatedAt = s.now()
	if err != nil {
		edit.State = enum.EditStateFailed
		edit.Message = failureMessage(err)
		if putErr := s.edits.Put(ctx, edit); putErr != nil {
			s.log.Warn("failed to record student edit", zap.Error(putErr))
		}
		return edit, backendError(err)
	}

	edit.State = enum.EditStateConfirmed
	if err := s.edits.Put(ctx, edit); err != nil {
		return nil, err
	}
	return edit, nil
}

// Edits lists the tracked edits of a student.
func (s *StudentService) Edits(ctx context.Context, id string) ([]entity.StudentEdit, error) {
	return s.edits.ListByStudent(ctx, id)
}

// Export writes the filtered roster, every page, to an XLSX workbook.
func (s *StudentService) Export(ctx context.Context, session *entity.ConsoleSession, query *RosterQuery) ([]byte, error) {
	start := time.Now()
	students, err := s.filter(ctx, session, query)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Debug("xlsx close failed", zap.Error(err))
		}
	}()

	const sheet = "Students"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"Student Code", "Name", "Course", "Level", "Status", "Contact Number", "School", "City"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, st := range students {
		row := i + 2
		values := []any{
			st.StudentCode.String(),
			st.Name,
			st.Course,
			int(st.Level),
			st.Status.String(),
			st.ContactNumber.String(),
			st.SchoolName,
			st.City,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 28)
	_ = f.SetColWidth(sheet, "C", "C", 18)
	_ = f.SetColWidth(sheet, "F", "H", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.log.Info("roster exported", zap.Int("rows", len(students)), zap.Duration("elapsed", time.Since(start)))
	return buf.Bytes(), nil
}
