package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sangkips/academy-console/internal/config"
	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/enum"
	"github.com/sangkips/academy-console/internal/domain/repository"
	"github.com/sangkips/academy-console/internal/infrastructure/backend"
	"github.com/sangkips/academy-console/pkg/apperror"
	"github.com/sangkips/academy-console/pkg/feecalc"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptSavedMessage is shown once the backend accepted a receipt.
const ReceiptSavedMessage = "Receipt saved successfully"

// ReceiptBackend is the part of the backend that stores receipts.
type ReceiptBackend interface {
	CreateReceipt(ctx context.Context, token string, in *backend.ReceiptSubmission) (string, error)
	CreateAltReceipt(ctx context.Context, token, counter string) error
	UpdateStudent(ctx context.Context, token, id string, fields map[string]any) error
}

// ReceiptRenderer produces the PDF form of a receipt.
type ReceiptRenderer interface {
	Render(receipt *entity.Receipt) ([]byte, error)
}

// ReceiptService saves and prints the draft receipt of a session.
type ReceiptService struct {
	drafts   repository.DraftRepository
	edits    repository.StudentEditRepository
	backend  ReceiptBackend
	renderer ReceiptRenderer
	printer  *PrinterService
	cfg      config.ReceiptConfig
	log      *zap.Logger
	now      func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	drafts repository.DraftRepository,
	edits repository.StudentEditRepository,
	backend ReceiptBackend,
	renderer ReceiptRenderer,
	printer *PrinterService,
	cfg config.ReceiptConfig,
	log *zap.Logger,
) *ReceiptService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReceiptService{
		drafts:   drafts,
		edits:    edits,
		backend:  backend,
		renderer: renderer,
		printer:  printer,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

func (s *ReceiptService) header() entity.ReceiptHeader {
	return entity.ReceiptHeader{AcademyName: s.cfg.AcademyName, GSTIN: s.cfg.GSTIN}
}

// SaveResult reports a saved receipt and, separately, the student level update
// that follows it.
type SaveResult struct {
	ReceiptID   string              `json:"receipt_id"`
	Message     string              `json:"message"`
	Receipt     *entity.Receipt     `json:"receipt"`
	StudentEdit *entity.StudentEdit `json:"student_edit,omitempty"`
}

// checkSavable runs the save preconditions in order. It never touches the network.
func checkSavable(d *entity.Draft, breakdown feecalc.Breakdown) error {
	switch {
	case d.ReceiptNumber() == "":
		return apperror.NewFieldError("receipt_number", "Missing receipt number")
	case d.Student == nil:
		return apperror.NewFieldError("student_id", "Missing Student Details")
	case strings.TrimSpace(d.Student.Name) == "":
		return apperror.NewFieldError("name", "Missing student name")
	case !breakdown.GrandTotal.IsPositive():
		return apperror.NewFieldError("total", "Missing total amount")
	}
	return nil
}

// Save submits the draft receipt to the backend.
func (s *ReceiptService) Save(ctx context.Context, session *entity.ConsoleSession) (*SaveResult, error) {
	opts := breakdownOptions(s.cfg)

	d, err := s.drafts.Update(ctx, session.IDHash, func(d *entity.Draft) error {
		if err := checkSavable(d, d.Breakdown(opts...)); err != nil {
			return err
		}
		if session.Token == "" {
			return apperror.ErrSessionRequired
		}
		return d.MarkSubmitting(s.now())
	})
	if err != nil {
		return nil, draftError(err)
	}

	receipt := d.Receipt(s.header(), opts...)
	pdf, err := s.renderer.Render(receipt)
	if err != nil {
		s.log.Error("receipt render failed", zap.String("receipt", receipt.Number), zap.Error(err))
		s.fail(ctx, session, GenericFailure)
		return nil, apperror.NewAppError(http.StatusInternalServerError, GenericFailure)
	}

	id, err := s.backend.CreateReceipt(ctx, session.Token, submission(receipt, pdf))
	if err != nil {
		s.log.Warn("receipt save failed", zap.String("receipt", receipt.Number), zap.Error(err))
		msg := failureMessage(err)
		s.fail(ctx, session, msg)
		if backend.IsUnauthorized(err) {
			return nil, apperror.ErrSessionRevoked
		}
		var be *backend.Error
		if errors.As(err, &be) {
			return nil, apperror.NewAppError(statusFor(be.Status), msg)
		}
		return nil, apperror.ErrUnavailable
	}

	if d.Schedule.ReceiptType == feecalc.ReceiptAlternate {
		// the receipt itself is stored, so a counter failure is only logged
		if err := s.backend.CreateAltReceipt(ctx, session.Token, d.ReceiptNumbers.Alternate.String()); err != nil {
			s.log.Warn("alternate receipt counter update failed", zap.String("receipt", receipt.Number), zap.Error(err))
		}
	}

	saved, err := s.drafts.Update(ctx, session.IDHash, func(d *entity.Draft) error {
		d.MarkSaved(id, ReceiptSavedMessage, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("receipt saved", zap.String("receipt", receipt.Number), zap.String("id", id))

	edit := s.updateStudentLevel(ctx, session, saved)
	return &SaveResult{
		ReceiptID:   id,
		Message:     ReceiptSavedMessage,
		Receipt:     receipt,
		StudentEdit: edit,
	}, nil
}

func (s *ReceiptService) fail(ctx context.Context, session *entity.ConsoleSession, msg string) {
	if _, err := s.drafts.Update(ctx, session.IDHash, func(d *entity.Draft) error {
		d.MarkFailed(msg, s.now())
		return nil
	}); err != nil {
		s.log.Warn("failed to record draft failure", zap.Error(err))
	}
}

// updateStudentLevel moves the student to the level just paid for. It runs
// after the receipt is stored and its outcome never changes the save result.
func (s *ReceiptService) updateStudentLevel(ctx context.Context, session *entity.ConsoleSession, d *entity.Draft) *entity.StudentEdit {
	if d.Student == nil || d.LevelPaidTo == d.Student.Level {
		return nil
	}

	edit := &entity.StudentEdit{
		StudentID: d.Student.ID,
		Field:     entity.StudentFieldLevel,
		Value:     d.LevelPaidTo.String(),
		Previous:  d.Student.Level.String(),
		State:     enum.EditStatePending,
		UpdatedAt: s.now(),
	}
	s.putEdit(ctx, edit)

	err := s.backend.UpdateStudent(ctx, session.Token, d.Student.ID, map[string]any{
		string(entity.StudentFieldLevel): d.LevelPaidTo.String(),
	})
	if err != nil {
		s.log.Warn("student level update failed", zap.String("student", d.Student.ID), zap.Error(err))
		edit.State = enum.EditStateFailed
		edit.Message = failureMessage(err)
	} else {
		edit.State = enum.EditStateConfirmed
	}
	edit.UpdatedAt = s.now()
	s.putEdit(ctx, edit)

	if _, err := s.drafts.Update(ctx, session.IDHash, func(d *entity.Draft) error {
		e := *edit
		d.StudentEdit = &e
		return nil
	}); err != nil {
		s.log.Warn("failed to attach student edit to draft", zap.Error(err))
	}
	return edit
}

func (s *ReceiptService) putEdit(ctx context.Context, edit *entity.StudentEdit) {
	e := *edit
	if err := s.edits.Put(ctx, &e); err != nil {
		s.log.Warn("failed to record student edit", zap.Error(err))
	}
}

func submission(r *entity.Receipt, pdf []byte) *backend.ReceiptSubmission {
	base := func(item feecalc.LineItem) decimal.Decimal {
		line, _ := r.Breakdown.Line(item)
		return line.Base
	}
	return &backend.ReceiptSubmission{
		Number:        r.Number,
		StudentCode:   r.StudentCode,
		Name:          r.StudentName,
		Course:        r.Course,
		PaidUpto:      r.PaidUpto,
		Date:          r.Date,
		CourseFee:     base(feecalc.CourseFee),
		ExerciseFee:   base(feecalc.MaterialFee),
		KitFee:        base(feecalc.KitFee),
		JacketFee:     base(feecalc.JacketFee),
		NetAmount:     r.Breakdown.GrandTotal.Round(2),
		AmountInWords: r.Breakdown.GrandTotalWords,
		PaymentMode:   r.PaymentMode,
		Attachment:    pdf,
	}
}

// PrintResult carries the printable receipt. Printed is false when the
// thermal printer is missing or failed; the PDF is produced regardless.
type PrintResult struct {
	Receipt      *entity.Receipt `json:"receipt"`
	PDF          []byte          `json:"-"`
	Printed      bool            `json:"printed"`
	PrinterError string          `json:"printer_error,omitempty"`
}

var errPrintBeforeSave = apperror.NewAppError(http.StatusConflict, "Please save the receipt before printing")

// savedReceipt returns the receipt of a saved draft.
func (s *ReceiptService) savedReceipt(ctx context.Context, session *entity.ConsoleSession) (*entity.Receipt, error) {
	d, err := s.drafts.Get(ctx, session.IDHash)
	if err != nil {
		return nil, err
	}
	if d == nil || !d.Saved() {
		return nil, errPrintBeforeSave
	}
	return d.Receipt(s.header(), breakdownOptions(s.cfg)...), nil
}

// PDF renders the saved receipt.
func (s *ReceiptService) PDF(ctx context.Context, session *entity.ConsoleSession) ([]byte, *entity.Receipt, error) {
	receipt, err := s.savedReceipt(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := s.renderer.Render(receipt)
	if err != nil {
		return nil, nil, err
	}
	return pdf, receipt, nil
}

// Print sends the saved receipt to the thermal printer and renders its PDF.
func (s *ReceiptService) Print(ctx context.Context, session *entity.ConsoleSession) (*PrintResult, error) {
	pdf, receipt, err := s.PDF(ctx, session)
	if err != nil {
		return nil, err
	}

	result := &PrintResult{Receipt: receipt, PDF: pdf}
	if s.printer != nil && s.printer.Configured() {
		if err := s.printer.PrintReceipt(receipt); err != nil {
			result.PrinterError = err.Error()
		} else {
			result.Printed = true
		}
	}
	return result, nil
}
