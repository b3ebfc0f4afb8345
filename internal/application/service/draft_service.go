package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sangkips/academy-console/internal/config"
	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/enum"
	"github.com/sangkips/academy-console/internal/domain/repository"
	"github.com/sangkips/academy-console/pkg/apperror"
	"github.com/sangkips/academy-console/pkg/feecalc"
	"github.com/shopspring/decimal"
)

// DraftBackend is the part of the backend the receipt draft reads from.
type DraftBackend interface {
	NextReceiptNumbers(ctx context.Context, token string) (*entity.ReceiptNumbers, error)
	GetStudent(ctx context.Context, token, id string) (*entity.Student, error)
}

// DraftService drives the fee receipt form of a console session.
type DraftService struct {
	drafts    repository.DraftRepository
	backend   DraftBackend
	schedules *feecalc.Schedules
	receipt   config.ReceiptConfig
	now       func() time.Time
}

// NewDraftService creates a new draft service
func NewDraftService(
	drafts repository.DraftRepository,
	backend DraftBackend,
	schedules *feecalc.Schedules,
	receipt config.ReceiptConfig,
) *DraftService {
	if schedules == nil {
		schedules = feecalc.DefaultSchedules()
	}
	return &DraftService{
		drafts:    drafts,
		backend:   backend,
		schedules: schedules,
		receipt:   receipt,
		now:       time.Now,
	}
}

// DraftView is a draft together with everything derived from it.
type DraftView struct {
	Draft         *entity.Draft     `json:"draft"`
	ReceiptNumber string            `json:"receipt_number"`
	Breakdown     feecalc.Breakdown `json:"breakdown"`
	CanPrint      bool              `json:"can_print"`
}

func (s *DraftService) breakdownOptions() []feecalc.Option {
	return breakdownOptions(s.receipt)
}

func breakdownOptions(cfg config.ReceiptConfig) []feecalc.Option {
	if cfg.WordsIncludePaise {
		return []feecalc.Option{feecalc.WithPaiseInWords()}
	}
	return nil
}

func (s *DraftService) view(d *entity.Draft) *DraftView {
	return &DraftView{
		Draft:         d,
		ReceiptNumber: d.ReceiptNumber(),
		Breakdown:     d.Breakdown(s.breakdownOptions()...),
		CanPrint:      d.Saved(),
	}
}

// Start opens a fresh draft numbered with the backend's next receipt numbers.
func (s *DraftService) Start(ctx context.Context, session *entity.ConsoleSession) (*DraftView, error) {
	numbers, err := s.backend.NextReceiptNumbers(ctx, session.Token)
	if err != nil {
		return nil, backendError(err)
	}

	d, err := s.drafts.Update(ctx, session.IDHash, func(d *entity.Draft) error {
		ticket := d.SelectionTicket
		*d = *entity.NewDraft(session.IDHash, s.now())
		// keep counting so a fetch started before the reset is still discarded
		d.SelectionTicket = ticket + 1
		d.ReceiptNumbers = *numbers
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(d), nil
}

// View returns the current draft. A session without one sees an empty draft.
func (s *DraftService) View(ctx context.Context, session *entity.ConsoleSession) (*DraftView, error) {
	d, err := s.drafts.Get(ctx, session.IDHash)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = entity.NewDraft(session.IDHash, s.now())
	}
	return s.view(d), nil
}

// Reset discards the draft and starts over with new receipt numbers.
func (s *DraftService) Reset(ctx context.Context, session *entity.ConsoleSession) (*DraftView, error) {
	return s.Start(ctx, session)
}

// Discard drops the draft without starting a new one.
func (s *DraftService) Discard(ctx context.Context, session *entity.ConsoleSession) error {
	return s.drafts.Delete(ctx, session.IDHash)
}

// SelectStudent switches the draft to a student. The student is fetched
// outside the draft lock; if another selection started meanwhile, this
// result is dropped.
func (s *DraftService) SelectStudent(ctx context.Context, session *entity.ConsoleSession, studentID string) (*DraftView, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, apperror.NewFieldError("student_id", "Please select a student")
	}

	var ticket uint64
	if _, err := s.drafts.Update(ctx, session.IDHash, func(d *entity.Draft) error {
		var err error
		ticket, err = d.BeginSelection(studentID)
		return err
	}); err != nil {
		return nil, draftError(err)
	}

	student, err := s.backend.GetStudent(ctx, session.Token, studentID)
	if err != nil {
		return nil, backendError(err)
	}
	schedule := s.schedules.For(student.Course)

	d, err := s.drafts.Update(ctx, session.IDHash, func(d *entity.Draft) error {
		return d.ApplyStudent(ticket, student, schedule, s.now())
	})
	if err != nil {
		return nil, draftError(err)
	}
	return s.view(d), nil
}

// SetFees records operator-entered amounts. Either every amount is taken or none is.
func (s *DraftService) SetFees(ctx context.Context, session *entity.ConsoleSession, fees map[feecalc.LineItem]decimal.Decimal) (*DraftView, error) {
	var fieldErrors []apperror.FieldError
	for item := range fees {
		if !item.Valid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: string(item), Message: "Unknown fee"})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	d, err := s.drafts.Update(ctx, session.IDHash, func(d *entity.Draft) error {
		now := s.now()
		for _, item := range feecalc.AllLineItems {
			amount, ok := fees[item]
			if !ok {
				continue
			}
			if err := d.SetFee(item, amount, now); err != nil {
				return &fieldErr{field: string(item), err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, draftError(err)
	}
	return s.view(d), nil
}

// DetailsInput holds the optional receipt details; nil fields are left alone.
type DetailsInput struct {
	PaymentMode *string
	Date        *time.Time
	LevelPaidTo *int
}

// SetDetails records payment mode, receipt date and the level paid to.
func (s *DraftService) SetDetails(ctx context.Context, session *entity.ConsoleSession, input *DetailsInput) (*DraftView, error) {
	var mode enum.PaymentMode
	if input.PaymentMode != nil {
		m, err := enum.ParsePaymentMode(*input.PaymentMode)
		if err != nil {
			return nil, apperror.NewFieldError("payment_mode", "Payment mode must be cash or online")
		}
		mode = m
	}

	d, err := s.drafts.Update(ctx, session.IDHash, func(d *entity.Draft) error {
		now := s.now()
		if input.PaymentMode != nil {
			if err := d.SetPaymentMode(mode, now); err != nil {
				return err
			}
		}
		if input.Date != nil {
			if err := d.SetDate(*input.Date, now); err != nil {
				return err
			}
		}
		if input.LevelPaidTo != nil {
			if err := d.SetLevelPaidTo(entity.Level(*input.LevelPaidTo), now); err != nil {
				return &fieldErr{field: "level_paid_to", err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, draftError(err)
	}
	return s.view(d), nil
}

// fieldErr ties a draft rule violation to the input field that caused it.
type fieldErr struct {
	field string
	err   error
}

func (e *fieldErr) Error() string { return e.field + ": " + e.err.Error() }
func (e *fieldErr) Unwrap() error { return e.err }

// draftError maps draft rule violations to client errors.
func draftError(err error) error {
	field := ""
	var fe *fieldErr
	if errors.As(err, &fe) {
		field = fe.field
	}

	switch {
	case errors.Is(err, entity.ErrNoStudent):
		return apperror.NewFieldError("student_id", "Please select a student first")
	case errors.Is(err, entity.ErrNegativeFee):
		return apperror.NewFieldError(field, "Fee cannot be negative")
	case errors.Is(err, entity.ErrFeeNotCharged):
		return apperror.NewFieldError(field, "This fee is not charged for the selected course")
	case errors.Is(err, entity.ErrInvalidLevel):
		return apperror.NewFieldError(field, "Level must be between 1 and 10")
	case errors.Is(err, entity.ErrDraftLocked):
		return apperror.NewConflictError("Receipt already saved. Start a new receipt to make changes")
	case errors.Is(err, entity.ErrDraftSubmitting):
		return apperror.NewConflictError("Receipt is being saved")
	case errors.Is(err, entity.ErrStaleSelection):
		return apperror.NewConflictError("Another student was selected meanwhile")
	}
	return err
}
