package entity

import (
	"errors"
	"time"

	"github.com/sangkips/academy-console/internal/domain/enum"
	"github.com/sangkips/academy-console/pkg/feecalc"
	"github.com/shopspring/decimal"
)

var (
	ErrNoStudent       = errors.New("no student selected")
	ErrDraftLocked     = errors.New("receipt already saved")
	ErrDraftSubmitting = errors.New("receipt is being saved")
	ErrNegativeFee     = errors.New("fee cannot be negative")
	ErrFeeNotCharged   = errors.New("fee is not charged for this course")
	ErrInvalidLevel    = errors.New("level must be between 1 and 10")
	ErrStaleSelection  = errors.New("a newer student selection superseded this one")
)

// Draft is an in-progress fee receipt. The tax breakdown is always derived
// from it and never stored.
type Draft struct {
	SessionID       string           `json:"-"`
	ReceiptNumbers  ReceiptNumbers   `json:"receipt_numbers"`
	Student         *Student         `json:"student,omitempty"`
	Schedule        feecalc.Schedule `json:"schedule"`
	Amounts         feecalc.Amounts  `json:"amounts"`
	PaymentMode     enum.PaymentMode `json:"payment_mode"`
	Date            time.Time        `json:"date"`
	LevelPaidTo     Level            `json:"level_paid_to"`
	State           enum.DraftState  `json:"state"`
	SelectionTicket uint64           `json:"-"`
	PendingStudent  string           `json:"pending_student,omitempty"`
	ReceiptID       string           `json:"receipt_id,omitempty"`
	ErrorMessage    string           `json:"error_message,omitempty"`
	SuccessMessage  string           `json:"success_message,omitempty"`
	StudentEdit     *StudentEdit     `json:"student_edit,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// NewDraft returns an empty draft dated now.
func NewDraft(sessionID string, now time.Time) *Draft {
	return &Draft{
		SessionID: sessionID,
		Amounts:   feecalc.Amounts{},
		Date:      now,
		State:     enum.DraftStateEmpty,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy safe to hand outside the repository lock.
func (d *Draft) Clone() *Draft {
	c := *d
	c.Amounts = make(feecalc.Amounts, len(d.Amounts))
	for k, v := range d.Amounts {
		c.Amounts[k] = v
	}
	if d.Student != nil {
		s := *d.Student
		c.Student = &s
	}
	if d.StudentEdit != nil {
		e := *d.StudentEdit
		c.StudentEdit = &e
	}
	return &c
}

func (d *Draft) checkEditable() error {
	switch d.State {
	case enum.DraftStateSubmitting:
		return ErrDraftSubmitting
	case enum.DraftStateSaved:
		return ErrDraftLocked
	}
	return nil
}

// BeginSelection hands out a ticket for a student fetch. Only the result
// carrying the latest ticket may be applied.
func (d *Draft) BeginSelection(studentID string) (uint64, error) {
	if err := d.checkEditable(); err != nil {
		return 0, err
	}
	d.SelectionTicket++
	d.PendingStudent = studentID
	return d.SelectionTicket, nil
}

// ApplyStudent switches the draft to student in one step: every fee goes
// back to zero and the paid-upto level becomes the student's stored level.
func (d *Draft) ApplyStudent(ticket uint64, student *Student, schedule feecalc.Schedule, now time.Time) error {
	if ticket != d.SelectionTicket {
		return ErrStaleSelection
	}
	if err := d.checkEditable(); err != nil {
		return err
	}
	s := *student
	d.Student = &s
	d.Schedule = schedule
	d.Amounts = feecalc.Amounts{}
	for _, item := range schedule.Table.Items {
		d.Amounts[item] = decimal.Zero
	}
	d.LevelPaidTo = student.Level
	d.PendingStudent = ""
	d.State = enum.DraftStatePopulated
	d.ErrorMessage = ""
	d.SuccessMessage = ""
	d.StudentEdit = nil
	d.UpdatedAt = now
	return nil
}

// SetFee records an operator-entered amount.
func (d *Draft) SetFee(item feecalc.LineItem, amount decimal.Decimal, now time.Time) error {
	if err := d.checkEditable(); err != nil {
		return err
	}
	if d.Student == nil {
		return ErrNoStudent
	}
	if !d.Schedule.Table.Has(item) {
		return ErrFeeNotCharged
	}
	if amount.IsNegative() {
		return ErrNegativeFee
	}
	d.Amounts[item] = amount
	d.touch(now)
	return nil
}

// SetPaymentMode records how the fee was paid.
func (d *Draft) SetPaymentMode(mode enum.PaymentMode, now time.Time) error {
	if err := d.checkEditable(); err != nil {
		return err
	}
	d.PaymentMode = mode
	d.touch(now)
	return nil
}

// SetDate records the receipt date.
func (d *Draft) SetDate(date time.Time, now time.Time) error {
	if err := d.checkEditable(); err != nil {
		return err
	}
	d.Date = date
	d.touch(now)
	return nil
}

// SetLevelPaidTo records the level the payment covers.
func (d *Draft) SetLevelPaidTo(level Level, now time.Time) error {
	if err := d.checkEditable(); err != nil {
		return err
	}
	if !level.Valid() {
		return ErrInvalidLevel
	}
	d.LevelPaidTo = level
	d.touch(now)
	return nil
}

func (d *Draft) touch(now time.Time) {
	if d.Student != nil {
		d.State = enum.DraftStateEdited
	}
	d.ErrorMessage = ""
	d.UpdatedAt = now
}

// Breakdown computes the tax breakdown of the current amounts.
func (d *Draft) Breakdown(opts ...feecalc.Option) feecalc.Breakdown {
	return feecalc.Compute(d.Amounts, d.Schedule.Table, opts...)
}

// ReceiptNumber returns the number this draft will be saved under, picking
// the counter that matches the course's receipt type.
func (d *Draft) ReceiptNumber() string {
	if d.Schedule.ReceiptType == feecalc.ReceiptAlternate {
		return d.ReceiptNumbers.Alternate.String()
	}
	return d.ReceiptNumbers.Standard.String()
}

// Receipt composes the printable receipt.
func (d *Draft) Receipt(header ReceiptHeader, opts ...feecalc.Option) *Receipt {
	r := &Receipt{
		Header:      header,
		Number:      d.ReceiptNumber(),
		PaidUpto:    d.LevelPaidTo,
		Date:        d.Date,
		PaymentMode: d.PaymentMode.String(),
		Course:      d.Schedule.Course,
		Breakdown:   d.Breakdown(opts...),
	}
	if d.Student != nil {
		r.StudentCode = d.Student.StudentCode.String()
		r.StudentName = d.Student.Name
		if r.Course == "" {
			r.Course = d.Student.Course
		}
	}
	return r
}

// MarkSubmitting moves the draft into the in-flight state.
func (d *Draft) MarkSubmitting(now time.Time) error {
	if err := d.checkEditable(); err != nil {
		return err
	}
	d.State = enum.DraftStateSubmitting
	d.ErrorMessage = ""
	d.SuccessMessage = ""
	d.UpdatedAt = now
	return nil
}

// MarkSaved records a successful save. Printing is allowed from here on.
func (d *Draft) MarkSaved(receiptID, message string, now time.Time) {
	d.State = enum.DraftStateSaved
	d.ReceiptID = receiptID
	d.SuccessMessage = message
	d.ErrorMessage = ""
	d.UpdatedAt = now
}

// MarkFailed records a failed save. A failed draft can be edited and resubmitted.
func (d *Draft) MarkFailed(message string, now time.Time) {
	d.State = enum.DraftStateFailed
	d.ErrorMessage = message
	d.SuccessMessage = ""
	d.UpdatedAt = now
}

// Saved reports whether the draft has been persisted.
func (d *Draft) Saved() bool {
	return d.State == enum.DraftStateSaved
}
