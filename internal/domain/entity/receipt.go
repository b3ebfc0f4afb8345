package entity

import (
	"time"

	"github.com/sangkips/academy-console/pkg/feecalc"
	"github.com/shopspring/decimal"
)

// ReceiptRecord is a receipt as persisted by the backend.
type ReceiptRecord struct {
	ID                 string     `json:"_id" validate:"required"`
	ReceiptNumber      FlexString `json:"reciept_number"`
	StudentCode        FlexString `json:"scode"`
	Name               string     `json:"name"`
	Course             string     `json:"course"`
	Date               string     `json:"date"`
	PaidUpto           Level      `json:"paid_upto"`
	CourseFee          Amount     `json:"courseFee"`
	ExerciseFee        Amount     `json:"exerciseFee"`
	KitFee             Amount     `json:"kitFee"`
	JacketFee          Amount     `json:"jacketFee"`
	ExerciseAndKitFee  Amount     `json:"exercisenkitFee"`
	NetAmount          Amount     `json:"net_amount"`
	TotalAmountInWords string     `json:"totalAmountInWords"`
	PaymentMode        string     `json:"payment_mode"`
	ImageURL           string     `json:"reciept_img,omitempty"`
}

// ParsedDate returns the receipt date. Both RFC 3339 timestamps and plain
// dates are accepted.
func (r *ReceiptRecord) ParsedDate() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, r.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Day returns the calendar day the receipt is filed under in loc, as UTC
// midnight. Timestamps are moved into loc first; plain dates are taken as-is.
func (r *ReceiptRecord) Day(loc *time.Location) (time.Time, bool) {
	t, ok := r.ParsedDate()
	if !ok {
		return time.Time{}, false
	}
	if len(r.Date) > len("2006-01-02") {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// Amounts returns the base line-item amounts. Older records only carry the
// combined exercise-and-kit field; it stands in for whichever part is missing.
func (r *ReceiptRecord) Amounts() feecalc.Amounts {
	material := r.ExerciseFee.Decimal
	kit := r.KitFee.Decimal
	if material.IsZero() && kit.IsZero() && !r.ExerciseAndKitFee.IsZero() {
		material = r.ExerciseAndKitFee.Decimal
	}
	return feecalc.Amounts{
		feecalc.CourseFee:   r.CourseFee.Decimal,
		feecalc.MaterialFee: material,
		feecalc.KitFee:      kit,
		feecalc.JacketFee:   r.JacketFee.Decimal,
	}
}

// ReceiptNumbers is the pair of counters handed out by the backend.
type ReceiptNumbers struct {
	Standard  FlexString `json:"receiptNumber" validate:"required"`
	Alternate FlexString `json:"mreceiptNumber"`
}

// ReceiptCopy labels which of the two printed copies a page is.
type ReceiptCopy string

const (
	StudentCopy ReceiptCopy = "Student"
	OfficeCopy  ReceiptCopy = "Office"
)

// ReceiptHeader holds the academy header printed at the top of a receipt.
type ReceiptHeader struct {
	AcademyName string `json:"academy_name"`
	GSTIN       string `json:"gstin,omitempty"`
}

// Receipt is a value object representing a printable receipt.
// It is composed from a draft or a persisted record at render time and never stored.
type Receipt struct {
	Header      ReceiptHeader     `json:"header"`
	Number      string            `json:"number"`
	StudentCode string            `json:"student_code"`
	StudentName string            `json:"student_name"`
	Course      string            `json:"course"`
	PaidUpto    Level             `json:"paid_upto"`
	Date        time.Time         `json:"date"`
	PaymentMode string            `json:"payment_mode"`
	Breakdown   feecalc.Breakdown `json:"breakdown"`
}

// GrandTotal is the total the receipt charges.
func (r *Receipt) GrandTotal() decimal.Decimal {
	return r.Breakdown.GrandTotal
}
