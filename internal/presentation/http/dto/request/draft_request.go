package request

import (
	"github.com/sangkips/academy-console/pkg/feecalc"
	"github.com/shopspring/decimal"
)

// SelectStudentRequest picks the student a receipt is for.
type SelectStudentRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// SetFeesRequest carries line-item amounts keyed by item, e.g. {"course_fee": "1000"}.
type SetFeesRequest struct {
	Fees map[feecalc.LineItem]decimal.Decimal `json:"fees" binding:"required"`
}

// SetDetailsRequest carries optional receipt details.
type SetDetailsRequest struct {
	PaymentMode *string `json:"payment_mode"`
	Date        *string `json:"date"` // 2006-01-02
	LevelPaidTo *int    `json:"level_paid_to"`
}
