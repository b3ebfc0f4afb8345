package feecalc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Component is one named tax applied to a line item.
type Component struct {
	Label string          `json:"label"`
	Rate  decimal.Decimal `json:"rate"`
}

// RateTable lists the line items a schedule charges, in order, and the tax
// components applied to each.
type RateTable struct {
	Items []LineItem               `json:"items"`
	Rates map[LineItem][]Component `json:"rates"`
}

// Has reports whether the table charges item.
func (t RateTable) Has(item LineItem) bool {
	for _, i := range t.Items {
		if i == item {
			return true
		}
	}
	return false
}

// ReceiptType selects which backend counter numbers the receipt.
type ReceiptType string

const (
	ReceiptStandard  ReceiptType = "standard"
	ReceiptAlternate ReceiptType = "alternate"
)

// Schedule is the fee schedule of a course.
type Schedule struct {
	Course      string      `json:"course"`
	ReceiptType ReceiptType `json:"receipt_type"`
	Table       RateTable   `json:"table"`
}

// Split returns a paired central/state component of rate each.
func Split(rate string) []Component {
	r := decimal.RequireFromString(rate)
	return []Component{
		{Label: "Central Tax", Rate: r},
		{Label: "State Tax", Rate: r},
	}
}

// Schedules resolves a course name to its schedule.
type Schedules struct {
	byCourse map[string]Schedule
	fallback Schedule
}

// DefaultSchedules returns the academy's fee schedules.
func DefaultSchedules() *Schedules {
	brain := Schedule{
		Course:      "BRAINOBRAIN",
		ReceiptType: ReceiptStandard,
		Table: RateTable{
			Items: []LineItem{CourseFee, MaterialFee, KitFee, JacketFee},
			Rates: map[LineItem][]Component{
				CourseFee:   Split("0.09"),
				MaterialFee: Split("0.06"),
				KitFee:      Split("0.025"),
				JacketFee:   Split("0.06"),
			},
		},
	}
	mental := Schedule{
		Course:      "MENTAL MATH",
		ReceiptType: ReceiptAlternate,
		Table: RateTable{
			Items: []LineItem{CourseFee, KitFee},
			Rates: map[LineItem][]Component{},
		},
	}
	return NewSchedules(Schedule{
		ReceiptType: ReceiptStandard,
		Table: RateTable{
			Items: []LineItem{CourseFee},
			Rates: map[LineItem][]Component{},
		},
	}, brain, mental)
}

// NewSchedules builds a lookup from the given schedules.
func NewSchedules(fallback Schedule, schedules ...Schedule) *Schedules {
	s := &Schedules{byCourse: make(map[string]Schedule, len(schedules)), fallback: fallback}
	for _, sch := range schedules {
		s.byCourse[normalizeCourse(sch.Course)] = sch
	}
	return s
}

// For returns the schedule of course, or the fallback schedule.
func (s *Schedules) For(course string) Schedule {
	if sch, ok := s.byCourse[normalizeCourse(course)]; ok {
		return sch
	}
	fb := s.fallback
	fb.Course = course
	return fb
}

// Courses lists the configured course names.
func (s *Schedules) Courses() []string {
	out := make([]string, 0, len(s.byCourse))
	for _, sch := range s.byCourse {
		out = append(out, sch.Course)
	}
	return out
}

func normalizeCourse(course string) string {
	return strings.ToUpper(strings.TrimSpace(course))
}
