// Package feecalc turns fee line items into a tax breakdown and grand total.
//
// Amounts are kept at full precision; rounding to two decimals only happens
// in the Display helpers and in the words rendition of the grand total.
package feecalc

import (
	"github.com/sangkips/academy-console/pkg/amountwords"
	"github.com/shopspring/decimal"
)

// LineItem names a chargeable component of a receipt.
type LineItem string

const (
	CourseFee   LineItem = "course_fee"
	MaterialFee LineItem = "material_fee"
	KitFee      LineItem = "kit_fee"
	JacketFee   LineItem = "jacket_fee"
)

// AllLineItems lists every recognised line item in receipt order.
var AllLineItems = []LineItem{CourseFee, MaterialFee, KitFee, JacketFee}

// Valid reports whether the line item is recognised.
func (l LineItem) Valid() bool {
	for _, item := range AllLineItems {
		if item == l {
			return true
		}
	}
	return false
}

// Label returns the printed description of the line item.
func (l LineItem) Label() string {
	switch l {
	case CourseFee:
		return "Course Fee"
	case MaterialFee:
		return "Exercise Book Fee"
	case KitFee:
		return "Kit Fee"
	case JacketFee:
		return "Jacket Fee"
	default:
		return string(l)
	}
}

// Amounts holds the operator-entered base amount per line item.
type Amounts map[LineItem]decimal.Decimal

// Get returns the amount for item, zero when absent.
func (a Amounts) Get(item LineItem) decimal.Decimal {
	if v, ok := a[item]; ok {
		return v
	}
	return decimal.Zero
}

// ComponentAmount is one computed tax component of a line.
type ComponentAmount struct {
	Label  string          `json:"label"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// Line is the computed breakdown of a single line item.
type Line struct {
	Item       LineItem          `json:"item"`
	Label      string            `json:"label"`
	Base       decimal.Decimal   `json:"base"`
	Components []ComponentAmount `json:"components"`
	Total      decimal.Decimal   `json:"total"`
}

// Tax returns the sum of the line's tax components.
func (l Line) Tax() decimal.Decimal {
	sum := decimal.Zero
	for _, c := range l.Components {
		sum = sum.Add(c.Amount)
	}
	return sum
}

// Breakdown is the full computation for a receipt.
type Breakdown struct {
	Lines           []Line          `json:"lines"`
	BaseTotal       decimal.Decimal `json:"base_total"`
	TaxTotal        decimal.Decimal `json:"tax_total"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	GrandTotalWords string          `json:"grand_total_words"`
}

// Line returns the computed line for item and whether the schedule has it.
func (b Breakdown) Line(item LineItem) (Line, bool) {
	for _, l := range b.Lines {
		if l.Item == item {
			return l, true
		}
	}
	return Line{}, false
}

// DisplayGrandTotal formats the grand total with two decimals.
func (b Breakdown) DisplayGrandTotal() string {
	return Display(b.GrandTotal)
}

// Display rounds an amount to two decimals for presentation.
func Display(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

type computeOptions struct {
	words []amountwords.Option
}

// Option configures Compute.
type Option func(*computeOptions)

// WithPaiseInWords includes the fractional part in the words rendition.
func WithPaiseInWords() Option {
	return func(o *computeOptions) {
		o.words = append(o.words, amountwords.WithPaise())
	}
}

// Compute applies the rate table to the amounts. Only line items present in
// the table contribute; each component is base × rate, computed independently.
// Negative amounts are not rejected here.
func Compute(amounts Amounts, table RateTable, opts ...Option) Breakdown {
	var o computeOptions
	for _, opt := range opts {
		opt(&o)
	}

	b := Breakdown{
		Lines:     make([]Line, 0, len(table.Items)),
		BaseTotal: decimal.Zero,
		TaxTotal:  decimal.Zero,
	}

	for _, item := range table.Items {
		base := amounts.Get(item)
		line := Line{
			Item:       item,
			Label:      item.Label(),
			Base:       base,
			Components: make([]ComponentAmount, 0, len(table.Rates[item])),
		}
		for _, rate := range table.Rates[item] {
			line.Components = append(line.Components, ComponentAmount{
				Label:  rate.Label,
				Rate:   rate.Rate,
				Amount: base.Mul(rate.Rate),
			})
		}
		tax := line.Tax()
		line.Total = base.Add(tax)

		b.BaseTotal = b.BaseTotal.Add(base)
		b.TaxTotal = b.TaxTotal.Add(tax)
		b.Lines = append(b.Lines, line)
	}

	b.GrandTotal = b.BaseTotal.Add(b.TaxTotal)
	b.GrandTotalWords = amountwords.FromDecimal(b.GrandTotal, o.words...)
	return b
}
