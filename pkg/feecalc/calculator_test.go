package feecalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTaxedSchedule(t *testing.T) {
	schedule := DefaultSchedules().For("BRAINOBRAIN")

	b := Compute(Amounts{
		CourseFee:   d("1000"),
		MaterialFee: d("500"),
	}, schedule.Table)

	course, ok := b.Line(CourseFee)
	require.True(t, ok)
	assert.True(t, course.Tax().Equal(d("180")), course.Tax().String())
	assert.True(t, course.Components[0].Amount.Equal(d("90")))
	assert.Equal(t, "Central Tax", course.Components[0].Label)
	assert.Equal(t, "State Tax", course.Components[1].Label)

	material, ok := b.Line(MaterialFee)
	require.True(t, ok)
	assert.True(t, material.Tax().Equal(d("60")))

	assert.True(t, b.BaseTotal.Equal(d("1500")))
	assert.True(t, b.TaxTotal.Equal(d("240")))
	assert.Equal(t, "1740.00", b.DisplayGrandTotal())
	assert.Equal(t, "ONE THOUSAND, SEVEN HUNDRED FORTY", b.GrandTotalWords)
}

func TestComputeFractionalRates(t *testing.T) {
	schedule := DefaultSchedules().For("brainobrain")

	b := Compute(Amounts{KitFee: d("333")}, schedule.Table)

	kit, ok := b.Line(KitFee)
	require.True(t, ok)
	// 333 × 0.025 kept at full precision per component
	assert.True(t, kit.Components[0].Amount.Equal(d("8.325")))
	assert.True(t, b.GrandTotal.Equal(d("349.65")))
	assert.Equal(t, "349.65", b.DisplayGrandTotal())
	assert.Equal(t, "THREE HUNDRED FORTY-NINE", b.GrandTotalWords)
	assert.Equal(t, "THREE HUNDRED FORTY-NINE AND SIXTY-FIVE PAISE",
		Compute(Amounts{KitFee: d("333")}, schedule.Table, WithPaiseInWords()).GrandTotalWords)
}

func TestComputeAllZero(t *testing.T) {
	b := Compute(Amounts{}, DefaultSchedules().For("BRAINOBRAIN").Table)

	assert.Len(t, b.Lines, 4)
	assert.Equal(t, "0.00", b.DisplayGrandTotal())
	assert.Equal(t, "ZERO", b.GrandTotalWords)
}

func TestComputeIgnoresItemsOutsideSchedule(t *testing.T) {
	schedule := DefaultSchedules().For("MENTAL MATH")
	assert.Equal(t, ReceiptAlternate, schedule.ReceiptType)

	b := Compute(Amounts{
		CourseFee:   d("1200"),
		KitFee:      d("300"),
		MaterialFee: d("999"),
		JacketFee:   d("999"),
	}, schedule.Table)

	assert.Len(t, b.Lines, 2)
	_, ok := b.Line(MaterialFee)
	assert.False(t, ok)
	assert.True(t, b.TaxTotal.IsZero())
	assert.Equal(t, "1500.00", b.DisplayGrandTotal())
}

func TestComputeIsDeterministic(t *testing.T) {
	table := DefaultSchedules().For("BRAINOBRAIN").Table
	amounts := Amounts{CourseFee: d("1234.56"), JacketFee: d("450")}

	first := Compute(amounts, table)
	second := Compute(amounts, table)

	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
	assert.Equal(t, first.GrandTotalWords, second.GrandTotalWords)
}

func TestSchedulesFallback(t *testing.T) {
	s := DefaultSchedules()

	fb := s.For("ABACUS")
	assert.Equal(t, "ABACUS", fb.Course)
	assert.Equal(t, ReceiptStandard, fb.ReceiptType)
	assert.True(t, fb.Table.Has(CourseFee))
	assert.False(t, fb.Table.Has(KitFee))
	assert.ElementsMatch(t, []string{"BRAINOBRAIN", "MENTAL MATH"}, s.Courses())
}

func TestLineItemValid(t *testing.T) {
	assert.True(t, KitFee.Valid())
	assert.False(t, LineItem("tuition").Valid())
	assert.Equal(t, "Exercise Book Fee", MaterialFee.Label())
}
