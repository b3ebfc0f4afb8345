package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sangkips/academy-console/internal/domain/enum"
	"github.com/sangkips/academy-console/pkg/feecalc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

func selectStudent(t *testing.T, d *Draft, s *Student) {
	t.Helper()
	ticket, err := d.BeginSelection(s.ID)
	require.NoError(t, err)
	require.NoError(t, d.ApplyStudent(ticket, s, feecalc.DefaultSchedules().For(s.Course), now))
}

func TestDraftSwitchingStudentResetsFees(t *testing.T) {
	d := NewDraft("sess", now)
	assert.Equal(t, enum.DraftStateEmpty, d.State)

	first := &Student{ID: "a", Name: "Asha", Course: "BRAINOBRAIN", Level: 3}
	selectStudent(t, d, first)
	assert.Equal(t, enum.DraftStatePopulated, d.State)

	require.NoError(t, d.SetFee(feecalc.CourseFee, decimal.NewFromInt(1000), now))
	require.NoError(t, d.SetLevelPaidTo(5, now))
	assert.Equal(t, enum.DraftStateEdited, d.State)

	second := &Student{ID: "b", Name: "Ravi", Course: "BRAINOBRAIN", Level: 7}
	selectStudent(t, d, second)

	assert.Equal(t, enum.DraftStatePopulated, d.State)
	assert.Equal(t, Level(7), d.LevelPaidTo)
	for item, amount := range d.Amounts {
		assert.True(t, amount.IsZero(), "%s not reset", item)
	}
	assert.Equal(t, "0.00", d.Breakdown().DisplayGrandTotal())
}

func TestDraftStaleSelectionIsDiscarded(t *testing.T) {
	d := NewDraft("sess", now)
	schedules := feecalc.DefaultSchedules()

	older, err := d.BeginSelection("a")
	require.NoError(t, err)
	newer, err := d.BeginSelection("b")
	require.NoError(t, err)

	b := &Student{ID: "b", Name: "Ravi", Course: "MENTAL MATH", Level: 2}
	require.NoError(t, d.ApplyStudent(newer, b, schedules.For(b.Course), now))

	a := &Student{ID: "a", Name: "Asha", Course: "BRAINOBRAIN", Level: 3}
	assert.ErrorIs(t, d.ApplyStudent(older, a, schedules.For(a.Course), now), ErrStaleSelection)
	assert.Equal(t, "b", d.Student.ID)
}

func TestDraftFeeValidation(t *testing.T) {
	d := NewDraft("sess", now)
	assert.ErrorIs(t, d.SetFee(feecalc.CourseFee, decimal.NewFromInt(10), now), ErrNoStudent)

	selectStudent(t, d, &Student{ID: "m", Name: "Meera", Course: "MENTAL MATH", Level: 1})
	assert.ErrorIs(t, d.SetFee(feecalc.CourseFee, decimal.NewFromInt(-1), now), ErrNegativeFee)
	assert.ErrorIs(t, d.SetFee(feecalc.JacketFee, decimal.NewFromInt(100), now), ErrFeeNotCharged)
	assert.ErrorIs(t, d.SetLevelPaidTo(11, now), ErrInvalidLevel)
}

func TestDraftReceiptNumberFollowsReceiptType(t *testing.T) {
	d := NewDraft("sess", now)
	d.ReceiptNumbers = ReceiptNumbers{Standard: "120", Alternate: "45"}

	selectStudent(t, d, &Student{ID: "a", Name: "Asha", Course: "BRAINOBRAIN"})
	assert.Equal(t, "120", d.ReceiptNumber())

	selectStudent(t, d, &Student{ID: "m", Name: "Meera", Course: "MENTAL MATH"})
	assert.Equal(t, "45", d.ReceiptNumber())
}

func TestDraftLifecycle(t *testing.T) {
	d := NewDraft("sess", now)
	selectStudent(t, d, &Student{ID: "a", Name: "Asha", Course: "BRAINOBRAIN", StudentCode: "S-1"})
	require.NoError(t, d.SetFee(feecalc.CourseFee, decimal.NewFromInt(1000), now))

	require.NoError(t, d.MarkSubmitting(now))
	assert.ErrorIs(t, d.SetFee(feecalc.CourseFee, decimal.NewFromInt(1), now), ErrDraftSubmitting)

	d.MarkFailed("Receipt number already used", now)
	assert.Equal(t, enum.DraftStateFailed, d.State)
	require.NoError(t, d.SetFee(feecalc.KitFee, decimal.NewFromInt(200), now))
	assert.Equal(t, enum.DraftStateEdited, d.State)

	require.NoError(t, d.MarkSubmitting(now))
	d.MarkSaved("r1", "Receipt saved successfully", now)
	assert.True(t, d.Saved())
	assert.ErrorIs(t, d.SetFee(feecalc.KitFee, decimal.NewFromInt(1), now), ErrDraftLocked)

	r := d.Receipt(ReceiptHeader{AcademyName: "OEC-7 ACADEMY"})
	assert.Equal(t, "S-1", r.StudentCode)
	assert.Equal(t, "BRAINOBRAIN", r.Course)
	assert.Equal(t, "1390.00", r.Breakdown.DisplayGrandTotal())
}

func TestDraftCloneIsIndependent(t *testing.T) {
	d := NewDraft("sess", now)
	selectStudent(t, d, &Student{ID: "a", Name: "Asha", Course: "BRAINOBRAIN"})

	c := d.Clone()
	c.Amounts[feecalc.CourseFee] = decimal.NewFromInt(5)
	c.Student.Name = "changed"

	assert.True(t, d.Amounts[feecalc.CourseFee].IsZero())
	assert.Equal(t, "Asha", d.Student.Name)
}

func TestStudentDecodesLooseBackendJSON(t *testing.T) {
	raw := `{"_id":"65a","student_code":1021,"name":"Asha","course":"BRAINOBRAIN","level":"4","status":"Inactive","contact_number":9876543210}`

	var s Student
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, FlexString("1021"), s.StudentCode)
	assert.Equal(t, Level(4), s.Level)
	assert.Equal(t, enum.StudentStatusInactive, s.Status)
	assert.Equal(t, "9876543210", s.ContactNumber.String())
}

func TestReceiptRecordAmounts(t *testing.T) {
	raw := `{"_id":"r1","reciept_number":17,"courseFee":"1000","exercisenkitFee":500,"kitFee":"","net_amount":1740,"date":"2024-06-30T08:15:00.000Z"}`

	var r ReceiptRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	amounts := r.Amounts()
	assert.True(t, amounts[feecalc.MaterialFee].Equal(decimal.NewFromInt(500)))
	assert.True(t, amounts[feecalc.KitFee].IsZero())

	date, ok := r.ParsedDate()
	require.True(t, ok)
	assert.Equal(t, 30, date.Day())
}

func TestReceiptRecordDay(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		date string
		loc  *time.Location
		want string
		ok   bool
	}{
		{name: "utc evening is next day in kolkata", date: "2024-06-01T19:00:00Z", loc: kolkata, want: "2024-06-02", ok: true},
		{name: "same instant in new york", date: "2024-06-01T19:00:00Z", loc: newYork, want: "2024-06-01", ok: true},
		{name: "plain date is not shifted", date: "2024-06-01", loc: newYork, want: "2024-06-01", ok: true},
		{name: "unparseable", date: "soon", loc: kolkata},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ReceiptRecord{Date: tt.date}
			got, ok := r.Day(tt.loc)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.Format("2006-01-02"))
			}
		})
	}
}
