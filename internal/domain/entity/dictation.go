package entity

import (
	"time"

	"github.com/sangkips/academy-console/internal/domain/enum"
)

// DictationSettings configures one practice round.
type DictationSettings struct {
	Type    enum.DictationType `json:"type"`
	Rows    int                `json:"rows"`
	Sums    int                `json:"sums"`
	Seconds int                `json:"seconds"`
}

// DictationSum is one sequence of numbers read out to the student.
type DictationSum struct {
	Numbers []int `json:"numbers"`
	Answer  int   `json:"answer"`
}

// Dictation is a generated practice round.
type Dictation struct {
	Settings   DictationSettings `json:"settings"`
	IntervalMS int64             `json:"interval_ms"`
	Sums       []DictationSum    `json:"sums"`
}

// Interval is the pause between two numbers.
func (d *Dictation) Interval() time.Duration {
	return time.Duration(d.IntervalMS) * time.Millisecond
}
