// Package amountwords spells out currency amounts the way printed receipts
// show them: "ONE THOUSAND, SEVEN HUNDRED FORTY".
package amountwords

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	ten      = 10
	hundred  = 100
	thousand = 1000
	million  = 1000 * thousand
	billion  = 1000 * million
	trillion = 1000 * billion
)

var lessThanTwenty = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
	"seventeen", "eighteen", "nineteen",
}

var tenths = [...]string{
	"zero", "ten", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

type options struct {
	paise bool
}

// Option tweaks the words rendition.
type Option func(*options)

// WithPaise appends the fractional part as paise ("AND FIFTY PAISE").
// Without it the fraction is dropped.
func WithPaise() Option {
	return func(o *options) { o.paise = true }
}

// Int returns the lower-case words for n.
func Int(n int64) string {
	if n == 0 {
		return "zero"
	}
	var words []string
	if n < 0 {
		words = append(words, "minus")
		n = -n
	}
	words = appendWords(words, n)
	return strings.TrimSuffix(strings.Join(words, " "), ",")
}

func appendWords(words []string, n int64) []string {
	for n > 0 {
		var word string
		var rest int64
		switch {
		case n < 20:
			word = lessThanTwenty[n]
		case n < hundred:
			word = tenths[n/ten]
			if r := n % ten; r != 0 {
				word += "-" + lessThanTwenty[r]
			}
		case n < thousand:
			word = Int(n/hundred) + " hundred"
			rest = n % hundred
		case n < million:
			word = Int(n/thousand) + " thousand,"
			rest = n % thousand
		case n < billion:
			word = Int(n/million) + " million,"
			rest = n % million
		case n < trillion:
			word = Int(n/billion) + " billion,"
			rest = n % billion
		default:
			word = Int(n/trillion) + " trillion,"
			rest = n % trillion
		}
		words = append(words, word)
		n = rest
	}
	return words
}

// FromDecimal rounds amount to 2 decimals and returns the upper-cased words of
// its integer part.
func FromDecimal(amount decimal.Decimal, opts ...Option) string {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rounded := amount.Round(2)
	whole := rounded.IntPart()
	out := Int(whole)

	if o.paise {
		paise := rounded.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).Abs().IntPart()
		if paise > 0 {
			out += " and " + Int(paise) + " paise"
		}
	}
	return strings.ToUpper(out)
}
