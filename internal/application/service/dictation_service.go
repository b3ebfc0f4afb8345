package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/domain/enum"
	"github.com/sangkips/academy-console/pkg/apperror"
)

// Dictation limits.
const (
	MinDictationRows    = 3
	MaxDictationRows    = 102
	MinDictationSums    = 1
	MaxDictationSums    = 2
	MinDictationSeconds = 1
	MaxDictationSeconds = 120

	minDictationInterval = 100 * time.Millisecond
)

// DictationService generates mental arithmetic practice rounds.
type DictationService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDictationService creates a dictation service. A nil source seeds from the clock.
func NewDictationService(src rand.Source) *DictationService {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &DictationService{rng: rand.New(src)}
}

func validateDictation(s *entity.DictationSettings) error {
	var fieldErrors []apperror.FieldError
	if s.Rows < MinDictationRows || s.Rows > MaxDictationRows {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "rows",
			Message: fmt.Sprintf("Rows must be between %d and %d", MinDictationRows, MaxDictationRows),
		})
	}
	if s.Sums < MinDictationSums || s.Sums > MaxDictationSums {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "sums",
			Message: fmt.Sprintf("Sums must be between %d and %d", MinDictationSums, MaxDictationSums),
		})
	}
	if s.Seconds < MinDictationSeconds || s.Seconds > MaxDictationSeconds {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "seconds",
			Message: fmt.Sprintf("Time must be between %d and %d seconds", MinDictationSeconds, MaxDictationSeconds),
		})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// DictationInterval spreads the round time over the rows, never faster than 100ms a number.
func DictationInterval(seconds, rows int) time.Duration {
	if rows <= 0 {
		return minDictationInterval
	}
	d := time.Duration(seconds) * time.Second / time.Duration(rows)
	if d < minDictationInterval {
		return minDictationInterval
	}
	return d
}

// Generate builds a round. Each number is subtracted with probability one half
// unless that would take the running sum below zero.
func (s *DictationService) Generate(settings entity.DictationSettings) (*entity.Dictation, error) {
	if err := validateDictation(&settings); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sums := make([]entity.DictationSum, settings.Sums)
	for i := range sums {
		numbers := make([]int, settings.Rows)
		total := 0
		for j := range numbers {
			n := s.number(settings.Type)
			if s.rng.Intn(2) == 0 && total-n >= 0 {
				n = -n
			}
			total += n
			numbers[j] = n
		}
		sums[i] = entity.DictationSum{Numbers: numbers, Answer: total}
	}

	return &entity.Dictation{
		Settings:   settings,
		IntervalMS: DictationInterval(settings.Seconds, settings.Rows).Milliseconds(),
		Sums:       sums,
	}, nil
}

func (s *DictationService) between(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *DictationService) number(t enum.DictationType) int {
	switch t {
	case enum.DictationSingleOrDoubleDigit:
		if s.rng.Intn(2) == 0 {
			return s.between(1, 9)
		}
		return s.between(10, 99)
	case enum.DictationThreeDigit:
		return s.between(100, 999)
	case enum.DictationFourDigit:
		return s.between(1000, 9999)
	default:
		return s.between(1, 9)
	}
}
