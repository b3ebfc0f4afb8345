package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DictationType selects the digit range of generated numbers
type DictationType int

const (
	DictationSingleDigit DictationType = iota
	DictationSingleOrDoubleDigit
	DictationThreeDigit
	DictationFourDigit
)

var dictationTypeNames = [...]string{"SD", "SD/DD", "D3", "D4"}

func (t DictationType) String() string {
	if int(t) < 0 || int(t) >= len(dictationTypeNames) {
		return "SD"
	}
	return dictationTypeNames[t]
}

// ParseDictationType matches SD, SD/DD, D3 or D4.
func ParseDictationType(str string) (DictationType, error) {
	for i, name := range dictationTypeNames {
		if strings.EqualFold(name, strings.TrimSpace(str)) {
			return DictationType(i), nil
		}
	}
	return DictationSingleDigit, fmt.Errorf("unknown dictation type %q", str)
}

func (t DictationType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DictationType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseDictationType(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
