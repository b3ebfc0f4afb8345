package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMode represents how a fee was paid
type PaymentMode int

const (
	PaymentModeCash PaymentMode = iota
	PaymentModeOnline
)

func (p PaymentMode) String() string {
	names := [...]string{"cash", "online"}
	if int(p) < 0 || int(p) >= len(names) {
		return "cash"
	}
	return names[p]
}

// ParsePaymentMode accepts "cash" or "online" in any case.
func ParsePaymentMode(str string) (PaymentMode, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "cash", "":
		return PaymentModeCash, nil
	case "online":
		return PaymentModeOnline, nil
	}
	return PaymentModeCash, fmt.Errorf("unknown payment mode %q", str)
}

func (p PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMode(str)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
