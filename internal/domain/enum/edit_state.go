package enum

import "encoding/json"

// EditState tracks a single field edit sent to the backend
type EditState int

const (
	EditStatePending EditState = iota
	EditStateConfirmed
	EditStateFailed
)

func (s EditState) String() string {
	return [...]string{"Pending", "Confirmed", "Failed"}[s]
}

func (s EditState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
