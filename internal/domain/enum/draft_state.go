package enum

import "encoding/json"

// DraftState is the lifecycle position of a receipt draft
type DraftState int

const (
	DraftStateEmpty DraftState = iota
	DraftStatePopulated
	DraftStateEdited
	DraftStateSubmitting
	DraftStateSaved
	DraftStateFailed
)

func (s DraftState) String() string {
	names := [...]string{"Empty", "Populated", "Edited", "Submitting", "Saved", "Failed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Empty"
	}
	return names[s]
}

// Editable reports whether fields may change in this state.
func (s DraftState) Editable() bool {
	return s != DraftStateSubmitting
}

func (s DraftState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
