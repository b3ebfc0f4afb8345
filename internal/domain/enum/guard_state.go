package enum

import "encoding/json"

// GuardState is the outcome of checking a console session
type GuardState int

const (
	GuardStateUnchecked GuardState = iota
	GuardStateVerifying
	GuardStateAuthorized
	GuardStateRedirectToLogin
)

func (s GuardState) String() string {
	return [...]string{"Unchecked", "Verifying", "Authorized", "RedirectToLogin"}[s]
}

func (s GuardState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
