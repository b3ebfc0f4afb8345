package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StudentStatus represents the enrollment status of a student
type StudentStatus int

const (
	StudentStatusActive StudentStatus = iota
	StudentStatusInactive
	StudentStatusPending
	StudentStatusDropped
	StudentStatusGraduate
)

var studentStatusNames = [...]string{"Active", "Inactive", "Pending", "Dropped", "Graduate"}

// StudentStatuses lists every status in display order.
var StudentStatuses = []StudentStatus{
	StudentStatusActive,
	StudentStatusInactive,
	StudentStatusPending,
	StudentStatusDropped,
	StudentStatusGraduate,
}

func (s StudentStatus) String() string {
	if int(s) < 0 || int(s) >= len(studentStatusNames) {
		return "Active"
	}
	return studentStatusNames[s]
}

// ParseStudentStatus matches a status name case-insensitively.
func ParseStudentStatus(str string) (StudentStatus, error) {
	for i, name := range studentStatusNames {
		if strings.EqualFold(name, strings.TrimSpace(str)) {
			return StudentStatus(i), nil
		}
	}
	return StudentStatusActive, fmt.Errorf("unknown student status %q", str)
}

func (s StudentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *StudentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = StudentStatus(i)
		return nil
	}
	if str == "" {
		*s = StudentStatusActive
		return nil
	}
	parsed, err := ParseStudentStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
