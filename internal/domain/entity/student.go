package entity

import (
	"time"

	"github.com/sangkips/academy-console/internal/domain/enum"
)

// Student is a student record as the backend stores it.
type Student struct {
	ID                     string             `json:"_id" validate:"required"`
	StudentCode            FlexString         `json:"student_code"`
	Name                   string             `json:"name"`
	StudentClass           string             `json:"student_class,omitempty"`
	DOB                    string             `json:"dob,omitempty"`
	SchoolName             string             `json:"school_name,omitempty"`
	MotherName             string             `json:"mother_name,omitempty"`
	FatherName             string             `json:"father_name,omitempty"`
	ContactNumber          FlexString         `json:"contact_number,omitempty"`
	SecondaryContactNumber FlexString         `json:"secondary_contact_number,omitempty"`
	Email                  string             `json:"email,omitempty"`
	Address                string             `json:"address,omitempty"`
	City                   string             `json:"city,omitempty"`
	Course                 string             `json:"course"`
	Level                  Level              `json:"level"`
	Status                 enum.StudentStatus `json:"status"`
	Role                   string             `json:"role,omitempty"`
}

// StudentField names a field that can be edited inline from the roster.
type StudentField string

const (
	StudentFieldLevel  StudentField = "level"
	StudentFieldStatus StudentField = "status"
)

// StudentEdit tracks one inline edit until the backend confirms or rejects it.
type StudentEdit struct {
	StudentID string         `json:"student_id"`
	Field     StudentField   `json:"field"`
	Value     string         `json:"value"`
	Previous  string         `json:"previous,omitempty"`
	State     enum.EditState `json:"state"`
	Message   string         `json:"message,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}
