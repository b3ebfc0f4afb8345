package request

import (
	"github.com/sangkips/academy-console/internal/domain/entity"
)

// RegisterStudentRequest represents a new student registration
type RegisterStudentRequest struct {
	Name                   string            `json:"name"`
	StudentClass           string            `json:"student_class"`
	DOB                    string            `json:"dob"`
	SchoolName             string            `json:"school_name"`
	MotherName             string            `json:"mother_name"`
	FatherName             string            `json:"father_name"`
	ContactNumber          entity.FlexString `json:"contact_number"`
	SecondaryContactNumber entity.FlexString `json:"secondary_contact_number"`
	Email                  string            `json:"email" binding:"omitempty,email"`
	Address                string            `json:"address"`
	City                   string            `json:"city"`
	Course                 string            `json:"course"`
	Level                  entity.FlexString `json:"level"`
	Status                 string            `json:"status"`
	Password               string            `json:"password"`
}

// UpdateStudentRequest edits one roster field inline.
type UpdateStudentRequest struct {
	Field string            `json:"field" binding:"required,oneof=level status"`
	Value entity.FlexString `json:"value"`
}

// RosterQuery represents roster list query parameters
type RosterQuery struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
