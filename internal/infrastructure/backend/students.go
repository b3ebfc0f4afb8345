package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sangkips/academy-console/internal/domain/entity"
)

// StudentInput is the registration body of POST /api/auth/createuser.
type StudentInput struct {
	Name                   string `json:"name"`
	StudentClass           string `json:"student_class,omitempty"`
	DOB                    string `json:"dob,omitempty"`
	SchoolName             string `json:"school_name,omitempty"`
	MotherName             string `json:"mother_name,omitempty"`
	FatherName             string `json:"father_name,omitempty"`
	ContactNumber          string `json:"contact_number"`
	SecondaryContactNumber string `json:"secondary_contact_number,omitempty"`
	Email                  string `json:"email,omitempty"`
	Address                string `json:"address,omitempty"`
	City                   string `json:"city,omitempty"`
	Course                 string `json:"course"`
	Level                  string `json:"level"`
	Status                 string `json:"status,omitempty"`
	Password               string `json:"password,omitempty"`
	Role                   string `json:"role,omitempty"`
}

type createUserReply struct {
	ack
	AuthToken string `json:"authToken"`
}

// CreateUser registers a student and returns the token the backend issues
// for it. The token's user.id claim identifies the new record.
func (c *Client) CreateUser(ctx context.Context, token string, in StudentInput) (string, error) {
	req, err := jsonRequest(http.MethodPost, "/api/auth/createuser", token, in)
	if err != nil {
		return "", err
	}
	var reply createUserReply
	if err := c.call(ctx, req, &reply); err != nil {
		return "", err
	}
	if err := reply.check(http.StatusUnprocessableEntity); err != nil {
		return "", err
	}
	if reply.AuthToken == "" {
		return "", &ParseError{Endpoint: "POST /api/auth/createuser", Err: errMissing("authToken")}
	}
	return reply.AuthToken, nil
}

// GetStudent fetches one student.
func (c *Client) GetStudent(ctx context.Context, token, id string) (*entity.Student, error) {
	req, err := jsonRequest(http.MethodGet, "/api/admin/user/"+url.PathEscape(id), token, nil)
	if err != nil {
		return nil, err
	}
	var student entity.Student
	if err := c.call(ctx, req, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListStudents fetches every student.
func (c *Client) ListStudents(ctx context.Context, token string) ([]entity.Student, error) {
	req, err := jsonRequest(http.MethodGet, "/api/admin/fetchalluser", token, nil)
	if err != nil {
		return nil, err
	}
	var students []entity.Student
	if err := c.call(ctx, req, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// UpdateStudent sends a partial update.
func (c *Client) UpdateStudent(ctx context.Context, token, id string, fields map[string]any) error {
	req, err := jsonRequest(http.MethodPut, "/api/admin/updateuser/"+url.PathEscape(id), token, fields)
	if err != nil {
		return err
	}
	var reply ack
	if err := c.call(ctx, req, &reply); err != nil {
		return err
	}
	return reply.check(http.StatusUnprocessableEntity)
}

// PurgeStudents deletes every student record.
func (c *Client) PurgeStudents(ctx context.Context, token string) error {
	req, err := jsonRequest(http.MethodDelete, "/api/admin/deletestudentdata", token, nil)
	if err != nil {
		return err
	}
	var reply ack
	if err := c.call(ctx, req, &reply); err != nil {
		return err
	}
	return reply.check(http.StatusBadGateway)
}
