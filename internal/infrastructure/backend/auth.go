package backend

import (
	"context"
	"encoding/json"
	"net/http"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	ContactNumber string `json:"contact_number"`
	Password      string `json:"password"`
	Role          string `json:"role,omitempty"`
}

// LoginResult is a successful login reply.
type LoginResult struct {
	AuthToken string `json:"authToken" validate:"required"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

type loginReply struct {
	ack
	LoginResult
}

// Login exchanges credentials for a backend token.
func (c *Client) Login(ctx context.Context, in LoginRequest) (*LoginResult, error) {
	req, err := jsonRequest(http.MethodPost, "/api/auth/login", "", in)
	if err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	var reply loginReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, &ParseError{Endpoint: "POST /api/auth/login", Err: err}
	}
	if err := reply.check(http.StatusUnauthorized); err != nil {
		return nil, err
	}
	if reply.AuthToken == "" && reply.Error != "" {
		return nil, &Error{Status: http.StatusUnauthorized, Message: reply.Error}
	}
	if err := c.validate.Struct(&reply.LoginResult); err != nil {
		return nil, &ParseError{Endpoint: "POST /api/auth/login", Err: err}
	}
	return &reply.LoginResult, nil
}

type verifyReply struct {
	ack
	Valid *bool `json:"valid"`
}

// VerifyToken asks the backend whether token is still valid.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	req, err := jsonRequest(http.MethodPost, "/api/auth/verify-token", token, map[string]string{"token": token})
	if err != nil {
		return err
	}
	var reply verifyReply
	if err := c.call(ctx, req, &reply); err != nil {
		return err
	}
	if err := reply.check(http.StatusUnauthorized); err != nil {
		return err
	}
	if reply.Valid != nil && !*reply.Valid {
		return &Error{Status: http.StatusUnauthorized, Message: "token is no longer valid"}
	}
	return nil
}

// Logout invalidates token on the backend.
func (c *Client) Logout(ctx context.Context, token string) error {
	req, err := jsonRequest(http.MethodDelete, "/api/auth/logout", token, nil)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, req)
	return err
}
