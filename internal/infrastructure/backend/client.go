// Package backend talks to the academy REST backend. Every reply is decoded
// into an explicit type and validated before it reaches the services.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenHeader carries the backend auth token on every call but login.
const TokenHeader = "auth-token"

// Client is a thin typed wrapper over the backend endpoints.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	log      *zap.Logger
}

// NewClient creates a backend client. A nil httpClient gets one with timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		validate: validator.New(),
		log:      log,
	}
}

type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func jsonRequest(method, path, token string, payload any) (request, error) {
	req := request{method: method, path: path, token: token}
	if payload != nil {
		bs, err := json.Marshal(payload)
		if err != nil {
			return req, fmt.Errorf("encode %s: %w", path, err)
		}
		req.body = bytes.NewReader(bs)
		req.contentType = "application/json"
	}
	return req, nil
}

// send performs the call and returns the raw body of a 2xx reply.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	reqID := uuid.New().String()
	start := time.Now()
	endpoint := r.method + " " + r.path

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", endpoint, err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set(TokenHeader, r.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend request failed",
			zap.String("req_id", reqID),
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.log.Debug("backend response close failed", zap.String("req_id", reqID), zap.Error(err))
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	c.log.Info("backend request",
		zap.String("req_id", reqID),
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode/100 != 2 {
		return nil, &Error{Status: resp.StatusCode, Message: messageFrom(raw)}
	}
	return raw, nil
}

// decode unmarshals raw into out and validates structs, or each element of
// a slice of structs.
func (c *Client) decode(endpoint string, raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return &ParseError{Endpoint: endpoint, Err: err}
	}
	v := reflect.Indirect(reflect.ValueOf(out))
	var err error
	switch v.Kind() {
	case reflect.Struct:
		err = c.validate.Struct(out)
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			elem := v.Index(i)
			if elem.Kind() == reflect.Struct {
				if err = c.validate.Struct(elem.Addr().Interface()); err != nil {
					err = fmt.Errorf("item %d: %w", i, err)
					break
				}
			}
		}
	}
	if err != nil {
		return &ParseError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// ack is the {success, message} reply of mutating endpoints.
type ack struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// check turns an explicit success:false into an *Error.
func (a ack) check(status int) error {
	if a.Success != nil && !*a.Success {
		msg := a.Message
		if msg == "" {
			msg = a.Error
		}
		return &Error{Status: status, Message: msg}
	}
	return nil
}

func (c *Client) call(ctx context.Context, r request, out any) error {
	raw, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return c.decode(r.method+" "+r.path, raw, out)
}

// IsUnauthorized reports whether err is a backend rejection of the token.
func IsUnauthorized(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Unauthorized()
}
