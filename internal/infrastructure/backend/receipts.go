package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func errMissing(field string) error {
	return fmt.Errorf("missing %s", field)
}

// NextReceiptNumbers fetches the next standard and alternate receipt numbers.
func (c *Client) NextReceiptNumbers(ctx context.Context, token string) (*entity.ReceiptNumbers, error) {
	req, err := jsonRequest(http.MethodGet, "/api/admin/receipt-number", token, nil)
	if err != nil {
		return nil, err
	}
	var numbers entity.ReceiptNumbers
	if err := c.call(ctx, req, &numbers); err != nil {
		return nil, err
	}
	return &numbers, nil
}

// ReceiptSubmission is the multipart form of POST /api/admin/addreciept.
type ReceiptSubmission struct {
	Number         string
	StudentCode    string
	Name           string
	Course         string
	PaidUpto       entity.Level
	Date           time.Time
	CourseFee      decimal.Decimal
	ExerciseFee    decimal.Decimal
	KitFee         decimal.Decimal
	JacketFee      decimal.Decimal
	NetAmount      decimal.Decimal
	AmountInWords  string
	PaymentMode    string
	Attachment     []byte
	AttachmentName string
}

func (s *ReceiptSubmission) encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{"reciept_number", s.Number},
		{"scode", s.StudentCode},
		{"name", s.Name},
		{"course", s.Course},
		{"paid_upto", s.PaidUpto.String()},
		{"date", s.Date.UTC().Format(time.RFC3339)},
		{"courseFee", s.CourseFee.StringFixed(2)},
		{"exerciseFee", s.ExerciseFee.StringFixed(2)},
		{"kitFee", s.KitFee.StringFixed(2)},
		{"jacketFee", s.JacketFee.StringFixed(2)},
		{"exercisenkitFee", s.ExerciseFee.Add(s.KitFee).StringFixed(2)},
		{"net_amount", s.NetAmount.StringFixed(2)},
		{"totalAmountInWords", s.AmountInWords},
		{"payment_mode", s.PaymentMode},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	if len(s.Attachment) > 0 {
		name := s.AttachmentName
		if name == "" {
			name = "receipt_" + s.Number + ".pdf"
		}
		part, err := w.CreateFormFile("reciept_img", name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(s.Attachment); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

type createReceiptReply struct {
	ack
	ID      string `json:"_id"`
	Receipt *struct {
		ID string `json:"_id"`
	} `json:"reciept"`
}

// CreateReceipt persists a receipt and returns the id the backend assigned,
// or the receipt number when the reply carries none.
func (c *Client) CreateReceipt(ctx context.Context, token string, in *ReceiptSubmission) (string, error) {
	body, contentType, err := in.encode()
	if err != nil {
		return "", fmt.Errorf("encode receipt: %w", err)
	}
	raw, err := c.send(ctx, request{
		method:      http.MethodPost,
		path:        "/api/admin/addreciept",
		token:       token,
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return "", err
	}

	var reply createReceiptReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return "", &ParseError{Endpoint: "POST /api/admin/addreciept", Err: err}
	}
	if reply.Success == nil {
		return "", &ParseError{Endpoint: "POST /api/admin/addreciept", Err: errMissing("success")}
	}
	if err := reply.check(http.StatusUnprocessableEntity); err != nil {
		return "", err
	}
	switch {
	case reply.ID != "":
		return reply.ID, nil
	case reply.Receipt != nil && reply.Receipt.ID != "":
		return reply.Receipt.ID, nil
	}
	return in.Number, nil
}

// CreateAltReceipt advances the alternate receipt counter.
func (c *Client) CreateAltReceipt(ctx context.Context, token, counter string) error {
	req, err := jsonRequest(http.MethodPost, "/api/admin/addmreciept", token, map[string]string{"counter": counter})
	if err != nil {
		return err
	}
	var reply ack
	if err := c.call(ctx, req, &reply); err != nil {
		return err
	}
	return reply.check(http.StatusUnprocessableEntity)
}

// ListReceipts fetches every receipt. A single object reply is treated as a
// one-element list.
func (c *Client) ListReceipts(ctx context.Context, token string) ([]entity.ReceiptRecord, error) {
	req, err := jsonRequest(http.MethodGet, "/api/admin/getreciept", token, nil)
	if err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}

	const endpoint = "GET /api/admin/getreciept"
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var one entity.ReceiptRecord
		if err := c.decode(endpoint, raw, &one); err != nil {
			return nil, err
		}
		return []entity.ReceiptRecord{one}, nil
	}
	var list []entity.ReceiptRecord
	if err := c.decode(endpoint, raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ErrReceiptNotFound is returned when the backend has no receipt for an id.
var ErrReceiptNotFound = errors.New("receipt not found")

// GetReceipt fetches one receipt.
func (c *Client) GetReceipt(ctx context.Context, token, id string) (*entity.ReceiptRecord, error) {
	req, err := jsonRequest(http.MethodGet, "/api/admin/receipts/"+url.PathEscape(id), token, nil)
	if err != nil {
		return nil, err
	}
	raw, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return nil, ErrReceiptNotFound
	}
	var record entity.ReceiptRecord
	if err := c.decode("GET /api/admin/receipts/:id", raw, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// PurgeReceipts deletes every receipt record.
func (c *Client) PurgeReceipts(ctx context.Context, token string) error {
	req, err := jsonRequest(http.MethodDelete, "/api/admin/deletereceiptdata", token, nil)
	if err != nil {
		return err
	}
	var reply ack
	if err := c.call(ctx, req, &reply); err != nil {
		return err
	}
	return reply.check(http.StatusBadGateway)
}
