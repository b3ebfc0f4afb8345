package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/academy-console/internal/config"
	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/pkg/feecalc"
	"github.com/sangkips/academy-console/pkg/pagination"
)

// InvoiceBackend is the part of the backend that lists stored receipts.
type InvoiceBackend interface {
	ListReceipts(ctx context.Context, token string) ([]entity.ReceiptRecord, error)
	GetReceipt(ctx context.Context, token, id string) (*entity.ReceiptRecord, error)
}

// InvoiceService looks up receipts that were already saved.
type InvoiceService struct {
	backend   InvoiceBackend
	renderer  ReceiptRenderer
	schedules *feecalc.Schedules
	cfg       config.ReceiptConfig
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(backend InvoiceBackend, renderer ReceiptRenderer, schedules *feecalc.Schedules, cfg config.ReceiptConfig) *InvoiceService {
	if schedules == nil {
		schedules = feecalc.DefaultSchedules()
	}
	return &InvoiceService{
		backend:   backend,
		renderer:  renderer,
		schedules: schedules,
		cfg:       cfg,
	}
}

// InvoiceQuery filters the invoice list. From and To are inclusive calendar days.
type InvoiceQuery struct {
	Search string
	From   *time.Time
	To     *time.Time
	Params pagination.PaginationParams
}

func (q *InvoiceQuery) matches(r *entity.ReceiptRecord, loc *time.Location) bool {
	if search := strings.ToLower(strings.TrimSpace(q.Search)); search != "" {
		number := strings.ToLower(r.ReceiptNumber.String())
		name := strings.ToLower(r.Name)
		if !strings.Contains(number, search) && !strings.Contains(name, search) {
			return false
		}
	}
	if q.From == nil && q.To == nil {
		return true
	}

	day, ok := r.Day(loc)
	if !ok {
		return false
	}
	if q.From != nil && day.Before(calendarDay(*q.From)) {
		return false
	}
	if q.To != nil && day.After(calendarDay(*q.To)) {
		return false
	}
	return true
}

// calendarDay keeps the wall-clock date of a bound whatever zone it was parsed in.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// List returns one page of matching receipts.
func (s *InvoiceService) List(ctx context.Context, session *entity.ConsoleSession, query *InvoiceQuery) (*pagination.PaginatedResult[entity.ReceiptRecord], error) {
	records, err := s.backend.ListReceipts(ctx, session.Token)
	if err != nil {
		return nil, backendError(err)
	}

	loc := s.cfg.Location()
	matches := make([]entity.ReceiptRecord, 0, len(records))
	for i := range records {
		if query.matches(&records[i], loc) {
			matches = append(matches, records[i])
		}
	}

	params := query.Params
	return pagination.Paginate(matches, &params), nil
}

// Get fetches one stored receipt.
func (s *InvoiceService) Get(ctx context.Context, session *entity.ConsoleSession, id string) (*entity.ReceiptRecord, error) {
	record, err := s.backend.GetReceipt(ctx, session.Token, id)
	if err != nil {
		return nil, backendError(err)
	}
	return record, nil
}

// Receipt rebuilds the printable receipt of a stored record, recomputing the
// tax breakdown with the course's schedule.
func (s *InvoiceService) Receipt(record *entity.ReceiptRecord) *entity.Receipt {
	schedule := s.schedules.For(record.Course)
	date, _ := record.ParsedDate()
	return &entity.Receipt{
		Header:      entity.ReceiptHeader{AcademyName: s.cfg.AcademyName, GSTIN: s.cfg.GSTIN},
		Number:      record.ReceiptNumber.String(),
		StudentCode: record.StudentCode.String(),
		StudentName: record.Name,
		Course:      record.Course,
		PaidUpto:    record.PaidUpto,
		Date:        date,
		PaymentMode: record.PaymentMode,
		Breakdown:   feecalc.Compute(record.Amounts(), schedule.Table, breakdownOptions(s.cfg)...),
	}
}

// RenderPDF renders a stored receipt as a printable invoice.
func (s *InvoiceService) RenderPDF(ctx context.Context, session *entity.ConsoleSession, id string) ([]byte, *entity.Receipt, error) {
	record, err := s.Get(ctx, session, id)
	if err != nil {
		return nil, nil, err
	}
	receipt := s.Receipt(record)
	pdf, err := s.renderer.Render(receipt)
	if err != nil {
		return nil, nil, err
	}
	return pdf, receipt, nil
}
