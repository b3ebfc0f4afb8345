package service

import (
	"fmt"
	"time"

	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/internal/infrastructure/render"
	"github.com/sangkips/academy-console/pkg/feecalc"
	"github.com/sangkips/academy-console/pkg/printer"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	width       int
	header      entity.ReceiptHeader
	log         *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, width int, header entity.ReceiptHeader, log *zap.Logger) *PrinterService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		width:       width,
		header:      header,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.Configured(),
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// Configured reports whether a thermal printer is set up at all.
func (s *PrinterService) Configured() bool {
	return s.printerType != "none" && s.printerType != ""
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	schedule := feecalc.DefaultSchedules().For("BRAINOBRAIN")
	receipt := &entity.Receipt{
		Header:      entity.ReceiptHeader{AcademyName: "PRINTER TEST", GSTIN: s.header.GSTIN},
		Number:      "TEST-001",
		StudentCode: "0000",
		StudentName: "Test Student",
		Course:      schedule.Course,
		PaidUpto:    1,
		Date:        time.Now(),
		PaymentMode: "cash",
		Breakdown: feecalc.Compute(feecalc.Amounts{
			feecalc.CourseFee: decimal.NewFromInt(100),
			feecalc.KitFee:    decimal.NewFromInt(10),
		}, schedule.Table),
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintReceipt prints the student and office copies of a receipt.
func (s *PrinterService) PrintReceipt(r *entity.Receipt) error {
	if err := s.printer.Print(FormatReceipt(r, s.width)); err != nil {
		s.log.Warn("printer error", zap.String("receipt", r.Number), zap.Error(err))
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes: a student copy and an
// office copy, each followed by a partial cut.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)
	for _, copyLabel := range []entity.ReceiptCopy{entity.StudentCopy, entity.OfficeCopy} {
		formatCopy(doc, r, copyLabel)
	}
	return doc.Bytes()
}

func formatCopy(doc *printer.Document, r *entity.Receipt, copyLabel entity.ReceiptCopy) {
	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.AcademyName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.GSTIN != "" {
		doc.TextF("GSTIN: %s", r.Header.GSTIN)
	}
	doc.TextF("%s Copy", copyLabel)

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt No.:", r.Number).
		KeyValue("Date:", r.Date.Format("02/01/2006")).
		KeyValue("Student Code:", r.StudentCode).
		KeyValue("Name:", r.StudentName).
		KeyValue("Course:", r.Course).
		KeyValue("Paid Upto:", "Level "+r.PaidUpto.String())

	doc.Separator('-').
		Columns("Description", "Rate", "Amount").
		Separator('-')

	for _, line := range r.Breakdown.Lines {
		doc.Columns(line.Label, "", feecalc.Display(line.Base))
		for _, c := range line.Components {
			doc.Columns("  "+c.Label, render.RatePercent(c.Rate), feecalc.Display(c.Amount))
		}
	}

	doc.Separator('-').
		SetBold(true).
		KeyValue("TOTAL:", r.Breakdown.DisplayGrandTotal()).
		SetBold(false).
		Wrap(r.Breakdown.GrandTotalWords + " ONLY")

	if r.PaymentMode != "" {
		doc.KeyValue("Payment:", r.PaymentMode)
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()
}
