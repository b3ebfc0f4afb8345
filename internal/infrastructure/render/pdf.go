// Package render turns receipts into printable documents.
package render

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/linestyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sangkips/academy-console/internal/domain/entity"
	"github.com/sangkips/academy-console/pkg/feecalc"
)

// PDFRenderer lays out fee receipts with maroto.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces a one-page PDF with a student copy and an office copy.
func (r *PDFRenderer) Render(receipt *entity.Receipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)

	for i, copyLabel := range []entity.ReceiptCopy{entity.StudentCopy, entity.OfficeCopy} {
		if i > 0 {
			m.AddRow(6)
			m.AddRow(2, line.NewCol(12, props.Line{Style: linestyle.Dashed}))
			m.AddRow(6)
		}
		r.addCopy(m, receipt, copyLabel)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *PDFRenderer) addCopy(m core.Maroto, rc *entity.Receipt, copyLabel entity.ReceiptCopy) {
	m.AddRow(8,
		col.New(12).Add(
			text.New(fmt.Sprintf("%s (%s Copy)", rc.Header.AcademyName, copyLabel), props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Center,
			}),
		),
	)
	if rc.Header.GSTIN != "" {
		m.AddRow(5,
			col.New(12).Add(
				text.New(fmt.Sprintf("(GST IN - %s)", rc.Header.GSTIN), props.Text{
					Size:  8,
					Align: align.Center,
				}),
			),
		)
	}

	m.AddRow(2, line.NewCol(12))

	m.AddRow(12,
		col.New(6).Add(
			text.New("Student Code: "+rc.StudentCode, props.Text{Size: 9, Align: align.Left}),
			text.New("Name: "+rc.StudentName, props.Text{Size: 9, Top: 5, Align: align.Left}),
		),
		col.New(6).Add(
			text.New("Receipt No.: "+rc.Number, props.Text{Size: 9, Align: align.Right}),
			text.New("Date: "+rc.Date.Format("02-01-2006"), props.Text{Size: 9, Top: 5, Align: align.Right}),
		),
	)
	m.AddRow(6,
		col.New(6).Add(
			text.New("Course: "+rc.Course, props.Text{Size: 9, Align: align.Left}),
		),
		col.New(6).Add(
			text.New("Paid Upto Level: "+rc.PaidUpto.String(), props.Text{Size: 9, Align: align.Right}),
		),
	)

	m.AddRow(2, line.NewCol(12))
	r.addLines(m, rc.Breakdown)
	m.AddRow(2, line.NewCol(12))

	m.AddRow(7,
		col.New(9).Add(
			text.New("Total", props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left}),
		),
		col.New(3).Add(
			text.New(rc.Breakdown.DisplayGrandTotal(), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
	m.AddRow(6,
		col.New(12).Add(
			text.New("Amount in words: "+rc.Breakdown.GrandTotalWords+" ONLY", props.Text{Size: 8, Align: align.Left}),
		),
	)
	m.AddRow(6,
		col.New(6).Add(
			text.New("Payment Mode: "+rc.PaymentMode, props.Text{Size: 8, Align: align.Left}),
		),
		col.New(6).Add(
			text.New("Authorised Signatory", props.Text{Size: 8, Style: fontstyle.Italic, Align: align.Right}),
		),
	)
}

func (r *PDFRenderer) addLines(m core.Maroto, b feecalc.Breakdown) {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}
	headerRight := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	m.AddRow(6,
		col.New(6).Add(text.New("Description", header)),
		col.New(3).Add(text.New("Rate", headerRight)),
		col.New(3).Add(text.New("Amount", headerRight)),
	)

	for _, l := range b.Lines {
		m.AddRow(5,
			col.New(6).Add(text.New(l.Label, props.Text{Size: 9, Align: align.Left})),
			col.New(3),
			col.New(3).Add(text.New(feecalc.Display(l.Base), props.Text{Size: 9, Align: align.Right})),
		)
		for _, c := range l.Components {
			m.AddRow(5,
				col.New(6).Add(text.New("  "+c.Label, props.Text{Size: 8, Align: align.Left})),
				col.New(3).Add(text.New(RatePercent(c.Rate), props.Text{Size: 8, Align: align.Right})),
				col.New(3).Add(text.New(feecalc.Display(c.Amount), props.Text{Size: 8, Align: align.Right})),
			)
		}
	}
}
