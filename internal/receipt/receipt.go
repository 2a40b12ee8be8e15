// Package receipt renders processed sales as printable PDF receipts.
package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/vbonduro/stock2profit/internal/domain"
	"github.com/vbonduro/stock2profit/internal/money"
)

const MimeType = "application/pdf"

// The core PDF fonts are cp1252; symbols outside it are spelled out.
var pdfSymbols = map[string]string{
	"₹": "Rs.",
}

var columns = []struct {
	title string
	width float64
	align string
}{
	{"#", 10, "C"},
	{"Product", 80, "L"},
	{"Qty", 20, "R"},
	{"Rate", 35, "R"},
	{"Amount", 35, "R"},
}

// Render lays out tx on a single A4 page and returns the PDF bytes.
func Render(tx *domain.Transaction, currency string) ([]byte, error) {
	if tx == nil {
		return nil, errors.New("no transaction to render")
	}
	if sym, ok := pdfSymbols[currency]; ok {
		currency = sym
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Receipt #%d", tx.ID), true)
	pdf.SetCreator("Stock2Profit", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Stock2Profit")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Receipt #%06d", tx.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Date: "+tx.CreatedAt.Format("02 Jan 2006 15:04"))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr("Customer: "+tx.Customer))
	pdf.Ln(6)
	if tx.Email != "" {
		pdf.Cell(0, 6, tr("Email: "+tx.Email))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(235, 235, 235)
	for _, c := range columns {
		pdf.CellFormat(c.width, 8, c.title, "1", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for _, l := range tx.Lines {
		cells := []string{
			strconv.Itoa(l.Position),
			tr(l.Product),
			strconv.Itoa(l.Quantity),
			money.Format(currency, l.Rate),
			money.Format(currency, l.Amount),
		}
		for i, c := range columns {
			pdf.CellFormat(c.width, 7, cells[i], "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 12)
	labelWidth := columns[0].width + columns[1].width + columns[2].width + columns[3].width
	pdf.CellFormat(labelWidth, 9, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(columns[4].width, 9, money.Format(currency, tx.Total), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}
