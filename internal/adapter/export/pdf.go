package export

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"github.com/iho/splitledger/internal/domain"
)

// column widths in mm, matching transactionHeader
var pdfColumns = []float64{30, 30, 20, 20, 20, 20, 22, 40, 45, 22}

// PDFExporter renders a landscape A4 statement.
type PDFExporter struct{}

func (PDFExporter) ContentType() string { return "application/pdf" }

func (PDFExporter) Extension() string { return string(FormatPDF) }

// Render implements Exporter.
func (PDFExporter) Render(report *domain.Report) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Financial report")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	for _, r := range summaryRows(report) {
		pdf.CellFormat(45, 6, r.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(r.value), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 8)
	for i, h := range transactionHeader {
		pdf.CellFormat(pdfColumns[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for i := range report.Transactions {
		cells := transactionCells(&report.Transactions[i])
		for col, v := range cells {
			align := "L"
			if col == len(cells)-1 {
				align = "R"
			}
			pdf.CellFormat(pdfColumns[col], 6, tr(truncate(pdf, v, pdfColumns[col])), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// truncate shortens s to fit a cell of width w.
func truncate(pdf *gofpdf.Fpdf, s string, w float64) string {
	const pad = 2
	if pdf.GetStringWidth(s) <= w-pad {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > w-pad {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
