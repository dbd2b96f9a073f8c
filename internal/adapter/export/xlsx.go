package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/iho/splitledger/internal/domain"
)

const (
	summarySheet      = "summary"
	transactionsSheet = "transactions"
)

// XLSXExporter renders a two-sheet workbook: summary and transactions.
type XLSXExporter struct{}

func (XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXExporter) Extension() string { return string(FormatXLSX) }

// Render implements Exporter.
func (XLSXExporter) Render(report *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(transactionsSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Financial report")
	for i, r := range summaryRows(report) {
		rowNum := i + 3
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", rowNum), r.label)
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", rowNum), r.value)
	}

	for i, h := range transactionHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(transactionsSheet, cell, h)
	}
	for i := range report.Transactions {
		tx := &report.Transactions[i]
		cells := transactionCells(tx)
		for col, v := range cells {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if col == len(cells)-1 {
				_ = f.SetCellValue(transactionsSheet, cell, tx.Value.InexactFloat64())
				continue
			}
			_ = f.SetCellValue(transactionsSheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
