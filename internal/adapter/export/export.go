// Package export renders financial reports as downloadable files.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iho/splitledger/internal/domain"
)

// Format is a supported export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ErrUnsupportedFormat is returned for unknown export formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Exporter renders a report into a file body.
type Exporter interface {
	ContentType() string
	Extension() string
	Render(report *domain.Report) ([]byte, error)
}

// ForFormat returns the exporter for a format name.
func ForFormat(raw string) (Exporter, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatXLSX, "":
		return XLSXExporter{}, nil
	case FormatPDF:
		return PDFExporter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// Filename builds the download name of a report export.
func Filename(report *domain.Report, e Exporter) string {
	period := "all-time"
	if s, en := report.Period.StartDate(), report.Period.EndDate(); s != "" || en != "" {
		period = strings.Trim(s+"_"+en, "_")
	}
	return fmt.Sprintf("report-%s-%s.%s", strings.ToLower(report.Account.ID), period, e.Extension())
}

type row struct {
	label string
	value string
}

func summaryRows(report *domain.Report) []row {
	s := report.Summary
	rows := []row{
		{"Account", report.Account.Name},
		{"Account ID", report.Account.ID},
		{"Start date", orDash(report.Period.StartDate())},
		{"End date", orDash(report.Period.EndDate())},
		{"Status filter", orDash(statusFilter(report.Filters.Status))},
		{"Charge type filter", orDash(chargeTypeFilter(report.Filters.ChargeType))},
		{"Total received", s.TotalReceived.StringFixed(2)},
		{"Total pending", s.TotalPending.StringFixed(2)},
		{"Total overdue", s.TotalOverdue.StringFixed(2)},
		{"Total refunded", s.TotalRefunded.StringFixed(2)},
		{"Total", s.Total().StringFixed(2)},
		{"Transactions", fmt.Sprint(s.TotalTransactions)},
	}
	if s.TotalAccounts != nil {
		rows = append(rows, row{"Accounts", fmt.Sprint(*s.TotalAccounts)})
	}
	return rows
}

var transactionHeader = []string{"ID", "Account", "Created", "Due", "Paid", "Status", "Charge type", "Customer", "Email", "Value"}

func transactionCells(tx *domain.EnrichedTransaction) []string {
	account := tx.AccountName
	if account == "" {
		account = tx.AccountID
	}
	return []string{
		tx.ID,
		account,
		tx.CreatedAt.Format(domain.DateLayout),
		formatDate(tx.DueDate),
		formatDate(tx.PaymentDate),
		string(tx.Status),
		string(tx.ChargeType),
		tx.Customer.Name,
		tx.Customer.Email,
		tx.Value.StringFixed(2),
	}
}

func statusFilter(s *domain.TransactionStatus) string {
	if s == nil {
		return ""
	}
	return string(*s)
}

func chargeTypeFilter(c *domain.ChargeType) string {
	if c == nil {
		return ""
	}
	return string(*c)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
