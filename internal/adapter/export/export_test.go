package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iho/splitledger/internal/domain"
)

func sampleReport(t *testing.T) *domain.Report {
	t.Helper()

	period, err := domain.ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	received := domain.StatusReceived
	due := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	accounts := 2

	return &domain.Report{
		Account:      domain.ReportAccount{ID: domain.AllAccountsID, Name: domain.AllAccountsName},
		Consolidated: true,
		Period:       period,
		Filters:      domain.ReportFilters{Status: &received},
		Summary: domain.Summary{
			TotalReceived:     decimal.RequireFromString("150.50"),
			TotalPending:      decimal.Zero,
			TotalOverdue:      decimal.Zero,
			TotalRefunded:     decimal.RequireFromString("9.50"),
			TotalTransactions: 2,
			TotalAccounts:     &accounts,
		},
		Transactions: []domain.EnrichedTransaction{
			{
				Transaction: domain.Transaction{
					ID:        "pay_1",
					AccountID: "acc-1",
					Value:     decimal.RequireFromString("100.50"),
					Status:    domain.StatusReceived,
					CreatedAt: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
					DueDate:   &due,
				},
				Customer:    domain.Customer{Name: "Maria Souza", Email: "maria@example.com"},
				ChargeType:  domain.ChargeTypeSingle,
				AccountName: "Studio One",
			},
			{
				Transaction: domain.Transaction{
					ID:        "pay_2",
					AccountID: "acc-2",
					Value:     decimal.RequireFromString("50"),
					Status:    domain.StatusReceived,
					CreatedAt: time.Date(2024, 1, 9, 12, 0, 0, 0, time.UTC),
				},
				Customer:   domain.UnknownCustomer,
				ChargeType: domain.ChargeTypeMonthly,
			},
		},
	}
}

func TestXLSXExporter_Render(t *testing.T) {
	body, err := XLSXExporter{}.Render(sampleReport(t))
	require.NoError(t, err)
	require.NotEmpty(t, body)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{summarySheet, transactionsSheet}, f.GetSheetList())

	name, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, domain.AllAccountsName, name)

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	totals := make(map[string]string)
	for _, r := range summary {
		if len(r) == 2 {
			totals[r[0]] = r[1]
		}
	}
	assert.Equal(t, "150.50", totals["Total received"])
	assert.Equal(t, "9.50", totals["Total refunded"])
	assert.Equal(t, "160.00", totals["Total"])

	rows, err := f.GetRows(transactionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, transactionHeader, rows[0])
	assert.Equal(t, "pay_1", rows[1][0])
	assert.Equal(t, "Studio One", rows[1][1])
	assert.Equal(t, "2024-01-20", rows[1][3])
	assert.Equal(t, "acc-2", rows[2][1], "account id stands in for a missing name")
}

func TestPDFExporter_Render(t *testing.T) {
	body, err := PDFExporter{}.Render(sampleReport(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestPDFExporter_EmptyReport(t *testing.T) {
	report := &domain.Report{
		Account: domain.ReportAccount{ID: "acc-1", Name: "Studio One"},
		Summary: domain.NewSummary(),
	}

	body, err := PDFExporter{}.Render(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestForFormat(t *testing.T) {
	e, err := ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", e.Extension())

	e, err = ForFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", e.ContentType())

	_, err = ForFormat("csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFilename(t *testing.T) {
	report := sampleReport(t)
	assert.Equal(t, "report-all_accounts-2024-01-01_2024-01-31.pdf", Filename(report, PDFExporter{}))

	report.Period = domain.DateRange{}
	assert.Equal(t, "report-all_accounts-all-time.xlsx", Filename(report, XLSXExporter{}))
}
