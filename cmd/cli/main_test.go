package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportFixture = `{
  "account": {"id": "acc-1", "name": "Studio One"},
  "period": {"startDate": "2024-01-01", "endDate": "2024-01-31"},
  "filters": {"chargeType": "all", "status": null},
  "summary": {"totalReceived": 150.00, "totalPending": 0.00, "totalOverdue": 0.00, "totalRefunded": 0.00, "totalTransactions": 1},
  "transactions": [{
    "id": "pay_1", "value": 150.00, "description": "Monthly plan", "dueDate": "2024-01-10",
    "status": "RECEIVED", "dateCreated": "2024-01-05T10:00:00Z", "billingType": "PIX",
    "paymentDate": "2024-01-06", "chargeType": "monthly",
    "customer": {"name": "Jane Doe", "email": "jane@example.com", "cpf": "", "birthdate": ""}
  }]
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd(viper.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestReportAccount_Table(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reportFixture))
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "report", "account", "acc-1", "--start", "2024-01-01", "--status", "RECEIVED")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/reports/accounts/acc-1", gotPath)
	assert.Equal(t, "startDate=2024-01-01&status=RECEIVED", gotQuery)
	assert.Contains(t, out, "Account: Studio One (acc-1)")
	assert.Contains(t, out, "Period:  2024-01-01 .. 2024-01-31")
	assert.Contains(t, out, "Received: 150.00")
	assert.Contains(t, out, "pay_1")
	assert.Contains(t, out, "Jane Doe")
}

func TestReportConsolidated_JSON(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(reportFixture))
	}))
	defer srv.Close()

	out, err := execute(t, "--url", srv.URL, "report", "consolidated", "-o", "json")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/reports/consolidated", gotPath)
	assert.JSONEq(t, reportFixture, out)
}

func TestReportAccount_Export(t *testing.T) {
	var gotPath, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFormat = r.URL.Query().Get("format")
		_, _ = w.Write([]byte("%PDF-1.3 fake"))
	}))
	defer srv.Close()

	file := filepath.Join(t.TempDir(), "out.pdf")
	out, err := execute(t, "--url", srv.URL, "report", "account", "acc-1", "-o", "pdf", "--file", file)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/reports/accounts/acc-1/export", gotPath)
	assert.Equal(t, "pdf", gotFormat)
	assert.Contains(t, out, "wrote "+file)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 fake", string(data))
}

func TestReport_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"account not found","message":"acc-9"}`))
	}))
	defer srv.Close()

	_, err := execute(t, "--url", srv.URL, "report", "account", "acc-9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "account not found")
}

func TestReport_UnknownOutput(t *testing.T) {
	_, err := execute(t, "report", "consolidated", "-o", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown output "csv"`)
}

func TestSplit(t *testing.T) {
	out, err := execute(t, "split", "--wallet", "wallet-1", "--value", "100")
	require.NoError(t, err)
	assert.JSONEq(t, `{"walletId":"wallet-1","percentage":20,"fixedValue":20.00}`, out)

	out, err = execute(t, "split", "--wallet", "wallet-1", "--value", "33.33", "--percentage", "15")
	require.NoError(t, err)
	assert.JSONEq(t, `{"walletId":"wallet-1","percentage":15,"fixedValue":5.00}`, out)
}

func TestSplit_InvalidInput(t *testing.T) {
	_, err := execute(t, "split", "--wallet", "wallet-1", "--value", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --value")

	_, err = execute(t, "split", "--value", "100")
	require.Error(t, err)
}

func TestMigrate_RequiresDatabaseURL(t *testing.T) {
	_, err := execute(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPLITLEDGER_DATABASE_URL")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
