package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/domain"
)

type reportFlags struct {
	startDate  string
	endDate    string
	status     string
	chargeType string
	output     string
	file       string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.startDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.endDate, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.status, "status", "", "Status filter (RECEIVED, PENDING, OVERDUE, REFUNDED)")
	cmd.Flags().StringVar(&f.chargeType, "charge-type", "", "Charge type filter (single, monthly, pix_auto, link_cadastro)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "table", "Output: table, json, xlsx or pdf")
	cmd.Flags().StringVar(&f.file, "file", "", "Write xlsx/pdf exports to this path")
}

func (f *reportFlags) query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("startDate", f.startDate)
	set("endDate", f.endDate)
	set("status", f.status)
	set("chargeType", f.chargeType)
	return q
}

func reportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports",
	}

	var accountFlags reportFlags
	accountCmd := &cobra.Command{
		Use:   "account <id>",
		Short: "Report of one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, v, args[0], &accountFlags)
		},
	}
	accountFlags.register(accountCmd)

	var consolidatedFlags reportFlags
	consolidatedCmd := &cobra.Command{
		Use:   "consolidated",
		Short: "Report across all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, v, domain.AllAccountsID, &consolidatedFlags)
		},
	}
	consolidatedFlags.register(consolidatedCmd)

	cmd.AddCommand(accountCmd, consolidatedCmd)
	return cmd
}

func runReport(cmd *cobra.Command, v *viper.Viper, accountID string, f *reportFlags) error {
	client := &http.Client{Timeout: v.GetDuration("timeout")}
	out := cmd.OutOrStdout()
	q := f.query()

	var endpoint string
	switch f.output {
	case "table", "json":
		if accountID == domain.AllAccountsID {
			endpoint = "/api/v1/reports/consolidated"
		} else {
			endpoint = "/api/v1/reports/accounts/" + url.PathEscape(accountID)
		}
	case "xlsx", "pdf":
		endpoint = "/api/v1/reports/accounts/" + url.PathEscape(accountID) + "/export"
		q.Set("format", f.output)
	default:
		return fmt.Errorf("unknown output %q", f.output)
	}

	body, err := get(client, v.GetString("url"), endpoint, q)
	if err != nil {
		return err
	}

	switch f.output {
	case "json":
		_, err = out.Write(body)
		return err
	case "table":
		var report dto.ReportResponse
		if err := json.Unmarshal(body, &report); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		printReport(out, &report)
		return nil
	default:
		file := f.file
		if file == "" {
			file = "report-" + strings.ToLower(accountID) + "." + f.output
		}
		if err := os.WriteFile(file, body, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s (%d bytes)\n", file, len(body))
		return nil
	}
}

func get(client *http.Client, baseURL, endpoint string, q url.Values) ([]byte, error) {
	u := baseURL + endpoint
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("request failed (status %d): %s: %s", resp.StatusCode, apiErr.Error, apiErr.Message)
		}
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	return body, nil
}

func printReport(out io.Writer, r *dto.ReportResponse) {
	fmt.Fprintf(out, "Account: %s (%s)\n", r.Account.Name, r.Account.ID)
	fmt.Fprintf(out, "Period:  %s .. %s\n", deref(r.Period.StartDate), deref(r.Period.EndDate))
	fmt.Fprintf(out, "Received: %s  Pending: %s  Overdue: %s  Refunded: %s\n",
		r.Summary.TotalReceived, r.Summary.TotalPending, r.Summary.TotalOverdue, r.Summary.TotalRefunded)
	fmt.Fprintf(out, "Transactions: %d", r.Summary.TotalTransactions)
	if r.Summary.TotalAccounts != nil {
		fmt.Fprintf(out, "  Accounts: %d", *r.Summary.TotalAccounts)
	}
	fmt.Fprintln(out)

	if len(r.Transactions) == 0 {
		return
	}

	fmt.Fprintln(out)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tACCOUNT\tCREATED\tSTATUS\tTYPE\tCUSTOMER\tVALUE")
	for _, tx := range r.Transactions {
		account := tx.AccountName
		if account == "" {
			account = r.Account.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID,
			truncate(account, 24),
			tx.DateCreated.Format(domain.DateLayout),
			tx.Status,
			tx.ChargeType,
			truncate(tx.Customer.Name, 24),
			tx.Value,
		)
	}
	_ = tw.Flush()
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
