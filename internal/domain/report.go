package domain

import "github.com/shopspring/decimal"

// AllAccountsName labels the consolidated report's account.
const AllAccountsName = "All accounts"

// Summary holds per-status totals over a filtered set of transactions.
type Summary struct {
	TotalReceived     decimal.Decimal
	TotalPending      decimal.Decimal
	TotalOverdue      decimal.Decimal
	TotalRefunded     decimal.Decimal
	TotalTransactions int
	TotalAccounts     *int // consolidated reports only
}

// NewSummary returns a summary with zeroed totals.
func NewSummary() Summary {
	return Summary{
		TotalReceived: decimal.Zero,
		TotalPending:  decimal.Zero,
		TotalOverdue:  decimal.Zero,
		TotalRefunded: decimal.Zero,
	}
}

// Add folds one transaction into the totals.
func (s *Summary) Add(tx *Transaction) {
	switch tx.Status {
	case StatusReceived:
		s.TotalReceived = s.TotalReceived.Add(tx.Value)
	case StatusPending:
		s.TotalPending = s.TotalPending.Add(tx.Value)
	case StatusOverdue:
		s.TotalOverdue = s.TotalOverdue.Add(tx.Value)
	case StatusRefunded:
		s.TotalRefunded = s.TotalRefunded.Add(tx.Value)
	}
	s.TotalTransactions++
}

// Total is the sum of the four status buckets.
func (s *Summary) Total() decimal.Decimal {
	return s.TotalReceived.Add(s.TotalPending).Add(s.TotalOverdue).Add(s.TotalRefunded)
}

// ReportAccount identifies whose report this is.
type ReportAccount struct {
	ID   string
	Name string
}

// ReportFilters echoes the filters applied to a report.
type ReportFilters struct {
	ChargeType *ChargeType
	Status     *TransactionStatus
}

// Report is the single-account or consolidated financial report.
type Report struct {
	Account      ReportAccount
	Consolidated bool
	Period       DateRange
	Filters      ReportFilters
	Summary      Summary
	Transactions []EnrichedTransaction
}
