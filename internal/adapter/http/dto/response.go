package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
)

// Money renders a decimal as a JSON number with two decimals.
func Money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// ReportResponse is the financial report payload.
type ReportResponse struct {
	Account      ReportAccountResponse `json:"account"`
	Period       PeriodResponse        `json:"period"`
	Filters      FiltersResponse       `json:"filters"`
	Summary      SummaryResponse       `json:"summary"`
	Transactions []TransactionResponse `json:"transactions"`
}

type ReportAccountResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PeriodResponse struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

type FiltersResponse struct {
	ChargeType string  `json:"chargeType"`
	Status     *string `json:"status"`
}

type SummaryResponse struct {
	TotalReceived     json.Number `json:"totalReceived"`
	TotalPending      json.Number `json:"totalPending"`
	TotalOverdue      json.Number `json:"totalOverdue"`
	TotalRefunded     json.Number `json:"totalRefunded"`
	TotalTransactions int         `json:"totalTransactions"`
	TotalAccounts     *int        `json:"totalAccounts,omitempty"`
}

type CustomerResponse struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Cpf       string `json:"cpf"`
	Birthdate string `json:"birthdate"`
}

// TransactionResponse is one enriched transaction.
// accountId and accountName are only set in consolidated reports.
type TransactionResponse struct {
	ID          string           `json:"id"`
	AccountID   string           `json:"accountId,omitempty"`
	AccountName string           `json:"accountName,omitempty"`
	Value       json.Number      `json:"value"`
	Description string           `json:"description"`
	DueDate     *string          `json:"dueDate"`
	Status      string           `json:"status"`
	DateCreated time.Time        `json:"dateCreated"`
	BillingType string           `json:"billingType"`
	PaymentDate *string          `json:"paymentDate"`
	ChargeType  string           `json:"chargeType"`
	Customer    CustomerResponse `json:"customer"`
}

// ReportFromDomain converts a domain report to its response.
func ReportFromDomain(r *domain.Report) *ReportResponse {
	resp := &ReportResponse{
		Account: ReportAccountResponse{ID: r.Account.ID, Name: r.Account.Name},
		Period: PeriodResponse{
			StartDate: optionalString(r.Period.StartDate()),
			EndDate:   optionalString(r.Period.EndDate()),
		},
		Filters: FiltersResponse{ChargeType: "all"},
		Summary: SummaryResponse{
			TotalReceived:     Money(r.Summary.TotalReceived),
			TotalPending:      Money(r.Summary.TotalPending),
			TotalOverdue:      Money(r.Summary.TotalOverdue),
			TotalRefunded:     Money(r.Summary.TotalRefunded),
			TotalTransactions: r.Summary.TotalTransactions,
			TotalAccounts:     r.Summary.TotalAccounts,
		},
		Transactions: make([]TransactionResponse, len(r.Transactions)),
	}

	if r.Filters.ChargeType != nil {
		resp.Filters.ChargeType = string(*r.Filters.ChargeType)
	}
	if r.Filters.Status != nil {
		s := string(*r.Filters.Status)
		resp.Filters.Status = &s
	}

	for i := range r.Transactions {
		resp.Transactions[i] = transactionFromDomain(&r.Transactions[i], r.Consolidated)
	}

	return resp
}

func transactionFromDomain(tx *domain.EnrichedTransaction, consolidated bool) TransactionResponse {
	resp := TransactionResponse{
		ID:          tx.ID,
		Value:       Money(tx.Value),
		Description: tx.Description,
		DueDate:     optionalDate(tx.DueDate),
		Status:      string(tx.Status),
		DateCreated: tx.CreatedAt.UTC(),
		BillingType: tx.BillingType,
		PaymentDate: optionalDate(tx.PaymentDate),
		ChargeType:  string(tx.ChargeType),
		Customer: CustomerResponse{
			Name:      tx.Customer.Name,
			Email:     tx.Customer.Email,
			Cpf:       tx.Customer.Cpf,
			Birthdate: tx.Customer.Birthdate,
		},
	}

	if consolidated {
		resp.AccountID = tx.AccountID
		resp.AccountName = tx.AccountName
	}

	return resp
}

// SplitResponse is a computed split rule.
type SplitResponse struct {
	WalletID   string      `json:"walletId"`
	Percentage json.Number `json:"percentage"`
	FixedValue json.Number `json:"fixedValue"`
}

// SplitFromDomain converts a split rule to its response.
func SplitFromDomain(s domain.SplitRule) SplitResponse {
	return SplitResponse{
		WalletID:   s.WalletID,
		Percentage: json.Number(s.Percentage.String()),
		FixedValue: Money(s.FixedValue),
	}
}

// ChargeResponse represents a created charge.
type ChargeResponse struct {
	ID                string        `json:"id"`
	AccountID         string        `json:"accountId"`
	Status            string        `json:"status"`
	Value             json.Number   `json:"value"`
	BillingType       string        `json:"billingType"`
	DueDate           string        `json:"dueDate"`
	Description       string        `json:"description"`
	ExternalReference string        `json:"externalReference"`
	Split             SplitResponse `json:"split"`
	DateCreated       time.Time     `json:"dateCreated"`
}

// ChargeFromDomain converts a domain charge to its response.
func ChargeFromDomain(c *domain.Charge) *ChargeResponse {
	return &ChargeResponse{
		ID:                c.ID,
		AccountID:         c.AccountID,
		Status:            string(c.Status),
		Value:             Money(c.Value),
		BillingType:       string(c.BillingType),
		DueDate:           c.DueDate.Format(domain.DateLayout),
		Description:       c.Description,
		ExternalReference: c.ExternalReference,
		Split:             SplitFromDomain(c.Split),
		DateCreated:       c.CreatedAt.UTC(),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}
