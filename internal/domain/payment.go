package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderSplit is one split entry attached to a provider payment.
type ProviderSplit struct {
	WalletID   string
	FixedValue decimal.Decimal
}

// ProviderPayment is a payment as reported by the remote provider.
type ProviderPayment struct {
	ID                string
	Value             decimal.Decimal
	Description       string
	Status            string // raw provider status
	DateCreated       time.Time
	DueDate           *time.Time
	BillingType       string
	PaymentDate       *time.Time
	ExternalReference string
	Split             []ProviderSplit
}

// PaymentPage is one bounded page of provider payments.
type PaymentPage struct {
	Data    []ProviderPayment
	HasMore bool
}

var providerStatuses = map[string]TransactionStatus{
	"RECEIVED":               StatusReceived,
	"CONFIRMED":              StatusReceived,
	"RECEIVED_IN_CASH":       StatusReceived,
	"PENDING":                StatusPending,
	"AWAITING_RISK_ANALYSIS": StatusPending,
	"AUTHORIZED":             StatusPending,
	"OVERDUE":                StatusOverdue,
	"REFUNDED":               StatusRefunded,
	"REFUND_REQUESTED":       StatusRefunded,
	"REFUND_IN_PROGRESS":     StatusRefunded,
}

// NormalizeProviderStatus maps a provider status onto a ledger status.
// Unknown statuses map to PENDING and report ok=false.
func NormalizeProviderStatus(raw string) (status TransactionStatus, ok bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if s, found := providerStatuses[raw]; found {
		return s, true
	}
	if strings.HasPrefix(raw, "CHARGEBACK_") {
		return StatusRefunded, true
	}
	return StatusPending, false
}

// SplitOwner returns the account owning the first split wallet, in split order, found in owners.
// owners maps wallet ids to account ids.
func (p *ProviderPayment) SplitOwner(owners map[string]string) (string, bool) {
	for _, s := range p.Split {
		if s.WalletID == "" {
			continue
		}
		if accountID, ok := owners[s.WalletID]; ok {
			return accountID, true
		}
	}
	return "", false
}

// ToTransaction converts the payment into a ledger-shaped transaction owned by accountID.
// Values are stored as absolute amounts.
func (p *ProviderPayment) ToTransaction(accountID string) Transaction {
	status, _ := NormalizeProviderStatus(p.Status)

	return Transaction{
		ID:          p.ID,
		AccountID:   accountID,
		Value:       p.Value.Abs(),
		Description: p.Description,
		Status:      status,
		CreatedAt:   p.DateCreated,
		DueDate:     p.DueDate,
		BillingType: p.BillingType,
		PaymentDate: p.PaymentDate,
	}
}
