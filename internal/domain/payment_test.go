package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNormalizeProviderStatus(t *testing.T) {
	tests := []struct {
		raw    string
		want   TransactionStatus
		wantOK bool
	}{
		{"RECEIVED", StatusReceived, true},
		{"CONFIRMED", StatusReceived, true},
		{"received_in_cash", StatusReceived, true},
		{"PENDING", StatusPending, true},
		{"AWAITING_RISK_ANALYSIS", StatusPending, true},
		{"OVERDUE", StatusOverdue, true},
		{"REFUNDED", StatusRefunded, true},
		{"REFUND_IN_PROGRESS", StatusRefunded, true},
		{"CHARGEBACK_REQUESTED", StatusRefunded, true},
		{"SOMETHING_NEW", StatusPending, false},
		{"", StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := NormalizeProviderStatus(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeProviderStatus(%q) = (%s, %v), want (%s, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProviderPayment_SplitOwner(t *testing.T) {
	p := &ProviderPayment{
		ID: "pay_1",
		Split: []ProviderSplit{
			{WalletID: "", FixedValue: decimal.NewFromInt(1)},
			{WalletID: "wallet-a", FixedValue: decimal.NewFromInt(5)},
			{WalletID: "wallet-b", FixedValue: decimal.NewFromInt(7)},
		},
	}

	tests := []struct {
		name   string
		owners map[string]string
		want   string
		wantOK bool
	}{
		{"single owned wallet", map[string]string{"wallet-b": "acc-b"}, "acc-b", true},
		{"first wallet in split order wins", map[string]string{"wallet-b": "acc-b", "wallet-a": "acc-a"}, "acc-a", true},
		{"no owned wallet", map[string]string{"wallet-c": "acc-c"}, "", false},
		{"empty wallet never matches", map[string]string{"": "acc-x"}, "", false},
		{"no owners", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.SplitOwner(tt.owners)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("SplitOwner() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProviderPayment_ToTransaction(t *testing.T) {
	created := time.Date(2024, 4, 2, 9, 30, 0, 0, time.UTC)
	p := &ProviderPayment{
		ID:          "pay_9",
		Value:       decimal.RequireFromString("-49.90"),
		Description: "Monthly plan",
		Status:      "CONFIRMED",
		DateCreated: created,
		BillingType: "PIX",
	}

	tx := p.ToTransaction("acc-1")

	if tx.AccountID != "acc-1" {
		t.Errorf("expected account acc-1, got %s", tx.AccountID)
	}
	if !tx.Value.Equal(decimal.RequireFromString("49.90")) {
		t.Errorf("expected absolute value 49.90, got %s", tx.Value)
	}
	if tx.Status != StatusReceived {
		t.Errorf("expected RECEIVED, got %s", tx.Status)
	}
	if !tx.CreatedAt.Equal(created) {
		t.Errorf("expected created %v, got %v", created, tx.CreatedAt)
	}
}
