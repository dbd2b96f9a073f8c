package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the ledger status of a payment.
type TransactionStatus string

const (
	StatusReceived TransactionStatus = "RECEIVED"
	StatusPending  TransactionStatus = "PENDING"
	StatusOverdue  TransactionStatus = "OVERDUE"
	StatusRefunded TransactionStatus = "REFUNDED"
)

var validStatuses = map[TransactionStatus]bool{
	StatusReceived: true,
	StatusPending:  true,
	StatusOverdue:  true,
	StatusRefunded: true,
}

// IsValid checks if the status is one of the four ledger statuses.
func (s TransactionStatus) IsValid() bool {
	return validStatuses[s]
}

// ParseStatus parses a status filter. Empty input means no filter.
func ParseStatus(raw string) (*TransactionStatus, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return nil, nil
	}

	status := TransactionStatus(raw)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, raw)
	}

	return &status, nil
}

// Transaction is a payment row in the local ledger.
type Transaction struct {
	ID          string
	AccountID   string
	Value       decimal.Decimal
	Description string
	Status      TransactionStatus
	CreatedAt   time.Time
	DueDate     *time.Time
	BillingType string
	PaymentDate *time.Time
}

// ByNewest orders transactions newest first, breaking ties by id for stable output.
func ByNewest(a, b *Transaction) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
