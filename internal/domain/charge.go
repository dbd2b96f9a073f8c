package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BillingType is how the customer pays a charge.
type BillingType string

const (
	BillingBoleto     BillingType = "BOLETO"
	BillingCreditCard BillingType = "CREDIT_CARD"
	BillingPix        BillingType = "PIX"
	BillingUndefined  BillingType = "UNDEFINED"
)

var validBillingTypes = map[BillingType]bool{
	BillingBoleto:     true,
	BillingCreditCard: true,
	BillingPix:        true,
	BillingUndefined:  true,
}

// IsValid checks if the billing type is accepted by the provider.
func (b BillingType) IsValid() bool {
	return validBillingTypes[b]
}

// ChargeRequest asks for a provider payment whose split routes part of the value to an account.
type ChargeRequest struct {
	AccountID   string
	CustomerID  string // provider customer id
	Value       decimal.Decimal
	Description string
	BillingType BillingType
	DueDate     time.Time
	Percentage  *decimal.Decimal // nil uses the configured default
}

// Validate checks the request before any split math or provider call.
func (r *ChargeRequest) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidCharge)
	}
	if strings.TrimSpace(r.CustomerID) == "" {
		return fmt.Errorf("%w: customer id is required", ErrInvalidCharge)
	}
	if err := ValidateAmount(r.Value); err != nil {
		return err
	}
	if err := ValidateDescription(r.Description); err != nil {
		return err
	}
	if !r.BillingType.IsValid() {
		return fmt.Errorf("%w: unsupported billing type %q", ErrInvalidCharge, r.BillingType)
	}
	if r.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrInvalidCharge)
	}
	return nil
}

// PaymentRequest is the body sent to the provider when creating a payment.
type PaymentRequest struct {
	CustomerID        string
	BillingType       BillingType
	Value             decimal.Decimal
	DueDate           time.Time
	Description       string
	ExternalReference string
	Split             []SplitRule
}

// Charge is a created provider payment together with the split it carries.
type Charge struct {
	ID                string
	AccountID         string
	Status            TransactionStatus
	Value             decimal.Decimal
	BillingType       BillingType
	DueDate           time.Time
	Description       string
	ExternalReference string
	Split             SplitRule
	CreatedAt         time.Time
}
