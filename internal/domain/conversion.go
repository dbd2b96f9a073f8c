package domain

import (
	"fmt"
	"strings"
	"time"
)

// ChargeType is the kind of flow that produced a payment.
type ChargeType string

const (
	ChargeTypeSingle       ChargeType = "single"
	ChargeTypeMonthly      ChargeType = "monthly"
	ChargeTypePixAuto      ChargeType = "pix_auto"
	ChargeTypeLinkCadastro ChargeType = "link_cadastro"

	// DefaultChargeType applies when no conversion record resolves.
	DefaultChargeType = ChargeTypeMonthly
)

var validChargeTypes = map[ChargeType]bool{
	ChargeTypeSingle:       true,
	ChargeTypeMonthly:      true,
	ChargeTypePixAuto:      true,
	ChargeTypeLinkCadastro: true,
}

// IsValid checks if the charge type is known.
func (c ChargeType) IsValid() bool {
	return validChargeTypes[c]
}

// ParseChargeType parses a charge type filter. Empty input and "all" mean no filter.
func ParseChargeType(raw string) (*ChargeType, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "all" {
		return nil, nil
	}

	ct := ChargeType(raw)
	if !ct.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidChargeType, raw)
	}

	return &ct, nil
}

// Customer is the person who completed a signup or payment flow.
type Customer struct {
	Name      string
	Email     string
	Cpf       string
	Birthdate string
}

// UnknownValue fills customer fields that could not be resolved.
const UnknownValue = "unknown"

// UnknownCustomer is the single sentinel used for unresolved identities.
var UnknownCustomer = Customer{
	Name:      UnknownValue,
	Email:     UnknownValue,
	Cpf:       UnknownValue,
	Birthdate: UnknownValue,
}

// ConversionRecord links a charge or subscription id to its customer and charge type.
type ConversionRecord struct {
	SubscriptionID string
	LinkID         string
	LinkAccountID  string
	ChargeType     ChargeType
	Customer       Customer
	ConvertedAt    time.Time
}

// Identity is the resolved customer and charge type for a payment.
type Identity struct {
	Customer   Customer
	ChargeType ChargeType
}

// UnknownIdentity is returned when no conversion record matches.
func UnknownIdentity() Identity {
	return Identity{Customer: UnknownCustomer, ChargeType: DefaultChargeType}
}

// IdentityFromConversion builds an identity, filling blank customer fields with the sentinel.
func IdentityFromConversion(rec *ConversionRecord) Identity {
	c := rec.Customer
	c.Name = orUnknown(c.Name)
	c.Email = orUnknown(c.Email)
	c.Cpf = orUnknown(c.Cpf)
	c.Birthdate = orUnknown(c.Birthdate)

	ct := rec.ChargeType
	if !ct.IsValid() {
		ct = DefaultChargeType
	}

	return Identity{Customer: c, ChargeType: ct}
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return UnknownValue
	}
	return v
}
