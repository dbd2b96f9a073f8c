package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
)

type accountResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	CpfCnpj  string `json:"cpfCnpj"`
	WalletID string `json:"walletId"`
}

type splitDTO struct {
	WalletID   string           `json:"walletId"`
	FixedValue *decimal.Decimal `json:"fixedValue,omitempty"`
}

type paymentDTO struct {
	ID                string          `json:"id"`
	Value             decimal.Decimal `json:"value"`
	Description       string          `json:"description"`
	DueDate           string          `json:"dueDate"`
	Status            string          `json:"status"`
	DateCreated       string          `json:"dateCreated"`
	BillingType       string          `json:"billingType"`
	PaymentDate       *string         `json:"paymentDate"`
	ExternalReference string          `json:"externalReference"`
	Split             []splitDTO      `json:"split"`
}

type paymentListResponse struct {
	Data       []paymentDTO `json:"data"`
	HasMore    bool         `json:"hasMore"`
	TotalCount int          `json:"totalCount"`
}

type splitRequest struct {
	WalletID   string      `json:"walletId"`
	FixedValue json.Number `json:"fixedValue"`
}

type createPaymentRequest struct {
	Customer          string         `json:"customer"`
	BillingType       string         `json:"billingType"`
	Value             json.Number    `json:"value"`
	DueDate           string         `json:"dueDate"`
	Description       string         `json:"description"`
	ExternalReference string         `json:"externalReference"`
	Split             []splitRequest `json:"split"`
}

func newPaymentRequest(req *domain.PaymentRequest) createPaymentRequest {
	out := createPaymentRequest{
		Customer:          req.CustomerID,
		BillingType:       string(req.BillingType),
		Value:             json.Number(req.Value.StringFixed(2)),
		DueDate:           req.DueDate.Format(domain.DateLayout),
		Description:       req.Description,
		ExternalReference: req.ExternalReference,
		Split:             make([]splitRequest, 0, len(req.Split)),
	}
	for _, s := range req.Split {
		out.Split = append(out.Split, splitRequest{WalletID: s.WalletID, FixedValue: json.Number(s.FixedValue.StringFixed(2))})
	}
	return out
}

func (p paymentDTO) toDomain() (domain.ProviderPayment, error) {
	created, err := parseProviderTime(p.DateCreated)
	if err != nil || created == nil {
		return domain.ProviderPayment{}, fmt.Errorf("invalid dateCreated %q", p.DateCreated)
	}
	due, err := parseProviderTime(p.DueDate)
	if err != nil {
		return domain.ProviderPayment{}, fmt.Errorf("invalid dueDate %q", p.DueDate)
	}
	var paid *time.Time
	if p.PaymentDate != nil {
		if paid, err = parseProviderTime(*p.PaymentDate); err != nil {
			return domain.ProviderPayment{}, fmt.Errorf("invalid paymentDate %q", *p.PaymentDate)
		}
	}

	out := domain.ProviderPayment{
		ID:                p.ID,
		Value:             p.Value,
		Description:       p.Description,
		Status:            p.Status,
		DateCreated:       *created,
		DueDate:           due,
		BillingType:       p.BillingType,
		PaymentDate:       paid,
		ExternalReference: p.ExternalReference,
		Split:             make([]domain.ProviderSplit, 0, len(p.Split)),
	}
	for _, s := range p.Split {
		ps := domain.ProviderSplit{WalletID: s.WalletID}
		if s.FixedValue != nil {
			ps.FixedValue = *s.FixedValue
		}
		out.Split = append(out.Split, ps)
	}
	return out, nil
}

// parseProviderTime accepts calendar dates and RFC 3339 timestamps. Empty input yields nil.
func parseProviderTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{domain.DateLayout, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unsupported time format %q", raw)
}
