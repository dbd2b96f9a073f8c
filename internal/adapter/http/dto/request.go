package dto

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

// ReportQuery holds the query string filters of a report request.
type ReportQuery struct {
	StartDate  string
	EndDate    string
	Status     string
	ChargeType string
}

// ReportQueryFromURL reads the report filters from a query string.
func ReportQueryFromURL(v url.Values) ReportQuery {
	return ReportQuery{
		StartDate:  v.Get("startDate"),
		EndDate:    v.Get("endDate"),
		Status:     v.Get("status"),
		ChargeType: v.Get("chargeType"),
	}
}

// ToUseCaseInput validates the filters and converts them to use case input.
func (q ReportQuery) ToUseCaseInput() (usecase.ReportInput, error) {
	period, err := domain.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return usecase.ReportInput{}, err
	}

	status, err := domain.ParseStatus(q.Status)
	if err != nil {
		return usecase.ReportInput{}, err
	}

	chargeType, err := domain.ParseChargeType(q.ChargeType)
	if err != nil {
		return usecase.ReportInput{}, err
	}

	return usecase.ReportInput{Range: period, Status: status, ChargeType: chargeType}, nil
}

// SplitPreviewRequest asks for the split a gross value would carry.
type SplitPreviewRequest struct {
	WalletID   string           `json:"walletId" validate:"required,max=64"`
	Value      decimal.Decimal  `json:"value"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// Validate checks the request fields.
func (r *SplitPreviewRequest) Validate() error {
	return validateStruct(r)
}

// CreateChargeRequest represents a request to create a charge with split.
type CreateChargeRequest struct {
	AccountID   string           `json:"accountId"   validate:"required,max=64"`
	CustomerID  string           `json:"customerId"  validate:"required,max=64"`
	Value       decimal.Decimal  `json:"value"`
	Description string           `json:"description" validate:"required,max=500"`
	BillingType string           `json:"billingType" validate:"required"`
	DueDate     string           `json:"dueDate"     validate:"required,datetime=2006-01-02"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
}

// ToDomain converts the request to a domain charge request.
func (r *CreateChargeRequest) ToDomain() (domain.ChargeRequest, error) {
	if err := validateStruct(r); err != nil {
		return domain.ChargeRequest{}, fmt.Errorf("%w: %w", domain.ErrInvalidCharge, err)
	}

	dueDate, err := time.ParseInLocation(domain.DateLayout, strings.TrimSpace(r.DueDate), time.UTC)
	if err != nil {
		return domain.ChargeRequest{}, fmt.Errorf("%w: dueDate must be YYYY-MM-DD", domain.ErrInvalidCharge)
	}

	return domain.ChargeRequest{
		AccountID:   strings.TrimSpace(r.AccountID),
		CustomerID:  strings.TrimSpace(r.CustomerID),
		Value:       r.Value,
		Description: r.Description,
		BillingType: domain.BillingType(strings.ToUpper(strings.TrimSpace(r.BillingType))),
		DueDate:     dueDate,
		Percentage:  r.Percentage,
	}, nil
}
