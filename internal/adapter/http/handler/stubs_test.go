package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

type stubReportService struct {
	accountFn      func(ctx context.Context, accountID string, input usecase.ReportInput) (*domain.Report, error)
	consolidatedFn func(ctx context.Context, input usecase.ReportInput) (*domain.Report, error)
}

func (s *stubReportService) AccountReport(ctx context.Context, accountID string, input usecase.ReportInput) (*domain.Report, error) {
	return s.accountFn(ctx, accountID, input)
}

func (s *stubReportService) ConsolidatedReport(ctx context.Context, input usecase.ReportInput) (*domain.Report, error) {
	return s.consolidatedFn(ctx, input)
}

type stubChargeService struct {
	previewFn func(walletID string, gross decimal.Decimal, percentage *decimal.Decimal) (domain.SplitRule, error)
	createFn  func(ctx context.Context, req domain.ChargeRequest) (*domain.Charge, error)
}

func (s *stubChargeService) PreviewSplit(walletID string, gross decimal.Decimal, percentage *decimal.Decimal) (domain.SplitRule, error) {
	if s.previewFn != nil {
		return s.previewFn(walletID, gross, percentage)
	}
	pct := decimal.NewFromInt(domain.DefaultSplitPercentage)
	if percentage != nil {
		pct = *percentage
	}
	return domain.ComputeNetSplit(walletID, gross, pct)
}

func (s *stubChargeService) CreateCharge(ctx context.Context, req domain.ChargeRequest) (*domain.Charge, error) {
	return s.createFn(ctx, req)
}

func newReportRouter(svc ReportService) *chi.Mux {
	h := NewReportHandler(svc, zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/reports/consolidated", h.Consolidated)
	r.Get("/reports/accounts/{id}", h.Account)
	r.Get("/reports/accounts/{id}/export", h.Export)
	return r
}

func sampleReport(accountID string) *domain.Report {
	return &domain.Report{
		Account: domain.ReportAccount{ID: accountID, Name: "Studio One"},
		Summary: domain.Summary{
			TotalReceived:     decimal.RequireFromString("80"),
			TotalPending:      decimal.Zero,
			TotalOverdue:      decimal.Zero,
			TotalRefunded:     decimal.Zero,
			TotalTransactions: 1,
		},
		Transactions: []domain.EnrichedTransaction{{
			Transaction: domain.Transaction{
				ID:        "pay_1",
				AccountID: accountID,
				Value:     decimal.RequireFromString("80"),
				Status:    domain.StatusReceived,
			},
			Customer:   domain.UnknownCustomer,
			ChargeType: domain.ChargeTypeMonthly,
		}},
	}
}
