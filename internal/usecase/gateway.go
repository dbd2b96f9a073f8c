package usecase

//go:generate mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks

import (
	"context"

	"github.com/iho/splitledger/internal/domain"
)

// RemoteGateway is the provider's query and charge API.
// Transport failures and non-2xx responses are returned as errors, never as empty data.
type RemoteGateway interface {
	// ListPayments fetches one bounded page of payments created inside r.
	ListPayments(ctx context.Context, r domain.DateRange, limit int) (*domain.PaymentPage, error)
	// GetAccount returns domain.ErrAccountNotFound when the provider answers 404.
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	CreatePayment(ctx context.Context, req *domain.PaymentRequest) (*domain.ProviderPayment, error)
}
