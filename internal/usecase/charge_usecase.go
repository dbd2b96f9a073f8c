package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
)

// ChargeUseCase creates provider payments that route a share of the value to a subaccount.
type ChargeUseCase struct {
	resolver          *AccountResolver
	gateway           RemoteGateway
	idGen             IDGenerator
	defaultPercentage decimal.Decimal
	logger            zerolog.Logger
}

// NewChargeUseCase creates a new ChargeUseCase.
func NewChargeUseCase(resolver *AccountResolver, gateway RemoteGateway, idGen IDGenerator, defaultPercentage decimal.Decimal, logger zerolog.Logger) *ChargeUseCase {
	if !defaultPercentage.IsPositive() {
		defaultPercentage = decimal.NewFromInt(domain.DefaultSplitPercentage)
	}
	return &ChargeUseCase{
		resolver:          resolver,
		gateway:           gateway,
		idGen:             idGen,
		defaultPercentage: defaultPercentage,
		logger:            logger,
	}
}

// PreviewSplit computes the split a charge would carry without calling the provider.
func (uc *ChargeUseCase) PreviewSplit(walletID string, gross decimal.Decimal, percentage *decimal.Decimal) (domain.SplitRule, error) {
	pct := uc.defaultPercentage
	if percentage != nil {
		pct = *percentage
	}
	return domain.ComputeNetSplit(walletID, gross, pct)
}

// CreateCharge resolves the account, computes its fixed split and creates the provider payment.
func (uc *ChargeUseCase) CreateCharge(ctx context.Context, req domain.ChargeRequest) (*domain.Charge, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	acc, err := uc.resolver.Resolve(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !acc.HasWallet() {
		return nil, fmt.Errorf("%w: %s", domain.ErrWalletNotAssigned, acc.ID)
	}

	split, err := uc.PreviewSplit(acc.WalletID, req.Value, req.Percentage)
	if err != nil {
		return nil, err
	}

	ref := uc.idGen.Generate()
	payment, err := uc.gateway.CreatePayment(ctx, &domain.PaymentRequest{
		CustomerID:        req.CustomerID,
		BillingType:       req.BillingType,
		Value:             req.Value,
		DueDate:           req.DueDate,
		Description:       req.Description,
		ExternalReference: ref,
		Split:             []domain.SplitRule{split},
	})
	if err != nil {
		return nil, remoteFailure("create payment", err)
	}

	uc.logger.Info().
		Str("payment_id", payment.ID).
		Str("account_id", acc.ID).
		Str("external_reference", ref).
		Str("split_value", split.FixedValue.StringFixed(2)).
		Msg("charge created")

	status, _ := domain.NormalizeProviderStatus(payment.Status)
	return &domain.Charge{
		ID:                payment.ID,
		AccountID:         acc.ID,
		Status:            status,
		Value:             req.Value,
		BillingType:       req.BillingType,
		DueDate:           req.DueDate,
		Description:       req.Description,
		ExternalReference: ref,
		Split:             split,
		CreatedAt:         payment.DateCreated,
	}, nil
}
