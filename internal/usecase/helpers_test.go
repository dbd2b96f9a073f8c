package usecase_test

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
	"github.com/iho/splitledger/internal/usecase/mocks"
)

var nopLogger = zerolog.Nop()

func day(d int) time.Time {
	return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
}

func ledgerTx(id, accountID, value string, status domain.TransactionStatus, created time.Time) *domain.Transaction {
	return &domain.Transaction{
		ID:          id,
		AccountID:   accountID,
		Value:       decimal.RequireFromString(value),
		Description: "payment " + id,
		Status:      status,
		CreatedAt:   created,
		BillingType: "PIX",
	}
}

type engineDeps struct {
	ledger      *mocks.MockLedgerStore
	accounts    *mocks.MockAccountRepository
	conversions *mocks.MockConversionRepository
	links       *mocks.MockSignupLinkRepository
	gateway     usecase.RemoteGateway
	cache       *mocks.MockCache
	recorder    *mocks.MockRecorder
}

func (d engineDeps) build() (*usecase.ReconciliationEngine, *usecase.AccountResolver) {
	resolver := usecase.NewAccountResolver(d.accounts, d.gateway, d.cache, time.Minute, nopLogger)
	identities := usecase.NewIdentityResolver(d.conversions, d.recorder, nopLogger)
	engine := usecase.NewReconciliationEngine(
		d.ledger, d.gateway, d.accounts, resolver, identities, d.links,
		usecase.ReconciliationConfig{PageLimit: 100}, d.recorder, nopLogger,
	)
	return engine, resolver
}

func newEngineDeps(gateway usecase.RemoteGateway) engineDeps {
	return engineDeps{
		ledger:      mocks.NewMockLedgerStore(),
		accounts:    mocks.NewMockAccountRepository(),
		conversions: mocks.NewMockConversionRepository(),
		links:       mocks.NewMockSignupLinkRepository(),
		gateway:     gateway,
		cache:       mocks.NewMockCache(),
		recorder:    mocks.NewMockRecorder(),
	}
}
