package usecase

import (
	"context"
	"time"

	"github.com/iho/splitledger/internal/domain"
)

// LedgerStore is the read-only query interface over locally persisted payments.
// Results are ordered newest first. An empty result is not an error.
type LedgerStore interface {
	QueryTransactions(ctx context.Context, q domain.TransactionQuery) ([]*domain.Transaction, error)
}

// AccountRepository defines data access for locally known subaccounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	ListWithWallet(ctx context.Context) ([]*domain.Account, error)
}

// ConversionRepository loads conversion records for one report in a single query.
type ConversionRepository interface {
	// FindForReport returns records whose subscription id is in transactionIDs
	// or whose link belongs to one of accountIDs.
	FindForReport(ctx context.Context, transactionIDs, accountIDs []string) ([]*domain.ConversionRecord, error)
}

// SignupLinkRepository defines data access for signup links of every kind.
type SignupLinkRepository interface {
	ListByAccounts(ctx context.Context, accountIDs []string) ([]*domain.SignupLink, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key so the request can be retried.
	Release(ctx context.Context, key string) error
}

// Recorder receives reconciliation outcomes for metrics.
type Recorder interface {
	ReconciliationSource(source string)
	IdentityOutcome(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ReconciliationSource(string) {}
func (nopRecorder) IdentityOutcome(string)      {}
