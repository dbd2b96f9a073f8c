package usecase

import "time"

const (
	// DefaultAccountCacheTTL is how long provider account lookups are cached
	DefaultAccountCacheTTL = 10 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// Reconciliation sources
	SourceLedger = "ledger"
	SourceRemote = "remote"
	SourceNone   = "none"

	// Identity resolution outcomes
	IdentityExact    = "exact"
	IdentityAccount  = "account"
	IdentityUnknown  = "unknown"
	accountCacheKeyf = "account:%s"
)
