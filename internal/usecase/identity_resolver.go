package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/splitledger/internal/domain"
)

// identityStrategy looks up the conversion record for a transaction in a prebuilt index.
type identityStrategy struct {
	outcome string
	find    func(ix *IdentityIndex, tx *domain.Transaction) *domain.ConversionRecord
}

// identityStrategies are tried in order. An exact match on the transaction id
// must win over the account-level fallback.
var identityStrategies = []identityStrategy{
	{
		outcome: IdentityExact,
		find: func(ix *IdentityIndex, tx *domain.Transaction) *domain.ConversionRecord {
			return ix.byTransaction[tx.ID]
		},
	},
	{
		outcome: IdentityAccount,
		find: func(ix *IdentityIndex, tx *domain.Transaction) *domain.ConversionRecord {
			return ix.latestByAccount[tx.AccountID]
		},
	},
}

// IdentityResolver joins payments to the customer and charge type that produced them.
type IdentityResolver struct {
	conversions ConversionRepository
	recorder    Recorder
	logger      zerolog.Logger
}

// NewIdentityResolver creates a new IdentityResolver.
func NewIdentityResolver(conversions ConversionRepository, recorder Recorder, logger zerolog.Logger) *IdentityResolver {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &IdentityResolver{conversions: conversions, recorder: recorder, logger: logger}
}

// IdentityIndex holds the conversion records of one report, keyed for both lookup strategies.
type IdentityIndex struct {
	byTransaction   map[string]*domain.ConversionRecord
	latestByAccount map[string]*domain.ConversionRecord
	recorder        Recorder
}

// Index loads every conversion record the transactions can resolve to in one query.
// A failed load is logged and yields an empty index, so every lookup resolves to unknown.
func (r *IdentityResolver) Index(ctx context.Context, txs []*domain.Transaction) *IdentityIndex {
	ix := newIdentityIndex(r.recorder)
	if len(txs) == 0 {
		return ix
	}

	txIDs := make([]string, 0, len(txs))
	accountIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, tx := range txs {
		txIDs = append(txIDs, tx.ID)
		if !seen[tx.AccountID] {
			seen[tx.AccountID] = true
			accountIDs = append(accountIDs, tx.AccountID)
		}
	}

	records, err := r.conversions.FindForReport(ctx, txIDs, accountIDs)
	if err != nil {
		r.logger.Warn().Err(err).Int("transactions", len(txs)).Msg("conversion lookup failed, identities resolve to unknown")
		return ix
	}

	ix.add(records)
	return ix
}

func newIdentityIndex(recorder Recorder) *IdentityIndex {
	return &IdentityIndex{
		byTransaction:   make(map[string]*domain.ConversionRecord),
		latestByAccount: make(map[string]*domain.ConversionRecord),
		recorder:        recorder,
	}
}

func (ix *IdentityIndex) add(records []*domain.ConversionRecord) {
	for _, rec := range records {
		if rec.SubscriptionID != "" {
			if cur, ok := ix.byTransaction[rec.SubscriptionID]; !ok || rec.ConvertedAt.After(cur.ConvertedAt) {
				ix.byTransaction[rec.SubscriptionID] = rec
			}
		}
		if rec.LinkAccountID != "" {
			if cur, ok := ix.latestByAccount[rec.LinkAccountID]; !ok || rec.ConvertedAt.After(cur.ConvertedAt) {
				ix.latestByAccount[rec.LinkAccountID] = rec
			}
		}
	}
}

// Resolve returns the identity for tx. It never fails.
func (ix *IdentityIndex) Resolve(tx *domain.Transaction) domain.Identity {
	for _, s := range identityStrategies {
		if rec := s.find(ix, tx); rec != nil {
			ix.recorder.IdentityOutcome(s.outcome)
			return domain.IdentityFromConversion(rec)
		}
	}
	ix.recorder.IdentityOutcome(IdentityUnknown)
	return domain.UnknownIdentity()
}
