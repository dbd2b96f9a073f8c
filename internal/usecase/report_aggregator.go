package usecase

import "github.com/iho/splitledger/internal/domain"

// Aggregate filters enriched transactions and sums their values by status.
//
// The status filter runs first, the charge-type filter last. TotalAccounts is
// counted on the input before either filter, while TotalTransactions counts
// what survives both.
func Aggregate(enriched []domain.EnrichedTransaction, filters domain.ReportFilters, consolidated bool) (domain.Summary, []domain.EnrichedTransaction) {
	summary := domain.NewSummary()

	if consolidated {
		accounts := make(map[string]struct{})
		for i := range enriched {
			accounts[enriched[i].AccountID] = struct{}{}
		}
		n := len(accounts)
		summary.TotalAccounts = &n
	}

	filtered := FilterByStatus(enriched, filters.Status)
	filtered = FilterByChargeType(filtered, filters.ChargeType)

	for i := range filtered {
		summary.Add(&filtered[i].Transaction)
	}

	return summary, filtered
}

// FilterByStatus keeps transactions with the given status. A nil status keeps everything.
func FilterByStatus(txs []domain.EnrichedTransaction, status *domain.TransactionStatus) []domain.EnrichedTransaction {
	if status == nil {
		return txs
	}
	out := make([]domain.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Status == *status {
			out = append(out, tx)
		}
	}
	return out
}

// FilterByChargeType keeps transactions with the given charge type. A nil type keeps everything.
func FilterByChargeType(txs []domain.EnrichedTransaction, chargeType *domain.ChargeType) []domain.EnrichedTransaction {
	if chargeType == nil {
		return txs
	}
	out := make([]domain.EnrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ChargeType == *chargeType {
			out = append(out, tx)
		}
	}
	return out
}
