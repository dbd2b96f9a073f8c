package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/splitledger/internal/domain"
)

// Reconciler produces enriched transactions for a query.
type Reconciler interface {
	Reconcile(ctx context.Context, q domain.TransactionQuery) ([]domain.EnrichedTransaction, error)
}

// ReportUseCase builds single-account and consolidated financial reports.
type ReportUseCase struct {
	engine   Reconciler
	resolver *AccountResolver
	logger   zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(engine Reconciler, resolver *AccountResolver, logger zerolog.Logger) *ReportUseCase {
	return &ReportUseCase{
		engine:   engine,
		resolver: resolver,
		logger:   logger,
	}
}

// ReportInput represents the filters of a report request.
type ReportInput struct {
	Range      domain.DateRange
	Status     *domain.TransactionStatus
	ChargeType *domain.ChargeType
}

// AccountReport builds the report of one account.
func (uc *ReportUseCase) AccountReport(ctx context.Context, accountID string, input ReportInput) (*domain.Report, error) {
	if err := domain.ValidateID(accountID); err != nil {
		return nil, err
	}

	enriched, err := uc.engine.Reconcile(ctx, domain.TransactionQuery{
		Scope:  domain.AccountScope(accountID),
		Range:  input.Range,
		Status: input.Status,
	})
	if err != nil {
		return nil, err
	}

	account, err := uc.reportAccount(ctx, accountID, len(enriched) > 0)
	if err != nil {
		return nil, err
	}

	return uc.build(account, false, input, enriched), nil
}

// ConsolidatedReport builds the report across every account.
// The status filter is applied in memory so totalAccounts covers every account active in the range.
func (uc *ReportUseCase) ConsolidatedReport(ctx context.Context, input ReportInput) (*domain.Report, error) {
	enriched, err := uc.engine.Reconcile(ctx, domain.TransactionQuery{
		Scope: domain.AllAccounts(),
		Range: input.Range,
	})
	if err != nil {
		return nil, err
	}

	account := domain.ReportAccount{ID: domain.AllAccountsID, Name: domain.AllAccountsName}
	return uc.build(account, true, input, enriched), nil
}

// reportAccount names the account of a single-account report.
// With transactions in hand a failed lookup degrades to the fallback name.
func (uc *ReportUseCase) reportAccount(ctx context.Context, accountID string, hasData bool) (domain.ReportAccount, error) {
	acc, err := uc.resolver.Resolve(ctx, accountID)
	if err != nil {
		if hasData {
			uc.logger.Warn().Err(err).Str("account_id", accountID).Msg("account lookup failed, using fallback name")
			return domain.ReportAccount{ID: accountID, Name: domain.FallbackAccountName(accountID)}, nil
		}
		return domain.ReportAccount{}, err
	}

	name := acc.Name
	if name == "" {
		name = domain.FallbackAccountName(accountID)
	}
	return domain.ReportAccount{ID: acc.ID, Name: name}, nil
}

func (uc *ReportUseCase) build(account domain.ReportAccount, consolidated bool, input ReportInput, enriched []domain.EnrichedTransaction) *domain.Report {
	filters := domain.ReportFilters{ChargeType: input.ChargeType, Status: input.Status}
	summary, filtered := Aggregate(enriched, filters, consolidated)

	return &domain.Report{
		Account:      account,
		Consolidated: consolidated,
		Period:       input.Range,
		Filters:      filters,
		Summary:      summary,
		Transactions: filtered,
	}
}
