package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/iho/splitledger/internal/domain"
)

var tracer = otel.Tracer("github.com/iho/splitledger/internal/usecase")

// TransactionSource is one step of the reconciliation fallback chain.
type TransactionSource interface {
	Name() string
	Fetch(ctx context.Context, q domain.TransactionQuery) ([]*domain.Transaction, error)
}

// ReconciliationConfig tunes the remote fallback.
type ReconciliationConfig struct {
	PageLimit int
}

// ReconciliationEngine merges ledger and provider records into enriched transactions.
type ReconciliationEngine struct {
	sources    []TransactionSource
	identities *IdentityResolver
	links      SignupLinkRepository
	recorder   Recorder
	logger     zerolog.Logger
}

// NewReconciliationEngine creates an engine that reads the ledger and falls back to the provider.
func NewReconciliationEngine(
	ledger LedgerStore,
	gateway RemoteGateway,
	accounts AccountRepository,
	resolver *AccountResolver,
	identities *IdentityResolver,
	links SignupLinkRepository,
	cfg ReconciliationConfig,
	recorder Recorder,
	logger zerolog.Logger,
) *ReconciliationEngine {
	return NewReconciliationEngineWithSources(identities, links, recorder, logger,
		NewLedgerSource(ledger),
		NewRemoteSource(gateway, accounts, resolver, cfg.PageLimit, logger),
	)
}

// NewReconciliationEngineWithSources creates an engine over an explicit source chain.
func NewReconciliationEngineWithSources(
	identities *IdentityResolver,
	links SignupLinkRepository,
	recorder Recorder,
	logger zerolog.Logger,
	sources ...TransactionSource,
) *ReconciliationEngine {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ReconciliationEngine{
		sources:    sources,
		identities: identities,
		links:      links,
		recorder:   recorder,
		logger:     logger,
	}
}

// Reconcile returns the enriched transactions for q in source order (newest first).
// The first source with data wins. Any source error aborts the request.
func (e *ReconciliationEngine) Reconcile(ctx context.Context, q domain.TransactionQuery) ([]domain.EnrichedTransaction, error) {
	ctx, span := tracer.Start(ctx, "ReconciliationEngine.Reconcile")
	defer span.End()
	span.SetAttributes(attribute.String("scope", q.Scope.AccountID))

	txs, source, err := e.fetch(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("source", source), attribute.Int("transactions", len(txs)))
	e.recorder.ReconciliationSource(source)

	enriched := make([]domain.EnrichedTransaction, 0, len(txs))
	if len(txs) == 0 {
		return enriched, nil
	}

	var (
		index *IdentityIndex
		names map[string]string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		index = e.identities.Index(gctx, txs)
		return nil
	})
	if q.Scope.IsAll() {
		g.Go(func() error {
			names = e.accountNames(gctx, distinctAccountIDs(txs))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, tx := range txs {
		id := index.Resolve(tx)
		et := domain.EnrichedTransaction{
			Transaction: *tx,
			Customer:    id.Customer,
			ChargeType:  id.ChargeType,
		}
		if names != nil {
			et.AccountName = names[tx.AccountID]
		}
		enriched = append(enriched, et)
	}

	return enriched, nil
}

func (e *ReconciliationEngine) fetch(ctx context.Context, q domain.TransactionQuery) ([]*domain.Transaction, string, error) {
	for _, src := range e.sources {
		txs, err := src.Fetch(ctx, q)
		if err != nil {
			e.logger.Error().Err(err).Str("source", src.Name()).Str("scope", q.Scope.AccountID).Msg("reconciliation source failed")
			return nil, src.Name(), err
		}
		if len(txs) > 0 {
			e.logger.Debug().Str("source", src.Name()).Int("transactions", len(txs)).Msg("reconciliation source hit")
			return txs, src.Name(), nil
		}
		e.logger.Debug().Str("source", src.Name()).Msg("reconciliation source empty, falling back")
	}
	return nil, SourceNone, nil
}

// accountNames resolves display names for consolidated reports. Failures fall back to the id-based name.
func (e *ReconciliationEngine) accountNames(ctx context.Context, accountIDs []string) map[string]string {
	byAccount := make(map[string][]*domain.SignupLink, len(accountIDs))

	if e.links != nil {
		links, err := e.links.ListByAccounts(ctx, accountIDs)
		if err != nil {
			e.logger.Warn().Err(err).Msg("signup link lookup failed, using fallback account names")
		}
		for _, l := range links {
			byAccount[l.AccountID] = append(byAccount[l.AccountID], l)
		}
	}

	names := make(map[string]string, len(accountIDs))
	for _, id := range accountIDs {
		names[id] = ResolveAccountName(id, byAccount[id])
	}
	return names
}

// nameStrategies pick an account display name from its signup links, in order.
var nameStrategies = []func(links []*domain.SignupLink) (string, bool){
	func(links []*domain.SignupLink) (string, bool) { return newestDescription(links, true) },
	func(links []*domain.SignupLink) (string, bool) { return newestDescription(links, false) },
}

// ResolveAccountName names an account after its signup links, or "Account " + id prefix.
func ResolveAccountName(accountID string, links []*domain.SignupLink) string {
	for _, s := range nameStrategies {
		if name, ok := s(links); ok {
			return name
		}
	}
	return domain.FallbackAccountName(accountID)
}

func newestDescription(links []*domain.SignupLink, activeOnly bool) (string, bool) {
	var best *domain.SignupLink
	for _, l := range links {
		if !l.HasDescription() || (activeOnly && !l.Active) {
			continue
		}
		if best == nil || l.CreatedAt.After(best.CreatedAt) {
			best = l
		}
	}
	if best == nil {
		return "", false
	}
	return best.Description, true
}

func distinctAccountIDs(txs []*domain.Transaction) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, tx := range txs {
		if !seen[tx.AccountID] {
			seen[tx.AccountID] = true
			ids = append(ids, tx.AccountID)
		}
	}
	return ids
}

// LedgerSource reads the local ledger.
type LedgerSource struct {
	store LedgerStore
}

// NewLedgerSource creates a new LedgerSource.
func NewLedgerSource(store LedgerStore) *LedgerSource {
	return &LedgerSource{store: store}
}

// Name implements TransactionSource.
func (s *LedgerSource) Name() string { return SourceLedger }

// Fetch implements TransactionSource.
func (s *LedgerSource) Fetch(ctx context.Context, q domain.TransactionQuery) ([]*domain.Transaction, error) {
	txs, err := s.store.QueryTransactions(ctx, q)
	if err != nil {
		if errors.Is(err, domain.ErrLedgerQueryFailed) {
			return nil, fmt.Errorf("ledger query: %w", err)
		}
		return nil, fmt.Errorf("ledger query: %w: %w", domain.ErrLedgerQueryFailed, err)
	}
	return txs, nil
}

// RemoteSource reads one page of provider payments and keeps those split to the scoped accounts.
type RemoteSource struct {
	gateway   RemoteGateway
	accounts  AccountRepository
	resolver  *AccountResolver
	pageLimit int
	logger    zerolog.Logger
}

// NewRemoteSource creates a new RemoteSource.
func NewRemoteSource(gateway RemoteGateway, accounts AccountRepository, resolver *AccountResolver, pageLimit int, logger zerolog.Logger) *RemoteSource {
	return &RemoteSource{
		gateway:   gateway,
		accounts:  accounts,
		resolver:  resolver,
		pageLimit: domain.ValidatePageLimit(pageLimit),
		logger:    logger,
	}
}

// Name implements TransactionSource.
func (s *RemoteSource) Name() string { return SourceRemote }

// Fetch implements TransactionSource.
// The provider cannot filter by destination wallet, so payments are matched locally.
func (s *RemoteSource) Fetch(ctx context.Context, q domain.TransactionQuery) ([]*domain.Transaction, error) {
	wallets, err := s.walletOwners(ctx, q.Scope)
	if err != nil {
		return nil, err
	}
	if len(wallets) == 0 {
		return nil, nil
	}

	page, err := s.gateway.ListPayments(ctx, q.Range, s.pageLimit)
	if err != nil {
		return nil, remoteFailure("remote fallback", err)
	}
	if page.HasMore {
		s.logger.Warn().Int("limit", s.pageLimit).Msg("provider has more payments than one page, report is truncated")
	}

	txs := make([]*domain.Transaction, 0)
	for i := range page.Data {
		p := &page.Data[i]
		accountID, ok := p.SplitOwner(wallets)
		if !ok {
			continue
		}
		if _, known := domain.NormalizeProviderStatus(p.Status); !known {
			s.logger.Warn().Str("payment_id", p.ID).Str("status", p.Status).Msg("unknown provider status treated as pending")
		}
		tx := p.ToTransaction(accountID)
		if q.Matches(&tx) {
			txs = append(txs, &tx)
		}
	}

	slices.SortFunc(txs, domain.ByNewest)
	return txs, nil
}

// walletOwners maps wallet ids to the account ids in scope.
func (s *RemoteSource) walletOwners(ctx context.Context, scope domain.Scope) (map[string]string, error) {
	owners := make(map[string]string)

	if scope.IsAll() {
		accs, err := s.accounts.ListWithWallet(ctx)
		if err != nil {
			return nil, fmt.Errorf("account lookup: %w: %w", domain.ErrLedgerQueryFailed, err)
		}
		for _, a := range accs {
			if a.HasWallet() {
				owners[a.WalletID] = a.ID
			}
		}
		return owners, nil
	}

	acc, err := s.resolver.Resolve(ctx, scope.AccountID)
	if err != nil {
		return nil, err
	}
	if !acc.HasWallet() {
		s.logger.Info().Str("account_id", acc.ID).Msg("account has no wallet, nothing to match on provider")
		return owners, nil
	}
	owners[acc.WalletID] = acc.ID
	return owners, nil
}

func remoteFailure(stage string, err error) error {
	if errors.Is(err, domain.ErrRemoteGatewayUnavailable) || errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("%s: %w", stage, err)
	}
	return fmt.Errorf("%s: %w: %w", stage, domain.ErrRemoteGatewayUnavailable, err)
}
