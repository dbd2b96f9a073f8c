package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/splitledger/internal/domain"
)

// AccountSource is one step of the account resolution chain.
// It returns domain.ErrAccountNotFound to hand over to the next source.
type AccountSource interface {
	Name() string
	Lookup(ctx context.Context, id string) (*domain.Account, error)
}

// AccountResolver resolves an account through an ordered list of sources.
type AccountResolver struct {
	sources []AccountSource
	logger  zerolog.Logger
}

// NewAccountResolver creates a resolver that checks the local table first and the provider second.
func NewAccountResolver(repo AccountRepository, gateway RemoteGateway, cache Cache, cacheTTL time.Duration, logger zerolog.Logger) *AccountResolver {
	if cacheTTL <= 0 {
		cacheTTL = DefaultAccountCacheTTL
	}
	return NewAccountResolverWithSources(logger,
		&localAccountSource{repo: repo},
		&remoteAccountSource{gateway: gateway, cache: cache, ttl: cacheTTL, logger: logger},
	)
}

// NewAccountResolverWithSources creates a resolver over an explicit chain.
func NewAccountResolverWithSources(logger zerolog.Logger, sources ...AccountSource) *AccountResolver {
	return &AccountResolver{sources: sources, logger: logger}
}

// Resolve walks the chain. Errors other than not-found stop the walk.
func (r *AccountResolver) Resolve(ctx context.Context, id string) (*domain.Account, error) {
	for _, src := range r.sources {
		acc, err := src.Lookup(ctx, id)
		if err == nil {
			r.logger.Debug().Str("account_id", id).Str("source", src.Name()).Msg("account resolved")
			return acc, nil
		}
		if errors.Is(err, domain.ErrAccountNotFound) {
			continue
		}
		return nil, fmt.Errorf("account lookup via %s: %w", src.Name(), err)
	}
	return nil, fmt.Errorf("account lookup: %w: %s", domain.ErrAccountNotFound, id)
}

type localAccountSource struct {
	repo AccountRepository
}

func (s *localAccountSource) Name() string { return "ledger" }

func (s *localAccountSource) Lookup(ctx context.Context, id string) (*domain.Account, error) {
	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrLedgerQueryFailed, err)
	}
	return acc, nil
}

type remoteAccountSource struct {
	gateway RemoteGateway
	cache   Cache
	ttl     time.Duration
	logger  zerolog.Logger
}

type cachedAccount struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	CpfCnpj  string `json:"cpfCnpj"`
	WalletID string `json:"walletId"`
}

func (s *remoteAccountSource) Name() string { return "provider" }

func (s *remoteAccountSource) Lookup(ctx context.Context, id string) (*domain.Account, error) {
	key := fmt.Sprintf(accountCacheKeyf, id)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != nil {
			var c cachedAccount
			if err := json.Unmarshal(raw, &c); err == nil {
				return &domain.Account{ID: c.ID, Name: c.Name, Email: c.Email, CpfCnpj: c.CpfCnpj, WalletID: c.WalletID}, nil
			}
		} else if err != nil {
			s.logger.Warn().Err(err).Str("account_id", id).Msg("account cache read failed")
		}
	}

	acc, err := s.gateway.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		raw, _ := json.Marshal(cachedAccount{
			ID: acc.ID, Name: acc.Name, Email: acc.Email, CpfCnpj: acc.CpfCnpj, WalletID: acc.WalletID,
		})
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			s.logger.Warn().Err(err).Str("account_id", id).Msg("account cache write failed")
		}
	}

	return acc, nil
}
