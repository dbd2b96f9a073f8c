package mocks

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/iho/splitledger/internal/domain"
)

// MockLedgerStore is a mock implementation of LedgerStore backed by a slice.
type MockLedgerStore struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction
	calls        int

	QueryTransactionsFunc func(ctx context.Context, q domain.TransactionQuery) ([]*domain.Transaction, error)
}

func NewMockLedgerStore(txs ...*domain.Transaction) *MockLedgerStore {
	return &MockLedgerStore{transactions: txs}
}

func (m *MockLedgerStore) QueryTransactions(ctx context.Context, q domain.TransactionQuery) ([]*domain.Transaction, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.QueryTransactionsFunc != nil {
		return m.QueryTransactionsFunc(ctx, q)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for _, tx := range m.transactions {
		if q.Matches(tx) {
			out = append(out, tx)
		}
	}
	slices.SortFunc(out, domain.ByNewest)
	return out, nil
}

// Calls returns how many queries were made.
func (m *MockLedgerStore) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetByIDFunc        func(ctx context.Context, id string) (*domain.Account, error)
	ListWithWalletFunc func(ctx context.Context) ([]*domain.Account, error)
}

func NewMockAccountRepository(accounts ...*domain.Account) *MockAccountRepository {
	m := &MockAccountRepository{accounts: make(map[string]*domain.Account)}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) ListWithWallet(ctx context.Context) ([]*domain.Account, error) {
	if m.ListWithWalletFunc != nil {
		return m.ListWithWalletFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Account
	for _, acc := range m.accounts {
		if acc.HasWallet() {
			out = append(out, acc)
		}
	}
	return out, nil
}

// MockConversionRepository is a mock implementation of ConversionRepository.
type MockConversionRepository struct {
	records []*domain.ConversionRecord
	calls   int
	mu      sync.Mutex

	FindForReportFunc func(ctx context.Context, transactionIDs, accountIDs []string) ([]*domain.ConversionRecord, error)
}

func NewMockConversionRepository(records ...*domain.ConversionRecord) *MockConversionRepository {
	return &MockConversionRepository{records: records}
}

func (m *MockConversionRepository) FindForReport(ctx context.Context, transactionIDs, accountIDs []string) ([]*domain.ConversionRecord, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.FindForReportFunc != nil {
		return m.FindForReportFunc(ctx, transactionIDs, accountIDs)
	}

	var out []*domain.ConversionRecord
	for _, r := range m.records {
		if slices.Contains(transactionIDs, r.SubscriptionID) || slices.Contains(accountIDs, r.LinkAccountID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Calls returns how many queries were made.
func (m *MockConversionRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockSignupLinkRepository is a mock implementation of SignupLinkRepository.
type MockSignupLinkRepository struct {
	links []*domain.SignupLink

	ListByAccountsFunc func(ctx context.Context, accountIDs []string) ([]*domain.SignupLink, error)
}

func NewMockSignupLinkRepository(links ...*domain.SignupLink) *MockSignupLinkRepository {
	return &MockSignupLinkRepository{links: links}
}

func (m *MockSignupLinkRepository) ListByAccounts(ctx context.Context, accountIDs []string) ([]*domain.SignupLink, error) {
	if m.ListByAccountsFunc != nil {
		return m.ListByAccountsFunc(ctx, accountIDs)
	}
	var out []*domain.SignupLink
	for _, l := range m.links {
		if slices.Contains(accountIDs, l.AccountID) {
			out = append(out, l)
		}
	}
	return out, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is an in-memory implementation of Cache. Get returns nil, nil on a miss.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// MockRecorder counts recorded outcomes.
type MockRecorder struct {
	mu         sync.Mutex
	Sources    map[string]int
	Identities map[string]int
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{Sources: make(map[string]int), Identities: make(map[string]int)}
}

func (m *MockRecorder) ReconciliationSource(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sources[source]++
}

func (m *MockRecorder) IdentityOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Identities[outcome]++
}
