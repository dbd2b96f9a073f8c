package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/splitledger/internal/domain"
)

const (
	getAccountByID = `SELECT id, name, email, cpf_cnpj, wallet_id, created_at
FROM accounts
WHERE id = $1`

	listAccountsWithWallet = `SELECT id, name, email, cpf_cnpj, wallet_id, created_at
FROM accounts
WHERE wallet_id IS NOT NULL AND wallet_id <> ''
ORDER BY created_at`
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db      DBTX
	retrier *Retrier
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db DBTX, retrier *Retrier) *AccountRepository {
	return &AccountRepository{db: db, retrier: retrier}
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var acc *domain.Account
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.db.Query(ctx, getAccountByID, id)
		if err != nil {
			return err
		}
		acc, err = pgx.CollectExactlyOneRow(rows, scanAccount)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return acc, nil
}

// ListWithWallet lists accounts that can receive splits.
func (r *AccountRepository) ListWithWallet(ctx context.Context) ([]*domain.Account, error) {
	var accounts []*domain.Account
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.db.Query(ctx, listAccountsWithWallet)
		if err != nil {
			return err
		}
		accounts, err = pgx.CollectRows(rows, scanAccount)
		return err
	})
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func scanAccount(row pgx.CollectableRow) (*domain.Account, error) {
	var (
		acc       domain.Account
		email     pgtype.Text
		cpfCnpj   pgtype.Text
		walletID  pgtype.Text
		createdAt pgtype.Timestamptz
	)

	if err := row.Scan(&acc.ID, &acc.Name, &email, &cpfCnpj, &walletID, &createdAt); err != nil {
		return nil, err
	}

	acc.Email = email.String
	acc.CpfCnpj = cpfCnpj.String
	acc.WalletID = walletID.String
	acc.CreatedAt = createdAt.Time

	return &acc, nil
}
