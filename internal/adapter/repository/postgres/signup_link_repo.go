package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/splitledger/internal/domain"
)

const listLinksByAccounts = `SELECT id, account_id, description, charge_type, active, uses_count, created_at
FROM (` + allLinks + `) links
WHERE account_id = ANY($1)
ORDER BY created_at DESC`

// SignupLinkRepository implements usecase.SignupLinkRepository.
type SignupLinkRepository struct {
	db      DBTX
	retrier *Retrier
}

// NewSignupLinkRepository creates a new SignupLinkRepository.
func NewSignupLinkRepository(db DBTX, retrier *Retrier) *SignupLinkRepository {
	return &SignupLinkRepository{db: db, retrier: retrier}
}

// ListByAccounts returns the links of every kind owned by the given accounts.
func (r *SignupLinkRepository) ListByAccounts(ctx context.Context, accountIDs []string) ([]*domain.SignupLink, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	var links []*domain.SignupLink
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.db.Query(ctx, listLinksByAccounts, accountIDs)
		if err != nil {
			return err
		}
		links, err = pgx.CollectRows(rows, scanSignupLink)
		return err
	})
	if err != nil {
		return nil, err
	}

	return links, nil
}

func scanSignupLink(row pgx.CollectableRow) (*domain.SignupLink, error) {
	var (
		link        domain.SignupLink
		description pgtype.Text
		kind        string
		createdAt   pgtype.Timestamptz
	)

	if err := row.Scan(&link.ID, &link.AccountID, &description, &kind, &link.Active, &link.UsesCount, &createdAt); err != nil {
		return nil, err
	}

	link.Description = description.String
	link.Kind = domain.ChargeType(kind)
	link.CreatedAt = createdAt.Time

	return &link, nil
}
