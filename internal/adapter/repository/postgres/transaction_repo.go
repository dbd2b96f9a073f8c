package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/splitledger/internal/domain"
)

const selectTransactions = `SELECT id, account_id, value, description, status, created_at, due_date, billing_type, payment_date
FROM transactions`

// TransactionRepository implements usecase.LedgerStore.
type TransactionRepository struct {
	db      DBTX
	retrier *Retrier
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db DBTX, retrier *Retrier) *TransactionRepository {
	return &TransactionRepository{db: db, retrier: retrier}
}

// QueryTransactions returns ledger rows matching q, newest first.
func (r *TransactionRepository) QueryTransactions(ctx context.Context, q domain.TransactionQuery) ([]*domain.Transaction, error) {
	sql, args := buildTransactionQuery(q)

	var txs []*domain.Transaction
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.db.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		txs, err = pgx.CollectRows(rows, scanTransaction)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrLedgerQueryFailed, err)
	}

	return txs, nil
}

// buildTransactionQuery renders the ledger query. Bounds are inclusive.
func buildTransactionQuery(q domain.TransactionQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if !q.Scope.IsAll() {
		add("account_id = $%d", q.Scope.AccountID)
	}
	if q.Range.Start != nil {
		add("created_at >= $%d", timeToPgTimestamptz(*q.Range.Start))
	}
	if q.Range.End != nil {
		add("created_at <= $%d", timeToPgTimestamptz(*q.Range.End))
	}
	if q.Status != nil {
		add("status = $%d", string(*q.Status))
	}

	var sb strings.Builder
	sb.WriteString(selectTransactions)
	if len(conds) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString("\nORDER BY created_at DESC, id ASC")

	return sb.String(), args
}

func scanTransaction(row pgx.CollectableRow) (*domain.Transaction, error) {
	var (
		tx          domain.Transaction
		value       pgtype.Numeric
		description pgtype.Text
		status      string
		createdAt   pgtype.Timestamptz
		dueDate     pgtype.Date
		billingType pgtype.Text
		paymentDate pgtype.Date
	)

	if err := row.Scan(&tx.ID, &tx.AccountID, &value, &description, &status, &createdAt, &dueDate, &billingType, &paymentDate); err != nil {
		return nil, err
	}

	tx.Value = numericToDecimal(value).Abs()
	tx.Description = description.String
	tx.Status = domain.TransactionStatus(status)
	tx.CreatedAt = createdAt.Time
	tx.DueDate = pgDateToTimePtr(dueDate)
	tx.BillingType = billingType.String
	tx.PaymentDate = pgDateToTimePtr(paymentDate)

	return &tx, nil
}
