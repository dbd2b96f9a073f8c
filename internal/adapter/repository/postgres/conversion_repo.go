package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/splitledger/internal/domain"
)

// findConversionsForReport loads every conversion a report can resolve to:
// exact matches by subscription id and account-level matches through the link owner.
const findConversionsForReport = `WITH links AS (` + allLinks + `)
SELECT c.subscription_id, c.link_id, l.account_id, l.charge_type,
	c.customer_name, c.customer_email, c.customer_cpf, c.customer_birthdate, c.converted_at
FROM subscription_conversions c
LEFT JOIN links l ON l.id = c.link_id
WHERE c.subscription_id = ANY($1) OR l.account_id = ANY($2)
ORDER BY c.converted_at DESC`

// ConversionRepository implements usecase.ConversionRepository.
type ConversionRepository struct {
	db      DBTX
	retrier *Retrier
}

// NewConversionRepository creates a new ConversionRepository.
func NewConversionRepository(db DBTX, retrier *Retrier) *ConversionRepository {
	return &ConversionRepository{db: db, retrier: retrier}
}

// FindForReport implements usecase.ConversionRepository in a single round trip.
func (r *ConversionRepository) FindForReport(ctx context.Context, transactionIDs, accountIDs []string) ([]*domain.ConversionRecord, error) {
	if len(transactionIDs) == 0 && len(accountIDs) == 0 {
		return nil, nil
	}

	var records []*domain.ConversionRecord
	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.db.Query(ctx, findConversionsForReport, transactionIDs, accountIDs)
		if err != nil {
			return err
		}
		records, err = pgx.CollectRows(rows, scanConversion)
		return err
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func scanConversion(row pgx.CollectableRow) (*domain.ConversionRecord, error) {
	var (
		subscriptionID pgtype.Text
		linkID         pgtype.Text
		accountID      pgtype.Text
		chargeType     pgtype.Text
		name           pgtype.Text
		email          pgtype.Text
		cpf            pgtype.Text
		birthdate      pgtype.Date
		convertedAt    pgtype.Timestamptz
	)

	if err := row.Scan(&subscriptionID, &linkID, &accountID, &chargeType,
		&name, &email, &cpf, &birthdate, &convertedAt); err != nil {
		return nil, err
	}

	return &domain.ConversionRecord{
		SubscriptionID: subscriptionID.String,
		LinkID:         linkID.String,
		LinkAccountID:  accountID.String,
		ChargeType:     domain.ChargeType(chargeType.String),
		Customer: domain.Customer{
			Name:      name.String,
			Email:     email.String,
			Cpf:       cpf.String,
			Birthdate: pgDateToString(birthdate),
		},
		ConvertedAt: convertedAt.Time,
	}, nil
}
