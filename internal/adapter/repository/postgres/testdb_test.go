package postgres

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	infrapg "github.com/iho/splitledger/internal/infrastructure/postgres"
)

// newTestDB migrates the database at DATABASE_URL and returns a pool over empty tables.
// Tests using it are skipped in -short mode or when DATABASE_URL is unset.
func newTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	migrations, err := filepath.Abs(filepath.Join("..", "..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NoError(t, infrapg.RunMigrations(dbURL, migrations, zerolog.Nop()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := infrapg.NewPoolWithConfig(ctx, infrapg.PoolConfig{DatabaseURL: dbURL, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE subscription_conversions, transactions, signup_links,
		subscription_signup_links, pix_automatic_signup_links, accounts`)
	require.NoError(t, err)

	return pool
}

// fixtures seeds ledger tables.
type fixtures struct {
	t    *testing.T
	pool *pgxpool.Pool
}

func (f fixtures) exec(sql string, args ...any) {
	f.t.Helper()
	_, err := f.pool.Exec(context.Background(), sql, args...)
	require.NoError(f.t, err)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (f fixtures) account(id, name, walletID string, createdAt time.Time) {
	f.t.Helper()
	f.exec(`INSERT INTO accounts (id, name, wallet_id, created_at) VALUES ($1, $2, $3, $4)`,
		id, name, nullable(walletID), createdAt)
}

func (f fixtures) transaction(id, accountID, value string, status string, createdAt time.Time, dueDate *time.Time) {
	f.t.Helper()
	f.exec(`INSERT INTO transactions (id, account_id, value, description, status, created_at, due_date, billing_type)
		VALUES ($1, $2, $3::text::numeric, 'Plan', $4, $5, $6, 'PIX')`,
		id, accountID, value, status, createdAt, dueDate)
}

// link inserts into one of the three link tables.
func (f fixtures) link(table, id, accountID, description string, active bool, createdAt time.Time) {
	f.t.Helper()
	f.exec(`INSERT INTO `+table+` (id, account_id, description, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, accountID, nullable(description), active, createdAt)
}

func (f fixtures) subscriptionLink(id, accountID, chargeType string, createdAt time.Time) {
	f.t.Helper()
	f.exec(`INSERT INTO subscription_signup_links (id, account_id, charge_type, created_at) VALUES ($1, $2, $3, $4)`,
		id, accountID, chargeType, createdAt)
}

func (f fixtures) conversion(subscriptionID, linkID, customerName string, convertedAt time.Time) {
	f.t.Helper()
	f.exec(`INSERT INTO subscription_conversions
		(subscription_id, link_id, customer_name, customer_email, customer_cpf, customer_birthdate, converted_at)
		VALUES ($1, $2, $3, $4, '12345678909', DATE '1990-05-17', $5)`,
		subscriptionID, nullable(linkID), customerName, customerName+"@example.com", convertedAt)
}

func at(day, hour int) time.Time {
	return time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
}
