package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

type LedgerRepository struct {
	pool *pgxpool.Pool
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// Apply moves the denormalized balance and records the ledger entry in one
// breath. Debits are conditional on sufficient balance. A ledger insert
// failing after the balance moved is reported as an integrity violation; the
// surrounding transaction rolls the balance back.
func (r *LedgerRepository) Apply(ctx context.Context, entry domain.LedgerEntry) (int64, error) {
	const updateStmt = `
UPDATE users
SET balance = balance + $2
WHERE id = $1 AND balance + $2 >= 0
RETURNING balance`

	var balance int64
	err := r.queryRow(ctx, updateStmt, entry.UserID, entry.Amount).Scan(&balance)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			var exists bool
			if err := r.queryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, entry.UserID).Scan(&exists); err != nil {
				return 0, fmt.Errorf("check user: %w", err)
			}
			if !exists {
				return 0, domain.ErrUserNotFound
			}
			return 0, domain.ErrInsufficientFunds
		}
		return 0, fmt.Errorf("update balance: %w", err)
	}

	const insertStmt = `
INSERT INTO ledger_entries (id, user_id, amount, kind, description, draw_id, redemption_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.exec(ctx, insertStmt,
		entry.ID,
		entry.UserID,
		entry.Amount,
		entry.Kind,
		entry.Description,
		entry.DrawID,
		entry.RedemptionID,
		entry.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: record ledger entry: %v", domain.ErrBalanceIntegrity, err)
	}
	return balance, nil
}

func (r *LedgerRepository) Balance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	err := r.queryRow(ctx, `SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return balance, nil
}

func (r *LedgerRepository) ListEntries(ctx context.Context, userID string) ([]domain.LedgerEntry, error) {
	const query = `
SELECT id, user_id, amount, kind, description, draw_id, redemption_id, created_at
FROM ledger_entries
WHERE user_id = $1
ORDER BY created_at DESC, id`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Kind, &e.Description, &e.DrawID, &e.RedemptionID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *LedgerRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *LedgerRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *LedgerRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
