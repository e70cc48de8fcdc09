package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

type DrawRepository struct {
	pool *pgxpool.Pool
}

func NewDrawRepository(pool *pgxpool.Pool) *DrawRepository {
	return &DrawRepository{pool: pool}
}

func (r *DrawRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetDrawForUpdate locks the draw row for a disposition decision. A missing
// draw reads as ErrInvalidDraw: disposition callers get the same answer for
// "never existed" and "not yours to act on".
func (r *DrawRepository) GetDrawForUpdate(ctx context.Context, drawID string) (domain.Draw, error) {
	const query = `
SELECT id, user_id, case_id, prize_id, disposition, sold_value, created_at
FROM draws
WHERE id = $1
FOR UPDATE`

	var d domain.Draw
	err := r.queryRow(ctx, query, drawID).
		Scan(&d.ID, &d.UserID, &d.CaseID, &d.PrizeID, &d.Disposition, &d.SoldValue, &d.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Draw{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Draw{}, domain.ErrInvalidDraw
		}
		return domain.Draw{}, fmt.Errorf("get draw: %w", err)
	}
	return d, nil
}

func (r *DrawRepository) CreateDraw(ctx context.Context, draw domain.Draw) error {
	const stmt = `
INSERT INTO draws (id, user_id, case_id, prize_id, disposition, sold_value, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		draw.ID,
		draw.UserID,
		draw.CaseID,
		draw.PrizeID,
		draw.Disposition,
		draw.SoldValue,
		draw.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create draw: %w", err)
	}
	return nil
}

// SetDispositionIfPending is the conditional check-and-set guarding a draw's
// single disposition transition. Concurrent claim/sell calls race here and
// exactly one observes a row update.
func (r *DrawRepository) SetDispositionIfPending(ctx context.Context, drawID string, disposition domain.Disposition, soldValue *int64) (bool, error) {
	const stmt = `
UPDATE draws
SET disposition = $2, sold_value = COALESCE($3, sold_value)
WHERE id = $1 AND disposition = 'pending'`

	tag, err := r.exec(ctx, stmt, drawID, disposition, soldValue)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("set disposition: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *DrawRepository) CreateInventoryEntry(ctx context.Context, entry domain.InventoryEntry) error {
	return insertInventoryEntry(ctx, r.exec, entry)
}

func (r *DrawRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *DrawRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
