package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

type InventoryRepository struct {
	pool *pgxpool.Pool
}

func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

func (r *InventoryRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

const inventoryColumns = `id, user_id, product_id, draw_id, source, is_consumed, activation_status, activation_code, reject_reason, duration_days, activated_at, expires_at, created_at`

func (r *InventoryRepository) GetEntryForUpdate(ctx context.Context, entryID string) (domain.InventoryEntry, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_entries WHERE id = $1 FOR UPDATE`

	var e domain.InventoryEntry
	err := r.queryRow(ctx, query, entryID).Scan(
		&e.ID, &e.UserID, &e.ProductID, &e.DrawID, &e.Source, &e.IsConsumed,
		&e.ActivationStatus, &e.ActivationCode, &e.RejectReason, &e.DurationDays,
		&e.ActivatedAt, &e.ExpiresAt, &e.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.InventoryEntry{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.InventoryEntry{}, domain.ErrEntryNotFound
		}
		return domain.InventoryEntry{}, fmt.Errorf("get inventory entry: %w", err)
	}
	return e, nil
}

func (r *InventoryRepository) MarkPendingApproval(ctx context.Context, entryID, activationCode string) error {
	const stmt = `
UPDATE inventory_entries
SET activation_status = 'pending_admin_approval', activation_code = $2
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, entryID, activationCode)
	if err != nil {
		return fmt.Errorf("mark pending approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *InventoryRepository) MarkActive(ctx context.Context, entryID string, activatedAt time.Time, expiresAt *time.Time) error {
	const stmt = `
UPDATE inventory_entries
SET activation_status = 'active', is_consumed = TRUE, activated_at = $2, expires_at = $3
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, entryID, activatedAt, expiresAt)
	if err != nil {
		return fmt.Errorf("mark active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *InventoryRepository) MarkRejected(ctx context.Context, entryID, reason string) error {
	const stmt = `
UPDATE inventory_entries
SET activation_status = 'rejected', reject_reason = $2
WHERE id = $1`

	tag, err := r.exec(ctx, stmt, entryID, reason)
	if err != nil {
		return fmt.Errorf("mark rejected: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

func (r *InventoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_entries WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var e domain.InventoryEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ProductID, &e.DrawID, &e.Source, &e.IsConsumed,
			&e.ActivationStatus, &e.ActivationCode, &e.RejectReason, &e.DurationDays,
			&e.ActivatedAt, &e.ExpiresAt, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan inventory entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// insertInventoryEntry is shared by the repositories that create entries
// (draw claims, promo grants).
func insertInventoryEntry(ctx context.Context, exec func(context.Context, string, ...any) (pgconn.CommandTag, error), entry domain.InventoryEntry) error {
	const stmt = `
INSERT INTO inventory_entries (id, user_id, product_id, draw_id, source, is_consumed, activation_status, activation_code, reject_reason, duration_days, activated_at, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := exec(ctx, stmt,
		entry.ID,
		entry.UserID,
		entry.ProductID,
		entry.DrawID,
		entry.Source,
		entry.IsConsumed,
		entry.ActivationStatus,
		entry.ActivationCode,
		entry.RejectReason,
		entry.DurationDays,
		entry.ActivatedAt,
		entry.ExpiresAt,
		entry.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create inventory entry: %w", err)
	}
	return nil
}

func (r *InventoryRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *InventoryRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *InventoryRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
