package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

type PromoRepository struct {
	pool *pgxpool.Pool
}

func NewPromoRepository(pool *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{pool: pool}
}

func (r *PromoRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *PromoRepository) GetCodeForUpdate(ctx context.Context, code string) (domain.PromoCode, error) {
	const query = `
SELECT id, code, type, amount, product_id, duration_days, max_uses, current_uses, expires_at, active, created_at
FROM promo_codes
WHERE code = $1
FOR UPDATE`

	var p domain.PromoCode
	err := r.queryRow(ctx, query, code).Scan(
		&p.ID, &p.Code, &p.Type, &p.Amount, &p.ProductID, &p.DurationDays,
		&p.MaxUses, &p.CurrentUses, &p.ExpiresAt, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.PromoCode{}, domain.ErrCodeNotFound
		}
		return domain.PromoCode{}, fmt.Errorf("get promo code: %w", err)
	}
	return p, nil
}

func (r *PromoRepository) HasRedemption(ctx context.Context, promoCodeID, userID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM promo_redemptions WHERE promo_code_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.queryRow(ctx, query, promoCodeID, userID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("check redemption: %w", err)
	}
	return exists, nil
}

// IncrementUses bumps the counter only while uses remain; current_uses can
// never pass max_uses.
func (r *PromoRepository) IncrementUses(ctx context.Context, promoCodeID string) (bool, error) {
	const stmt = `
UPDATE promo_codes
SET current_uses = current_uses + 1
WHERE id = $1 AND current_uses < max_uses`

	tag, err := r.exec(ctx, stmt, promoCodeID)
	if err != nil {
		return false, fmt.Errorf("increment uses: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PromoRepository) CreateRedemption(ctx context.Context, redemption domain.Redemption) error {
	const stmt = `
INSERT INTO promo_redemptions (id, promo_code_id, user_id, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt, redemption.ID, redemption.PromoCodeID, redemption.UserID, redemption.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRedeemed
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create redemption: %w", err)
	}
	return nil
}

func (r *PromoRepository) CreateInventoryEntry(ctx context.Context, entry domain.InventoryEntry) error {
	return insertInventoryEntry(ctx, r.exec, entry)
}

func (r *PromoRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *PromoRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
