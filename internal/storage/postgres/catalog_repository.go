package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) GetCase(ctx context.Context, caseID string) (domain.Case, error) {
	const query = `
SELECT id, name, price, active, hot_offer_end, created_at
FROM cases
WHERE id = $1`

	var c domain.Case
	err := r.queryRow(ctx, query, caseID).
		Scan(&c.ID, &c.Name, &c.Price, &c.Active, &c.HotOfferEnd, &c.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Case{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Case{}, domain.ErrCaseNotFound
		}
		return domain.Case{}, fmt.Errorf("get case: %w", err)
	}
	return c, nil
}

func (r *CatalogRepository) ListCases(ctx context.Context) ([]domain.Case, error) {
	const query = `
SELECT id, name, price, active, hot_offer_end, created_at
FROM cases
ORDER BY created_at`

	rows, err := r.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var cases []domain.Case
	for rows.Next() {
		var c domain.Case
		if err := rows.Scan(&c.ID, &c.Name, &c.Price, &c.Active, &c.HotOfferEnd, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// ListActivePrizes returns the reward table in definition order, which is the
// tie-break order for the cumulative draw.
func (r *CatalogRepository) ListActivePrizes(ctx context.Context, caseID string) ([]domain.Prize, error) {
	const query = `
SELECT id, case_id, name, kind, product_id, duration_days, amount, sell_value, weight, active
FROM prizes
WHERE case_id = $1 AND active
ORDER BY created_at, id`

	rows, err := r.query(ctx, query, caseID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list prizes: %w", err)
	}
	defer rows.Close()

	var prizes []domain.Prize
	for rows.Next() {
		var p domain.Prize
		if err := rows.Scan(&p.ID, &p.CaseID, &p.Name, &p.Kind, &p.ProductID, &p.DurationDays, &p.Amount, &p.SellValue, &p.Weight, &p.Active); err != nil {
			return nil, fmt.Errorf("scan prize: %w", err)
		}
		prizes = append(prizes, p)
	}
	return prizes, rows.Err()
}

func (r *CatalogRepository) GetPrize(ctx context.Context, prizeID string) (domain.Prize, error) {
	const query = `
SELECT id, case_id, name, kind, product_id, duration_days, amount, sell_value, weight, active
FROM prizes
WHERE id = $1`

	var p domain.Prize
	err := r.queryRow(ctx, query, prizeID).
		Scan(&p.ID, &p.CaseID, &p.Name, &p.Kind, &p.ProductID, &p.DurationDays, &p.Amount, &p.SellValue, &p.Weight, &p.Active)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Prize{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Prize{}, domain.ErrInvalidDraw
		}
		return domain.Prize{}, fmt.Errorf("get prize: %w", err)
	}
	return p, nil
}

// GetBoostForCase resolves a boost with its case-specific override applied.
func (r *CatalogRepository) GetBoostForCase(ctx context.Context, boostID, caseID string) (domain.Boost, error) {
	const query = `
SELECT b.id, b.name, COALESCE(o.cost, b.cost), COALESCE(o.multiplier, b.multiplier), b.active
FROM boosts b
LEFT JOIN boost_case_overrides o ON o.boost_id = b.id AND o.case_id = $2
WHERE b.id = $1`

	var b domain.Boost
	err := r.queryRow(ctx, query, boostID, caseID).
		Scan(&b.ID, &b.Name, &b.Cost, &b.Multiplier, &b.Active)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Boost{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Boost{}, domain.ErrBoostNotFound
		}
		return domain.Boost{}, fmt.Errorf("get boost: %w", err)
	}
	return b, nil
}

func (r *CatalogRepository) CreateCase(ctx context.Context, c domain.Case) error {
	const stmt = `
INSERT INTO cases (id, name, price, active, hot_offer_end, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.exec(ctx, stmt, c.ID, c.Name, c.Price, c.Active, c.HotOfferEnd, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create case: %w", err)
	}
	return nil
}

func (r *CatalogRepository) CreatePrize(ctx context.Context, p domain.Prize) error {
	const stmt = `
INSERT INTO prizes (id, case_id, name, kind, product_id, duration_days, amount, sell_value, weight, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())`

	_, err := r.exec(ctx, stmt, p.ID, p.CaseID, p.Name, p.Kind, p.ProductID, p.DurationDays, p.Amount, p.SellValue, p.Weight, p.Active)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create prize: %w", err)
	}
	return nil
}

func (r *CatalogRepository) CreateBoost(ctx context.Context, b domain.Boost) error {
	const stmt = `
INSERT INTO boosts (id, name, cost, multiplier, active)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.exec(ctx, stmt, b.ID, b.Name, b.Cost, b.Multiplier, b.Active)
	if err != nil {
		return fmt.Errorf("create boost: %w", err)
	}
	return nil
}

func (r *CatalogRepository) SetBoostOverride(ctx context.Context, boostID, caseID string, cost int64, multiplier float64) error {
	const stmt = `
INSERT INTO boost_case_overrides (boost_id, case_id, cost, multiplier)
VALUES ($1, $2, $3, $4)
ON CONFLICT (boost_id, case_id) DO UPDATE SET cost = EXCLUDED.cost, multiplier = EXCLUDED.multiplier`

	_, err := r.exec(ctx, stmt, boostID, caseID, cost, multiplier)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("set boost override: %w", err)
	}
	return nil
}

func (r *CatalogRepository) CreatePromoCode(ctx context.Context, p domain.PromoCode) error {
	const stmt = `
INSERT INTO promo_codes (id, code, type, amount, product_id, duration_days, max_uses, current_uses, expires_at, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10)`

	_, err := r.exec(ctx, stmt, p.ID, p.Code, p.Type, p.Amount, p.ProductID, p.DurationDays, p.MaxUses, p.ExpiresAt, p.Active, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodeTaken
		}
		return fmt.Errorf("create promo code: %w", err)
	}
	return nil
}

func (r *CatalogRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CatalogRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *CatalogRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
