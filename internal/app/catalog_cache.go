package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/GallantsTeam/greenhack-sub002/internal/cache"
	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

// CaseBundle is the cached unit for the draw path: a case and its active
// reward table, fetched together.
type CaseBundle struct {
	Case   domain.Case    `json:"case"`
	Prizes []domain.Prize `json:"prizes"`
}

const defaultCatalogTTL = time.Minute

// CachedCatalog is a read-through decorator over a CatalogReader. Cache
// failures degrade to direct reads; they never fail a draw.
type CachedCatalog struct {
	inner  CatalogReader
	cache  cache.Cache[CaseBundle]
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedCatalog(inner CatalogReader, c cache.Cache[CaseBundle], logger *zap.Logger) *CachedCatalog {
	return &CachedCatalog{
		inner:  inner,
		cache:  c,
		ttl:    defaultCatalogTTL,
		logger: logger,
	}
}

func (c *CachedCatalog) GetCase(ctx context.Context, caseID string) (domain.Case, error) {
	bundle, err := c.bundle(ctx, caseID)
	if err != nil {
		return domain.Case{}, err
	}
	return bundle.Case, nil
}

func (c *CachedCatalog) ListActivePrizes(ctx context.Context, caseID string) ([]domain.Prize, error) {
	bundle, err := c.bundle(ctx, caseID)
	if err != nil {
		return nil, err
	}
	return bundle.Prizes, nil
}

func (c *CachedCatalog) GetPrize(ctx context.Context, prizeID string) (domain.Prize, error) {
	return c.inner.GetPrize(ctx, prizeID)
}

func (c *CachedCatalog) GetBoostForCase(ctx context.Context, boostID, caseID string) (domain.Boost, error) {
	return c.inner.GetBoostForCase(ctx, boostID, caseID)
}

// InvalidateCase drops the cached reward table after a catalog write.
func (c *CachedCatalog) InvalidateCase(ctx context.Context, caseID string) {
	if err := c.cache.Delete(ctx, caseID); err != nil {
		c.logger.Warn("catalog cache invalidation failed", zap.String("case_id", caseID), zap.Error(err))
	}
}

func (c *CachedCatalog) bundle(ctx context.Context, caseID string) (CaseBundle, error) {
	bundle, err := c.cache.Get(ctx, caseID)
	if err == nil {
		return bundle, nil
	}
	if !errors.Is(err, cache.ErrKeyNotFound) {
		c.logger.Warn("catalog cache read failed", zap.String("case_id", caseID), zap.Error(err))
	}

	caseDef, err := c.inner.GetCase(ctx, caseID)
	if err != nil {
		return CaseBundle{}, err
	}
	prizes, err := c.inner.ListActivePrizes(ctx, caseID)
	if err != nil {
		return CaseBundle{}, err
	}

	bundle = CaseBundle{Case: caseDef, Prizes: prizes}
	if err := c.cache.Set(ctx, caseID, bundle, c.ttl); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("case_id", caseID), zap.Error(err))
	}
	return bundle, nil
}
