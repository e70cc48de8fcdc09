package app

import (
	"context"
	"time"

	"github.com/GallantsTeam/greenhack-sub002/internal/clock"
	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

type CatalogRepository interface {
	CreateCase(ctx context.Context, c domain.Case) error
	CreatePrize(ctx context.Context, p domain.Prize) error
	CreateBoost(ctx context.Context, b domain.Boost) error
	SetBoostOverride(ctx context.Context, boostID, caseID string, cost int64, multiplier float64) error
	CreatePromoCode(ctx context.Context, p domain.PromoCode) error
	ListCases(ctx context.Context) ([]domain.Case, error)
	GetCase(ctx context.Context, caseID string) (domain.Case, error)
	ListActivePrizes(ctx context.Context, caseID string) ([]domain.Prize, error)
}

// CaseInvalidator drops cached reward tables after catalog writes.
type CaseInvalidator interface {
	InvalidateCase(ctx context.Context, caseID string)
}

// CatalogService is the admin back-office surface for cases, prizes, boosts
// and promo codes. The engine itself only reads this data.
type CatalogService struct {
	repo       CatalogRepository
	clock      clock.Clock
	invalidate CaseInvalidator
}

func NewCatalogService(repo CatalogRepository, clk clock.Clock, invalidate CaseInvalidator) *CatalogService {
	return &CatalogService{
		repo:       repo,
		clock:      clk,
		invalidate: invalidate,
	}
}

type CreateCaseInput struct {
	Name        string
	Price       int64
	Active      bool
	HotOfferEnd *time.Time
}

func (s *CatalogService) CreateCase(ctx context.Context, in CreateCaseInput) (domain.Case, error) {
	if in.Name == "" {
		return domain.Case{}, domain.ErrNameRequired
	}
	if in.Price < 0 {
		return domain.Case{}, domain.ErrInvalidAmount
	}

	c := domain.Case{
		ID:          newUUID(),
		Name:        in.Name,
		Price:       in.Price,
		Active:      in.Active,
		HotOfferEnd: in.HotOfferEnd,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.CreateCase(ctx, c); err != nil {
		return domain.Case{}, err
	}
	return c, nil
}

type CreatePrizeInput struct {
	CaseID       string
	Name         string
	Kind         domain.PrizeKind
	ProductID    *string
	DurationDays *int
	Amount       int64
	SellValue    *int64
	Weight       float64
}

func (s *CatalogService) CreatePrize(ctx context.Context, in CreatePrizeInput) (domain.Prize, error) {
	if in.CaseID == "" {
		return domain.Prize{}, domain.ErrInvalidID
	}
	if in.Name == "" {
		return domain.Prize{}, domain.ErrNameRequired
	}
	if in.Weight <= 0 || in.Weight > 1 {
		return domain.Prize{}, domain.ErrInvalidWeight
	}
	switch in.Kind {
	case domain.PrizeKindCurrency:
		if in.Amount <= 0 {
			return domain.Prize{}, domain.ErrInvalidAmount
		}
	case domain.PrizeKindProduct:
		if in.SellValue != nil && *in.SellValue < 0 {
			return domain.Prize{}, domain.ErrInvalidAmount
		}
	default:
		return domain.Prize{}, domain.ErrInvalidAmount
	}

	p := domain.Prize{
		ID:           newUUID(),
		CaseID:       in.CaseID,
		Name:         in.Name,
		Kind:         in.Kind,
		ProductID:    in.ProductID,
		DurationDays: in.DurationDays,
		Amount:       in.Amount,
		SellValue:    in.SellValue,
		Weight:       in.Weight,
		Active:       true,
	}
	if err := s.repo.CreatePrize(ctx, p); err != nil {
		return domain.Prize{}, err
	}
	s.invalidateCase(ctx, in.CaseID)
	return p, nil
}

type CreateBoostInput struct {
	Name       string
	Cost       int64
	Multiplier float64
}

func (s *CatalogService) CreateBoost(ctx context.Context, in CreateBoostInput) (domain.Boost, error) {
	if in.Name == "" {
		return domain.Boost{}, domain.ErrNameRequired
	}
	if in.Cost < 0 {
		return domain.Boost{}, domain.ErrInvalidAmount
	}
	if in.Multiplier <= 0 {
		return domain.Boost{}, domain.ErrInvalidWeight
	}

	b := domain.Boost{
		ID:         newUUID(),
		Name:       in.Name,
		Cost:       in.Cost,
		Multiplier: in.Multiplier,
		Active:     true,
	}
	if err := s.repo.CreateBoost(ctx, b); err != nil {
		return domain.Boost{}, err
	}
	return b, nil
}

func (s *CatalogService) SetBoostOverride(ctx context.Context, boostID, caseID string, cost int64, multiplier float64) error {
	if boostID == "" || caseID == "" {
		return domain.ErrInvalidID
	}
	if cost < 0 {
		return domain.ErrInvalidAmount
	}
	if multiplier <= 0 {
		return domain.ErrInvalidWeight
	}
	return s.repo.SetBoostOverride(ctx, boostID, caseID, cost, multiplier)
}

type CreatePromoCodeInput struct {
	Code         string
	Type         domain.PromoType
	Amount       int64
	ProductID    *string
	DurationDays *int
	MaxUses      int
	ExpiresAt    *time.Time
}

func (s *CatalogService) CreatePromoCode(ctx context.Context, in CreatePromoCodeInput) (domain.PromoCode, error) {
	if in.Code == "" {
		return domain.PromoCode{}, domain.ErrCodeRequired
	}
	if in.MaxUses <= 0 {
		return domain.PromoCode{}, domain.ErrInvalidAmount
	}
	switch in.Type {
	case domain.PromoBalanceCredit:
		if in.Amount <= 0 {
			return domain.PromoCode{}, domain.ErrInvalidAmount
		}
	case domain.PromoProductGrant:
		if in.ProductID == nil {
			return domain.PromoCode{}, domain.ErrInvalidID
		}
	default:
		return domain.PromoCode{}, domain.ErrInvalidAmount
	}

	p := domain.PromoCode{
		ID:           newUUID(),
		Code:         in.Code,
		Type:         in.Type,
		Amount:       in.Amount,
		ProductID:    in.ProductID,
		DurationDays: in.DurationDays,
		MaxUses:      in.MaxUses,
		ExpiresAt:    in.ExpiresAt,
		Active:       true,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.repo.CreatePromoCode(ctx, p); err != nil {
		return domain.PromoCode{}, err
	}
	return p, nil
}

func (s *CatalogService) ListCases(ctx context.Context) ([]domain.Case, error) {
	return s.repo.ListCases(ctx)
}

func (s *CatalogService) GetCase(ctx context.Context, caseID string) (domain.Case, []domain.Prize, error) {
	if caseID == "" {
		return domain.Case{}, nil, domain.ErrInvalidID
	}
	c, err := s.repo.GetCase(ctx, caseID)
	if err != nil {
		return domain.Case{}, nil, err
	}
	prizes, err := s.repo.ListActivePrizes(ctx, caseID)
	if err != nil {
		return domain.Case{}, nil, err
	}
	return c, prizes, nil
}

func (s *CatalogService) invalidateCase(ctx context.Context, caseID string) {
	if s.invalidate != nil {
		s.invalidate.InvalidateCase(ctx, caseID)
	}
}
