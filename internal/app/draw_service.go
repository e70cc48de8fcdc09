package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GallantsTeam/greenhack-sub002/internal/clock"
	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
	"github.com/GallantsTeam/greenhack-sub002/internal/rng"
)

// CatalogReader provides the read-only catalog data the draw path needs.
type CatalogReader interface {
	GetCase(ctx context.Context, caseID string) (domain.Case, error)
	ListActivePrizes(ctx context.Context, caseID string) ([]domain.Prize, error)
	GetPrize(ctx context.Context, prizeID string) (domain.Prize, error)
	GetBoostForCase(ctx context.Context, boostID, caseID string) (domain.Boost, error)
}

type DrawRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetDrawForUpdate(ctx context.Context, drawID string) (domain.Draw, error)
	CreateDraw(ctx context.Context, draw domain.Draw) error
	// SetDispositionIfPending performs the conditional check-and-set on the
	// draw's disposition. Returns false when the draw was no longer pending.
	SetDispositionIfPending(ctx context.Context, drawID string, disposition domain.Disposition, soldValue *int64) (bool, error)
	CreateInventoryEntry(ctx context.Context, entry domain.InventoryEntry) error
}

// LedgerRepository applies balance movements. Apply writes the ledger entry
// and the denormalized balance together and returns the new balance.
type LedgerRepository interface {
	Apply(ctx context.Context, entry domain.LedgerEntry) (int64, error)
	Balance(ctx context.Context, userID string) (int64, error)
	ListEntries(ctx context.Context, userID string) ([]domain.LedgerEntry, error)
}

type DrawService struct {
	repo    DrawRepository
	catalog CatalogReader
	ledger  LedgerRepository
	clock   clock.Clock
	rand    rng.Source
	logger  *zap.Logger
}

func NewDrawService(repo DrawRepository, catalog CatalogReader, ledger LedgerRepository, clk clock.Clock, rand rng.Source, logger *zap.Logger) *DrawService {
	return &DrawService{
		repo:    repo,
		catalog: catalog,
		ledger:  ledger,
		clock:   clk,
		rand:    rand,
		logger:  logger,
	}
}

type DrawPrizeInput struct {
	CaseID  string
	UserID  string
	BoostID string
}

type DrawPrizeResult struct {
	Draw  domain.Draw
	Prize domain.Prize
}

// DrawPrize runs one randomized draw for the user. Boost cost is debited
// before the draw commits; currency prizes settle immediately as sold.
func (s *DrawService) DrawPrize(ctx context.Context, in DrawPrizeInput) (DrawPrizeResult, error) {
	caseDef, err := s.catalog.GetCase(ctx, in.CaseID)
	if err != nil {
		return DrawPrizeResult{}, err
	}
	if !caseDef.Active {
		return DrawPrizeResult{}, domain.ErrCaseNotFound
	}

	prizes, err := s.catalog.ListActivePrizes(ctx, in.CaseID)
	if err != nil {
		return DrawPrizeResult{}, err
	}
	if len(prizes) == 0 {
		return DrawPrizeResult{}, domain.ErrCaseNotFound
	}

	multiplier := 1.0
	var boost *domain.Boost
	if in.BoostID != "" {
		b, err := s.catalog.GetBoostForCase(ctx, in.BoostID, in.CaseID)
		if err != nil {
			return DrawPrizeResult{}, err
		}
		if !b.Active {
			return DrawPrizeResult{}, domain.ErrBoostNotFound
		}
		boost = &b
		multiplier = b.Multiplier
	}

	now := s.clock.Now()
	var result DrawPrizeResult

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if boost != nil && boost.Cost > 0 {
			_, err := s.ledger.Apply(txCtx, domain.LedgerEntry{
				ID:          newUUID(),
				UserID:      in.UserID,
				Amount:      -boost.Cost,
				Kind:        domain.LedgerBoostFee,
				Description: fmt.Sprintf("boost %s for case %s", boost.Name, caseDef.Name),
				CreatedAt:   now,
			})
			if err != nil {
				return s.classifyLedgerErr(err)
			}
		}

		prize := pickPrize(prizes, multiplier, s.rand.Float64())

		draw := domain.Draw{
			ID:          newUUID(),
			UserID:      in.UserID,
			CaseID:      in.CaseID,
			PrizeID:     prize.ID,
			Disposition: domain.DispositionPending,
			CreatedAt:   now,
		}

		if prize.Kind == domain.PrizeKindCurrency {
			// Currency prizes bypass pending: settled as sold with the grant
			// amount as realized value, no inventory entry.
			amount := prize.Amount
			draw.Disposition = domain.DispositionSold
			draw.SoldValue = &amount
			if err := s.repo.CreateDraw(txCtx, draw); err != nil {
				return err
			}
			drawID := draw.ID
			if _, err := s.ledger.Apply(txCtx, domain.LedgerEntry{
				ID:          newUUID(),
				UserID:      in.UserID,
				Amount:      amount,
				Kind:        domain.LedgerSellPrize,
				Description: fmt.Sprintf("currency prize from case %s", caseDef.Name),
				DrawID:      &drawID,
				CreatedAt:   now,
			}); err != nil {
				return s.classifyLedgerErr(err)
			}
		} else if err := s.repo.CreateDraw(txCtx, draw); err != nil {
			return err
		}

		result = DrawPrizeResult{Draw: draw, Prize: prize}
		return nil
	})
	if err != nil {
		return DrawPrizeResult{}, err
	}
	return result, nil
}

// pickPrize walks the cumulative distribution over renormalized effective
// weights. Stored weights are not trusted to sum to 1. The boost multiplier
// raises product-kind weights only; a uniform multiplier would cancel out
// under renormalization.
func pickPrize(prizes []domain.Prize, multiplier float64, sample float64) domain.Prize {
	weights := make([]float64, len(prizes))
	total := 0.0
	for i, p := range prizes {
		w := p.Weight
		if w < 0 {
			w = 0
		}
		if multiplier != 1.0 && p.Kind == domain.PrizeKindProduct {
			w *= multiplier
		}
		weights[i] = w
		total += w
	}

	if total <= 0 {
		// Degenerate table: fall back to uniform over definition order.
		for i := range weights {
			weights[i] = 1
		}
		total = float64(len(weights))
	}

	cumulative := 0.0
	for i, w := range weights {
		cumulative += w / total
		if sample < cumulative {
			return prizes[i]
		}
	}
	// Floating-point shortfall: the walk can end just under 1.
	return prizes[len(prizes)-1]
}

type ClaimPrizeInput struct {
	DrawID  string
	UserID  string
	PrizeID string
}

type ClaimPrizeResult struct {
	InventoryEntryID string
}

// ClaimPrize keeps a pending drawn prize as an inventory entry. Expiry is not
// stamped here; it is computed later at activation.
func (s *DrawService) ClaimPrize(ctx context.Context, in ClaimPrizeInput) (ClaimPrizeResult, error) {
	var result ClaimPrizeResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		draw, prize, err := s.pendingDraw(txCtx, in.DrawID, in.UserID, in.PrizeID)
		if err != nil {
			return err
		}

		drawID := draw.ID
		entry := domain.InventoryEntry{
			ID:               newUUID(),
			UserID:           in.UserID,
			ProductID:        prize.ProductID,
			DrawID:           &drawID,
			Source:           domain.SourceDraw,
			ActivationStatus: domain.ActivationAvailable,
			DurationDays:     prize.DurationDays,
			CreatedAt:        s.clock.Now(),
		}
		if err := s.repo.CreateInventoryEntry(txCtx, entry); err != nil {
			return err
		}

		ok, err := s.repo.SetDispositionIfPending(txCtx, draw.ID, domain.DispositionKept, nil)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidDraw
		}

		result = ClaimPrizeResult{InventoryEntryID: entry.ID}
		return nil
	})
	if err != nil {
		return ClaimPrizeResult{}, err
	}
	return result, nil
}

type SellPrizeInput struct {
	DrawID  string
	UserID  string
	PrizeID string
}

type SellPrizeResult struct {
	NewBalance int64
}

// SellPrize liquidates a pending drawn prize for its sell value.
func (s *DrawService) SellPrize(ctx context.Context, in SellPrizeInput) (SellPrizeResult, error) {
	var result SellPrizeResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		draw, prize, err := s.pendingDraw(txCtx, in.DrawID, in.UserID, in.PrizeID)
		if err != nil {
			return err
		}
		if prize.Kind == domain.PrizeKindCurrency || prize.SellValue == nil {
			return domain.ErrNotSellable
		}

		value := *prize.SellValue
		ok, err := s.repo.SetDispositionIfPending(txCtx, draw.ID, domain.DispositionSold, &value)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrInvalidDraw
		}

		drawID := draw.ID
		balance, err := s.ledger.Apply(txCtx, domain.LedgerEntry{
			ID:          newUUID(),
			UserID:      in.UserID,
			Amount:      value,
			Kind:        domain.LedgerSellPrize,
			Description: fmt.Sprintf("sold prize %s", prize.Name),
			DrawID:      &drawID,
			CreatedAt:   s.clock.Now(),
		})
		if err != nil {
			return s.classifyLedgerErr(err)
		}

		result = SellPrizeResult{NewBalance: balance}
		return nil
	})
	if err != nil {
		return SellPrizeResult{}, err
	}
	return result, nil
}

// pendingDraw loads and validates the draw for a disposition action. Any
// mismatch (ownership, prize reference, state) reads as InvalidDraw so the
// caller learns nothing about other users' draws.
func (s *DrawService) pendingDraw(ctx context.Context, drawID, userID, prizeID string) (domain.Draw, domain.Prize, error) {
	draw, err := s.repo.GetDrawForUpdate(ctx, drawID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidID) {
			return domain.Draw{}, domain.Prize{}, domain.ErrInvalidDraw
		}
		return domain.Draw{}, domain.Prize{}, err
	}
	if draw.UserID != userID || draw.PrizeID != prizeID || draw.Disposition != domain.DispositionPending {
		return domain.Draw{}, domain.Prize{}, domain.ErrInvalidDraw
	}

	prize, err := s.catalog.GetPrize(ctx, draw.PrizeID)
	if err != nil {
		return domain.Draw{}, domain.Prize{}, err
	}
	return draw, prize, nil
}

func (s *DrawService) classifyLedgerErr(err error) error {
	if errors.Is(err, domain.ErrBalanceIntegrity) {
		s.logger.Error("balance integrity violation", zap.Error(err))
	}
	return err
}

// Balance returns the user's spendable balance.
func (s *DrawService) Balance(ctx context.Context, userID string) (int64, error) {
	return s.ledger.Balance(ctx, userID)
}

// ListLedger returns the user's ledger entries, newest first.
func (s *DrawService) ListLedger(ctx context.Context, userID string) ([]domain.LedgerEntry, error) {
	return s.ledger.ListEntries(ctx, userID)
}
