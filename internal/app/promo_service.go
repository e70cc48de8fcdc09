package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GallantsTeam/greenhack-sub002/internal/clock"
	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

type PromoRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetCodeForUpdate(ctx context.Context, code string) (domain.PromoCode, error)
	HasRedemption(ctx context.Context, promoCodeID, userID string) (bool, error)
	// IncrementUses bumps current_uses only while it is below max_uses.
	IncrementUses(ctx context.Context, promoCodeID string) (bool, error)
	CreateRedemption(ctx context.Context, redemption domain.Redemption) error
	CreateInventoryEntry(ctx context.Context, entry domain.InventoryEntry) error
}

// PromoService redeems promo codes. The redemption record, the use counter
// and the grant are written in one transaction; per-user uniqueness is backed
// by a storage constraint, not just the pre-check.
type PromoService struct {
	repo   PromoRepository
	ledger LedgerRepository
	clock  clock.Clock
	logger *zap.Logger
}

func NewPromoService(repo PromoRepository, ledger LedgerRepository, clk clock.Clock, logger *zap.Logger) *PromoService {
	return &PromoService{
		repo:   repo,
		ledger: ledger,
		clock:  clk,
		logger: logger,
	}
}

type RedeemResult struct {
	CreditedAmount   *int64
	NewBalance       *int64
	InventoryEntryID *string
}

func (s *PromoService) RedeemPromo(ctx context.Context, userID, code string) (RedeemResult, error) {
	if code == "" {
		return RedeemResult{}, domain.ErrCodeRequired
	}

	now := s.clock.Now()
	var result RedeemResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		promo, err := s.repo.GetCodeForUpdate(txCtx, code)
		if err != nil {
			return err
		}
		if !promo.Active {
			return domain.ErrCodeInactive
		}
		if promo.ExpiresAt != nil && promo.ExpiresAt.Before(now) {
			return domain.ErrCodeExpired
		}
		if promo.CurrentUses >= promo.MaxUses {
			return domain.ErrUsesExhausted
		}
		redeemed, err := s.repo.HasRedemption(txCtx, promo.ID, userID)
		if err != nil {
			return err
		}
		if redeemed {
			return domain.ErrAlreadyRedeemed
		}

		ok, err := s.repo.IncrementUses(txCtx, promo.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUsesExhausted
		}

		redemption := domain.Redemption{
			ID:          newUUID(),
			PromoCodeID: promo.ID,
			UserID:      userID,
			CreatedAt:   now,
		}
		// The unique index on (promo_code_id, user_id) closes the race two
		// concurrent redemptions by the same user would otherwise win.
		if err := s.repo.CreateRedemption(txCtx, redemption); err != nil {
			return err
		}

		switch promo.Type {
		case domain.PromoBalanceCredit:
			redemptionID := redemption.ID
			balance, err := s.ledger.Apply(txCtx, domain.LedgerEntry{
				ID:           newUUID(),
				UserID:       userID,
				Amount:       promo.Amount,
				Kind:         domain.LedgerPromoCredit,
				Description:  fmt.Sprintf("promo code %s", promo.Code),
				RedemptionID: &redemptionID,
				CreatedAt:    now,
			})
			if err != nil {
				if errors.Is(err, domain.ErrBalanceIntegrity) {
					s.logger.Error("balance integrity violation", zap.Error(err))
				}
				return err
			}
			amount := promo.Amount
			result = RedeemResult{CreditedAmount: &amount, NewBalance: &balance}
		case domain.PromoProductGrant:
			// Unlike case-prize claims, promo grants stamp expiry at
			// redemption time.
			entry := domain.InventoryEntry{
				ID:               newUUID(),
				UserID:           userID,
				ProductID:        promo.ProductID,
				Source:           domain.SourcePromo,
				ActivationStatus: domain.ActivationAvailable,
				DurationDays:     promo.DurationDays,
				CreatedAt:        now,
			}
			if promo.DurationDays != nil {
				exp := now.Add(time.Duration(*promo.DurationDays) * 24 * time.Hour)
				entry.ExpiresAt = &exp
			}
			if err := s.repo.CreateInventoryEntry(txCtx, entry); err != nil {
				return err
			}
			entryID := entry.ID
			result = RedeemResult{InventoryEntryID: &entryID}
		default:
			return fmt.Errorf("unknown promo type %q", promo.Type)
		}
		return nil
	})
	if err != nil {
		return RedeemResult{}, err
	}
	return result, nil
}
