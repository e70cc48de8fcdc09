package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GallantsTeam/greenhack-sub002/internal/clock"
	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
	"github.com/GallantsTeam/greenhack-sub002/internal/notify"
)

type InventoryRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEntryForUpdate(ctx context.Context, entryID string) (domain.InventoryEntry, error)
	MarkPendingApproval(ctx context.Context, entryID, activationCode string) error
	MarkActive(ctx context.Context, entryID string, activatedAt time.Time, expiresAt *time.Time) error
	MarkRejected(ctx context.Context, entryID, reason string) error
	ListByUser(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
}

// ActivationService drives an inventory entry through its lifecycle:
// available -> pending_admin_approval -> active | rejected, with rejected
// allowed to re-enter pending. Expiry is computed at activation time unless
// the entry was granted with one already stamped.
type ActivationService struct {
	repo     InventoryRepository
	clock    clock.Clock
	notifier notify.Notifier
	logger   *zap.Logger
}

func NewActivationService(repo InventoryRepository, clk clock.Clock, notifier notify.Notifier, logger *zap.Logger) *ActivationService {
	return &ActivationService{
		repo:     repo,
		clock:    clk,
		notifier: notifier,
		logger:   logger,
	}
}

// RequestActivation submits a key-request entry for admin approval.
func (s *ActivationService) RequestActivation(ctx context.Context, entryID, userID, activationCode string) error {
	if activationCode == "" {
		return domain.ErrCodeRequired
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		entry, err := s.repo.GetEntryForUpdate(txCtx, entryID)
		if err != nil {
			return err
		}
		if entry.UserID != userID {
			return domain.ErrEntryNotFound
		}

		switch entry.ActivationStatus {
		case domain.ActivationAvailable, domain.ActivationRejected:
			return s.repo.MarkPendingApproval(txCtx, entryID, activationCode)
		case domain.ActivationPending:
			return domain.ErrAlreadyPending
		default:
			return domain.ErrAlreadyActive
		}
	})
	if err != nil {
		return err
	}

	s.dispatch(ctx, notify.Message{
		Audience: notify.AudienceAdmin,
		Event:    "activation_requested",
		Body:     "activation request awaiting approval",
		Context:  map[string]string{"entry_id": entryID, "user_id": userID},
	})
	return nil
}

// Approve activates a pending entry, stamping activated_at and the computed
// expiry. Approving an already-active entry is a no-op success.
func (s *ActivationService) Approve(ctx context.Context, entryID string) error {
	var (
		userID       string
		transitioned bool
	)

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		entry, err := s.repo.GetEntryForUpdate(txCtx, entryID)
		if err != nil {
			return err
		}
		if entry.ActivationStatus == domain.ActivationActive {
			return nil
		}
		if entry.ActivationStatus != domain.ActivationPending {
			return domain.ErrNotPending
		}

		activatedAt, expiresAt := s.computeExpiry(entry)
		if err := s.repo.MarkActive(txCtx, entryID, activatedAt, expiresAt); err != nil {
			return err
		}
		userID = entry.UserID
		transitioned = true
		return nil
	})
	if err != nil {
		return err
	}

	if transitioned {
		s.dispatch(ctx, notify.Message{
			Audience: notify.AudienceUser,
			UserID:   userID,
			Event:    "activation_approved",
			Body:     "your product has been activated",
			Context:  map[string]string{"entry_id": entryID},
		})
	}
	return nil
}

// Reject declines a pending entry with a reason. Rejecting an already-rejected
// entry is a no-op success.
func (s *ActivationService) Reject(ctx context.Context, entryID, reason string) error {
	var (
		userID       string
		transitioned bool
	)

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		entry, err := s.repo.GetEntryForUpdate(txCtx, entryID)
		if err != nil {
			return err
		}
		if entry.ActivationStatus == domain.ActivationRejected {
			return nil
		}
		if entry.ActivationStatus != domain.ActivationPending {
			return domain.ErrNotPending
		}

		if err := s.repo.MarkRejected(txCtx, entryID, reason); err != nil {
			return err
		}
		userID = entry.UserID
		transitioned = true
		return nil
	})
	if err != nil {
		return err
	}

	if transitioned {
		s.dispatch(ctx, notify.Message{
			Audience: notify.AudienceUser,
			UserID:   userID,
			Event:    "activation_rejected",
			Body:     "your activation request was rejected",
			Context:  map[string]string{"entry_id": entryID, "reason": reason},
		})
	}
	return nil
}

// ActivateDirect activates an available entry in one step, for products that
// need no admin-issued key.
func (s *ActivationService) ActivateDirect(ctx context.Context, entryID, userID string) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		entry, err := s.repo.GetEntryForUpdate(txCtx, entryID)
		if err != nil {
			return err
		}
		if entry.UserID != userID {
			return domain.ErrEntryNotFound
		}
		if entry.ActivationStatus != domain.ActivationAvailable {
			return domain.ErrNotAvailable
		}

		activatedAt, expiresAt := s.computeExpiry(entry)
		return s.repo.MarkActive(txCtx, entryID, activatedAt, expiresAt)
	})
}

// ListInventory returns the user's inventory entries.
func (s *ActivationService) ListInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ActivationService) computeExpiry(entry domain.InventoryEntry) (time.Time, *time.Time) {
	activatedAt := s.clock.Now()
	// Promo grants carry an expiry stamped at redemption; activation keeps it.
	if entry.ExpiresAt != nil {
		return activatedAt, entry.ExpiresAt
	}
	if entry.DurationDays == nil {
		return activatedAt, nil
	}
	expiresAt := activatedAt.Add(time.Duration(*entry.DurationDays) * 24 * time.Hour)
	return activatedAt, &expiresAt
}

func (s *ActivationService) dispatch(ctx context.Context, msg notify.Message) {
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.logger.Warn("notification dispatch failed",
			zap.String("event", msg.Event),
			zap.String("audience", string(msg.Audience)),
			zap.Error(err),
		)
	}
}
