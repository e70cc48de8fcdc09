package domain

import "time"

type ActivationStatus string

const (
	ActivationAvailable ActivationStatus = "available"
	ActivationPending   ActivationStatus = "pending_admin_approval"
	ActivationActive    ActivationStatus = "active"
	ActivationRejected  ActivationStatus = "rejected"
)

type InventorySource string

const (
	SourceDraw     InventorySource = "draw"
	SourcePurchase InventorySource = "purchase"
	SourcePromo    InventorySource = "promo"
)

// InventoryEntry is a user-owned grantable item. Expiry is a read-time
// computed state, never a stored transition; entries are not hard-deleted by
// normal flow.
type InventoryEntry struct {
	ID               string
	UserID           string
	ProductID        *string
	DrawID           *string
	Source           InventorySource
	IsConsumed       bool
	ActivationStatus ActivationStatus
	ActivationCode   *string
	RejectReason     *string
	DurationDays     *int
	ActivatedAt      *time.Time
	ExpiresAt        *time.Time
	CreatedAt        time.Time
}

// Expired reports whether the entry's computed lifecycle has ended.
func (e InventoryEntry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && e.ExpiresAt.Before(now)
}
