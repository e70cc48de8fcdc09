package domain

import "time"

type PromoType string

const (
	PromoBalanceCredit PromoType = "balance_credit"
	PromoProductGrant  PromoType = "product_grant"
)

// PromoCode is a redeemable code. CurrentUses only grows and never exceeds
// MaxUses; (user, code) redeems at most once, enforced by storage.
type PromoCode struct {
	ID           string
	Code         string
	Type         PromoType
	Amount       int64
	ProductID    *string
	DurationDays *int
	MaxUses      int
	CurrentUses  int
	ExpiresAt    *time.Time
	Active       bool
	CreatedAt    time.Time
}

// Redemption links a user to a promo code they consumed.
type Redemption struct {
	ID          string
	PromoCodeID string
	UserID      string
	CreatedAt   time.Time
}
