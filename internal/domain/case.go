package domain

import "time"

// Case is a purchasable loot case. Owned by catalog administration; the
// engine only reads it.
type Case struct {
	ID          string
	Name        string
	Price       int64
	Active      bool
	HotOfferEnd *time.Time
	CreatedAt   time.Time
}

type PrizeKind string

const (
	PrizeKindProduct  PrizeKind = "product_grant"
	PrizeKindCurrency PrizeKind = "currency_grant"
)

// Prize is one slot of a case's reward table. Weight is a probability in
// (0,1]; per-case weights are expected to sum to ~1 but the resolver
// renormalizes rather than trusting that.
type Prize struct {
	ID           string
	CaseID       string
	Name         string
	Kind         PrizeKind
	ProductID    *string
	DurationDays *int
	Amount       int64
	SellValue    *int64
	Weight       float64
	Active       bool
}

// Boost is a paid multiplier applied to product-kind prize weights before
// renormalization. A case-specific override replaces cost and multiplier.
type Boost struct {
	ID         string
	Name       string
	Cost       int64
	Multiplier float64
	Active     bool
}
