package domain

import "time"

type LedgerKind string

const (
	LedgerDeposit     LedgerKind = "deposit"
	LedgerSellPrize   LedgerKind = "sell_prize"
	LedgerPurchase    LedgerKind = "purchase"
	LedgerBoostFee    LedgerKind = "boost_fee"
	LedgerPromoCredit LedgerKind = "promo_credit"
)

// LedgerEntry is an immutable record of one balance-affecting event. The
// user's stored balance must always equal the sum of their entries.
type LedgerEntry struct {
	ID           string
	UserID       string
	Amount       int64
	Kind         LedgerKind
	Description  string
	DrawID       *string
	RedemptionID *string
	CreatedAt    time.Time
}
