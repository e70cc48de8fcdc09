package domain

import "errors"

var (
	ErrCaseNotFound      = errors.New("case not found")
	ErrBoostNotFound     = errors.New("boost not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidDraw       = errors.New("invalid draw")
	ErrNotSellable       = errors.New("prize not sellable")
	ErrEntryNotFound     = errors.New("inventory entry not found")
	ErrAlreadyPending    = errors.New("activation already pending")
	ErrAlreadyActive     = errors.New("entry already active")
	ErrNotPending        = errors.New("entry not pending approval")
	ErrNotAvailable      = errors.New("entry not available for activation")
	ErrCodeNotFound      = errors.New("promo code not found")
	ErrCodeInactive      = errors.New("promo code inactive")
	ErrCodeExpired       = errors.New("promo code expired")
	ErrUsesExhausted     = errors.New("promo code uses exhausted")
	ErrAlreadyRedeemed   = errors.New("promo code already redeemed")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidID         = errors.New("invalid id")
	ErrNameRequired      = errors.New("name required")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidWeight     = errors.New("invalid weight")
	ErrCodeRequired      = errors.New("code required")
	ErrCodeTaken         = errors.New("promo code already exists")
)

// ErrBalanceIntegrity marks a ledger write whose denormalized balance update
// did not apply. The operation fails and the user's balance needs manual
// reconciliation against the ledger.
var ErrBalanceIntegrity = errors.New("ledger/balance integrity violation")
