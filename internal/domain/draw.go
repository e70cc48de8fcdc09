package domain

import "time"

type Disposition string

const (
	DispositionPending Disposition = "pending"
	DispositionKept    Disposition = "kept"
	DispositionSold    Disposition = "sold"
)

// Draw records one randomized prize selection. Disposition moves exactly once,
// pending -> kept or pending -> sold; currency prizes are created already sold.
type Draw struct {
	ID          string
	UserID      string
	CaseID      string
	PrizeID     string
	Disposition Disposition
	SoldValue   *int64
	CreatedAt   time.Time
}
