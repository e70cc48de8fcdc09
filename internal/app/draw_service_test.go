package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/GallantsTeam/greenhack-sub002/internal/clock"
	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
	"github.com/GallantsTeam/greenhack-sub002/internal/rng"
)

func TestDrawService_DrawPrize(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	productID := "product-1"
	sellValue := int64(40)

	baseCase := domain.Case{ID: "case-1", Name: "Starter", Price: 100, Active: true}
	productPrize := domain.Prize{
		ID: "prize-product", CaseID: "case-1", Name: "Game Key",
		Kind: domain.PrizeKindProduct, ProductID: &productID,
		SellValue: &sellValue, Weight: 0.7, Active: true,
	}
	currencyPrize := domain.Prize{
		ID: "prize-currency", CaseID: "case-1", Name: "50 Coins",
		Kind: domain.PrizeKindCurrency, Amount: 50, Weight: 0.3, Active: true,
	}

	makeSvc := func(catalog *fakeCatalog, ledger *fakeLedger, samples ...float64) (*DrawService, *fakeDrawRepo) {
		repo := newFakeDrawRepo()
		svc := NewDrawService(repo, catalog, ledger, clock.NewFixed(now), rng.NewFixed(samples...), zap.NewNop())
		return svc, repo
	}

	t.Run("low sample lands on first prize", func(t *testing.T) {
		catalog := newFakeCatalog(baseCase, []domain.Prize{productPrize, currencyPrize}, nil)
		ledger := newFakeLedger(map[string]int64{"user-1": 0})
		svc, repo := makeSvc(catalog, ledger, 0.5)

		res, err := svc.DrawPrize(context.Background(), DrawPrizeInput{CaseID: "case-1", UserID: "user-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Prize.ID != "prize-product" {
			t.Fatalf("expected prize-product, got %s", res.Prize.ID)
		}
		if res.Draw.Disposition != domain.DispositionPending {
			t.Fatalf("expected pending disposition, got %s", res.Draw.Disposition)
		}
		if len(repo.draws) != 1 {
			t.Fatalf("expected 1 draw stored, got %d", len(repo.draws))
		}
	})

	t.Run("high sample lands on last prize", func(t *testing.T) {
		catalog := newFakeCatalog(baseCase, []domain.Prize{productPrize, currencyPrize}, nil)
		ledger := newFakeLedger(map[string]int64{"user-1": 0})
		svc, _ := makeSvc(catalog, ledger, 0.95)

		res, err := svc.DrawPrize(context.Background(), DrawPrizeInput{CaseID: "case-1", UserID: "user-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Prize.ID != "prize-currency" {
			t.Fatalf("expected prize-currency, got %s", res.Prize.ID)
		}
	})

	t.Run("currency prize settles immediately", func(t *testing.T) {
		catalog := newFakeCatalog(baseCase, []domain.Prize{productPrize, currencyPrize}, nil)
		ledger := newFakeLedger(map[string]int64{"user-1": 10})
		svc, repo := makeSvc(catalog, ledger, 0.9)

		res, err := svc.DrawPrize(context.Background(), DrawPrizeInput{CaseID: "case-1", UserID: "user-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Draw.Disposition != domain.DispositionSold {
			t.Fatalf("expected sold disposition, got %s", res.Draw.Disposition)
		}
		if res.Draw.SoldValue == nil || *res.Draw.SoldValue != 50 {
			t.Fatalf("expected sold value 50, got %v", res.Draw.SoldValue)
		}
		if got := ledger.balances["user-1"]; got != 60 {
			t.Fatalf("expected balance 60, got %d", got)
		}
		if len(ledger.entries) != 1 || ledger.entries[0].Kind != domain.LedgerSellPrize {
			t.Fatalf("expected one sell_prize ledger entry, got %+v", ledger.entries)
		}
		if ledger.entries[0].DrawID == nil || *ledger.entries[0].DrawID != res.Draw.ID {
			t.Fatalf("expected ledger entry linked to draw")
		}
		if len(repo.entries) != 0 {
			t.Fatalf("currency prize must not create inventory, got %d entries", len(repo.entries))
		}
	})

	t.Run("boost fee debited before draw", func(t *testing.T) {
		boost := domain.Boost{ID: "boost-1", Name: "Lucky", Cost: 25, Multiplier: 3, Active: true}
		catalog := newFakeCatalog(baseCase, []domain.Prize{productPrize, currencyPrize}, map[string]domain.Boost{"boost-1": boost})
		ledger := newFakeLedger(map[string]int64{"user-1": 100})
		svc, _ := makeSvc(catalog, ledger, 0.5)

		_, err := svc.DrawPrize(context.Background(), DrawPrizeInput{CaseID: "case-1", UserID: "user-1", BoostID: "boost-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := ledger.balances["user-1"]; got != 75 {
			t.Fatalf("expected balance 75 after boost fee, got %d", got)
		}
		if len(ledger.entries) != 1 || ledger.entries[0].Kind != domain.LedgerBoostFee {
			t.Fatalf("expected one boost_fee entry, got %+v", ledger.entries)
		}
	})

	t.Run("boost shifts odds toward product prizes", func(t *testing.T) {
		// Unboosted: product carries 0.7 of the mass. With multiplier 3 it
		// carries 2.1/2.4 = 0.875, so a 0.8 sample flips from currency to
		// product.
		boost := domain.Boost{ID: "boost-1", Name: "Lucky", Cost: 0, Multiplier: 3, Active: true}
		catalog := newFakeCatalog(baseCase, []domain.Prize{productPrize, currencyPrize}, map[string]domain.Boost{"boost-1": boost})
		ledger := newFakeLedger(map[string]int64{"user-1": 0})

		svc, _ := makeSvc(catalog, ledger, 0.8)
		res, err := svc.DrawPrize(context.Background(), DrawPrizeInput{CaseID: "case-1", UserID: "user-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Prize.ID != "prize-currency" {
			t.Fatalf("expected currency without boost, got %s", res.Prize.ID)
		}

		svc, _ = makeSvc(catalog, ledger, 0.8)
		res, err = svc.DrawPrize(context.Background(), DrawPrizeInput{CaseID: "case-1", UserID: "user-1", BoostID: "boost-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Prize.ID != "prize-product" {
			t.Fatalf("expected product with boost, got %s", res.Prize.ID)
		}
	})

	t.Run("insufficient funds for boost leaves no draw", func(t *testing.T) {
		boost := domain.Boost{ID: "boost-1", Name: "Lucky", Cost: 25, Multiplier: 3, Active: true}
		catalog := newFakeCatalog(baseCase, []domain.Prize{productPrize, currencyPrize}, map[string]domain.Boost{"boost-1": boost})
		ledger := newFakeLedger(map[string]int64{"user-1": 10})
		svc, repo := makeSvc(catalog, ledger, 0.5)

		_, err := svc.DrawPrize(context.Background(), DrawPrizeInput{CaseID: "case-1", UserID: "user-1", BoostID: "boost-1"})
		if err != domain.ErrInsufficientFunds {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		if len(repo.draws) != 0 {
			t.Fatalf("expected no draw on failed debit, got %d", len(repo.draws))
		}
		if got := ledger.balances["user-1"]; got != 10 {
			t.Fatalf("expected balance untouched, got %d", got)
		}
	})

	t.Run("inactive case rejected", func(t *testing.T) {
		inactive := baseCase
		inactive.Active = false
		catalog := newFakeCatalog(inactive, []domain.Prize{productPrize}, nil)
		svc, _ := makeSvc(catalog, newFakeLedger(nil), 0.5)

		_, err := svc.DrawPrize(context.Background(), DrawPrizeInput{CaseID: "case-1", UserID: "user-1"})
		if err != domain.ErrCaseNotFound {
			t.Fatalf("expected ErrCaseNotFound, got %v", err)
		}
	})

	t.Run("empty reward table rejected", func(t *testing.T) {
		catalog := newFakeCatalog(baseCase, nil, nil)
		svc, _ := makeSvc(catalog, newFakeLedger(nil), 0.5)

		_, err := svc.DrawPrize(context.Background(), DrawPrizeInput{CaseID: "case-1", UserID: "user-1"})
		if err != domain.ErrCaseNotFound {
			t.Fatalf("expected ErrCaseNotFound, got %v", err)
		}
	})

	t.Run("inactive boost rejected", func(t *testing.T) {
		boost := domain.Boost{ID: "boost-1", Name: "Lucky", Cost: 25, Multiplier: 3, Active: false}
		catalog := newFakeCatalog(baseCase, []domain.Prize{productPrize}, map[string]domain.Boost{"boost-1": boost})
		svc, _ := makeSvc(catalog, newFakeLedger(nil), 0.5)

		_, err := svc.DrawPrize(context.Background(), DrawPrizeInput{CaseID: "case-1", UserID: "user-1", BoostID: "boost-1"})
		if err != domain.ErrBoostNotFound {
			t.Fatalf("expected ErrBoostNotFound, got %v", err)
		}
	})
}

func TestPickPrize(t *testing.T) {
	t.Parallel()

	productID := "p"
	prizes := []domain.Prize{
		{ID: "a", Kind: domain.PrizeKindProduct, ProductID: &productID, Weight: 0.5},
		{ID: "b", Kind: domain.PrizeKindCurrency, Amount: 10, Weight: 0.5},
	}

	t.Run("renormalizes untrusted weights", func(t *testing.T) {
		skewed := []domain.Prize{
			{ID: "a", Kind: domain.PrizeKindCurrency, Amount: 1, Weight: 2},
			{ID: "b", Kind: domain.PrizeKindCurrency, Amount: 1, Weight: 6},
		}
		if got := pickPrize(skewed, 1, 0.2); got.ID != "a" {
			t.Fatalf("expected a at sample 0.2, got %s", got.ID)
		}
		if got := pickPrize(skewed, 1, 0.3); got.ID != "b" {
			t.Fatalf("expected b at sample 0.3, got %s", got.ID)
		}
	})

	t.Run("multiplier raises product share only", func(t *testing.T) {
		// With multiplier 4: product mass 2.0 of 2.5 total = 0.8.
		if got := pickPrize(prizes, 4, 0.75); got.ID != "a" {
			t.Fatalf("expected boosted product at 0.75, got %s", got.ID)
		}
		if got := pickPrize(prizes, 1, 0.75); got.ID != "b" {
			t.Fatalf("expected currency unboosted at 0.75, got %s", got.ID)
		}
	})

	t.Run("degenerate table falls back to uniform", func(t *testing.T) {
		zeroed := []domain.Prize{
			{ID: "a", Kind: domain.PrizeKindCurrency, Amount: 1, Weight: 0},
			{ID: "b", Kind: domain.PrizeKindCurrency, Amount: 1, Weight: 0},
		}
		if got := pickPrize(zeroed, 1, 0.25); got.ID != "a" {
			t.Fatalf("expected a at 0.25, got %s", got.ID)
		}
		if got := pickPrize(zeroed, 1, 0.75); got.ID != "b" {
			t.Fatalf("expected b at 0.75, got %s", got.ID)
		}
	})

	t.Run("sample at upper edge picks last prize", func(t *testing.T) {
		if got := pickPrize(prizes, 1, 0.9999999999999999); got.ID != "b" {
			t.Fatalf("expected last prize, got %s", got.ID)
		}
	})

	t.Run("draw frequencies converge to the normalized distribution", func(t *testing.T) {
		table := []domain.Prize{
			{ID: "a", Kind: domain.PrizeKindProduct, ProductID: &productID, Weight: 0.5},
			{ID: "b", Kind: domain.PrizeKindCurrency, Amount: 10, Weight: 0.3},
			{ID: "c", Kind: domain.PrizeKindProduct, ProductID: &productID, Weight: 1.2},
		}
		// Weights sum to 2.0, so the normalized shares are 0.25, 0.15, 0.6.
		want := map[string]float64{"a": 0.25, "b": 0.15, "c": 0.6}

		const n = 100000
		counts := make(map[string]int, len(table))
		for i := 0; i < n; i++ {
			sample := (float64(i) + 0.5) / n
			counts[pickPrize(table, 1, sample).ID]++
		}

		for id, share := range want {
			got := float64(counts[id]) / n
			if got < share-0.005 || got > share+0.005 {
				t.Fatalf("prize %s: frequency %v, want ~%v", id, got, share)
			}
		}
	})
}

func TestDrawService_ClaimPrize(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	productID := "product-1"
	duration := 30
	sellValue := int64(40)

	prize := domain.Prize{
		ID: "prize-1", CaseID: "case-1", Name: "Sub",
		Kind: domain.PrizeKindProduct, ProductID: &productID,
		DurationDays: &duration, SellValue: &sellValue, Weight: 1, Active: true,
	}
	pending := domain.Draw{
		ID: "draw-1", UserID: "user-1", CaseID: "case-1", PrizeID: "prize-1",
		Disposition: domain.DispositionPending, CreatedAt: now,
	}

	makeSvc := func(draws ...domain.Draw) (*DrawService, *fakeDrawRepo, *fakeLedger) {
		catalog := newFakeCatalog(domain.Case{ID: "case-1", Active: true}, []domain.Prize{prize}, nil)
		ledger := newFakeLedger(map[string]int64{"user-1": 0})
		repo := newFakeDrawRepo(draws...)
		svc := NewDrawService(repo, catalog, ledger, clock.NewFixed(now), rng.NewFixed(0), zap.NewNop())
		return svc, repo, ledger
	}

	t.Run("claim creates inventory entry without expiry", func(t *testing.T) {
		svc, repo, _ := makeSvc(pending)

		res, err := svc.ClaimPrize(context.Background(), ClaimPrizeInput{DrawID: "draw-1", UserID: "user-1", PrizeID: "prize-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.InventoryEntryID == "" {
			t.Fatalf("expected inventory entry id")
		}
		if len(repo.entries) != 1 {
			t.Fatalf("expected 1 inventory entry, got %d", len(repo.entries))
		}
		entry := repo.entries[0]
		if entry.ActivationStatus != domain.ActivationAvailable {
			t.Fatalf("expected available status, got %s", entry.ActivationStatus)
		}
		if entry.ExpiresAt != nil {
			t.Fatalf("expiry must be stamped at activation, not claim")
		}
		if entry.DurationDays == nil || *entry.DurationDays != 30 {
			t.Fatalf("expected duration carried over, got %v", entry.DurationDays)
		}
		if entry.Source != domain.SourceDraw {
			t.Fatalf("expected draw source, got %s", entry.Source)
		}
		if repo.draws["draw-1"].Disposition != domain.DispositionKept {
			t.Fatalf("expected kept disposition, got %s", repo.draws["draw-1"].Disposition)
		}
	})

	t.Run("second disposition is rejected", func(t *testing.T) {
		svc, _, _ := makeSvc(pending)

		if _, err := svc.ClaimPrize(context.Background(), ClaimPrizeInput{DrawID: "draw-1", UserID: "user-1", PrizeID: "prize-1"}); err != nil {
			t.Fatalf("first claim: %v", err)
		}
		if _, err := svc.ClaimPrize(context.Background(), ClaimPrizeInput{DrawID: "draw-1", UserID: "user-1", PrizeID: "prize-1"}); err != domain.ErrInvalidDraw {
			t.Fatalf("expected ErrInvalidDraw on re-claim, got %v", err)
		}
		if _, err := svc.SellPrize(context.Background(), SellPrizeInput{DrawID: "draw-1", UserID: "user-1", PrizeID: "prize-1"}); err != domain.ErrInvalidDraw {
			t.Fatalf("expected ErrInvalidDraw on sell after claim, got %v", err)
		}
	})

	t.Run("foreign draw reads as invalid", func(t *testing.T) {
		svc, _, _ := makeSvc(pending)

		_, err := svc.ClaimPrize(context.Background(), ClaimPrizeInput{DrawID: "draw-1", UserID: "user-2", PrizeID: "prize-1"})
		if err != domain.ErrInvalidDraw {
			t.Fatalf("expected ErrInvalidDraw, got %v", err)
		}
	})

	t.Run("prize mismatch reads as invalid", func(t *testing.T) {
		svc, _, _ := makeSvc(pending)

		_, err := svc.ClaimPrize(context.Background(), ClaimPrizeInput{DrawID: "draw-1", UserID: "user-1", PrizeID: "prize-2"})
		if err != domain.ErrInvalidDraw {
			t.Fatalf("expected ErrInvalidDraw, got %v", err)
		}
	})

	t.Run("unknown draw reads as invalid", func(t *testing.T) {
		svc, _, _ := makeSvc()

		_, err := svc.ClaimPrize(context.Background(), ClaimPrizeInput{DrawID: "missing", UserID: "user-1", PrizeID: "prize-1"})
		if err != domain.ErrInvalidDraw {
			t.Fatalf("expected ErrInvalidDraw, got %v", err)
		}
	})
}

func TestDrawService_SellPrize(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	productID := "product-1"
	sellValue := int64(40)

	sellable := domain.Prize{
		ID: "prize-1", CaseID: "case-1", Name: "Sub",
		Kind: domain.PrizeKindProduct, ProductID: &productID,
		SellValue: &sellValue, Weight: 1, Active: true,
	}
	unsellable := domain.Prize{
		ID: "prize-2", CaseID: "case-1", Name: "Rare",
		Kind: domain.PrizeKindProduct, ProductID: &productID, Weight: 1, Active: true,
	}

	makeSvc := func(prizes []domain.Prize, draws ...domain.Draw) (*DrawService, *fakeDrawRepo, *fakeLedger) {
		catalog := newFakeCatalog(domain.Case{ID: "case-1", Active: true}, prizes, nil)
		ledger := newFakeLedger(map[string]int64{"user-1": 5})
		repo := newFakeDrawRepo(draws...)
		svc := NewDrawService(repo, catalog, ledger, clock.NewFixed(now), rng.NewFixed(0), zap.NewNop())
		return svc, repo, ledger
	}

	t.Run("sell credits the sell value", func(t *testing.T) {
		svc, repo, ledger := makeSvc([]domain.Prize{sellable}, domain.Draw{
			ID: "draw-1", UserID: "user-1", CaseID: "case-1", PrizeID: "prize-1",
			Disposition: domain.DispositionPending, CreatedAt: now,
		})

		res, err := svc.SellPrize(context.Background(), SellPrizeInput{DrawID: "draw-1", UserID: "user-1", PrizeID: "prize-1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.NewBalance != 45 {
			t.Fatalf("expected balance 45, got %d", res.NewBalance)
		}
		draw := repo.draws["draw-1"]
		if draw.Disposition != domain.DispositionSold {
			t.Fatalf("expected sold, got %s", draw.Disposition)
		}
		if draw.SoldValue == nil || *draw.SoldValue != 40 {
			t.Fatalf("expected sold value 40, got %v", draw.SoldValue)
		}
		if len(ledger.entries) != 1 || ledger.entries[0].Amount != 40 {
			t.Fatalf("expected one +40 entry, got %+v", ledger.entries)
		}
		if len(repo.entries) != 0 {
			t.Fatalf("sell must not create inventory, got %d", len(repo.entries))
		}
	})

	t.Run("prize without sell value is not sellable", func(t *testing.T) {
		svc, repo, ledger := makeSvc([]domain.Prize{unsellable}, domain.Draw{
			ID: "draw-1", UserID: "user-1", CaseID: "case-1", PrizeID: "prize-2",
			Disposition: domain.DispositionPending, CreatedAt: now,
		})

		_, err := svc.SellPrize(context.Background(), SellPrizeInput{DrawID: "draw-1", UserID: "user-1", PrizeID: "prize-2"})
		if err != domain.ErrNotSellable {
			t.Fatalf("expected ErrNotSellable, got %v", err)
		}
		if repo.draws["draw-1"].Disposition != domain.DispositionPending {
			t.Fatalf("draw must stay pending")
		}
		if len(ledger.entries) != 0 {
			t.Fatalf("no ledger entry expected")
		}
	})
}

type fakeCatalog struct {
	caseDef domain.Case
	prizes  []domain.Prize
	boosts  map[string]domain.Boost
}

func newFakeCatalog(caseDef domain.Case, prizes []domain.Prize, boosts map[string]domain.Boost) *fakeCatalog {
	return &fakeCatalog{caseDef: caseDef, prizes: prizes, boosts: boosts}
}

func (f *fakeCatalog) GetCase(_ context.Context, caseID string) (domain.Case, error) {
	if caseID != f.caseDef.ID {
		return domain.Case{}, domain.ErrCaseNotFound
	}
	return f.caseDef, nil
}

func (f *fakeCatalog) ListActivePrizes(_ context.Context, caseID string) ([]domain.Prize, error) {
	var out []domain.Prize
	for _, p := range f.prizes {
		if p.CaseID == caseID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetPrize(_ context.Context, prizeID string) (domain.Prize, error) {
	for _, p := range f.prizes {
		if p.ID == prizeID {
			return p, nil
		}
	}
	return domain.Prize{}, domain.ErrInvalidDraw
}

func (f *fakeCatalog) GetBoostForCase(_ context.Context, boostID, _ string) (domain.Boost, error) {
	b, ok := f.boosts[boostID]
	if !ok {
		return domain.Boost{}, domain.ErrBoostNotFound
	}
	return b, nil
}

type fakeDrawRepo struct {
	draws   map[string]domain.Draw
	entries []domain.InventoryEntry
}

func newFakeDrawRepo(draws ...domain.Draw) *fakeDrawRepo {
	m := make(map[string]domain.Draw)
	for _, d := range draws {
		m[d.ID] = d
	}
	return &fakeDrawRepo{draws: m}
}

func (f *fakeDrawRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeDrawRepo) GetDrawForUpdate(_ context.Context, drawID string) (domain.Draw, error) {
	d, ok := f.draws[drawID]
	if !ok {
		return domain.Draw{}, domain.ErrInvalidDraw
	}
	return d, nil
}

func (f *fakeDrawRepo) CreateDraw(_ context.Context, draw domain.Draw) error {
	f.draws[draw.ID] = draw
	return nil
}

func (f *fakeDrawRepo) SetDispositionIfPending(_ context.Context, drawID string, disposition domain.Disposition, soldValue *int64) (bool, error) {
	d, ok := f.draws[drawID]
	if !ok || d.Disposition != domain.DispositionPending {
		return false, nil
	}
	d.Disposition = disposition
	if soldValue != nil {
		d.SoldValue = soldValue
	}
	f.draws[drawID] = d
	return true, nil
}

func (f *fakeDrawRepo) CreateInventoryEntry(_ context.Context, entry domain.InventoryEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeLedger struct {
	balances map[string]int64
	entries  []domain.LedgerEntry
}

func newFakeLedger(balances map[string]int64) *fakeLedger {
	if balances == nil {
		balances = make(map[string]int64)
	}
	return &fakeLedger{balances: balances}
}

func (f *fakeLedger) Apply(_ context.Context, entry domain.LedgerEntry) (int64, error) {
	balance, ok := f.balances[entry.UserID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if balance+entry.Amount < 0 {
		return 0, domain.ErrInsufficientFunds
	}
	balance += entry.Amount
	f.balances[entry.UserID] = balance
	f.entries = append(f.entries, entry)
	return balance, nil
}

func (f *fakeLedger) Balance(_ context.Context, userID string) (int64, error) {
	balance, ok := f.balances[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	return balance, nil
}

func (f *fakeLedger) ListEntries(_ context.Context, userID string) ([]domain.LedgerEntry, error) {
	var out []domain.LedgerEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].UserID == userID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}
