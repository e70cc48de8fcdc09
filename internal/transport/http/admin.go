package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/GallantsTeam/greenhack-sub002/internal/app"
	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

// ActivationApprover is the admin slice of the activation lifecycle.
type ActivationApprover interface {
	Approve(ctx context.Context, entryID string) error
	Reject(ctx context.Context, entryID, reason string) error
}

// HandleAdminInventory returns an HTTP handler for
// POST /admin/inventory/{id}/approve and POST /admin/inventory/{id}/reject.
func HandleAdminInventory(svc ActivationApprover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		entryID, action, ok := parseActionPath(r.URL.Path, "/admin/inventory/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch action {
		case "approve":
			if err := svc.Approve(r.Context(), entryID); err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, ackResponse{Status: "active"})
		case "reject":
			var req rejectRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if err := svc.Reject(r.Context(), entryID, req.Reason); err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, ackResponse{Status: "rejected"})
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

// CatalogAdmin is the back-office catalog surface.
type CatalogAdmin interface {
	CreateCase(ctx context.Context, in app.CreateCaseInput) (domain.Case, error)
	CreatePrize(ctx context.Context, in app.CreatePrizeInput) (domain.Prize, error)
	CreateBoost(ctx context.Context, in app.CreateBoostInput) (domain.Boost, error)
	SetBoostOverride(ctx context.Context, boostID, caseID string, cost int64, multiplier float64) error
	CreatePromoCode(ctx context.Context, in app.CreatePromoCodeInput) (domain.PromoCode, error)
	ListCases(ctx context.Context) ([]domain.Case, error)
	GetCase(ctx context.Context, caseID string) (domain.Case, []domain.Prize, error)
}

// HandleAdminCases returns an HTTP handler for /admin/cases.
func HandleAdminCases(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cases, err := svc.ListCases(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			payload := make([]casePayload, 0, len(cases))
			for _, c := range cases {
				payload = append(payload, casePayload{
					ID:          c.ID,
					Name:        c.Name,
					Price:       c.Price,
					Active:      c.Active,
					HotOfferEnd: c.HotOfferEnd,
				})
			}
			writeJSON(w, http.StatusOK, payload)
		case http.MethodPost:
			var req createCaseRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			c, err := svc.CreateCase(r.Context(), app.CreateCaseInput{
				Name:        req.Name,
				Price:       req.Price,
				Active:      req.Active,
				HotOfferEnd: req.HotOfferEnd,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, casePayload{
				ID:          c.ID,
				Name:        c.Name,
				Price:       c.Price,
				Active:      c.Active,
				HotOfferEnd: c.HotOfferEnd,
			})
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleAdminPrizes returns an HTTP handler for GET /admin/cases/{id} and
// POST /admin/cases/{id}/prizes.
func HandleAdminPrizes(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			caseID := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin/cases/"), "/")
			if caseID == "" || strings.Contains(caseID, "/") {
				writeError(w, http.StatusNotFound, codeNotFound, "not found")
				return
			}
			c, prizes, err := svc.GetCase(r.Context(), caseID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			prizePayloads := make([]prizePayload, 0, len(prizes))
			for _, p := range prizes {
				prizePayloads = append(prizePayloads, prizePayload{
					ID:           p.ID,
					Name:         p.Name,
					Kind:         string(p.Kind),
					Amount:       p.Amount,
					SellValue:    p.SellValue,
					DurationDays: p.DurationDays,
				})
			}
			writeJSON(w, http.StatusOK, caseDetailPayload{
				Case:   casePayload{ID: c.ID, Name: c.Name, Price: c.Price, Active: c.Active, HotOfferEnd: c.HotOfferEnd},
				Prizes: prizePayloads,
			})
			return
		}

		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		caseID, ok := parseSubresourcePath(r.URL.Path, "/admin/cases/", "prizes")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req createPrizeRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		p, err := svc.CreatePrize(r.Context(), app.CreatePrizeInput{
			CaseID:       caseID,
			Name:         req.Name,
			Kind:         domain.PrizeKind(req.Kind),
			ProductID:    req.ProductID,
			DurationDays: req.DurationDays,
			Amount:       req.Amount,
			SellValue:    req.SellValue,
			Weight:       req.Weight,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, prizePayload{
			ID:           p.ID,
			Name:         p.Name,
			Kind:         string(p.Kind),
			Amount:       p.Amount,
			SellValue:    p.SellValue,
			DurationDays: p.DurationDays,
		})
	}
}

// HandleAdminBoosts returns an HTTP handler for POST /admin/boosts and
// POST /admin/boosts/{id}/override.
func HandleAdminBoosts(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		if r.URL.Path == "/admin/boosts" {
			var req createBoostRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			b, err := svc.CreateBoost(r.Context(), app.CreateBoostInput{
				Name:       req.Name,
				Cost:       req.Cost,
				Multiplier: req.Multiplier,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, boostPayload{
				ID:         b.ID,
				Name:       b.Name,
				Cost:       b.Cost,
				Multiplier: b.Multiplier,
			})
			return
		}

		boostID, ok := parseSubresourcePath(r.URL.Path, "/admin/boosts/", "override")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		var req boostOverrideRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil || req.CaseID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := svc.SetBoostOverride(r.Context(), boostID, req.CaseID, req.Cost, req.Multiplier); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ackResponse{Status: "ok"})
	}
}

// HandleAdminPromoCodes returns an HTTP handler for POST /admin/promo-codes.
func HandleAdminPromoCodes(svc CatalogAdmin) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createPromoCodeRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		p, err := svc.CreatePromoCode(r.Context(), app.CreatePromoCodeInput{
			Code:         req.Code,
			Type:         domain.PromoType(req.Type),
			Amount:       req.Amount,
			ProductID:    req.ProductID,
			DurationDays: req.DurationDays,
			MaxUses:      req.MaxUses,
			ExpiresAt:    req.ExpiresAt,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, promoCodePayload{
			ID:      p.ID,
			Code:    p.Code,
			Type:    string(p.Type),
			MaxUses: p.MaxUses,
		})
	}
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type createCaseRequest struct {
	Name        string     `json:"name"`
	Price       int64      `json:"price"`
	Active      bool       `json:"active"`
	HotOfferEnd *time.Time `json:"hot_offer_end,omitempty"`
}

type casePayload struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Price       int64      `json:"price"`
	Active      bool       `json:"active"`
	HotOfferEnd *time.Time `json:"hot_offer_end,omitempty"`
}

type caseDetailPayload struct {
	Case   casePayload    `json:"case"`
	Prizes []prizePayload `json:"prizes"`
}

type createPrizeRequest struct {
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	ProductID    *string `json:"product_id,omitempty"`
	DurationDays *int    `json:"duration_days,omitempty"`
	Amount       int64   `json:"amount,omitempty"`
	SellValue    *int64  `json:"sell_value,omitempty"`
	Weight       float64 `json:"weight"`
}

type createBoostRequest struct {
	Name       string  `json:"name"`
	Cost       int64   `json:"cost"`
	Multiplier float64 `json:"multiplier"`
}

type boostPayload struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Cost       int64   `json:"cost"`
	Multiplier float64 `json:"multiplier"`
}

type boostOverrideRequest struct {
	CaseID     string  `json:"case_id"`
	Cost       int64   `json:"cost"`
	Multiplier float64 `json:"multiplier"`
}

type createPromoCodeRequest struct {
	Code         string     `json:"code"`
	Type         string     `json:"type"`
	Amount       int64      `json:"amount,omitempty"`
	ProductID    *string    `json:"product_id,omitempty"`
	DurationDays *int       `json:"duration_days,omitempty"`
	MaxUses      int        `json:"max_uses"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

type promoCodePayload struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Type    string `json:"type"`
	MaxUses int    `json:"max_uses"`
}
