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

const userHeader = "X-User-ID"

// userID pulls the authenticated user from the fronting layer's header.
func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(userHeader))
}

// PrizeDrawer is the minimal interface the draw endpoints need.
type PrizeDrawer interface {
	DrawPrize(ctx context.Context, in app.DrawPrizeInput) (app.DrawPrizeResult, error)
	ClaimPrize(ctx context.Context, in app.ClaimPrizeInput) (app.ClaimPrizeResult, error)
	SellPrize(ctx context.Context, in app.SellPrizeInput) (app.SellPrizeResult, error)
}

// HandleDrawCase returns an HTTP handler for POST /cases/{id}/draw.
func HandleDrawCase(svc PrizeDrawer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		caseID, ok := parseSubresourcePath(r.URL.Path, "/cases/", "draw")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		uid := userID(r)
		if uid == "" {
			writeError(w, http.StatusBadRequest, codeUserRequired, "user id required")
			return
		}

		var req drawCaseRequest
		if r.Body != nil && r.ContentLength != 0 {
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
		}

		res, err := svc.DrawPrize(r.Context(), app.DrawPrizeInput{
			CaseID:  caseID,
			UserID:  uid,
			BoostID: req.BoostID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, drawCaseResponse{
			DrawID:      res.Draw.ID,
			Disposition: string(res.Draw.Disposition),
			Prize: prizePayload{
				ID:           res.Prize.ID,
				Name:         res.Prize.Name,
				Kind:         string(res.Prize.Kind),
				Amount:       res.Prize.Amount,
				SellValue:    res.Prize.SellValue,
				DurationDays: res.Prize.DurationDays,
			},
			CreatedAt: res.Draw.CreatedAt,
		})
	}
}

// HandleDrawDisposition returns an HTTP handler for POST /draws/{id}/claim
// and POST /draws/{id}/sell.
func HandleDrawDisposition(svc PrizeDrawer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		drawID, action, ok := parseActionPath(r.URL.Path, "/draws/")
		if !ok || (action != "claim" && action != "sell") {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		uid := userID(r)
		if uid == "" {
			writeError(w, http.StatusBadRequest, codeUserRequired, "user id required")
			return
		}

		var req dispositionRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil || req.PrizeID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "prize_id is required")
			return
		}

		if action == "claim" {
			res, err := svc.ClaimPrize(r.Context(), app.ClaimPrizeInput{
				DrawID:  drawID,
				UserID:  uid,
				PrizeID: req.PrizeID,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, claimResponse{InventoryEntryID: res.InventoryEntryID})
			return
		}

		res, err := svc.SellPrize(r.Context(), app.SellPrizeInput{
			DrawID:  drawID,
			UserID:  uid,
			PrizeID: req.PrizeID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sellResponse{NewBalance: res.NewBalance})
	}
}

// BalanceReader exposes the ledger read surface.
type BalanceReader interface {
	Balance(ctx context.Context, userID string) (int64, error)
	ListLedger(ctx context.Context, userID string) ([]domain.LedgerEntry, error)
}

// HandleBalance returns an HTTP handler for GET /balance.
func HandleBalance(svc BalanceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		uid := userID(r)
		if uid == "" {
			writeError(w, http.StatusBadRequest, codeUserRequired, "user id required")
			return
		}

		balance, err := svc.Balance(r.Context(), uid)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
	}
}

// HandleLedger returns an HTTP handler for GET /ledger.
func HandleLedger(svc BalanceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		uid := userID(r)
		if uid == "" {
			writeError(w, http.StatusBadRequest, codeUserRequired, "user id required")
			return
		}

		entries, err := svc.ListLedger(r.Context(), uid)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		payload := make([]ledgerEntryPayload, 0, len(entries))
		for _, e := range entries {
			payload = append(payload, ledgerEntryPayload{
				ID:          e.ID,
				Amount:      e.Amount,
				Kind:        string(e.Kind),
				Description: e.Description,
				DrawID:      e.DrawID,
				CreatedAt:   e.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

// parseActionPath splits "<prefix>{id}/{action}" into its parts.
func parseActionPath(path, prefix string) (id, action string, ok bool) {
	rest, found := strings.CutPrefix(path, prefix)
	if !found {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// parseSubresourcePath matches "<prefix>{id}/<leaf>" for a fixed leaf.
func parseSubresourcePath(path, prefix, leaf string) (string, bool) {
	id, action, ok := parseActionPath(path, prefix)
	if !ok || action != leaf {
		return "", false
	}
	return id, true
}

type drawCaseRequest struct {
	BoostID string `json:"boost_id"`
}

type prizePayload struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Amount       int64  `json:"amount,omitempty"`
	SellValue    *int64 `json:"sell_value,omitempty"`
	DurationDays *int   `json:"duration_days,omitempty"`
}

type drawCaseResponse struct {
	DrawID      string       `json:"draw_id"`
	Disposition string       `json:"disposition"`
	Prize       prizePayload `json:"prize"`
	CreatedAt   time.Time    `json:"created_at"`
}

type dispositionRequest struct {
	PrizeID string `json:"prize_id"`
}

type claimResponse struct {
	InventoryEntryID string `json:"inventory_entry_id"`
}

type sellResponse struct {
	NewBalance int64 `json:"new_balance"`
}

type balanceResponse struct {
	Balance int64 `json:"balance"`
}

type ledgerEntryPayload struct {
	ID          string    `json:"id"`
	Amount      int64     `json:"amount"`
	Kind        string    `json:"kind"`
	Description string    `json:"description"`
	DrawID      *string   `json:"draw_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
