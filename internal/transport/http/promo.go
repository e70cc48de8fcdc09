package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GallantsTeam/greenhack-sub002/internal/app"
)

// PromoRedeemer is the minimal interface needed to redeem a promo code.
type PromoRedeemer interface {
	RedeemPromo(ctx context.Context, userID, code string) (app.RedeemResult, error)
}

// HandleRedeemPromo returns an HTTP handler for POST /promo/redeem.
func HandleRedeemPromo(svc PromoRedeemer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		uid := userID(r)
		if uid == "" {
			writeError(w, http.StatusBadRequest, codeUserRequired, "user id required")
			return
		}

		var req redeemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil || req.Code == "" {
			writeError(w, http.StatusBadRequest, codeCodeRequired, "code is required")
			return
		}

		res, err := svc.RedeemPromo(r.Context(), uid, req.Code)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, redeemResponse{
			CreditedAmount:   res.CreditedAmount,
			NewBalance:       res.NewBalance,
			InventoryEntryID: res.InventoryEntryID,
		})
	}
}

type redeemRequest struct {
	Code string `json:"code"`
}

type redeemResponse struct {
	CreditedAmount   *int64  `json:"credited_amount,omitempty"`
	NewBalance       *int64  `json:"new_balance,omitempty"`
	InventoryEntryID *string `json:"inventory_entry_id,omitempty"`
}
