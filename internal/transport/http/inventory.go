package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

// ActivationManager is the user-facing slice of the activation lifecycle.
type ActivationManager interface {
	RequestActivation(ctx context.Context, entryID, userID, activationCode string) error
	ActivateDirect(ctx context.Context, entryID, userID string) error
	ListInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
}

// HandleInventoryActions returns an HTTP handler for
// POST /inventory/{id}/request-activation and POST /inventory/{id}/activate.
func HandleInventoryActions(svc ActivationManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		entryID, action, ok := parseActionPath(r.URL.Path, "/inventory/")
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		uid := userID(r)
		if uid == "" {
			writeError(w, http.StatusBadRequest, codeUserRequired, "user id required")
			return
		}

		switch action {
		case "request-activation":
			var req requestActivationRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if err := svc.RequestActivation(r.Context(), entryID, uid, req.ActivationCode); err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusAccepted, ackResponse{Status: "pending_admin_approval"})
		case "activate":
			if err := svc.ActivateDirect(r.Context(), entryID, uid); err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, ackResponse{Status: "active"})
		default:
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
		}
	}
}

// HandleListInventory returns an HTTP handler for GET /inventory.
func HandleListInventory(svc ActivationManager) http.HandlerFunc {
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

		entries, err := svc.ListInventory(r.Context(), uid)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		now := time.Now().UTC()
		payload := make([]inventoryEntryPayload, 0, len(entries))
		for _, e := range entries {
			payload = append(payload, inventoryEntryPayload{
				ID:               e.ID,
				ProductID:        e.ProductID,
				Source:           string(e.Source),
				ActivationStatus: string(e.ActivationStatus),
				IsConsumed:       e.IsConsumed,
				DurationDays:     e.DurationDays,
				ActivatedAt:      e.ActivatedAt,
				ExpiresAt:        e.ExpiresAt,
				Expired:          e.Expired(now),
				CreatedAt:        e.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

type requestActivationRequest struct {
	ActivationCode string `json:"activation_code"`
}

type ackResponse struct {
	Status string `json:"status"`
}

type inventoryEntryPayload struct {
	ID               string     `json:"id"`
	ProductID        *string    `json:"product_id,omitempty"`
	Source           string     `json:"source"`
	ActivationStatus string     `json:"activation_status"`
	IsConsumed       bool       `json:"is_consumed"`
	DurationDays     *int       `json:"duration_days,omitempty"`
	ActivatedAt      *time.Time `json:"activated_at,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
	Expired          bool       `json:"expired"`
	CreatedAt        time.Time  `json:"created_at"`
}
