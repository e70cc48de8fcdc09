package http

import (
	"encoding/json"
	"net/http"

	"github.com/GallantsTeam/greenhack-sub002/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeUserRequired       = "user_required"
	codeInvalidID          = "invalid_id"
	codeNameRequired       = "name_required"
	codeCodeRequired       = "code_required"
	codeInvalidAmount      = "invalid_amount"
	codeInvalidWeight      = "invalid_weight"
	codeCaseNotFound       = "case_not_found"
	codeBoostNotFound      = "boost_not_found"
	codeInsufficientFunds  = "insufficient_funds"
	codeInvalidDraw        = "invalid_draw"
	codeNotSellable        = "not_sellable"
	codeEntryNotFound      = "entry_not_found"
	codeAlreadyPending     = "already_pending"
	codeAlreadyActive      = "already_active"
	codeNotPending         = "not_pending"
	codeNotAvailable       = "not_available"
	codePromoNotFound      = "code_not_found"
	codePromoInactive      = "code_inactive"
	codePromoExpired       = "code_expired"
	codeUsesExhausted      = "uses_exhausted"
	codeAlreadyRedeemed    = "already_redeemed"
	codePromoTaken         = "code_taken"
	codeUserNotFound       = "user_not_found"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeDomainError maps engine sentinels onto HTTP statuses and stable codes.
func writeDomainError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, codeInternalError
	msg := err.Error()

	switch err {
	case domain.ErrInvalidID:
		status, code = http.StatusBadRequest, codeInvalidID
	case domain.ErrNameRequired:
		status, code = http.StatusBadRequest, codeNameRequired
	case domain.ErrCodeRequired:
		status, code = http.StatusBadRequest, codeCodeRequired
	case domain.ErrInvalidAmount:
		status, code = http.StatusBadRequest, codeInvalidAmount
	case domain.ErrInvalidWeight:
		status, code = http.StatusBadRequest, codeInvalidWeight
	case domain.ErrCaseNotFound:
		status, code = http.StatusNotFound, codeCaseNotFound
	case domain.ErrBoostNotFound:
		status, code = http.StatusNotFound, codeBoostNotFound
	case domain.ErrEntryNotFound:
		status, code = http.StatusNotFound, codeEntryNotFound
	case domain.ErrUserNotFound:
		status, code = http.StatusNotFound, codeUserNotFound
	case domain.ErrCodeNotFound:
		status, code = http.StatusNotFound, codePromoNotFound
	case domain.ErrInsufficientFunds:
		status, code = http.StatusPaymentRequired, codeInsufficientFunds
	case domain.ErrInvalidDraw:
		status, code = http.StatusConflict, codeInvalidDraw
	case domain.ErrNotSellable:
		status, code = http.StatusConflict, codeNotSellable
	case domain.ErrAlreadyPending:
		status, code = http.StatusConflict, codeAlreadyPending
	case domain.ErrAlreadyActive:
		status, code = http.StatusConflict, codeAlreadyActive
	case domain.ErrNotPending:
		status, code = http.StatusConflict, codeNotPending
	case domain.ErrNotAvailable:
		status, code = http.StatusConflict, codeNotAvailable
	case domain.ErrCodeInactive:
		status, code = http.StatusConflict, codePromoInactive
	case domain.ErrCodeExpired:
		status, code = http.StatusConflict, codePromoExpired
	case domain.ErrUsesExhausted:
		status, code = http.StatusConflict, codeUsesExhausted
	case domain.ErrAlreadyRedeemed:
		status, code = http.StatusConflict, codeAlreadyRedeemed
	case domain.ErrCodeTaken:
		status, code = http.StatusConflict, codePromoTaken
	default:
		msg = "internal error"
	}

	writeError(w, status, code, msg)
}
