package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/splitledger/internal/adapter/http/dto"
)

// ChargeHandler handles charge creation.
type ChargeHandler struct {
	charges ChargeService
	logger  zerolog.Logger
}

// NewChargeHandler creates a new ChargeHandler.
func NewChargeHandler(charges ChargeService, logger zerolog.Logger) *ChargeHandler {
	return &ChargeHandler{charges: charges, logger: logger}
}

// Create creates a provider payment with a fixed split for the account.
func (h *ChargeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateChargeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	chargeReq, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid charge", err.Error())
		return
	}

	charge, err := h.charges.CreateCharge(r.Context(), chargeReq)
	if err != nil {
		if mapDomainError(err) >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("account_id", chargeReq.AccountID).Msg("charge creation failed")
		}
		writeDomainError(w, "failed to create charge", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ChargeFromDomain(charge))
}
