package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/domain"
)

// ChargeService computes splits and creates charges.
type ChargeService interface {
	PreviewSplit(walletID string, gross decimal.Decimal, percentage *decimal.Decimal) (domain.SplitRule, error)
	CreateCharge(ctx context.Context, req domain.ChargeRequest) (*domain.Charge, error)
}

// SplitHandler handles split previews.
type SplitHandler struct {
	charges ChargeService
}

// NewSplitHandler creates a new SplitHandler.
func NewSplitHandler(charges ChargeService) *SplitHandler {
	return &SplitHandler{charges: charges}
}

// Preview computes the fixed split of a gross value.
func (h *SplitHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.SplitPreviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid split request", err.Error())
		return
	}

	split, err := h.charges.PreviewSplit(req.WalletID, req.Value, req.Percentage)
	if err != nil {
		writeDomainError(w, "invalid split", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SplitFromDomain(split))
}
