package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/splitledger/internal/adapter/export"
	"github.com/iho/splitledger/internal/adapter/http/dto"
	"github.com/iho/splitledger/internal/domain"
	"github.com/iho/splitledger/internal/usecase"
)

// ReportService builds financial reports.
type ReportService interface {
	AccountReport(ctx context.Context, accountID string, input usecase.ReportInput) (*domain.Report, error)
	ConsolidatedReport(ctx context.Context, input usecase.ReportInput) (*domain.Report, error)
}

// ReportHandler handles report requests.
type ReportHandler struct {
	reports ReportService
	logger  zerolog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// Account returns the report of one account.
func (h *ReportHandler) Account(w http.ResponseWriter, r *http.Request) {
	report, ok := h.accountReport(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}

// Consolidated returns the report across all accounts.
func (h *ReportHandler) Consolidated(w http.ResponseWriter, r *http.Request) {
	input, err := dto.ReportQueryFromURL(r.URL.Query()).ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filters", err.Error())
		return
	}

	report, err := h.reports.ConsolidatedReport(r.Context(), input)
	if err != nil {
		h.logFailure(err, domain.AllAccountsID)
		writeDomainError(w, "failed to build report", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}

// Export renders the report of one account as a file.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	exporter, err := export.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid format", err.Error())
		return
	}

	report, ok := h.accountReport(w, r)
	if !ok {
		return
	}

	body, err := exporter.Render(report)
	if err != nil {
		h.logger.Error().Err(err).Str("account_id", report.Account.ID).Str("format", exporter.Extension()).Msg("report export failed")
		writeError(w, http.StatusInternalServerError, "failed to export report", "")
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(report, exporter)))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *ReportHandler) accountReport(w http.ResponseWriter, r *http.Request) (*domain.Report, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return nil, false
	}

	input, err := dto.ReportQueryFromURL(r.URL.Query()).ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filters", err.Error())
		return nil, false
	}

	var report *domain.Report
	if id == domain.AllAccountsID {
		report, err = h.reports.ConsolidatedReport(r.Context(), input)
	} else {
		report, err = h.reports.AccountReport(r.Context(), id, input)
	}
	if err != nil {
		h.logFailure(err, id)
		writeDomainError(w, "failed to build report", err)
		return nil, false
	}

	return report, true
}

func (h *ReportHandler) logFailure(err error, accountID string) {
	if mapDomainError(err) < http.StatusInternalServerError {
		return
	}
	h.logger.Error().Err(err).Str("account_id", accountID).Msg("report failed")
}
