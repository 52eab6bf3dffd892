package handlers

import (
	"net/http"

	"delivery-relay/internal/logx"
)

// QuoteHandler serves checkout shipping estimates.
type QuoteHandler struct {
	estimates estimateUsecase
	logger    logx.Logger
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(logger logx.Logger, estimates estimateUsecase) *QuoteHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &QuoteHandler{estimates: estimates, logger: logger}
}

// Estimate handles POST /quotes/estimate. It always answers 200 once the
// body is valid; Fallback tells the flat fee was used.
func (h *QuoteHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if ok := decodeJSON(h.logger, w, r, &req, false); !ok {
		return
	}
	est := h.estimates.Estimate(r.Context(), req.toModel())
	writeJSON(h.logger, w, r, http.StatusOK, estimateToResponse(est))
}
