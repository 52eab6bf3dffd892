package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"delivery-relay/internal/logx"
)

// AssignmentHandler drives assignment sessions.
type AssignmentHandler struct {
	sessions sessionUsecase
	logger   logx.Logger
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(logger logx.Logger, sessions sessionUsecase) *AssignmentHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &AssignmentHandler{sessions: sessions, logger: logger}
}

// Open handles POST /orders/{id}/assignment/session.
// @Summary Open assignment session
// @Description Requires the order to be PRETE. The session polls courier availability until it is confirmed or closed.
// @Tags assignment
// @Accept json
// @Produce json
// @Param id path int true "order id"
// @Param request body openSessionRequest false "geography hints"
// @Success 201 {object} sessionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "order is not ready"
// @Router /orders/{id}/assignment/session [post]
func (h *AssignmentHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid", "invalid order id")
		return
	}
	var req openSessionRequest
	if ok := decodeJSON(h.logger, w, r, &req, true); !ok {
		return
	}

	s, err := h.sessions.Open(r.Context(), id, req.toHint())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/assignment/sessions/"+s.ID())
	writeJSON(h.logger, w, r, http.StatusCreated, snapshotToResponse(s.Snapshot()))
}

// Get handles GET /assignment/sessions/{sid}.
func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, snapshotToResponse(s.Snapshot()))
}

// SelectPickup handles PUT /assignment/sessions/{sid}/pickup.
func (h *AssignmentHandler) SelectPickup(w http.ResponseWriter, r *http.Request) {
	h.selectCourier(w, r, func(s assignmentSession, id int64) error { return s.SelectPickup(id) })
}

// SelectDelivery handles PUT /assignment/sessions/{sid}/delivery.
func (h *AssignmentHandler) SelectDelivery(w http.ResponseWriter, r *http.Request) {
	h.selectCourier(w, r, func(s assignmentSession, id int64) error { return s.SelectDelivery(id) })
}

func (h *AssignmentHandler) selectCourier(w http.ResponseWriter, r *http.Request, apply func(assignmentSession, int64) error) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req selectCourierRequest
	if ok := decodeJSON(h.logger, w, r, &req, false); !ok {
		return
	}
	if err := apply(s, req.CourierID); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, snapshotToResponse(s.Snapshot()))
}

// SetDetails handles PUT /assignment/sessions/{sid}/details.
func (h *AssignmentHandler) SetDetails(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req detailsRequest
	if ok := decodeJSON(h.logger, w, r, &req, false); !ok {
		return
	}
	if err := s.SetDetails(req.toModel()); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, snapshotToResponse(s.Snapshot()))
}

// Quote handles POST /assignment/sessions/{sid}/quote.
func (h *AssignmentHandler) Quote(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	q, err := s.RequestDetailedQuote(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, quoteToResponse(q))
}

// Confirm handles POST /assignment/sessions/{sid}/confirm.
// The session is closed once the backend accepted the assignment.
func (h *AssignmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	conf, err := h.sessions.Confirm(r.Context(), chi.URLParam(r, "sid"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, confirmationToResponse(conf))
}

// Close handles DELETE /assignment/sessions/{sid}.
func (h *AssignmentHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(chi.URLParam(r, "sid")); err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AssignmentHandler) session(w http.ResponseWriter, r *http.Request) (assignmentSession, bool) {
	s, err := h.sessions.Get(chi.URLParam(r, "sid"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return nil, false
	}
	return s, true
}
