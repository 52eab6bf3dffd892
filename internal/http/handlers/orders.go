package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"delivery-relay/internal/domain"
	"delivery-relay/internal/logx"
	"delivery-relay/internal/service/dispatch"
	"delivery-relay/internal/service/lifecycle"
)

// OrderHandler serves order views, assignment plans and lifecycle actions.
type OrderHandler struct {
	lifecycle lifecycleUsecase
	plans     planUsecase
	logger    logx.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(logger logx.Logger, lc lifecycleUsecase, plans planUsecase) *OrderHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &OrderHandler{lifecycle: lc, plans: plans, logger: logger}
}

// Get handles GET /orders/{id}?role=.
// @Summary Order view
// @Description Current server status of the order and the actions the role may take
// @Tags orders
// @Produce json
// @Param id path int true "order id"
// @Param role query string false "merchant (default), courier or final_courier"
// @Success 200 {object} orderViewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid", "invalid order id")
		return
	}
	role := domain.Role(strings.TrimSpace(r.URL.Query().Get("role")))
	if role == "" {
		role = domain.RoleMerchant
	}

	view, err := h.lifecycle.View(r.Context(), id, role)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, viewToResponse(view))
}

// Plan handles GET /orders/{id}/assignment.
// Query parameters merchantCity, clientCity, lat and lon are hints used only
// when the backend cannot resolve the geography.
func (h *OrderHandler) Plan(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid", "invalid order id")
		return
	}
	hint, err := hintFromQuery(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid", err.Error())
		return
	}

	plan, err := h.plans.Plan(r.Context(), id, hint)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, planToResponse(plan))
}

// Act handles POST /orders/{id}/actions/{action}.
func (h *OrderHandler) Act(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid", "invalid order id")
		return
	}
	action := lifecycle.Action(strings.ToLower(chi.URLParam(r, "action")))
	if !action.Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid", "unknown action")
		return
	}

	var req actionRequest
	if ok := decodeJSON(h.logger, w, r, &req, false); !ok {
		return
	}

	view, err := h.lifecycle.Perform(r.Context(), lifecycle.Command{
		OrderID:        id,
		Role:           domain.Role(req.Role),
		Action:         action,
		Reason:         req.Reason,
		FinalCourierID: req.LivreurFinalID,
		Expected:       domain.DeliveryStatus(strings.ToUpper(strings.TrimSpace(req.ExpectedStatus))),
	})
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, viewToResponse(view))
}

func hintFromQuery(r *http.Request) (dispatch.Hint, error) {
	q := r.URL.Query()
	hint := dispatch.Hint{
		MerchantCity: strings.TrimSpace(q.Get("merchantCity")),
		ClientCity:   strings.TrimSpace(q.Get("clientCity")),
	}
	lat, hasLat, err := floatQuery(r, "lat")
	if err != nil || lat < -90 || lat > 90 {
		return dispatch.Hint{}, errors.New("invalid lat")
	}
	lon, hasLon, err := floatQuery(r, "lon")
	if err != nil || lon < -180 || lon > 180 {
		return dispatch.Hint{}, errors.New("invalid lon")
	}
	if hasLat != hasLon {
		return dispatch.Hint{}, errors.New("lat and lon go together")
	}
	if hasLat {
		hint.Origin = domain.Coordinate{Lat: lat, Lon: lon}
	}
	return hint, nil
}
