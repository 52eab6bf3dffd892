package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/logx"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Warn("json encode error", logx.String("req_id", reqID(r.Context())), logx.Err(err))
	}
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	logger.Info("http error",
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("code", code),
		logx.String("msg", msg),
	)
	writeJSON(logger, w, r, status, ErrorResponse{Error: msg, Code: code})
}

type errorMapping struct {
	err    error
	status int
	code   string
}

// Order matters: the first match wins, and wrapped errors can match more
// than one sentinel (ErrStaleState wraps ErrTransition).
var errorMappings = []errorMapping{
	{apperr.ErrReasonRequired, http.StatusBadRequest, "reason_required"},
	{apperr.ErrSelectionRequired, http.StatusBadRequest, "selection_required"},
	{apperr.ErrFinalCourierRequired, http.StatusBadRequest, "final_courier_required"},
	{apperr.ErrInvalid, http.StatusBadRequest, "invalid"},
	{apperr.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{apperr.ErrNotFound, http.StatusNotFound, "not_found"},
	{apperr.ErrCourierUnavailable, http.StatusConflict, "courier_unavailable"},
	{apperr.ErrStaleState, http.StatusConflict, "stale_state"},
	{apperr.ErrTransition, http.StatusConflict, "transition_not_allowed"},
	{apperr.ErrInFlight, http.StatusConflict, "in_flight"},
	{apperr.ErrConflict, http.StatusConflict, "conflict"},
	{apperr.ErrUpstream, http.StatusBadGateway, "upstream"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
}

// writeServiceError maps a service error to its status. Unknown errors are
// logged and answered with 500.
func writeServiceError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			writeError(logger, w, r, m.status, m.code, err.Error())
			return
		}
	}
	logger.Error("unhandled service error", logx.String("req_id", reqID(r.Context())), logx.Err(err))
	writeError(logger, w, r, http.StatusInternalServerError, "internal", "internal error")
}

const (
	bodyLimit = 1 << 20
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON decodes and validates a request body. An empty body is
// accepted when allowEmpty is set.
func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T, allowEmpty bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			writeError(logger, w, r, http.StatusBadRequest, "invalid_json", "invalid json")
			return false
		}
	} else if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid_json", "invalid json: trailing data")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(logger, w, r, http.StatusBadRequest, "invalid", "invalid field "+strings.ToLower(verrs[0].Field()))
			return false
		}
		writeError(logger, w, r, http.StatusBadRequest, "invalid", "invalid input")
		return false
	}
	return true
}

func idFromURL(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func floatQuery(r *http.Request, name string) (float64, bool, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, err
	}
	return f, true, nil
}
