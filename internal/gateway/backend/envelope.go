package backend

import (
	"bytes"
	"encoding/json"
	"net/http"

	"delivery-relay/internal/apperr"
)

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success *bool           `json:"success"`
	Message string          `json:"message"`
}

// decodeEnvelope accepts both the bare payload and {data, success, message}.
// An object is treated as an envelope only when it has a "data" or "success" key.
func decodeEnvelope(raw []byte, out any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	if raw[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			return err
		}
		_, hasData := probe["data"]
		_, hasSuccess := probe["success"]
		if hasData || hasSuccess {
			var env envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				return err
			}
			if env.Success != nil && !*env.Success {
				return &StatusError{Code: http.StatusOK, Message: env.Message, Err: apperr.ErrConflict}
			}
			if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
				return nil
			}
			return json.Unmarshal(env.Data, out)
		}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
