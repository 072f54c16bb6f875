// Package httputil centralizes JSON encoding and error translation for the
// HTTP layer so every handler emits the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "rutasegura/pkg/domain-errors"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors omit the description so infrastructure details never
// reach clients; everything else includes the message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	message := ""
	var de *dErrors.Error
	if errors.As(err, &de) {
		code = de.Code
		message = de.Message
	}
	resp := errorResponse{Error: string(code)}
	if code != dErrors.CodeInternal && code != dErrors.CodeStoreUnavailable {
		resp.ErrorDescription = message
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), resp)
}

// Decode reads and validates a JSON request body into T. On failure it
// writes a bad_request response and returns false; handlers just return.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var req T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(r.Context(), "malformed request body", "error", err)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed JSON body"))
		return req, false
	}
	return req, true
}
