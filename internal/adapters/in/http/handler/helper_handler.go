// internal/adapters/in/http/handler/helper_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"qkart/internal/domain/common"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

// decodeBody reads a request DTO and checks its validate tags, writing a 400
// on failure. dst must be a pointer to a struct.
func decodeBody(w http.ResponseWriter, r *http.Request, log zerolog.Logger, dst any) bool {
	if err := readJSON(r, dst); err != nil {
		writeError(w, r, log, common.BadRequest("invalid request body: "+err.Error()))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, r, log, common.BadRequest(validationError(err).Error()))
		return false
	}
	return true
}

func statusOf(kind common.Kind) int {
	switch kind {
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindBadRequest:
		return http.StatusBadRequest
	case common.KindForbidden:
		return http.StatusForbidden
	case common.KindConflict:
		return http.StatusConflict
	case common.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a usecase error to its status code. Internal causes are
// logged with the request id and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	code := statusOf(common.KindOf(err))
	if code >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	writeJSON(w, code, errorBody{Code: code, Message: common.MessageOf(err)})
}

func trimmed(s string) string { return strings.TrimSpace(s) }
