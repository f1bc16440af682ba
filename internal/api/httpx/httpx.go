package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/baharkarakas/bloglist-backend/internal/apperr"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteErr translates err into its status and error envelope. Errors outside
// the apperr taxonomy are logged and reported as a bare 500.
func WriteErr(w http.ResponseWriter, r *http.Request, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "request_id", w.Header().Get("X-Request-Id"), "err", err)
		WriteError(w, http.StatusInternalServerError, string(apperr.KindInternal), "internal error", nil)
		return
	}
	WriteError(w, apperr.Status(ae.Kind), string(ae.Kind), ae.Message, ae.Details)
}

// DecodeJSON reads a JSON object from the request body into v. A missing or
// malformed body is a validation error.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return apperr.Validation("request body must be a JSON object", nil)
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return apperr.Validation("request body must be a JSON object", nil)
	}
	// only one value per body
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.Validation("request body must be a single JSON object", nil)
	}
	return nil
}
