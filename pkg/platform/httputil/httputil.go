// Package httputil writes JSON responses and decodes JSON requests.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "datalayer/pkg/domain-errors"
	"datalayer/pkg/platform/sentinel"
)

// MaxBodyBytes bounds a decoded request body.
const MaxBodyBytes = 1 << 20

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// Validatable request bodies are checked after decoding.
type Validatable interface {
	Validate() error
}

// WriteJSON writes v with status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps err to a status and a JSON error body. Internal errors
// never expose their description.
func WriteError(w http.ResponseWriter, err error) {
	status, code, desc := classify(err)
	resp := ErrorResponse{Error: string(code)}
	if status != http.StatusInternalServerError {
		resp.ErrorDescription = desc
	}
	WriteJSON(w, status, resp)
}

func classify(err error) (int, dErrors.Code, string) {
	if de, ok := dErrors.As(err); ok {
		return statusFor(de.Code), de.Code, de.Message
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return http.StatusNotFound, dErrors.CodeNotFound, "not found"
	case errors.Is(err, sentinel.ErrUnavailable):
		return http.StatusServiceUnavailable, dErrors.CodeUnavailable, "temporarily unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, dErrors.CodeTimeout, "request timed out"
	}
	return http.StatusInternalServerError, dErrors.CodeInternal, ""
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndPrepare decodes the JSON body of r into a T and validates it when
// T implements Validatable. On failure the error response is written and ok
// is false.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req := new(T)
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			err = dErrors.New(dErrors.CodeBadRequest, "request body is required")
		} else {
			err = dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid JSON body")
		}
		logDecodeFailure(ctx, logger, requestID, err)
		WriteError(w, err)
		return nil, false
	}

	if v, ok := any(req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			logDecodeFailure(ctx, logger, requestID, err)
			WriteError(w, err)
			return nil, false
		}
	}
	return req, true
}

func logDecodeFailure(ctx context.Context, logger *slog.Logger, requestID string, err error) {
	if logger == nil {
		return
	}
	logger.WarnContext(ctx, "rejected request body",
		"request_id", requestID,
		"error", err,
	)
}
