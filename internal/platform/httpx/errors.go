// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/qaforge/qaforge/internal/docstore"
	"github.com/qaforge/qaforge/internal/shared"
)

// Sentinel errors for the transport layer.
var (
	ErrBadRequest = errors.New("malformed request")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	var e *shared.Error
	switch {
	case errors.Is(err, ErrBadRequest):
		ProblemWith(w, ProblemDetail{Title: "Bad Request", Status: http.StatusBadRequest, Detail: err.Error(), Kind: string(shared.KindValidation)})
	case errors.Is(err, shared.ErrIdempotencyConflict):
		ProblemWith(w, ProblemDetail{Title: "Duplicate", Status: http.StatusConflict, Detail: err.Error(), Kind: string(shared.KindConflict)})
	case errors.Is(err, docstore.ErrInvalidID):
		ProblemWith(w, ProblemDetail{Title: "Invalid Identifier", Status: http.StatusBadRequest, Detail: "malformed identifier", Kind: string(shared.KindStorage)})
	case errors.As(err, &e):
		status, title := statusFor(e.Kind)
		detail := e.Message
		if e.Kind == shared.KindStorage {
			detail = ""
		}
		ProblemWith(w, ProblemDetail{Title: title, Status: status, Detail: detail, Kind: string(e.Kind), Invalid: e.Invalid})
	default:
		ProblemWith(w, ProblemDetail{Title: "Internal Error", Status: http.StatusInternalServerError, Kind: string(shared.KindStorage)})
	}
}

func statusFor(kind shared.Kind) (int, string) {
	switch kind {
	case shared.KindNotFound:
		return http.StatusNotFound, "Not Found"
	case shared.KindValidation:
		return http.StatusBadRequest, "Validation Failed"
	case shared.KindConflict:
		return http.StatusConflict, "Duplicate"
	default:
		return http.StatusInternalServerError, "Internal Error"
	}
}

// Fail logs err under msg and writes the matching problem response. Client
// errors are logged at debug level.
func Fail(w http.ResponseWriter, logger *slog.Logger, msg string, err error, attrs ...any) {
	if logger != nil {
		args := append([]any{slog.Any("error", err)}, attrs...)
		if isClientError(err) {
			logger.Debug(msg, args...)
		} else {
			logger.Error(msg, args...)
		}
	}
	RespondError(w, err)
}

func isClientError(err error) bool {
	if errors.Is(err, ErrBadRequest) || errors.Is(err, shared.ErrIdempotencyConflict) ||
		errors.Is(err, docstore.ErrInvalidID) {
		return true
	}
	var e *shared.Error
	return errors.As(err, &e) && e.Kind != shared.KindStorage
}
