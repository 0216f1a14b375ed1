package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/target/recruit-board/internal/errors"
)

const internalErrorMessage = "internal server error"

// statusByCode maps application error codes to HTTP statuses.
//
//nolint:gochecknoglobals // read-only lookup table
var statusByCode = map[apperrors.ErrorCode]int{
	apperrors.ErrCodeNotFound:             http.StatusNotFound,
	apperrors.ErrCodeAssigneeNotFound:     http.StatusNotFound,
	apperrors.ErrCodeDuplicateEmail:       http.StatusBadRequest,
	apperrors.ErrCodeValidation:           http.StatusBadRequest,
	apperrors.ErrCodeConflict:             http.StatusConflict,
	apperrors.ErrCodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	apperrors.ErrCodeStorageUnavailable:   http.StatusInternalServerError,
	apperrors.ErrCodeTimeout:              http.StatusGatewayTimeout,
	apperrors.ErrCodeCanceled:             499,
	apperrors.ErrCodeInternal:             http.StatusInternalServerError,
}

// StatusForError returns the HTTP status for err. Errors without an
// application code are internal errors.
func StatusForError(err error) int {
	if status, ok := statusByCode[apperrors.GetCode(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteAppError converts err into a JSON error response. Server errors are
// logged with the request id and their detail is hidden from the client.
func WriteAppError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusForError(err)
	code := string(apperrors.GetCode(err))
	if code == "" {
		code = string(apperrors.ErrCodeInternal)
	}

	if status >= http.StatusInternalServerError {
		if logger == nil {
			logger = slog.Default()
		}
		logger.ErrorContext(r.Context(), "request failed",
			"request_id", GetRequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err)
		WriteError(w, ErrorParams{Code: status, ErrCode: code, Err: errors.New(internalErrorMessage)})
		return
	}

	WriteError(w, ErrorParams{
		Code:    status,
		ErrCode: code,
		Err:     errors.New(publicMessage(err)),
		Field:   apperrors.GetField(err),
	})
}

// publicMessage returns the message of the outermost AppError, dropping the
// operation prefixes services add while wrapping.
func publicMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
