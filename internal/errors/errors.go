package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeAssigneeNotFound indicates a task references a user that does not exist.
	ErrCodeAssigneeNotFound ErrorCode = "assignee_not_found"
	// ErrCodeDuplicateEmail indicates a user with the same email already exists.
	ErrCodeDuplicateEmail ErrorCode = "duplicate_email"
	// ErrCodeUnsupportedMediaType indicates an upload with a content type other than PDF.
	ErrCodeUnsupportedMediaType ErrorCode = "unsupported_media_type"
	// ErrCodeStorageUnavailable indicates the blob backend failed.
	ErrCodeStorageUnavailable ErrorCode = "storage_unavailable"
	// ErrCodeConflict indicates the operation conflicts with existing data.
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Field is the request field that caused the error, set for validation failures.
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

func newErr(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func newf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError { return newErr(ErrCodeNotFound, message) }

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError { return newf(ErrCodeNotFound, format, args...) }

// AssigneeNotFound reports that the given assignee id does not resolve to a user.
func AssigneeNotFound(assigneeID string) *AppError {
	return &AppError{
		Code:    ErrCodeAssigneeNotFound,
		Message: fmt.Sprintf("assignee %s not found", assigneeID),
		Field:   "assignee_id",
	}
}

// DuplicateEmail reports that the email is already registered. An empty email
// gives a message that does not name the address.
func DuplicateEmail(email string) *AppError {
	msg := "a user with this email already exists"
	if email != "" {
		msg = fmt.Sprintf("user with email %s already exists", email)
	}
	return &AppError{
		Code:    ErrCodeDuplicateEmail,
		Message: msg,
		Field:   "email",
	}
}

// ResumeInUse reports that a resume is already referenced by another user.
func ResumeInUse() *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: "resume is already attached to another user",
		Field:   "resume_id",
	}
}

// UnsupportedMediaType reports an upload whose content type is not accepted.
func UnsupportedMediaType(contentType string) *AppError {
	return newf(ErrCodeUnsupportedMediaType, "unsupported media type %q: only application/pdf is accepted", contentType)
}

// StorageUnavailable wraps a blob backend failure.
func StorageUnavailable(err error) *AppError {
	return Wrap(err, ErrCodeStorageUnavailable, "storage unavailable")
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError { return newErr(ErrCodeConflict, message) }

// Conflictf creates a new Conflict error with formatted message.
func Conflictf(format string, args ...any) *AppError { return newf(ErrCodeConflict, format, args...) }

// Validation creates a new Validation error.
func Validation(message string) *AppError { return newErr(ErrCodeValidation, message) }

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return newf(ErrCodeValidation, format, args...)
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError { return newErr(ErrCodeInternal, message) }

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsAssigneeNotFound checks if an error is an AssigneeNotFound error.
func IsAssigneeNotFound(err error) bool { return isCode(err, ErrCodeAssigneeNotFound) }

// IsDuplicateEmail checks if an error is a DuplicateEmail error.
func IsDuplicateEmail(err error) bool { return isCode(err, ErrCodeDuplicateEmail) }

// IsUnsupportedMediaType checks if an error is an UnsupportedMediaType error.
func IsUnsupportedMediaType(err error) bool { return isCode(err, ErrCodeUnsupportedMediaType) }

// IsStorageUnavailable checks if an error is a StorageUnavailable error.
func IsStorageUnavailable(err error) bool { return isCode(err, ErrCodeStorageUnavailable) }

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsInternal checks if an error is an Internal error.
func IsInternal(err error) bool { return isCode(err, ErrCodeInternal) }

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool { return isCode(err, ErrCodeTimeout) }

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool { return isCode(err, ErrCodeCanceled) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
