package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// reKeyField extracts field name from unique violation detail: "Key (field)=(value) already exists.".
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// reKeyValue extracts the duplicated value from the same detail.
	reKeyValue = regexp.MustCompile(`Key \([^)]+\)=\((.*)\) already exists`)
	// reReferencedFrom detects parent deletion: "... is still referenced from table ...".
	reReferencedFrom = regexp.MustCompile(`is still referenced from table "?([^"]+)"?`)
	// reNotPresent detects missing parent: "... is not present in table ...".
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// MapDBError maps database errors to AppError instances:
//   - pgx.ErrNoRows → NotFound
//   - unique violation on users.email → DuplicateEmail, on users.resume_id → Conflict (resume in use),
//     other unique violations → Conflict
//   - foreign key violation on a missing user → AssigneeNotFound
//   - foreign key violation on a still-referenced user → Conflict
//   - check and NOT NULL violations → Validation
//   - context timeouts/cancellations → Timeout/Canceled
//
// Unrecognized errors are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: "request was canceled", Cause: err}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{Code: ErrCodeNotFound, Message: "resource not found", Cause: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	return err
}

func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgerrcode.ForeignKeyViolation:
		return mapForeignKeyViolation(pgErr)
	case pgerrcode.CheckViolation:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "this field has an invalid value",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	case pgerrcode.NotNullViolation:
		return &AppError{
			Code:    ErrCodeValidation,
			Message: "this field is required",
			Field:   pgErr.ColumnName,
			Cause:   pgErr,
		}
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "a database error occurred",
			Cause:   pgErr,
		}
	}
}

func mapUniqueViolation(pgErr *pgconn.PgError) error {
	field := pgErr.ColumnName
	if field == "" && pgErr.Detail != "" {
		if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			field = m[1]
		}
	}
	if field == "" {
		field = inferFieldFromConstraint(pgErr.ConstraintName)
	}

	switch {
	case field == "email" || strings.Contains(field, "email"):
		e := DuplicateEmail(keyValue(pgErr.Detail))
		e.Cause = pgErr
		return e
	case field == "resume_id" || strings.Contains(pgErr.ConstraintName, "resume_id"):
		e := ResumeInUse()
		e.Cause = pgErr
		return e
	}

	return &AppError{
		Code:    ErrCodeConflict,
		Message: "this value already exists",
		Field:   field,
		Cause:   pgErr,
	}
}

func keyValue(detail string) string {
	if m := reKeyValue.FindStringSubmatch(detail); len(m) == 2 {
		return m[1]
	}
	return ""
}

func mapForeignKeyViolation(pgErr *pgconn.PgError) error {
	if m := reReferencedFrom.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return &AppError{
			Code:    ErrCodeConflict,
			Message: "cannot delete because this item is still referenced by " + strings.ToLower(m[1]),
			Cause:   pgErr,
		}
	}
	if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 && m[1] == "users" {
		return &AppError{
			Code:    ErrCodeAssigneeNotFound,
			Message: "assignee not found",
			Field:   "assignee_id",
			Cause:   pgErr,
		}
	}
	if strings.Contains(pgErr.ConstraintName, "assignee") {
		return &AppError{
			Code:    ErrCodeAssigneeNotFound,
			Message: "assignee not found",
			Field:   "assignee_id",
			Cause:   pgErr,
		}
	}
	return &AppError{
		Code:    ErrCodeConflict,
		Message: "operation violates a reference between records",
		Cause:   pgErr,
	}
}

// inferFieldFromConstraint extracts the column from constraint names of the form
// "table_field_key". Multi-column and expression constraints yield "".
func inferFieldFromConstraint(constraintName string) string {
	parts := strings.Split(constraintName, "_")
	if len(parts) != 3 {
		return ""
	}
	switch parts[1] {
	case "lower", "upper", "trim":
		return ""
	}
	return parts[1]
}
