package data

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/target/recruit-board/internal/domain/model"
	apperrors "github.com/target/recruit-board/internal/errors"
)

// collectOne scans the single row returned by a query into T. It accepts the
// (rows, err) pair straight from Query.
func collectOne[T any](rows pgx.Rows, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	v, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// collectAll scans every row returned by a query into T.
func collectAll[T any](rows pgx.Rows, err error) ([]*T, error) {
	if err != nil {
		return nil, err
	}
	vals, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, err
	}
	out := make([]*T, len(vals))
	for i := range vals {
		out[i] = &vals[i]
	}
	return out, nil
}

// mapErr converts a driver error into an AppError, naming the missing entity on no-rows.
func mapErr(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.Wrapf(err, apperrors.ErrCodeNotFound, "%s %s not found", entity, id)
	}
	return apperrors.MapDBError(err)
}

// notFoundIfMalformed returns a NotFound error for ids that can never match a UUID primary key.
func notFoundIfMalformed(entity, id string) error {
	if model.IsValidID(id) {
		return nil
	}
	return apperrors.NotFoundf("%s %s not found", entity, id)
}
