package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/recruit-board/internal/core"
	"github.com/target/recruit-board/internal/data/pgxutil"
	"github.com/target/recruit-board/internal/domain/model"
)

const (
	userColumns = `id, name, email, notes, resume_id, role, created_at, updated_at`

	userGetByIDQuery = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	userLockByIDQuery = `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`

	userListQuery = `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC`

	userInsertQuery = `
		INSERT INTO users (name, email, notes, resume_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + userColumns

	userUpdateQuery = `
		UPDATE users
		SET name = $2, email = $3, notes = $4, resume_id = $5, role = $6, updated_at = $7
		WHERE id = $1
		RETURNING ` + userColumns
)

// UserRepo provides database operations for users.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.UserRepository = (*UserRepo)(nil)

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new user. A duplicate email yields a DuplicateEmail error
// and the insert is rolled back.
func (r *UserRepo) Create(ctx context.Context, in *model.UserInput) (*model.User, error) {
	if in == nil {
		return nil, errors.New("user input is required")
	}

	now := r.timeProvider.Now()
	out, err := pgxutil.InTx(ctx, r.DB, func(tx pgx.Tx) (*model.User, error) {
		return collectOne[model.User](tx.Query(ctx, userInsertQuery,
			in.Name, in.Email, in.Notes, in.ResumeID, in.Role, now))
	})
	if err != nil {
		return nil, mapErr(err, "user", "")
	}
	return out, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := notFoundIfMalformed("user", id); err != nil {
		return nil, err
	}

	var out *model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var qerr error
		out, qerr = collectOne[model.User](conn.Query(ctx, userGetByIDQuery, id))
		return qerr
	})
	if err != nil {
		return nil, mapErr(err, "user", id)
	}
	return out, nil
}

// Exists reports whether a user with the given id exists.
func (r *UserRepo) Exists(ctx context.Context, id string) (bool, error) {
	if !model.IsValidID(id) {
		return false, nil
	}

	var exists bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", mapErr(err, "user", id))
	}
	return exists, nil
}

// List returns every user, oldest first.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	var out []*model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var qerr error
		out, qerr = collectAll[model.User](conn.Query(ctx, userListQuery))
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", mapErr(err, "user", ""))
	}
	return out, nil
}

// Update replaces every writable field of a user. The previous row is read
// under a row lock in the same transaction, so the returned change reflects
// exactly what this update overwrote.
func (r *UserRepo) Update(ctx context.Context, id string, in *model.UserInput) (*core.UserChange, error) {
	if in == nil {
		return nil, errors.New("user input is required")
	}
	if err := notFoundIfMalformed("user", id); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now()
	change, err := pgxutil.InTx(ctx, r.DB, func(tx pgx.Tx) (*core.UserChange, error) {
		prev, err := collectOne[model.User](tx.Query(ctx, userLockByIDQuery, id))
		if err != nil {
			return nil, err
		}
		cur, err := collectOne[model.User](tx.Query(ctx, userUpdateQuery,
			id, in.Name, in.Email, in.Notes, in.ResumeID, in.Role, now))
		if err != nil {
			return nil, err
		}
		return &core.UserChange{Previous: prev, Current: cur}, nil
	})
	if err != nil {
		return nil, mapErr(err, "user", id)
	}
	return change, nil
}

// Delete removes a user. It returns false when no row matched. Deleting a
// user that still has assigned tasks fails with a Conflict error.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !model.IsValidID(id) {
		return false, nil
	}

	var deleted bool
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	}})
	if err != nil {
		return false, mapErr(err, "user", id)
	}
	return deleted, nil
}

// ListResumeIDs returns the resume ids referenced by any user.
func (r *UserRepo) ListResumeIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT DISTINCT resume_id FROM users WHERE resume_id IS NOT NULL ORDER BY resume_id`)
		if err != nil {
			return err
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list resume ids: %w", mapErr(err, "user", ""))
	}
	return ids, nil
}
