package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/target/recruit-board/internal/core"
	"github.com/target/recruit-board/internal/data/database"
	"github.com/target/recruit-board/internal/data/pgxutil"
	"github.com/target/recruit-board/internal/domain/model"
)

const (
	taskTable   = "tasks"
	taskColumns = `id, title, description, assignee_id, status, priority, created_at, updated_at`

	taskGetByIDQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	taskInsertQuery = `
		INSERT INTO tasks (title, description, assignee_id, status, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + taskColumns

	taskUpdateQuery = `
		UPDATE tasks
		SET title = $2, description = $3, assignee_id = $4, status = $5, priority = $6, updated_at = $7
		WHERE id = $1
		RETURNING ` + taskColumns
)

// patchableTaskColumns lists the single columns a partial update may touch.
//
//nolint:gochecknoglobals // read-only allowlist
var patchableTaskColumns = map[string]bool{
	"status":      true,
	"priority":    true,
	"assignee_id": true,
}

// TaskRepo provides database operations for tasks.
type TaskRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

var _ core.TaskRepository = (*TaskRepo)(nil)

// NewTaskRepo creates a new TaskRepo with real time provider.
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewTaskRepoWithTimeProvider creates a new TaskRepo with a custom time provider (useful for tests).
func NewTaskRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TaskRepo {
	return &TaskRepo{DB: db, timeProvider: tp}
}

// Create inserts a new task. An assignee that does not exist yields an
// AssigneeNotFound error and nothing is inserted.
func (r *TaskRepo) Create(ctx context.Context, in *model.TaskInput) (*model.Task, error) {
	if in == nil {
		return nil, errors.New("task input is required")
	}

	now := r.timeProvider.Now()
	out, err := pgxutil.InTx(ctx, r.DB, func(tx pgx.Tx) (*model.Task, error) {
		return collectOne[model.Task](tx.Query(ctx, taskInsertQuery,
			in.Title, in.Description, in.AssigneeID, in.Status, in.Priority, now))
	})
	if err != nil {
		return nil, mapErr(err, "task", "")
	}
	return out, nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	if err := notFoundIfMalformed("task", id); err != nil {
		return nil, err
	}

	var out *model.Task
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var qerr error
		out, qerr = collectOne[model.Task](conn.Query(ctx, taskGetByIDQuery, id))
		return qerr
	})
	if err != nil {
		return nil, mapErr(err, "task", id)
	}
	return out, nil
}

// List returns tasks matching every set field of filter, oldest first.
func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions(taskTable,
		database.WithColumns("id", "title", "description", "assignee_id", "status", "priority", "created_at", "updated_at"),
		database.WithOptionalEqual("assignee_id", filter.AssigneeID),
		database.WithOptionalEqual("status", filter.Status),
		database.WithOptionalEqual("priority", filter.Priority),
		database.WithOrderBy("created_at", "ASC"),
	))

	var out []*model.Task
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var qerr error
		out, qerr = collectAll[model.Task](conn.Query(ctx, query, args...))
		return qerr
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", mapErr(err, "task", ""))
	}
	return out, nil
}

// Update replaces every writable field of a task.
func (r *TaskRepo) Update(ctx context.Context, id string, in *model.TaskInput) (*model.Task, error) {
	if in == nil {
		return nil, errors.New("task input is required")
	}
	if err := notFoundIfMalformed("task", id); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now()
	out, err := pgxutil.InTx(ctx, r.DB, func(tx pgx.Tx) (*model.Task, error) {
		return collectOne[model.Task](tx.Query(ctx, taskUpdateQuery,
			id, in.Title, in.Description, in.AssigneeID, in.Status, in.Priority, now))
	})
	if err != nil {
		return nil, mapErr(err, "task", id)
	}
	return out, nil
}

// UpdateStatus sets only the status of a task.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id string, status model.TaskStatus) (*model.Task, error) {
	return r.updateColumn(ctx, id, "status", status)
}

// UpdateAssignee sets only the assignee of a task.
func (r *TaskRepo) UpdateAssignee(ctx context.Context, id, assigneeID string) (*model.Task, error) {
	return r.updateColumn(ctx, id, "assignee_id", assigneeID)
}

// UpdatePriority sets only the priority of a task.
func (r *TaskRepo) UpdatePriority(ctx context.Context, id string, priority model.TaskPriority) (*model.Task, error) {
	return r.updateColumn(ctx, id, "priority", priority)
}

func (r *TaskRepo) updateColumn(ctx context.Context, id, column string, value any) (*model.Task, error) {
	if !patchableTaskColumns[column] {
		return nil, fmt.Errorf("column %q cannot be patched", column)
	}
	if err := notFoundIfMalformed("task", id); err != nil {
		return nil, err
	}

	query := `UPDATE tasks SET ` + pgx.Identifier{column}.Sanitize() + ` = $2, updated_at = $3
		WHERE id = $1 RETURNING ` + taskColumns

	now := r.timeProvider.Now()
	out, err := pgxutil.InTx(ctx, r.DB, func(tx pgx.Tx) (*model.Task, error) {
		return collectOne[model.Task](tx.Query(ctx, query, id, value, now))
	})
	if err != nil {
		return nil, mapErr(err, "task", id)
	}
	return out, nil
}

// Delete removes a task. It returns false when no row matched.
func (r *TaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	if !model.IsValidID(id) {
		return false, nil
	}

	var deleted bool
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	}})
	if err != nil {
		return false, mapErr(err, "task", id)
	}
	return deleted, nil
}

type statusCountRow struct {
	Status model.TaskStatus `db:"status"`
	Count  int              `db:"count"`
}

// StatusCounts groups tasks by status, optionally restricted to one assignee.
func (r *TaskRepo) StatusCounts(ctx context.Context, assigneeID *string) (map[model.TaskStatus]int, error) {
	query, args := database.BuildListQuery(database.NewListQueryOptions(taskTable,
		database.WithColumns("status", "COUNT(*) AS count"),
		database.WithOptionalEqual("assignee_id", assigneeID),
		database.WithGroupBy("status"),
	))

	counts := make(map[model.TaskStatus]int)
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := collectAll[statusCountRow](conn.Query(ctx, query, args...))
		if err != nil {
			return err
		}
		for _, row := range rows {
			counts[row.Status] = row.Count
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("count tasks by status: %w", mapErr(err, "task", ""))
	}
	return counts, nil
}

// CountByAssignee returns how many tasks reference the given user.
func (r *TaskRepo) CountByAssignee(ctx context.Context, assigneeID string) (int, error) {
	if !model.IsValidID(assigneeID) {
		return 0, nil
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions(taskTable,
		database.WithCountOnly(),
		database.WithCondition(database.WhereCond("assignee_id", database.Equal, assigneeID)),
	))

	var n int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count tasks by assignee: %w", mapErr(err, "task", ""))
	}
	return n, nil
}
