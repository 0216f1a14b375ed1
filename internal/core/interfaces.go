package core

import (
	"context"
	"io"
	"time"

	"github.com/target/recruit-board/internal/domain/model"
)

// This file contains repository and storage interface definitions (ports in hexagonal architecture).
// Services depend on these interfaces; internal/data and internal/blob provide the implementations.

// UserChange pairs the state of a user before and after a committed update.
type UserChange struct {
	Previous *model.User
	Current  *model.User
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, in *model.UserInput) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*model.User, error)
	// Update replaces every writable field and returns the row as it was
	// before and after the change. Both come from the same transaction.
	Update(ctx context.Context, id string, in *model.UserInput) (*UserChange, error)
	Delete(ctx context.Context, id string) (bool, error)
	// ListResumeIDs returns every resume id currently referenced by a user.
	ListResumeIDs(ctx context.Context) ([]string, error)
}

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	Create(ctx context.Context, in *model.TaskInput) (*model.Task, error)
	GetByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error)
	Update(ctx context.Context, id string, in *model.TaskInput) (*model.Task, error)
	UpdateStatus(ctx context.Context, id string, status model.TaskStatus) (*model.Task, error)
	UpdateAssignee(ctx context.Context, id, assigneeID string) (*model.Task, error)
	UpdatePriority(ctx context.Context, id string, priority model.TaskPriority) (*model.Task, error)
	Delete(ctx context.Context, id string) (bool, error)
	// StatusCounts returns task counts grouped by status. Statuses without
	// tasks are absent from the map.
	StatusCounts(ctx context.Context, assigneeID *string) (map[model.TaskStatus]int, error)
	CountByAssignee(ctx context.Context, assigneeID string) (int, error)
}

// BlobStore defines the interface for resume object storage.
type BlobStore interface {
	// Put stores content under a freshly generated id and returns that id.
	Put(ctx context.Context, content io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	// Presign returns a URL granting read access to the blob until ttl elapses.
	Presign(ctx context.Context, id string, ttl time.Duration) (string, error)
	List(ctx context.Context) ([]string, error)
	Health(ctx context.Context) error
}
