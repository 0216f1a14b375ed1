package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/recruit-board/internal/core"
	"github.com/target/recruit-board/internal/domain/model"
	apperrors "github.com/target/recruit-board/internal/errors"
)

// TaskServiceOptions groups dependencies for TaskService.
type TaskServiceOptions struct {
	Repo   core.TaskRepository // Required: task repository
	Users  core.UserRepository // Required: resolves assignees
	Logger *slog.Logger        // Optional: structured logger
}

// TaskService provides business logic for task operations.
//
// Every write that sets an assignee first checks that the user exists and
// fails with AssigneeNotFound otherwise. The foreign key on tasks.assignee_id
// catches the race where the user disappears between the check and the write.
type TaskService struct {
	repo   core.TaskRepository
	users  core.UserRepository
	logger *slog.Logger
}

// NewTaskService constructs a new TaskService.
func NewTaskService(opts TaskServiceOptions) (*TaskService, error) {
	if opts.Repo == nil {
		return nil, errors.New("TaskRepository is required")
	}
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		repo:   opts.Repo,
		users:  opts.Users,
		logger: logger.With("component", "task_service"),
	}, nil
}

// MustNewTaskService constructs a new TaskService and panics on error.
func MustNewTaskService(opts TaskServiceOptions) *TaskService {
	svc, err := NewTaskService(opts)
	if err != nil {
		panic(err) //nolint:forbidigo // Must constructor fails fast when dependencies are invalid during startup
	}
	return svc
}

// Create validates a task, applies default status and priority, and inserts it.
func (s *TaskService) Create(ctx context.Context, in *model.TaskInput) (*model.Task, error) {
	if in == nil {
		return nil, apperrors.Validation("task is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireAssignee(ctx, in.AssigneeID); err != nil {
		return nil, err
	}

	t, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.logger.InfoContext(ctx, "task created", "task_id", t.ID, "assignee_id", t.AssigneeID)
	return t, nil
}

// GetByID returns a task.
func (s *TaskService) GetByID(ctx context.Context, id string) (*model.Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// List returns the tasks matching every set field of filter.
func (s *TaskService) List(ctx context.Context, filter model.TaskFilter) ([]*model.Task, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update replaces every writable field of a task. The assignee is only
// re-checked when it changes.
func (s *TaskService) Update(ctx context.Context, id string, in *model.TaskInput) (*model.Task, error) {
	if in == nil {
		return nil, apperrors.Validation("task is required")
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if current.AssigneeID != in.AssigneeID {
		if err := s.requireAssignee(ctx, in.AssigneeID); err != nil {
			return nil, err
		}
	}

	t, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

// UpdateStatus sets only the status of a task.
func (s *TaskService) UpdateStatus(ctx context.Context, id string, req *model.UpdateTaskStatusRequest) (*model.Task, error) {
	if req == nil {
		return nil, apperrors.ValidationField("status", "status is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	t, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}
	return t, nil
}

// UpdateAssignee reassigns a task. The new assignee must exist.
func (s *TaskService) UpdateAssignee(ctx context.Context, id string, req *model.UpdateTaskAssigneeRequest) (*model.Task, error) {
	if req == nil {
		return nil, apperrors.ValidationField("assignee_id", "assignee_id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireAssignee(ctx, req.AssigneeID); err != nil {
		return nil, err
	}
	t, err := s.repo.UpdateAssignee(ctx, id, req.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("update task assignee: %w", err)
	}
	return t, nil
}

// UpdatePriority sets only the priority of a task.
func (s *TaskService) UpdatePriority(ctx context.Context, id string, req *model.UpdateTaskPriorityRequest) (*model.Task, error) {
	if req == nil {
		return nil, apperrors.ValidationField("priority", "priority is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	t, err := s.repo.UpdatePriority(ctx, id, req.Priority)
	if err != nil {
		return nil, fmt.Errorf("update task priority: %w", err)
	}
	return t, nil
}

// Delete removes a task. Deleting a task that does not exist is NotFound.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if !deleted {
		return apperrors.NotFoundf("task %s not found", id)
	}
	s.logger.InfoContext(ctx, "task deleted", "task_id", id)
	return nil
}

// StatusCounts returns one entry per status in declaration order, including
// statuses without tasks.
func (s *TaskService) StatusCounts(ctx context.Context, assigneeID *string) ([]model.StatusCount, error) {
	if assigneeID != nil && !model.IsValidID(*assigneeID) {
		return nil, apperrors.ValidationField("assignee_id", "assignee_id must be a valid UUID")
	}
	counts, err := s.repo.StatusCounts(ctx, assigneeID)
	if err != nil {
		return nil, fmt.Errorf("task status counts: %w", err)
	}
	return model.ZeroFillStatusCounts(counts), nil
}

func (s *TaskService) requireAssignee(ctx context.Context, assigneeID string) error {
	ok, err := s.users.Exists(ctx, assigneeID)
	if err != nil {
		return fmt.Errorf("check assignee: %w", err)
	}
	if !ok {
		return apperrors.AssigneeNotFound(assigneeID)
	}
	return nil
}
