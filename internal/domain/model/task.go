package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/target/recruit-board/internal/errors"
)

// Task is a unit of recruiting work assigned to a user.
type Task struct {
	ID          string       `json:"id"          db:"id"`
	Title       string       `json:"title"       db:"title"`
	Description string       `json:"description" db:"description"`
	AssigneeID  string       `json:"assignee_id" db:"assignee_id"`
	Status      TaskStatus   `json:"status"      db:"status"`
	Priority    TaskPriority `json:"priority"    db:"priority"`
	CreatedAt   time.Time    `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"  db:"updated_at"`
}

// TaskInput carries the full set of writable task fields. Updates replace
// every field; status and priority fall back to todo and medium when omitted.
type TaskInput struct {
	Title       string       `json:"title"              validate:"required,max=255"`
	Description string       `json:"description"`
	AssigneeID  string       `json:"assignee_id"        validate:"required,uuid"`
	Status      TaskStatus   `json:"status,omitempty"   validate:"omitempty,task_status"`
	Priority    TaskPriority `json:"priority,omitempty" validate:"omitempty,task_priority"`
}

// ApplyDefaults trims fields and fills in the default status and priority.
func (in *TaskInput) ApplyDefaults() {
	in.Title = strings.TrimSpace(in.Title)
	in.AssigneeID = strings.TrimSpace(in.AssigneeID)
	in.Status = TaskStatus(normalizeEnum(string(in.Status)))
	in.Priority = TaskPriority(normalizeEnum(string(in.Priority)))
	if in.Status == "" {
		in.Status = TaskStatusTodo
	}
	if in.Priority == "" {
		in.Priority = TaskPriorityMedium
	}
}

// Validate applies defaults and validates the input.
func (in *TaskInput) Validate() error {
	in.ApplyDefaults()
	return validateStruct(in)
}

// UpdateTaskStatusRequest patches only the status of a task.
type UpdateTaskStatusRequest struct {
	Status TaskStatus `json:"status" validate:"required,task_status"`
}

// Validate validates UpdateTaskStatusRequest.
func (r *UpdateTaskStatusRequest) Validate() error {
	r.Status = TaskStatus(normalizeEnum(string(r.Status)))
	return validateStruct(r)
}

// UpdateTaskAssigneeRequest patches only the assignee of a task.
type UpdateTaskAssigneeRequest struct {
	AssigneeID string `json:"assignee_id" validate:"required,uuid"`
}

// Validate validates UpdateTaskAssigneeRequest.
func (r *UpdateTaskAssigneeRequest) Validate() error {
	r.AssigneeID = strings.TrimSpace(r.AssigneeID)
	return validateStruct(r)
}

// UpdateTaskPriorityRequest patches only the priority of a task.
type UpdateTaskPriorityRequest struct {
	Priority TaskPriority `json:"priority" validate:"required,task_priority"`
}

// Validate validates UpdateTaskPriorityRequest.
func (r *UpdateTaskPriorityRequest) Validate() error {
	r.Priority = TaskPriority(normalizeEnum(string(r.Priority)))
	return validateStruct(r)
}

// TaskFilter restricts task listings. Nil fields match everything; set fields
// are AND-combined.
type TaskFilter struct {
	AssigneeID *string
	Status     *TaskStatus
	Priority   *TaskPriority
}

// Validate checks that every set filter holds a supported value.
func (f TaskFilter) Validate() error {
	if f.AssigneeID != nil && !IsValidID(*f.AssigneeID) {
		return apperrors.ValidationField("assignee_id", "assignee_id must be a valid UUID")
	}
	if f.Status != nil && !f.Status.Valid() {
		return apperrors.ValidationField("status", "status must be one of: "+joinEnum(AllTaskStatuses()))
	}
	if f.Priority != nil && !f.Priority.Valid() {
		return apperrors.ValidationField("priority", "priority must be one of: "+joinEnum(AllTaskPriorities()))
	}
	return nil
}

// StatusCount is the number of tasks in one status.
type StatusCount struct {
	Status TaskStatus `json:"status"`
	Count  int        `json:"count"`
}

// ZeroFillStatusCounts returns one entry per status in board order, using zero
// for statuses missing from counts.
func ZeroFillStatusCounts(counts map[TaskStatus]int) []StatusCount {
	statuses := AllTaskStatuses()
	out := make([]StatusCount, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	return out
}

// IsValidID reports whether id is a well-formed UUID.
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
