package model

import "strings"

// Role is the engineering discipline a candidate is recruited for.
type Role string

const (
	RoleFrontend  Role = "frontend"
	RoleBackend   Role = "backend"
	RoleFullstack Role = "fullstack"
	RoleDevOps    Role = "devops"
	RoleQA        Role = "qa"
	RoleDesigner  Role = "designer"
)

// AllRoles returns every supported role in declaration order.
func AllRoles() []Role {
	return []Role{RoleFrontend, RoleBackend, RoleFullstack, RoleDevOps, RoleQA, RoleDesigner}
}

// Valid reports whether the role is supported.
func (r Role) Valid() bool {
	switch r {
	case RoleFrontend, RoleBackend, RoleFullstack, RoleDevOps, RoleQA, RoleDesigner:
		return true
	default:
		return false
	}
}

// ParseRole normalizes a role string and reports whether it is supported.
func ParseRole(value string) (Role, bool) {
	r := Role(normalizeEnum(value))
	if r.Valid() {
		return r, true
	}
	return "", false
}

// TaskStatus is the board column a task sits in.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

// AllTaskStatuses returns every status in board order. Status counts are
// reported in this order.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone}
}

// Valid reports whether the status is supported.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	default:
		return false
	}
}

// ParseTaskStatus normalizes a status string and reports whether it is supported.
func ParseTaskStatus(value string) (TaskStatus, bool) {
	s := TaskStatus(normalizeEnum(value))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// AllTaskPriorities returns every priority from lowest to highest.
func AllTaskPriorities() []TaskPriority {
	return []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
}

// Valid reports whether the priority is supported.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// ParseTaskPriority normalizes a priority string and reports whether it is supported.
func ParseTaskPriority(value string) (TaskPriority, bool) {
	p := TaskPriority(normalizeEnum(value))
	if p.Valid() {
		return p, true
	}
	return "", false
}

func normalizeEnum(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
