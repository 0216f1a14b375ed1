package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/recruit-board/internal/domain/model"
	"github.com/target/recruit-board/internal/service"
)

// TaskHandlers provides HTTP handlers for task operations.
type TaskHandlers struct {
	Svc    *service.TaskService
	Logger *slog.Logger
}

type taskRequest struct {
	Task *model.TaskInput `json:"task"`
}

type taskResponse struct {
	Task *model.Task `json:"task"`
}

type tasksResponse struct {
	Tasks []*model.Task `json:"tasks"`
}

type statusCountsResponse struct {
	Counts []model.StatusCount `json:"counts"`
}

// Create handles POST /api/v1/tasks.
func (h *TaskHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	t, err := h.Svc.Create(r.Context(), req.Task)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, taskResponse{Task: t})
}

// List handles GET /api/v1/tasks?assignee_id=&status=&priority=.
func (h *TaskHandlers) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTaskFilter(r)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}

	tasks, err := h.Svc.List(r.Context(), filter)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	if tasks == nil {
		tasks = []*model.Task{}
	}
	WriteJSON(w, http.StatusOK, tasksResponse{Tasks: tasks})
}

// StatusCounts handles GET /api/v1/tasks/status-counts?assignee_id=.
func (h *TaskHandlers) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Svc.StatusCounts(r.Context(), optionalQuery(r, "assignee_id"))
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, statusCountsResponse{Counts: counts})
}

// GetByID handles GET /api/v1/tasks/{id}.
func (h *TaskHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	t, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, taskResponse{Task: t})
}

// Update handles PUT /api/v1/tasks/{id}.
func (h *TaskHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	t, err := h.Svc.Update(r.Context(), r.PathValue("id"), req.Task)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, taskResponse{Task: t})
}

// UpdateStatus handles PATCH /api/v1/tasks/{id}/status.
func (h *TaskHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateTaskStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	h.writeTask(w, r)(h.Svc.UpdateStatus(r.Context(), r.PathValue("id"), &req))
}

// UpdateAssignee handles PATCH /api/v1/tasks/{id}/assignee.
func (h *TaskHandlers) UpdateAssignee(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateTaskAssigneeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	h.writeTask(w, r)(h.Svc.UpdateAssignee(r.Context(), r.PathValue("id"), &req))
}

// UpdatePriority handles PATCH /api/v1/tasks/{id}/priority.
func (h *TaskHandlers) UpdatePriority(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateTaskPriorityRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	h.writeTask(w, r)(h.Svc.UpdatePriority(r.Context(), r.PathValue("id"), &req))
}

// Delete handles DELETE /api/v1/tasks/{id}.
func (h *TaskHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandlers) writeTask(w http.ResponseWriter, r *http.Request) func(*model.Task, error) {
	return func(t *model.Task, err error) {
		if err != nil {
			WriteAppError(w, r, h.Logger, err)
			return
		}
		WriteJSON(w, http.StatusOK, taskResponse{Task: t})
	}
}
