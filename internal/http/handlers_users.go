package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/recruit-board/internal/domain/model"
	"github.com/target/recruit-board/internal/service"
)

// UserHandlers provides HTTP handlers for user operations.
type UserHandlers struct {
	Svc    *service.UserService
	Logger *slog.Logger
}

type userRequest struct {
	User *model.UserInput `json:"user"`
}

type userResponse struct {
	User *model.User `json:"user"`
}

type usersResponse struct {
	Users []*model.User `json:"users"`
}

// Create handles POST /api/v1/users.
func (h *UserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	u, err := h.Svc.Create(r.Context(), req.User)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusCreated, userResponse{User: u})
}

// List handles GET /api/v1/users.
func (h *UserHandlers) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.List(r.Context())
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	WriteJSON(w, http.StatusOK, usersResponse{Users: users})
}

// GetByID handles GET /api/v1/users/{id}.
func (h *UserHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	u, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, userResponse{User: u})
}

// Update handles PUT /api/v1/users/{id}.
func (h *UserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	u, err := h.Svc.Update(r.Context(), r.PathValue("id"), req.User)
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, userResponse{User: u})
}

// Delete handles DELETE /api/v1/users/{id}.
func (h *UserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
