package users

import (
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shopvima/shopvima/internal/platform/httpx"
	"github.com/shopvima/shopvima/internal/shared"
)

// Handler wires HTTP endpoints for user management. Authorization comes
// from the route-derived permission gate (users.view, users.create, ...).
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Post("/", h.createUser)
	r.Get("/{id}", h.getUser)
	r.Put("/{id}", h.updateUser)
	r.Delete("/{id}", h.deleteUser)
}

type userResponse struct {
	ID       uuid.UUID  `json:"id"`
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	RoleID   *uuid.UUID `json:"role_id,omitempty"`
	IsActive bool       `json:"is_active"`
}

func toUserResponse(user User) userResponse {
	return userResponse{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Kind:     string(user.Kind),
		RoleID:   user.RoleID,
		IsActive: user.IsActive,
	}
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	pagination := shared.NewPagination(page, perPage, 0)

	users, total, err := h.service.ListUsers(r.Context(), pagination.PerPage, (pagination.Page-1)*pagination.PerPage)
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"users":      out,
		"pagination": shared.NewPagination(pagination.Page, pagination.PerPage, total),
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "user id must be a UUID")
		return
	}
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}

type createUserRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Name     string     `json:"name" validate:"required,min=2,max=128"`
	Password string     `json:"password" validate:"required,min=8"`
	Kind     string     `json:"kind" validate:"omitempty,oneof=customer vendor admin"`
	RoleID   *uuid.UUID `json:"role_id"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	user, err := h.service.CreateUser(r.Context(), User{
		Email:    req.Email,
		Name:     req.Name,
		Kind:     kindFromString(req.Kind),
		RoleID:   req.RoleID,
		IsActive: true,
	}, req.Password)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toUserResponse(user))
}

type updateUserRequest struct {
	Name     string     `json:"name" validate:"required,min=2,max=128"`
	Kind     string     `json:"kind" validate:"required,oneof=customer vendor admin"`
	RoleID   *uuid.UUID `json:"role_id"`
	IsActive bool       `json:"is_active"`
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "user id must be a UUID")
		return
	}
	var req updateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	user, err := h.service.UpdateUser(r.Context(), User{
		ID:       id,
		Name:     req.Name,
		Kind:     kindFromString(req.Kind),
		RoleID:   req.RoleID,
		IsActive: req.IsActive,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "user id must be a UUID")
		return
	}
	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
