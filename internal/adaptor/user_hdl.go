package adaptor

import (
	"net/http"

	"fleet-admin/internal/dto/request"
	"fleet-admin/internal/usecase"
	"fleet-admin/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// ListUsers handles GET /api/admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &request.UserListRequest{
		PaginatedRequest: pageFromQuery(r),
		Role:             q.Get("role"),
		Blocked:          utils.ParseBoolPtr(q.Get("blocked")),
		Search:           q.Get("search"),
	}

	users, err := h.service.ListUsers(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// BlockUser handles PUT /api/admin/users/{id}/block
func (h *UserHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	var req request.BlockUserRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.BlockUser(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "block user")
		return
	}

	utils.ResponseSuccess(w, "User blocked", user)
}

// UnblockUser handles PUT /api/admin/users/{id}/unblock
func (h *UserHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.UnblockUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "unblock user")
		return
	}

	utils.ResponseSuccess(w, "User unblocked", user)
}

// ChangeRole handles PUT /api/admin/users/{id}/role
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req request.ChangeRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.ChangeRole(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "change role")
		return
	}

	utils.ResponseSuccess(w, "Role updated", user)
}

// DeleteUser handles DELETE /api/admin/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully", nil)
}
