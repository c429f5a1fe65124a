package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"easyweb/internal/domain"
	"easyweb/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Get godoc
// @Summary User details (admin or the user themselves)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := paramUserID(c)
	if !ok {
		return
	}

	u, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// List godoc
// @Summary List all users (admin)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /users [get]
func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list users")
		return
	}
	response.Success(c, http.StatusOK, users)
}

// UpdateRole godoc
// @Summary Change a user's role (admin)
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]interface{}
// @Router /users/{id}/role [put]
func (h *Handler) UpdateRole(c *gin.Context) {
	id, ok := paramUserID(c)
	if !ok {
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Role is required")
		return
	}

	if err := h.service.UpdateRole(c.Request.Context(), c.GetInt64("user_id"), id, req.Role); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Role updated")
}

// Delete godoc
// @Summary Delete a user account (admin)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]interface{}
// @Router /users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramUserID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User deleted")
}

func paramUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return 0, false
	}
	return id, true
}

func respondServiceError(c *gin.Context, err error) {
	switch err {
	case ErrUserNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case ErrSelfChange:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot change your own account")
	case ErrInvalidRole:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user role")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "No permission to view this user")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
