package project

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

// List godoc
// @Summary List projects (all for admins, own otherwise)
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /projects [get]
func (h *Handler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list projects")
		return
	}
	response.Success(c, http.StatusOK, projects)
}

// Get godoc
// @Summary Get project details
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /projects/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Create godoc
// @Summary Create a project owned by the caller
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /projects [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Project name is required")
		return
	}

	p, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create project")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// Update godoc
// @Summary Update project name/description; admins may reassign the manager
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,403,404 {object} map[string]interface{}
// @Router /projects/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Project updated")
}

// Delete godoc
// @Summary Delete a project (admin only)
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /projects/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Project deleted")
}

// GrantPermission godoc
// @Summary Grant or update a user's access to the project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400,403,404 {object} map[string]interface{}
// @Router /projects/{id}/permissions [post]
func (h *Handler) GrantPermission(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req GrantPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Target user is required")
		return
	}

	err := h.service.GrantPermission(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Permission granted")
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid project ID")
		return 0, false
	}
	return id, true
}

func respondServiceError(c *gin.Context, err error) {
	switch err {
	case ErrProjectNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
	case ErrUserNotFound:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Target user does not exist")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "No permission for this project")
	case ErrInvalidLevel:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid permission level")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
