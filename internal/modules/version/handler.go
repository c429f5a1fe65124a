package version

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

// ListByProject godoc
// @Summary List a project's versions, newest first
// @Tags Versions
// @Produce json
// @Security BearerAuth
// @Param projectId path int true "Project ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /versions/project/{projectId} [get]
func (h *Handler) ListByProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid project ID")
		return
	}

	versions, err := h.service.ListByProject(c.Request.Context(), projectID, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, versions)
}

// Activate godoc
// @Summary Make the version its project's published one
// @Tags Versions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Version ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /versions/{id}/activate [put]
func (h *Handler) Activate(c *gin.Context) {
	id, ok := versionID(c)
	if !ok {
		return
	}

	err := h.service.Activate(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Version activated")
}

// Delete godoc
// @Summary Delete a version and its extracted files
// @Tags Versions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Version ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /versions/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := versionID(c)
	if !ok {
		return
	}

	err := h.service.Delete(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Version deleted")
}

func versionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid version ID")
		return 0, false
	}
	return id, true
}

func respondServiceError(c *gin.Context, err error) {
	switch err {
	case ErrVersionNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Version not found")
	case ErrProjectNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "No permission for this project")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
