package publish

import (
	"errors"
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

// Upload godoc
// @Summary Upload a zip archive as a new project version
// @Description Extracts the archive under the project's static directory and records the version. Optionally activates it.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Zip archive"
// @Param projectId formData int true "Project ID"
// @Param versionLabel formData string true "Version label"
// @Param setActive formData bool false "Activate after upload"
// @Success 201 {object} map[string]interface{}
// @Failure 400,403,404,409,413,500 {object} map[string]interface{}
// @Router /upload [post]
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file provided")
		return
	}

	projectIDStr := c.PostForm("projectId")
	label := c.PostForm("versionLabel")
	if projectIDStr == "" || label == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "projectId and versionLabel are required")
		return
	}
	projectID, err := strconv.ParseInt(projectIDStr, 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid project ID")
		return
	}
	setActive, _ := strconv.ParseBool(c.PostForm("setActive"))

	result, err := h.service.Publish(c.Request.Context(), c.GetInt64("user_id"), domain.UserRole(c.GetString("role")), Input{
		ProjectID: projectID,
		Label:     label,
		SetActive: setActive,
		File:      fileHeader,
	})
	if err != nil {
		respondPublishError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

func respondPublishError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidLabel), errors.Is(err, ErrNotZip), errors.Is(err, ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrUnsafeArchive):
		response.Error(c, http.StatusBadRequest, "UNSAFE_ARCHIVE", "Archive contains unsafe entry paths")
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, ErrProjectNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Project not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "No permission to upload to this project")
	case errors.Is(err, ErrLabelTaken):
		response.Error(c, http.StatusConflict, "CONFLICT", "Version label already exists for this project")
	default:
		// Extraction and persistence details stay in the server log.
		c.Error(err)
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "File upload failed")
	}
}
