package preview

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"easyweb/internal/domain"
	"easyweb/internal/pkg/response"
	"easyweb/internal/pkg/staticsite"
)

type VersionRepo interface {
	GetByShareCode(ctx context.Context, code string) (*domain.Version, error)
}

// Handler serves extracted version content. Share mode resolves a share
// code to its version directory; direct mode addresses a version directory
// by project ID and label. Both go through the same containment check
// before any file is read.
type Handler struct {
	versions   VersionRepo
	staticRoot string
}

func NewHandler(versions VersionRepo, staticRoot string) *Handler {
	return &Handler{versions: versions, staticRoot: staticRoot}
}

// Share godoc
// @Summary Serve version content through a share link (no auth)
// @Tags Preview
// @Param shareCode path string true "Share code"
// @Param filepath path string false "File path inside the version"
// @Success 200
// @Failure 403,404 {object} map[string]interface{}
// @Router /preview/share/{shareCode}/{filepath} [get]
func (h *Handler) Share(c *gin.Context) {
	v, ok := h.lookupShare(c)
	if !ok {
		return
	}
	dir := staticsite.VersionDir(h.staticRoot, v.ProjectID, v.Label)
	h.serve(c, dir, c.Param("filepath"))
}

// Info godoc
// @Summary Version metadata behind a share code (no auth)
// @Tags Preview
// @Produce json
// @Param shareCode path string true "Share code"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /preview/info/{shareCode} [get]
func (h *Handler) Info(c *gin.Context) {
	v, ok := h.lookupShare(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"version":    v.Label,
		"created_at": v.CreatedAt,
		"file_size":  v.FileSize,
	})
}

// Direct serves a version directory at its canonical static path:
// /static/projects/{projectId}/{label}/{filepath}.
func (h *Handler) Direct(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File does not exist")
		return
	}
	label := c.Param("label")
	if !staticsite.SafeLabel(label) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		return
	}
	dir := staticsite.VersionDir(h.staticRoot, projectID, label)
	h.serve(c, dir, c.Param("filepath"))
}

func (h *Handler) lookupShare(c *gin.Context) (*domain.Version, bool) {
	v, err := h.versions.GetByShareCode(c.Request.Context(), c.Param("shareCode"))
	if err != nil {
		// Same message for bad and expired codes.
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Preview link does not exist or has expired")
		return nil, false
	}
	return v, true
}

// serve maps sub onto dir with a containment check, then resolves in
// order: existing file, directory index.html, 404.
func (h *Handler) serve(c *gin.Context, dir, sub string) {
	sub = strings.TrimPrefix(sub, "/")

	target, err := staticsite.ResolveWithin(dir, sub)
	if err != nil {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
		return
	}

	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		h.serveFile(c, target)
		return
	} else if (err == nil && info.IsDir()) || sub == "" || strings.HasSuffix(sub, "/") {
		index := filepath.Join(target, "index.html")
		if fi, err := os.Stat(index); err == nil && !fi.IsDir() {
			h.serveFile(c, index)
			return
		}
	}

	response.Error(c, http.StatusNotFound, "NOT_FOUND", "File does not exist")
}

func (h *Handler) serveFile(c *gin.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "File does not exist")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}

	ctype := staticsite.ContentType(path)
	if ctype == "text/html" {
		// Served markup is untrusted third-party content.
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("X-Content-Type-Options", "nosniff")
	}

	c.DataFromReader(http.StatusOK, info.Size(), ctype, f, nil)
}
