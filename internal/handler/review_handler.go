package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/batch-intake-api/internal/dto"
	"github.com/noah-isme/batch-intake-api/internal/models"
	"github.com/noah-isme/batch-intake-api/internal/service"
	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
	"github.com/noah-isme/batch-intake-api/pkg/response"
)

type reviewService interface {
	List(ctx context.Context) ([]models.Candidate, bool, error)
	Get(ctx context.Context, id string) (*models.Candidate, error)
	Toggle(ctx context.Context, id string, flag models.CandidateFlag, value bool) (*models.Candidate, error)
	Export(ctx context.Context, format string) (*service.ExportFile, error)
}

// ReviewHandler exposes the admin review dashboard endpoints.
type ReviewHandler struct {
	service reviewService
}

// NewReviewHandler builds a new handler.
func NewReviewHandler(service reviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// List godoc
// @Summary List all candidates, newest first
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /admin/candidates [get]
func (h *ReviewHandler) List(c *gin.Context) {
	candidates, cacheHit, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidates, map[string]interface{}{
		"summary":   dto.Summarize(candidates),
		"cache_hit": cacheHit,
	})
}

// Get godoc
// @Summary Get one candidate
// @Tags Review
// @Produce json
// @Security BearerAuth
// @Param id path string true "Candidate ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/candidates/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	candidate, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidate, nil)
}

// ToggleFlag godoc
// @Summary Set one review flag on a candidate
// @Tags Review
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Candidate ID"
// @Param payload body dto.ToggleFlagRequest true "Flag update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /admin/candidates/{id}/flags [patch]
func (h *ReviewHandler) ToggleFlag(c *gin.Context) {
	var req dto.ToggleFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid flag payload"))
		return
	}
	if req.Value == nil {
		response.Error(c, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid flag payload"), map[string]string{"value": "is required"}))
		return
	}
	candidate, err := h.service.Toggle(c.Request.Context(), c.Param("id"), req.Flag, *req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, candidate, nil)
}

// Export godoc
// @Summary Download all candidates
// @Tags Review
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /admin/candidates/export [get]
func (h *ReviewHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Content)
}
