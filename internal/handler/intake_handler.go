package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/batch-intake-api/internal/dto"
	"github.com/noah-isme/batch-intake-api/internal/models"
	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
	"github.com/noah-isme/batch-intake-api/pkg/response"
)

type intakeService interface {
	Options(ctx context.Context) dto.IntakeOptionsResponse
	Submit(ctx context.Context, req dto.SubmitApplicationRequest) (*models.Candidate, error)
}

// IntakeHandler exposes the public application form endpoints.
type IntakeHandler struct {
	service intakeService
}

// NewIntakeHandler builds a new handler.
func NewIntakeHandler(service intakeService) *IntakeHandler {
	return &IntakeHandler{service: service}
}

// Options godoc
// @Summary List the batches and qualifications currently offered
// @Tags Intake
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /batches [get]
func (h *IntakeHandler) Options(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Options(c.Request.Context()), nil)
}

// Submit godoc
// @Summary Submit an application
// @Tags Intake
// @Accept json
// @Produce json
// @Param payload body dto.SubmitApplicationRequest true "Application payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /applications [post]
func (h *IntakeHandler) Submit(c *gin.Context) {
	var req dto.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}
	candidate, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SubmissionReceipt{
		ID:        candidate.ID,
		Batch:     candidate.Batch,
		CreatedAt: candidate.CreatedAt,
	})
}
