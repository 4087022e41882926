package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/batch-intake-api/internal/dto"
	"github.com/noah-isme/batch-intake-api/internal/models"
	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
	"github.com/noah-isme/batch-intake-api/pkg/recordstore"
)

type candidateWriter interface {
	Create(ctx context.Context, candidate *models.Candidate) error
}

type batchResolver interface {
	List(ctx context.Context) []models.BatchWindow
	Resolve(ctx context.Context, label string) (models.BatchWindow, error)
}

type submissionNotifier interface {
	ApplicationSubmitted(ctx context.Context, candidate models.Candidate)
}

// IntakeService accepts public applications.
type IntakeService struct {
	repo      candidateWriter
	batches   batchResolver
	notifier  submissionNotifier
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewIntakeService constructs an IntakeService. notifier, cache and metrics may be nil.
func NewIntakeService(repo candidateWriter, batches batchResolver, notifier submissionNotifier, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *IntakeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeService{
		repo:      repo,
		batches:   batches,
		notifier:  notifier,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Options returns the batches and qualifications the form should offer right now.
func (s *IntakeService) Options(ctx context.Context) dto.IntakeOptionsResponse {
	qualifications := make([]string, 0, len(models.Qualifications))
	for _, q := range models.Qualifications {
		qualifications = append(qualifications, string(q))
	}
	return dto.IntakeOptionsResponse{
		Batches:        dto.NewBatchOptions(s.batches.List(ctx)),
		Qualifications: qualifications,
	}
}

// Submit validates req, resolves its batch label against the windows offered at
// this moment and stores exactly one candidate. Nothing is written when validation or
// batch resolution fails.
func (s *IntakeService) Submit(ctx context.Context, req dto.SubmitApplicationRequest) (*models.Candidate, error) {
	req = normalizeSubmission(req)
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordSubmission(OutcomeInvalid)
		return nil, validationError(err, "invalid application")
	}

	window, err := s.batches.Resolve(ctx, req.Batch)
	if err != nil {
		s.metrics.RecordSubmission(OutcomeBatchUnavailable)
		s.logger.Info("submission for unavailable batch", zap.String("batch", req.Batch))
		return nil, err
	}

	candidate := &models.Candidate{
		FullName:         req.FullName,
		Email:            req.Email,
		ContactNumber:    req.ContactNumber,
		Gender:           req.Gender,
		Qualification:    models.Qualification(req.Qualification),
		YearOfCompletion: req.YearOfCompletion,
		CollegeName:      req.CollegeName,
		HODName:          req.HODName,
		HODContact:       req.HODContact,
		HODEmail:         req.HODEmail,
		Batch:            window.Label(),
		Reference:        req.Reference,
	}

	start := time.Now()
	err = s.repo.Create(ctx, candidate)
	s.metrics.ObserveStoreCall("insert", time.Since(start))
	if err != nil {
		s.metrics.RecordSubmission(OutcomeStoreError)
		s.logger.Error("failed to store application", zap.String("batch", window.ID), zap.Error(err))
		return nil, storeError(err, "failed to submit application, please try again")
	}
	s.metrics.RecordSubmission(OutcomeAccepted)
	s.logger.Info("application stored", zap.String("candidate_id", candidate.ID), zap.String("batch", window.ID))

	_ = s.cache.Invalidate(ctx, CandidateListCacheKey)
	if s.notifier != nil {
		s.notifier.ApplicationSubmitted(ctx, *candidate)
	}
	return candidate, nil
}

func normalizeSubmission(req dto.SubmitApplicationRequest) dto.SubmitApplicationRequest {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.ContactNumber = strings.TrimSpace(req.ContactNumber)
	req.Qualification = strings.TrimSpace(req.Qualification)
	req.YearOfCompletion = strings.TrimSpace(req.YearOfCompletion)
	req.CollegeName = strings.TrimSpace(req.CollegeName)
	req.Batch = strings.TrimSpace(req.Batch)
	req.Reference = strings.TrimSpace(req.Reference)
	req.Gender = trimOptional(req.Gender)
	req.HODName = trimOptional(req.HODName)
	req.HODContact = trimOptional(req.HODContact)
	req.HODEmail = trimOptional(req.HODEmail)
	return req
}

// trimOptional trims a provided value but keeps it provided, even when it ends up empty.
func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	return &trimmed
}

// storeError maps a repository failure to the error surfaced to callers.
func storeError(err error, message string) error {
	if errors.Is(err, recordstore.ErrNotConfigured) {
		return appErrors.Wrap(err, appErrors.ErrStoreNotConfigured.Code, appErrors.ErrStoreNotConfigured.Status, appErrors.ErrStoreNotConfigured.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrStore.Code, appErrors.ErrStore.Status, message)
}
