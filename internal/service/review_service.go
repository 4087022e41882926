package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/batch-intake-api/internal/models"
	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
	"github.com/noah-isme/batch-intake-api/pkg/export"
)

type candidateReviewRepository interface {
	List(ctx context.Context) ([]models.Candidate, error)
	FindByID(ctx context.Context, id string) (*models.Candidate, error)
	UpdateFlag(ctx context.Context, id string, flag models.CandidateFlag, value bool) (*models.Candidate, error)
}

// Renderer converts a dataset into a downloadable document.
type Renderer interface {
	ContentType() string
	Extension() string
	Render(data export.Dataset, title string) ([]byte, error)
}

// Export formats accepted by ReviewService.Export.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportFile is a rendered candidate export.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReviewServiceConfig tunes the dashboard.
type ReviewServiceConfig struct {
	CacheTTL time.Duration
	Now      func() time.Time
}

// ReviewService backs the admin review dashboard.
type ReviewService struct {
	repo      candidateReviewRepository
	cache     *CacheService
	metrics   *MetricsService
	renderers map[string]Renderer
	logger    *zap.Logger
	cfg       ReviewServiceConfig
}

// NewReviewService constructs a ReviewService with CSV and PDF exporters.
func NewReviewService(repo candidateReviewRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg ReviewServiceConfig) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &ReviewService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		renderers: map[string]Renderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
		cfg:    cfg,
	}
}

// List returns every candidate, newest first. The boolean reports a cache hit.
func (s *ReviewService) List(ctx context.Context) ([]models.Candidate, bool, error) {
	var cached []models.Candidate
	if hit, err := s.cache.Get(ctx, CandidateListCacheKey, &cached); err == nil && hit {
		return cached, true, nil
	}

	version := s.cache.Version(ctx, CandidateListCacheKey)
	start := time.Now()
	candidates, err := s.repo.List(ctx)
	s.metrics.ObserveStoreCall("select", time.Since(start))
	if err != nil {
		s.logger.Error("failed to load candidates", zap.Error(err))
		return nil, false, storeError(err, "failed to load candidates")
	}

	s.cache.SetIfCurrent(ctx, CandidateListCacheKey, version, candidates, s.cfg.CacheTTL)
	return candidates, false, nil
}

// Get returns a single candidate.
func (s *ReviewService) Get(ctx context.Context, id string) (*models.Candidate, error) {
	start := time.Now()
	candidate, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	s.metrics.ObserveStoreCall("find", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "candidate not found")
		}
		return nil, storeError(err, "failed to load candidate")
	}
	return candidate, nil
}

// Toggle sets one review flag on one candidate and returns the stored state.
// Writing the value the flag already holds still reaches the store.
func (s *ReviewService) Toggle(ctx context.Context, id string, flag models.CandidateFlag, value bool) (*models.Candidate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "candidate id is required"), map[string]string{"id": "is required"})
	}
	if !flag.Valid() {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "unknown review flag"), map[string]string{"flag": "must be one of contacted_whatsapp, contacted_call, attended_session, attended_intro"})
	}

	start := time.Now()
	candidate, err := s.repo.UpdateFlag(ctx, id, flag, value)
	s.metrics.ObserveStoreCall("update", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "candidate not found")
		}
		s.logger.Error("failed to update candidate flag", zap.String("candidate_id", id), zap.String("flag", string(flag)), zap.Error(err))
		return nil, storeError(err, "failed to update candidate")
	}
	s.metrics.RecordFlagUpdate(flag, value)

	_ = s.cache.Invalidate(ctx, CandidateListCacheKey)
	return candidate, nil
}

// Export renders the full candidate list in the requested format.
func (s *ReviewService) Export(ctx context.Context, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "unsupported export format"), map[string]string{"format": "must be csv or pdf"})
	}

	candidates, _, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.cfg.Now()
	content, err := renderer.Render(candidateDataset(candidates), fmt.Sprintf("Candidates as of %s", now.Format(models.BatchDateLayout)))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("candidates-%s.%s", now.Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Content:     content,
	}, nil
}

var candidateExportHeaders = []string{
	"Submitted", "Full Name", "Email", "Contact", "Gender", "Qualification", "Year", "College",
	"HOD Name", "HOD Contact", "HOD Email", "Batch", "Reference",
	"WhatsApp", "Call", "Session", "Intro",
}

func candidateDataset(candidates []models.Candidate) export.Dataset {
	rows := make([]map[string]string, 0, len(candidates))
	for _, c := range candidates {
		values := []string{
			c.CreatedAt.UTC().Format(time.RFC3339), c.FullName, c.Email, c.ContactNumber, deref(c.Gender),
			string(c.Qualification), c.YearOfCompletion, c.CollegeName,
			deref(c.HODName), deref(c.HODContact), deref(c.HODEmail), c.Batch, c.Reference,
			yesNo(c.ContactedWhatsApp), yesNo(c.ContactedCall), yesNo(c.AttendedSession), yesNo(c.AttendedIntro),
		}
		row := make(map[string]string, len(candidateExportHeaders))
		for i, h := range candidateExportHeaders {
			row[h] = values[i]
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: candidateExportHeaders, Rows: rows}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
