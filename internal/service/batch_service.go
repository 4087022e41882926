package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/batch-intake-api/internal/models"
	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
)

const (
	// FirstBatchNumber is the identifier of the first window ever offered.
	FirstBatchNumber = 36
	// BatchSpanDays is the distance from a window's start to its end.
	BatchSpanDays = 12
	// BatchStrideDays separates the starts of consecutive windows.
	BatchStrideDays = 14
	// DefaultBatchCount is the number of windows offered when unconfigured.
	DefaultBatchCount = 4
)

// ComputeBatches returns count consecutive batch windows. The first window starts on
// the first Monday on or after ref's calendar date; each window spans BatchSpanDays
// and the next one starts BatchStrideDays after the previous start. Identifiers are
// numbered from FirstBatchNumber regardless of ref.
func ComputeBatches(count int, ref time.Time) []models.BatchWindow {
	if count <= 0 {
		return []models.BatchWindow{}
	}
	start := nextMonday(ref)
	windows := make([]models.BatchWindow, 0, count)
	for i := 0; i < count; i++ {
		windows = append(windows, models.BatchWindow{
			ID:        fmt.Sprintf("Batch %d", FirstBatchNumber+i),
			StartDate: start,
			EndDate:   start.AddDate(0, 0, BatchSpanDays),
		})
		start = start.AddDate(0, 0, BatchStrideDays)
	}
	return windows
}

// nextMonday truncates ref to midnight in its location and advances to Monday:
// Monday stays, Sunday moves one day, any other day moves to the following week.
func nextMonday(ref time.Time) time.Time {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	offset := (int(time.Monday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// BatchService offers the windows shown on the intake form relative to a clock.
type BatchService struct {
	count int
	now   func() time.Time
}

// NewBatchService constructs a BatchService. A nil clock uses time.Now.
func NewBatchService(count int, now func() time.Time) *BatchService {
	if count < 0 {
		count = 0
	}
	if now == nil {
		now = time.Now
	}
	return &BatchService{count: count, now: now}
}

// List returns the windows currently on offer.
func (s *BatchService) List(_ context.Context) []models.BatchWindow {
	return ComputeBatches(s.count, s.now())
}

// Resolve finds the offered window whose label matches the one the form displayed.
// Identifiers repeat across Monday rollovers, so a bare id or a label whose dates
// have since moved is reported as unavailable.
func (s *BatchService) Resolve(ctx context.Context, label string) (models.BatchWindow, error) {
	label = strings.TrimSpace(label)
	for _, w := range s.List(ctx) {
		if w.Label() == label {
			return w, nil
		}
	}
	return models.BatchWindow{}, appErrors.Clone(appErrors.ErrBatchUnavailable, "selected batch is no longer available, please choose another")
}
