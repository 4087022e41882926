package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 30, 0, 0, time.UTC)
}

func TestComputeBatchesProperties(t *testing.T) {
	ref := date(2026, time.January, 1)
	for i := 0; i < 400; i++ {
		day := ref.AddDate(0, 0, i)
		windows := ComputeBatches(6, day)
		require.Len(t, windows, 6)

		first := windows[0]
		assert.Equal(t, time.Monday, first.StartDate.Weekday(), day.String())
		assert.False(t, first.StartDate.Before(time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)))
		assert.True(t, first.StartDate.Sub(day) < 7*24*time.Hour)

		for j, w := range windows {
			assert.Equal(t, fmt.Sprintf("Batch %d", 36+j), w.ID)
			assert.Equal(t, 12*24*time.Hour, w.EndDate.Sub(w.StartDate))
			if j > 0 {
				assert.Equal(t, 14*24*time.Hour, w.StartDate.Sub(windows[j-1].StartDate))
				assert.True(t, w.StartDate.After(windows[j-1].EndDate))
			}
		}
	}
}

func TestComputeBatchesReferenceDays(t *testing.T) {
	wednesday := date(2026, time.October, 21)
	monday := date(2026, time.October, 19)
	sunday := date(2026, time.October, 25)

	assert.Equal(t, time.Date(2026, time.October, 26, 0, 0, 0, 0, time.UTC), ComputeBatches(1, wednesday)[0].StartDate)
	assert.Equal(t, time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC), ComputeBatches(1, monday)[0].StartDate)
	assert.Equal(t, time.Date(2026, time.October, 26, 0, 0, 0, 0, time.UTC), ComputeBatches(1, sunday)[0].StartDate)
}

func TestComputeBatchesCounts(t *testing.T) {
	assert.Empty(t, ComputeBatches(0, time.Now()))
	assert.Empty(t, ComputeBatches(-2, time.Now()))
	assert.Len(t, ComputeBatches(1, time.Now()), 1)
}

func TestComputeBatchesLabel(t *testing.T) {
	windows := ComputeBatches(2, date(2026, time.October, 21))
	assert.Equal(t, "Batch 36 (Oct 26, 2026 - Nov 7, 2026)", windows[0].Label())
	assert.Equal(t, "Batch 37 (Nov 9, 2026 - Nov 21, 2026)", windows[1].Label())
}

func TestBatchServiceResolve(t *testing.T) {
	svc := NewBatchService(3, func() time.Time { return date(2026, time.October, 21) })

	w, err := svc.Resolve(context.Background(), " Batch 38 (Nov 23, 2026 - Dec 5, 2026) ")
	require.NoError(t, err)
	assert.Equal(t, "Batch 38", w.ID)

	for _, selection := range []string{
		"Batch 38",
		"Batch 39 (Dec 7, 2026 - Dec 19, 2026)",
		"Batch 36 (Oct 19, 2026 - Oct 31, 2026)",
		"Batch 35",
	} {
		_, err = svc.Resolve(context.Background(), selection)
		assert.True(t, errors.Is(err, appErrors.ErrBatchUnavailable), selection)
	}
}
