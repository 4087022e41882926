package models

import (
	"fmt"
	"time"
)

// BatchDateLayout renders batch window dates in labels.
const BatchDateLayout = "Jan 2, 2006"

// BatchWindow is a 12-day enrollment period. Only its Label is persisted.
type BatchWindow struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Label formats the window as "{id} ({start} - {end})".
func (w BatchWindow) Label() string {
	return fmt.Sprintf("%s (%s - %s)", w.ID, w.StartDate.Format(BatchDateLayout), w.EndDate.Format(BatchDateLayout))
}
