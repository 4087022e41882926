package dto

import (
	"time"

	"github.com/noah-isme/batch-intake-api/internal/models"
)

// SubmitApplicationRequest is the public intake payload. Optional fields are
// pointers so an omitted field (nil) stays distinct from an empty string.
type SubmitApplicationRequest struct {
	FullName         string  `json:"full_name" validate:"required,min=2"`
	Email            string  `json:"email" validate:"required,email"`
	ContactNumber    string  `json:"contact_number" validate:"required,phone"`
	Gender           *string `json:"gender"`
	Qualification    string  `json:"qualification" validate:"required,qualification"`
	YearOfCompletion string  `json:"year_of_completion" validate:"required"`
	CollegeName      string  `json:"college_name" validate:"required"`
	HODName          *string `json:"hod_name"`
	HODContact       *string `json:"hod_contact"`
	HODEmail         *string `json:"hod_email" validate:"omitempty,email"`
	Batch            string  `json:"batch" validate:"required"` // label of the chosen BatchOption
	Reference        string  `json:"reference" validate:"required"`
}

// SubmissionReceipt acknowledges a stored application without echoing its contents.
type SubmissionReceipt struct {
	ID        string    `json:"id"`
	Batch     string    `json:"batch"`
	CreatedAt time.Time `json:"created_at"`
}

// ToggleFlagRequest sets one review flag on one candidate.
type ToggleFlagRequest struct {
	Flag  models.CandidateFlag `json:"flag" validate:"required"`
	Value *bool                `json:"value" validate:"required"`
}

// BatchOption is one selectable batch on the intake form. Its Label is the value
// submitted back as SubmitApplicationRequest.Batch.
type BatchOption struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// NewBatchOptions maps computed windows to form options.
func NewBatchOptions(windows []models.BatchWindow) []BatchOption {
	out := make([]BatchOption, 0, len(windows))
	for _, w := range windows {
		out = append(out, BatchOption{ID: w.ID, Label: w.Label(), StartDate: w.StartDate, EndDate: w.EndDate})
	}
	return out
}

// IntakeOptionsResponse describes the choices offered by the intake form.
type IntakeOptionsResponse struct {
	Batches        []BatchOption `json:"batches"`
	Qualifications []string      `json:"qualifications"`
}

// CandidateSummary aggregates flag counts shown above the dashboard table.
type CandidateSummary struct {
	Total             int `json:"total"`
	ContactedWhatsApp int `json:"contacted_whatsapp"`
	ContactedCall     int `json:"contacted_call"`
	AttendedSession   int `json:"attended_session"`
	AttendedIntro     int `json:"attended_intro"`
}

// Summarize counts set flags across candidates.
func Summarize(candidates []models.Candidate) CandidateSummary {
	s := CandidateSummary{Total: len(candidates)}
	for _, c := range candidates {
		if c.ContactedWhatsApp {
			s.ContactedWhatsApp++
		}
		if c.ContactedCall {
			s.ContactedCall++
		}
		if c.AttendedSession {
			s.AttendedSession++
		}
		if c.AttendedIntro {
			s.AttendedIntro++
		}
	}
	return s
}
