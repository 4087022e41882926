package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/noah-isme/batch-intake-api/internal/models"
	"github.com/noah-isme/batch-intake-api/pkg/recordstore"
)

// candidateInsert is the wire shape of a new row. Identity and creation time are
// assigned by the store, so they are not sent.
type candidateInsert struct {
	FullName          string               `json:"full_name"`
	Email             string               `json:"email"`
	ContactNumber     string               `json:"contact_number"`
	Gender            *string              `json:"gender"`
	Qualification     models.Qualification `json:"qualification"`
	YearOfCompletion  string               `json:"year_of_completion"`
	CollegeName       string               `json:"college_name"`
	HODName           *string              `json:"hod_name"`
	HODContact        *string              `json:"hod_contact"`
	HODEmail          *string              `json:"hod_email"`
	Batch             string               `json:"batch"`
	Reference         string               `json:"reference"`
	ContactedWhatsApp bool                 `json:"contacted_whatsapp"`
	ContactedCall     bool                 `json:"contacted_call"`
	AttendedSession   bool                 `json:"attended_session"`
	AttendedIntro     bool                 `json:"attended_intro"`
}

// recordClient is the subset of recordstore.Client used here.
type recordClient interface {
	Insert(ctx context.Context, table string, record interface{}, dest interface{}) error
	SelectAll(ctx context.Context, table string, order recordstore.Order, dest interface{}) error
	FindByID(ctx context.Context, table, id string, dest interface{}) (bool, error)
	Update(ctx context.Context, table, id string, patch interface{}, dest interface{}) (bool, error)
	Ping(ctx context.Context, table string) error
}

// CandidateRESTRepository persists candidates through the hosted record store API.
type CandidateRESTRepository struct {
	client recordClient
	table  string
}

// NewCandidateRESTRepository constructs a CandidateRESTRepository.
func NewCandidateRESTRepository(client recordClient, table string) *CandidateRESTRepository {
	if table == "" {
		table = "candidates"
	}
	return &CandidateRESTRepository{client: client, table: table}
}

// Create inserts a candidate and copies the store-assigned id and timestamp back.
func (r *CandidateRESTRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	row := candidateInsert{
		FullName:          candidate.FullName,
		Email:             candidate.Email,
		ContactNumber:     candidate.ContactNumber,
		Gender:            candidate.Gender,
		Qualification:     candidate.Qualification,
		YearOfCompletion:  candidate.YearOfCompletion,
		CollegeName:       candidate.CollegeName,
		HODName:           candidate.HODName,
		HODContact:        candidate.HODContact,
		HODEmail:          candidate.HODEmail,
		Batch:             candidate.Batch,
		Reference:         candidate.Reference,
		ContactedWhatsApp: candidate.ContactedWhatsApp,
		ContactedCall:     candidate.ContactedCall,
		AttendedSession:   candidate.AttendedSession,
		AttendedIntro:     candidate.AttendedIntro,
	}
	var stored models.Candidate
	if err := r.client.Insert(ctx, r.table, row, &stored); err != nil {
		return fmt.Errorf("create candidate: %w", err)
	}
	*candidate = stored
	return nil
}

// List returns every candidate, newest first.
func (r *CandidateRESTRepository) List(ctx context.Context) ([]models.Candidate, error) {
	candidates := make([]models.Candidate, 0)
	if err := r.client.SelectAll(ctx, r.table, recordstore.Order{Column: "created_at", Descending: true}, &candidates); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

// FindByID fetches a candidate. It returns sql.ErrNoRows when absent or when id is not a UUID.
func (r *CandidateRESTRepository) FindByID(ctx context.Context, id string) (*models.Candidate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, sql.ErrNoRows
	}
	var candidate models.Candidate
	found, err := r.client.FindByID(ctx, r.table, id, &candidate)
	if err != nil {
		return nil, fmt.Errorf("find candidate: %w", err)
	}
	if !found {
		return nil, sql.ErrNoRows
	}
	return &candidate, nil
}

// UpdateFlag patches a single review flag. It returns sql.ErrNoRows when no
// candidate has the id.
func (r *CandidateRESTRepository) UpdateFlag(ctx context.Context, id string, flag models.CandidateFlag, value bool) (*models.Candidate, error) {
	column, ok := flagColumns[flag]
	if !ok {
		return nil, fmt.Errorf("update candidate flag: unknown flag %q", flag)
	}
	// the store rejects non-UUID filters on the id column
	if _, err := uuid.Parse(id); err != nil {
		return nil, sql.ErrNoRows
	}
	var candidate models.Candidate
	found, err := r.client.Update(ctx, r.table, id, map[string]bool{column: value}, &candidate)
	if err != nil {
		return nil, fmt.Errorf("update candidate flag: %w", err)
	}
	if !found {
		return nil, sql.ErrNoRows
	}
	return &candidate, nil
}

// Ping verifies the store answers for the candidates table.
func (r *CandidateRESTRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, r.table)
}
