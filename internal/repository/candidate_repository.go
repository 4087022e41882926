package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/batch-intake-api/internal/models"
)

const candidateColumns = `id, full_name, email, contact_number, gender, qualification, year_of_completion, college_name,
        hod_name, hod_contact, hod_email, batch, reference,
        contacted_whatsapp, contacted_call, attended_session, attended_intro, created_at`

// flagColumns whitelists the columns a flag toggle may touch.
var flagColumns = map[models.CandidateFlag]string{
	models.FlagContactedWhatsApp: "contacted_whatsapp",
	models.FlagContactedCall:     "contacted_call",
	models.FlagAttendedSession:   "attended_session",
	models.FlagAttendedIntro:     "attended_intro",
}

// CandidateRepository persists candidates in PostgreSQL.
type CandidateRepository struct {
	db *sqlx.DB
}

// NewCandidateRepository constructs a CandidateRepository.
func NewCandidateRepository(db *sqlx.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// Create inserts a new candidate, assigning its id and creation time.
func (r *CandidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	if candidate.ID == "" {
		candidate.ID = uuid.NewString()
	}
	if candidate.CreatedAt.IsZero() {
		candidate.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO candidates (id, full_name, email, contact_number, gender, qualification, year_of_completion, college_name,
        hod_name, hod_contact, hod_email, batch, reference, contacted_whatsapp, contacted_call, attended_session, attended_intro, created_at)
        VALUES (:id, :full_name, :email, :contact_number, :gender, :qualification, :year_of_completion, :college_name,
        :hod_name, :hod_contact, :hod_email, :batch, :reference, :contacted_whatsapp, :contacted_call, :attended_session, :attended_intro, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, candidate); err != nil {
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

// List returns every candidate, newest first.
func (r *CandidateRepository) List(ctx context.Context) ([]models.Candidate, error) {
	query := fmt.Sprintf("SELECT %s FROM candidates ORDER BY created_at DESC", candidateColumns)
	candidates := make([]models.Candidate, 0)
	if err := r.db.SelectContext(ctx, &candidates, query); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

// FindByID fetches a candidate. It returns sql.ErrNoRows when absent or when id is not a UUID.
func (r *CandidateRepository) FindByID(ctx context.Context, id string) (*models.Candidate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, sql.ErrNoRows
	}
	query := fmt.Sprintf("SELECT %s FROM candidates WHERE id = $1", candidateColumns)
	var candidate models.Candidate
	if err := r.db.GetContext(ctx, &candidate, query, id); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// UpdateFlag sets a single review flag and returns the stored row. It returns
// sql.ErrNoRows when no candidate has the id.
func (r *CandidateRepository) UpdateFlag(ctx context.Context, id string, flag models.CandidateFlag, value bool) (*models.Candidate, error) {
	column, ok := flagColumns[flag]
	if !ok {
		return nil, fmt.Errorf("update candidate flag: unknown flag %q", flag)
	}
	// non-UUID ids cannot match the UUID column
	if _, err := uuid.Parse(id); err != nil {
		return nil, sql.ErrNoRows
	}
	query := fmt.Sprintf("UPDATE candidates SET %s = $1 WHERE id = $2 RETURNING %s", column, candidateColumns)
	var candidate models.Candidate
	if err := r.db.GetContext(ctx, &candidate, query, value, id); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// Ping verifies connectivity.
func (r *CandidateRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
