package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/batch-intake-api/internal/models"
	"github.com/noah-isme/batch-intake-api/pkg/recordstore"
)

func newRESTRepo(t *testing.T, handler http.HandlerFunc) *CandidateRESTRepository {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCandidateRESTRepository(recordstore.New(recordstore.Options{URL: srv.URL, Key: "anon"}), "")
}

func TestCandidateRESTRepositoryCreateOmitsServerFields(t *testing.T) {
	repo := newRESTRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/candidates", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "id")
		assert.NotContains(t, body, "created_at")
		assert.Nil(t, body["gender"])
		assert.Equal(t, "", body["hod_name"])
		assert.Equal(t, false, body["attended_session"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":"7f1c","full_name":"Asha","gender":null,"hod_name":"","batch":"Batch 36","created_at":"2026-10-19T10:00:00.123456+00:00"}]`))
	})

	empty := ""
	candidate := &models.Candidate{FullName: "Asha", HODName: &empty, Batch: "Batch 36"}
	require.NoError(t, repo.Create(context.Background(), candidate))

	assert.Equal(t, "7f1c", candidate.ID)
	assert.Nil(t, candidate.Gender)
	require.NotNil(t, candidate.HODName)
	assert.Equal(t, "", *candidate.HODName)
	assert.Equal(t, 2026, candidate.CreatedAt.Year())
}

func TestCandidateRESTRepositoryListOrder(t *testing.T) {
	repo := newRESTRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		_, _ = w.Write([]byte(`[{"id":"2","created_at":"2026-10-19T11:00:00Z"},{"id":"1","created_at":"2026-10-19T10:00:00Z"}]`))
	})

	candidates, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "2", candidates[0].ID)
}

func TestCandidateRESTRepositoryUpdateFlagPatchesOneColumn(t *testing.T) {
	repo := newRESTRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq."+candidateID, r.URL.Query().Get("id"))
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"contacted_whatsapp": true}, body)
		_, _ = w.Write([]byte(`[{"id":"` + candidateID + `","contacted_whatsapp":true,"created_at":"2026-10-19T10:00:00Z"}]`))
	})

	candidate, err := repo.UpdateFlag(context.Background(), candidateID, models.FlagContactedWhatsApp, true)
	require.NoError(t, err)
	assert.True(t, candidate.ContactedWhatsApp)
}

func TestCandidateRESTRepositoryNotFound(t *testing.T) {
	repo := newRESTRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := repo.UpdateFlag(context.Background(), candidateID, models.FlagAttendedIntro, true)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), candidateID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCandidateRESTRepositoryNonUUIDNeverCallsStore(t *testing.T) {
	calls := 0
	repo := newRESTRepo(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"22P02","message":"invalid input syntax for type uuid"}`))
	})

	_, err := repo.UpdateFlag(context.Background(), "nope", models.FlagAttendedIntro, true)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Equal(t, 0, calls)
}

func TestCandidateRESTRepositoryDegradedClient(t *testing.T) {
	repo := NewCandidateRESTRepository(recordstore.New(recordstore.Options{}), "candidates")

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, recordstore.ErrNotConfigured)
}
