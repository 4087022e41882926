package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/batch-intake-api/internal/models"
	"github.com/noah-isme/batch-intake-api/internal/service"
)

func newTestRouter(checks map[string]ReadinessCheck, adminGuard gin.HandlerFunc) (*gin.Engine, *reviewServiceMock) {
	gin.SetMode(gin.TestMode)
	review := &reviewServiceMock{toggleResp: &models.Candidate{ID: "c-1"}}
	r := gin.New()
	RegisterRoutes(r, Routes{
		APIPrefix:  "/api/v1",
		Intake:     NewIntakeHandler(&intakeServiceMock{}),
		Review:     NewReviewHandler(review),
		Metrics:    NewMetricsHandler(service.NewMetricsService(), checks),
		AdminGuard: adminGuard,
	})
	return r, review
}

func TestRouterAdminGuard(t *testing.T) {
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusUnauthorized) }
	r, review := newTestRouter(nil, deny)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/candidates/c-1/flags", strings.NewReader(`{"flag":"attended_intro","value":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, review.toggleCalled)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/batches", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterExportAndFlagRoutesCoexist(t *testing.T) {
	r, review := newTestRouter(nil, nil)
	review.exportFile = &service.ExportFile{Filename: "c.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/candidates/export?format=pdf", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pdf", review.lastFormat)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/candidates/export/flags", strings.NewReader(`{"flag":"attended_intro","value":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "export", review.lastID)

	review.getResp = &models.Candidate{ID: "c-9"}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/candidates/c-9", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c-9", review.lastID)
}

func TestRouterReadiness(t *testing.T) {
	checks := map[string]ReadinessCheck{
		"store": func(context.Context) error { return errors.New("record store is not configured") },
		"cache": func(context.Context) error { return nil },
	}
	r, _ := newTestRouter(checks, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"cache":"ok"`)
	assert.Contains(t, w.Body.String(), "not configured")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")
}
