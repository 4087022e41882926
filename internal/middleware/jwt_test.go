package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/batch-intake-api/internal/models"
	appErrors "github.com/noah-isme/batch-intake-api/pkg/errors"
)

type stubValidator struct {
	token string
}

func (s stubValidator) ValidateToken(token string) (*models.AdminClaims, error) {
	if token != s.token {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return &models.AdminClaims{Email: "reviewer@example.com"}, nil
}

func newJWTRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWT(stubValidator{token: "good"}))
	router.GET("/admin", func(c *gin.Context) {
		claims := AdminFromContext(c)
		if claims == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.Email)
	})
	return router
}

func TestJWTMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer bad", status: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", status: http.StatusOK},
	}

	router := newJWTRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			router.ServeHTTP(recorder, req)

			if recorder.Code != tc.status {
				t.Fatalf("unexpected status: %d", recorder.Code)
			}
			if tc.status == http.StatusOK && recorder.Body.String() != "reviewer@example.com" {
				t.Fatalf("claims not propagated: %s", recorder.Body.String())
			}
		})
	}
}
