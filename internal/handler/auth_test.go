package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beanhouse-cafe/api/internal/auth"
	"github.com/beanhouse-cafe/api/internal/handler"
)

func newAuthRouter(activationKey string) chi.Router {
	h := handler.NewAuthHandler(activationKey, "test-secret", time.Hour, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/api/auth", h.RegisterRoutes)
	return r
}

func TestActivateIssuesToken(t *testing.T) {
	r := newAuthRouter("open-sesame")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/activate", strings.NewReader(`{"key":"open-sesame"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	claims, err := auth.ValidateToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleStaff, claims.Role)
}

func TestActivateRejectsWrongKey(t *testing.T) {
	r := newAuthRouter("open-sesame")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/activate", strings.NewReader(`{"key":"guess"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestActivateValidation(t *testing.T) {
	r := newAuthRouter("open-sesame")

	tests := []struct {
		name string
		body string
	}{
		{"empty key", `{"key":""}`},
		{"missing key", `{}`},
		{"bad json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/activate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
