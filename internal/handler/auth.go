package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/beanhouse-cafe/api/internal/auth"
)

// AuthHandler exchanges the shared activation key for a staff session token.
// A single shared key gates the dashboard; there are no per-user accounts.
type AuthHandler struct {
	activationKey string
	jwtSecret     string
	sessionTTL    time.Duration
	logger        *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(activationKey, jwtSecret string, sessionTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		activationKey: activationKey,
		jwtSecret:     jwtSecret,
		sessionTTL:    sessionTTL,
		logger:        logger,
	}
}

// RegisterRoutes registers the activation endpoint on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/activate", h.Activate)
}

type activateRequest struct {
	Key string `json:"key"`
}

type activateResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Activate handles POST /api/auth/activate.
func (h *AuthHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "key is required"})
		return
	}
	if req.Key != h.activationKey {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid activation key"})
		return
	}

	token, expiresAt, err := auth.GenerateToken(h.jwtSecret, h.sessionTTL)
	if err != nil {
		h.logger.Error("generate staff token", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, activateResponse{Token: token, ExpiresAt: expiresAt})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode JSON response", zap.Error(err))
	}
}
