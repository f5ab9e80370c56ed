package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beanhouse-cafe/api/internal/enum"
	"github.com/beanhouse-cafe/api/internal/store"
)

// MenuStore defines the persistence methods needed by menu handlers.
// Satisfied by store.Store; narrow interface for testability.
type MenuStore interface {
	ListMenu(ctx context.Context) ([]store.MenuItem, error)
	CreateMenuItem(ctx context.Context, item store.MenuItem) (store.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item store.MenuItem) (store.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

// MenuHandler handles menu catalog endpoints. Reads are public (the storefront
// needs them); writes are staff-only and mounted behind the auth middleware.
type MenuHandler struct {
	store  MenuStore
	logger *zap.Logger
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(st MenuStore, logger *zap.Logger) *MenuHandler {
	return &MenuHandler{store: st, logger: logger}
}

// RegisterPublicRoutes registers the storefront-facing read endpoint.
func (h *MenuHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.List)
}

// RegisterStaffRoutes registers the dashboard-facing write endpoints.
func (h *MenuHandler) RegisterStaffRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type menuItemRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
}

func (req *menuItemRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if req.Price < 0 {
		return "price must not be negative"
	}
	return ""
}

func (req *menuItemRequest) toItem(id string) store.MenuItem {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = enum.CategoryOther
	}
	return store.MenuItem{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    category,
	}
}

// List handles GET /api/menu.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListMenu(r.Context())
	if err != nil {
		h.logger.Error("list menu", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /api/menu.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	item, err := h.store.CreateMenuItem(r.Context(), req.toItem(uuid.NewString()))
	if err != nil {
		if errors.Is(err, store.ErrDuplicateName) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "menu item name already exists"})
			return
		}
		h.logger.Error("create menu item", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/menu/{id}. Edits overwrite in place; there is no
// versioning and historical orders keep their snapshot prices.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	item, err := h.store.UpdateMenuItem(r.Context(), req.toItem(id))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		case errors.Is(err, store.ErrDuplicateName):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "menu item name already exists"})
		default:
			h.logger.Error("update menu item", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/menu/{id}.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.DeleteMenuItem(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
			return
		}
		h.logger.Error("delete menu item", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
