package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beanhouse-cafe/api/internal/enum"
	"github.com/beanhouse-cafe/api/internal/handler"
	"github.com/beanhouse-cafe/api/internal/store"
)

// --- Mock MenuStore ---

type mockMenuStore struct {
	listMenuFn       func(ctx context.Context) ([]store.MenuItem, error)
	createMenuItemFn func(ctx context.Context, item store.MenuItem) (store.MenuItem, error)
	updateMenuItemFn func(ctx context.Context, item store.MenuItem) (store.MenuItem, error)
	deleteMenuItemFn func(ctx context.Context, id string) error
}

func (m *mockMenuStore) ListMenu(ctx context.Context) ([]store.MenuItem, error) {
	if m.listMenuFn != nil {
		return m.listMenuFn(ctx)
	}
	return []store.MenuItem{}, nil
}

func (m *mockMenuStore) CreateMenuItem(ctx context.Context, item store.MenuItem) (store.MenuItem, error) {
	if m.createMenuItemFn != nil {
		return m.createMenuItemFn(ctx, item)
	}
	return item, nil
}

func (m *mockMenuStore) UpdateMenuItem(ctx context.Context, item store.MenuItem) (store.MenuItem, error) {
	if m.updateMenuItemFn != nil {
		return m.updateMenuItemFn(ctx, item)
	}
	return item, nil
}

func (m *mockMenuStore) DeleteMenuItem(ctx context.Context, id string) error {
	if m.deleteMenuItemFn != nil {
		return m.deleteMenuItemFn(ctx, id)
	}
	return nil
}

func newMenuRouter(st *mockMenuStore) chi.Router {
	h := handler.NewMenuHandler(st, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/api/menu", func(r chi.Router) {
		h.RegisterPublicRoutes(r)
		h.RegisterStaffRoutes(r)
	})
	return r
}

func TestMenuList(t *testing.T) {
	st := &mockMenuStore{
		listMenuFn: func(ctx context.Context) ([]store.MenuItem, error) {
			return []store.MenuItem{
				{ID: "m1", Name: "Espresso", Price: 120, Category: "Coffee"},
				{ID: "m2", Name: "Latte", Price: 180, Category: "Coffee"},
			}, nil
		},
	}
	r := newMenuRouter(st)

	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var items []store.MenuItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 2)
	assert.Equal(t, "Espresso", items[0].Name)
}

func TestMenuCreate(t *testing.T) {
	var created store.MenuItem
	st := &mockMenuStore{
		createMenuItemFn: func(ctx context.Context, item store.MenuItem) (store.MenuItem, error) {
			created = item
			return item, nil
		},
	}
	r := newMenuRouter(st)

	body := `{"name":"  Latte  ","price":180,"description":"with milk","imageUrl":"http://img/latte.png"}`
	req := httptest.NewRequest(http.MethodPost, "/api/menu", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Latte", created.Name, "name is trimmed")
	assert.Equal(t, enum.CategoryOther, created.Category, "missing category defaults")
	assert.NotEmpty(t, created.ID, "server assigns the id")
}

func TestMenuCreateDuplicateName(t *testing.T) {
	st := &mockMenuStore{
		createMenuItemFn: func(ctx context.Context, item store.MenuItem) (store.MenuItem, error) {
			return store.MenuItem{}, store.ErrDuplicateName
		},
	}
	r := newMenuRouter(st)

	req := httptest.NewRequest(http.MethodPost, "/api/menu", strings.NewReader(`{"name":"Latte","price":180}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestMenuCreateValidation(t *testing.T) {
	r := newMenuRouter(&mockMenuStore{})

	tests := []struct {
		name string
		body string
	}{
		{"blank name", `{"name":"   ","price":100}`},
		{"negative price", `{"name":"Latte","price":-5}`},
		{"bad json", `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/menu", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestMenuUpdate(t *testing.T) {
	var updated store.MenuItem
	st := &mockMenuStore{
		updateMenuItemFn: func(ctx context.Context, item store.MenuItem) (store.MenuItem, error) {
			updated = item
			return item, nil
		},
	}
	r := newMenuRouter(st)

	req := httptest.NewRequest(http.MethodPut, "/api/menu/m1", strings.NewReader(`{"name":"Latte","price":200,"category":"Coffee"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "m1", updated.ID, "id comes from the path, not the body")
	assert.Equal(t, 200.0, updated.Price)
}

func TestMenuUpdateNotFound(t *testing.T) {
	st := &mockMenuStore{
		updateMenuItemFn: func(ctx context.Context, item store.MenuItem) (store.MenuItem, error) {
			return store.MenuItem{}, store.ErrNotFound
		},
	}
	r := newMenuRouter(st)

	req := httptest.NewRequest(http.MethodPut, "/api/menu/ghost", strings.NewReader(`{"name":"Latte","price":200}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMenuDelete(t *testing.T) {
	var deletedID string
	st := &mockMenuStore{
		deleteMenuItemFn: func(ctx context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	r := newMenuRouter(st)

	req := httptest.NewRequest(http.MethodDelete, "/api/menu/m1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "m1", deletedID)
}

func TestMenuDeleteNotFound(t *testing.T) {
	st := &mockMenuStore{
		deleteMenuItemFn: func(ctx context.Context, id string) error {
			return store.ErrNotFound
		},
	}
	r := newMenuRouter(st)

	req := httptest.NewRequest(http.MethodDelete, "/api/menu/ghost", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMenuListStoreFailure(t *testing.T) {
	st := &mockMenuStore{
		listMenuFn: func(ctx context.Context) ([]store.MenuItem, error) {
			return nil, errors.New("store down")
		},
	}
	r := newMenuRouter(st)

	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
