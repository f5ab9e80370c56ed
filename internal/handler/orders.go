package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/beanhouse-cafe/api/internal/service"
	"github.com/beanhouse-cafe/api/internal/store"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	PlaceOrder(ctx context.Context, req service.PlaceOrderRequest) ([]store.Order, error)
	ListPending(ctx context.Context) ([]store.Order, error)
	ListFinished(ctx context.Context) ([]store.Order, error)
	ListAll(ctx context.Context) ([]store.Order, error)
	TransitionStatus(ctx context.Context, id, status string) (store.Order, error)
	BulkTransition(ctx context.Context, ids []string, status string) ([]service.BulkResult, error)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc       OrderServicer
	groupMode string
	logger    *zap.Logger
}

// NewOrderHandler creates a new OrderHandler. groupMode selects the cart
// aggregation strategy (submission or window) for the whole process.
func NewOrderHandler(svc OrderServicer, groupMode string, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, groupMode: groupMode, logger: logger}
}

// RegisterPublicRoutes registers the storefront-facing endpoints.
func (h *OrderHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.ListPending)
	r.Get("/all", h.ListAll)
	r.Get("/completed-canceled", h.ListFinished)
	r.Post("/", h.Create)
}

// RegisterStaffRoutes registers the dashboard-facing endpoints.
func (h *OrderHandler) RegisterStaffRoutes(r chi.Router) {
	r.Get("/carts", h.ListCarts)
	r.Patch("/{id}", h.UpdateStatus)
	r.Post("/bulk-status", h.BulkUpdateStatus)
}

// --- Request / Response types ---

type placeOrderRequest struct {
	Table string                  `json:"table"`
	Notes string                  `json:"notes"`
	Items []placeOrderItemRequest `json:"items"`
}

type placeOrderItemRequest struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

type bulkFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// bulkStatusResponse reports every member outcome. OK is false when any
// member failed; already-applied transitions are intentionally not reverted,
// so staff retry only the failed remainder.
type bulkStatusResponse struct {
	OK      bool          `json:"ok"`
	Updated []store.Order `json:"updated"`
	Failed  []bulkFailure `json:"failed"`
}

type cartListResponse struct {
	Carts []service.CartGroup `json:"carts"`
}

// --- Handlers ---

// Create handles POST /api/orders: one checkout, N persisted rows.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items are required"})
		return
	}
	for i, item := range req.Items {
		if item.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": formatItemError(i, "name is required"),
			})
			return
		}
		if item.Qty <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error": formatItemError(i, "qty must be > 0"),
			})
			return
		}
	}

	items := make([]service.PlaceOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.PlaceOrderItem{Name: item.Name, Qty: item.Qty, Price: item.Price}
	}

	orders, err := h.svc.PlaceOrder(r.Context(), service.PlaceOrderRequest{
		Table: req.Table,
		Notes: req.Notes,
		Items: items,
	})
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Error("place order", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, orders)
}

// ListPending handles GET /api/orders.
func (h *OrderHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "list pending orders", h.svc.ListPending)
}

// ListAll handles GET /api/orders/all.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "list all orders", h.svc.ListAll)
}

// ListFinished handles GET /api/orders/completed-canceled.
func (h *OrderHandler) ListFinished(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "list finished orders", h.svc.ListFinished)
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request, op string, fetch func(context.Context) ([]store.Order, error)) {
	orders, err := fetch(r.Context())
	if err != nil {
		h.logger.Error(op, zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// ListCarts handles GET /api/orders/carts: pending orders grouped into the
// logical carts the dashboard renders and acts on.
func (h *OrderHandler) ListCarts(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListPending(r.Context())
	if err != nil {
		h.logger.Error("list carts", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, cartListResponse{Carts: service.GroupPending(orders, h.groupMode)})
}

// UpdateStatus handles PATCH /api/orders/{id}.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	order, err := h.svc.TransitionStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, store.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		case errors.Is(err, store.ErrAlreadyFinal):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "order is already completed or canceled"})
		default:
			h.logger.Error("update order status", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// BulkUpdateStatus handles POST /api/orders/bulk-status: one logical cart
// resolved in a single action.
func (h *OrderHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.IDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "ids are required"})
		return
	}

	results, err := h.svc.BulkTransition(r.Context(), req.IDs, req.Status)
	if err != nil {
		if isValidationError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Error("bulk update status", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	resp := bulkStatusResponse{OK: true, Updated: []store.Order{}, Failed: []bulkFailure{}}
	for _, res := range results {
		if res.Err != nil {
			resp.OK = false
			resp.Failed = append(resp.Failed, bulkFailure{ID: res.ID, Error: bulkErrorMessage(res.Err)})
			continue
		}
		resp.Updated = append(resp.Updated, res.Order)
	}
	if !resp.OK {
		h.logger.Warn("bulk status action partially failed",
			zap.Int("updated", len(resp.Updated)),
			zap.Int("failed", len(resp.Failed)))
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- Helpers ---

func formatItemError(idx int, msg string) string {
	return "items[" + strconv.Itoa(idx) + "]: " + msg
}

// isValidationError checks if the error is a known validation error
// from the service layer that should result in 400 Bad Request.
func isValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyItems) ||
		errors.Is(err, service.ErrItemName) ||
		errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrInvalidPrice) ||
		errors.Is(err, service.ErrInvalidStatus)
}

// bulkErrorMessage keeps internal errors out of per-member failure reports.
func bulkErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "order not found"
	case errors.Is(err, store.ErrAlreadyFinal):
		return "order is already completed or canceled"
	default:
		return "internal error"
	}
}
