package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"checkout-service/internal/checkout"
	"checkout-service/internal/metrics"
	"checkout-service/internal/redisx"
)

// OrderPlacer is what the handler needs from the engine.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, ownerID, email string, cartItemIDs []string) (checkout.Confirmation, error)
}

// StatusReader is the read path for GET /orders/{id}.
type StatusReader interface {
	OrderStatus(ctx context.Context, orderID string) (checkout.Status, error)
}

type CheckoutHandler struct {
	Engine OrderPlacer
	Store  StatusReader
	Redis  *redis.Client
}

type placeOrderReq struct {
	CartItemIDs []string `json:"cart_item_ids"`
}

type placeOrderResp struct {
	Message string `json:"message"`
}

func (h *CheckoutHandler) Register(r *chi.Mux, auth func(http.Handler) http.Handler) {
	r.Group(func(g chi.Router) {
		g.Use(auth)
		g.Post("/checkout", h.placeOrder)
		g.Get("/orders/{id}", h.getOrderStatus)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *CheckoutHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not authenticated"})
		return
	}

	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if len(req.CartItemIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cart_item_ids must not be empty"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	conf, err := h.Engine.PlaceOrder(ctx, id.Sub, id.Email, req.CartItemIDs)
	if err != nil {
		metrics.RecordOrder(outcomeFor(err))
		writeError(w, err)
		return
	}
	metrics.RecordOrder("placed")

	// Warm the status cache so the first status poll skips the DB.
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, conf.OrderID)
		_ = h.Redis.Set(ctx, key, string(checkout.StatusPending), redisx.TTLStatusCache).Err()
	}

	writeJSON(w, http.StatusOK, placeOrderResp{Message: conf.Message})
}

func (h *CheckoutHandler) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, map[string]string{"status": s})
			return
		}
	}

	status, err := h.Store.OrderStatus(ctx, orderID)
	if errors.Is(err, checkout.ErrOrderNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if err != nil {
		log.Printf("order status %s: %v", orderID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if h.Redis != nil {
		_ = h.Redis.Set(ctx, key, string(status), redisx.TTLStatusCache).Err()
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

// writeError maps engine errors onto the wire: validation failures keep their
// detail, anything from the transactional phase is a generic 500.
func writeError(w http.ResponseWriter, err error) {
	var invalid *checkout.InvalidCartItemsError
	var stock *checkout.InsufficientStockError
	switch {
	case errors.Is(err, checkout.ErrCartNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &invalid) || errors.As(err, &stock):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("place order: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func outcomeFor(err error) string {
	var invalid *checkout.InvalidCartItemsError
	var stock *checkout.InsufficientStockError
	switch {
	case errors.Is(err, checkout.ErrCartNotFound):
		return "cart_not_found"
	case errors.As(err, &invalid):
		return "invalid_items"
	case errors.As(err, &stock):
		return "insufficient_stock"
	default:
		return "internal_error"
	}
}
