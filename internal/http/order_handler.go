package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tusharrdev/greencart-backend/internal/order"
)

type OrderHandler struct {
	svc *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type placeOrderRequest struct {
	Items   []order.ItemRef `json:"items"`
	Address string          `json:"address"`
}

// PlaceCOD handles POST /api/order/cod. Failures are reported in the
// success envelope with HTTP 200; the caller branches on "success".
func (h *OrderHandler) PlaceCOD(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.PlaceCOD(ctx, UserID(r.Context()), req.Items, req.Address); err != nil {
		writeFailure(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Order placed successfully",
	})
}

// PlaceStripe handles POST /api/order/stripe and returns the hosted
// checkout URL for the frontend to redirect to.
func (h *OrderHandler) PlaceStripe(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	url, err := h.svc.PlaceStripe(ctx, UserID(r.Context()), req.Items, req.Address, r.Header.Get("Origin"))
	if err != nil {
		writeFailure(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"url":     url,
	})
}

// ListMine handles GET /api/order/user.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.svc.ListByUser(ctx, UserID(r.Context()))
	if err != nil {
		writeFailure(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  orders,
	})
}

// ListAll handles GET /api/order/seller, the unscoped seller view.
// Authorization for it lives upstream.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.svc.ListAll(ctx)
	if err != nil {
		writeFailure(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  orders,
	})
}
