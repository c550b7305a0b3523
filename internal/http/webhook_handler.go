package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tusharrdev/greencart-backend/internal/order"
)

type WebhookHandler struct {
	svc *order.Service
}

func NewWebhookHandler(svc *order.Service) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

// Stripe handles POST /stripe. Unlike the buyer endpoints this one has
// a real transport-level failure mode: a bad signature is a plain-text
// 400 so the provider marks the delivery as failed.
func (h *WebhookHandler) Stripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Webhook Error: %s", err.Error()), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.svc.HandleWebhook(ctx, payload, r.Header.Get("Stripe-Signature")); err != nil {
		http.Error(w, fmt.Sprintf("Webhook Error: %s", err.Error()), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}
