package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tusharrdev/greencart-backend/internal/order"
)

func NewRouter(svc *order.Service, auth *Auth) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	wh := NewWebhookHandler(svc)
	r.Post("/stripe", wh.Stripe)

	h := NewOrderHandler(svc)
	r.Route("/api/order", func(r chi.Router) {
		r.With(auth.Authenticate).Post("/cod", h.PlaceCOD)
		r.With(auth.Authenticate).Post("/stripe", h.PlaceStripe)
		r.With(auth.Authenticate).Get("/user", h.ListMine)
		r.Get("/seller", h.ListAll)
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "greencart-backend",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeFailure reports a soft failure: HTTP 200 with success=false and
// a human-readable message, never a transport error.
func writeFailure(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": false,
		"message": msg,
	})
}
