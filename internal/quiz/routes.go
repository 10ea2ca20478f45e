package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.Health)
	r.Get("/bank", h.GetBank)
	r.Get("/history", h.GetHistory)

	return r
}
