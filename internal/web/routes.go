package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/testsafe/internal/auth"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(auth.Middleware)

	r.Get("/", h.Start)
	r.Post("/sesion", h.NewSession)
	r.Get("/pregunta", h.Question)
	r.Post("/respuesta", h.Answer)
	r.Get("/resultado", h.Result)
	r.Post("/reiniciar", h.Restart)

	return r
}
