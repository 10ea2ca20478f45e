package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/testsafe/internal/quiz"
	"github.com/saulo-duarte/testsafe/internal/web"
)

type RouterConfig struct {
	QuizHandler *quiz.Handler
	WebHandler  *web.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/", quiz.Routes(cfg.QuizHandler))
	})

	r.Mount("/", web.Routes(cfg.WebHandler))

	return r
}
