package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/saulo-duarte/testsafe/internal/auth"
	"github.com/saulo-duarte/testsafe/internal/config"
	"github.com/saulo-duarte/testsafe/internal/quiz"
)

type Handler struct {
	service quiz.QuizService
	ttl     time.Duration
}

func NewHandler(s quiz.QuizService, sessionTTL time.Duration) *Handler {
	return &Handler{service: s, ttl: sessionTTL}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		config.WithContext(r.Context()).Errorf("Erro ao renderizar %s: %v", name, err)
	}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	_, stats, err := h.service.History(r.Context(), 0)
	if err != nil {
		log.WithError(err).Warn("Não foi possível ler o histórico para a página inicial")
	}

	h.render(w, r, "start.html", startPage{
		Bank:  h.service.BankInfo(),
		Stats: stats,
	})
}

func (h *Handler) NewSession(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var opts quiz.StartOptions
	if raw := r.PostFormValue("cantidad"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			http.Error(w, "invalid question count", http.StatusBadRequest)
			return
		}
		opts.Limit = n
	}

	sess, err := h.service.Start(r.Context(), opts)
	if err != nil {
		log.WithError(err).Error("Erro ao iniciar a sessão")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateSessionToken(sess.ID, h.ttl)
	if err != nil {
		log.WithError(err).Error("Erro ao assinar o cookie de sessão")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	auth.SetSessionCookie(w, token, h.ttl)

	http.Redirect(w, r, "/pregunta", http.StatusSeeOther)
}

func (h *Handler) Question(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := auth.SessionID(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view, err := h.service.Question(r.Context(), sessionID)
	switch {
	case errors.Is(err, quiz.ErrSessionFinished):
		http.Redirect(w, r, "/resultado", http.StatusSeeOther)
	case errors.Is(err, quiz.ErrSessionNotFound), errors.Is(err, quiz.ErrSessionExpired):
		auth.ClearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case err != nil:
		config.WithContext(r.Context()).WithError(err).Error("Erro ao buscar a pergunta atual")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		h.render(w, r, "question.html", questionPage{Question: view})
	}
}

func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := auth.SessionID(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	number, err := strconv.Atoi(r.PostFormValue("pregunta"))
	if err != nil {
		http.Error(w, "invalid question number", http.StatusBadRequest)
		return
	}
	option, err := strconv.Atoi(r.PostFormValue("opcion"))
	if err != nil {
		http.Error(w, "invalid option", http.StatusBadRequest)
		return
	}

	result, err := h.service.Answer(r.Context(), sessionID, number, option)
	switch {
	case errors.Is(err, quiz.ErrQuestionMismatch):
		// stale form, usually a double submit or the back button;
		// show the current question again
		http.Redirect(w, r, "/pregunta", http.StatusSeeOther)
	case errors.Is(err, quiz.ErrSessionFinished):
		http.Redirect(w, r, "/resultado", http.StatusSeeOther)
	case errors.Is(err, quiz.ErrSessionNotFound), errors.Is(err, quiz.ErrSessionExpired):
		auth.ClearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, quiz.ErrInvalidOption):
		http.Error(w, "invalid option", http.StatusBadRequest)
	case err != nil:
		config.WithContext(r.Context()).WithError(err).Error("Erro ao registrar a resposta")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	default:
		h.render(w, r, "feedback.html", feedbackPage{Result: result})
	}
}

func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	sessionID, ok := auth.SessionID(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sum, err := h.service.Finish(r.Context(), sessionID)
	switch {
	case errors.Is(err, quiz.ErrSessionNotFound), errors.Is(err, quiz.ErrSessionExpired):
		auth.ClearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case err != nil:
		log.WithError(err).Error("Erro ao finalizar a sessão")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	records, _, err := h.service.History(r.Context(), 10)
	if err != nil {
		log.WithError(err).Warn("Não foi possível ler o histórico para a página de resultado")
		records = nil
	}

	h.render(w, r, "result.html", resultPage{
		Summary: sum,
		Records: records,
	})
}

func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
