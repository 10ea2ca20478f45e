package web

import (
	"time"

	"github.com/saulo-duarte/testsafe/internal/quiz"
)

type WebContainer struct {
	Handler *Handler
}

func NewWebContainer(service quiz.QuizService, sessionTTL time.Duration) *WebContainer {
	return &WebContainer{
		Handler: NewHandler(service, sessionTTL),
	}
}
