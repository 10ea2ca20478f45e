package quiz

import (
	"github.com/saulo-duarte/testsafe/internal/bank"
	"github.com/saulo-duarte/testsafe/internal/history"
	"github.com/saulo-duarte/testsafe/internal/session"
)

type QuizContainer struct {
	Service QuizService
	Handler *Handler
}

func NewQuizContainer(b *bank.Bank, sessions session.Repository, hist history.Store, shuffle bool) *QuizContainer {
	service := NewService(b, sessions, hist, shuffle)
	handler := NewHandler(service)

	return &QuizContainer{
		Service: service,
		Handler: handler,
	}
}
