package container

import (
	"context"
	"fmt"

	"github.com/saulo-duarte/testsafe/internal/auth"
	"github.com/saulo-duarte/testsafe/internal/bank"
	"github.com/saulo-duarte/testsafe/internal/config"
	"github.com/saulo-duarte/testsafe/internal/history"
	"github.com/saulo-duarte/testsafe/internal/quiz"
	"github.com/saulo-duarte/testsafe/internal/session"
	"github.com/saulo-duarte/testsafe/internal/web"
)

type Container struct {
	Bank          *bank.Bank
	QuizContainer *quiz.QuizContainer
	WebContainer  *web.WebContainer
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	auth.Init()

	b, err := bank.Open(ctx, cfg.BankPath, cfg.BankSheet)
	if err != nil {
		return nil, fmt.Errorf("carregando o banco de perguntas: %w", err)
	}

	sessions := session.NewMemoryStore(cfg.SessionTTL)
	hist := history.NewCSVStore(cfg.HistoryPath)

	quizContainer := quiz.NewQuizContainer(b, sessions, hist, cfg.Shuffle)
	webContainer := web.NewWebContainer(quizContainer.Service, cfg.SessionTTL)

	return &Container{
		Bank:          b,
		QuizContainer: quizContainer,
		WebContainer:  webContainer,
	}, nil
}
