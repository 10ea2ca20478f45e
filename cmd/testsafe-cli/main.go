package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/saulo-duarte/testsafe/internal/bank"
	"github.com/saulo-duarte/testsafe/internal/cli"
	"github.com/saulo-duarte/testsafe/internal/config"
	"github.com/saulo-duarte/testsafe/internal/history"
	"github.com/saulo-duarte/testsafe/internal/quiz"
	"github.com/saulo-duarte/testsafe/internal/session"
)

func main() {
	godotenv.Load()
	config.Init()

	// keep the prompt clean; the service logs every answer at info level
	config.Logger().SetOutput(os.Stderr)
	if os.Getenv("LOG_LEVEL") == "" {
		config.Logger().SetLevel(logrus.WarnLevel)
	}

	cfg := config.Load()

	flagBank := pflag.String("bank", cfg.BankPath, "fichero del banco de preguntas (.xlsx o .csv)")
	flagSheet := pflag.String("sheet", cfg.BankSheet, "hoja del banco xlsx")
	flagHistory := pflag.String("history", cfg.HistoryPath, "fichero CSV del historial")
	flagCount := pflag.Int("count", 0, "número de preguntas de la sesión (0 = todas)")
	flagNoShuffle := pflag.Bool("no-shuffle", !cfg.Shuffle, "presenta las preguntas en el orden del banco")
	pflag.Parse()

	cfg.BankPath = *flagBank
	cfg.BankSheet = *flagSheet
	cfg.HistoryPath = *flagHistory
	cfg.Shuffle = !*flagNoShuffle

	ctx := context.Background()

	b, err := bank.Open(ctx, cfg.BankPath, cfg.BankSheet)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	service := quiz.NewService(b, session.NewMemoryStore(cfg.SessionTTL), history.NewCSVStore(cfg.HistoryPath), cfg.Shuffle)

	if err := cli.Run(ctx, service, cli.Options{Limit: *flagCount}, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
