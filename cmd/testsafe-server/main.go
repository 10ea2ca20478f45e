package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/saulo-duarte/testsafe/internal/config"
	"github.com/saulo-duarte/testsafe/internal/container"
	"github.com/saulo-duarte/testsafe/internal/router"
)

func main() {
	godotenv.Load()
	config.Init()

	cfg := config.Load()

	flagAddr := pflag.String("addr", cfg.Addr, "dirección HTTP de escucha")
	flagBank := pflag.String("bank", cfg.BankPath, "fichero del banco de preguntas (.xlsx o .csv)")
	flagSheet := pflag.String("sheet", cfg.BankSheet, "hoja del banco xlsx")
	flagHistory := pflag.String("history", cfg.HistoryPath, "fichero CSV del historial")
	flagNoShuffle := pflag.Bool("no-shuffle", !cfg.Shuffle, "presenta las preguntas en el orden del banco")
	pflag.Parse()

	cfg.Addr = *flagAddr
	cfg.BankPath = *flagBank
	cfg.BankSheet = *flagSheet
	cfg.HistoryPath = *flagHistory
	cfg.Shuffle = !*flagNoShuffle

	log := config.Logger()

	c, err := container.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("não foi possível iniciar: %v", err)
	}

	handler := router.New(router.RouterConfig{
		QuizHandler: c.QuizContainer.Handler,
		WebHandler:  c.WebContainer.Handler,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Infof("testsafe escutando em %s (banco: %s, %d perguntas)", cfg.Addr, c.Bank.Source, c.Bank.Len())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("servidor encerrou com erro: %v", err)
	}
}
