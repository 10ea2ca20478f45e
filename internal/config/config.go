package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultAddr        = ":8080"
	defaultBankPath    = "preguntas.xlsx"
	defaultHistoryPath = "historial.csv"
	defaultSessionTTL  = 2 * time.Hour
)

type Config struct {
	// Addr is the HTTP listen address of the web server.
	Addr string
	// BankPath points at the question bank, either .xlsx or .csv.
	BankPath string
	// BankSheet selects the worksheet inside an xlsx bank. Empty means
	// the first sheet.
	BankSheet string
	// HistoryPath is the append-only CSV of finished sessions.
	HistoryPath string
	// SessionTTL is how long an idle session survives before the store
	// drops it.
	SessionTTL time.Duration
	// Shuffle controls whether new sessions draw questions in random
	// order.
	Shuffle bool
}

func Load() *Config {
	return &Config{
		Addr:        getEnv("QUIZ_ADDR", defaultAddr),
		BankPath:    getEnv("QUIZ_BANK", defaultBankPath),
		BankSheet:   os.Getenv("QUIZ_SHEET"),
		HistoryPath: getEnv("QUIZ_HISTORY", defaultHistoryPath),
		SessionTTL:  getEnvDuration("QUIZ_SESSION_TTL", defaultSessionTTL),
		Shuffle:     getEnvBool("QUIZ_SHUFFLE", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
