package quiz

import (
	"time"

	"github.com/saulo-duarte/testsafe/internal/history"
	util "github.com/saulo-duarte/testsafe/internal/utils"
)

type StartOptions struct {
	// Limit caps how many questions the session draws from the bank.
	// Zero or anything above the bank size means the whole bank.
	Limit int
}

// QuestionView is everything the player may see about the current
// question. It never carries the correct indexes.
type QuestionView struct {
	SessionID string   `json:"session_id"`
	Number    int      `json:"number"`
	Position  int      `json:"position"`
	Total     int      `json:"total"`
	Text      string   `json:"text"`
	Options   []string `json:"options"`
	Multiple  bool     `json:"multiple"`
	Score     int      `json:"score"`
	Wrong     int      `json:"wrong"`
}

type AnswerResult struct {
	Correct        bool     `json:"correct"`
	Selected       string   `json:"selected"`
	CorrectOptions []string `json:"correct_options"`
	Position       int      `json:"position"`
	Total          int      `json:"total"`
	Score          int      `json:"score"`
	Wrong          int      `json:"wrong"`
	Finished       bool     `json:"finished"`
}

type Summary struct {
	SessionID    string             `json:"session_id"`
	Score        int                `json:"score"`
	Wrong        int                `json:"wrong"`
	Answered     int                `json:"answered"`
	Total        int                `json:"total"`
	Percent      int                `json:"percent"`
	StartedAt    util.LocalDateTime `json:"started_at"`
	FinishedAt   util.LocalDateTime `json:"finished_at"`
	Duration     time.Duration      `json:"-"`
	HistorySaved bool               `json:"history_saved"`
}

type BankInfo struct {
	Source    string             `json:"source"`
	Sheet     string             `json:"sheet,omitempty"`
	Questions int                `json:"questions"`
	LoadedAt  util.LocalDateTime `json:"loaded_at"`
}

type historyItem struct {
	history.Record
	Percent         int `json:"percent"`
	DurationSeconds int `json:"duration_seconds"`
}

type historyResponse struct {
	Stats   history.Stats `json:"stats"`
	Records []historyItem `json:"records"`
}
