package history

import (
	"time"

	util "github.com/saulo-duarte/testsafe/internal/utils"
)

// Record is one finished session as persisted in the history file.
type Record struct {
	StartedAt  util.LocalDateTime `json:"started_at"`
	FinishedAt util.LocalDateTime `json:"finished_at"`
	Score      int                `json:"score"`
	Answered   int                `json:"answered"`
	Total      int                `json:"total"`
}

func (r Record) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return r.Score * 100 / r.Total
}

func (r Record) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt.Time)
}

type Stats struct {
	Sessions       int `json:"sessions"`
	BestPercent    int `json:"best_percent"`
	AveragePercent int `json:"average_percent"`
}

func Summarize(records []Record) Stats {
	st := Stats{Sessions: len(records)}
	if len(records) == 0 {
		return st
	}
	sum := 0
	for _, r := range records {
		p := r.Percent()
		sum += p
		if p > st.BestPercent {
			st.BestPercent = p
		}
	}
	st.AveragePercent = sum / len(records)
	return st
}
