package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	ACTIVE   Status = "ACTIVE"
	FINISHED Status = "FINISHED"
)

var AllStatuses = []Status{
	ACTIVE,
	FINISHED,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

var ErrFinished = errors.New("session already finished")

// Answer records one submission. Question is the bank index the answer
// refers to, Option the chosen option index.
type Answer struct {
	Question   int       `json:"question"`
	Option     int       `json:"option"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Session tracks one attempt at the bank. Order holds bank indexes in
// presentation order and Cursor points at the next unanswered one, so
// Correct+Wrong always equals len(Answers) and never exceeds
// len(Order). All mutations go through the methods; callers share one
// instance by pointer and must never copy it.
type Session struct {
	ID         string     `json:"id"`
	Order      []int      `json:"order"`
	Cursor     int        `json:"cursor"`
	Answers    []Answer   `json:"answers"`
	Correct    int        `json:"correct"`
	Wrong      int        `json:"wrong"`
	Status     Status     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	// HistorySaved marks that the finish row reached the history file.
	HistorySaved bool `json:"history_saved"`

	lastSeen time.Time
}

func New(order []int) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Order:     order,
		Status:    ACTIVE,
		StartedAt: now,
		lastSeen:  now,
	}
}

// Current returns the bank index of the next unanswered question.
func (s *Session) Current() (int, bool) {
	if s.Status != ACTIVE || s.Cursor >= len(s.Order) {
		return 0, false
	}
	return s.Order[s.Cursor], true
}

// Record stores the answer for the current question and advances the
// cursor. Each position is answered exactly once.
func (s *Session) Record(option int, correct bool) error {
	if s.Status != ACTIVE {
		return ErrFinished
	}
	if s.Cursor >= len(s.Order) {
		return ErrFinished
	}
	s.Answers = append(s.Answers, Answer{
		Question:   s.Order[s.Cursor],
		Option:     option,
		Correct:    correct,
		AnsweredAt: time.Now(),
	})
	s.Cursor++
	if correct {
		s.Correct++
	} else {
		s.Wrong++
	}
	return nil
}

// Finish closes the session. Calling it again is a no-op; the first
// call reports the transition.
func (s *Session) Finish() bool {
	if s.Status == FINISHED {
		return false
	}
	s.Status = FINISHED
	now := time.Now()
	s.FinishedAt = &now
	return true
}

func (s *Session) Exhausted() bool {
	return s.Cursor >= len(s.Order)
}

func (s *Session) Answered() int {
	return len(s.Answers)
}

func (s *Session) Total() int {
	return len(s.Order)
}

func (s *Session) Position() int {
	return s.Cursor + 1
}

// Percent is the score over the total planned questions, not over the
// answered ones, so abandoning early still lowers it.
func (s *Session) Percent() int {
	if len(s.Order) == 0 {
		return 0
	}
	return s.Correct * 100 / len(s.Order)
}

func (s *Session) Duration() time.Duration {
	if s.FinishedAt != nil {
		return s.FinishedAt.Sub(s.StartedAt)
	}
	return time.Since(s.StartedAt)
}

func (s *Session) touch(now time.Time) {
	s.lastSeen = now
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(s.lastSeen) > ttl
}
