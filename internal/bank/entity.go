package bank

import (
	"time"
)

// Question is one row of the bank. Options keep their display order from
// the source file; Correct holds indexes into Options. A question may
// have more than one correct option.
type Question struct {
	Number     int
	Text       string
	Options    []string
	Correct    []int
	TimesAsked int
	Failures   int
}

func (q *Question) IsCorrect(option int) bool {
	for _, c := range q.Correct {
		if c == option {
			return true
		}
	}
	return false
}

// CorrectOptions returns the texts of the correct options, in display order.
func (q *Question) CorrectOptions() []string {
	out := make([]string, 0, len(q.Correct))
	for _, c := range q.Correct {
		if c >= 0 && c < len(q.Options) {
			out = append(out, q.Options[c])
		}
	}
	return out
}

// Bank is an immutable set of questions loaded from a single file.
// Sessions reference questions by index and never mutate them.
type Bank struct {
	Source    string
	Sheet     string
	Questions []Question
	LoadedAt  time.Time
}

func (b *Bank) Len() int {
	return len(b.Questions)
}

func (b *Bank) Question(idx int) (Question, bool) {
	if idx < 0 || idx >= len(b.Questions) {
		return Question{}, false
	}
	return b.Questions[idx], true
}
