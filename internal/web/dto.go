package web

import (
	"github.com/saulo-duarte/testsafe/internal/history"
	"github.com/saulo-duarte/testsafe/internal/quiz"
)

type startPage struct {
	Bank  quiz.BankInfo
	Stats history.Stats
}

type questionPage struct {
	Question *quiz.QuestionView
}

type feedbackPage struct {
	Result *quiz.AnswerResult
}

type resultPage struct {
	Summary *quiz.Summary
	Records []history.Record
}
