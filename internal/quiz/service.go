package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/testsafe/internal/bank"
	"github.com/saulo-duarte/testsafe/internal/config"
	"github.com/saulo-duarte/testsafe/internal/history"
	"github.com/saulo-duarte/testsafe/internal/session"
	util "github.com/saulo-duarte/testsafe/internal/utils"
)

var (
	ErrSessionNotFound  = errors.New("sessão não encontrada")
	ErrSessionExpired   = errors.New("sessão expirada")
	ErrSessionFinished  = errors.New("sessão já finalizada")
	ErrQuestionMismatch = errors.New("a pergunta respondida não é a pergunta atual")
	ErrInvalidOption    = errors.New("opção inválida")
)

type QuizService interface {
	Start(ctx context.Context, opts StartOptions) (*session.Session, error)
	Question(ctx context.Context, sessionID string) (*QuestionView, error)
	Answer(ctx context.Context, sessionID string, questionNumber, option int) (*AnswerResult, error)
	Finish(ctx context.Context, sessionID string) (*Summary, error)
	BankInfo() BankInfo
	History(ctx context.Context, limit int) ([]history.Record, history.Stats, error)
}

type quizService struct {
	bank     *bank.Bank
	sessions session.Repository
	history  history.Store
	shuffle  bool

	// serializes session mutations; a double-submitted form must not
	// record twice
	mu sync.Mutex
}

func NewService(b *bank.Bank, sessions session.Repository, hist history.Store, shuffle bool) QuizService {
	return &quizService{
		bank:     b,
		sessions: sessions,
		history:  hist,
		shuffle:  shuffle,
	}
}

func (s *quizService) Start(ctx context.Context, opts StartOptions) (*session.Session, error) {
	log := config.WithContext(ctx)
	log.Info("Iniciando nova sessão...")

	total := s.bank.Len()
	if total == 0 {
		return nil, bank.ErrNoQuestions
	}
	limit := opts.Limit
	if limit <= 0 || limit > total {
		limit = total
	}

	var order []int
	if s.shuffle {
		order = rand.Perm(total)[:limit]
	} else {
		order = make([]int, limit)
		for i := range order {
			order[i] = i
		}
	}

	sess := session.New(order)
	if err := s.sessions.Save(sess); err != nil {
		log.Errorf("Erro ao salvar sessão: %v", err)
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"perguntas":  limit,
	}).Info("Sessão criada com sucesso")
	return sess, nil
}

func (s *quizService) Question(ctx context.Context, sessionID string) (*QuestionView, error) {
	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx, ok := sess.Current()
	if !ok {
		return nil, ErrSessionFinished
	}
	q, ok := s.bank.Question(idx)
	if !ok {
		return nil, fmt.Errorf("sessão aponta para pergunta %d fora do banco", idx)
	}

	return &QuestionView{
		SessionID: sess.ID,
		Number:    q.Number,
		Position:  sess.Position(),
		Total:     sess.Total(),
		Text:      q.Text,
		Options:   q.Options,
		Multiple:  len(q.Correct) > 1,
		Score:     sess.Correct,
		Wrong:     sess.Wrong,
	}, nil
}

func (s *quizService) Answer(ctx context.Context, sessionID string, questionNumber, option int) (*AnswerResult, error) {
	log := config.WithContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx, ok := sess.Current()
	if !ok {
		return nil, ErrSessionFinished
	}
	q, ok := s.bank.Question(idx)
	if !ok {
		return nil, fmt.Errorf("sessão aponta para pergunta %d fora do banco", idx)
	}

	if q.Number != questionNumber {
		log.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"esperada":   q.Number,
			"recebida":   questionNumber,
		}).Warn("Resposta para pergunta que não é a atual, ignorando")
		return nil, ErrQuestionMismatch
	}
	if option < 0 || option >= len(q.Options) {
		return nil, ErrInvalidOption
	}

	correct := q.IsCorrect(option)
	if err := sess.Record(option, correct); err != nil {
		return nil, ErrSessionFinished
	}
	if err := s.sessions.Save(sess); err != nil {
		log.Errorf("Erro ao salvar sessão: %v", err)
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"session_id": sess.ID,
		"pergunta":   q.Number,
		"correta":    correct,
	}).Info("Resposta registrada")

	result := &AnswerResult{
		Correct:        correct,
		Selected:       q.Options[option],
		CorrectOptions: q.CorrectOptions(),
		Position:       sess.Answered(),
		Total:          sess.Total(),
		Score:          sess.Correct,
		Wrong:          sess.Wrong,
		Finished:       sess.Exhausted(),
	}

	// answering the last question closes the session right away, so the
	// history row is written even if the result page never loads
	if sess.Exhausted() {
		s.finishLocked(ctx, sess)
	}
	return result, nil
}

func (s *quizService) Finish(ctx context.Context, sessionID string) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.finishLocked(ctx, sess), nil
}

// finishLocked closes the session and appends exactly one history row
// on the transition. Later calls just rebuild the summary. A history
// write failure is logged and surfaced through HistorySaved; the player
// still gets the result.
func (s *quizService) finishLocked(ctx context.Context, sess *session.Session) *Summary {
	log := config.WithContext(ctx)

	if sess.Finish() {
		rec := history.Record{
			StartedAt:  util.Local(sess.StartedAt),
			FinishedAt: util.Local(*sess.FinishedAt),
			Score:      sess.Correct,
			Answered:   sess.Answered(),
			Total:      sess.Total(),
		}
		if err := s.history.Append(ctx, rec); err != nil {
			log.WithError(err).Warn("Não foi possível gravar o histórico")
		} else {
			sess.HistorySaved = true
		}
		if err := s.sessions.Save(sess); err != nil {
			log.Errorf("Erro ao salvar sessão finalizada: %v", err)
		}

		log.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"pontuacao":  sess.Correct,
			"erros":      sess.Wrong,
			"total":      sess.Total(),
		}).Info("Sessão finalizada")
	}

	return s.summaryOf(sess)
}

func (s *quizService) summaryOf(sess *session.Session) *Summary {
	sum := &Summary{
		SessionID:    sess.ID,
		Score:        sess.Correct,
		Wrong:        sess.Wrong,
		Answered:     sess.Answered(),
		Total:        sess.Total(),
		Percent:      sess.Percent(),
		StartedAt:    util.Local(sess.StartedAt),
		Duration:     sess.Duration(),
		HistorySaved: sess.HistorySaved,
	}
	if sess.FinishedAt != nil {
		sum.FinishedAt = util.Local(*sess.FinishedAt)
	}
	return sum
}

func (s *quizService) BankInfo() BankInfo {
	return BankInfo{
		Source:    s.bank.Source,
		Sheet:     s.bank.Sheet,
		Questions: s.bank.Len(),
		LoadedAt:  util.Local(s.bank.LoadedAt),
	}
}

func (s *quizService) History(ctx context.Context, limit int) ([]history.Record, history.Stats, error) {
	records, err := s.history.Recent(ctx, 0)
	if err != nil {
		config.WithContext(ctx).Errorf("Erro ao ler o histórico: %v", err)
		return nil, history.Stats{}, err
	}
	stats := history.Summarize(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, stats, nil
}

func (s *quizService) getSession(ctx context.Context, id string) (*session.Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	sess, err := s.sessions.Get(id)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return nil, ErrSessionNotFound
	case errors.Is(err, session.ErrExpired):
		config.WithContext(ctx).WithField("session_id", id).Info("Sessão expirada")
		return nil, ErrSessionExpired
	case err != nil:
		return nil, err
	}
	return sess, nil
}
