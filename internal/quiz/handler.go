package quiz

import (
	"net/http"
	"strconv"

	"github.com/saulo-duarte/testsafe/internal/config"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetBank(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.BankInfo())
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			log.Warnf("Parâmetro limit inválido: %q", raw)
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, stats, err := h.service.History(r.Context(), limit)
	if err != nil {
		log.WithError(err).Error("Erro ao buscar o histórico")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	items := make([]historyItem, 0, len(records))
	for _, rec := range records {
		items = append(items, historyItem{
			Record:          rec,
			Percent:         rec.Percent(),
			DurationSeconds: int(rec.Duration().Seconds()),
		})
	}

	config.JSON(w, http.StatusOK, historyResponse{
		Stats:   stats,
		Records: items,
	})
}
