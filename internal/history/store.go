package history

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/testsafe/internal/config"
	util "github.com/saulo-duarte/testsafe/internal/utils"
)

var header = []string{"fecha_inicio", "fecha_fin", "puntuacion", "respondidas", "total", "duracion_segundos"}

type Store interface {
	Append(ctx context.Context, rec Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// csvStore appends finished sessions to a CSV file. The file is opened
// in append mode on every write, so rows already on disk are never
// touched. The header goes in only when the file is new or empty.
type csvStore struct {
	mu   sync.Mutex
	path string
}

func NewCSVStore(path string) Store {
	return &csvStore{path: path}
}

func (c *csvStore) Append(ctx context.Context, rec Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
	}

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("inspecting history file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("writing history header: %w", err)
		}
	}
	if err := w.Write(rec.row()); err != nil {
		return fmt.Errorf("writing history record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing history file: %w", err)
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"file":  c.path,
		"score": rec.Score,
		"total": rec.Total,
	}).Info("session appended to history")
	return nil
}

// Recent returns records newest first. limit <= 0 means all of them.
// A history file that does not exist yet is just an empty history.
func (c *csvStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	log := config.WithContext(ctx)
	var records []Record
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == header[0] {
			continue
		}
		rec, err := parseRow(row)
		if err != nil {
			log.Warnf("skipping history row %d: %v", i+1, err)
			continue
		}
		records = append(records, rec)
	}

	slices.Reverse(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r Record) row() []string {
	return []string{
		r.StartedAt.String(),
		r.FinishedAt.String(),
		strconv.Itoa(r.Score),
		strconv.Itoa(r.Answered),
		strconv.Itoa(r.Total),
		strconv.Itoa(int(r.Duration().Seconds())),
	}
}

func parseRow(row []string) (Record, error) {
	if len(row) < 5 {
		return Record{}, fmt.Errorf("expected at least 5 fields, got %d", len(row))
	}
	started, err := util.Parse(row[0])
	if err != nil {
		return Record{}, fmt.Errorf("bad start timestamp %q: %w", row[0], err)
	}
	finished, err := util.Parse(row[1])
	if err != nil {
		return Record{}, fmt.Errorf("bad finish timestamp %q: %w", row[1], err)
	}
	score, err := strconv.Atoi(row[2])
	if err != nil {
		return Record{}, fmt.Errorf("bad score %q: %w", row[2], err)
	}
	answered, err := strconv.Atoi(row[3])
	if err != nil {
		return Record{}, fmt.Errorf("bad answered count %q: %w", row[3], err)
	}
	total, err := strconv.Atoi(row[4])
	if err != nil {
		return Record{}, fmt.Errorf("bad total %q: %w", row[4], err)
	}
	return Record{
		StartedAt:  started,
		FinishedAt: finished,
		Score:      score,
		Answered:   answered,
		Total:      total,
	}, nil
}
