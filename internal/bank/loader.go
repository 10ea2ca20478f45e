package bank

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/saulo-duarte/testsafe/internal/config"
)

// Open prepares and loads the bank at path. Excel banks go through
// EnsureClean first and the clean copy is what gets loaded. CSV banks
// are sanitized in memory on every load.
func Open(ctx context.Context, path, sheet string) (*Bank, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		cleanPath, err := EnsureClean(ctx, path, sheet)
		if err != nil {
			return nil, err
		}
		return Load(ctx, cleanPath, sheet)
	}
	return Load(ctx, path, sheet)
}

// Load reads a bank file as-is. Rows that cannot become a playable
// question are skipped with a warning; a file where nothing survives is
// ErrNoQuestions.
func Load(ctx context.Context, path, sheet string) (*Bank, error) {
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		rows, sheet, err = readWorkbook(path, sheet)
	case ".csv":
		rows, err = readCSV(path)
		sheet = ""
	default:
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("unsupported bank format %q", ext)}
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &FormatError{Path: path, Reason: "file is empty"}
	}

	questions, err := buildQuestions(ctx, path, rows)
	if err != nil {
		return nil, err
	}

	b := &Bank{
		Source:    path,
		Sheet:     sheet,
		Questions: questions,
		LoadedAt:  time.Now(),
	}
	config.WithContext(ctx).WithFields(logrus.Fields{
		"source":    path,
		"questions": len(questions),
	}).Info("question bank loaded")
	return b, nil
}

func readWorkbook(path, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return nil, "", fmt.Errorf("reading bank file: %w", err)
		}
		return nil, "", &FormatError{Path: path, Reason: fmt.Sprintf("not a valid workbook: %v", err)}
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, "", &FormatError{Path: path, Reason: "workbook has no sheets"}
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, "", &FormatError{Path: path, Reason: fmt.Sprintf("reading sheet %q: %v", sheet, err)}
	}
	return rows, sheet, nil
}

func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bank file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("malformed csv: %v", err)}
	}
	return rows, nil
}

// Exported spreadsheets use ";" as often as ",". The header row decides.
func sniffDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

func buildQuestions(ctx context.Context, path string, rows [][]string) ([]Question, error) {
	log := config.WithContext(ctx)

	idx := indexColumns(rows[0])
	if missing := idx.missing(colQuestion, colOptions, colAnswers); len(missing) > 0 {
		return nil, &FormatError{Path: path, Missing: missing}
	}

	questions := make([]Question, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2

		text := strings.TrimSpace(rowValue(row, idx[colQuestion]))
		optCell := rowValue(row, idx[colOptions])
		ansCell := rowValue(row, idx[colAnswers])

		if text == "" && strings.TrimSpace(optCell) == "" {
			continue
		}
		if text == "" {
			log.Warnf("skipping row %d: empty question text", line)
			continue
		}

		options, answers := SanitizeRow(optCell, ansCell)
		if len(options) < 2 {
			log.Warnf("skipping row %d: needs at least two options", line)
			continue
		}
		if len(answers) == 0 {
			log.Warnf("skipping row %d: no correct answer", line)
			continue
		}
		correct := matchAnswers(options, answers)
		if len(correct) == 0 {
			log.Warnf("skipping row %d: answers do not match any option", line)
			continue
		}

		q := Question{
			Number:  len(questions) + 1,
			Text:    text,
			Options: options,
			Correct: correct,
		}
		if pos, ok := idx[colNumber]; ok {
			q.Number = parseIntCell(rowValue(row, pos), q.Number)
		}
		if pos, ok := idx[colTimes]; ok {
			q.TimesAsked = parseIntCell(rowValue(row, pos), 0)
		}
		if pos, ok := idx[colFailures]; ok {
			q.Failures = parseIntCell(rowValue(row, pos), 0)
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoQuestions, path)
	}
	return questions, nil
}

func matchAnswers(options, answers []string) []int {
	var correct []int
	seen := make(map[int]bool)
	for _, a := range answers {
		an := Normalize(a)
		for i, o := range options {
			if !seen[i] && Normalize(o) == an {
				correct = append(correct, i)
				seen[i] = true
			}
		}
	}
	slices.Sort(correct)
	return correct
}

// Spreadsheets sometimes render integer cells as "316.0".
func parseIntCell(s string, fallback int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return fallback
}
