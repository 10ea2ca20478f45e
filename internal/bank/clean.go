package bank

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/saulo-duarte/testsafe/internal/config"
)

const (
	colNumber   = "Nº"
	colQuestion = "Pregunta"
	colOptions  = "Opciones"
	colAnswers  = "Respuesta Correcta"
	colTimes    = "Veces Realizada"
	colFailures = "Errores"
)

type columnIndex map[string]int

func indexColumns(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			continue
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

func (ci columnIndex) missing(required ...string) []string {
	var out []string
	for _, col := range required {
		if _, ok := ci[col]; !ok {
			out = append(out, col)
		}
	}
	return out
}

func rowValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// EnsureClean sanitizes an xlsx bank into a sibling *_CLEAN workbook
// and returns its path. The clean file is reused while its mtime is not
// older than the source. Before the first rewrite the untouched source
// is copied once to *_backup.
func EnsureClean(ctx context.Context, path, sheet string) (string, error) {
	log := config.WithContext(ctx)

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	outPath := base + "_CLEAN" + ext
	backupPath := base + "_backup" + ext

	inInfo, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading bank file: %w", err)
	}
	if outInfo, err := os.Stat(outPath); err == nil && !outInfo.ModTime().Before(inInfo.ModTime()) {
		return outPath, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
			return "", fmt.Errorf("reading bank file: %w", err)
		}
		return "", &FormatError{Path: path, Reason: fmt.Sprintf("not a valid workbook: %v", err)}
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return "", &FormatError{Path: path, Reason: "workbook has no sheets"}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return "", &FormatError{Path: path, Reason: "sheet is empty"}
	}

	if _, err := os.Stat(backupPath); errors.Is(err, os.ErrNotExist) {
		if data, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(backupPath, data, 0o644); err != nil {
				log.WithError(err).Warn("could not write bank backup")
			}
		}
	}

	header := append([]string(nil), rows[0]...)
	idx := indexColumns(header)
	if missing := idx.missing(colOptions, colAnswers); len(missing) > 0 {
		return "", &FormatError{Path: path, Missing: missing}
	}
	for _, col := range []string{colTimes, colFailures} {
		if _, ok := idx[col]; !ok {
			idx[col] = len(header)
			header = append(header, col)
		}
	}

	out := excelize.NewFile()
	defer out.Close()
	if sheet != "Sheet1" {
		if err := out.SetSheetName("Sheet1", sheet); err != nil {
			return "", fmt.Errorf("naming sheet: %w", err)
		}
	}

	writeRow := func(rowNum int, values []any) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		return out.SetSheetRow(sheet, cell, &values)
	}

	headerValues := make([]any, len(header))
	for i, h := range header {
		headerValues[i] = h
	}
	if err := writeRow(1, headerValues); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}

	repaired := 0
	for i, row := range rows[1:] {
		values := make([]any, len(header))
		for c := range header {
			values[c] = rowValue(row, c)
		}
		for _, col := range []string{colTimes, colFailures} {
			pos := idx[col]
			if strings.TrimSpace(rowValue(row, pos)) == "" {
				values[pos] = 0
			}
		}

		optCell := rowValue(row, idx[colOptions])
		ansCell := rowValue(row, idx[colAnswers])
		options, answers := SanitizeRow(optCell, ansCell)

		joined := strings.Join(options, "\n")
		if joined != optCell {
			repaired++
		}
		values[idx[colOptions]] = joined
		if !slices.Equal(SplitAnswers(ansCell), answers) {
			values[idx[colAnswers]] = strings.Join(answers, "; ")
		}

		if err := writeRow(i+2, values); err != nil {
			return "", fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := out.SaveAs(outPath); err != nil {
		return "", fmt.Errorf("writing clean workbook: %w", err)
	}

	log.WithFields(logrus.Fields{
		"source":   path,
		"clean":    outPath,
		"rows":     len(rows) - 1,
		"repaired": repaired,
	}).Info("bank sanitized")
	return outPath, nil
}
