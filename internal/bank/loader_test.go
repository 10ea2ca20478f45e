package bank

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func TestLoad_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banco.csv")
	writeFile(t, path, "Nº;Pregunta;Opciones;Respuesta Correcta\n"+
		"1;¿Qué es un ART?;\"Un tren de lanzamiento\nUn comité\nUn sprint\";Un tren de lanzamiento\n")

	b, err := Load(context.Background(), path, "")
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	q := b.Questions[0]
	assert.Equal(t, 1, q.Number)
	assert.Equal(t, "¿Qué es un ART?", q.Text)
	assert.Equal(t, []string{"Un tren de lanzamiento", "Un comité", "Un sprint"}, q.Options)
	assert.Equal(t, []int{0}, q.Correct)
	assert.True(t, q.IsCorrect(0))
	assert.False(t, q.IsCorrect(1))
}

func TestLoad_CSVCommaDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banco.csv")
	writeFile(t, path, "Pregunta,Opciones,Respuesta Correcta\n"+
		`"¿Dos y dos?","Cuatro`+"\n"+`Cinco","Cuatro"`+"\n")

	b, err := Load(context.Background(), path, "")
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	assert.Equal(t, []string{"Cuatro", "Cinco"}, b.Questions[0].Options)
}

func TestLoad_CSVMultiAnswer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banco.csv")
	writeFile(t, path, "Pregunta;Opciones;Respuesta Correcta\n"+
		"Elige dos;\"Visión\nBacklog\nPresupuesto\";\"Visión; Backlog\"\n")

	b, err := Load(context.Background(), path, "")
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	q := b.Questions[0]
	assert.Equal(t, []int{0, 1}, q.Correct)
	assert.Equal(t, []string{"Visión", "Backlog"}, q.CorrectOptions())
}

func TestLoad_MissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banco.csv")
	writeFile(t, path, "Pregunta;Opciones\nAlgo;A\nB\n")

	_, err := Load(context.Background(), path, "")

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, []string{"Respuesta Correcta"}, formatErr.Missing)
}

func TestLoad_SkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banco.csv")
	writeFile(t, path, "Pregunta;Opciones;Respuesta Correcta\n"+
		";\"A\nB\";A\n"+ // no question text
		"Única opción;Sola;Sola\n"+ // fewer than two options
		"Sin respuesta;\"A\nB\";\n"+ // no answer at all
		"Válida;\"Sí\nNo\";Sí\n")

	b, err := Load(context.Background(), path, "")
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	assert.Equal(t, "Válida", b.Questions[0].Text)
}

func TestLoad_NoUsableRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banco.csv")
	writeFile(t, path, "Pregunta;Opciones;Respuesta Correcta\n;;\n")

	_, err := Load(context.Background(), path, "")
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banco.txt")
	writeFile(t, path, "da igual")

	_, err := Load(context.Background(), path, "")

	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestLoad_MissingFileIsNotFormatError(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "no-existe.csv"), "")

	require.Error(t, err)
	var formatErr *FormatError
	assert.False(t, errors.As(err, &formatErr))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banco.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Nº", "Pregunta", "Opciones", "Respuesta Correcta", "Veces Realizada", "Errores"},
		{3, "¿Qué pilar no es de SAFe?", "Transparencia\nJerarquía\nFlujo", "Jerarquía", 7, 2},
	})

	b, err := Load(context.Background(), path, "")
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	q := b.Questions[0]
	assert.Equal(t, 3, q.Number)
	assert.Equal(t, 7, q.TimesAsked)
	assert.Equal(t, 2, q.Failures)
	assert.Equal(t, []int{1}, q.Correct)
}

func TestEnsureClean_WritesCleanAndBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banco.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Nº", "Pregunta", "Opciones", "Respuesta Correcta"},
		{1, "¿Glued?", "Primera frase pegada. Segunda frase pegada. Tercera frase pegada.", "Segunda frase pegada."},
	})

	cleanPath, err := EnsureClean(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "banco_CLEAN.xlsx"), cleanPath)

	assert.FileExists(t, cleanPath)
	assert.FileExists(t, filepath.Join(dir, "banco_backup.xlsx"))

	b, err := Load(context.Background(), cleanPath, "")
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	assert.Len(t, b.Questions[0].Options, 3)
	assert.Equal(t, []int{1}, b.Questions[0].Correct)
}

func TestEnsureClean_ReusesFreshOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banco.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Pregunta", "Opciones", "Respuesta Correcta"},
		{"¿Simple?", "Sí\nNo", "Sí"},
	})

	cleanPath, err := EnsureClean(context.Background(), path, "")
	require.NoError(t, err)

	// age the source so the clean copy stays newer
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	before, err := os.Stat(cleanPath)
	require.NoError(t, err)

	again, err := EnsureClean(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, cleanPath, again)

	after, err := os.Stat(cleanPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime(), "a fresh clean file must not be rewritten")
}

func TestEnsureClean_RewritesWhenSourceChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banco.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Pregunta", "Opciones", "Respuesta Correcta"},
		{"¿Simple?", "Sí\nNo", "Sí"},
	})

	cleanPath, err := EnsureClean(context.Background(), path, "")
	require.NoError(t, err)

	// make the clean copy look stale
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(cleanPath, old, old))

	writeWorkbook(t, path, [][]any{
		{"Pregunta", "Opciones", "Respuesta Correcta"},
		{"¿Simple?", "Sí\nNo", "Sí"},
		{"¿Otra?", "Uno\nDos", "Dos"},
	})

	_, err = EnsureClean(context.Background(), path, "")
	require.NoError(t, err)

	b, err := Load(context.Background(), cleanPath, "")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
}

func TestEnsureClean_AddsMetricColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banco.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Pregunta", "Opciones", "Respuesta Correcta"},
		{"¿Simple?", "Sí\nNo", "Sí"},
	})

	cleanPath, err := EnsureClean(context.Background(), path, "")
	require.NoError(t, err)

	f, err := excelize.OpenFile(cleanPath)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Contains(t, rows[0], "Veces Realizada")
	assert.Contains(t, rows[0], "Errores")
}

func TestOpen_CSVDoesNotCreateCleanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banco.csv")
	writeFile(t, path, "Pregunta;Opciones;Respuesta Correcta\n¿Simple?;\"Sí\nNo\";Sí\n")

	b, err := Open(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpen_WorkbookLoadsCleanCopy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banco.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Pregunta", "Opciones", "Respuesta Correcta"},
		{"¿Simple?", "Sí\nNo", "Sí"},
	})

	b, err := Open(context.Background(), path, "")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, filepath.Join(dir, "banco_CLEAN.xlsx"), b.Source)
}
