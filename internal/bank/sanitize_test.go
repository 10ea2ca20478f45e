package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAnswers(t *testing.T) {
	assert.Equal(t, []string{"Una"}, SplitAnswers("Una"))
	assert.Equal(t, []string{"Una", "Otra"}, SplitAnswers("Una; Otra"))
	assert.Equal(t, []string{"Una", "Otra"}, SplitAnswers(" Una ;; Otra ; "))
	assert.Nil(t, SplitAnswers(""))
	assert.Nil(t, SplitAnswers(" ; "))
}

func TestSanitizeRow_AlreadyClean(t *testing.T) {
	options, answers := SanitizeRow(
		"Entregar valor de forma continua\nPlanificar todo por adelantado\nEvitar el feedback",
		"Entregar valor de forma continua",
	)

	require.Len(t, options, 3)
	assert.Equal(t, "Entregar valor de forma continua", options[0])
	require.Len(t, answers, 1)
	assert.Equal(t, "Entregar valor de forma continua", answers[0])
}

func TestSanitizeRow_GluedSentences(t *testing.T) {
	// three options squeezed into a single cell line
	options, answers := SanitizeRow(
		"La visión define la solución. El backlog ordena el trabajo. Los objetivos fijan el compromiso.",
		"El backlog ordena el trabajo.",
	)

	require.Equal(t, []string{
		"La visión define la solución.",
		"El backlog ordena el trabajo.",
		"Los objetivos fijan el compromiso.",
	}, options)
	require.Len(t, answers, 1)
	assert.Equal(t, Normalize(answers[0]), Normalize(options[1]))
}

func TestSanitizeRow_GluedLineAmongCleanLines(t *testing.T) {
	options, _ := SanitizeRow(
		"Primera opción completa.\nSegunda pegada. Tercera pegada también.",
		"Primera opción completa.",
	)

	assert.Equal(t, []string{
		"Primera opción completa.",
		"Segunda pegada.",
		"Tercera pegada también.",
	}, options)
}

func TestSanitizeRow_WordPerLine(t *testing.T) {
	// word-per-line cells regroup until the answer matches an option
	options, answers := SanitizeRow(
		"Presupuestos\nLean\nFlujo de valor\nTren de lanzamiento",
		"Presupuestos Lean",
	)

	require.Len(t, answers, 1)
	assert.Contains(t, options, "Presupuestos Lean")
	assert.Contains(t, options, "Flujo de valor")
	assert.Contains(t, options, "Tren de lanzamiento")
	assert.Len(t, options, 3)
}

func TestSanitizeRow_RegroupCompactsDashes(t *testing.T) {
	options, _ := SanitizeRow(
		"Lean\n-\nAgile\nCascada pura",
		"Lean-Agile",
	)

	assert.Contains(t, options, "Lean-Agile")
	assert.Contains(t, options, "Cascada pura")
}

func TestSanitizeRow_NoRegroupOverSentences(t *testing.T) {
	// real sentences never get merged, even when the answer is missing
	opts := "El equipo entrega valor en cada iteración.\nLa arquitectura emerge junto al código."
	options, answers := SanitizeRow(opts, "Una respuesta que no está")

	assert.Contains(t, options, "El equipo entrega valor en cada iteración.")
	assert.Contains(t, options, "La arquitectura emerge junto al código.")
	// the missing answer was appended as a new option instead
	assert.Contains(t, options, "Una respuesta que no está")
	assert.Equal(t, "Una respuesta que no está", answers[0])
}

func TestSanitizeRow_AnswerRemappedByContainment(t *testing.T) {
	options, answers := SanitizeRow(
		"Entrega continua\nIntegración continua",
		"La entrega continua",
	)

	require.Len(t, answers, 1)
	assert.Equal(t, "Entrega continua", answers[0])
	assert.Len(t, options, 2)
}

func TestSanitizeRow_MultiAnswer(t *testing.T) {
	options, answers := SanitizeRow(
		"Visión\nHoja de ruta\nPresupuesto\nBacklog",
		"Visión; Backlog",
	)

	require.Len(t, answers, 2)
	assert.Equal(t, "Visión", answers[0])
	assert.Equal(t, "Backlog", answers[1])
	assert.Len(t, options, 4)
}

func TestSanitizeRow_Empty(t *testing.T) {
	options, answers := SanitizeRow("", "")
	assert.Empty(t, options)
	assert.Empty(t, answers)
}

func TestCapitalSplit_Fallback(t *testing.T) {
	// no punctuation at all: cut right before space-separated capitals
	parts := capitalSplit("Define the enterprise strategy Establish lean budgets Align strategy and execution")

	require.Equal(t, []string{
		"Define the enterprise strategy",
		"Establish lean budgets",
		"Align strategy and execution",
	}, parts)
}

func TestCapitalSplit_SingleSegment(t *testing.T) {
	parts := capitalSplit("Only one segment here")
	assert.Equal(t, []string{"Only one segment here"}, parts)
}

func TestExplodeOptions_CapitalFallback(t *testing.T) {
	options := explodeOptions("Define the strategy Establish budgets Align execution")
	assert.Len(t, options, 3)
}

func TestIsSentence(t *testing.T) {
	assert.True(t, isSentence("Termina con punto."))
	assert.True(t, isSentence("cuatro palabras ya bastan"))
	assert.True(t, isSentence("una línea suficientemente larga"))
	assert.False(t, isSentence("Presupuestos"))
	assert.False(t, isSentence(""))
}

func TestMostlySentences(t *testing.T) {
	assert.True(t, mostlySentences([]string{
		"El equipo entrega valor en cada iteración.",
		"Corto",
	}))
	assert.False(t, mostlySentences([]string{"Uno", "Dos", "Tres"}))
	assert.False(t, mostlySentences(nil))
}
