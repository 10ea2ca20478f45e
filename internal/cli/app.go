package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/saulo-duarte/testsafe/internal/quiz"
)

type Options struct {
	// Limit caps the number of questions drawn for the run. Zero means
	// the whole bank.
	Limit int
}

// Run drives one complete quiz session over in/out. Reading and writing
// through io interfaces keeps the loop testable; the binaries pass
// os.Stdin and os.Stdout.
func Run(ctx context.Context, service quiz.QuizService, opts Options, in io.Reader, out io.Writer) error {
	sess, err := service.Start(ctx, quiz.StartOptions{Limit: opts.Limit})
	if err != nil {
		return err
	}

	info := service.BankInfo()
	fmt.Fprintf(out, "TestSafe · banco %s (%d preguntas)\n", info.Source, info.Questions)
	fmt.Fprintln(out, "Responde con la letra de la opción, o escribe «fin» para terminar.")

	reader := bufio.NewReader(in)

	for {
		view, err := service.Question(ctx, sess.ID)
		if errors.Is(err, quiz.ErrSessionFinished) {
			break
		}
		if err != nil {
			return err
		}

		printQuestion(out, view)

		option, quit, err := readAnswer(reader, out, len(view.Options))
		if err != nil {
			return err
		}
		if quit {
			break
		}

		result, err := service.Answer(ctx, sess.ID, view.Number, option)
		if err != nil {
			return err
		}
		printVerdict(out, result)

		if result.Finished {
			break
		}
	}

	sum, err := service.Finish(ctx, sess.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nResultado: %d de %d (%d%%), %d fallos\n", sum.Score, sum.Total, sum.Percent, sum.Wrong)
	if !sum.HistorySaved {
		color.New(color.FgYellow).Fprintln(out, "Aviso: no se pudo guardar el historial de esta sesión.")
	}
	return nil
}

func printQuestion(out io.Writer, view *quiz.QuestionView) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Pregunta %d de %d · Aciertos: %d · Fallos: %d\n", view.Position, view.Total, view.Score, view.Wrong)
	fmt.Fprintln(out, view.Text)
	if view.Multiple {
		fmt.Fprintln(out, "(hay varias respuestas válidas; cualquiera de ellas cuenta)")
	}
	for i, option := range view.Options {
		fmt.Fprintf(out, "  %c) %s\n", 'A'+i, option)
	}
}

func printVerdict(out io.Writer, result *quiz.AnswerResult) {
	if result.Correct {
		color.New(color.FgGreen).Fprintln(out, "¡Correcto!")
		return
	}
	color.New(color.FgRed).Fprintln(out, "Incorrecto.")
	fmt.Fprintf(out, "Respuesta correcta: %s\n", strings.Join(result.CorrectOptions, "; "))
}

// readAnswer keeps prompting until it reads a valid letter. EOF and the
// word "fin" both end the session early.
func readAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (int, bool, error) {
	maxLetter := byte('A' + optionCount - 1)

	for {
		fmt.Fprintf(out, "> ")
		line, err := reader.ReadString('\n')
		if err == io.EOF && strings.TrimSpace(line) == "" {
			return -1, true, nil
		}
		if err != nil && err != io.EOF {
			return -1, false, err
		}

		answer := strings.ToUpper(strings.TrimSpace(line))
		if answer == "FIN" {
			return -1, true, nil
		}
		if len(answer) == 1 {
			letter := answer[0]
			if letter >= 'A' && letter <= maxLetter {
				return int(letter - 'A'), false, nil
			}
		}

		fmt.Fprintf(out, "Entrada no válida. Escribe una letra A-%c o «fin».\n", maxLetter)
		if err == io.EOF {
			return -1, true, nil
		}
	}
}
