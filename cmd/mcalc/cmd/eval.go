package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/msto63/mCALC/foundation/calc"
	mcerror "github.com/msto63/mCALC/foundation/core/error"
	"github.com/msto63/mCALC/internal/history/store"
)

var (
	evalTree      bool
	evalNoHistory bool
)

var evalCmd = &cobra.Command{
	Use:   "eval <ausdruck...>",
	Short: "Wertet einen Ausdruck aus",
	Long: `Wertet einen arithmetischen Ausdruck aus und gibt das Ergebnis aus.

Mehrere Argumente werden mit Leerzeichen verbunden.

Beispiele:
  mcalc eval "2 + 3 * 4"     # 14
  mcalc eval 10-3-2          # 5
  mcalc eval --tree 2*3+4    # 10 und ((2 * 3) + 4)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().BoolVar(&evalTree, "tree", false, "Klammerdarstellung des Syntaxbaums ausgeben")
	evalCmd.Flags().BoolVar(&evalNoHistory, "no-history", false, "Nicht im Verlauf speichern")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, logger, engine, err := setup(true)
	if err != nil {
		return err
	}

	expression := strings.Join(args, " ")
	ctx := context.Background()

	res, evalErr := engine.Evaluate(ctx, expression)

	if !evalNoHistory {
		history, err := openHistory(cfg)
		if err != nil {
			logger.ErrorWithErr("History unavailable", err)
		} else if history != nil {
			defer history.Close()
			if err := history.Record(ctx, historyEntry(expression, res, evalErr)); err != nil {
				logger.ErrorWithErr("Failed to record history entry", err)
			}
		}
	}

	if evalErr != nil {
		reportExpressionError(cmd.ErrOrStderr(), expression, evalErr)
		return errReported
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, res.ValueText())
	if evalTree {
		fmt.Fprintln(out, res.Infix())
	}
	return nil
}

// historyEntry converts an evaluation outcome into a history entry
func historyEntry(expression string, res *calc.Result, err error) *store.Entry {
	entry := store.NewEntry(expression)
	if err != nil {
		entry.ErrorCode = string(mcerror.GetCode(err))
		entry.ErrorMessage = err.Error()
		return entry
	}
	entry.Result = res.Value
	entry.Tree = res.Infix()
	entry.DurationMS = float64(res.Duration.Microseconds()) / 1000
	return entry
}

// reportExpressionError prints the error and, when it has a position, the
// expression with a caret under the offending character
func reportExpressionError(w io.Writer, expression string, err error) {
	printError(w, err)

	pos, ok := calc.ErrorPosition(err)
	if !ok {
		return
	}
	runes := []rune(expression)
	if pos > len(runes) {
		return
	}
	fmt.Fprintf(w, "  %s\n  %s^\n", expression, strings.Repeat(" ", runewidth.StringWidth(string(runes[:pos]))))
}
