package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	mcast "github.com/msto63/mCALC/foundation/calc/ast"
	mcerror "github.com/msto63/mCALC/foundation/core/error"
)

var (
	parseFormat string
	parseStats  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <ausdruck...>",
	Short: "Zeigt den Syntaxbaum eines Ausdrucks",
	Long: `Parst einen Ausdruck und gibt den Syntaxbaum aus, ohne ihn auszuwerten.

Formate:
  infix  - vollständig geklammert, z.B. (2 + (3 * 4))
  tree   - eingerückte Baumdarstellung

Mit --stats werden zusätzlich Knotenzahl und Tiefe des Baums ausgegeben.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "infix", "Ausgabeformat (infix, tree)")
	parseCmd.Flags().BoolVar(&parseStats, "stats", false, "Knotenzahl und Tiefe ausgeben")
}

func runParse(cmd *cobra.Command, args []string) error {
	var render func(mcast.Node) string
	switch parseFormat {
	case "infix":
		render = mcast.Infix
	case "tree":
		render = mcast.Tree
	default:
		return mcerror.Newf("unknown format %q (infix, tree)", parseFormat).
			WithCode(mcerror.CodeInvalidInput)
	}

	_, _, engine, err := setup(true)
	if err != nil {
		return err
	}

	expression := strings.Join(args, " ")
	node, err := engine.Parse(context.Background(), expression)
	if err != nil {
		reportExpressionError(cmd.ErrOrStderr(), expression, err)
		return errReported
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, render(node))
	if parseStats {
		fmt.Fprintf(out, "Knoten: %d, Tiefe: %d\n", mcast.CountNodes(node), mcast.Depth(node))
	}
	return nil
}
