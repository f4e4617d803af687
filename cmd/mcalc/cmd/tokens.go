package cmd

import (
	"context"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	mcparser "github.com/msto63/mCALC/foundation/calc/parser"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <ausdruck...>",
	Short: "Zeigt die Token-Folge eines Ausdrucks",
	Long: `Zerlegt einen Ausdruck in Tokens und gibt sie als Tabelle aus.

Beispiel:
  mcalc tokens "HH + 12"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	_, _, engine, err := setup(true)
	if err != nil {
		return err
	}

	expression := strings.Join(args, " ")
	tokens, err := engine.Tokenize(context.Background(), expression)
	if err != nil {
		reportExpressionError(cmd.ErrOrStderr(), expression, err)
		return errReported
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"#", "Position", "Typ", "Text", "Wert"})
	table.SetAutoWrapText(false)
	for i, tok := range tokens {
		value := ""
		if tok.Type == mcparser.TokenNumber {
			value = strconv.FormatFloat(tok.Number, 'g', -1, 64)
		}
		table.Append([]string{
			strconv.Itoa(i),
			strconv.Itoa(tok.Position),
			tok.Type.String(),
			tok.Text,
			value,
		})
	}
	table.Render()
	return nil
}
