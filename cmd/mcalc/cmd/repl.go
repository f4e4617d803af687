package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/mCALC/foundation/calc"
	mclog "github.com/msto63/mCALC/foundation/core/log"
	"github.com/msto63/mCALC/internal/tui/repl"
)

var replTree bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Startet den interaktiven Rechner",
	Long: `Startet den interaktiven Rechner im Terminal.

Bedienung:
  Enter     - Ausdruck auswerten
  ↑/↓       - Eingabe-Historie
  Ctrl+T    - Baumdarstellung ein/aus
  Ctrl+L    - Verlauf leeren
  Ctrl+C    - Beenden`,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&replTree, "tree", false, "Baumdarstellung von Anfang an zeigen")
}

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// log output would corrupt the alt screen
	engine := calc.New(calc.Options{
		Logger:         mclog.NewDiscard(),
		MaxInputLength: cfg.Engine.MaxInputLength,
	})

	history, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	return repl.Run(repl.Config{
		Engine:   engine,
		History:  history,
		ShowTree: replTree,
	})
}
