package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/msto63/mCALC/foundation/calc"
	mclog "github.com/msto63/mCALC/foundation/core/log"
	"github.com/msto63/mCALC/internal/history/store"
	"github.com/msto63/mCALC/pkg/core/config"
	"github.com/msto63/mCALC/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

// errReported marks an error whose message the command already printed
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "mcalc",
	Short: "mCALC - Arithmetischer Ausdrucksrechner",
	Long: `mCALC wertet arithmetische Ausdrücke mit + - * / aus.

Punkt- vor Strichrechnung, Auswertung von links nach rechts,
Ergebnis als Gleitkommazahl (1/0 ergibt +Inf).

Befehle:
  eval     - Ausdruck auswerten
  tokens   - Token-Folge anzeigen
  parse    - Syntaxbaum anzeigen
  repl     - Interaktiver Rechner
  serve    - HTTP/WebSocket-Service starten
  history  - Verlauf anzeigen oder leeren`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and reports errors on stderr
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Fehler: %v\n", err)
}

// loadConfig loads --config, else MCALC_CONFIG or the default paths
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

// newLogger builds the CLI logger; diagnostics go to stderr. quiet limits
// output to errors unless --verbose is set, since malformed expressions are
// reported by the command itself.
func newLogger(cfg *config.Config, quiet bool) *mclog.Logger {
	logCfg := logging.FromAppConfig(cfg, "mcalc", verbose)
	if quiet && !verbose {
		logCfg.Level = "error"
	}
	return logging.NewLogger(logCfg)
}

func newEngine(cfg *config.Config, logger *mclog.Logger) *calc.Engine {
	return calc.New(calc.Options{
		Logger:         logger,
		MaxInputLength: cfg.Engine.MaxInputLength,
	})
}

// openHistory opens the configured store, or returns nil when history is
// disabled
func openHistory(cfg *config.Config) (store.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	return store.New(store.Config{
		Driver: cfg.History.Driver,
		Path:   cfg.History.Path,
	})
}

// setup loads configuration and builds logger and engine
func setup(quiet bool) (*config.Config, *mclog.Logger, *calc.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg, quiet)
	return cfg, logger, newEngine(cfg, logger), nil
}
