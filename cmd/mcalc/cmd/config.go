package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Konfiguration anzeigen",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Zeigt die wirksame Konfiguration",
	Long: `Zeigt die wirksame Konfiguration nach Defaults, Datei und
MCALC_*-Umgebungsvariablen als TOML oder YAML.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configShowCmd.Flags().StringVarP(&configFormat, "format", "f", "toml", "Ausgabeformat (toml, yaml)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	source := cfg.Source()
	if source == "" {
		source = "Defaults"
	}
	fmt.Fprintf(out, "# Quelle: %s\n", source)
	return cfg.Encode(out, configFormat)
}
