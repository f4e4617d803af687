package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	mcerror "github.com/msto63/mCALC/foundation/core/error"
	"github.com/msto63/mCALC/internal/history/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Verlauf der Auswertungen",
	Long: `Zeigt oder leert den gespeicherten Verlauf.

Unterbefehle:
  list   - Letzte Auswertungen anzeigen
  clear  - Verlauf löschen`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Zeigt die letzten Auswertungen",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Löscht den Verlauf",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Anzahl der Einträge (default: history.limit)")
}

// requireHistory opens the history store or fails when history is disabled
func requireHistory() (store.Store, int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, 0, err
	}
	history, err := openHistory(cfg)
	if err != nil {
		return nil, 0, err
	}
	if history == nil {
		return nil, 0, mcerror.New("history is disabled (history.enabled = false)").
			WithCode(mcerror.CodeServiceUnavailable)
	}
	return history, cfg.History.Limit, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	history, limit, err := requireHistory()
	if err != nil {
		return err
	}
	defer history.Close()

	if historyLimit > 0 {
		limit = historyLimit
	}

	entries, err := history.List(context.Background(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "Verlauf ist leer")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Zeit", "Ausdruck", "Ergebnis", "Dauer (ms)"})
	table.SetAutoWrapText(false)
	for _, e := range entries {
		result := e.ResultText()
		if e.Failed() {
			result = "Fehler: " + e.ErrorCode
		}
		table.Append([]string{
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			e.Expression,
			result,
			strconv.FormatFloat(e.DurationMS, 'f', 3, 64),
		})
	}
	table.Render()
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	history, _, err := requireHistory()
	if err != nil {
		return err
	}
	defer history.Close()

	removed, err := history.Clear(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d Einträge gelöscht\n", removed)
	return nil
}
