package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/mCALC/internal/server"
	"github.com/msto63/mCALC/pkg/core/version"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Startet den HTTP/WebSocket-Service",
	Long: `Startet den mCALC-Service.

Endpunkte:
  POST   /api/v1/eval      Ausdruck auswerten
  POST   /api/v1/tokens    Token-Folge
  GET    /api/v1/history   Verlauf (?limit=N)
  DELETE /api/v1/history   Verlauf leeren
  GET    /api/v1/eval/ws   WebSocket
  GET    /health           Gesundheitszustand
  GET    /metrics          Prometheus-Metriken

Beispiele:
  mcalc serve                  # Adresse aus der Konfiguration
  mcalc serve --port 9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host (überschreibt server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port (überschreibt server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, engine, err := setup(false)
	if err != nil {
		return err
	}

	history, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if history != nil {
		defer history.Close()
	}

	srvCfg := server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
		Version:      version.Server,
		CacheSize:    cfg.Server.CacheSize,
		HistoryLimit: cfg.History.Limit,
	}
	if serveHost != "" {
		srvCfg.Host = serveHost
	}
	if servePort != 0 {
		srvCfg.Port = servePort
	}

	srv, err := server.New(srvCfg, server.Deps{
		Engine:  engine,
		History: history,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	if err := srv.StartAsync(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "mCALC")
	fmt.Fprintln(out, "=====")
	fmt.Fprintf(out, "Service läuft auf http://%s\n", srv.Address())
	if cfg.Source() != "" {
		fmt.Fprintf(out, "Konfiguration: %s\n", cfg.Source())
	}
	fmt.Fprintln(out, "Beenden mit Ctrl+C")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Fprintln(out, "\nBeende Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(ctx)
}
