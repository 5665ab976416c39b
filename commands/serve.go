package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/artified/mosaic/internal/httpserver"
	"github.com/artified/mosaic/internal/util"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Publish generated timeline artifacts over HTTP",
	Long: `serve exposes a read-only JSON API over the artifact output directory:

  GET /api/health             service health
  GET /api/timelines          available timeline dates
  GET /api/timelines/{date}   one day's timeline artifact`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8787", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := runSetup(cmd)
	if err != nil {
		return err
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("no artifact directory configured; pass --output-dir or set output_dir in mosaic.yaml")
	}

	server := httpserver.NewServer(serveAddr, cfg.OutputDir)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		util.LogInfof("Received %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
