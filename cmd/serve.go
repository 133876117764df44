package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP automation server",
	Long: `Start the HTTP automation server on the configured port. Each request is
one command; responses are JSON objects, {"error": message} with status 500
on failure.

Examples:
  uibridge serve
  uibridge serve --port 7200 --layout login.yaml
  uibridge serve --log-level debug --dev-log`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Int("port", 7100, "HTTP port")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	b, log, err := newBridge(cfg)
	if err != nil {
		return fmt.Errorf("failed to create bridge: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Info("serving", zap.String("host", cfg.Host), zap.Int("port", cfg.Port))
	return b.ListenAndServe(ctx)
}
