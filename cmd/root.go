package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/mj1618/uibridge/internal/config"
	"github.com/mj1618/uibridge/internal/logging"
	"github.com/mj1618/uibridge/internal/output"
	"github.com/mj1618/uibridge/internal/platform"
	_ "github.com/mj1618/uibridge/internal/platform/sim"
	"github.com/mj1618/uibridge/internal/version"
	"github.com/mj1618/uibridge/pkg/bridge"
	"github.com/mj1618/uibridge/pkg/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultConfigFile is read when --config is not given, if it exists.
const defaultConfigFile = "uibridge.yaml"

var rootCmd = &cobra.Command{
	Use:   "uibridge",
	Short: "Drive a running UI tree over a WebDriver-style protocol",
	Long: `uibridge runs an automation server next to a UI tree. Test clients locate
elements, read their state and synthesize taps and flicks over HTTP or MCP;
every command runs on the UI thread.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ./"+defaultConfigFile+" if present)")
	flags.String("host", "", "UI host: "+strings.Join(platform.Names(), ", "))
	flags.String("layout", "", "Layout file for the simulated host")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Bool("dev-log", false, "Human-readable console logs")
	flags.String("format", "yaml", "Output format: yaml, json")
}

// loadConfig reads the config file and applies the flags that were set on
// the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	optional := path == ""
	if optional {
		path = defaultConfigFile
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("layout") {
		cfg.Layout, _ = flags.GetString("layout")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("dev-log") {
		cfg.DevLog, _ = flags.GetBool("dev-log")
	}
	if f := flags.Lookup("port"); f != nil && f.Changed {
		cfg.Port, _ = flags.GetInt("port")
	}
	return cfg, cfg.Validate()
}

func outputFormat(cmd *cobra.Command) (output.Format, error) {
	s, _ := cmd.Flags().GetString("format")
	return output.ParseFormat(s)
}

// newBridge builds the logger, host and bridge described by cfg.
func newBridge(cfg config.Config) (*bridge.Bridge, *zap.Logger, error) {
	log, err := logging.New(cfg.LogLevel, cfg.DevLog)
	if err != nil {
		return nil, nil, err
	}
	types := ui.NewTypeSet()
	host, err := platform.NewHost(cfg.Host, platform.Options{Layout: cfg.Layout, Types: types})
	if err != nil {
		return nil, nil, err
	}
	b, err := bridge.New(host, bridge.Options{
		Port:            cfg.Port,
		Types:           types,
		ImplicitWait:    cfg.ImplicitWait(),
		PollInterval:    cfg.PollInterval(),
		ScreenshotScale: cfg.ScreenshotScale,
		Logger:          log,
	})
	if err != nil {
		return nil, nil, err
	}
	return b, log, nil
}
