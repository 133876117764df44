package cmd

import (
	"fmt"

	"github.com/mj1618/uibridge/internal/version"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing the automation commands as tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes every automation
command as a tool. Tool calls share the UI thread and command queue of the
bridge.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  uibridge mcp
  uibridge mcp --transport streamable-http --mcp-port 8080`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	mcpCmd.Flags().Int("mcp-port", 8080, "HTTP port for streamable-http transport")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("mcp-port")

	b, log, err := newBridge(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer func() { _ = log.Sync() }()
	defer b.Close()

	return b.ServeMCP(transport, port, version.Version)
}
