package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/uibridge/internal/config"
	"github.com/mj1618/uibridge/internal/locator"
	"github.com/mj1618/uibridge/internal/model"
	"github.com/mj1618/uibridge/internal/output"
	"github.com/mj1618/uibridge/internal/platform"
	"github.com/mj1618/uibridge/internal/snapshot"
	"github.com/mj1618/uibridge/pkg/ui"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [file]",
	Short: "Print the view tree of a layout as the bridge sees it",
	Long: `Load a layout into the simulated host and print its roots. By default only
views visible in the window are listed, which is what element searches match.

Examples:
  uibridge layout
  uibridge layout login.yaml --all --format json
  uibridge layout login.yaml --screenshot login.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().Bool("all", false, "Include views that are not visible")
	layoutCmd.Flags().Bool("flat", false, "List views with a path breadcrumb instead of nesting")
	layoutCmd.Flags().String("screenshot", "", "Also write a wireframe PNG of the active root to this file")
}

// LayoutRoot is one attached root in layout output.
type LayoutRoot struct {
	Active bool       `yaml:"active,omitempty" json:"active,omitempty"`
	Screen bool       `yaml:"screen"           json:"screen"`
	View   model.Node `yaml:"view"             json:"view"`
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Layout = args[0]
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")
	flat, _ := cmd.Flags().GetBool("flat")
	shot, _ := cmd.Flags().GetString("screenshot")

	host, err := platform.NewHost(cfg.Host, platform.Options{Layout: cfg.Layout})
	if err != nil {
		return err
	}
	roots, err := describeRoots(host, all)
	if err != nil {
		return err
	}
	if shot != "" {
		if err := writeScreenshot(host, cfg, shot); err != nil {
			return err
		}
	}
	if flat {
		nodes := make([]model.Node, len(roots))
		for i, r := range roots {
			nodes[i] = r.View
		}
		return output.Write(cmd.OutOrStdout(), model.Flatten(nodes), format, true)
	}
	return output.Write(cmd.OutOrStdout(), roots, format, true)
}

// describeRoots lists every root of host. Without all, views outside the
// window or hidden by themselves or an ancestor are left out.
func describeRoots(host ui.Host, all bool) ([]LayoutRoot, error) {
	loc := locator.New(host)
	active, err := loc.Root()
	if err != nil {
		return nil, err
	}
	window := loc.WindowRect()

	var out []LayoutRoot
	for _, r := range host.Roots() {
		node, ok := describeView(r.View, window, all)
		if !ok {
			continue
		}
		out = append(out, LayoutRoot{
			Active: r.View == active.View,
			Screen: r.Screen != nil,
			View:   node,
		})
	}
	return out, nil
}

func describeView(v *ui.View, window ui.Rect, all bool) (model.Node, bool) {
	visible := locator.IsVisible(v, window)
	if !visible && !all {
		return model.Node{}, false
	}
	n := model.Node{
		Type:    v.Type().Name,
		Rect:    model.RectFrom(v.RectInWindow()),
		Visible: visible,
	}
	if v.ID != ui.NoID {
		n.ID = v.ID
	}
	if text, ok := v.Text(); ok {
		n.Text = &text
	}
	for i := 0; i < v.ChildCount(); i++ {
		if c, ok := describeView(v.ChildAt(i), window, all); ok {
			n.Children = append(n.Children, c)
		}
	}
	return n, true
}

func writeScreenshot(host ui.Host, cfg config.Config, path string) error {
	loc := locator.New(host)
	root, err := loc.RootView()
	if err != nil {
		return err
	}
	data, err := snapshot.EncodePNG(root, loc.WindowRect(), snapshot.Options{Scale: cfg.ScreenshotScale})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //#nosec G306 -- image output
		return fmt.Errorf("write screenshot: %w", err)
	}
	return nil
}
