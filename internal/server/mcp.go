package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

// MCPServer exposes the protocol commands as MCP tools. Every tool call is
// turned into a Command and dispatched through the same Router as HTTP
// requests, so tool calls and HTTP commands never overlap.
type MCPServer struct {
	router *Router
	mcp    *mcpserver.MCPServer
}

// NewMCPServer creates an MCP server with all uibridge tools.
func NewMCPServer(r *Router, version string) *MCPServer {
	s := &MCPServer{
		router: r,
		mcp:    mcpserver.NewMCPServer("uibridge", version),
	}
	s.registerTools()
	return s
}

// Serve runs the server over the given transport until it fails.
func (s *MCPServer) Serve(transport string, port int) error {
	switch transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", transport)
	}
}

func elementParam() mcp.ToolOption {
	return mcp.WithString("element", mcp.Description("Element handle returned by find_elements"), mcp.Required())
}

func (s *MCPServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Report whether the bridge is ready to accept commands"),
		),
		s.command("GET", "status"),
	)

	s.mcp.AddTool(
		mcp.NewTool("new_session",
			mcp.WithDescription("Start an automation session and return its id"),
		),
		s.command("POST", "session"),
	)

	s.mcp.AddTool(
		mcp.NewTool("implicit_wait",
			mcp.WithDescription("Set how long find_elements keeps polling for matches"),
			mcp.WithNumber("ms", mcp.Description("Timeout in milliseconds"), mcp.Required()),
		),
		s.command("POST", "timeouts/implicit_wait"),
	)

	s.mcp.AddTool(
		mcp.NewTool("window_rect",
			mcp.WithDescription("Get the rectangle of the application window"),
		),
		s.command("GET", "window/rect"),
	)

	s.mcp.AddTool(
		mcp.NewTool("find_elements",
			mcp.WithDescription("Find visible elements. Returns handles for the other element tools."),
			mcp.WithString("using", mcp.Description("Strategy: 'xpath', 'class name' or 'id'"), mcp.Required()),
			mcp.WithString("value", mcp.Description("Selector, e.g. //Button[@text='OK'], Button or com.example:id/login"), mcp.Required()),
		),
		s.command("POST", "elements"),
	)

	for _, t := range []struct {
		name, method, action, desc string
	}{
		{"click", "POST", "click", "Tap the center of an element"},
		{"is_displayed", "GET", "displayed", "Check whether an element is visible in the window"},
		{"is_enabled", "GET", "enabled", "Check whether an element is enabled"},
		{"is_selected", "GET", "selected", "Check whether an element is checked or selected"},
		{"get_text", "GET", "text", "Get the text of an element, or null if it has none"},
		{"get_rect", "GET", "rect", "Get the window rectangle of an element"},
	} {
		s.mcp.AddTool(
			mcp.NewTool(t.name, mcp.WithDescription(t.desc), elementParam()),
			s.elementCommand(t.method, t.action),
		)
	}

	s.mcp.AddTool(
		mcp.NewTool("set_value",
			mcp.WithDescription("Replace the text of an editable element with the concatenated values"),
			elementParam(),
			mcp.WithArray("value", mcp.Description("Strings to concatenate"), mcp.Required()),
		),
		s.elementCommand("POST", "value"),
	)

	s.mcp.AddTool(
		mcp.NewTool("flick",
			mcp.WithDescription("Drag from the center of an element by an offset at a given speed"),
			elementParam(),
			mcp.WithNumber("xoffset", mcp.Description("Horizontal distance in pixels"), mcp.Required()),
			mcp.WithNumber("yoffset", mcp.Description("Vertical distance in pixels"), mcp.Required()),
			mcp.WithNumber("speed", mcp.Description("Speed in pixels per second"), mcp.Required()),
		),
		s.command("POST", "touch/flick"),
	)

	s.mcp.AddTool(
		mcp.NewTool("hide_keyboard",
			mcp.WithDescription("Hide the soft keyboard of the current screen"),
		),
		s.command("POST", "appium/device/hide_keyboard"),
	)

	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Render a wireframe PNG of the current screen with every visible view outlined"),
		),
		s.handleScreenshot,
	)
}

func (s *MCPServer) run(cmd Command) (Response, *mcp.CallToolResult) {
	resp, err := s.router.Dispatch(cmd)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return resp, nil
}

// command returns a tool handler that dispatches method uri with the tool
// arguments as body.
func (s *MCPServer) command(method, uri string) mcpserver.ToolHandlerFunc {
	return func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, failed := s.run(Command{Method: method, URI: uri, Body: Body(request.GetArguments())})
		if failed != nil {
			return failed, nil
		}
		return mcp.NewToolResultText(responseToText(resp)), nil
	}
}

// elementCommand is like command for element/<handle>/<action>.
func (s *MCPServer) elementCommand(method, action string) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		handle, err := Body(request.GetArguments()).String("element")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return s.command(method, "element/"+handle+"/"+action)(ctx, request)
	}
}

func (s *MCPServer) handleScreenshot(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, failed := s.run(Command{Method: "GET", URI: "screenshot"})
	if failed != nil {
		return failed, nil
	}
	b64, _ := resp["value"].(string)
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     b64,
				MIMEType: "image/png",
			},
		},
	}, nil
}

// responseToText serializes a response to YAML for MCP clients.
func responseToText(resp Response) string {
	if len(resp) == 0 {
		return "ok: true\n"
	}
	b, err := yaml.Marshal(map[string]any(resp))
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(resp))
	}
	return string(b)
}
