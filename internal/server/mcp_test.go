package server

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"
)

func toolRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("got %d content items", len(res.Content))
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want text", res.Content[0])
	}
	return text.Text
}

func TestMCP_FindAndReadText(t *testing.T) {
	r, _ := newTestRouter(t, formLayout)
	s := NewMCPServer(r, "test")
	ctx := context.Background()

	res, err := s.command("POST", "elements")(ctx, toolRequest(map[string]any{"using": "id", "value": "com.test:id/ok"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("find_elements failed: %s", resultText(t, res))
	}
	var found struct {
		Value []struct {
			Element string `yaml:"element"`
		} `yaml:"value"`
	}
	if err := yaml.Unmarshal([]byte(resultText(t, res)), &found); err != nil {
		t.Fatal(err)
	}
	if len(found.Value) != 1 {
		t.Fatalf("found %d elements, want 1", len(found.Value))
	}

	res, _ = s.elementCommand("GET", "text")(ctx, toolRequest(map[string]any{"element": found.Value[0].Element}))
	if res.IsError || !strings.Contains(resultText(t, res), "value: OK") {
		t.Errorf("get_text = %s", resultText(t, res))
	}
}

func TestMCP_Errors(t *testing.T) {
	r, _ := newTestRouter(t, formLayout)
	s := NewMCPServer(r, "test")
	ctx := context.Background()

	res, _ := s.elementCommand("GET", "text")(ctx, toolRequest(map[string]any{}))
	if !res.IsError || !strings.Contains(resultText(t, res), "element") {
		t.Errorf("missing element: %+v", res)
	}
	res, _ = s.elementCommand("POST", "click")(ctx, toolRequest(map[string]any{"element": "element-gone"}))
	if !res.IsError || !strings.Contains(resultText(t, res), "no such element") {
		t.Errorf("stale element: %+v", res)
	}
}

func TestMCP_EmptyResponse(t *testing.T) {
	r, _ := newTestRouter(t, formLayout)
	s := NewMCPServer(r, "test")
	res, _ := s.command("POST", "timeouts/implicit_wait")(context.Background(), toolRequest(map[string]any{"ms": 250.0}))
	if res.IsError || resultText(t, res) != "ok: true\n" {
		t.Errorf("implicit_wait = %+v", res)
	}
	if got := r.session.ImplicitWait().Milliseconds(); got != 250 {
		t.Errorf("implicit wait = %dms, want 250", got)
	}
}

func TestMCP_Screenshot(t *testing.T) {
	r, _ := newTestRouter(t, formLayout)
	s := NewMCPServer(r, "test")
	res, err := s.handleScreenshot(context.Background(), toolRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	img, ok := res.Content[0].(mcp.ImageContent)
	if !ok || img.MIMEType != "image/png" || img.Data == "" {
		t.Errorf("screenshot content = %+v", res.Content[0])
	}
}
