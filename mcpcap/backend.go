package mcpcap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Error values for consistent error handling by callers.
var (
	ErrNotConnected    = errors.New("backend not connected")
	ErrNoSearchTool    = errors.New("no hybrid search tool on backend")
	ErrExecutionFailed = errors.New("tool execution failed")
)

// Config describes the MCP server hosting the capability.
type Config struct {
	// Name identifies the backend; it becomes the namespace of wrapped
	// tools.
	Name string
	// URL is the MCP server URL (http(s)://, sse://, stdio://).
	URL string
	// Headers are optional HTTP headers for authenticated backends.
	Headers map[string]string
	// MaxRetries controls reconnect attempts for streamable HTTP transport.
	MaxRetries int
	// RetryInterval is reserved for future use.
	RetryInterval time.Duration
	// Transport overrides URL handling when provided (useful for tests).
	Transport mcp.Transport
	// Tool pins the tool to call. Empty picks the first tool whose name
	// looks like a hybrid search entry point.
	Tool string
	// Tags are attached to wrapped tools for cataloging.
	Tags []string
}

// Backend is a lazily connecting MCP client session plus the one tool it
// exposes as a capability.
type Backend struct {
	config Config

	mu        sync.RWMutex
	client    *mcp.Client
	session   *mcp.ClientSession
	tools     []model.Tool
	tool      model.Tool
	connected bool
}

// NewBackend creates a Backend. No connection is made until Connect (or
// the first provider load).
func NewBackend(cfg Config) *Backend {
	return &Backend{config: cfg}
}

// Connect dials the server, lists its tools, and selects the search tool.
// Calling Connect on a connected backend is a no-op.
func (b *Backend) Connect(ctx context.Context) error {
	b.mu.Lock()
	if b.connected {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	transport, err := b.transport()
	if err != nil {
		return err
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "capadapter-mcp"}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return err
	}

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		_ = session.Close()
		return err
	}

	tools := make([]model.Tool, 0, len(res.Tools))
	for _, tool := range res.Tools {
		if tool == nil {
			continue
		}
		tools = append(tools, model.Tool{
			Tool:      *tool,
			Namespace: b.config.Name,
			Tags:      model.NormalizeTags(b.config.Tags),
		})
	}

	selected, err := pickSearchTool(tools, b.config.Tool)
	if err != nil {
		_ = session.Close()
		return err
	}

	b.mu.Lock()
	b.client = client
	b.session = session
	b.tools = tools
	b.tool = selected
	b.connected = true
	b.mu.Unlock()
	return nil
}

// Disconnect closes the session. Disconnecting an unconnected backend is a
// no-op.
func (b *Backend) Disconnect() error {
	b.mu.Lock()
	if !b.connected {
		b.mu.Unlock()
		return nil
	}
	session := b.session
	b.client = nil
	b.session = nil
	b.connected = false
	b.mu.Unlock()

	if session != nil {
		return session.Close()
	}
	return nil
}

// Tools returns a snapshot of the tools listed from the server.
func (b *Backend) Tools() []model.Tool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.tools) == 0 {
		return nil
	}
	out := make([]model.Tool, len(b.tools))
	copy(out, b.tools)
	return out
}

// SearchTool returns the selected search tool.
func (b *Backend) SearchTool() (model.Tool, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tool, b.connected
}

func (b *Backend) callTool(ctx context.Context, name string, args map[string]any) (any, error) {
	b.mu.RLock()
	session := b.session
	connected := b.connected
	b.mu.RUnlock()

	if !connected || session == nil {
		return nil, ErrNotConnected
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
	}
	if result == nil {
		return nil, nil
	}
	if result.IsError {
		return nil, fmt.Errorf("%w: %s", ErrExecutionFailed, toolResultError(result))
	}
	return toolResultValue(result), nil
}

// pickSearchTool selects the capability entry point among listed tools:
// the pinned name when configured, otherwise the first tool whose name
// mentions hybrid or search.
func pickSearchTool(tools []model.Tool, want string) (model.Tool, error) {
	if want != "" {
		for _, tool := range tools {
			if tool.Name == want {
				return tool, nil
			}
		}
		return model.Tool{}, fmt.Errorf("%w: %s", ErrNoSearchTool, want)
	}

	for _, tool := range tools {
		if strings.Contains(strings.ToLower(tool.Name), "hybrid") {
			return tool, nil
		}
	}
	for _, tool := range tools {
		if strings.Contains(strings.ToLower(tool.Name), "search") {
			return tool, nil
		}
	}
	return model.Tool{}, ErrNoSearchTool
}

func (b *Backend) transport() (mcp.Transport, error) {
	if b.config.Transport != nil {
		return b.config.Transport, nil
	}
	if strings.TrimSpace(b.config.URL) == "" {
		return nil, errors.New("backend URL is required")
	}

	parsed, err := url.Parse(b.config.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}

	httpClient := httpClientWithHeaders(b.config.Headers)

	switch parsed.Scheme {
	case "http", "https":
		return &mcp.StreamableClientTransport{
			Endpoint:   b.config.URL,
			HTTPClient: httpClient,
			MaxRetries: b.config.MaxRetries,
		}, nil
	case "sse":
		parsed.Scheme = "http"
		return &mcp.SSEClientTransport{
			Endpoint:   parsed.String(),
			HTTPClient: httpClient,
		}, nil
	case "stdio":
		return &mcp.StdioTransport{}, nil
	default:
		return nil, fmt.Errorf("unsupported backend URL scheme %q", parsed.Scheme)
	}
}

func httpClientWithHeaders(headers map[string]string) *http.Client {
	if len(headers) == 0 {
		return nil
	}
	clone := make(map[string]string, len(headers))
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		clone[k] = v
	}
	if len(clone) == 0 {
		return nil
	}
	return &http.Client{
		Transport: &headerRoundTripper{
			base:    http.DefaultTransport,
			headers: clone,
		},
	}
}

type headerRoundTripper struct {
	base    http.RoundTripper
	headers map[string]string
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	base := h.base
	if base == nil {
		base = http.DefaultTransport
	}
	for key, value := range h.headers {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}
	return base.RoundTrip(req)
}

func toolResultValue(result *mcp.CallToolResult) any {
	if result == nil {
		return nil
	}
	if result.StructuredContent != nil {
		return result.StructuredContent
	}
	if len(result.Content) == 1 {
		if text, ok := result.Content[0].(*mcp.TextContent); ok {
			return text.Text
		}
	}
	return result.Content
}

func toolResultError(result *mcp.CallToolResult) string {
	if result == nil {
		return "tool execution failed"
	}
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok && text.Text != "" {
			return text.Text
		}
	}
	if result.StructuredContent != nil {
		return fmt.Sprintf("%v", result.StructuredContent)
	}
	return "tool execution failed"
}
