// Package mcpcap exposes a tool on a remote MCP server as a hybrid search
// capability.
//
// The backend connects lazily: the first provider load (or an explicit
// Connect) dials the server, lists its tools, and selects the search entry
// point: a pinned tool name from Config.Tool, or the first tool whose
// name mentions hybrid or search. The selected tool is wrapped behind
// capability.Interface, so the invoker calls it directly with the full
// canonical field set as MCP arguments.
//
//	backend, err := mcpcap.Register(mcpcap.Config{
//	    Name: "search-server",
//	    URL:  "https://search.internal/mcp",
//	})
//
// While the server is unreachable the location simply fails to load and
// resolution falls through to later candidates; the next scan retries.
package mcpcap
