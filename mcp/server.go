package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/Shafnaa/scrapping-tokopedia-review/internal/tokopedia"
)

// Deps carries the harvesting engine the tools run on. The session behind
// the client is bootstrapped once by the caller before serving.
type Deps struct {
	Harvester *tokopedia.Harvester
	Client    *tokopedia.Client
}

func newServer(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"tokopedia-review-harvester",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	registerTools(s, deps)
	return s
}

// Serve starts the MCP stdio server with all tools registered.
func Serve(deps Deps) error {
	return server.ServeStdio(newServer(deps))
}
