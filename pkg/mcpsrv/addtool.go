package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemex/internal/mcp/tools"
)

// AddTool registers a tool on a raw SDK server with the same startup check
// the builtin schemex tools get: the output type's zero value is validated
// against the schema the SDK infers for it. Nil slices marshal to JSON null
// while the inferred schema says array, so a handler returning a zero-value
// output would fail validation on its first call at runtime; the check
// panics at registration time instead, naming the field to annotate.
//
// Prefer this over calling [sdkmcp.AddTool] directly.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
