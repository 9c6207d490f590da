package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware logs every MCP method call with its latency. Failed
// calls log at error level with the failure message attached.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			elapsed := time.Since(start)

			if err != nil {
				slog.ErrorContext(ctx, "mcp method failed",
					slog.String("method", method),
					slog.Int64("duration_ms", elapsed.Milliseconds()),
					slog.String("error", err.Error()))
				return result, err
			}

			slog.InfoContext(ctx, "mcp method completed",
				slog.String("method", method),
				slog.Int64("duration_ms", elapsed.Milliseconds()))
			return result, err
		}
	}
}
