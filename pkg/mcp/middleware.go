package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// violationCountKey carries a handler's violation count back to the
// logging middleware.
type violationCountKey struct{}

type violationCount struct {
	n   int
	set bool
}

func recordViolations(ctx context.Context, n int) {
	if vc, ok := ctx.Value(violationCountKey{}).(*violationCount); ok {
		vc.n, vc.set = n, true
	}
}

// loggingMiddleware writes one call log entry per tool call.
func (s *Server) loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			vc := &violationCount{}
			ctx = context.WithValue(ctx, violationCountKey{}, vc)

			start := now()
			result, err := next(ctx, req)
			elapsed := time.Since(start).Milliseconds()

			entry := CallLogEntry{
				Ts:            start.UTC().Format(time.RFC3339),
				Tool:          req.Params.Name,
				Params:        sanitizeParams(req.GetArguments()),
				DurationMs:    elapsed,
				ResponseBytes: responseBytes(result),
				IsError:       result != nil && result.IsError,
			}
			if vc.set {
				entry.Violations = &vc.n
			}
			if err != nil {
				msg := err.Error()
				entry.Error = &msg
			}
			if werr := s.callLog.Write(entry); werr != nil {
				s.logger.Warn("failed to write call log", "error", werr)
			}

			return result, err
		}
	}
}
