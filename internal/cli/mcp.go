package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/dynoslide"
	"github.com/aretw0/dynoslide/internal/config"
	"github.com/aretw0/dynoslide/pkg/adapters/mcp"
	"github.com/aretw0/dynoslide/pkg/observability"
)

// Transports supported by RunMCP.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// MCPOptions configures RunMCP.
type MCPOptions struct {
	Config    config.Config
	Logger    *slog.Logger
	Transport string
	Addr      string
}

// RunMCP serves the catalog and orchestrator as MCP tools until ctx is done
// (SSE) or stdin closes (stdio).
func RunMCP(ctx context.Context, opts MCPOptions) error {
	engine, cleanup, err := createEngine(opts.Config, opts.Logger,
		dynoslide.WithGenerationHooks(observability.LogHooks(opts.Logger)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), opts.Config.Server.ShutdownTimeout)
		defer cancel()
		_ = engine.Close(closeCtx)
	}()

	srv := mcp.NewServer(engine.Catalog(), engine.Carousels(), mcp.WithLogger(opts.Logger))

	switch opts.Transport {
	case TransportStdio:
		opts.Logger.Info("Starting dynoslide MCP Server (Stdio)...")
		return srv.ServeStdio()
	case TransportSSE:
		addr := opts.Addr
		if addr == "" {
			addr = opts.Config.Server.Addr
		}
		return srv.ServeSSE(ctx, addr, opts.Config.Server.PublicURL)
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}
