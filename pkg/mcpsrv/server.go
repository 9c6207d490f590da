package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/schemex/internal/config"
	"github.com/usestring/schemex/internal/logging"
	"github.com/usestring/schemex/internal/mcp"
	"github.com/usestring/schemex/internal/mcp/tools"
	"github.com/usestring/schemex/internal/query"
	"github.com/usestring/schemex/internal/store"
	"github.com/usestring/schemex/pkg/extract"
)

// Server is the schemex MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with builtin schemex tools.
//
// Use functional options to configure logging, add custom tools, etc.
func NewServer(opts ...Option) (*Server, error) {
	// Build configuration from options
	cfg := &serverConfig{
		config: config.Load(), // Load defaults from environment
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logLevel != "" {
		cfg.config.LogLevel = cfg.logLevel
	}
	if cfg.logFile != "" {
		cfg.config.LogFile = cfg.logFile
	}
	logCleanup, err := logging.Setup(cfg.config)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	// Create infrastructure
	schemaStore, err := store.New(cfg.config.SchemaCacheMaxItems)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema store: %w", err)
	}
	extractor := extract.New()
	queryEngine := query.NewEngine()

	// Create deps for internal tools and custom tools
	toolDeps := &tools.Deps{
		Extractor: extractor,
		Store:     schemaStore,
		Query:     queryEngine,
		Config:    cfg.config,
	}

	// Create public deps (same values, different type for public API)
	deps := &Deps{
		Extractor: extractor,
		Store:     schemaStore,
		Query:     queryEngine,
		Config:    cfg.config,
	}

	// Build internal server options
	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}

	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Add deferred tool registrations (tools that need Deps access)
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}
