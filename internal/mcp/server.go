// Package mcp exposes the app's adb commands as MCP tools so external
// agents can drive a device.
package mcp

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/FluidXR/sinodroid/internal/adb"
	"github.com/FluidXR/sinodroid/internal/debloat"
)

// Backend is the part of the app the tools call.
type Backend interface {
	IsPlatformToolsReady() bool
	InitPlatformTools() error
	InstallRoot() string
	GetAdbVersion() (string, error)
	GetDevices() ([]adb.Device, error)
	GetDeviceInfo(serial string) (adb.DeviceInfo, error)
	ConnectWiFi(host string, port int) (string, error)
	ExecuteAdbCommand(args []string) (string, error)
	DebloatCatalog(brand string) []debloat.Package
}

// Server wraps the MCP server.
type Server struct {
	backend Backend
	server  *server.MCPServer
	log     zerolog.Logger

	mu        sync.Mutex
	isRunning bool
}

// NewServer registers all tools against backend.
func NewServer(backend Backend, version string, log zerolog.Logger) *Server {
	s := &Server{
		backend: backend,
		log:     log.With().Str("component", "mcp").Logger(),
		server: server.NewMCPServer(
			"sinodroid",
			version,
			server.WithToolCapabilities(true),
			server.WithLogging(),
		),
	}
	s.registerTools()
	return s
}

// Serve speaks MCP over in/out until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("MCP server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
	}()

	s.log.Info().Msg("MCP server started")
	stdio := server.NewStdioServer(s.server)
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp serve: %w", err)
	}
	return nil
}
