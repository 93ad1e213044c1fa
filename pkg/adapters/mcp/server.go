package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/hexsim"
	"github.com/aretw0/hexsim/internal/dto"
	"github.com/aretw0/hexsim/internal/logging"
	"github.com/aretw0/hexsim/internal/presentation/graph"
	"github.com/aretw0/hexsim/internal/presentation/tui"
	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/observability"
	"github.com/aretw0/hexsim/pkg/program"
	"github.com/aretw0/hexsim/pkg/registry"
)

const actionsURI = "hexsim://actions"

// Server exposes the simulator as an MCP Server.
type Server struct {
	registry  *registry.Registry
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		registry:  reg,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("hexsim-mcp", hexsim.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: simulate
	s.mcpServer.AddTool(mcp.NewTool("simulate",
		mcp.WithDescription("Run a program against a partially known stack and return every possible outcome."),
		mcp.WithString("program", mcp.Required(), mcp.Description("Program document (YAML or JSON) with stack, optional ravenmind and actions")),
		mcp.WithString("output", mcp.Description("Result format: json (default), markdown or mermaid")),
	), s.handleSimulate)

	// TOOL: list_actions
	s.mcpServer.AddTool(mcp.NewTool("list_actions",
		mcp.WithDescription("List the names of the available actions."),
	), s.handleListActions)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := request.RequireString("program")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	output := request.GetString("output", "json")

	clean, err := program.Sanitize(doc)
	if err != nil {
		s.logger.Warn("MCP simulate: program rejected", "error", err, "size", len(doc))
		return mcp.NewToolResultError(err.Error()), nil
	}

	// YAML is a superset of JSON, so one parser serves both.
	prog, err := program.Parse([]byte(clean), program.FormatYAML)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state, err := prog.State()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	actions, err := prog.Resolve(s.registry)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec := observability.NewRecorder()
	mgr := hexsim.Start(state, hexsim.WithLogger(s.logger), hexsim.WithLifecycleHooks(rec.Hooks()))
	if err := mgr.Run(ctx, actions...); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return mcp.NewToolResultError(fmt.Sprintf("simulate failed: %v", err)), nil
	}
	s.logger.Debug("MCP simulate", "steps", mgr.Steps(), "branches", mgr.Holder().Len())

	switch output {
	case "markdown":
		return mcp.NewToolResultText(tui.Report("Simulation", mgr.Holder())), nil
	case "mermaid":
		return mcp.NewToolResultText(graph.GenerateMermaid(domain.SingleState(state), rec.Steps())), nil
	case "json":
		jsonBytes, err := json.Marshal(dto.FromHolder(mgr.Holder(), mgr.Steps()))
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("unknown output %q", output)), nil
}

func (s *Server) handleListActions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, _ := json.Marshal(s.registry.Names())
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(actionsURI, "Available Actions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(s.registry.Names())
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      actionsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
