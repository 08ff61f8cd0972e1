package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/dynoslide"
	"github.com/aretw0/dynoslide/internal/logging"
	"github.com/aretw0/dynoslide/pkg/catalog"
	"github.com/aretw0/dynoslide/pkg/domain"
	"github.com/aretw0/dynoslide/pkg/dyno"
	"github.com/aretw0/dynoslide/pkg/pipeline"
)

// SlideArgs is one slide of a create_carousel call.
type SlideArgs struct {
	TemplateID   string         `json:"template_id" jsonschema_description:"Template to render"`
	Replacements map[string]any `json:"replacements,omitempty" jsonschema_description:"Field values keyed by field name"`
}

// CreateCarouselArgs are the create_carousel arguments.
type CreateCarouselArgs struct {
	Name        string      `json:"name"`
	CanvasWidth int         `json:"canvas_width,omitempty"`
	Slides      []SlideArgs `json:"slides,omitempty"`
	Generate    bool        `json:"generate,omitempty"`
}

// CarouselArgs address one carousel.
type CarouselArgs struct {
	CarouselID string `json:"carousel_id"`
	Wait       bool   `json:"wait,omitempty"`
}

// AnalyzeArgs select the template to analyze: a stored id or an inline document.
type AnalyzeArgs struct {
	TemplateID string `json:"template_id,omitempty"`
	SVG        string `json:"svg,omitempty"`
}

// ListTemplatesArgs filter list_templates.
type ListTemplatesArgs struct {
	Category string `json:"category,omitempty"`
	Type     string `json:"template_type,omitempty"`
	Query    string `json:"query,omitempty"`
}

// AnalyzeResponse lists the placeholders of a template.
type AnalyzeResponse struct {
	TemplateID string               `json:"template_id,omitempty" jsonschema_description:"Stored template id, empty for inline documents"`
	Fields     []domain.Placeholder `json:"fields" jsonschema_description:"Placeholders ordered by field name"`
}

// TemplatesResponse wraps list_templates results.
type TemplatesResponse struct {
	Templates []domain.Template `json:"templates"`
	Total     int               `json:"total"`
}

// StatusResponse reports a carousel's progress and, once finished, its slides.
type StatusResponse struct {
	domain.Status
	Started bool           `json:"started,omitempty"`
	Slides  []domain.Slide `json:"slides,omitempty"`
}

// Server exposes the catalog and orchestrator as MCP tools.
type Server struct {
	catalog   *catalog.Catalog
	carousels *pipeline.Orchestrator
	logger    *slog.Logger
	waitLimit time.Duration
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWaitLimit bounds how long generate_carousel blocks when asked to wait.
func WithWaitLimit(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.waitLimit = d
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(cat *catalog.Catalog, carousels *pipeline.Orchestrator, opts ...Option) *Server {
	s := &Server{
		catalog:   cat,
		carousels: carousels,
		logger:    logging.NewNop(),
		waitLimit: 2 * time.Minute,
		mcpServer: server.NewMCPServer("dynoslide-mcp", strings.TrimSpace(dynoslide.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
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

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List stored templates, optionally filtered by category, type or a fuzzy query."),
		mcp.WithString("category", mcp.Description("Category slug")),
		mcp.WithString("template_type", mcp.Description("main or photo"), mcp.Enum(domain.TemplateTypeMain, domain.TemplateTypePhoto)),
		mcp.WithString("query", mcp.Description("Fuzzy match against name and category")),
		mcp.WithOutputSchema[TemplatesResponse](),
	), mcp.NewStructuredToolHandler(s.handleListTemplates))

	s.mcpServer.AddTool(mcp.NewTool("analyze_template",
		mcp.WithDescription("Discover the dyno. placeholders of a stored template or an inline SVG document."),
		mcp.WithString("template_id", mcp.Description("Stored template id")),
		mcp.WithString("svg", mcp.Description("Inline SVG document, used when template_id is empty")),
		mcp.WithOutputSchema[AnalyzeResponse](),
	), mcp.NewStructuredToolHandler(s.handleAnalyze))

	s.mcpServer.AddTool(mcp.NewTool("create_carousel",
		mcp.WithDescription("Create a carousel with its slides. Set generate to start rendering at once."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Carousel name")),
		mcp.WithNumber("canvas_width", mcp.Description("Canvas width used by the overflow wrapper (default 1080)")),
		mcp.WithArray("slides", mcp.Description("Slides in order"), mcp.Items(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"template_id":  map[string]any{"type": "string"},
				"replacements": map[string]any{"type": "object"},
			},
			"required": []string{"template_id"},
		})),
		mcp.WithBoolean("generate", mcp.Description("Start generation after creating")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleCreateCarousel))

	s.mcpServer.AddTool(mcp.NewTool("generate_carousel",
		mcp.WithDescription("Start rendering a carousel. Repeated calls report the current status."),
		mcp.WithString("carousel_id", mcp.Required(), mcp.Description("Carousel id")),
		mcp.WithBoolean("wait", mcp.Description("Block until the run finishes")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleGenerate))

	s.mcpServer.AddTool(mcp.NewTool("carousel_status",
		mcp.WithDescription("Report generation progress and slide URLs."),
		mcp.WithString("carousel_id", mcp.Required(), mcp.Description("Carousel id")),
		mcp.WithOutputSchema[StatusResponse](),
	), mcp.NewStructuredToolHandler(s.handleStatus))
}

func (s *Server) handleListTemplates(ctx context.Context, _ mcp.CallToolRequest, args ListTemplatesArgs) (TemplatesResponse, error) {
	list, err := s.catalog.List(ctx, catalog.Filter{Category: args.Category, Type: args.Type, Query: args.Query})
	if err != nil {
		return TemplatesResponse{}, err
	}
	return TemplatesResponse{Templates: list, Total: len(list)}, nil
}

func (s *Server) handleAnalyze(ctx context.Context, _ mcp.CallToolRequest, args AnalyzeArgs) (AnalyzeResponse, error) {
	var (
		analysis dyno.Analysis
		err      error
	)
	switch {
	case args.TemplateID != "":
		analysis, err = s.catalog.Fields(ctx, args.TemplateID)
	case args.SVG != "":
		analysis, err = dyno.Analyze(args.SVG, s.carousels.Pipeline().DynoOptions()...)
	default:
		return AnalyzeResponse{}, errors.New("template_id or svg is required")
	}
	if err != nil {
		return AnalyzeResponse{}, err
	}
	resp := AnalyzeResponse{TemplateID: args.TemplateID, Fields: make([]domain.Placeholder, 0, len(analysis.Placeholders))}
	for _, name := range analysis.Fields() {
		p, _ := analysis.Get(name)
		resp.Fields = append(resp.Fields, p)
	}
	return resp, nil
}

func (s *Server) handleCreateCarousel(ctx context.Context, _ mcp.CallToolRequest, args CreateCarouselArgs) (StatusResponse, error) {
	if strings.TrimSpace(args.Name) == "" {
		return StatusResponse{}, errors.New("name is required")
	}
	type pending struct {
		templateID string
		values     map[string]string
	}
	slides := make([]pending, 0, len(args.Slides))
	for i, in := range args.Slides {
		if in.TemplateID == "" {
			return StatusResponse{}, fmt.Errorf("slide %d: template_id is required", i+1)
		}
		values, err := dyno.DecodeValues(in.Replacements)
		if err != nil {
			return StatusResponse{}, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slides = append(slides, pending{in.TemplateID, values})
	}

	c, err := s.carousels.Create(ctx, args.Name, args.CanvasWidth)
	if err != nil {
		return StatusResponse{}, err
	}
	for _, p := range slides {
		if _, err := s.carousels.AddSlide(ctx, c.ID, p.templateID, p.values); err != nil {
			return StatusResponse{}, err
		}
	}
	if args.Generate {
		return s.handleGenerate(ctx, mcp.CallToolRequest{}, CarouselArgs{CarouselID: c.ID})
	}
	status, err := s.carousels.Status(ctx, c.ID)
	if err != nil {
		return StatusResponse{}, err
	}
	return StatusResponse{Status: status}, nil
}

func (s *Server) handleGenerate(ctx context.Context, _ mcp.CallToolRequest, args CarouselArgs) (StatusResponse, error) {
	status, started, err := s.carousels.Generate(ctx, args.CarouselID)
	if err != nil {
		return StatusResponse{}, err
	}
	if !args.Wait {
		return StatusResponse{Status: status, Started: started}, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.waitLimit)
	defer cancel()
	if _, err := s.carousels.Wait(waitCtx, args.CarouselID); err != nil {
		return StatusResponse{}, err
	}
	resp, err := s.handleStatus(ctx, mcp.CallToolRequest{}, args)
	resp.Started = started
	return resp, err
}

func (s *Server) handleStatus(ctx context.Context, _ mcp.CallToolRequest, args CarouselArgs) (StatusResponse, error) {
	status, err := s.carousels.Status(ctx, args.CarouselID)
	if err != nil {
		return StatusResponse{}, err
	}
	resp := StatusResponse{Status: status}
	if status.State.Terminal() {
		if resp.Slides, err = s.carousels.Slides(ctx, args.CarouselID); err != nil {
			return StatusResponse{}, err
		}
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: dynoslide://templates
	s.mcpServer.AddResource(mcp.NewResource("dynoslide://templates", "Template Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		list, err := s.catalog.List(ctx, catalog.Filter{})
		if err != nil {
			return nil, fmt.Errorf("failed to list templates: %w", err)
		}
		jsonBytes, _ := json.Marshal(list)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "dynoslide://templates",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
