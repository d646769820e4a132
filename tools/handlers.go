package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/aoyamat/growi-mcp-server/growi"
	"github.com/aoyamat/growi-mcp-server/metrics"
	"github.com/aoyamat/growi-mcp-server/tracing"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *growi.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *growi.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools), "api_version", h.client.APIVersion())
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	// Page tools
	case "GetPageList":
		register(h, server, tool, spec, h.client.GetPageList)
	case "ReadPage":
		register(h, server, tool, spec, h.client.ReadPage)
	case "CreatePage":
		register(h, server, tool, spec, h.client.CreatePage)
	case "UpdatePage":
		register(h, server, tool, spec, h.client.UpdatePage)
	case "RenamePage":
		register(h, server, tool, spec, h.client.RenamePage)
	case "RemovePage":
		register(h, server, tool, spec, h.client.RemovePage)

	// Search tools
	case "SearchPages":
		register(h, server, tool, spec, h.client.SearchPages)

	// User tools
	case "GetUserNames":
		register(h, server, tool, spec, h.client.GetUserNames)
	case "RegisterUser":
		register(h, server, tool, spec, h.client.RegisterUser)

	// Attachment tools
	case "UploadAttachment":
		register(h, server, tool, spec, h.client.UploadAttachment)
	case "AttachmentList":
		register(h, server, tool, spec, h.client.AttachmentList)
	case "AttachmentInfo":
		register(h, server, tool, spec, h.client.AttachmentInfo)
	case "DownloadAttachment":
		register(h, server, tool, spec, h.client.DownloadAttachment)
	case "RemoveAttachment":
		register(h, server, tool, spec, h.client.RemoveAttachment)

	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		// Start trace span
		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.category", spec.Category),
			attribute.String("growi.api.version", h.client.APIVersion()),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		// Track in-flight requests
		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name}

	// Add extractable fields from args using type assertions
	switch a := args.(type) {
	case growi.PageListArgs:
		attrs = append(attrs, "path_or_id", a.PathOrID)
	case growi.ReadPageArgs:
		attrs = append(attrs, "path_or_id", a.PathOrID)
	case growi.CreatePageArgs:
		attrs = append(attrs, "path", a.Path)
	case growi.UpdatePageArgs:
		attrs = append(attrs, "path_or_id", a.PathOrID)
	case growi.RenamePageArgs:
		attrs = append(attrs, "path_or_id", a.PathOrID, "new_path", a.NewPath)
	case growi.RemovePageArgs:
		attrs = append(attrs, "path_or_id", a.PathOrID, "recursively", a.Recursively)
	case growi.SearchPagesArgs:
		attrs = append(attrs, "query", a.Query)
	case growi.UserNamesArgs:
		attrs = append(attrs, "query", a.Query)
	case growi.RegisterUserArgs:
		attrs = append(attrs, "username", a.Username)
	case growi.UploadAttachmentArgs:
		attrs = append(attrs, "page_id_or_path", a.PageIDOrPath, "file_path", a.FilePath)
	case growi.AttachmentListArgs:
		attrs = append(attrs, "path_or_id", a.PathOrID)
	case growi.AttachmentInfoArgs:
		attrs = append(attrs, "attachment_id", a.AttachmentID)
	case growi.DownloadAttachmentArgs:
		attrs = append(attrs, "attachment_id", a.AttachmentID)
	case growi.RemoveAttachmentArgs:
		attrs = append(attrs, "attachment_id", a.AttachmentID)
	}

	// Add extractable fields from result
	switch r := result.(type) {
	case *growi.PageListResult:
		attrs = append(attrs, "pages", len(r.Pages), "total", r.TotalCount)
	case *growi.ReadPageResult:
		attrs = append(attrs, "path", r.Page.Path, "body_bytes", len(r.Body))
	case *growi.CreatePageResult:
		attrs = append(attrs, "page_id", r.Page.ID)
	case *growi.UpdatePageResult:
		attrs = append(attrs, "page_id", r.Page.ID, "revision", r.Page.RevisionID)
	case *growi.RenamePageResult:
		attrs = append(attrs, "path", r.Page.Path)
	case *growi.RemovePageResult:
		attrs = append(attrs, "removed", r.Removed)
	case *growi.SearchPagesResult:
		attrs = append(attrs, "hits", len(r.Hits), "total", r.TotalHits)
	case *growi.UserNamesResult:
		attrs = append(attrs, "usernames", len(r.Usernames))
	case *growi.RegisterUserResult:
		attrs = append(attrs, "registered", r.Registered)
	case *growi.UploadAttachmentResult:
		attrs = append(attrs, "attachment_id", r.Attachment.ID, "size", r.Attachment.FileSize)
	case *growi.AttachmentListResult:
		attrs = append(attrs, "attachments", len(r.Attachments), "total", r.TotalCount)
	case *growi.DownloadAttachmentResult:
		attrs = append(attrs, "saved_path", r.SavedPath, "size", r.Size)
	case *growi.RemoveAttachmentResult:
		attrs = append(attrs, "removed", r.Removed)
	}

	h.logger.Info("Tool executed", attrs...)
}
