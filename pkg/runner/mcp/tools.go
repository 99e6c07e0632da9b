package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/contentcal/pkg/app"
	"tableflip.dev/contentcal/pkg/calendar"
	"tableflip.dev/contentcal/pkg/entry"
	"tableflip.dev/contentcal/pkg/store"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerViewCalendarTool(srv, svc)
	registerCreateEntryTool(srv, svc)
	registerMoveEntryTool(srv, svc)
	registerBulkUpdateStatusTool(srv, svc)
	registerTransitionEntryTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerCheckConflictsTool(srv, svc)
}

func statusNames() []string {
	out := make([]string, 0, len(entry.AllStatuses()))
	for _, s := range entry.AllStatuses() {
		out = append(out, string(s))
	}
	return out
}

func contentTypeNames() []string {
	out := make([]string, 0, len(entry.AllContentTypes()))
	for _, c := range entry.AllContentTypes() {
		out = append(out, string(c))
	}
	return out
}

func priorityNames() []string {
	out := make([]string, 0, len(entry.AllPriorities()))
	for _, p := range entry.AllPriorities() {
		out = append(out, string(p))
	}
	return out
}

func modeNames() []string {
	out := make([]string, 0, len(calendar.AllModes()))
	for _, m := range calendar.AllModes() {
		out = append(out, string(m))
	}
	return out
}

func registerViewCalendarTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"view_calendar",
		mcp.WithDescription("Render the calendar as day buckets with conflict flags and metrics."),
		mcp.WithString("reference",
			mcp.Description("Reference date YYYY-MM-DD; defaults to today."),
		),
		mcp.WithString("mode",
			mcp.Description("View granularity."),
			mcp.Enum(modeNames()...),
		),
		mcp.WithString("search",
			mcp.Description("Case-insensitive text matched against title and preview."),
		),
		mcp.WithString("status",
			mcp.Description("Only entries with this status, or all."),
		),
		mcp.WithString("platform",
			mcp.Description("Only entries targeting this platform, or all."),
		),
		mcp.WithBoolean("conflicts_only",
			mcp.Description("Drop days without conflicts."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ViewOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		view, err := svc.View(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(view)
	})
}

func registerCreateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_entry",
		mcp.WithDescription("Schedule a new content entry."),
		mcp.WithString("title",
			mcp.Description("Entry title, defaults to Untitled."),
		),
		mcp.WithString("calendar_date",
			mcp.Required(),
			mcp.Description("Publication day YYYY-MM-DD."),
		),
		mcp.WithString("time_slot",
			mcp.Description("24h HH:MM slot; defaults to 09:00."),
		),
		mcp.WithString("content_type",
			mcp.Description("Content format; defaults to post."),
			mcp.Enum(contentTypeNames()...),
		),
		mcp.WithArray("target_platforms",
			mcp.Description("Platforms to publish on; defaults to the configured platform."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("status",
			mcp.Description("Initial status; defaults to planned."),
			mcp.Enum(statusNames()...),
		),
		mcp.WithString("priority",
			mcp.Description("Priority; defaults to medium."),
			mcp.Enum(priorityNames()...),
		),
		mcp.WithString("description",
			mcp.Description("Longer description."),
		),
		mcp.WithString("content_preview",
			mcp.Description("Preview text of the content."),
		),
		mcp.WithNumber("expected_engagement",
			mcp.Description("Expected engagement score."),
			mcp.Min(0),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title              string   `json:"title"`
			CalendarDate       string   `json:"calendar_date"`
			TimeSlot           string   `json:"time_slot"`
			ContentType        string   `json:"content_type"`
			TargetPlatforms    []string `json:"target_platforms"`
			Status             string   `json:"status"`
			Priority           string   `json:"priority"`
			Description        string   `json:"description"`
			ContentPreview     string   `json:"content_preview"`
			ExpectedEngagement float64  `json:"expected_engagement"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		var day entry.Date
		if strings.TrimSpace(args.CalendarDate) != "" {
			parsed, err := entry.ParseDate(args.CalendarDate)
			if err != nil {
				return mcp.NewToolResultError("calendar_date must be YYYY-MM-DD"), nil
			}
			day = parsed
		}

		dto, err := svc.CreateEntry(ctx, app.NewEntry{
			Title:              args.Title,
			CalendarDate:       day,
			TimeSlot:           args.TimeSlot,
			ContentType:        args.ContentType,
			TargetPlatforms:    args.TargetPlatforms,
			Status:             args.Status,
			Priority:           args.Priority,
			Description:        args.Description,
			ContentPreview:     args.ContentPreview,
			ExpectedEngagement: args.ExpectedEngagement,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMoveEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_entry",
		mcp.WithDescription("Reschedule an entry to another day. Conflicts do not block the move."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to move."),
		),
		mcp.WithString("target_date",
			mcp.Required(),
			mcp.Description("Destination day YYYY-MM-DD."),
		),
		mcp.WithNumber("version",
			mcp.Description("Expected current version; the move is rejected if it changed."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		target, err := request.RequireString("target_date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.MoveEntry(ctx, id, target, request.GetInt("version", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerBulkUpdateStatusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"bulk_update_status",
		mcp.WithDescription("Set one status on many entries. Unknown ids are reported as skipped."),
		mcp.WithArray("ids",
			mcp.Required(),
			mcp.Description("Entry identifiers to update."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("Status to apply."),
			mcp.Enum(statusNames()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			IDs    []string `json:"ids"`
			Status string   `json:"status"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		result, err := svc.BulkUpdateStatus(ctx, args.IDs, args.Status)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(result)
	})
}

func registerTransitionEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"transition_entry",
		mcp.WithDescription("Advance one entry along its lifecycle (planned, in_progress, ready, scheduled, published; or cancelled/failed)."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier."),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("Next status."),
			mcp.Enum(statusNames()...),
		),
		mcp.WithNumber("version",
			mcp.Description("Expected current version."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		status, err := request.RequireString("status")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.TransitionEntry(ctx, id, status, request.GetInt("version", 0))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search entries by text, status and platform."),
		mcp.WithString("query",
			mcp.Description("Case-insensitive text matched against title and preview."),
		),
		mcp.WithString("status",
			mcp.Description("Status filter, or all."),
		),
		mcp.WithString("platform",
			mcp.Description("Platform filter, or all."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		f := store.Filter{
			SearchTerm: request.GetString("query", ""),
			Status:     request.GetString("status", store.All),
			Platform:   request.GetString("platform", store.All),
		}
		limit := request.GetInt("limit", 20)
		results := svc.SearchEntries(ctx, f, limit)
		return toJSONResult(map[string]any{
			"filter":  f,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerCheckConflictsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"check_conflicts",
		mcp.WithDescription("List entries that would conflict with a new entry on the given day, slot and platforms."),
		mcp.WithString("calendar_date",
			mcp.Required(),
			mcp.Description("Day YYYY-MM-DD."),
		),
		mcp.WithString("time_slot",
			mcp.Required(),
			mcp.Description("24h HH:MM slot."),
		),
		mcp.WithArray("target_platforms",
			mcp.Description("Platforms to check; defaults to the configured platform."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			CalendarDate    string   `json:"calendar_date"`
			TimeSlot        string   `json:"time_slot"`
			TargetPlatforms []string `json:"target_platforms"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		hits, err := svc.CheckConflicts(ctx, args.CalendarDate, args.TimeSlot, args.TargetPlatforms)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"conflicts": hits,
			"count":     len(hits),
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
