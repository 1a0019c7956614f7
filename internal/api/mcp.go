package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nvoss/eras/internal/selection"
	"github.com/nvoss/eras/internal/storage"
)

// NewMCPServer creates an MCP server exposing the reading feed as tools, so
// an agent can page through passages and report back what was read.
func NewMCPServer(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"eras",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("eras — a history reading feed. Draw passages with next_passage, then report the outcome with record_interaction so future draws follow the reader's taste."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("next_passage",
			mcp.WithDescription("Draw the next history passage, weighted by the reader's period preferences."),
		),
		mcpNextPassage(deps),
	)

	s.AddTool(
		mcp.NewTool("record_interaction",
			mcp.WithDescription("Record whether a served passage was fully read and for how long."),
			mcp.WithString("content_id", mcp.Description("ID of the served passage"), mcp.Required()),
			mcp.WithBoolean("fully_read", mcp.Description("Whether the passage was read to the end"), mcp.Required()),
			mcp.WithNumber("seconds", mcp.Description("Reading time in seconds (default 0)")),
		),
		mcpRecordInteraction(deps),
	)

	s.AddTool(
		mcp.NewTool("library_stats",
			mcp.WithDescription("Report catalog size and interaction totals."),
		),
		mcpLibraryStats(deps),
	)

	return s
}

func mcpNextPassage(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		unit, err := deps.Selector.Next()
		if errors.Is(err, selection.ErrNoContent) {
			return mcpError("the catalog is empty; run `eras fetch` first"), nil
		}
		if err != nil {
			return mcpError(fmt.Sprintf("selection failed: %v", err)), nil
		}

		payload, err := json.Marshal(ContentResponse{
			ID:        unit.ID,
			Topic:     unit.Period.Label(),
			Title:     unit.Title,
			Content:   unit.Body,
			WordCount: unit.WordCount,
			Score:     unit.Score,
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to encode passage: %v", err)), nil
		}
		return mcpText(string(payload)), nil
	}
}

func mcpRecordInteraction(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		contentID, err := req.RequireString("content_id")
		if err != nil {
			return mcpError("content_id is required"), nil
		}
		fullyRead, err := req.RequireBool("fully_read")
		if err != nil {
			return mcpError("fully_read is required"), nil
		}
		seconds := req.GetInt("seconds", 0)

		if err := deps.Recorder.Record(contentID, fullyRead, seconds); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return mcpError(fmt.Sprintf("unknown content id %q", contentID)), nil
			}
			return mcpError(err.Error()), nil
		}
		return mcpText("recorded"), nil
	}
}

func mcpLibraryStats(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		units, err := deps.Store.CountUnits()
		if err != nil {
			return mcpError(fmt.Sprintf("counting content: %v", err)), nil
		}
		events, err := deps.Store.CountEvents()
		if err != nil {
			return mcpError(fmt.Sprintf("counting interactions: %v", err)), nil
		}

		payload, err := json.Marshal(StatsResponse{
			TotalContent:      units,
			TotalInteractions: events,
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to encode stats: %v", err)), nil
		}
		return mcpText(string(payload)), nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
