// Package mcp exposes the capacity and pagination queries as MCP tools.
package mcp

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gompdf/worksheet/internal/quran"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

var toolRegistry = map[string]toolEntry{
	"worksheet_estimate": {
		def:     estimateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleEstimate },
	},
	"worksheet_would_activity_overflow": {
		def:     activityOverflowToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleActivityOverflow },
	},
	"worksheet_would_ayahs_overflow": {
		def:     ayahsOverflowToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAyahsOverflow },
	},
	"worksheet_max_verses": {
		def:     maxVersesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMaxVerses },
	},
	"worksheet_paginate": {
		def:     paginateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePaginate },
	},
	"worksheet_surahs": {
		def:     surahsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSurahs },
	},
}

// AllToolNames returns the registered tool names, sorted.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewServer creates an MCP server with every worksheet tool registered.
func NewServer(repo quran.Repository, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"worksheet",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(repo)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// Run starts the MCP server using stdio transport.
func Run(repo quran.Repository, version string) error {
	return server.ServeStdio(NewServer(repo, version))
}
