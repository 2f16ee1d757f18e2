package mcp

import "github.com/mark3labs/mcp-go/mcp"

var activityItems = mcp.Items(map[string]any{"type": "string"})

var estimateToolDef = mcp.NewTool("worksheet_estimate",
	mcp.WithDescription("Estimate how much of one A4 worksheet page the activities fill for a verse range."),
	mcp.WithArray("activities", mcp.Required(), activityItems, mcp.Description("Activity types, e.g. tracing, mcq_meaning")),
	mcp.WithNumber("surah", mcp.Required(), mcp.Description("Surah number")),
	mcp.WithNumber("from", mcp.Description("First verse (default 1)")),
	mcp.WithNumber("to", mcp.Description("Last verse (default last verse of the surah)")),
)

var activityOverflowToolDef = mcp.NewTool("worksheet_would_activity_overflow",
	mcp.WithDescription("Report whether adding one activity would overflow the page."),
	mcp.WithArray("current", activityItems, mcp.Description("Activities already on the page")),
	mcp.WithString("candidate", mcp.Required(), mcp.Description("Activity to add")),
	mcp.WithNumber("surah", mcp.Required(), mcp.Description("Surah number")),
	mcp.WithNumber("from", mcp.Description("First verse")),
	mcp.WithNumber("to", mcp.Description("Last verse")),
	mcp.WithBoolean("raw", mcp.Description("Cost the candidate per verse instead of per layout unit")),
)

var ayahsOverflowToolDef = mcp.NewTool("worksheet_would_ayahs_overflow",
	mcp.WithDescription("Report whether adding verses to the selection would fill the page."),
	mcp.WithArray("activities", mcp.Required(), activityItems),
	mcp.WithNumber("current_count", mcp.Required(), mcp.Description("Verses currently selected")),
	mcp.WithNumber("additional_count", mcp.Required(), mcp.Description("Verses to add")),
)

var maxVersesToolDef = mcp.NewTool("worksheet_max_verses",
	mcp.WithDescription("Largest verse count that fits one page for the activities."),
	mcp.WithArray("activities", activityItems),
)

var paginateToolDef = mcp.NewTool("worksheet_paginate",
	mcp.WithDescription("List the pages a worksheet would be split into."),
	mcp.WithArray("activities", mcp.Required(), activityItems),
	mcp.WithNumber("surah", mcp.Required(), mcp.Description("Surah number")),
	mcp.WithNumber("from", mcp.Description("First verse (default 1)")),
	mcp.WithNumber("to", mcp.Description("Last verse (default last verse of the surah)")),
	mcp.WithString("mode", mcp.Enum("single_activity_per_page", "compact")),
	mcp.WithBoolean("include_answer_key"),
)

var surahsToolDef = mcp.NewTool("worksheet_surahs",
	mcp.WithDescription("List the available surahs in display order."),
)
