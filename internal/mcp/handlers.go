package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gompdf/worksheet/internal/activity"
	"github.com/gompdf/worksheet/internal/capacity"
	"github.com/gompdf/worksheet/internal/errors"
	"github.com/gompdf/worksheet/internal/pagination"
	"github.com/gompdf/worksheet/internal/quran"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	repo quran.Repository
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(repo quran.Repository) *Handlers {
	return &Handlers{repo: repo}
}

// EstimateRequest represents the arguments for worksheet_estimate.
type EstimateRequest struct {
	Activities []activity.Type `json:"activities"`
	Surah      int             `json:"surah"`
	From       int             `json:"from,omitempty"`
	To         int             `json:"to,omitempty"`
}

// EstimateResponse is the estimate plus its meter summary.
type EstimateResponse struct {
	capacity.Estimation
	Meter capacity.Meter `json:"meter"`
	Range quran.Range    `json:"range"`
}

// ActivityOverflowRequest represents the arguments for worksheet_would_activity_overflow.
type ActivityOverflowRequest struct {
	Current   []activity.Type `json:"current,omitempty"`
	Candidate activity.Type   `json:"candidate"`
	Surah     int             `json:"surah"`
	From      int             `json:"from,omitempty"`
	To        int             `json:"to,omitempty"`
	Raw       bool            `json:"raw,omitempty"`
}

// AyahsOverflowRequest represents the arguments for worksheet_would_ayahs_overflow.
type AyahsOverflowRequest struct {
	Activities      []activity.Type `json:"activities"`
	CurrentCount    int             `json:"current_count"`
	AdditionalCount int             `json:"additional_count"`
}

// MaxVersesRequest represents the arguments for worksheet_max_verses.
type MaxVersesRequest struct {
	Activities []activity.Type `json:"activities"`
}

// PaginateRequest represents the arguments for worksheet_paginate.
type PaginateRequest struct {
	Activities       []activity.Type `json:"activities"`
	Surah            int             `json:"surah"`
	From             int             `json:"from,omitempty"`
	To               int             `json:"to,omitempty"`
	Mode             string          `json:"mode,omitempty"`
	IncludeAnswerKey *bool           `json:"include_answer_key,omitempty"`
}

// PageOutput describes one page of worksheet_paginate.
type PageOutput struct {
	Number     int             `json:"number"`
	Kind       string          `json:"kind"`
	Title      string          `json:"title,omitempty"`
	Activities []activity.Type `json:"activities"`
	Range      quran.Range     `json:"range"`
	Footer     string          `json:"footer"`
}

// SurahOutput is one row of worksheet_surahs.
type SurahOutput struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Latin  string `json:"latin"`
	Ayahs  int    `json:"ayahs"`
}

// Handler implementations

// HandleEstimate handles the worksheet_estimate tool call.
func (h *Handlers) HandleEstimate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[EstimateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	verses, rng, err := h.verses(input.Surah, input.From, input.To)
	if err != nil {
		return errorResult(err), nil
	}

	est := capacity.EstimatePageHeight(normalized(input.Activities), verses)
	return successResult(EstimateResponse{Estimation: est, Meter: capacity.NewMeter(est), Range: rng})
}

// HandleActivityOverflow handles the worksheet_would_activity_overflow tool call.
func (h *Handlers) HandleActivityOverflow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ActivityOverflowRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Candidate == "" {
		return errorResult(errors.NewInvalidRequest("candidate is required")), nil
	}

	verses, _, err := h.verses(input.Surah, input.From, input.To)
	if err != nil {
		return errorResult(err), nil
	}

	current := normalized(input.Current)
	overflow := capacity.WouldActivityOverflow(current, input.Candidate, verses)
	if input.Raw {
		overflow = capacity.WouldActivityOverflowRaw(current, input.Candidate, verses)
	}
	return successResult(map[string]any{"overflow": overflow})
}

// HandleAyahsOverflow handles the worksheet_would_ayahs_overflow tool call.
func (h *Handlers) HandleAyahsOverflow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AyahsOverflowRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	overflow := capacity.WouldAyahsOverflow(normalized(input.Activities), input.CurrentCount, input.AdditionalCount)
	return successResult(map[string]any{"overflow": overflow})
}

// HandleMaxVerses handles the worksheet_max_verses tool call.
func (h *Handlers) HandleMaxVerses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[MaxVersesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	return successResult(map[string]any{"max_verses": capacity.MaxUnitsForActivities(normalized(input.Activities))})
}

// HandlePaginate handles the worksheet_paginate tool call.
func (h *Handlers) HandlePaginate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PaginateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	engine := pagination.NewEngine()
	opts := engine.Options()
	if input.Mode != "" {
		mode, err := pagination.ParseMode(input.Mode)
		if err != nil {
			return errorResult(errors.NewInvalidRequest(err.Error())), nil
		}
		opts.Mode = mode
	}
	if input.IncludeAnswerKey != nil {
		opts.IncludeAnswerKey = *input.IncludeAnswerKey
	}
	engine.SetOptions(opts)

	_, rng, err := h.verses(input.Surah, input.From, input.To)
	if err != nil {
		return errorResult(err), nil
	}
	doc := engine.Paginate(normalized(input.Activities), rng)
	pages := doc.Pages()
	out := make([]PageOutput, 0, len(pages))
	for i, p := range pages {
		out = append(out, PageOutput{
			Number:     i + 1,
			Kind:       p.Kind.String(),
			Title:      p.Title,
			Activities: p.Activities,
			Range:      p.Range,
			Footer:     pagination.Footer(i+1, len(pages)),
		})
	}
	return successResult(map[string]any{"pages": out, "total": len(out)})
}

// HandleSurahs handles the worksheet_surahs tool call.
func (h *Handlers) HandleSurahs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	surahs := quran.Ordered(h.repo)
	out := make([]SurahOutput, 0, len(surahs))
	for _, s := range surahs {
		out = append(out, SurahOutput{Number: s.Number, Name: s.Name, Latin: s.Latin, Ayahs: len(s.Verses)})
	}
	return successResult(map[string]any{"surahs": out})
}

// verses resolves a surah and a verse range. Zero bounds default to the
// whole surah.
// normalized drops repeated activities, keeping first occurrences in order.
func normalized(list []activity.Type) []activity.Type {
	return activity.Selection(list).Normalize()
}

func (h *Handlers) verses(surah, from, to int) ([]quran.Verse, quran.Range, error) {
	s, err := h.repo.Surah(surah)
	if err != nil {
		return nil, quran.Range{}, err
	}
	if from == 0 {
		from = 1
	}
	if to == 0 {
		to = s.Len()
	}
	rng := quran.NormalizeRange(from, to, s.Len())
	return s.Slice(rng), rng, nil
}

// errorResult creates an MCP error result from a worksheet error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if wErr, ok := err.(*errors.WorksheetError); ok {
		errorObj := map[string]any{
			"code":    wErr.Code,
			"message": wErr.Message,
			"status":  wErr.Status,
		}
		if wErr.Code != errors.ErrInternal && wErr.Details != nil {
			errorObj["details"] = wErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
