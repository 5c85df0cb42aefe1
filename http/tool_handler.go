package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"arco-intel/domain"
	"arco-intel/service"
)

// ToolHandler exposes the calculators in the Model Context Protocol tool
// shape: results travel as JSON text inside a content envelope.
type ToolHandler struct {
	reports    *service.ReportService
	calculator *service.ROICalculator
}

func NewToolHandler(reports *service.ReportService, calculator *service.ROICalculator) *ToolHandler {
	return &ToolHandler{reports: reports, calculator: calculator}
}

type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type ToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type ToolResult struct {
	Content []ToolContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

type toolCallRequest struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

const (
	toolAnalyzeDomain = "analyze_domain"
	toolCalculateROI  = "calculate_roi"
)

var toolDefinitions = []ToolDefinition{
	{
		Name:        toolAnalyzeDomain,
		Description: "Deterministic technology, performance, security and SEO preview for a domain.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"domain": map[string]any{"type": "string"},
				"tier":   map[string]any{"type": "string", "enum": []string{"free", "premium", "enterprise"}},
			},
			"required": []string{"domain"},
		},
	},
	{
		Name:        toolCalculateROI,
		Description: "Projected revenue uplift, infrastructure savings and payback for performance work.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"selectedIndustry":      map[string]any{"type": "string"},
				"selectedCompanySize":   map[string]any{"type": "string"},
				"monthlyVisitors":       map[string]any{"type": "number", "minimum": 0},
				"currentConversionRate": map[string]any{"type": "number", "minimum": 0, "maximum": 100},
				"averageOrderValue":     map[string]any{"type": "number", "minimum": 0},
				"currentLoadTime":       map[string]any{"type": "number", "exclusiveMinimum": 0},
				"infraCost":             map[string]any{"type": "number", "minimum": 0},
			},
			"required": []string{"monthlyVisitors", "currentConversionRate", "averageOrderValue", "currentLoadTime", "infraCost"},
		},
	},
}

func (h *ToolHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": toolDefinitions})
}

func (h *ToolHandler) CallTool(w http.ResponseWriter, r *http.Request) {
	var req toolCallRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var (
		payload any
		err     error
	)
	switch req.Name {
	case toolAnalyzeDomain:
		payload, err = h.analyzeDomain(r.Context(), req.Arguments)
	case toolCalculateROI:
		payload, err = h.calculateROI(req.Arguments)
	default:
		err = fmt.Errorf("unknown tool %q", req.Name)
	}

	// Tool failures, including unknown names, travel in the envelope.
	if err != nil {
		writeJSON(w, http.StatusOK, ToolResult{
			Content: []ToolContent{{Type: "text", Text: err.Error()}},
			IsError: true,
		})
		return
	}

	text, err := json.Marshal(payload)
	if err != nil {
		writeError(w, fmt.Errorf("encode %s result: %w", req.Name, err))
		return
	}
	writeJSON(w, http.StatusOK, ToolResult{
		Content: []ToolContent{{Type: "text", Text: string(text)}},
	})
}

func decodeArguments(raw json.RawMessage, v any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &service.ValidationError{Field: "arguments", Reason: err.Error()}
	}
	return nil
}

func (h *ToolHandler) analyzeDomain(ctx context.Context, raw json.RawMessage) (domain.DomainAnalysisResult, error) {
	var args analyzeRequest
	if err := decodeArguments(raw, &args); err != nil {
		return domain.DomainAnalysisResult{}, err
	}
	tier, err := parseTier(args.Tier)
	if err != nil {
		return domain.DomainAnalysisResult{}, err
	}
	result, err := h.reports.Analyze(ctx, args.Domain, tier)
	if err != nil {
		return domain.DomainAnalysisResult{}, err
	}
	return result.VisibleTo(tier), nil
}

func (h *ToolHandler) calculateROI(raw json.RawMessage) (domain.CalculationResult, error) {
	var input domain.CalculatorInput
	if err := decodeArguments(raw, &input); err != nil {
		return domain.CalculationResult{}, err
	}
	return h.calculator.Calculate(input)
}
