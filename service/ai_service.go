package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"arco-intel/domain"
)

const (
	DefaultAIURL   = "https://api.openai.com/v1/chat/completions"
	DefaultAIModel = "gpt-4o-mini"
)

// AIService writes a short executive narrative for an ROI result. Without an
// API key, or when the call fails, it falls back to a template.
type AIService struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewAIService(apiKey, apiURL, model string) *AIService {
	if apiURL == "" {
		apiURL = DefaultAIURL
	}
	if model == "" {
		model = DefaultAIModel
	}
	return &AIService{
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   model,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *AIService) Enabled() bool {
	return s.enabled
}

// ExplainROI never fails; the template text is always available.
func (s *AIService) ExplainROI(
	ctx context.Context,
	input domain.CalculatorInput,
	result domain.CalculationResult,
) string {
	if !s.enabled {
		return FallbackROIExplanation(result)
	}

	prompt := fmt.Sprintf(`Summarise this web performance ROI projection for an executive audience.

CURRENT STATE:
- Monthly visitors: %s
- Conversion rate: %.2f%%
- Load time: %.1fs
- Annual revenue: %s

PROJECTION:
- Conversion rate after optimisation: %.2f%%
- Load time after optimisation: %.1fs
- Additional annual revenue: %s
- Infrastructure savings per year: %s
- Implementation cost: %s over %d weeks
- Payback period: %s
- Three-year return: %s

Write 3-4 sentences. Be concrete with the numbers and avoid hype.`,
		FormatNumber(input.MonthlyVisitors),
		result.CurrentMetrics.ConversionRate,
		result.CurrentMetrics.LoadTime,
		FormatCurrency(result.CurrentMetrics.AnnualRevenue),
		result.ProjectedMetrics.ConversionRate,
		result.ProjectedMetrics.LoadTime,
		FormatCurrency(result.ProjectedMetrics.AdditionalRevenue),
		FormatCurrency(result.ProjectedMetrics.InfraSavings),
		FormatCurrency(result.ROI.ImplementationCost),
		result.ROI.ImplementationTimeWeeks,
		describePayback(result.ROI.PaybackPeriodMonths),
		FormatCurrency(result.ROI.ThreeYearReturn),
	)

	explanation, err := s.callLLM(ctx, prompt)
	if err != nil {
		log.Printf("Error calling AI service for ROI explanation: %v", err)
		return FallbackROIExplanation(result)
	}
	return explanation
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a digital performance consultant. You explain ROI projections clearly and conservatively, always quoting the figures you are given.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("no response from AI")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// FallbackROIExplanation is the deterministic narrative used when no model
// is configured.
func FallbackROIExplanation(result domain.CalculationResult) string {
	benefit := result.ProjectedMetrics.TotalAnnualBenefit
	if benefit <= 0 {
		return fmt.Sprintf(
			"With the current inputs the optimisation does not produce a measurable annual benefit, so the %s implementation cost would not be recovered. Review the traffic and conversion figures before deciding.",
			FormatCurrency(result.ROI.ImplementationCost),
		)
	}
	return fmt.Sprintf(
		"Cutting load time from %.1fs to %.1fs is projected to add %s in annual revenue and save %s in infrastructure, a total benefit of %s per year. The %s implementation pays for itself in %s and returns %s over three years. Every day without it costs roughly %s.",
		result.CurrentMetrics.LoadTime,
		result.ProjectedMetrics.LoadTime,
		FormatCurrency(result.ProjectedMetrics.AdditionalRevenue),
		FormatCurrency(result.ProjectedMetrics.InfraSavings),
		FormatCurrency(benefit),
		FormatCurrency(result.ROI.ImplementationCost),
		describePayback(result.ROI.PaybackPeriodMonths),
		FormatCurrency(result.ROI.ThreeYearReturn),
		FormatCurrency(result.ROI.CostOfInactionDaily),
	)
}

func describePayback(p domain.PaybackMonths) string {
	if p.Unbounded() {
		return "never (no annual benefit)"
	}
	return fmt.Sprintf("%.1f months", float64(p))
}
