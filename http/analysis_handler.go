package http

import (
	"net/http"

	"arco-intel/domain"
	"arco-intel/service"
)

type AnalysisHandler struct {
	reports *service.ReportService
}

func NewAnalysisHandler(reports *service.ReportService) *AnalysisHandler {
	return &AnalysisHandler{reports: reports}
}

type analyzeRequest struct {
	Domain string `json:"domain"`
	Tier   string `json:"tier"`
}

type batchAnalyzeRequest struct {
	Domains []string `json:"domains"`
	Tier    string   `json:"tier"`
}

type analyzeResponse struct {
	domain.DomainAnalysisResult
	HiddenPremiumItems int `json:"hiddenPremiumItems"`
}

// parseTier treats a missing tier as free.
func parseTier(raw string) (domain.Tier, error) {
	if raw == "" {
		return domain.TierFree, nil
	}
	tier, err := domain.ParseTier(raw)
	if err != nil {
		return "", &service.ValidationError{Field: "tier", Reason: err.Error()}
	}
	return tier, nil
}

func (h *AnalysisHandler) AnalyzeDomain(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tier, err := parseTier(req.Tier)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.reports.Analyze(r.Context(), req.Domain, tier)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		DomainAnalysisResult: result.VisibleTo(tier),
		HiddenPremiumItems:   result.HiddenCount(tier),
	})
}

func (h *AnalysisHandler) AnalyzeDomains(w http.ResponseWriter, r *http.Request) {
	var req batchAnalyzeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tier, err := parseTier(req.Tier)
	if err != nil {
		writeError(w, err)
		return
	}

	batch, err := h.reports.AnalyzeBatch(r.Context(), req.Domains, tier)
	if err != nil {
		writeError(w, err)
		return
	}
	for i := range batch.Results {
		batch.Results[i] = batch.Results[i].VisibleTo(tier)
	}
	writeJSON(w, http.StatusOK, batch)
}
