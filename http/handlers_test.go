package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"arco-intel/domain"
	"arco-intel/repository"
	"arco-intel/service"
)

func newTestRouter(limiter *RateLimiter) http.Handler {
	reports := service.NewReportService(service.NewDomainAnalyzer(), repository.NewMemoryCache(0, 0), 2)
	calculator := service.NewROICalculator(service.DefaultCatalog())
	return NewRouter(Handlers{
		Analysis: NewAnalysisHandler(reports),
		ROI:      NewROIHandler(calculator, service.NewAIService("", "", "")),
		Tools:    NewToolHandler(reports, calculator),
		Limiter:  limiter,
	})
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAnalyzeDomainHandler_FreeTierHidesPremium(t *testing.T) {
	router := newTestRouter(nil)

	w := postJSON(t, router, "/analyze/domain", `{"domain":"example.com","tier":"free"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		domain.DomainAnalysisResult
		HiddenPremiumItems int `json:"hiddenPremiumItems"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Domain != "example.com" || resp.Performance.Score != 38 {
		t.Errorf("unexpected report: %+v", resp.DomainAnalysisResult)
	}
	for _, f := range resp.Security.Findings {
		if f.IsPremium {
			t.Errorf("premium finding leaked to free tier: %q", f.Issue)
		}
	}
	for _, r := range resp.Recommendations {
		if r.IsPremium {
			t.Errorf("premium recommendation leaked to free tier: %q", r.Title)
		}
	}
}

func TestAnalyzeDomainHandler_DefaultsToFree(t *testing.T) {
	router := newTestRouter(nil)

	w := postJSON(t, router, "/analyze/domain", `{"domain":"example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"tier":"free"`) {
		t.Errorf("expected free tier report, got %s", w.Body.String())
	}
}

func TestAnalyzeDomainHandler_InvalidDomain(t *testing.T) {
	router := newTestRouter(nil)

	w := postJSON(t, router, "/analyze/domain", `{"domain":"not a domain","tier":"free"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"field":"domain"`) {
		t.Errorf("expected field in error body, got %s", w.Body.String())
	}

	w = postJSON(t, router, "/analyze/domain", `{"domain":"example.com","tier":"gold"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown tier, got %d", w.Code)
	}
}

func TestAnalyzeDomainsHandler_Batch(t *testing.T) {
	router := newTestRouter(nil)

	w := postJSON(t, router, "/analyze/domains", `{"domains":["example.com","arco.digital","???"],"tier":"enterprise"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var batch service.BatchAnalysisResult
	if err := json.NewDecoder(w.Body).Decode(&batch); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(batch.Results) != 2 || len(batch.Errors) != 1 {
		t.Errorf("expected 2 results and 1 error, got %d and %d", len(batch.Results), len(batch.Errors))
	}
	if len(batch.Results) > 0 && len(batch.Results[0].Technologies) != 9 {
		t.Errorf("expected enterprise technology list, got %d", len(batch.Results[0].Technologies))
	}
}

func TestCalculateROIHandler_OK(t *testing.T) {
	router := newTestRouter(nil)

	body := `{
		"selectedIndustry": "ecommerce",
		"selectedCompanySize": "mid-market",
		"monthlyVisitors": 50000,
		"currentConversionRate": 2.4,
		"averageOrderValue": 120,
		"currentLoadTime": 4.2,
		"infraCost": 4500
	}`
	w := postJSON(t, router, "/roi/calculate?explain=true", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result domain.CalculationResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if result.ROI.ImplementationCost != 18000 {
		t.Errorf("expected implementation cost 18000, got %v", result.ROI.ImplementationCost)
	}
	if result.Explanation == "" {
		t.Errorf("expected explanation when explain=true")
	}
}

func TestCalculateROIHandler_Errors(t *testing.T) {
	router := newTestRouter(nil)

	w := postJSON(t, router, "/roi/calculate", `{"monthlyVisitors":-5,"currentConversionRate":2,"averageOrderValue":10,"currentLoadTime":3,"infraCost":0}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for negative visitors, got %d", w.Code)
	}

	w = postJSON(t, router, "/roi/calculate", `{invalid-json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/roi/calculate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/roi/calculate", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestReferenceTablesHandler(t *testing.T) {
	router := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/roi/industries", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var industries []domain.Industry
	if err := json.NewDecoder(w.Body).Decode(&industries); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(industries) != 4 || industries[0].ID != "ecommerce" {
		t.Errorf("unexpected industries: %+v", industries)
	}

	req = httptest.NewRequest(http.MethodGet, "/roi/company-sizes", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var sizes []domain.CompanySize
	if err := json.NewDecoder(w.Body).Decode(&sizes); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(sizes) != 3 {
		t.Errorf("expected 3 company sizes, got %d", len(sizes))
	}
}

func TestRateLimitMiddleware_Rejects(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute)
	defer limiter.Stop()
	router := newTestRouter(limiter)

	body := `{"domain":"example.com"}`
	if w := postJSON(t, router, "/analyze/domain", body); w.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", w.Code)
	}
	w := postJSON(t, router, "/analyze/domain", body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Errorf("expected Retry-After header")
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("health check must not be rate limited, got %d", rec.Code)
	}
}
