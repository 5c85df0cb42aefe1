package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Analysis *AnalysisHandler
	ROI      *ROIHandler
	Tools    *ToolHandler
	Limiter  *RateLimiter
}

// NewRouter mounts every endpoint. Only the computation routes are rate
// limited; reference tables and health checks are not.
func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/roi/industries", h.ROI.Industries)
	r.Get("/roi/company-sizes", h.ROI.CompanySizes)
	r.Get("/mcp/tools", h.Tools.ListTools)

	r.Group(func(r chi.Router) {
		if h.Limiter != nil {
			r.Use(RateLimitMiddleware(h.Limiter))
		}
		r.Post("/analyze/domain", h.Analysis.AnalyzeDomain)
		r.Post("/analyze/domains", h.Analysis.AnalyzeDomains)
		r.Post("/roi/calculate", h.ROI.Calculate)
		r.Post("/mcp/tools/call", h.Tools.CallTool)
	})

	return r
}
