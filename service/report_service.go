package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"arco-intel/domain"
	"arco-intel/repository"
)

const cacheKeyVersion = "v1"

type BatchItemError struct {
	Domain string `json:"domain"`
	Error  string `json:"error"`
}

type BatchAnalysisResult struct {
	BatchID string                        `json:"batchId"`
	Tier    domain.Tier                   `json:"tier"`
	Results []domain.DomainAnalysisResult `json:"results"`
	Errors  []BatchItemError              `json:"errors,omitempty"`
}

// ReportService memoises domain reports in a cache. Reports are fully
// determined by (domain, tier), so cached entries never go stale.
type ReportService struct {
	analyzer    *DomainAnalyzer
	cache       repository.CacheRepository
	concurrency int
}

func NewReportService(analyzer *DomainAnalyzer,
	cache repository.CacheRepository,
	concurrency int,
) *ReportService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &ReportService{analyzer: analyzer, cache: cache, concurrency: concurrency}
}

func cacheKey(name string, tier domain.Tier) string {
	return fmt.Sprintf("domain-analysis:%s:%s:%s", cacheKeyVersion, tier, name)
}

// Analyze returns the full (unfiltered) report for rawDomain.
func (s *ReportService) Analyze(
	ctx context.Context,
	rawDomain string,
	tier domain.Tier,
) (domain.DomainAnalysisResult, error) {
	name, _, err := NormalizeDomain(rawDomain)
	if err != nil {
		return domain.DomainAnalysisResult{}, err
	}

	key := cacheKey(name, tier)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.DomainAnalysisResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return result, nil
		}
		log.Printf("Warning: discarding unreadable cache entry %s", key)
	}

	result, err := s.analyzer.Analyze(name, tier)
	if err != nil {
		return domain.DomainAnalysisResult{}, err
	}

	// Caching is best effort.
	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(data)); err != nil {
			log.Printf("Warning: failed to cache analysis for %s: %v", name, err)
		}
	}
	return result, nil
}

// AnalyzeBatch analyses every domain concurrently. Invalid domains are
// reported per item; only cancellation aborts the whole batch.
func (s *ReportService) AnalyzeBatch(
	ctx context.Context,
	domains []string,
	tier domain.Tier,
) (BatchAnalysisResult, error) {
	if len(domains) == 0 {
		return BatchAnalysisResult{}, invalid("domains", "must not be empty")
	}
	if len(domains) > MaxBatchDomains {
		return BatchAnalysisResult{}, invalid("domains", "exceeds the maximum of %d per batch", MaxBatchDomains)
	}
	if _, err := domain.ParseTier(string(tier)); err != nil {
		return BatchAnalysisResult{}, invalid("tier", "%q is not one of free, premium, enterprise", tier)
	}

	results := make([]*domain.DomainAnalysisResult, len(domains))
	failures := make([]error, len(domains))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, d := range domains {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := s.Analyze(gctx, d, tier)
			if err != nil {
				var verr *ValidationError
				if errors.As(err, &verr) {
					failures[i] = err
					return nil
				}
				return err
			}
			results[i] = &r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchAnalysisResult{}, err
	}

	out := BatchAnalysisResult{
		BatchID: uuid.NewString(),
		Tier:    tier,
		Results: make([]domain.DomainAnalysisResult, 0, len(domains)),
	}
	for i, r := range results {
		if r != nil {
			out.Results = append(out.Results, *r)
			continue
		}
		out.Errors = append(out.Errors, BatchItemError{Domain: domains[i], Error: failures[i].Error()})
	}
	return out, nil
}
