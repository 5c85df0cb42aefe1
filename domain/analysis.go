package domain

import "fmt"

type Tier string

const (
	TierFree       Tier = "free"
	TierPremium    Tier = "premium"
	TierEnterprise Tier = "enterprise"
)

// ParseTier accepts only the three known subscription levels.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierFree, TierPremium, TierEnterprise:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

type TechnologyCategory string

const (
	CategoryFrontend       TechnologyCategory = "frontend"
	CategoryBackend        TechnologyCategory = "backend"
	CategoryDatabase       TechnologyCategory = "database"
	CategoryInfrastructure TechnologyCategory = "infrastructure"
	CategoryAnalytics      TechnologyCategory = "analytics"
)

type Technology struct {
	Name     string             `json:"name"`
	Category TechnologyCategory `json:"category"`
}

type Rating string

const (
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs-improvement"
	RatingPoor             Rating = "poor"
)

type PerformanceMetric struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Rating Rating `json:"rating"`
}

type Performance struct {
	Score   int                 `json:"score"`
	Metrics []PerformanceMetric `json:"metrics"`
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type SecurityFinding struct {
	Severity  Severity `json:"severity"`
	Issue     string   `json:"issue"`
	Impact    string   `json:"impact"`
	IsPremium bool     `json:"isPremium"`
}

type Security struct {
	Score    int               `json:"score"`
	Findings []SecurityFinding `json:"findings"`
}

type SEOIssue struct {
	Description string `json:"description"`
	IsPremium   bool   `json:"isPremium"`
}

type SEO struct {
	Score  int        `json:"score"`
	Issues []SEOIssue `json:"issues"`
}

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyComplex  Difficulty = "complex"
)

type Recommendation struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Impact      string     `json:"impact"`
	Difficulty  Difficulty `json:"difficulty"`
	IsPremium   bool       `json:"isPremium"`
}

type DomainAnalysisResult struct {
	Domain            string           `json:"domain"`
	RegistrableDomain string           `json:"registrableDomain,omitempty"`
	Tier              Tier             `json:"tier"`
	Technologies      []Technology     `json:"technologies"`
	Performance       Performance      `json:"performance"`
	Security          Security         `json:"security"`
	SEO               SEO              `json:"seo"`
	Recommendations   []Recommendation `json:"recommendations"`
}

// VisibleTo returns a copy of the report with premium-only entries removed
// when the viewer is on the free tier. The receiver is never modified.
func (r DomainAnalysisResult) VisibleTo(tier Tier) DomainAnalysisResult {
	out := r
	out.Technologies = append([]Technology(nil), r.Technologies...)
	out.Performance.Metrics = append([]PerformanceMetric(nil), r.Performance.Metrics...)

	if tier != TierFree {
		out.Security.Findings = append([]SecurityFinding(nil), r.Security.Findings...)
		out.SEO.Issues = append([]SEOIssue(nil), r.SEO.Issues...)
		out.Recommendations = append([]Recommendation(nil), r.Recommendations...)
		return out
	}

	out.Security.Findings = []SecurityFinding{}
	for _, f := range r.Security.Findings {
		if !f.IsPremium {
			out.Security.Findings = append(out.Security.Findings, f)
		}
	}
	out.SEO.Issues = []SEOIssue{}
	for _, i := range r.SEO.Issues {
		if !i.IsPremium {
			out.SEO.Issues = append(out.SEO.Issues, i)
		}
	}
	out.Recommendations = []Recommendation{}
	for _, rec := range r.Recommendations {
		if !rec.IsPremium {
			out.Recommendations = append(out.Recommendations, rec)
		}
	}
	return out
}

// HiddenCount reports how many entries VisibleTo(tier) would withhold.
func (r DomainAnalysisResult) HiddenCount(tier Tier) int {
	if tier != TierFree {
		return 0
	}
	n := 0
	for _, f := range r.Security.Findings {
		if f.IsPremium {
			n++
		}
	}
	for _, i := range r.SEO.Issues {
		if i.IsPremium {
			n++
		}
	}
	for _, rec := range r.Recommendations {
		if rec.IsPremium {
			n++
		}
	}
	return n
}
