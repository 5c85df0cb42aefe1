package service

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"

	"arco-intel/domain"
)

// The final label is alphabetic or an IDN punycode label (xn--...).
var hostnamePattern = regexp.MustCompile(`^(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+(?:[a-z]{2,63}|xn--[a-z0-9-]{1,59})$`)

// Per-list salts keep the three shuffles independent for the same seed.
const (
	findingsSalt        uint64 = 0x5ec0
	seoIssuesSalt       uint64 = 0x5e00
	recommendationsSalt uint64 = 0x7ec0
)

type scoreRange struct {
	floor, span int
}

var (
	performanceRange = scoreRange{floor: 30, span: 65}
	securityRange    = scoreRange{floor: 40, span: 55}
	seoRange         = scoreRange{floor: 45, span: 50}
)

func (r scoreRange) score(seed int) int {
	return r.floor + seed%r.span
}

type techPick struct {
	list   []string
	cat    domain.TechnologyCategory
	offset int
}

var (
	frontendTechnologies       = []string{"React", "Angular", "Vue.js", "Next.js", "jQuery", "Bootstrap", "Tailwind CSS"}
	backendTechnologies        = []string{"Node.js", "PHP", "Python", "Ruby on Rails", "Java", "ASP.NET", "Laravel"}
	databaseTechnologies       = []string{"MySQL", "PostgreSQL", "MongoDB", "Redis", "SQL Server"}
	infrastructureTechnologies = []string{"AWS", "Azure", "Google Cloud", "Cloudflare", "Nginx", "Apache", "Docker"}
	analyticsTechnologies      = []string{"Google Analytics", "Segment", "Mixpanel", "Hotjar"}
)

var (
	basePicks = []techPick{
		{frontendTechnologies, domain.CategoryFrontend, 0},
		{backendTechnologies, domain.CategoryBackend, 3},
		{databaseTechnologies, domain.CategoryDatabase, 7},
		{infrastructureTechnologies, domain.CategoryInfrastructure, 5},
		{analyticsTechnologies, domain.CategoryAnalytics, 2},
	}
	premiumPicks = []techPick{
		{frontendTechnologies, domain.CategoryFrontend, 11},
		{infrastructureTechnologies, domain.CategoryInfrastructure, 13},
	}
	enterprisePicks = []techPick{
		{backendTechnologies, domain.CategoryBackend, 17},
		{databaseTechnologies, domain.CategoryDatabase, 19},
	}
)

var securityFindingCandidates = []domain.SecurityFinding{
	{
		Severity:  domain.SeverityMedium,
		Issue:     "Missing Content Security Policy",
		Impact:    "Increases risk of XSS attacks and data theft",
		IsPremium: false,
	},
	{
		Severity:  domain.SeverityLow,
		Issue:     "Outdated SSL/TLS Configuration",
		Impact:    "Vulnerable to known exploits in older protocol versions",
		IsPremium: false,
	},
	{
		Severity:  domain.SeverityHigh,
		Issue:     "Exposed API Keys in Frontend Code",
		Impact:    "Credentials may be extracted and misused by attackers",
		IsPremium: true,
	},
	{
		Severity:  domain.SeverityCritical,
		Issue:     "Cross-Site Scripting Vulnerability",
		Impact:    "High risk of data theft and session hijacking",
		IsPremium: true,
	},
	{
		Severity:  domain.SeverityMedium,
		Issue:     "Insecure Cookie Configuration",
		Impact:    "Cookies accessible via JavaScript and non-HTTPS connections",
		IsPremium: true,
	},
}

var seoIssueCandidates = []domain.SEOIssue{
	{Description: "Missing meta descriptions on key pages", IsPremium: false},
	{Description: "Duplicate title tags found on multiple pages", IsPremium: false},
	{Description: "Slow page load times affecting search rankings", IsPremium: true},
	{Description: "Mobile usability issues detected", IsPremium: true},
	{Description: "Missing alt text on 23 images", IsPremium: true},
}

var recommendationCandidates = []domain.Recommendation{
	{
		Title:       "Implement Content Delivery Network (CDN)",
		Description: "Deploy a CDN to cache static assets closer to users and reduce load times.",
		Impact:      "Reduce page load time by 35-45%",
		Difficulty:  domain.DifficultyEasy,
		IsPremium:   false,
	},
	{
		Title:       "Optimize Images and Implement WebP Format",
		Description: "Compress images and convert to WebP format to reduce page weight.",
		Impact:      "Reduce page size by 30-40%, improve LCP by 0.8s",
		Difficulty:  domain.DifficultyEasy,
		IsPremium:   true,
	},
	{
		Title:       "Implement Server-Side Rendering for Critical Content",
		Description: "Convert client-rendered components to server-rendered for faster initial load.",
		Impact:      "Improve First Contentful Paint by 50-65%",
		Difficulty:  domain.DifficultyModerate,
		IsPremium:   true,
	},
	{
		Title:       "Implement Proper Content Security Policy",
		Description: "Add robust CSP headers to prevent XSS attacks and improve security posture.",
		Impact:      "Mitigate 75% of potential XSS vulnerabilities",
		Difficulty:  domain.DifficultyModerate,
		IsPremium:   true,
	},
}

// DomainAnalyzer derives a synthetic, reproducible report from a domain
// name. It holds no state and is safe for concurrent use.
type DomainAnalyzer struct{}

func NewDomainAnalyzer() *DomainAnalyzer {
	return &DomainAnalyzer{}
}

// NormalizeDomain lowercases and trims the input and checks it is a
// registrable hostname. It returns the cleaned name and its eTLD+1.
func NormalizeDomain(raw string) (string, string, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.TrimSuffix(d, ".")
	if d == "" {
		return "", "", invalid("domain", "must not be empty")
	}
	if len(d) > MaxDomainLength {
		return "", "", invalid("domain", "exceeds %d characters", MaxDomainLength)
	}
	if !hostnamePattern.MatchString(d) {
		return "", "", invalid("domain", "%q is not a valid hostname", raw)
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(d)
	if err != nil {
		return "", "", invalid("domain", "%q is a public suffix, not a registrable domain", d)
	}
	return d, registrable, nil
}

// Analyze builds the full report for domain. Every entry is computed
// regardless of tier; callers hide premium entries with VisibleTo.
func (a *DomainAnalyzer) Analyze(rawDomain string, tier domain.Tier) (domain.DomainAnalysisResult, error) {
	if _, err := domain.ParseTier(string(tier)); err != nil {
		return domain.DomainAnalysisResult{}, invalid("tier", "%q is not one of free, premium, enterprise", tier)
	}
	name, registrable, err := NormalizeDomain(rawDomain)
	if err != nil {
		return domain.DomainAnalysisResult{}, err
	}

	seed := Seed(name)
	perfScore := performanceRange.score(seed)

	return domain.DomainAnalysisResult{
		Domain:            name,
		RegistrableDomain: registrable,
		Tier:              tier,
		Technologies:      technologiesFor(seed, tier),
		Performance: domain.Performance{
			Score:   perfScore,
			Metrics: performanceMetrics(seed, perfScore),
		},
		Security: domain.Security{
			Score:    securityRange.score(seed),
			Findings: pick(securityFindingCandidates, seed, findingsSalt, 2+seed%3),
		},
		SEO: domain.SEO{
			Score:  seoRange.score(seed),
			Issues: pick(seoIssueCandidates, seed, seoIssuesSalt, 2+seed%3),
		},
		Recommendations: pick(recommendationCandidates, seed, recommendationsSalt, 3),
	}, nil
}

func technologiesFor(seed int, tier domain.Tier) []domain.Technology {
	picks := append([]techPick(nil), basePicks...)
	if tier == domain.TierPremium || tier == domain.TierEnterprise {
		picks = append(picks, premiumPicks...)
	}
	if tier == domain.TierEnterprise {
		picks = append(picks, enterprisePicks...)
	}

	techs := make([]domain.Technology, 0, len(picks))
	for _, p := range picks {
		techs = append(techs, domain.Technology{
			Name:     p.list[(seed+p.offset)%len(p.list)],
			Category: p.cat,
		})
	}
	return techs
}

func rate(score, good, fair int) domain.Rating {
	switch {
	case score > good:
		return domain.RatingGood
	case score > fair:
		return domain.RatingNeedsImprovement
	}
	return domain.RatingPoor
}

func performanceMetrics(seed, score int) []domain.PerformanceMetric {
	return []domain.PerformanceMetric{
		{
			Name:   "First Contentful Paint",
			Value:  fmt.Sprintf("%.1fs", 1+float64(seed%40)/10),
			Rating: rate(score, 70, 40),
		},
		{
			Name:   "Largest Contentful Paint",
			Value:  fmt.Sprintf("%.1fs", 2.1+float64(seed%50)/10),
			Rating: rate(score, 75, 45),
		},
		{
			Name:   "Cumulative Layout Shift",
			Value:  fmt.Sprintf("%.2f", 0.05+float64(seed%30)/100),
			Rating: rate(score, 80, 50),
		},
		{
			Name:   "Time to Interactive",
			Value:  fmt.Sprintf("%.1fs", 3.2+float64(seed%60)/10),
			Rating: rate(score, 65, 35),
		},
	}
}

// pick returns n entries of a seeded permutation of candidates.
func pick[T any](candidates []T, seed int, salt uint64, n int) []T {
	shuffled := append([]T(nil), candidates...)
	rng := rand.New(rand.NewPCG(uint64(seed), salt))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
