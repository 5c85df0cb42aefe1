package service

import "arco-intel/domain"

// Resolution tells whether a reference lookup hit the table or fell back
// to its default entry.
type Resolution int

const (
	Matched Resolution = iota
	UsedDefault
)

// Catalog holds the immutable industry and company-size tables the ROI
// calculator reads from.
type Catalog struct {
	industries         []domain.Industry
	companySizes       []domain.CompanySize
	defaultIndustry    string
	defaultCompanySize string
}

// NewCatalog builds a catalog; the defaults must name entries of the tables.
func NewCatalog(
	industries []domain.Industry,
	companySizes []domain.CompanySize,
	defaultIndustry, defaultCompanySize string,
) *Catalog {
	return &Catalog{
		industries:         industries,
		companySizes:       companySizes,
		defaultIndustry:    defaultIndustry,
		defaultCompanySize: defaultCompanySize,
	}
}

// DefaultCatalog returns the built-in reference tables. The company size
// default is mid-market, the second table row, not the first.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultIndustries(), defaultCompanySizes(), "ecommerce", "mid-market")
}

func (c *Catalog) Industries() []domain.Industry {
	return append([]domain.Industry(nil), c.industries...)
}

func (c *Catalog) CompanySizes() []domain.CompanySize {
	return append([]domain.CompanySize(nil), c.companySizes...)
}

func (c *Catalog) Industry(id string) (domain.Industry, Resolution) {
	var fallback domain.Industry
	for _, ind := range c.industries {
		if ind.ID == id {
			return ind, Matched
		}
		if ind.ID == c.defaultIndustry {
			fallback = ind
		}
	}
	return fallback, UsedDefault
}

func (c *Catalog) CompanySize(id string) (domain.CompanySize, Resolution) {
	var fallback domain.CompanySize
	for _, cs := range c.companySizes {
		if cs.ID == id {
			return cs, Matched
		}
		if cs.ID == c.defaultCompanySize {
			fallback = cs
		}
	}
	return fallback, UsedDefault
}

func defaultIndustries() []domain.Industry {
	return []domain.Industry{
		{
			ID:                      "ecommerce",
			Name:                    "E-commerce",
			ConversionRateImpact:    0.62,
			AverageOrderValue:       120,
			RevenueMultiplier:       1.05,
			InfraCostSavingsPercent: 0.32,
			DigitalWasteFactor:      0.28,
			RecoveryTimeHours:       48,
			ExampleMetrics: []domain.Metric{
				{Label: "Avg. Cart Abandonment Rate", Value: "68%"},
				{Label: "Typical Load Time Impact", Value: "4.2s → 1.8s"},
				{Label: "Avg. Conversion Impact", Value: "+62%"},
			},
			CustomMetrics: []domain.Metric{
				{Label: "Cart Abandonment Reduction", Value: "38%"},
				{Label: "Mobile Conversion Improvement", Value: "+74%"},
			},
		},
		{
			ID:                      "saas",
			Name:                    "SaaS Platform",
			ConversionRateImpact:    0.43,
			AverageOrderValue:       850,
			RevenueMultiplier:       1.08,
			InfraCostSavingsPercent: 0.47,
			DigitalWasteFactor:      0.35,
			RecoveryTimeHours:       48,
			ExampleMetrics: []domain.Metric{
				{Label: "Avg. Sign-up Abandonment", Value: "57%"},
				{Label: "Typical Load Time Impact", Value: "3.8s → 1.5s"},
				{Label: "Avg. Conversion Impact", Value: "+43%"},
			},
			CustomMetrics: []domain.Metric{
				{Label: "User Retention Improvement", Value: "+28%"},
				{Label: "Infrastructure Cost Reduction", Value: "47%"},
			},
		},
		{
			ID:                      "b2b",
			Name:                    "B2B Services",
			ConversionRateImpact:    0.37,
			AverageOrderValue:       12500,
			RevenueMultiplier:       1.03,
			InfraCostSavingsPercent: 0.25,
			DigitalWasteFactor:      0.22,
			RecoveryTimeHours:       48,
			ExampleMetrics: []domain.Metric{
				{Label: "Avg. Form Abandonment", Value: "42%"},
				{Label: "Typical Load Time Impact", Value: "5.3s → 2.1s"},
				{Label: "Avg. Conversion Impact", Value: "+37%"},
			},
			CustomMetrics: []domain.Metric{
				{Label: "Lead Quality Improvement", Value: "+32%"},
				{Label: "Sales Cycle Reduction", Value: "19%"},
			},
		},
		{
			ID:                      "media",
			Name:                    "Media & Content",
			ConversionRateImpact:    0.52,
			AverageOrderValue:       25,
			RevenueMultiplier:       1.12,
			InfraCostSavingsPercent: 0.38,
			DigitalWasteFactor:      0.31,
			RecoveryTimeHours:       48,
			ExampleMetrics: []domain.Metric{
				{Label: "Avg. Bounce Rate", Value: "63%"},
				{Label: "Typical Load Time Impact", Value: "4.7s → 1.9s"},
				{Label: "Avg. Engagement Impact", Value: "+52%"},
			},
			CustomMetrics: []domain.Metric{
				{Label: "Ad Revenue Increase", Value: "+46%"},
				{Label: "Pages Per Session Improvement", Value: "+124%"},
			},
		},
	}
}

func defaultCompanySizes() []domain.CompanySize {
	return []domain.CompanySize{
		{
			ID:                      "small-business",
			Name:                    "Small Business",
			SizeMultiplier:          0.6,
			ComplexityFactor:        0.7,
			ImplementationTimeWeeks: 4,
			BudgetRange:             "$8,000 - $12,000",
		},
		{
			ID:                      "mid-market",
			Name:                    "Mid-Market",
			SizeMultiplier:          1.0,
			ComplexityFactor:        1.0,
			ImplementationTimeWeeks: 6,
			BudgetRange:             "$15,000 - $25,000",
		},
		{
			ID:                      "enterprise",
			Name:                    "Enterprise",
			SizeMultiplier:          1.8,
			ComplexityFactor:        1.5,
			ImplementationTimeWeeks: 10,
			BudgetRange:             "$35,000 - $60,000+",
		},
	}
}
