package domain

import (
	"bytes"
	"encoding/json"
	"math"
)

type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Industry is a static reference profile. Fractional fields are in [0, 1].
type Industry struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	ConversionRateImpact    float64  `json:"conversionRateImpact"`
	AverageOrderValue       float64  `json:"averageOrderValue"`
	RevenueMultiplier       float64  `json:"revenueMultiplier"`
	InfraCostSavingsPercent float64  `json:"infraCostSavingsPercent"`
	DigitalWasteFactor      float64  `json:"digitalWasteFactor"`
	RecoveryTimeHours       int      `json:"recoveryTimeHours"`
	ExampleMetrics          []Metric `json:"exampleMetrics"`
	CustomMetrics           []Metric `json:"customMetrics,omitempty"`
}

type CompanySize struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	SizeMultiplier          float64 `json:"sizeMultiplier"`
	ComplexityFactor        float64 `json:"complexityFactor"`
	ImplementationTimeWeeks int     `json:"implementationTimeWeeks"`
	BudgetRange             string  `json:"budgetRange"`
}

type CalculatorInput struct {
	SelectedIndustry      string  `json:"selectedIndustry"`
	SelectedCompanySize   string  `json:"selectedCompanySize"`
	MonthlyVisitors       float64 `json:"monthlyVisitors"`
	CurrentConversionRate float64 `json:"currentConversionRate"` // percent, 0-100
	AverageOrderValue     float64 `json:"averageOrderValue"`
	CurrentLoadTime       float64 `json:"currentLoadTime"` // seconds
	InfraCost             float64 `json:"infraCost"`       // monthly
}

type CurrentMetrics struct {
	AnnualRevenue          float64 `json:"annualRevenue"`
	ConversionRate         float64 `json:"conversionRate"`
	LoadTime               float64 `json:"loadTime"`
	InfraCost              float64 `json:"infraCost"`
	DigitalWastePercentage float64 `json:"digitalWastePercentage"`
}

type ProjectedMetrics struct {
	ConversionRate        float64 `json:"conversionRate"`
	LoadTime              float64 `json:"loadTime"`
	InfraCost             float64 `json:"infraCost"`
	AdditionalRevenue     float64 `json:"additionalRevenue"`
	InfraSavings          float64 `json:"infraSavings"`
	TotalAnnualBenefit    float64 `json:"totalAnnualBenefit"`
	DigitalWasteReduction float64 `json:"digitalWasteReduction"`
	RecoveryTimeHours     int     `json:"recoveryTimeHours"`
}

// PaybackMonths is +Inf when the annual benefit is zero. JSON has no
// infinity, so the unbounded value travels as null.
type PaybackMonths float64

func (p PaybackMonths) Unbounded() bool {
	return math.IsInf(float64(p), 1)
}

func (p PaybackMonths) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(p), 0) || math.IsNaN(float64(p)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

func (p *PaybackMonths) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = PaybackMonths(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = PaybackMonths(f)
	return nil
}

type ROI struct {
	ImplementationCost      float64       `json:"implementationCost"`
	ImplementationTimeWeeks int           `json:"implementationTimeWeeks"`
	AnnualROI               float64       `json:"annualROI"`
	PaybackPeriodMonths     PaybackMonths `json:"paybackPeriodMonths"`
	ThreeYearReturn         float64       `json:"threeYearReturn"`
	CostOfInactionMonthly   float64       `json:"costOfInactionMonthly"`
	CostOfInactionDaily     float64       `json:"costOfInactionDaily"`
}

type ReferenceKind string

const (
	ReferenceIndustry    ReferenceKind = "industry"
	ReferenceCompanySize ReferenceKind = "companySize"
)

// ReferenceFallback records an unknown reference id that was replaced by
// the table default.
type ReferenceFallback struct {
	Kind        ReferenceKind `json:"kind"`
	RequestedID string        `json:"requestedId"`
	DefaultID   string        `json:"defaultId"`
}

type CalculationResult struct {
	CurrentMetrics          CurrentMetrics      `json:"currentMetrics"`
	ProjectedMetrics        ProjectedMetrics    `json:"projectedMetrics"`
	ROI                     ROI                 `json:"roi"`
	IndustrySpecificMetrics []Metric            `json:"industrySpecificMetrics,omitempty"`
	Fallbacks               []ReferenceFallback `json:"fallbacks,omitempty"`
	Explanation             string              `json:"explanation,omitempty"`
}
