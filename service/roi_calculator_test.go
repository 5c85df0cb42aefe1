package service

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"arco-intel/domain"
)

func approxEqual(got, want float64) bool {
	if want == 0 {
		return math.Abs(got) < 1e-9
	}
	return math.Abs(got-want)/math.Abs(want) < 1e-9
}

func scenarioA() domain.CalculatorInput {
	return domain.CalculatorInput{
		SelectedIndustry:      "ecommerce",
		SelectedCompanySize:   "mid-market",
		MonthlyVisitors:       50000,
		CurrentConversionRate: 2.4,
		AverageOrderValue:     120,
		CurrentLoadTime:       4.2,
		InfraCost:             4500,
	}
}

func TestCalculate_ScenarioA(t *testing.T) {
	calculator := NewROICalculator(DefaultCatalog())

	result, err := calculator.Calculate(scenarioA())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"annualRevenue", result.CurrentMetrics.AnnualRevenue, 1_728_000},
		{"currentConversionRate", result.CurrentMetrics.ConversionRate, 2.4},
		{"digitalWastePercentage", result.CurrentMetrics.DigitalWastePercentage, 28},
		{"projectedConversionRate", result.ProjectedMetrics.ConversionRate, 3.888},
		{"projectedLoadTime", result.ProjectedMetrics.LoadTime, 1.68},
		{"projectedInfraCost", result.ProjectedMetrics.InfraCost, 3060},
		{"additionalRevenue", result.ProjectedMetrics.AdditionalRevenue, 1_211_328},
		{"infraSavings", result.ProjectedMetrics.InfraSavings, 17_280},
		{"totalAnnualBenefit", result.ProjectedMetrics.TotalAnnualBenefit, 1_228_608},
		{"digitalWasteReduction", result.ProjectedMetrics.DigitalWasteReduction, 23.8},
		{"implementationCost", result.ROI.ImplementationCost, 18_000},
		{"annualROI", result.ROI.AnnualROI, 6825.6},
		{"paybackPeriodMonths", float64(result.ROI.PaybackPeriodMonths), 18_000 / (1_228_608.0 / 12)},
		{"threeYearReturn", result.ROI.ThreeYearReturn, 3_667_824},
		{"costOfInactionMonthly", result.ROI.CostOfInactionMonthly, 102_384},
		{"costOfInactionDaily", result.ROI.CostOfInactionDaily, 3412.8},
	}
	for _, c := range checks {
		if !approxEqual(c.got, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}

	if result.ProjectedMetrics.RecoveryTimeHours != 48 {
		t.Errorf("expected 48 recovery hours, got %d", result.ProjectedMetrics.RecoveryTimeHours)
	}
	if result.ROI.ImplementationTimeWeeks != 6 {
		t.Errorf("expected 6 implementation weeks, got %d", result.ROI.ImplementationTimeWeeks)
	}
	if len(result.IndustrySpecificMetrics) != 2 ||
		result.IndustrySpecificMetrics[0].Label != "Cart Abandonment Reduction" {
		t.Errorf("unexpected industry metrics: %+v", result.IndustrySpecificMetrics)
	}
	if len(result.Fallbacks) != 0 {
		t.Errorf("expected no fallbacks, got %+v", result.Fallbacks)
	}
}

func TestCalculate_LoadTimeFloor(t *testing.T) {
	calculator := NewROICalculator(DefaultCatalog())

	input := scenarioA()
	input.CurrentLoadTime = 2.0
	result, err := calculator.Calculate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ProjectedMetrics.LoadTime != MinImprovedLoadTime {
		t.Errorf("expected load time floor %.1f, got %v", MinImprovedLoadTime, result.ProjectedMetrics.LoadTime)
	}
}

func TestCalculate_DoublingVisitorsDoublesRevenue(t *testing.T) {
	calculator := NewROICalculator(DefaultCatalog())

	for _, industry := range []string{"ecommerce", "saas", "b2b", "media"} {
		input := scenarioA()
		input.SelectedIndustry = industry
		base, err := calculator.Calculate(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		input.MonthlyVisitors *= 2
		doubled, _ := calculator.Calculate(input)

		if doubled.CurrentMetrics.AnnualRevenue != 2*base.CurrentMetrics.AnnualRevenue {
			t.Errorf("%s: annual revenue %v is not double %v", industry,
				doubled.CurrentMetrics.AnnualRevenue, base.CurrentMetrics.AnnualRevenue)
		}
		if doubled.ProjectedMetrics.AdditionalRevenue != 2*base.ProjectedMetrics.AdditionalRevenue {
			t.Errorf("%s: additional revenue %v is not double %v", industry,
				doubled.ProjectedMetrics.AdditionalRevenue, base.ProjectedMetrics.AdditionalRevenue)
		}
	}
}

func TestCalculate_ZeroBenefitPaybackIsUnbounded(t *testing.T) {
	calculator := NewROICalculator(DefaultCatalog())

	input := scenarioA()
	input.MonthlyVisitors = 0
	input.InfraCost = 0

	result, err := calculator.Calculate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.ROI.PaybackPeriodMonths.Unbounded() {
		t.Errorf("expected +Inf payback, got %v", result.ROI.PaybackPeriodMonths)
	}
	if math.IsNaN(result.ROI.AnnualROI) {
		t.Errorf("annual ROI must not be NaN")
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("result must stay encodable: %v", err)
	}
	if !strings.Contains(string(data), `"paybackPeriodMonths":null`) {
		t.Errorf("expected null payback in JSON, got %s", data)
	}
}

func TestCalculate_UnknownReferencesFallBack(t *testing.T) {
	calculator := NewROICalculator(DefaultCatalog())

	input := scenarioA()
	input.SelectedIndustry = "retail"
	input.SelectedCompanySize = "galactic"

	result, err := calculator.Calculate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Fallbacks) != 2 {
		t.Fatalf("expected 2 fallbacks, got %+v", result.Fallbacks)
	}
	if result.Fallbacks[0].Kind != domain.ReferenceIndustry || result.Fallbacks[0].DefaultID != "ecommerce" {
		t.Errorf("unexpected industry fallback: %+v", result.Fallbacks[0])
	}
	if result.Fallbacks[1].Kind != domain.ReferenceCompanySize || result.Fallbacks[1].DefaultID != "mid-market" {
		t.Errorf("unexpected company size fallback: %+v", result.Fallbacks[1])
	}

	expected, _ := calculator.Calculate(scenarioA())
	if result.ROI.AnnualROI != expected.ROI.AnnualROI {
		t.Errorf("fallback result should match the default profile")
	}
}

func TestCalculate_CompanySizeScalesCost(t *testing.T) {
	calculator := NewROICalculator(DefaultCatalog())

	input := scenarioA()
	input.SelectedCompanySize = "enterprise"
	result, err := calculator.Calculate(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(result.ROI.ImplementationCost, 18_000*1.5*1.8) {
		t.Errorf("expected enterprise cost 48600, got %v", result.ROI.ImplementationCost)
	}
	if result.ROI.ImplementationTimeWeeks != 10 {
		t.Errorf("expected 10 weeks, got %d", result.ROI.ImplementationTimeWeeks)
	}
}

func TestCalculate_InvalidInput(t *testing.T) {
	calculator := NewROICalculator(DefaultCatalog())

	cases := map[string]func(*domain.CalculatorInput){
		"monthlyVisitors":       func(in *domain.CalculatorInput) { in.MonthlyVisitors = -1 },
		"currentConversionRate": func(in *domain.CalculatorInput) { in.CurrentConversionRate = 101 },
		"averageOrderValue":     func(in *domain.CalculatorInput) { in.AverageOrderValue = math.NaN() },
		"currentLoadTime":       func(in *domain.CalculatorInput) { in.CurrentLoadTime = 0 },
		"infraCost":             func(in *domain.CalculatorInput) { in.InfraCost = -10 },
	}
	for field, mutate := range cases {
		input := scenarioA()
		mutate(&input)

		_, err := calculator.Calculate(input)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", field, err)
			continue
		}
		if verr.Field != field {
			t.Errorf("expected field %s, got %s", field, verr.Field)
		}
	}
}

func TestDefaultCatalog_Invariants(t *testing.T) {
	catalog := DefaultCatalog()

	for _, ind := range catalog.Industries() {
		for name, v := range map[string]float64{
			"conversionRateImpact":    ind.ConversionRateImpact,
			"infraCostSavingsPercent": ind.InfraCostSavingsPercent,
			"digitalWasteFactor":      ind.DigitalWasteFactor,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s.%s = %v, want within [0, 1]", ind.ID, name, v)
			}
		}
		if ind.RecoveryTimeHours <= 0 {
			t.Errorf("%s: recovery time must be positive", ind.ID)
		}
	}
	for _, cs := range catalog.CompanySizes() {
		if cs.SizeMultiplier <= 0 || cs.ComplexityFactor <= 0 || cs.ImplementationTimeWeeks <= 0 {
			t.Errorf("%s: size factors must be positive", cs.ID)
		}
	}

	if _, res := catalog.Industry("saas"); res != Matched {
		t.Errorf("expected saas to resolve")
	}
	if _, res := catalog.CompanySize(""); res != UsedDefault {
		t.Errorf("expected empty id to fall back")
	}
}
