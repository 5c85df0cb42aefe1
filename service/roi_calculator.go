package service

import (
	"log"
	"math"

	"arco-intel/domain"
)

type ROICalculator struct {
	catalog *Catalog
}

// NewROICalculator creates a calculator reading from the given catalog.
func NewROICalculator(catalog *Catalog) *ROICalculator {
	return &ROICalculator{catalog: catalog}
}

func (c *ROICalculator) Catalog() *Catalog {
	return c.catalog
}

// Calculate projects revenue uplift, infrastructure savings and payback for
// the given business metrics.
func (c *ROICalculator) Calculate(
	input domain.CalculatorInput,
) (domain.CalculationResult, error) {

	if err := validateCalculatorInput(input); err != nil {
		return domain.CalculationResult{}, err
	}

	var fallbacks []domain.ReferenceFallback
	industry, res := c.catalog.Industry(input.SelectedIndustry)
	if res == UsedDefault {
		log.Printf("Warning: unknown industry %q, using %q", input.SelectedIndustry, industry.ID)
		fallbacks = append(fallbacks, domain.ReferenceFallback{
			Kind:        domain.ReferenceIndustry,
			RequestedID: input.SelectedIndustry,
			DefaultID:   industry.ID,
		})
	}
	companySize, res := c.catalog.CompanySize(input.SelectedCompanySize)
	if res == UsedDefault {
		log.Printf("Warning: unknown company size %q, using %q", input.SelectedCompanySize, companySize.ID)
		fallbacks = append(fallbacks, domain.ReferenceFallback{
			Kind:        domain.ReferenceCompanySize,
			RequestedID: input.SelectedCompanySize,
			DefaultID:   companySize.ID,
		})
	}

	visitors := input.MonthlyVisitors
	conversionRate := input.CurrentConversionRate / 100

	// visitors leads every product so scaling it scales the results exactly.
	currentAnnualRevenue := visitors * conversionRate * input.AverageOrderValue * 12

	improvedConversionRate := conversionRate * (1 + industry.ConversionRateImpact)
	improvedAOV := input.AverageOrderValue * industry.RevenueMultiplier
	improvedLoadTime := math.Max(MinImprovedLoadTime, input.CurrentLoadTime/LoadTimeSpeedupDivisor)

	projectedAnnualRevenue := visitors * improvedConversionRate * improvedAOV * 12
	// Not clamped: degenerate profiles may yield a negative uplift.
	additionalAnnualRevenue := projectedAnnualRevenue - currentAnnualRevenue

	infraSavings := input.InfraCost * industry.InfraCostSavingsPercent * 12
	totalAnnualBenefit := additionalAnnualRevenue + infraSavings

	implementationCost := BaseImplementationCost * companySize.ComplexityFactor * companySize.SizeMultiplier

	payback := PaybackPeriod(implementationCost, totalAnnualBenefit)
	costOfInactionMonthly := totalAnnualBenefit / 12

	return domain.CalculationResult{
		CurrentMetrics: domain.CurrentMetrics{
			AnnualRevenue:          currentAnnualRevenue,
			ConversionRate:         input.CurrentConversionRate,
			LoadTime:               input.CurrentLoadTime,
			InfraCost:              input.InfraCost,
			DigitalWastePercentage: industry.DigitalWasteFactor * 100,
		},
		ProjectedMetrics: domain.ProjectedMetrics{
			ConversionRate:        improvedConversionRate * 100,
			LoadTime:              improvedLoadTime,
			InfraCost:             input.InfraCost * (1 - industry.InfraCostSavingsPercent),
			AdditionalRevenue:     additionalAnnualRevenue,
			InfraSavings:          infraSavings,
			TotalAnnualBenefit:    totalAnnualBenefit,
			DigitalWasteReduction: industry.DigitalWasteFactor * WasteReductionRate * 100,
			RecoveryTimeHours:     industry.RecoveryTimeHours,
		},
		ROI: domain.ROI{
			ImplementationCost:      implementationCost,
			ImplementationTimeWeeks: companySize.ImplementationTimeWeeks,
			AnnualROI:               totalAnnualBenefit / implementationCost * 100,
			PaybackPeriodMonths:     payback,
			ThreeYearReturn:         totalAnnualBenefit*3 - implementationCost,
			CostOfInactionMonthly:   costOfInactionMonthly,
			CostOfInactionDaily:     costOfInactionMonthly / 30,
		},
		IndustrySpecificMetrics: append([]domain.Metric(nil), industry.CustomMetrics...),
		Fallbacks:               fallbacks,
	}, nil
}

// PaybackPeriod is the number of months of benefit needed to cover cost;
// +Inf when there is no benefit at all.
func PaybackPeriod(cost, annualBenefit float64) domain.PaybackMonths {
	if annualBenefit == 0 {
		return domain.PaybackMonths(math.Inf(1))
	}
	return domain.PaybackMonths(cost / (annualBenefit / 12))
}

func validateCalculatorInput(input domain.CalculatorInput) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"monthlyVisitors", input.MonthlyVisitors},
		{"currentConversionRate", input.CurrentConversionRate},
		{"averageOrderValue", input.AverageOrderValue},
		{"currentLoadTime", input.CurrentLoadTime},
		{"infraCost", input.InfraCost},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return invalid(f.name, "must be a finite number")
		}
		if f.value < 0 {
			return invalid(f.name, "must not be negative")
		}
	}

	if input.MonthlyVisitors > MaxMonthlyVisitors {
		return invalid("monthlyVisitors", "exceeds the maximum of %.0f", MaxMonthlyVisitors)
	}
	if input.CurrentConversionRate > 100 {
		return invalid("currentConversionRate", "must be between 0 and 100")
	}
	if input.AverageOrderValue > MaxCurrencyAmount {
		return invalid("averageOrderValue", "exceeds the maximum of %.0f", MaxCurrencyAmount)
	}
	if input.CurrentLoadTime == 0 {
		return invalid("currentLoadTime", "must be greater than zero")
	}
	if input.CurrentLoadTime > MaxLoadTimeSeconds {
		return invalid("currentLoadTime", "exceeds the maximum of %.0f seconds", MaxLoadTimeSeconds)
	}
	if input.InfraCost > MaxCurrencyAmount {
		return invalid("infraCost", "exceeds the maximum of %.0f", MaxCurrencyAmount)
	}
	return nil
}
