package service

const (
	// BaseImplementationCost is the engagement price before company-size
	// scaling. It is a commercial parameter, not a derived value.
	BaseImplementationCost = 18_000.0

	MinImprovedLoadTime    = 1.5 // seconds
	LoadTimeSpeedupDivisor = 2.5
	WasteReductionRate     = 0.85

	MaxMonthlyVisitors = 10_000_000_000.0
	MaxCurrencyAmount  = 1_000_000_000_000.0
	MaxLoadTimeSeconds = 600.0
	MaxDomainLength    = 253

	// MaxBatchDomains caps a single batch analysis request.
	MaxBatchDomains = 100
)
