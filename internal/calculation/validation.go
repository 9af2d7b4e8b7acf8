package calculation

import (
	"math"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// MaxDurationYears bounds plan duration. Float compounding overflows long before this at any
// return rate that matters, and the bound keeps the period count and series allocation small.
const MaxDurationYears = 1200

// ValidatePlan checks the plan invariants. The first violation is returned as an *InvalidPlanError.
func ValidatePlan(plan domain.InvestmentPlan) error {
	if !plan.ContributionMode.Valid() {
		return invalid("contribution_mode", "must be %q or %q, got %q",
			domain.ContributionRecurring, domain.ContributionLumpSum, plan.ContributionMode)
	}
	if !isFinite(plan.Amount) {
		return invalid("amount", "must be a number")
	}
	if plan.Amount <= 0 {
		return invalid("amount", "must be positive, got %g", plan.Amount)
	}
	if plan.DurationYears < 1 {
		return invalid("duration_years", "must be at least 1, got %d", plan.DurationYears)
	}
	if plan.DurationYears > MaxDurationYears {
		return invalid("duration_years", "must be at most %d, got %d", MaxDurationYears, plan.DurationYears)
	}
	if !isFinite(plan.AnnualReturnRatePercent) {
		return invalid("annual_return_rate_percent", "must be a number")
	}
	if err := validateNonNegativeRate("annual_inflation_rate_percent", plan.AnnualInflationRatePercent); err != nil {
		return err
	}
	if err := validateNonNegativeRate("annual_tax_rate_percent", plan.AnnualTaxRatePercent); err != nil {
		return err
	}
	if !plan.RiskProfile.Valid() {
		return invalid("risk_profile", "unknown profile %q", plan.RiskProfile)
	}
	return nil
}

func validateNonNegativeRate(field string, v float64) error {
	if !isFinite(v) {
		return invalid(field, "must be a number")
	}
	if v < 0 {
		return invalid(field, "must not be negative, got %g", v)
	}
	return nil
}

func validateGranularity(g domain.Granularity) error {
	if g != domain.GranularityMonthly && g != domain.GranularityYearly {
		return invalid("granularity", "must be %q or %q, got %q", domain.GranularityMonthly, domain.GranularityYearly, g)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
