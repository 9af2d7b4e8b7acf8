package calculation

import (
	"fmt"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// GenerateAssumptions creates the assumptions list from the actual plan values
func GenerateAssumptions(plan domain.InvestmentPlan) []string {
	contribution := "Contributions made at the start of each month (annuity-due)"
	if !plan.IsRecurring() {
		contribution = "Single principal invested at the start of the first month"
	}

	tax := "No tax applied to gains"
	if plan.AnnualTaxRatePercent > 0 {
		tax = fmt.Sprintf("Tax on gains: %.1f%% of the total gain at maturity (negative on a loss)", plan.AnnualTaxRatePercent)
	}

	return []string{
		fmt.Sprintf("Expected return: %.1f%% annually, compounded monthly", plan.AnnualReturnRatePercent),
		fmt.Sprintf("Inflation: %.1f%% annually, discounted monthly", plan.AnnualInflationRatePercent),
		contribution,
		tax,
		"Monthly withdrawal: future value spread evenly over the investment months (illustrative, not an annuity)",
		fmt.Sprintf("Scenario rates: Conservative %.0f%%, Moderate %.0f%%, Aggressive %.0f%%",
			RiskBands[0].RatePercent, RiskBands[1].RatePercent, RiskBands[2].RatePercent),
	}
}
