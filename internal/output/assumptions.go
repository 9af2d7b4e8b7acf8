package output

import "github.com/stockmatrix/sipcalc/internal/domain"

// DefaultAssumptions lists key modeling assumptions rendered when a report carries none.
var DefaultAssumptions = []string{
	"Returns compound monthly at one twelfth of the annual rate",
	"Recurring contributions are made at the start of each month",
	"Inflation is discounted monthly at one twelfth of the annual rate",
	"Tax applies to the total gain at maturity only",
	"Monthly withdrawal spreads the future value evenly over the investment months",
}

func assumptionsFor(r domain.Report) []string {
	if len(r.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return r.Assumptions
}
