package domain

import (
	"strings"
	"time"
)

// ContributionMode selects between a recurring monthly contribution and a single upfront principal
type ContributionMode string

const (
	ContributionRecurring ContributionMode = "recurring"
	ContributionLumpSum   ContributionMode = "lump_sum"
)

var contributionAliases = map[string]ContributionMode{
	"recurring": ContributionRecurring,
	"sip":       ContributionRecurring,
	"monthly":   ContributionRecurring,
	"lump_sum":  ContributionLumpSum,
	"lump-sum":  ContributionLumpSum,
	"lumpsum":   ContributionLumpSum,
	"one_time":  ContributionLumpSum,
}

// ParseContributionMode resolves a user supplied mode name. Unknown names are returned as-is
// (lower-cased) with ok=false so that validation can report them.
func ParseContributionMode(s string) (ContributionMode, bool) {
	n := strings.ToLower(strings.TrimSpace(s))
	if m, ok := contributionAliases[n]; ok {
		return m, true
	}
	return ContributionMode(n), false
}

// UnmarshalText normalizes aliases when decoding YAML or JSON.
func (m *ContributionMode) UnmarshalText(text []byte) error {
	*m, _ = ParseContributionMode(string(text))
	return nil
}

// Valid reports whether the mode is one of the known contribution modes
func (m ContributionMode) Valid() bool {
	return m == ContributionRecurring || m == ContributionLumpSum
}

// RiskProfile names one of the fixed comparison bands
type RiskProfile string

const (
	RiskNone         RiskProfile = ""
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// ParseRiskProfile resolves a user supplied profile name; see ParseContributionMode.
func ParseRiskProfile(s string) (RiskProfile, bool) {
	p := RiskProfile(strings.ToLower(strings.TrimSpace(s)))
	return p, p.Valid()
}

// UnmarshalText lower-cases the profile name.
func (p *RiskProfile) UnmarshalText(text []byte) error {
	*p, _ = ParseRiskProfile(string(text))
	return nil
}

// Valid reports whether the profile is empty or a known band
func (p RiskProfile) Valid() bool {
	switch p {
	case RiskNone, RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// Label returns the display name used in scenario comparisons
func (p RiskProfile) Label() string {
	switch p {
	case RiskConservative:
		return "Conservative"
	case RiskModerate:
		return "Moderate"
	case RiskAggressive:
		return "Aggressive"
	}
	return ""
}

// Granularity controls how many growth points a projection emits
type Granularity string

const (
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// ParseGranularity resolves a granularity name. An empty name means monthly.
func ParseGranularity(s string) (Granularity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monthly", "month", "period":
		return GranularityMonthly, true
	case "yearly", "year", "annual":
		return GranularityYearly, true
	}
	return Granularity(strings.ToLower(strings.TrimSpace(s))), false
}

// UnmarshalText normalizes granularity names.
func (g *Granularity) UnmarshalText(text []byte) error {
	*g, _ = ParseGranularity(string(text))
	return nil
}

// InvestmentPlan is the immutable input of a projection.
//
// Rates are percentages (12 means 12%). Amount is the monthly contribution for recurring plans and
// the principal for lump-sum plans.
type InvestmentPlan struct {
	ContributionMode           ContributionMode `yaml:"contribution_mode" json:"contribution_mode"`
	Amount                     float64          `yaml:"amount" json:"amount"`
	AnnualReturnRatePercent    float64          `yaml:"annual_return_rate_percent" json:"annual_return_rate_percent"`
	DurationYears              int              `yaml:"duration_years" json:"duration_years"`
	AnnualInflationRatePercent float64          `yaml:"annual_inflation_rate_percent,omitempty" json:"annual_inflation_rate_percent,omitempty"`
	AnnualTaxRatePercent       float64          `yaml:"annual_tax_rate_percent,omitempty" json:"annual_tax_rate_percent,omitempty"`
	RiskProfile                RiskProfile      `yaml:"risk_profile,omitempty" json:"risk_profile,omitempty"`

	// Optional: stamps growth points with calendar dates. Not used in calculations.
	StartDate *time.Time `yaml:"start_date,omitempty" json:"start_date,omitempty"`
}

// Periods returns the number of monthly compounding periods in the plan
func (p InvestmentPlan) Periods() int {
	return p.DurationYears * 12
}

// WithReturnRate returns a copy of the plan with a different annual return rate
func (p InvestmentPlan) WithReturnRate(ratePercent float64) InvestmentPlan {
	p.AnnualReturnRatePercent = ratePercent
	return p
}

// IsRecurring reports whether the plan contributes every month
func (p InvestmentPlan) IsRecurring() bool {
	return p.ContributionMode == ContributionRecurring
}
