package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stockmatrix/sipcalc/internal/calculation"
	"github.com/stockmatrix/sipcalc/internal/domain"
	"github.com/stockmatrix/sipcalc/pkg/money"
)

// InputParser handles parsing of plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan file. YAML is expected; JSON parses too since it is valid YAML.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates plan file contents, applying defaults for currency and granularity
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if config.Currency == "" {
		config.Currency = money.DefaultCurrency
	}
	config.Currency = strings.ToUpper(config.Currency)
	if config.Granularity == "" {
		config.Granularity = domain.GranularityMonthly
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Currency != "" && !money.IsKnownCurrency(config.Currency) {
		return fmt.Errorf("unknown currency %q", config.Currency)
	}
	if _, ok := domain.ParseGranularity(string(config.Granularity)); !ok {
		return fmt.Errorf("unknown granularity %q", config.Granularity)
	}

	if len(config.Plans) == 0 {
		return fmt.Errorf("no plans provided")
	}

	seen := make(map[string]bool, len(config.Plans))
	for i, plan := range config.Plans {
		name := strings.TrimSpace(plan.Name)
		if name == "" {
			return fmt.Errorf("plan %d: name is required", i)
		}
		if seen[strings.ToLower(name)] {
			return fmt.Errorf("plan %d: duplicate name %q", i, name)
		}
		seen[strings.ToLower(name)] = true

		if err := calculation.ValidatePlan(plan.InvestmentPlan); err != nil {
			return fmt.Errorf("plan %q validation failed: %w", name, err)
		}
	}

	return nil
}

// CreateExampleConfiguration creates an example plan file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	return &domain.Configuration{
		Currency:    money.DefaultCurrency,
		Granularity: domain.GranularityYearly,
		Plans: []domain.NamedPlan{
			{
				Name: "Retirement SIP",
				InvestmentPlan: domain.InvestmentPlan{
					ContributionMode:           domain.ContributionRecurring,
					Amount:                     5000,
					AnnualReturnRatePercent:    12,
					DurationYears:              10,
					AnnualInflationRatePercent: 6,
					RiskProfile:                domain.RiskModerate,
					StartDate:                  &start,
				},
			},
			{
				Name: "Child Education Fund",
				InvestmentPlan: domain.InvestmentPlan{
					ContributionMode:           domain.ContributionRecurring,
					Amount:                     10000,
					AnnualReturnRatePercent:    14,
					DurationYears:              15,
					AnnualInflationRatePercent: 7,
					AnnualTaxRatePercent:       10,
					RiskProfile:                domain.RiskAggressive,
				},
			},
			{
				Name: "Bonus Lump Sum",
				InvestmentPlan: domain.InvestmentPlan{
					ContributionMode:           domain.ContributionLumpSum,
					Amount:                     100000,
					AnnualReturnRatePercent:    10,
					DurationYears:              5,
					AnnualInflationRatePercent: 5,
					AnnualTaxRatePercent:       10,
					RiskProfile:                domain.RiskConservative,
				},
			},
		},
	}
}
