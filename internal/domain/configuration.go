package domain

// NamedPlan is one entry of a plan file
type NamedPlan struct {
	Name           string `yaml:"name" json:"name"`
	InvestmentPlan `yaml:",inline"`
}

// Configuration is the top-level structure of a plan file
type Configuration struct {
	Currency    string      `yaml:"currency,omitempty" json:"currency,omitempty"`
	Granularity Granularity `yaml:"granularity,omitempty" json:"granularity,omitempty"`
	Plans       []NamedPlan `yaml:"plans" json:"plans"`
}
