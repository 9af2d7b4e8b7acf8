package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SIPCALC_SERVER_PORT
const EnvPrefix = "SIPCALC"

// Settings represents the application configuration (not the plan file).
type Settings struct {
	Server     ServerSettings     `mapstructure:"server"     yaml:"server"`
	Logging    LoggingSettings    `mapstructure:"logging"    yaml:"logging"`
	Report     ReportSettings     `mapstructure:"report"     yaml:"report"`
	Simulation SimulationSettings `mapstructure:"simulation" yaml:"simulation"`
	Funds      FundsSettings      `mapstructure:"funds"      yaml:"funds"`
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	Host            string        `mapstructure:"host"             yaml:"host"`
	Port            int           `mapstructure:"port"             yaml:"port"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"  yaml:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	CORSOrigins     []string      `mapstructure:"cors_origins"     yaml:"cors_origins"`
}

// Addr returns the listen address
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingSettings holds logging configuration.
type LoggingSettings struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// ReportSettings holds report defaults.
type ReportSettings struct {
	Format      string `mapstructure:"format"      yaml:"format"`
	Granularity string `mapstructure:"granularity" yaml:"granularity"`
	Currency    string `mapstructure:"currency"    yaml:"currency"`
}

// SimulationSettings holds Monte Carlo defaults.
type SimulationSettings struct {
	NumSimulations int `mapstructure:"num_simulations" yaml:"num_simulations"`
	MaxConcurrency int `mapstructure:"max_concurrency" yaml:"max_concurrency"`
}

// FundsSettings configures the fund returns source. An empty URL disables it.
type FundsSettings struct {
	SourceURL string        `mapstructure:"source_url" yaml:"source_url"`
	Timeout   time.Duration `mapstructure:"timeout"    yaml:"timeout"`
}

// LoadSettings reads settings from an optional config file, a .env file and SIPCALC_* environment
// variables. Config file search order when path is empty:
//  1. ./sipcalc.yaml
//  2. ./config/sipcalc.yaml
func LoadSettings(path string) (*Settings, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("sipcalc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshaling settings: %w", err)
	}
	return &s, nil
}

// setDefaults sets sensible defaults for all settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", false)

	v.SetDefault("report.format", "console")
	v.SetDefault("report.granularity", "yearly")
	v.SetDefault("report.currency", "INR")

	v.SetDefault("simulation.num_simulations", 1000)
	v.SetDefault("simulation.max_concurrency", 0)

	v.SetDefault("funds.source_url", "")
	v.SetDefault("funds.timeout", 10*time.Second)
}
