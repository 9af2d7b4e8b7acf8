package output

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/stockmatrix/sipcalc/internal/domain"
)

// Render formats the reports with the formatter registered under format (aliases accepted).
func Render(reports []domain.Report, format string) ([]byte, error) {
	f, err := lookup(format)
	if err != nil {
		return nil, err
	}
	return f.Format(reports)
}

// GenerateReport writes the reports to a timestamped file in dir and returns the file names.
// Format "all" writes the console, detailed CSV and HTML reports.
func GenerateReport(reports []domain.Report, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range []string{"console", "detailed-csv", "html"} {
			file, err := WriteFormatted(GetFormatterByName(name), reports, dir)
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
		return files, nil
	}

	f, err := lookup(format)
	if err != nil {
		return nil, err
	}
	file, err := WriteFormatted(f, reports, dir)
	if err != nil {
		return nil, err
	}
	return []string{file}, nil
}

func lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	// enrich error with available formatters and aliases
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
		strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// SaveConfiguration writes a plan file as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
