package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-circulation-go/circulation/shared/core"
)

type yamlDocument struct {
	Circulation yamlSettings `yaml:"circulation"`
}

type yamlSettings struct {
	LoanPeriodDays int    `yaml:"loan_period_days"`
	FinePerDay     string `yaml:"fine_per_day"`
	BorrowingLimit int    `yaml:"borrowing_limit"`
}

// MarshalYAML renders settings in the layout the ViperProvider reads.
func MarshalYAML(settings core.Settings) ([]byte, error) {
	document := yamlDocument{
		Circulation: yamlSettings{
			LoanPeriodDays: settings.LoanPeriodDays,
			FinePerDay:     settings.FinePerDay.StringFixed(2),
			BorrowingLimit: settings.BorrowingLimit,
		},
	}

	out, err := yaml.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("rendering settings: %w", err)
	}

	return out, nil
}

// WriteFile validates settings and writes them to path.
func WriteFile(path string, settings core.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	out, err := MarshalYAML(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(path, out, 0o600)
}
