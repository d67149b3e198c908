package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. The per-run
// assignment parameters (quotas, currency tiers, caps) live in the
// configuration spreadsheet, not here; this file only wires the
// application to its collaborators.
type Config struct {
	// Roster sheet: the operator list with campaign associations.
	RosterSheetID string `yaml:"rosterSheetID" validate:"required"`
	RosterTab     string `yaml:"rosterTab" validate:"required"`

	// Configuration sheet: assignment parameters and segment tables.
	ConfigSheetID string `yaml:"configSheetID" validate:"required"`
	ParamsTab     string `yaml:"paramsTab" validate:"required"`
	SegmentsTab   string `yaml:"segmentsTab" validate:"required"`

	// Warehouse holding the lead segment tables and assignment history.
	WarehouseURL string `yaml:"warehouseURL" validate:"required"`

	// ExportDir is where the per-day assignment CSV is written.
	ExportDir string `yaml:"exportDir,omitempty"`

	// Optional results sheet: when both are set, each persisted batch
	// is appended there for the call-center supervisors.
	ResultsSheetID string `yaml:"resultsSheetID,omitempty"`
	ResultsTab     string `yaml:"resultsTab,omitempty"`

	// RunSchedule is an optional RRULE restricting which dates the
	// batch runs on (e.g. "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR").
	// Empty means every invocation runs.
	RunSchedule string `yaml:"runSchedule,omitempty"`

	// Seed overrides the shuffle seed. Zero means the default.
	Seed int64 `yaml:"seed,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads the configuration for an environment, looking for
// "assign_config.<env>.yaml" in the current directory and then the
// user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and the run schedule syntax.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.RunSchedule != "" {
		if _, err := rrule.StrToRRule(cfg.RunSchedule); err != nil {
			return fmt.Errorf("invalid rrule in runSchedule: %w", err)
		}
	}

	return nil
}

// findConfigFile searches for the environment's config file in the
// current directory and the home directory.
func findConfigFile(env string) (string, error) {
	configFileName := "assign_config.yaml"
	if env != "" {
		configFileName = "assign_config." + env + ".yaml"
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
