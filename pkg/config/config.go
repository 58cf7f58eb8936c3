// Package config provides configuration loading and validation for the
// amalgam CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/amalgam/pkg/amalg"
)

// Sentinel validation errors.
var (
	ErrMissingPattern   = errors.New("target pattern is required")
	ErrMissingOutput    = errors.New("target output is required")
	ErrMissingNamespace = errors.New("target namespace is required")
	ErrLicenseConflict  = errors.New("license file and text are mutually exclusive")
	ErrDuplicateTarget  = errors.New("duplicate target name")
)

// Default configuration values.
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// Config holds all configuration for the amalgam CLI.
type Config struct {
	Logging LoggingConfig  `mapstructure:"logging"`
	Targets []TargetConfig `mapstructure:"targets"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TargetConfig describes one amalgamation target.
type TargetConfig struct {
	Name      string        `mapstructure:"name"`
	Pattern   string        `mapstructure:"pattern"`
	Output    string        `mapstructure:"output"`
	Namespace string        `mapstructure:"namespace"`
	Language  string        `mapstructure:"language"`
	License   LicenseConfig `mapstructure:"license"`
}

// LicenseConfig selects the license header source for a target. File and
// Text are mutually exclusive; both empty means no header.
type LicenseConfig struct {
	File string `mapstructure:"file"`
	Text string `mapstructure:"text"`
	Wrap bool   `mapstructure:"wrap"`
}

// Job converts the target into an amalgamation job.
func (t TargetConfig) Job() amalg.Job {
	return amalg.Job{
		Pattern:     t.Pattern,
		Output:      t.Output,
		Namespace:   t.Namespace,
		Language:    t.Language,
		LicenseFile: t.License.File,
		LicenseText: t.License.Text,
		WrapLicense: t.License.Wrap,
	}
}

// DisplayName returns the target's name, falling back to its output path.
func (t TargetConfig) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}

	return t.Output
}

// LoadConfig loads configuration from file and environment variables.
// With an empty configPath, the default search locations are tried and a
// missing file yields an empty (but valid) configuration.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("amalgam")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
	}

	viperCfg.SetEnvPrefix("AMALGAM")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("logging.level", defaultLogLevel)
	viperCfg.SetDefault("logging.format", defaultLogFormat)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	seen := make(map[string]struct{}, len(config.Targets))

	for _, target := range config.Targets {
		err := ValidateTarget(target)
		if err != nil {
			return err
		}

		if target.Name == "" {
			continue
		}

		if _, dup := seen[target.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateTarget, target.Name)
		}

		seen[target.Name] = struct{}{}
	}

	return nil
}

// ValidateTarget checks one target for completeness. Used both for
// config-file targets and for ad-hoc targets assembled from CLI flags.
func ValidateTarget(target TargetConfig) error {
	if target.Pattern == "" {
		return fmt.Errorf("%w (target %q)", ErrMissingPattern, target.DisplayName())
	}

	if target.Output == "" {
		return fmt.Errorf("%w (target %q)", ErrMissingOutput, target.DisplayName())
	}

	if target.Namespace == "" {
		return fmt.Errorf("%w (target %q)", ErrMissingNamespace, target.DisplayName())
	}

	if target.License.File != "" && target.License.Text != "" {
		return fmt.Errorf("%w (target %q)", ErrLicenseConflict, target.DisplayName())
	}

	return nil
}
