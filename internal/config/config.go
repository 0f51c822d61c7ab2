package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/fantaelite/draftmaster/pkg/core/model"
	"github.com/fantaelite/draftmaster/pkg/core/roster"
)

// CatalogConfig defines where the player catalog is loaded from
type CatalogConfig struct {
	Source        string `yaml:"source" validate:"required,oneof=file http sheets postgres"`
	Path          string `yaml:"path,omitempty" validate:"required_if=Source file"`
	URL           string `yaml:"url,omitempty" validate:"required_if=Source http,omitempty,url"`
	SheetID       string `yaml:"sheetID,omitempty" validate:"required_if=Source sheets"`
	Tab           string `yaml:"tab,omitempty" validate:"required_if=Source sheets"`
	Delimiter     string `yaml:"delimiter,omitempty" validate:"omitempty,len=1"`
	FetchAttempts int    `yaml:"fetchAttempts,omitempty" validate:"omitempty,min=1,max=10"`
}

// GenerationConfig holds the defaults for roster generation; CLI flags override them
type GenerationConfig struct {
	Budget      float64        `yaml:"budget" validate:"gt=0"`
	Strategy    string         `yaml:"strategy,omitempty"`
	MinPct      float64        `yaml:"minPct,omitempty" validate:"omitempty,gte=0,lte=100"`
	MaxPct      float64        `yaml:"maxPct,omitempty" validate:"omitempty,gt=0,lte=200"`
	MaxAttempts int            `yaml:"maxAttempts,omitempty" validate:"omitempty,min=1,max=1000"`
	Reference   string         `yaml:"reference,omitempty" validate:"omitempty,oneof=baseline pool_max"`
	Baseline    float64        `yaml:"baseline,omitempty" validate:"omitempty,gt=0"`
	MultiRole   string         `yaml:"multiRole,omitempty" validate:"omitempty,oneof=first any"`
	MaxPerClub  int            `yaml:"maxPerClub,omitempty" validate:"omitempty,min=1"`
	Quota       map[string]int `yaml:"quota,omitempty" validate:"omitempty,dive,min=1"`
}

// StrategyConfig defines a custom strategy registered alongside the built-ins
type StrategyConfig struct {
	Name             string                       `yaml:"name" validate:"required"`
	Description      string                       `yaml:"description,omitempty"`
	Weights          roster.Weights               `yaml:"weights"`
	RookieMultiplier float64                      `yaml:"rookieMultiplier,omitempty" validate:"gte=0"`
	Jitter           float64                      `yaml:"jitter,omitempty" validate:"gte=0"`
	TopKMultiple     int                          `yaml:"topKMultiple,omitempty" validate:"gte=0"`
	Shares           map[string]roster.ShareRange `yaml:"shares,omitempty"`
}

// PublishConfig defines where generated rosters are published
type PublishConfig struct {
	SheetID string `yaml:"sheetID,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Catalog     CatalogConfig    `yaml:"catalog"`
	Generation  GenerationConfig `yaml:"generation"`
	Strategies  []StrategyConfig `yaml:"strategies,omitempty" validate:"dive"`
	Publish     PublishConfig    `yaml:"publish,omitempty"`
	DatabaseURL string           `yaml:"databaseURL,omitempty"`
	LogDir      string           `yaml:"logDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from draftmaster_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration with an environment suffix
// For example, env="test" will look for "draftmaster_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
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

// Validate validates the configuration struct, the band, the quota and custom strategies
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Catalog.Source == "postgres" && cfg.DatabaseURL == "" {
		return fmt.Errorf("config validation failed: databaseURL is required for the postgres catalog source")
	}

	if err := cfg.Band().Validate(); err != nil {
		return fmt.Errorf("invalid generation band: %w", err)
	}

	if _, err := cfg.Quota(); err != nil {
		return fmt.Errorf("invalid generation quota: %w", err)
	}

	if _, err := cfg.Registry(); err != nil {
		return fmt.Errorf("invalid strategies: %w", err)
	}

	return nil
}

// Band returns the acceptance band, filling unset bounds with the defaults
func (cfg *Config) Band() roster.Band {
	band := roster.DefaultBand()
	if cfg.Generation.MinPct > 0 {
		band.MinPct = cfg.Generation.MinPct
	}
	if cfg.Generation.MaxPct > 0 {
		band.MaxPct = cfg.Generation.MaxPct
	}
	return band
}

// Quota returns the configured role quota, or the default 25-player quota
func (cfg *Config) Quota() (model.RoleQuota, error) {
	if len(cfg.Generation.Quota) == 0 {
		return model.DefaultQuota(), nil
	}

	quota := make(model.RoleQuota, len(cfg.Generation.Quota))
	for label, count := range cfg.Generation.Quota {
		role, err := model.ParseRole(label)
		if err != nil {
			return nil, err
		}
		quota[role] = count
	}

	if err := quota.Validate(); err != nil {
		return nil, err
	}
	return quota, nil
}

// Registry returns the built-in strategies plus the configured custom ones
func (cfg *Config) Registry() (*roster.Registry, error) {
	registry := roster.DefaultRegistry()

	for i, sc := range cfg.Strategies {
		strategy := roster.Strategy{
			Name:             sc.Name,
			Description:      sc.Description,
			Weights:          sc.Weights,
			RookieMultiplier: sc.RookieMultiplier,
			Jitter:           sc.Jitter,
			TopKMultiple:     sc.TopKMultiple,
		}

		if len(sc.Shares) > 0 {
			strategy.Shares = make(map[model.Role]roster.ShareRange, len(sc.Shares))
			for label, share := range sc.Shares {
				role, err := model.ParseRole(label)
				if err != nil {
					return nil, fmt.Errorf("strategies[%d]: %w", i, err)
				}
				strategy.Shares[role] = share
			}
		}

		if err := registry.Register(strategy); err != nil {
			return nil, fmt.Errorf("strategies[%d]: %w", i, err)
		}
	}

	return registry, nil
}

// Delimiter returns the catalog delimiter, or 0 to use the parser default
func (cfg *Config) Delimiter() rune {
	if cfg.Catalog.Delimiter == "" {
		return 0
	}
	return []rune(cfg.Catalog.Delimiter)[0]
}

// findConfigFile resolves the config file name for env and locates it
func findConfigFile(env string) (string, error) {
	configFileName := "draftmaster_config.yaml"
	if env != "" {
		configFileName = "draftmaster_config." + env + ".yaml"
	}
	return findFile(configFileName)
}

// findFile searches for name in the current directory, then the home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
