package core

import (
	"fmt"
	"os"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

// CommandConfig represents a generic command configuration
type CommandConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:",inline"`
}

// VariantConfig describes one splash screen to generate
type VariantConfig struct {
	Name       string `yaml:"name" validate:"required"`
	Background string `yaml:"background" validate:"required"`
	Filename   string `yaml:"filename" validate:"required"`
}

type Manifest struct {
	Enabled          bool   `yaml:"enabled"`
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
}

type ServiceConfig struct {
	Port         int             `yaml:"port" validate:"gte=0,lte=65535"`
	LogoPath     string          `yaml:"logoPath"`
	OutputDir    string          `yaml:"outputDir"`
	CanvasWidth  int             `yaml:"canvasWidth"`
	CanvasHeight int             `yaml:"canvasHeight"`
	LogoSize     int             `yaml:"logoSize"`
	CornerRadius int             `yaml:"cornerRadius"`
	Variants     []VariantConfig `yaml:"variants" validate:"dive"`
	Manifest     Manifest        `yaml:"manifest"`
	Commands     []CommandConfig `yaml:"commands"`
}

// DefaultConfig returns the configuration used when no config file is present.
// The defaults produce iPhone-sized splash screens for a dark and a light
// appearance from the bundled app icon.
func DefaultConfig() *ServiceConfig {
	return &ServiceConfig{
		Port:         8080,
		LogoPath:     "assets/AI_Companion_icon.png",
		OutputDir:    "assets",
		CanvasWidth:  1284,
		CanvasHeight: 2778,
		LogoSize:     480,
		CornerRadius: 120,
		Variants: []VariantConfig{
			{Name: "splash-dark", Background: "#000000", Filename: "splash-dark.png"},
			{Name: "splash-light", Background: "#F2F2F7", Filename: "splash-light.png"},
		},
		Manifest: Manifest{
			Enabled: false,
			Type:    "sqlite",
		},
	}
}

// LoadConfig loads configuration from the specified YAML file. Values not set
// in the file keep their defaults.
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Parse YAML over the defaults
	config := DefaultConfig()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return config, nil
}

// Validate checks the loaded configuration for inconsistencies
func (config *ServiceConfig) Validate() error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration values: %w", err)
	}
	if config.CanvasWidth <= 0 || config.CanvasHeight <= 0 {
		return fmt.Errorf("canvas dimensions must be positive, got %dx%d", config.CanvasWidth, config.CanvasHeight)
	}
	if config.LogoSize <= 0 {
		return fmt.Errorf("logo size must be positive, got %d", config.LogoSize)
	}
	if config.CornerRadius < 0 {
		return fmt.Errorf("corner radius must not be negative, got %d", config.CornerRadius)
	}
	if 2*config.CornerRadius > config.LogoSize {
		return fmt.Errorf("corner radius %d exceeds half the logo size %d", config.CornerRadius, config.LogoSize)
	}
	if err := validateVariants(config.Variants); err != nil {
		return fmt.Errorf("invalid variant configuration: %w", err)
	}
	if err := validateCommands(config.Commands); err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}
	return nil
}

// validateVariants ensures all variant configurations have required fields
func validateVariants(variants []VariantConfig) error {
	if len(variants) == 0 {
		return fmt.Errorf("at least one variant is required")
	}

	seenNames := make(map[string]bool)
	seenFilenames := make(map[string]bool)

	for i, variant := range variants {
		if variant.Name == "" {
			return fmt.Errorf("variant at index %d has empty name", i)
		}
		if variant.Background == "" {
			return fmt.Errorf("variant %s has empty background", variant.Name)
		}
		if variant.Filename == "" {
			return fmt.Errorf("variant %s has empty filename", variant.Name)
		}

		if seenNames[variant.Name] {
			return fmt.Errorf("duplicate variant name: %s", variant.Name)
		}
		seenNames[variant.Name] = true

		if seenFilenames[variant.Filename] {
			return fmt.Errorf("duplicate variant filename: %s", variant.Filename)
		}
		seenFilenames[variant.Filename] = true
	}

	return nil
}

// validateCommands ensures all command configurations have required fields
func validateCommands(commands []CommandConfig) error {
	seenNames := make(map[string]bool)

	for i, cmd := range commands {
		// Validate name is not empty
		if cmd.Name == "" {
			return fmt.Errorf("command at index %d has empty name", i)
		}

		// Validate name is unique
		if seenNames[cmd.Name] {
			return fmt.Errorf("duplicate command name: %s", cmd.Name)
		}
		seenNames[cmd.Name] = true
	}

	return nil
}
