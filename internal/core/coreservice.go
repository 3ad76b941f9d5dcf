package core

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jo-hoe/gosplash/internal/commandstructure"
	"github.com/jo-hoe/gosplash/internal/manifest"
)

type CoreService struct {
	config          *ServiceConfig
	manifestService manifest.ManifestService
}

func NewCoreService(config *ServiceConfig) (*CoreService, error) {
	service := &CoreService{
		config: config,
	}

	if config.Manifest.Enabled {
		manifestService, err := getManifestService(config)
		if err != nil {
			return nil, err
		}
		service.manifestService = manifestService
	}

	return service, nil
}

func getManifestService(config *ServiceConfig) (manifest.ManifestService, error) {
	manifestService, err := manifest.NewManifest(config.Manifest.Type, config.Manifest.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize manifest: %w", err)
	}
	slog.Info("manifest initialized successfully", "type", config.Manifest.Type)
	return manifestService, nil
}

// ResolveProjectRoot walks upward from the working directory until it finds a
// directory containing the configured logo path. The binary may be invoked
// from the project root or any subdirectory. When no ancestor qualifies, the
// working directory is returned and the missing-logo check reports from there.
func (service *CoreService) ResolveProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		slog.Error("failed to determine working directory", "error", err)
		return "."
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, service.config.LogoPath)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd
		}
		dir = parent
	}
}

// GenerateAll produces every configured splash screen variant and returns the
// paths of the files it wrote. A missing logo is reported on the console and
// treated as a no-op, not an error.
func (service *CoreService) GenerateAll() ([]string, error) {
	root := service.ResolveProjectRoot()
	logoPath := filepath.Join(root, service.config.LogoPath)
	outputDir := filepath.Join(root, service.config.OutputDir)

	if _, err := os.Stat(logoPath); err != nil {
		fmt.Printf("Error: Logo not found at %s\n", logoPath)
		return nil, nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	fmt.Println("Generating splash screens...")
	fmt.Printf("Logo: %s\n", logoPath)
	fmt.Printf("Output directory: %s\n", outputDir)
	fmt.Println()

	logoData, err := os.ReadFile(logoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read logo %s: %w", logoPath, err)
	}

	createdPaths := make([]string, 0, len(service.config.Variants))
	for _, variant := range service.config.Variants {
		outputPath := filepath.Join(outputDir, variant.Filename)

		slog.Debug("generating splash screen variant",
			"variant", variant.Name,
			"background", variant.Background,
			"output_path", outputPath)

		data, err := commandstructure.ExecuteCommands(logoData, service.pipelineConfigs(variant))
		if err != nil {
			return createdPaths, fmt.Errorf("failed to generate variant %s: %w", variant.Name, err)
		}

		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return createdPaths, fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		fmt.Printf("✓ Created: %s\n", outputPath)
		createdPaths = append(createdPaths, outputPath)

		if err := service.recordAsset(variant, outputPath, data); err != nil {
			return createdPaths, err
		}
	}

	fmt.Println()
	fmt.Println("✅ All splash screens generated successfully!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Run: npx expo prebuild --clean")
	fmt.Println("2. Run: npx expo run:ios --device")

	return createdPaths, nil
}

// pipelineConfigs assembles the command pipeline for one variant. Custom
// commands from the configuration replace the default pre-composition stages;
// composition onto the variant background always runs last so the output
// keeps canvas dimensions and full opacity for any pipeline.
func (service *CoreService) pipelineConfigs(variant VariantConfig) []commandstructure.CommandConfig {
	configs := make([]commandstructure.CommandConfig, 0, len(service.config.Commands)+2)

	if len(service.config.Commands) > 0 {
		for _, command := range service.config.Commands {
			configs = append(configs, commandstructure.CommandConfig{
				Name:   command.Name,
				Params: command.Params,
			})
		}
	} else {
		configs = append(configs,
			commandstructure.CommandConfig{
				Name: "PngConverterCommand",
				Params: map[string]any{
					"svgFallbackWidth":  service.config.LogoSize,
					"svgFallbackHeight": service.config.LogoSize,
				},
			},
			commandstructure.CommandConfig{
				Name: "ResizeCommand",
				Params: map[string]any{
					"width":  service.config.LogoSize,
					"height": service.config.LogoSize,
				},
			},
			commandstructure.CommandConfig{
				Name: "RoundCornersCommand",
				Params: map[string]any{
					"radius": service.config.CornerRadius,
				},
			},
		)
	}

	configs = append(configs,
		commandstructure.CommandConfig{
			Name: "ComposeCommand",
			Params: map[string]any{
				"width":      service.config.CanvasWidth,
				"height":     service.config.CanvasHeight,
				"background": variant.Background,
			},
		},
		commandstructure.CommandConfig{
			Name: "FlattenCommand",
			Params: map[string]any{
				"background": variant.Background,
			},
		},
	)

	return configs
}

func (service *CoreService) recordAsset(variant VariantConfig, path string, data []byte) error {
	if service.manifestService == nil {
		return nil
	}

	asset := &manifest.Asset{
		Variant:     variant.Name,
		Path:        path,
		Width:       service.config.CanvasWidth,
		Height:      service.config.CanvasHeight,
		Background:  variant.Background,
		ContentHash: manifest.ContentHash(data),
		SizeBytes:   int64(len(data)),
	}
	if err := service.manifestService.RecordAsset(asset); err != nil {
		return fmt.Errorf("failed to record asset %s in manifest: %w", variant.Name, err)
	}

	slog.Debug("asset recorded in manifest",
		"variant", variant.Name,
		"content_hash", asset.ContentHash,
		"size_bytes", asset.SizeBytes)
	return nil
}

// GetManifestService exposes the manifest for read access, nil when disabled
func (service *CoreService) GetManifestService() manifest.ManifestService {
	return service.manifestService
}

func (service *CoreService) Close() error {
	if service.manifestService != nil {
		return service.manifestService.Close()
	}
	return nil
}
