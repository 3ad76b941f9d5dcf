package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/jo-hoe/gosplash/internal/core"

	_ "github.com/jo-hoe/gosplash/internal/commands"
)

func getConfigPath() string {
	// First check if config path is provided via environment variable
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath
	}

	// Default to splash.yaml in current working directory
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return filepath.Join(cwd, "splash.yaml")
}

// loadConfig falls back to built-in defaults when no config file exists,
// so a standard project layout needs no setup at all.
func loadConfig(configPath string) (*core.ServiceConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return core.DefaultConfig(), nil
	}
	return core.LoadConfig(configPath)
}

func main() {
	configPath := getConfigPath()
	config, err := loadConfig(configPath)
	if err != nil {
		log.Printf("failed to load config from %s: %v", configPath, err)
		panic(err)
	}

	coreService, err := core.NewCoreService(config)
	if err != nil {
		log.Printf("failed to initialize core service: %v", err)
		panic(err)
	}
	defer func() {
		if err := coreService.Close(); err != nil {
			log.Printf("core service close error: %v", err)
		}
	}()

	if _, err := coreService.GenerateAll(); err != nil {
		log.Printf("failed to generate splash screens: %v", err)
		panic(err)
	}
}
