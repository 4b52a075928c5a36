package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/carmarket/carmarket-deploy/internal/domain/config"
	"github.com/joho/godotenv"
)

// LoadEnvFiles loads .env and .env.local from the project root.
// Variables already present in the environment win.
func LoadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadFoundryConfig loads foundry.toml. A missing file yields an empty config.
// RPC endpoints are kept raw, ${VAR} references are expanded by the network resolver.
func LoadFoundryConfig(projectRoot string) (*config.FoundryConfig, error) {
	foundryPath := filepath.Join(projectRoot, "foundry.toml")

	cfg := &config.FoundryConfig{}
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		cfg.Profile = make(map[string]config.ProfileConfig)
		cfg.RpcEndpoints = make(map[string]string)
		return cfg, nil
	}

	if _, err := toml.DecodeFile(foundryPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	if cfg.Profile == nil {
		cfg.Profile = make(map[string]config.ProfileConfig)
	}
	if cfg.RpcEndpoints == nil {
		cfg.RpcEndpoints = make(map[string]string)
	}

	return cfg, nil
}
