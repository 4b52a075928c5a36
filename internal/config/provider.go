package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/carmarket/carmarket-deploy/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// .env has to be loaded before any value below is read from the environment
	LoadEnvFiles(projectRoot)

	cfg := &config.RuntimeConfig{
		ProjectRoot:  projectRoot,
		ContractName: v.GetString("contract"),
		Account:      v.GetString("account"),
		Debug:        v.GetBool("debug"),
		JSON:         v.GetBool("json"),
		Verbose:      v.GetBool("verbose"),
		Timeout:      v.GetDuration("timeout"),
	}

	foundryConfig, err := LoadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}
	cfg.FoundryConfig = foundryConfig

	deployConfig, err := LoadDeployConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load deploy config: %w", err)
	}
	cfg.DeployConfig = deployConfig

	network, err := NewNetworkResolver(foundryConfig).Resolve(v.GetString("network"), v.GetString("rpc_url"))
	if err != nil {
		return nil, err
	}
	network.ChainID = v.GetUint64("chain_id")
	cfg.Network = network

	return cfg, nil
}

// FindProjectRoot walks up from current directory to find foundry.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		foundryToml := filepath.Join(dir, "foundry.toml")
		if _, err := os.Stat(foundryToml); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry project (foundry.toml not found)")
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance.
// Precedence: flags, DEPLOY_* environment, deploy.toml, defaults.
func SetupViper(projectRoot string, cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName("deploy")
	v.SetConfigType("toml")
	v.AddConfigPath(projectRoot)

	v.SetEnvPrefix("DEPLOY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("network", LocalNetworkName)
	v.SetDefault("contract", config.DefaultContractName)
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("project_root", projectRoot)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read deploy.toml: %w", err)
		}
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	return v, nil
}
