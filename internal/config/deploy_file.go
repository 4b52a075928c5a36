package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/carmarket/carmarket-deploy/internal/domain/config"
)

// deployFileRaw is a helper for TOML parsing of deploy.toml.
// Top-level settings (network, contract, ...) are read by viper, not here.
type deployFileRaw struct {
	Accounts map[string]config.AccountConfig `toml:"accounts"`
}

// LoadDeployConfig loads the [accounts.*] sections of deploy.toml.
// Returns (nil, nil) if deploy.toml doesn't exist.
func LoadDeployConfig(projectRoot string) (*config.DeployFileConfig, error) {
	deployPath := filepath.Join(projectRoot, "deploy.toml")

	if _, err := os.Stat(deployPath); os.IsNotExist(err) {
		return nil, nil
	}

	var raw deployFileRaw
	md, err := toml.DecodeFile(deployPath, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse deploy.toml: %w", err)
	}

	cfg := &config.DeployFileConfig{
		Accounts: make(map[string]config.AccountConfig),
	}

	// Keys() reports tables in file order, which makes the first account the default
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != "accounts" {
			continue
		}
		name := key[1]
		acct, ok := raw.Accounts[name]
		if !ok {
			continue
		}

		switch acct.Type {
		case config.AccountTypePrivateKey, config.AccountTypeKeystore:
		default:
			return nil, fmt.Errorf("account '%s': unsupported type %q", name, acct.Type)
		}

		acct.Address = os.ExpandEnv(acct.Address)
		acct.PrivateKey = os.ExpandEnv(acct.PrivateKey)
		acct.Keystore = os.ExpandEnv(acct.Keystore)
		acct.Password = os.ExpandEnv(acct.Password)

		cfg.Accounts[name] = acct
		cfg.AccountOrder = append(cfg.AccountOrder, name)
	}

	return cfg, nil
}
