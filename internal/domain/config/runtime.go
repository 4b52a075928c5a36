package config

import (
	"time"
)

// DefaultContractName is the contract deployed when none is configured
const DefaultContractName = "CarMarketplace"

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Deployment settings
	Network      *Network
	ContractName string
	Account      string // Named account from deploy.toml, empty selects the first one

	// Execution settings
	Debug   bool
	JSON    bool // Output in JSON format
	Verbose bool
	Timeout time.Duration

	// Resolved configurations
	FoundryConfig *FoundryConfig
	DeployConfig  *DeployFileConfig
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId"` // 0 accepts whatever the node reports
}
