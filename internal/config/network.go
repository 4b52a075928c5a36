package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/carmarket/carmarket-deploy/internal/domain/config"
)

const (
	// LocalNetworkName is used when no network is selected
	LocalNetworkName = "localhost"

	// DefaultLocalRPCURL is the endpoint of a local anvil or hardhat node
	DefaultLocalRPCURL = "http://127.0.0.1:8545"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// NetworkResolver resolves network names to RPC endpoints using foundry.toml [rpc_endpoints]
type NetworkResolver struct {
	foundryConfig *config.FoundryConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(foundryConfig *config.FoundryConfig) *NetworkResolver {
	return &NetworkResolver{foundryConfig: foundryConfig}
}

// Resolve resolves a network name to its configuration.
// A non-empty rpcURL overrides the endpoint lookup.
func (r *NetworkResolver) Resolve(networkName, rpcURL string) (*config.Network, error) {
	if networkName == "" {
		networkName = LocalNetworkName
	}

	if rpcURL != "" {
		return &config.Network{Name: networkName, RPCURL: rpcURL}, nil
	}

	if r.foundryConfig != nil {
		if raw, exists := r.foundryConfig.RpcEndpoints[networkName]; exists {
			url := os.ExpandEnv(raw)
			if strings.TrimSpace(url) == "" {
				if missing := MissingEnvVars(raw); len(missing) > 0 {
					return nil, fmt.Errorf("RPC URL for network '%s' is empty: %s not set", networkName, strings.Join(missing, ", "))
				}
				return nil, fmt.Errorf("RPC URL for network '%s' is empty", networkName)
			}
			return &config.Network{Name: networkName, RPCURL: url}, nil
		}
	}

	if networkName == LocalNetworkName {
		return &config.Network{Name: networkName, RPCURL: DefaultLocalRPCURL}, nil
	}

	return nil, fmt.Errorf("network '%s' not found in foundry.toml [rpc_endpoints]", networkName)
}

// MissingEnvVars returns the ${VAR} references in raw that are unset or empty
func MissingEnvVars(raw string) []string {
	var missing []string
	for _, match := range envVarPattern.FindAllStringSubmatch(raw, -1) {
		if os.Getenv(match[1]) == "" {
			missing = append(missing, match[1])
		}
	}
	return missing
}
