package config

// FoundryConfig represents the parts of foundry.toml the deployer reads
type FoundryConfig struct {
	Profile      map[string]ProfileConfig `toml:"profile"`
	RpcEndpoints map[string]string        `toml:"rpc_endpoints"`
}

// ProfileConfig represents a profile's foundry configuration
type ProfileConfig struct {
	SrcPath     string `toml:"src,omitempty"`
	OutPath     string `toml:"out,omitempty"`
	SolcVersion string `toml:"solc_version,omitempty"`
}

// OutDir returns the artifact directory of the default profile, relative to the project root
func (c *FoundryConfig) OutDir() string {
	if c != nil {
		if profile, ok := c.Profile["default"]; ok && profile.OutPath != "" {
			return profile.OutPath
		}
	}
	return "out"
}
