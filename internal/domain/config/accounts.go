package config

// AccountType identifies how an account's key material is stored
type AccountType string

const (
	AccountTypePrivateKey AccountType = "private_key"
	AccountTypeKeystore   AccountType = "keystore"
)

// AccountConfig represents a named signing entity in [accounts.*] sections of deploy.toml
type AccountConfig struct {
	Type       AccountType `toml:"type"`
	Address    string      `toml:"address,omitempty"`     // Optional, checked against the derived address
	PrivateKey string      `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Keystore   string      `toml:"keystore,omitempty"`    // Path to an encrypted JSON key file
	Password   string      `toml:"password,omitempty"`    //nolint:gosec // holds env var reference, not a literal secret
}

// DeployFileConfig represents deploy.toml.
// AccountOrder keeps the declaration order of [accounts.*] so the first one can act as default.
type DeployFileConfig struct {
	Accounts     map[string]AccountConfig
	AccountOrder []string
}

// DefaultAccount returns the first declared account
func (c *DeployFileConfig) DefaultAccount() (string, AccountConfig, bool) {
	if c == nil || len(c.AccountOrder) == 0 {
		return "", AccountConfig{}, false
	}
	name := c.AccountOrder[0]
	acct, ok := c.Accounts[name]
	return name, acct, ok
}
