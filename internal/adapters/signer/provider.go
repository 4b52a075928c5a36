package signer

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/carmarket/carmarket-deploy/internal/domain"
	"github.com/carmarket/carmarket-deploy/internal/domain/config"
	"github.com/carmarket/carmarket-deploy/internal/domain/models"
	"github.com/carmarket/carmarket-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// EnvPrivateKey is read when deploy.toml declares no accounts
const EnvPrivateKey = "PRIVATE_KEY"

// Provider resolves the default signer from deploy.toml accounts or the environment
type Provider struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
}

// NewProvider creates a new signer provider
func NewProvider(cfg *config.RuntimeConfig, log *slog.Logger) *Provider {
	return &Provider{cfg: cfg, log: log}
}

// DefaultSigner returns the selected account, or the first declared one
func (p *Provider) DefaultSigner(ctx context.Context, chainID *big.Int) (*models.Signer, error) {
	if chainID == nil {
		return nil, fmt.Errorf("chain ID is required to build a signer")
	}

	name, acct, err := p.selectAccount()
	if err != nil {
		return nil, err
	}

	var key *ecdsa.PrivateKey
	switch acct.Type {
	case config.AccountTypePrivateKey:
		key, err = parsePrivateKey(acct.PrivateKey)
	case config.AccountTypeKeystore:
		key, err = p.decryptKeystore(acct)
	default:
		err = fmt.Errorf("unsupported account type %q", acct.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("account '%s': %w", name, err)
	}

	address := crypto.PubkeyToAddress(key.PublicKey)
	if acct.Address != "" {
		if !common.IsHexAddress(acct.Address) {
			return nil, fmt.Errorf("account '%s': %w: %s", name, domain.ErrInvalidAddress, acct.Address)
		}
		if common.HexToAddress(acct.Address) != address {
			return nil, fmt.Errorf("account '%s': key belongs to %s, not configured address %s", name, address.Hex(), acct.Address)
		}
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("account '%s': failed to create transactor: %w", name, err)
	}
	opts.Context = ctx

	p.log.Debug("signer ready", "account", name, "type", acct.Type, "address", address.Hex())

	return &models.Signer{
		Name:    name,
		Address: address,
		Opts:    opts,
	}, nil
}

func (p *Provider) selectAccount() (string, config.AccountConfig, error) {
	accounts := p.cfg.DeployConfig

	if p.cfg.Account != "" {
		if accounts != nil {
			if acct, ok := accounts.Accounts[p.cfg.Account]; ok {
				return p.cfg.Account, acct, nil
			}
		}
		return "", config.AccountConfig{}, fmt.Errorf("%w: account '%s' not found in deploy.toml", domain.ErrNoSigner, p.cfg.Account)
	}

	if name, acct, ok := accounts.DefaultAccount(); ok {
		return name, acct, nil
	}

	if key := os.Getenv(EnvPrivateKey); key != "" {
		return "env", config.AccountConfig{Type: config.AccountTypePrivateKey, PrivateKey: key}, nil
	}

	return "", config.AccountConfig{}, fmt.Errorf("%w: declare [accounts.<name>] in deploy.toml or set %s", domain.ErrNoSigner, EnvPrivateKey)
}

func (p *Provider) decryptKeystore(acct config.AccountConfig) (*ecdsa.PrivateKey, error) {
	if acct.Keystore == "" {
		return nil, fmt.Errorf("keystore path is empty")
	}

	path := acct.Keystore
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(p.cfg.ProjectRoot, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // user configured key file
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	key, err := keystore.DecryptKey(data, acct.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore %s: %w", acct.Keystore, err)
	}

	return key.PrivateKey, nil
}

func parsePrivateKey(raw string) (*ecdsa.PrivateKey, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("private key is empty")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X"))
	if err != nil {
		// Never echo the key material
		return nil, fmt.Errorf("invalid private key")
	}
	return key, nil
}

// Ensure the adapter implements the interface
var _ usecase.SignerProvider = (*Provider)(nil)
