package signer

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/carmarket/carmarket-deploy/internal/domain"
	"github.com/carmarket/carmarket-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known anvil/hardhat development accounts
const (
	devKey0     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	devKey1     = "59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	devAddress1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func newTestProvider(cfg *config.RuntimeConfig) *Provider {
	return NewProvider(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDefaultSigner(t *testing.T) {
	ctx := context.Background()
	chainID := big.NewInt(31337)

	accounts := &config.DeployFileConfig{
		Accounts: map[string]config.AccountConfig{
			"deployer": {Type: config.AccountTypePrivateKey, PrivateKey: devKey0},
			"backup":   {Type: config.AccountTypePrivateKey, PrivateKey: devKey1},
		},
		AccountOrder: []string{"deployer", "backup"},
	}

	t.Run("first declared account is the default", func(t *testing.T) {
		t.Setenv(EnvPrivateKey, "")
		p := newTestProvider(&config.RuntimeConfig{DeployConfig: accounts})

		signer, err := p.DefaultSigner(ctx, chainID)
		require.NoError(t, err)
		assert.Equal(t, "deployer", signer.Name)
		assert.Equal(t, common.HexToAddress(devAddress0), signer.Address)
		require.NotNil(t, signer.Opts)
		assert.Equal(t, signer.Address, signer.Opts.From)
	})

	t.Run("named account selection", func(t *testing.T) {
		p := newTestProvider(&config.RuntimeConfig{DeployConfig: accounts, Account: "backup"})

		signer, err := p.DefaultSigner(ctx, chainID)
		require.NoError(t, err)
		assert.Equal(t, "backup", signer.Name)
		assert.Equal(t, common.HexToAddress(devAddress1), signer.Address)
	})

	t.Run("unknown named account", func(t *testing.T) {
		p := newTestProvider(&config.RuntimeConfig{DeployConfig: accounts, Account: "treasury"})

		_, err := p.DefaultSigner(ctx, chainID)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoSigner)
		assert.Contains(t, err.Error(), "treasury")
	})

	t.Run("falls back to PRIVATE_KEY", func(t *testing.T) {
		t.Setenv(EnvPrivateKey, devKey1)
		p := newTestProvider(&config.RuntimeConfig{})

		signer, err := p.DefaultSigner(ctx, chainID)
		require.NoError(t, err)
		assert.Equal(t, "env", signer.Name)
		assert.Equal(t, common.HexToAddress(devAddress1), signer.Address)
	})

	t.Run("no accounts and no env", func(t *testing.T) {
		t.Setenv(EnvPrivateKey, "")
		p := newTestProvider(&config.RuntimeConfig{})

		_, err := p.DefaultSigner(ctx, chainID)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoSigner)
	})

	t.Run("invalid key does not leak", func(t *testing.T) {
		p := newTestProvider(&config.RuntimeConfig{DeployConfig: &config.DeployFileConfig{
			Accounts:     map[string]config.AccountConfig{"bad": {Type: config.AccountTypePrivateKey, PrivateKey: "0xnotakey"}},
			AccountOrder: []string{"bad"},
		}})

		_, err := p.DefaultSigner(ctx, chainID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid private key")
		assert.NotContains(t, err.Error(), "notakey")
	})

	t.Run("configured address must match key", func(t *testing.T) {
		p := newTestProvider(&config.RuntimeConfig{DeployConfig: &config.DeployFileConfig{
			Accounts: map[string]config.AccountConfig{
				"deployer": {Type: config.AccountTypePrivateKey, PrivateKey: devKey0, Address: devAddress1},
			},
			AccountOrder: []string{"deployer"},
		}})

		_, err := p.DefaultSigner(ctx, chainID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured address")
	})

	t.Run("nil chain ID", func(t *testing.T) {
		p := newTestProvider(&config.RuntimeConfig{DeployConfig: accounts})

		_, err := p.DefaultSigner(ctx, nil)
		require.Error(t, err)
	})
}

func TestKeystoreSigner(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	key, err := crypto.HexToECDSA(devKey1)
	require.NoError(t, err)

	ks := keystore.NewKeyStore(filepath.Join(dir, "keys"), keystore.LightScryptN, keystore.LightScryptP)
	account, err := ks.ImportECDSA(key, "correct horse")
	require.NoError(t, err)

	rel, err := filepath.Rel(dir, account.URL.Path)
	require.NoError(t, err)

	newCfg := func(password string) *config.RuntimeConfig {
		return &config.RuntimeConfig{
			ProjectRoot: dir,
			DeployConfig: &config.DeployFileConfig{
				Accounts: map[string]config.AccountConfig{
					"cold": {Type: config.AccountTypeKeystore, Keystore: rel, Password: password},
				},
				AccountOrder: []string{"cold"},
			},
		}
	}

	t.Run("decrypts relative keystore path", func(t *testing.T) {
		signer, err := newTestProvider(newCfg("correct horse")).DefaultSigner(ctx, big.NewInt(1))
		require.NoError(t, err)
		assert.Equal(t, common.HexToAddress(devAddress1), signer.Address)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := newTestProvider(newCfg("battery staple")).DefaultSigner(ctx, big.NewInt(1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decrypt keystore")
	})
}
