package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/carmarket/carmarket-deploy/internal/domain"
	"github.com/carmarket/carmarket-deploy/internal/domain/config"
	"github.com/carmarket/carmarket-deploy/internal/domain/models"
	"github.com/carmarket/carmarket-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the node API needed to deploy a contract and wait for it
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client deploys contracts through an RPC node.
// The connection is opened on first use so commands that never touch the chain stay offline.
type Client struct {
	network *config.Network
	log     *slog.Logger

	mu      sync.Mutex
	backend Backend
	closer  func()
	chainID *big.Int
}

// NewClient creates a client for the configured network
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) *Client {
	return &Client{
		network: cfg.Network,
		log:     log,
	}
}

// NewClientWithBackend creates a client over an existing backend
func NewClientWithBackend(backend Backend, network *config.Network, log *slog.Logger) *Client {
	return &Client{
		network: network,
		log:     log,
		backend: backend,
	}
}

// connect establishes connection to the blockchain
func (c *Client) connect(ctx context.Context) (Backend, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend != nil {
		return c.backend, nil
	}

	if c.network == nil || c.network.RPCURL == "" {
		return nil, fmt.Errorf("no RPC URL configured")
	}

	c.log.Debug("connecting to node", "network", c.network.Name, "rpc", c.network.RPCURL)

	client, err := ethclient.DialContext(ctx, c.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	c.backend = client
	c.closer = client.Close

	return c.backend, nil
}

// ChainID returns the node's chain ID, verified against the configured one
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID != nil {
		return new(big.Int).Set(c.chainID), nil
	}

	networkChainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chainID was 0, use the network's chain ID
	if c.network != nil && c.network.ChainID != 0 && networkChainID.Uint64() != c.network.ChainID {
		return nil, fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, c.network.ChainID, networkChainID.Uint64())
	}

	c.chainID = networkChainID
	return new(big.Int).Set(networkChainID), nil
}

// Deploy submits the creation transaction for factory, signed by signer.
// It returns as soon as the node accepted the transaction.
func (c *Client) Deploy(ctx context.Context, signer *models.Signer, factory *models.ContractFactory) (*models.PendingDeployment, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	opts := *signer.Opts
	opts.Context = ctx

	predicted, tx, _, err := bind.DeployContract(&opts, factory.ABI, factory.Bytecode, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to submit %s deployment: %w", factory.Name, err)
	}

	c.log.Debug("deployment submitted",
		"contract", factory.Name,
		"tx", tx.Hash().Hex(),
		"nonce", tx.Nonce(),
		"predicted", predicted.Hex(),
	)

	return &models.PendingDeployment{
		ContractName: factory.Name,
		Deployer:     signer.Address,
		Transaction:  tx,
	}, nil
}

// WaitDeployed blocks until the creation transaction is mined and code exists at the new address.
// There is no timeout besides the one carried by ctx.
func (c *Client) WaitDeployed(ctx context.Context, pending *models.PendingDeployment) (*models.Deployment, error) {
	backend, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	address, err := bind.WaitDeployed(ctx, backend, pending.Transaction)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s deployment %s: %w", pending.ContractName, pending.Transaction.Hash().Hex(), err)
	}

	deployment := &models.Deployment{
		ContractName:    pending.ContractName,
		Address:         address,
		TransactionHash: pending.Transaction.Hash(),
		Deployer:        pending.Deployer,
	}

	c.mu.Lock()
	if c.chainID != nil {
		deployment.ChainID = c.chainID.Uint64()
	}
	c.mu.Unlock()
	if c.network != nil {
		deployment.Network = c.network.Name
	}

	return deployment, nil
}

// Close releases the RPC connection if one was opened
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closer != nil {
		c.closer()
		c.closer = nil
	}
}

// Ensure the adapter implements the interface
var _ usecase.ContractDeployer = (*Client)(nil)
