package adapters

import (
	"github.com/carmarket/carmarket-deploy/internal/adapters/blockchain"
	"github.com/carmarket/carmarket-deploy/internal/adapters/repository/contracts"
	"github.com/carmarket/carmarket-deploy/internal/adapters/signer"
	"github.com/carmarket/carmarket-deploy/internal/usecase"
	"github.com/google/wire"
)

// SignerSet provides the default-signer lookup
var SignerSet = wire.NewSet(
	signer.NewProvider,
	wire.Bind(new(usecase.SignerProvider), new(*signer.Provider)),
)

// ContractsSet provides Foundry artifact resolution
var ContractsSet = wire.NewSet(
	contracts.NewRepository,
	wire.Bind(new(usecase.ContractResolver), new(*contracts.Repository)),
)

// BlockchainSet provides the RPC-backed deployer
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.Client)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	SignerSet,
	ContractsSet,
	BlockchainSet,
)
