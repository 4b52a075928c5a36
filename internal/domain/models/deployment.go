package models

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PendingDeployment is a submitted creation transaction that has not been confirmed yet
type PendingDeployment struct {
	ContractName string
	Deployer     common.Address
	Transaction  *types.Transaction
}

// Deployment is a confirmed contract deployment
type Deployment struct {
	ContractName    string         `json:"contractName"`
	Address         common.Address `json:"address"`
	TransactionHash common.Hash    `json:"transactionHash"`
	Deployer        common.Address `json:"deployer"`
	ChainID         uint64         `json:"chainId"`
	Network         string         `json:"network,omitempty"`
}
