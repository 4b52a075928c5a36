package models

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Signer is an account able to authorise and pay for a transaction
type Signer struct {
	Name    string
	Address common.Address
	Opts    *bind.TransactOpts
}
