package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/carmarket/carmarket-deploy/internal/domain/models"
)

// Sentinel errors for domain operations
var (
	// ErrDeploymentFailed is matched by every error returned from a deployment run
	ErrDeploymentFailed = errors.New("deployment failed")

	// ErrNoSigner is returned when no account is configured to sign the deployment
	ErrNoSigner = errors.New("no signer available")

	// ErrContractNotFound is returned when a contract can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrChainIDMismatch is returned when the node reports a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")
)

// DeploymentError records which step of a deployment failed.
// It matches ErrDeploymentFailed with errors.Is and unwraps to the cause.
type DeploymentError struct {
	Step string
	Err  error
}

func (e *DeploymentError) Error() string {
	return fmt.Sprintf("deployment failed at %s: %v", e.Step, e.Err)
}

func (e *DeploymentError) Unwrap() error {
	return e.Err
}

func (e *DeploymentError) Is(target error) bool {
	return target == ErrDeploymentFailed
}

// AmbiguousContractError is returned when a contract name matches more than one artifact
type AmbiguousContractError struct {
	Query   string
	Matches []*models.Contract
}

func (e AmbiguousContractError) Error() string {
	sorted := make([]*models.Contract, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	var suggestions []string
	for _, contract := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s:%s", contract.Path, contract.Name))
	}

	return fmt.Sprintf("multiple contracts found matching %q - use path:contract format to disambiguate:\n%s",
		e.Query, strings.Join(suggestions, "\n"))
}
