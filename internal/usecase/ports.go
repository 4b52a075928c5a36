package usecase

import (
	"context"
	"math/big"

	"github.com/carmarket/carmarket-deploy/internal/domain/models"
)

// SignerProvider supplies the account that signs and pays for the deployment
type SignerProvider interface {
	DefaultSigner(ctx context.Context, chainID *big.Int) (*models.Signer, error)
}

// ContractResolver turns a contract name into a deployable factory
type ContractResolver interface {
	ResolveFactory(ctx context.Context, name string) (*models.ContractFactory, error)
}

// ContractDeployer submits creation transactions and waits for them to be mined
type ContractDeployer interface {
	ChainID(ctx context.Context) (*big.Int, error)
	Deploy(ctx context.Context, signer *models.Signer, factory *models.ContractFactory) (*models.PendingDeployment, error)
	WaitDeployed(ctx context.Context, pending *models.PendingDeployment) (*models.Deployment, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
}
