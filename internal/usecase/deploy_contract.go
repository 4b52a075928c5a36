package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carmarket/carmarket-deploy/internal/domain"
	"github.com/carmarket/carmarket-deploy/internal/domain/config"
	"github.com/carmarket/carmarket-deploy/internal/domain/models"
)

// Deployment stages reported to the ProgressSink
const (
	StageSigner    = "signer"
	StageArtifact  = "artifact"
	StageBroadcast = "broadcast"
	StageConfirm   = "confirm"
	StageComplete  = "complete"
	StageFailed    = "failed"
)

// DeployContractParams contains parameters for a deployment
type DeployContractParams struct {
	// ContractName overrides the configured contract
	ContractName string
}

// DeployContractResult contains the confirmed deployment
type DeployContractResult struct {
	Deployment   *models.Deployment
	Signer       string
	ArtifactPath string
}

// DeployContract deploys one contract with the default signer and waits for confirmation
type DeployContract struct {
	config    *config.RuntimeConfig
	signers   SignerProvider
	contracts ContractResolver
	deployer  ContractDeployer
	sink      ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	signers SignerProvider,
	contracts ContractResolver,
	deployer ContractDeployer,
	sink ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:    cfg,
		signers:   signers,
		contracts: contracts,
		deployer:  deployer,
		sink:      sink,
		log:       log,
	}
}

// Run executes the deployment. The steps run strictly in order and the first
// failure aborts the run; nothing is retried.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	name := params.ContractName
	if name == "" {
		name = uc.config.ContractName
	}
	if name == "" {
		name = config.DefaultContractName
	}

	// 1. Default signer
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageSigner, Message: "Acquiring signer", Spinner: true})
	chainID, err := uc.deployer.ChainID(ctx)
	if err != nil {
		return nil, uc.fail(ctx, StageSigner, err)
	}
	signer, err := uc.signers.DefaultSigner(ctx, chainID)
	if err != nil {
		return nil, uc.fail(ctx, StageSigner, err)
	}
	uc.log.Debug("using signer", "account", signer.Name, "address", signer.Address.Hex(), "chainId", chainID)
	uc.sink.Info(fmt.Sprintf("Deployer: %s (%s)", signer.Address.Hex(), signer.Name))

	// 2. Contract factory
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageArtifact, Message: fmt.Sprintf("Loading %s artifact", name), Spinner: true})
	factory, err := uc.contracts.ResolveFactory(ctx, name)
	if err != nil {
		return nil, uc.fail(ctx, StageArtifact, err)
	}
	uc.log.Debug("resolved contract factory", "contract", factory.Name, "artifact", factory.ArtifactPath)

	// 3. Submit and wait for confirmation
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageBroadcast, Message: fmt.Sprintf("Deploying %s", factory.Name), Spinner: true})
	pending, err := uc.deployer.Deploy(ctx, signer, factory)
	if err != nil {
		return nil, uc.fail(ctx, StageBroadcast, err)
	}
	uc.sink.Info(fmt.Sprintf("Transaction sent: %s", pending.Transaction.Hash().Hex()))

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirm,
		Message: fmt.Sprintf("Waiting for %s to be mined", pending.Transaction.Hash().Hex()),
		Spinner: true,
	})
	deployment, err := uc.deployer.WaitDeployed(ctx, pending)
	if err != nil {
		return nil, uc.fail(ctx, StageConfirm, err)
	}

	// 4. Report
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageComplete, Message: "Deployment confirmed"})
	uc.log.Info("contract deployed", "contract", deployment.ContractName, "address", deployment.Address.Hex(), "tx", deployment.TransactionHash.Hex())

	return &DeployContractResult{
		Deployment:   deployment,
		Signer:       signer.Name,
		ArtifactPath: factory.ArtifactPath,
	}, nil
}

func (uc *DeployContract) fail(ctx context.Context, step string, err error) error {
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageFailed, Message: step})
	return &domain.DeploymentError{Step: step, Err: err}
}
