package usecase_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/carmarket/carmarket-deploy/internal/adapters/blockchain"
	"github.com/carmarket/carmarket-deploy/internal/adapters/progress"
	"github.com/carmarket/carmarket-deploy/internal/adapters/repository/contracts"
	"github.com/carmarket/carmarket-deploy/internal/adapters/signer"
	"github.com/carmarket/carmarket-deploy/internal/cli/render"
	"github.com/carmarket/carmarket-deploy/internal/domain/config"
	"github.com/carmarket/carmarket-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var deployedLine = regexp.MustCompile(`^Deployed CarMarketplace Contract at: 0x[0-9a-fA-F]{40}$`)

// carMarketplaceArtifact is a minimal forge artifact whose creation code deploys a one-byte runtime
const carMarketplaceArtifact = `{
  "abi": [{"type":"function","name":"listCar","inputs":[{"name":"price","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"}],
  "bytecode": {"object": "0x6001600c60003960016000f300", "sourceMap": "", "linkReferences": {}},
  "deployedBytecode": {"object": "0x00", "sourceMap": "", "linkReferences": {}},
  "metadata": {"settings": {"compilationTarget": {"src/CarMarketplace.sol": "CarMarketplace"}}}
}`

type simulatedProject struct {
	sim  *simulated.Backend
	uc   *usecase.DeployContract
	from common.Address
}

func newSimulatedProject(t *testing.T) *simulatedProject {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	root := t.TempDir()
	artifactDir := filepath.Join(root, "out", "CarMarketplace.sol")
	require.NoError(t, os.MkdirAll(artifactDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(artifactDir, "CarMarketplace.json"), []byte(carMarketplaceArtifact), 0644))

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	balance := new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18))
	sim := simulated.NewBackend(types.GenesisAlloc{from: {Balance: balance}})
	t.Cleanup(func() { sim.Close() })

	cfg := &config.RuntimeConfig{
		ProjectRoot:   root,
		ContractName:  config.DefaultContractName,
		FoundryConfig: &config.FoundryConfig{},
		DeployConfig: &config.DeployFileConfig{
			Accounts: map[string]config.AccountConfig{
				"deployer": {Type: config.AccountTypePrivateKey, PrivateKey: hexutil.Encode(crypto.FromECDSA(key))},
			},
			AccountOrder: []string{"deployer"},
		},
	}

	client := blockchain.NewClientWithBackend(sim.Client(), &config.Network{Name: "simulated"}, log)
	uc := usecase.NewDeployContract(
		cfg,
		signer.NewProvider(cfg, log),
		contracts.NewRepository(cfg, log),
		client,
		progress.NewNopSink(),
		log,
	)

	return &simulatedProject{sim: sim, uc: uc, from: from}
}

// run deploys while blocks are being committed so the confirmation wait can finish
func (p *simulatedProject) run(t *testing.T, ctx context.Context) *usecase.DeployContractResult {
	t.Helper()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p.sim.Commit()
			}
		}
	}()

	result, err := p.uc.Run(ctx, usecase.DeployContractParams{})
	require.NoError(t, err)
	return result
}

func TestDeployContractOnSimulatedChain(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	project := newSimulatedProject(t)
	result := project.run(t, ctx)

	deployment := result.Deployment
	assert.Equal(t, "CarMarketplace", deployment.ContractName)
	assert.Equal(t, crypto.CreateAddress(project.from, 0), deployment.Address)
	assert.Equal(t, "deployer", result.Signer)
	assert.Equal(t, filepath.Join("out", "CarMarketplace.sol", "CarMarketplace.json"), result.ArtifactPath)

	// The reported address holds the deployed runtime code
	code, err := project.sim.Client().CodeAt(ctx, deployment.Address, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, code)

	var out bytes.Buffer
	require.NoError(t, render.NewDeploymentRenderer(&out, false, false).RenderDeployment(deployment))

	var lines []string
	for _, line := range strings.Split(out.String(), "\n") {
		if deployedLine.MatchString(line) {
			lines = append(lines, line)
		}
	}
	require.Len(t, lines, 1)
	assert.Equal(t, "Deployed CarMarketplace Contract at: "+deployment.Address.Hex(), lines[0])

	t.Run("a second run deploys a new instance", func(t *testing.T) {
		second := project.run(t, ctx)
		assert.NotEqual(t, deployment.Address, second.Deployment.Address)
		assert.Equal(t, crypto.CreateAddress(project.from, 1), second.Deployment.Address)
	})
}
