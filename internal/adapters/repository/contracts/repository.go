package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/carmarket/carmarket-deploy/internal/domain"
	"github.com/carmarket/carmarket-deploy/internal/domain/config"
	"github.com/carmarket/carmarket-deploy/internal/domain/models"
	"github.com/carmarket/carmarket-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
)

// HardhatArtifactsDir is where Hardhat writes artifacts, relative to the project root
const HardhatArtifactsDir = "artifacts"

// Repository indexes the Foundry output directory and builds contract factories from it.
// It never compiles: artifacts must already exist from a previous forge or hardhat build.
type Repository struct {
	projectRoot   string
	outDir        string
	contracts     map[string]*models.Contract   // key: "path:contractName"
	contractNames map[string][]*models.Contract // key: contract name, value: all contracts with that name
	log           *slog.Logger
	mu            sync.RWMutex
	indexed       bool
}

// NewRepository creates a new artifact repository for the configured project
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	outDir := cfg.FoundryConfig.OutDir()
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(cfg.ProjectRoot, outDir)
	}

	return &Repository{
		projectRoot:   cfg.ProjectRoot,
		outDir:        outDir,
		log:           log,
		contracts:     make(map[string]*models.Contract),
		contractNames: make(map[string][]*models.Contract),
	}
}

// Index discovers all artifacts in the output directory
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	dir, err := r.artifactsDir()
	if err != nil {
		return err
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != ".json" {
			return nil
		}

		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	return nil
}

// artifactsDir returns the Foundry out directory, or the Hardhat artifacts
// directory when the project has only been compiled with Hardhat
func (r *Repository) artifactsDir() (string, error) {
	for _, dir := range []string{r.outDir, filepath.Join(r.projectRoot, HardhatArtifactsDir)} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("artifacts directory %s not found, run forge build first", r.outDir)
}

// processArtifact processes a single artifact file
func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath) //nolint:gosec // walking the project's own out dir
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		r.log.Debug("skipping unreadable artifact", "artifact", artifactPath, "error", err)
		return nil
	}

	// Interfaces and abstract contracts have no creation code
	if artifact.Bytecode.Object == "" || artifact.Bytecode.Object == "0x" {
		return nil
	}

	sourceName, contractName := artifact.Identity()
	if contractName == "" || sourceName == "" {
		r.log.Debug("skipping artifact without compilation target", "artifact", artifactPath)
		return nil
	}

	relArtifactPath, err := filepath.Rel(r.projectRoot, artifactPath)
	if err != nil {
		relArtifactPath = artifactPath
	}

	info := &models.Contract{
		Name:         contractName,
		Path:         sourceName,
		ArtifactPath: relArtifactPath,
		Artifact:     &artifact,
	}

	// Multi-version builds write one artifact per compiler version, keep the first
	key := fmt.Sprintf("%s:%s", info.Path, info.Name)
	if existing, ok := r.contracts[key]; ok {
		r.log.Debug("skipping duplicate artifact", "contract", key, "artifact", info.ArtifactPath, "kept", existing.ArtifactPath)
		return nil
	}

	r.log.Debug("indexed artifact", "contract", info.Name, "source", info.Path, "artifact", info.ArtifactPath)

	r.contracts[key] = info
	r.contractNames[info.Name] = append(r.contractNames[info.Name], info)

	return nil
}

// GetContract finds a contract by name or "path:name"
func (r *Repository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if contract, exists := r.contracts[key]; exists {
		return contract, nil
	}

	// Allow a path suffix like "CarMarketplace.sol:CarMarketplace"
	if idx := strings.LastIndex(key, ":"); idx != -1 {
		path, name := key[:idx], key[idx+1:]
		matches := lo.Filter(r.contractNames[name], func(c *models.Contract, _ int) bool {
			return strings.HasSuffix(c.Path, path)
		})
		return pickOne(key, matches)
	}

	return pickOne(key, r.contractNames[key])
}

// ResolveFactory builds a deployable factory for the named contract
func (r *Repository) ResolveFactory(ctx context.Context, name string) (*models.ContractFactory, error) {
	contract, err := r.GetContract(ctx, name)
	if err != nil {
		return nil, err
	}

	parsed, err := abi.JSON(bytes.NewReader(contract.Artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", contract.Name, err)
	}

	object := contract.Artifact.Bytecode.Object
	if strings.Contains(object, "__$") ||
		len(contract.Artifact.Bytecode.LinkReferences) > 0 ||
		len(contract.Artifact.LinkReferences) > 0 {
		return nil, fmt.Errorf("%s has unlinked library references", contract.Name)
	}

	bytecode := common.FromHex(object)
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%s has no creation bytecode", contract.Name)
	}

	if len(parsed.Constructor.Inputs) > 0 {
		return nil, fmt.Errorf("%s constructor takes %d arguments, only argument-less constructors can be deployed",
			contract.Name, len(parsed.Constructor.Inputs))
	}

	return &models.ContractFactory{
		Name:         contract.Name,
		Path:         contract.Path,
		ArtifactPath: contract.ArtifactPath,
		ABI:          parsed,
		Bytecode:     bytecode,
	}, nil
}

func pickOne(query string, matches []*models.Contract) (*models.Contract, error) {
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, query)
	case 1:
		return matches[0], nil
	default:
		return nil, domain.AmbiguousContractError{Query: query, Matches: matches}
	}
}

// Ensure the adapter implements the interface
var _ usecase.ContractResolver = (*Repository)(nil)
