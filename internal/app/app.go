package app

import (
	"github.com/carmarket/carmarket-deploy/internal/adapters/blockchain"
	"github.com/carmarket/carmarket-deploy/internal/domain/config"
	"github.com/carmarket/carmarket-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployContract *usecase.DeployContract

	// Adapters (needed to release the RPC connection)
	Client *blockchain.Client
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployContract *usecase.DeployContract,
	client *blockchain.Client,
) (*App, error) {
	return &App{
		Config:         cfg,
		DeployContract: deployContract,
		Client:         client,
	}, nil
}

// Close releases resources held by adapters
func (a *App) Close() {
	if a.Client != nil {
		a.Client.Close()
	}
}
