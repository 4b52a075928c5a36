//go:build wireinject
// +build wireinject

package app

import (
	"github.com/carmarket/carmarket-deploy/internal/adapters"
	"github.com/carmarket/carmarket-deploy/internal/config"
	"github.com/carmarket/carmarket-deploy/internal/logging"
	"github.com/carmarket/carmarket-deploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.NewLogger,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,

		// App
		NewApp,
	)
	return nil, nil
}
