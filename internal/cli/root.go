package cli

import (
	"context"
	"fmt"

	"github.com/carmarket/carmarket-deploy/internal/adapters/progress"
	"github.com/carmarket/carmarket-deploy/internal/app"
	"github.com/carmarket/carmarket-deploy/internal/cli/render"
	"github.com/carmarket/carmarket-deploy/internal/config"
	"github.com/carmarket/carmarket-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Running it performs one deployment.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "carmarket-deploy",
		Short: "Deploy the CarMarketplace contract",
		Long: `Deploys the compiled CarMarketplace contract with the default signer
and prints the confirmed address.

The contract artifact is read from the Foundry output directory, so run
forge build first. Accounts come from deploy.toml [accounts.*] (the first
declared account is the default) or from PRIVATE_KEY.

Examples:
  carmarket-deploy
  carmarket-deploy --network sepolia
  carmarket-deploy --rpc-url http://127.0.0.1:8545 --account deployer`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runDeploy,
	}

	rootCmd.Flags().StringP("network", "n", "", "Network from foundry.toml [rpc_endpoints] (default \"localhost\")")
	rootCmd.Flags().String("rpc-url", "", "RPC endpoint, overrides --network lookup")
	rootCmd.Flags().Uint64("chain-id", 0, "Expected chain ID, 0 accepts any")
	rootCmd.Flags().String("contract", "", "Contract to deploy (default \"CarMarketplace\")")
	rootCmd.Flags().String("account", "", "Account from deploy.toml to sign with (default: first declared)")
	rootCmd.Flags().Duration("timeout", 0, "Give up waiting for confirmation after this long (default 5m)")
	rootCmd.Flags().Bool("json", false, "Output the deployment as JSON")
	rootCmd.Flags().BoolP("verbose", "v", false, "Print transaction details")
	rootCmd.Flags().Bool("debug", false, "Enable debug output")

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func runDeploy(cmd *cobra.Command, args []string) error {
	projectRoot, err := config.FindProjectRoot()
	if err != nil {
		// Without foundry.toml the working directory still holds out/ and deploy.toml
		projectRoot = "."
	}

	v, err := config.SetupViper(projectRoot, cmd)
	if err != nil {
		return err
	}

	var sink usecase.ProgressSink
	if v.GetBool("json") {
		sink = progress.NewNopSink()
	} else {
		sink = progress.NewSpinnerSink(cmd.ErrOrStderr())
	}

	appInstance, err := app.InitApp(v, sink)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer appInstance.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if appInstance.Config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
		defer cancel()
	}

	result, err := appInstance.DeployContract.Run(ctx, usecase.DeployContractParams{})
	if err != nil {
		return err
	}

	renderer := render.NewDeploymentRenderer(cmd.OutOrStdout(), appInstance.Config.JSON, appInstance.Config.Verbose)
	return renderer.RenderDeployment(result.Deployment)
}
