package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/carmarket/carmarket-deploy/internal/domain/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// DeploymentRenderer renders the outcome of a deployment run
type DeploymentRenderer struct {
	out     io.Writer
	json    bool
	verbose bool
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, jsonOutput, verbose bool) *DeploymentRenderer {
	return &DeploymentRenderer{
		out:     out,
		json:    jsonOutput,
		verbose: verbose,
	}
}

// RenderDeployment prints the deployed address.
// The plain form is a single line followed by an empty one.
func (r *DeploymentRenderer) RenderDeployment(deployment *models.Deployment) error {
	if r.json {
		data, err := json.MarshalIndent(deployment, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(data))
		return err
	}

	// The success line is never colored
	if _, err := fmt.Fprintf(r.out, "Deployed %s Contract at: %s\n\n", deployment.ContractName, deployment.Address.Hex()); err != nil {
		return err
	}

	if r.verbose {
		_, err := fmt.Fprintln(r.out, renderDetails(deployment))
		return err
	}
	return nil
}

// renderDetails renders a borderless key/value table of the deployment
func renderDetails(deployment *models.Deployment) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, Colors: text.Colors{text.Bold}},
		{Number: 2, Align: text.AlignLeft},
	})

	t.AppendRow(table.Row{"Transaction", deployment.TransactionHash.Hex()})
	t.AppendRow(table.Row{"Deployer", deployment.Deployer.Hex()})
	if deployment.Network != "" {
		t.AppendRow(table.Row{"Network", deployment.Network})
	}
	t.AppendRow(table.Row{"Chain ID", deployment.ChainID})

	return t.Render()
}
