package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/carmarket/carmarket-deploy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foundry.toml"), []byte(`
[profile.default]
src = "src"
out = "out"

[rpc_endpoints]
unreachable = "http://127.0.0.1:1"
`), 0644))
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "carmarket-deploy version dev")
}

func TestRootCmdRejectsArguments(t *testing.T) {
	newProject(t)

	stdout, _, err := execute(t, "CarMarketplace")
	require.Error(t, err)
	assert.Empty(t, stdout)
}

func TestRootCmdUnreachableNode(t *testing.T) {
	newProject(t)
	t.Setenv("PRIVATE_KEY", "")

	stdout, _, err := execute(t, "--network", "unreachable", "--timeout", "5s")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeploymentFailed)
	assert.NotContains(t, stdout, "Deployed")
	assert.Empty(t, stdout)
}

func TestRootCmdUnknownNetwork(t *testing.T) {
	newProject(t)

	stdout, _, err := execute(t, "--network", "mainnet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network 'mainnet' not found")
	assert.Empty(t, stdout)
}

func TestRootCmdInvalidDeployConfig(t *testing.T) {
	dir := newProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deploy.toml"), []byte(`
[accounts.hw]
type = "trezor"
`), 0644))

	_, _, err := execute(t, "--rpc-url", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize app")
}
