package cmd_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/catalog"
	"github.com/go-arrower/catalog/cmd"
)

var errContainerFailed = errors.New("container failed")

// newTestCLI returns a cli persisting its products in a temporary dir,
// so consecutive commands of one test see the same products.
func newTestCLI(t *testing.T) (func() *cobra.Command, string) {
	t.Helper()

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")

	err := os.WriteFile(configFile, []byte(`environment: test
log:
  level: error
store:
  kind: memory
  dir: `+dir+`
`), 0o600)
	require.NoError(t, err)

	return func() *cobra.Command {
		return cmd.NewCatalogCLI(catalog.InitialiseDefaultDependencies)
	}, configFile
}

func failingContainer(_ context.Context, _ *catalog.Config) (*catalog.Container, error) {
	return nil, errContainerFailed
}
