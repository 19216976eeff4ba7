package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/systmms/azops/internal/config"
	"github.com/systmms/azops/internal/logging"
)

const testTenant = "11111111-1111-1111-1111-111111111111"

// testConfig returns a loaded configuration that needs no file
func testConfig(def *config.Definition) *config.Config {
	if def == nil {
		def = &config.Definition{}
	}
	return &config.Config{
		Logger:     logging.NewWithWriter(&bytes.Buffer{}, false, true),
		Definition: def,
	}
}

// executeCommand runs cmd with args and returns what it wrote to stdout
func executeCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}
