package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/azops/internal/automation"
	"github.com/systmms/azops/internal/config"
	dserrors "github.com/systmms/azops/internal/errors"
	"github.com/systmms/azops/internal/output"
)

// NewAutomationCommand creates the automation command group
func NewAutomationCommand(cfg *config.Config, opts ...Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "automation",
		Short: "Inspect Azure Automation accounts",
	}

	connection := &cobra.Command{
		Use:   "connection",
		Short: "Work with automation connections",
	}
	connection.AddCommand(newConnectionGetCommand(cfg, opts))

	cmd.AddCommand(connection)
	return cmd
}

func newConnectionGetCommand(cfg *config.Config, opts []Option) *cobra.Command {
	var (
		account       string
		name          string
		resourceGroup string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get one connection or list all connections of an account",
		Long: `Retrieve automation connections.

With --name exactly one connection is fetched. Without it every
connection in the account is listed.

Examples:
  # List connections
  azops automation connection get --account ops-automation -g rg-ops

  # Get one connection as YAML
  azops automation connection get --account ops-automation -g rg-ops --name AzureRunAsConnection -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("name") && name == "" {
				return dserrors.UserError{
					Message:    "Connection name cannot be empty",
					Suggestion: "Omit --name to list all connections",
				}
			}
			if resourceGroup != "" {
				cfg.ResourceGroup = resourceGroup
			}

			if err := cfg.Load(); err != nil {
				return err
			}
			if account == "" {
				account = cfg.AutomationAccount()
			}
			if account == "" {
				return dserrors.ConfigError{
					Field:      "automation_account",
					Message:    "no automation account given",
					Suggestion: "Pass --account or set automation_account in azops.yaml",
				}
			}

			format, err := cfg.OutputFormat()
			if err != nil {
				return err
			}
			printer, err := output.NewPrinter(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}

			client, err := newClients(cfg, opts).connectionClient()
			if err != nil {
				return err
			}

			var sel automation.Selector = automation.ByAll{}
			if name != "" {
				sel = automation.ByConnectionName{Name: name}
			}

			conns, err := automation.GetConnections(cmd.Context(), client, account, sel)
			if err != nil {
				return azureError("automation connection get", err)
			}
			return output.Print(printer, conns)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Automation account name")
	cmd.Flags().StringVar(&name, "name", "", "Connection name (omit to list all connections)")
	cmd.Flags().StringVarP(&resourceGroup, "resource-group", "g", "", "Resource group (overrides azops.yaml)")

	return cmd
}
