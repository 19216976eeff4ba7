package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/azops/internal/config"
	dserrors "github.com/systmms/azops/internal/errors"
	"github.com/systmms/azops/internal/keyvault"
	"github.com/systmms/azops/internal/output"
)

// NewKeyVaultCommand creates the keyvault command group
func NewKeyVaultCommand(cfg *config.Config, opts ...Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keyvault",
		Aliases: []string{"kv"},
		Short:   "Inspect Azure Key Vault resources",
	}

	cmd.AddCommand(newKeyVaultGetCommand(cfg, opts))
	return cmd
}

func newKeyVaultGetCommand(cfg *config.Config, opts []Option) *cobra.Command {
	var (
		name          string
		resourceGroup string
	)

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one vault or list all vaults",
		Long: `Show the management-plane view of Key Vaults.

With --name a single vault is shown in detail, including its access
policies with resolved principal names and its network rule set. Without
--name every vault in the resource group (or in the subscription when no
resource group is configured) is listed.

Examples:
  # List every vault in the subscription
  azops keyvault get

  # Show one vault
  azops keyvault get --name kv-prod --resource-group rg-prod

  # Machine-readable output
  azops keyvault get --resource-group rg-prod --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("name") && name == "" {
				return dserrors.UserError{
					Message:    "Vault name cannot be empty",
					Suggestion: "Omit --name to list all vaults",
				}
			}
			if resourceGroup != "" {
				cfg.ResourceGroup = resourceGroup
			}

			if err := cfg.Load(); err != nil {
				return err
			}
			format, err := cfg.OutputFormat()
			if err != nil {
				return err
			}
			printer, err := output.NewPrinter(cmd.OutOrStdout(), format)
			if err != nil {
				return err
			}

			cl := newClients(cfg, opts)
			client, err := cl.vaultsClient()
			if err != nil {
				return err
			}
			lookup, err := cl.directoryLookup()
			if err != nil {
				return err
			}

			var sel keyvault.Selector = keyvault.ByAll{}
			if name != "" {
				sel = keyvault.ByVaultName{Name: name}
			}

			vaults, err := keyvault.GetVaults(cmd.Context(), client, lookup, sel)
			if err != nil {
				return azureError("keyvault get", err)
			}

			if _, single := sel.(keyvault.ByVaultName); single {
				return printer.PrintDetail(vaults[0])
			}
			if len(vaults) == 0 && format == output.FormatTable {
				cl.logger().Info("No vaults found")
				return nil
			}
			return output.Print(printer, vaults)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Vault name (omit to list all vaults)")
	cmd.Flags().StringVarP(&resourceGroup, "resource-group", "g", "", "Resource group (overrides azops.yaml)")

	return cmd
}
