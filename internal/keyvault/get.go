package keyvault

import (
	"context"
	"fmt"

	"github.com/systmms/azops/internal/directory"
)

// Selector chooses between fetching one vault and listing all of them.
// It is either ByVaultName or ByAll.
type Selector interface {
	vaultSelector()
}

// ByVaultName selects a single vault.
type ByVaultName struct {
	Name string
}

// ByAll selects every vault in scope.
type ByAll struct{}

func (ByVaultName) vaultSelector() {}
func (ByAll) vaultSelector()       {}

// GetVaults issues exactly one client call for sel and projects each
// returned vault, preserving the order the client returned them in.
func GetVaults(ctx context.Context, client VaultsClient, lookup directory.Lookup, sel Selector) ([]*Vault, error) {
	switch s := sel.(type) {
	case ByVaultName:
		wire, err := client.GetVault(ctx, s.Name)
		if err != nil {
			return nil, err
		}
		vault, err := ProjectVault(ctx, wire, lookup)
		if err != nil {
			return nil, err
		}
		return []*Vault{vault}, nil

	case ByAll:
		wires, err := client.ListVaults(ctx)
		if err != nil {
			return nil, err
		}
		vaults := make([]*Vault, 0, len(wires))
		for _, wire := range wires {
			vault, err := ProjectVault(ctx, wire, lookup)
			if err != nil {
				return nil, err
			}
			vaults = append(vaults, vault)
		}
		return vaults, nil
	}

	return nil, fmt.Errorf("unsupported vault selector %T", sel)
}
