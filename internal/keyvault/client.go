package keyvault

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	dserrors "github.com/systmms/azops/internal/errors"
	"github.com/systmms/azops/internal/logging"
	"github.com/systmms/azops/internal/metrics"
)

// VaultsClient defines the vault operations azops needs.
// This allows for mocking in tests.
type VaultsClient interface {
	GetVault(ctx context.Context, name string) (*armkeyvault.Vault, error)
	ListVaults(ctx context.Context) ([]*armkeyvault.Vault, error)
}

// ARMClient implements VaultsClient on top of armkeyvault. It is scoped to a
// resource group when one is given and to the whole subscription otherwise.
type ARMClient struct {
	vaults        *armkeyvault.VaultsClient
	resourceGroup string
	logger        *logging.Logger
}

// NewARMClient creates a vaults client for subscriptionID.
func NewARMClient(subscriptionID, resourceGroup string, cred azcore.TokenCredential, opts *arm.ClientOptions, logger *logging.Logger) (*ARMClient, error) {
	vaults, err := armkeyvault.NewVaultsClient(subscriptionID, cred, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault management client: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &ARMClient{
		vaults:        vaults,
		resourceGroup: resourceGroup,
		logger:        logger,
	}, nil
}

// GetVault fetches a single vault. Vault names are global, but the
// management API addresses them through their resource group.
func (c *ARMClient) GetVault(ctx context.Context, name string) (*armkeyvault.Vault, error) {
	if c.resourceGroup == "" {
		return nil, dserrors.ConfigError{
			Field:      "resource_group",
			Message:    "a resource group is required to get a vault by name",
			Suggestion: "Pass --resource-group or set resource_group in azops.yaml",
		}
	}

	c.logger.Debug("GET vault %s in resource group %s", name, c.resourceGroup)
	start := time.Now()
	resp, err := c.vaults.Get(ctx, c.resourceGroup, name, nil)
	metrics.RecordRequest("vaults.get", start, err)
	if err != nil {
		return nil, err
	}
	return &resp.Vault, nil
}

// ListVaults drains the list pager for the configured scope.
func (c *ARMClient) ListVaults(ctx context.Context) ([]*armkeyvault.Vault, error) {
	start := time.Now()
	var vaults []*armkeyvault.Vault
	var err error

	if c.resourceGroup != "" {
		c.logger.Debug("LIST vaults in resource group %s", c.resourceGroup)
		vaults, err = drain(ctx, c.vaults.NewListByResourceGroupPager(c.resourceGroup, nil), func(p armkeyvault.VaultsClientListByResourceGroupResponse) []*armkeyvault.Vault {
			return p.Value
		})
	} else {
		c.logger.Debug("LIST vaults in subscription")
		vaults, err = drain(ctx, c.vaults.NewListBySubscriptionPager(nil), func(p armkeyvault.VaultsClientListBySubscriptionResponse) []*armkeyvault.Vault {
			return p.Value
		})
	}

	metrics.RecordRequest("vaults.list", start, err)
	if err != nil {
		return nil, err
	}
	return vaults, nil
}

type pager[P any] interface {
	More() bool
	NextPage(ctx context.Context) (P, error)
}

func drain[P any](ctx context.Context, p pager[P], values func(P) []*armkeyvault.Vault) ([]*armkeyvault.Vault, error) {
	var out []*armkeyvault.Vault
	for p.More() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, v := range values(page) {
			if v != nil {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

var _ VaultsClient = (*ARMClient)(nil)
