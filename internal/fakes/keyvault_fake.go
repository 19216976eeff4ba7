package fakes

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/systmms/azops/internal/keyvault"
)

// FakeVaultsClient is a mock implementation of keyvault.VaultsClient
type FakeVaultsClient struct {
	mu sync.Mutex

	// Vaults maps vault names to the wire resources GetVault returns.
	// ListVaults returns them in the order they were added.
	Vaults map[string]*armkeyvault.Vault
	order  []string

	// GetErr and ListErr are returned instead of data when set
	GetErr  error
	ListErr error

	// GetVaultFunc allows custom behavior for GetVault
	GetVaultFunc func(ctx context.Context, name string) (*armkeyvault.Vault, error)

	GetCalls  []string
	ListCalls int
}

// NewFakeVaultsClient creates an empty fake vaults client
func NewFakeVaultsClient() *FakeVaultsClient {
	return &FakeVaultsClient{
		Vaults: make(map[string]*armkeyvault.Vault),
	}
}

// AddVault registers a wire vault under its name
func (f *FakeVaultsClient) AddVault(v *armkeyvault.Vault) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name := *v.Name
	if _, exists := f.Vaults[name]; !exists {
		f.order = append(f.order, name)
	}
	f.Vaults[name] = v
}

// GetVault implements keyvault.VaultsClient
func (f *FakeVaultsClient) GetVault(ctx context.Context, name string) (*armkeyvault.Vault, error) {
	f.mu.Lock()
	f.GetCalls = append(f.GetCalls, name)
	fn := f.GetVaultFunc
	f.mu.Unlock()

	if fn != nil {
		return fn(ctx, name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	v, ok := f.Vaults[name]
	if !ok {
		return nil, NotFoundError("vault", name)
	}
	return v, nil
}

// ListVaults implements keyvault.VaultsClient
func (f *FakeVaultsClient) ListVaults(_ context.Context) ([]*armkeyvault.Vault, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]*armkeyvault.Vault, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, f.Vaults[name])
	}
	return out, nil
}

// TotalCalls returns the number of GetVault and ListVaults calls made
func (f *FakeVaultsClient) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.GetCalls) + f.ListCalls
}

// NewWireVault builds a minimal, complete wire vault in resourceGroup
func NewWireVault(name, resourceGroup, tenantID string) *armkeyvault.Vault {
	return &armkeyvault.Vault{
		ID:       to.Ptr(fmt.Sprintf("/subscriptions/00000000-0000-0000-0000-000000000001/resourceGroups/%s/providers/Microsoft.KeyVault/vaults/%s", resourceGroup, name)),
		Name:     to.Ptr(name),
		Location: to.Ptr("eastus"),
		Type:     to.Ptr("Microsoft.KeyVault/vaults"),
		Properties: &armkeyvault.VaultProperties{
			TenantID: to.Ptr(tenantID),
			SKU: &armkeyvault.SKU{
				Family: to.Ptr(armkeyvault.SKUFamilyA),
				Name:   to.Ptr(armkeyvault.SKUNameStandard),
			},
			VaultURI: to.Ptr(fmt.Sprintf("https://%s.vault.azure.net/", name)),
		},
	}
}

// NotFoundError returns the error the management API reports for a
// missing resource
func NotFoundError(kind, name string) error {
	req, _ := http.NewRequest(http.MethodGet, "https://management.azure.com/"+kind+"/"+name, nil)
	return &azcore.ResponseError{
		ErrorCode:  "ResourceNotFound",
		StatusCode: http.StatusNotFound,
		RawResponse: &http.Response{
			StatusCode: http.StatusNotFound,
			Status:     "404 Not Found",
			Request:    req,
			Header:     http.Header{},
			Body:       http.NoBody,
		},
	}
}

var _ keyvault.VaultsClient = (*FakeVaultsClient)(nil)
