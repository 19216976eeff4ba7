package commands

import (
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/systmms/azops/internal/automation"
	"github.com/systmms/azops/internal/azauth"
	"github.com/systmms/azops/internal/config"
	"github.com/systmms/azops/internal/directory"
	dserrors "github.com/systmms/azops/internal/errors"
	"github.com/systmms/azops/internal/keyvault"
	"github.com/systmms/azops/internal/logging"
)

const applicationID = "azops"

// Option overrides how a command obtains its Azure clients
type Option func(*clients)

// WithVaultsClient makes keyvault commands use c instead of Azure
func WithVaultsClient(c keyvault.VaultsClient) Option {
	return func(cl *clients) {
		cl.vaults = c
	}
}

// WithConnectionClient makes automation commands use c instead of Azure
func WithConnectionClient(c automation.ConnectionClient) Option {
	return func(cl *clients) {
		cl.connections = c
	}
}

// WithDirectory replaces the directory lookup
func WithDirectory(l directory.Lookup) Option {
	return func(cl *clients) {
		cl.directory = l
	}
}

// clients lazily builds the SDK clients of one command invocation from the
// loaded configuration. Injected clients are used as is.
type clients struct {
	cfg  *config.Config
	cred azcore.TokenCredential

	vaults      keyvault.VaultsClient
	connections automation.ConnectionClient
	directory   directory.Lookup
}

func newClients(cfg *config.Config, opts []Option) *clients {
	c := &clients{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *clients) logger() *logging.Logger {
	if c.cfg.Logger == nil {
		return logging.Discard()
	}
	return c.cfg.Logger
}

func (c *clients) armOptions() *arm.ClientOptions {
	return &arm.ClientOptions{
		ClientOptions: policy.ClientOptions{
			Telemetry: policy.TelemetryOptions{ApplicationID: applicationID},
		},
	}
}

func (c *clients) credential() (azcore.TokenCredential, error) {
	if c.cred != nil {
		return c.cred, nil
	}
	cred, err := azauth.NewCredential(c.cfg.Credential(), c.cfg.ClientSecret(), c.logger())
	if err != nil {
		return nil, err
	}
	c.cred = cred
	return cred, nil
}

func (c *clients) vaultsClient() (keyvault.VaultsClient, error) {
	if c.vaults != nil {
		return c.vaults, nil
	}

	sub, err := c.cfg.Subscription()
	if err != nil {
		return nil, err
	}
	cred, err := c.credential()
	if err != nil {
		return nil, err
	}
	client, err := keyvault.NewARMClient(sub, c.cfg.ResourceGroupName(), cred, c.armOptions(), c.logger())
	if err != nil {
		return nil, err
	}
	c.vaults = client
	return client, nil
}

func (c *clients) connectionClient() (automation.ConnectionClient, error) {
	if c.connections != nil {
		return c.connections, nil
	}

	sub, err := c.cfg.Subscription()
	if err != nil {
		return nil, err
	}
	rg, err := c.cfg.RequireResourceGroup()
	if err != nil {
		return nil, err
	}
	cred, err := c.credential()
	if err != nil {
		return nil, err
	}
	client, err := automation.NewARMClient(sub, rg, cred, c.armOptions(), c.logger())
	if err != nil {
		return nil, err
	}
	c.connections = client
	return client, nil
}

func (c *clients) directoryLookup() (directory.Lookup, error) {
	if c.directory != nil {
		return c.directory, nil
	}
	if c.cfg.SkipDirectory {
		c.directory = directory.Static{}
		return c.directory, nil
	}

	cred, err := c.credential()
	if err != nil {
		return nil, err
	}
	lookup, err := directory.NewClient(cred, c.armOptions(), directory.WithLogger(c.logger()))
	if err != nil {
		return nil, err
	}
	c.directory = lookup
	return lookup, nil
}

// azureError decorates an upstream failure for display. Errors that are
// already meant for users are returned as they are.
func azureError(operation string, err error) error {
	var userErr dserrors.UserError
	var cfgErr dserrors.ConfigError
	var idErr *dserrors.ResourceIDError
	switch {
	case errors.As(err, &userErr), errors.As(err, &cfgErr), errors.As(err, &idErr):
		return err
	}
	return dserrors.AzureError(operation, err)
}
