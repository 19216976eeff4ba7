// Package directory resolves Entra ID tenant and principal identifiers to
// the human-readable names shown next to vaults and access policies.
package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/google/uuid"
	msgraphsdk "github.com/microsoftgraph/msgraph-sdk-go"
	"github.com/microsoftgraph/msgraph-sdk-go/models"
	"github.com/systmms/azops/internal/logging"
	"github.com/systmms/azops/internal/metrics"
)

// GraphScope is the token scope used for Microsoft Graph requests
const GraphScope = "https://graph.microsoft.com/.default"

// Lookup resolves directory identifiers. Every call may hit the network.
type Lookup interface {
	TenantDisplayName(ctx context.Context, tenantID uuid.UUID) (string, error)
	PrincipalDisplayName(ctx context.Context, objectID string) (string, error)
}

// TenantLister lists the tenants visible to the signed-in identity
type TenantLister interface {
	ListTenants(ctx context.Context) ([]*armsubscriptions.TenantIDDescription, error)
}

// ObjectGetter fetches a single directory object by id
type ObjectGetter interface {
	GetObject(ctx context.Context, objectID string) (models.DirectoryObjectable, error)
}

// Client is the Lookup backed by Azure Resource Manager (tenants) and
// Microsoft Graph (principals).
type Client struct {
	tenants TenantLister
	objects ObjectGetter
	logger  *logging.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTenantLister replaces the ARM tenants client (for testing)
func WithTenantLister(l TenantLister) Option {
	return func(c *Client) {
		c.tenants = l
	}
}

// WithObjectGetter replaces the Graph client (for testing)
func WithObjectGetter(g ObjectGetter) Option {
	return func(c *Client) {
		c.objects = g
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a directory client. Real SDK clients are only created
// for collaborators that were not supplied through options.
func NewClient(cred azcore.TokenCredential, clientOpts *arm.ClientOptions, opts ...Option) (*Client, error) {
	c := &Client{logger: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}

	if c.tenants == nil {
		tenants, err := armsubscriptions.NewTenantsClient(cred, clientOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to create tenants client: %w", err)
		}
		c.tenants = &armTenantLister{client: tenants}
	}

	if c.objects == nil {
		graph, err := msgraphsdk.NewGraphServiceClientWithCredentials(cred, []string{GraphScope})
		if err != nil {
			return nil, fmt.Errorf("failed to create Microsoft Graph client: %w", err)
		}
		c.objects = &graphObjectGetter{client: graph}
	}

	return c, nil
}

// TenantDisplayName returns the display name of tenantID. Tenants the caller
// cannot see resolve to the id itself.
func (c *Client) TenantDisplayName(ctx context.Context, tenantID uuid.UUID) (string, error) {
	c.logger.Debug("resolving tenant %s", tenantID)

	tenants, err := c.tenants.ListTenants(ctx)
	metrics.RecordLookup("tenant", err)
	if err != nil {
		return "", err
	}

	for _, tenant := range tenants {
		if tenant == nil || tenant.TenantID == nil {
			continue
		}
		if !strings.EqualFold(*tenant.TenantID, tenantID.String()) {
			continue
		}
		if tenant.DisplayName != nil && *tenant.DisplayName != "" {
			return *tenant.DisplayName, nil
		}
		break
	}
	return tenantID.String(), nil
}

// PrincipalDisplayName returns "name (upn-or-spn)" for users and service
// principals, and the display name alone for other objects.
func (c *Client) PrincipalDisplayName(ctx context.Context, objectID string) (string, error) {
	if strings.TrimSpace(objectID) == "" {
		return "", nil
	}
	c.logger.Debug("resolving principal %s", objectID)

	obj, err := c.objects.GetObject(ctx, objectID)
	metrics.RecordLookup("principal", err)
	if err != nil {
		return "", err
	}
	return DescribeObject(obj), nil
}

// DescribeObject formats a Graph directory object for display
func DescribeObject(obj models.DirectoryObjectable) string {
	var displayName, principalName string

	switch o := obj.(type) {
	case models.Userable:
		displayName = deref(o.GetDisplayName())
		principalName = deref(o.GetUserPrincipalName())
	case models.ServicePrincipalable:
		displayName = deref(o.GetDisplayName())
		if names := o.GetServicePrincipalNames(); len(names) > 0 {
			principalName = names[0]
		}
	case models.Groupable:
		displayName = deref(o.GetDisplayName())
	case nil:
		return ""
	}

	if principalName == "" {
		return displayName
	}
	return fmt.Sprintf("%s (%s)", displayName, principalName)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

type armTenantLister struct {
	client *armsubscriptions.TenantsClient
}

func (l *armTenantLister) ListTenants(ctx context.Context) ([]*armsubscriptions.TenantIDDescription, error) {
	start := time.Now()
	var tenants []*armsubscriptions.TenantIDDescription

	pager := l.client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			metrics.RecordRequest("tenants.list", start, err)
			return nil, err
		}
		tenants = append(tenants, page.Value...)
	}
	metrics.RecordRequest("tenants.list", start, nil)
	return tenants, nil
}

type graphObjectGetter struct {
	client *msgraphsdk.GraphServiceClient
}

func (g *graphObjectGetter) GetObject(ctx context.Context, objectID string) (models.DirectoryObjectable, error) {
	return g.client.DirectoryObjects().ByDirectoryObjectId(objectID).Get(ctx, nil)
}

// Static is a Lookup that never calls out: tenants resolve to their id and
// principals to an empty name. Used with --skip-directory.
type Static struct{}

func (Static) TenantDisplayName(_ context.Context, tenantID uuid.UUID) (string, error) {
	return tenantID.String(), nil
}

func (Static) PrincipalDisplayName(context.Context, string) (string, error) {
	return "", nil
}

var (
	_ Lookup = (*Client)(nil)
	_ Lookup = Static{}
)
