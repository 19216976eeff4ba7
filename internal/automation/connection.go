package automation

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/automation/armautomation"
	"github.com/systmms/azops/internal/logging"
	"github.com/systmms/azops/internal/metrics"
)

// Connection is an automation connection as returned by the service
type Connection struct {
	Name                  string            `json:"name" yaml:"name"`
	AccountName           string            `json:"automationAccountName" yaml:"automationAccountName"`
	ResourceGroupName     string            `json:"resourceGroupName" yaml:"resourceGroupName"`
	Description           string            `json:"description,omitempty" yaml:"description,omitempty"`
	ConnectionTypeName    string            `json:"connectionTypeName" yaml:"connectionTypeName"`
	FieldDefinitionValues map[string]string `json:"fieldDefinitionValues,omitempty" yaml:"fieldDefinitionValues,omitempty"`
	CreationTime          *time.Time        `json:"creationTime,omitempty" yaml:"creationTime,omitempty"`
	LastModifiedTime      *time.Time        `json:"lastModifiedTime,omitempty" yaml:"lastModifiedTime,omitempty"`
}

// Header implements output.Row
func (c Connection) Header() []string {
	return []string{"NAME", "ACCOUNT", "TYPE", "LAST MODIFIED", "DESCRIPTION"}
}

// Fields implements output.Row
func (c Connection) Fields() []string {
	var modified string
	if c.LastModifiedTime != nil {
		modified = c.LastModifiedTime.UTC().Format(time.RFC3339)
	}
	return []string{c.Name, c.AccountName, c.ConnectionTypeName, modified, c.Description}
}

// ConnectionClient defines the connection operations of an automation
// account. This allows for mocking in tests
type ConnectionClient interface {
	GetConnection(ctx context.Context, accountName, name string) (Connection, error)
	ListConnections(ctx context.Context, accountName string) ([]Connection, error)
}

// ARMClient implements ConnectionClient with armautomation, bound to one
// resource group.
type ARMClient struct {
	connections   *armautomation.ConnectionClient
	resourceGroup string
	logger        *logging.Logger
}

// NewARMClient creates a connection client for accounts in resourceGroup
func NewARMClient(subscriptionID, resourceGroup string, cred azcore.TokenCredential, opts *arm.ClientOptions, logger *logging.Logger) (*ARMClient, error) {
	connections, err := armautomation.NewConnectionClient(subscriptionID, cred, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Automation management client: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &ARMClient{
		connections:   connections,
		resourceGroup: resourceGroup,
		logger:        logger,
	}, nil
}

// GetConnection fetches one connection by name
func (c *ARMClient) GetConnection(ctx context.Context, accountName, name string) (Connection, error) {
	c.logger.Debug("GET connection %s in account %s", name, accountName)

	start := time.Now()
	resp, err := c.connections.Get(ctx, c.resourceGroup, accountName, name, nil)
	metrics.RecordRequest("connections.get", start, err)
	if err != nil {
		return Connection{}, err
	}
	return FromARM(&resp.Connection, c.resourceGroup, accountName), nil
}

// ListConnections returns every connection in the account, following
// next links until the service reports no more pages.
func (c *ARMClient) ListConnections(ctx context.Context, accountName string) ([]Connection, error) {
	c.logger.Debug("LIST connections in account %s", accountName)

	start := time.Now()
	var out []Connection
	pager := c.connections.NewListByAutomationAccountPager(c.resourceGroup, accountName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			metrics.RecordRequest("connections.list", start, err)
			return nil, err
		}
		for _, conn := range page.Value {
			if conn != nil {
				out = append(out, FromARM(conn, c.resourceGroup, accountName))
			}
		}
	}
	metrics.RecordRequest("connections.list", start, nil)
	return out, nil
}

// FromARM converts the SDK model into a Connection
func FromARM(conn *armautomation.Connection, resourceGroup, accountName string) Connection {
	out := Connection{
		Name:              deref(conn.Name),
		AccountName:       accountName,
		ResourceGroupName: resourceGroup,
	}

	props := conn.Properties
	if props == nil {
		return out
	}

	out.Description = deref(props.Description)
	if props.ConnectionType != nil {
		out.ConnectionTypeName = deref(props.ConnectionType.Name)
	}
	if len(props.FieldDefinitionValues) > 0 {
		out.FieldDefinitionValues = make(map[string]string, len(props.FieldDefinitionValues))
		for k, v := range props.FieldDefinitionValues {
			out.FieldDefinitionValues[k] = deref(v)
		}
	}
	out.CreationTime = props.CreationTime
	out.LastModifiedTime = props.LastModifiedTime
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ ConnectionClient = (*ARMClient)(nil)
