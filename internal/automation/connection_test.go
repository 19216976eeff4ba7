package automation

import (
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/automation/armautomation"
	"github.com/stretchr/testify/assert"
)

func TestFromARM(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	modified := created.Add(48 * time.Hour)

	conn := &armautomation.Connection{
		Name: to.Ptr("AzureRunAsConnection"),
		ID:   to.Ptr("/subscriptions/s1/resourceGroups/rg1/providers/Microsoft.Automation/automationAccounts/acct/connections/AzureRunAsConnection"),
		Properties: &armautomation.ConnectionProperties{
			ConnectionType:   &armautomation.ConnectionTypeAssociationProperty{Name: to.Ptr("AzureServicePrincipal")},
			Description:      to.Ptr("run as"),
			CreationTime:     &created,
			LastModifiedTime: &modified,
			FieldDefinitionValues: map[string]*string{
				"ApplicationId": to.Ptr("app-1"),
				"TenantId":      to.Ptr("tenant-1"),
				"Empty":         nil,
			},
		},
	}

	got := FromARM(conn, "rg1", "acct")

	assert.Equal(t, "AzureRunAsConnection", got.Name)
	assert.Equal(t, "acct", got.AccountName)
	assert.Equal(t, "rg1", got.ResourceGroupName)
	assert.Equal(t, "AzureServicePrincipal", got.ConnectionTypeName)
	assert.Equal(t, "run as", got.Description)
	assert.Equal(t, map[string]string{"ApplicationId": "app-1", "TenantId": "tenant-1", "Empty": ""}, got.FieldDefinitionValues)
	assert.Equal(t, &created, got.CreationTime)
	assert.Equal(t, &modified, got.LastModifiedTime)
}

func TestFromARM_NoProperties(t *testing.T) {
	t.Parallel()

	got := FromARM(&armautomation.Connection{Name: to.Ptr("bare")}, "rg1", "acct")
	assert.Equal(t, Connection{Name: "bare", AccountName: "acct", ResourceGroupName: "rg1"}, got)
}

func TestConnectionRow(t *testing.T) {
	t.Parallel()

	modified := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	c := Connection{Name: "conn1", AccountName: "acct", ConnectionTypeName: "Azure", LastModifiedTime: &modified}

	assert.Len(t, c.Fields(), len(c.Header()))
	assert.Equal(t, []string{"conn1", "acct", "Azure", "2024-03-03T12:00:00Z", ""}, c.Fields())

	c.LastModifiedTime = nil
	assert.Equal(t, "", c.Fields()[3])
}
