package keyvault

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/google/uuid"
)

// Vault is the display-friendly view of a Key Vault resource. It is built
// once by ProjectVault and not modified afterwards.
type Vault struct {
	VaultName         string            `json:"vaultName" yaml:"vaultName"`
	ResourceGroupName string            `json:"resourceGroupName" yaml:"resourceGroupName"`
	ResourceID        string            `json:"resourceId" yaml:"resourceId"`
	Location          string            `json:"location" yaml:"location"`
	Tags              map[string]string `json:"tags" yaml:"tags"`

	SKU        string    `json:"sku" yaml:"sku"`
	TenantID   uuid.UUID `json:"tenantId" yaml:"tenantId"`
	TenantName string    `json:"tenantName" yaml:"tenantName"`
	VaultURI   string    `json:"vaultUri" yaml:"vaultUri"`

	EnabledForDeployment         bool  `json:"enabledForDeployment" yaml:"enabledForDeployment"`
	EnabledForTemplateDeployment *bool `json:"enabledForTemplateDeployment" yaml:"enabledForTemplateDeployment"`
	EnabledForDiskEncryption     *bool `json:"enabledForDiskEncryption" yaml:"enabledForDiskEncryption"`
	EnableSoftDelete             *bool `json:"enableSoftDelete" yaml:"enableSoftDelete"`

	AccessPolicies []AccessPolicy  `json:"accessPolicies" yaml:"accessPolicies"`
	NetworkACLs    *NetworkRuleSet `json:"networkAcls" yaml:"networkAcls"`

	// OriginalVault is the wire resource this view was built from, kept for
	// read-modify-write updates.
	OriginalVault *armkeyvault.Vault `json:"-" yaml:"-"`
}

// AccessPolicy is one access policy entry with its principal resolved.
type AccessPolicy struct {
	TenantID                  string   `json:"tenantId" yaml:"tenantId"`
	ObjectID                  string   `json:"objectId" yaml:"objectId"`
	ApplicationID             string   `json:"applicationId,omitempty" yaml:"applicationId,omitempty"`
	DisplayName               string   `json:"displayName" yaml:"displayName"`
	PermissionsToKeys         []string `json:"permissionsToKeys" yaml:"permissionsToKeys"`
	PermissionsToSecrets      []string `json:"permissionsToSecrets" yaml:"permissionsToSecrets"`
	PermissionsToCertificates []string `json:"permissionsToCertificates" yaml:"permissionsToCertificates"`
	PermissionsToStorage      []string `json:"permissionsToStorage" yaml:"permissionsToStorage"`
}

// AccessPoliciesText renders every access policy as an aligned block.
func (v *Vault) AccessPoliciesText() string {
	var sb strings.Builder
	for i, p := range v.AccessPolicies {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeField(&sb, "Tenant ID", p.TenantID)
		writeField(&sb, "Object ID", p.ObjectID)
		writeField(&sb, "Application ID", p.ApplicationID)
		writeField(&sb, "Display Name", p.DisplayName)
		writeField(&sb, "Permissions to Keys", strings.Join(p.PermissionsToKeys, ", "))
		writeField(&sb, "Permissions to Secrets", strings.Join(p.PermissionsToSecrets, ", "))
		writeField(&sb, "Permissions to Certificates", strings.Join(p.PermissionsToCertificates, ", "))
		writeField(&sb, "Permissions to (Key Vault Managed) Storage", strings.Join(p.PermissionsToStorage, ", "))
	}
	return sb.String()
}

// NetworkACLsText renders the network rule set.
func (v *Vault) NetworkACLsText() string {
	return v.NetworkACLs.Text()
}

// Describe renders the full vault as text, the table-format detail view.
func (v *Vault) Describe() string {
	var sb strings.Builder
	writeField(&sb, "Vault Name", v.VaultName)
	writeField(&sb, "Resource Group Name", v.ResourceGroupName)
	writeField(&sb, "Location", v.Location)
	writeField(&sb, "Resource ID", v.ResourceID)
	writeField(&sb, "Vault URI", v.VaultURI)
	writeField(&sb, "Tenant ID", v.TenantID.String())
	writeField(&sb, "Tenant Name", v.TenantName)
	writeField(&sb, "SKU", v.SKU)
	writeField(&sb, "Enabled For Deployment?", fmt.Sprint(v.EnabledForDeployment))
	writeField(&sb, "Enabled For Template Deployment?", optionalBool(v.EnabledForTemplateDeployment))
	writeField(&sb, "Enabled For Disk Encryption?", optionalBool(v.EnabledForDiskEncryption))
	writeField(&sb, "Soft Delete Enabled?", optionalBool(v.EnableSoftDelete))
	writeField(&sb, "Access Policies", "")
	if text := v.AccessPoliciesText(); text != "" {
		sb.WriteString(indent(text))
	}
	writeField(&sb, "Network Rule Set", "")
	if text := v.NetworkACLsText(); text != "" {
		sb.WriteString(indent(text))
	}
	writeField(&sb, "Tags", formatTags(v.Tags))
	return sb.String()
}

// Header implements output.Row.
func (v *Vault) Header() []string {
	return []string{"VAULT NAME", "RESOURCE GROUP", "LOCATION", "SKU", "VAULT URI"}
}

// Fields implements output.Row.
func (v *Vault) Fields() []string {
	return []string{v.VaultName, v.ResourceGroupName, v.Location, v.SKU, v.VaultURI}
}

func writeField(sb *strings.Builder, label, value string) {
	fmt.Fprintf(sb, "%-43s: %s\n", label, value)
}

func optionalBool(b *bool) string {
	if b == nil {
		return ""
	}
	return fmt.Sprint(*b)
}

func indent(text string) string {
	lines := strings.SplitAfter(text, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		if line == "\n" {
			sb.WriteString(line)
			continue
		}
		sb.WriteString("  ")
		sb.WriteString(line)
	}
	return sb.String()
}

func formatTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+tags[k])
	}
	return strings.Join(pairs, ", ")
}
