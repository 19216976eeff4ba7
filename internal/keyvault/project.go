package keyvault

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/google/uuid"
	"github.com/systmms/azops/internal/directory"
	dserrors "github.com/systmms/azops/internal/errors"
)

// ErrIncompleteVault is returned for a wire vault without properties or SKU.
// The management API always sets both on vaults it returns.
var ErrIncompleteVault = errors.New("vault resource is missing properties or sku")

// ProjectVault flattens a wire vault into a Vault. It performs one tenant
// lookup followed by one principal lookup per access policy, in order, and
// returns the first lookup error unchanged.
func ProjectVault(ctx context.Context, wire *armkeyvault.Vault, lookup directory.Lookup) (*Vault, error) {
	if wire == nil || wire.Properties == nil || wire.Properties.SKU == nil {
		return nil, ErrIncompleteVault
	}
	props := wire.Properties

	resourceID := deref(wire.ID)
	resourceGroup, err := ResourceGroupFromID(resourceID)
	if err != nil {
		return nil, err
	}

	tenantID, err := parseTenantID(props.TenantID)
	if err != nil {
		return nil, err
	}
	tenantName, err := lookup.TenantDisplayName(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	policies := make([]AccessPolicy, 0, len(props.AccessPolicies))
	for _, entry := range props.AccessPolicies {
		if entry == nil {
			continue
		}
		policy, err := projectAccessPolicy(ctx, entry, lookup)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}

	var sku string
	if props.SKU.Name != nil {
		sku = string(*props.SKU.Name)
	}

	return &Vault{
		VaultName:                    deref(wire.Name),
		ResourceGroupName:            resourceGroup,
		ResourceID:                   resourceID,
		Location:                     deref(wire.Location),
		Tags:                         flattenTags(wire.Tags),
		SKU:                          sku,
		TenantID:                     tenantID,
		TenantName:                   tenantName,
		VaultURI:                     deref(props.VaultURI),
		EnabledForDeployment:         props.EnabledForDeployment != nil && *props.EnabledForDeployment,
		EnabledForTemplateDeployment: copyBool(props.EnabledForTemplateDeployment),
		EnabledForDiskEncryption:     copyBool(props.EnabledForDiskEncryption),
		EnableSoftDelete:             copyBool(props.EnableSoftDelete),
		AccessPolicies:               policies,
		NetworkACLs:                  DeriveNetworkRuleSet(props),
		OriginalVault:                wire,
	}, nil
}

// DeriveNetworkRuleSet builds the rule set view of props. It returns nil only
// when props itself is nil; a vault that never configured network ACLs gets
// the service defaults (Allow, AzureServices, no rules).
func DeriveNetworkRuleSet(props *armkeyvault.VaultProperties) *NetworkRuleSet {
	if props == nil {
		return nil
	}

	acls := props.NetworkACLs
	if acls == nil {
		acls = &armkeyvault.NetworkRuleSet{}
	}

	var action, bypass string
	if acls.DefaultAction != nil {
		action = string(*acls.DefaultAction)
	}
	if acls.Bypass != nil {
		bypass = string(*acls.Bypass)
	}

	rules := &NetworkRuleSet{
		DefaultAction: ParseNetworkRuleAction(action, NetworkRuleActionAllow),
		Bypass:        ParseNetworkRuleBypass(bypass, NetworkRuleBypassAzureServices),
	}

	// Lists stay nil unless at least one entry survives.
	for _, rule := range acls.IPRules {
		if rule != nil {
			rules.IPAddressRanges = append(rules.IPAddressRanges, deref(rule.Value))
		}
	}
	for _, rule := range acls.VirtualNetworkRules {
		if rule != nil {
			rules.VirtualNetworkResourceIDs = append(rules.VirtualNetworkResourceIDs, deref(rule.ID))
		}
	}

	return rules
}

// ResourceGroupFromID extracts the resource group from an ARM resource id
// of the form /subscriptions/{sub}/resourceGroups/{rg}/...
func ResourceGroupFromID(id string) (string, error) {
	parsed, err := arm.ParseResourceID(id)
	if err != nil {
		return "", &dserrors.ResourceIDError{ID: id, Err: err}
	}
	if parsed.SubscriptionID == "" || parsed.ResourceGroupName == "" {
		return "", &dserrors.ResourceIDError{ID: id, Err: errors.New("no resource group segment")}
	}
	return parsed.ResourceGroupName, nil
}

func projectAccessPolicy(ctx context.Context, entry *armkeyvault.AccessPolicyEntry, lookup directory.Lookup) (AccessPolicy, error) {
	objectID := deref(entry.ObjectID)
	displayName, err := lookup.PrincipalDisplayName(ctx, objectID)
	if err != nil {
		return AccessPolicy{}, err
	}

	policy := AccessPolicy{
		TenantID:      deref(entry.TenantID),
		ObjectID:      objectID,
		ApplicationID: deref(entry.ApplicationID),
		DisplayName:   displayName,
	}
	if perms := entry.Permissions; perms != nil {
		policy.PermissionsToKeys = enumStrings(perms.Keys)
		policy.PermissionsToSecrets = enumStrings(perms.Secrets)
		policy.PermissionsToCertificates = enumStrings(perms.Certificates)
		policy.PermissionsToStorage = enumStrings(perms.Storage)
	}
	return policy, nil
}

func parseTenantID(s *string) (uuid.UUID, error) {
	if s == nil || *s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid vault tenant id %q: %w", *s, err)
	}
	return id, nil
}

func enumStrings[T ~string](values []*T) []string {
	var out []string
	for _, v := range values {
		if v != nil {
			out = append(out, string(*v))
		}
	}
	return out
}

func flattenTags(tags map[string]*string) map[string]string {
	if tags == nil {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = deref(v)
	}
	return out
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
