package keyvault

import (
	"strings"
)

// NetworkRuleAction is what happens to traffic matching no network rule.
type NetworkRuleAction string

const (
	NetworkRuleActionAllow NetworkRuleAction = "Allow"
	NetworkRuleActionDeny  NetworkRuleAction = "Deny"
)

// NetworkRuleBypass says which traffic may skip the network rules.
type NetworkRuleBypass string

const (
	NetworkRuleBypassAzureServices NetworkRuleBypass = "AzureServices"
	NetworkRuleBypassNone          NetworkRuleBypass = "None"
)

var networkRuleActions = map[string]NetworkRuleAction{
	"allow": NetworkRuleActionAllow,
	"deny":  NetworkRuleActionDeny,
}

var networkRuleBypasses = map[string]NetworkRuleBypass{
	"azureservices": NetworkRuleBypassAzureServices,
	"none":          NetworkRuleBypassNone,
}

// ParseNetworkRuleAction matches s case-insensitively and returns def for
// anything it does not recognise, including the empty string.
func ParseNetworkRuleAction(s string, def NetworkRuleAction) NetworkRuleAction {
	return lookup(networkRuleActions, s, def)
}

// ParseNetworkRuleBypass matches s case-insensitively and returns def for
// anything it does not recognise, including the empty string.
func ParseNetworkRuleBypass(s string, def NetworkRuleBypass) NetworkRuleBypass {
	return lookup(networkRuleBypasses, s, def)
}

func lookup[T any](table map[string]T, s string, def T) T {
	if v, ok := table[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v
	}
	return def
}

// NetworkRuleSet is the flattened network ACL configuration of a vault.
// A nil list means no rules of that kind are configured; projection never
// produces an empty, non-nil list.
type NetworkRuleSet struct {
	DefaultAction             NetworkRuleAction `json:"defaultAction" yaml:"defaultAction"`
	Bypass                    NetworkRuleBypass `json:"bypass" yaml:"bypass"`
	IPAddressRanges           []string          `json:"ipAddressRanges" yaml:"ipAddressRanges"`
	VirtualNetworkResourceIDs []string          `json:"virtualNetworkResourceIds" yaml:"virtualNetworkResourceIds"`
}

// Text renders the rule set as an aligned label/value block.
func (n *NetworkRuleSet) Text() string {
	if n == nil {
		return ""
	}

	var sb strings.Builder
	writeField(&sb, "Default Action", string(n.DefaultAction))
	writeField(&sb, "Bypass", string(n.Bypass))
	writeField(&sb, "IP Rules", strings.Join(n.IPAddressRanges, ", "))
	writeField(&sb, "Virtual Network Rules", strings.Join(n.VirtualNetworkResourceIDs, ", "))
	return sb.String()
}
