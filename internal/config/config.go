package config

import (
	"fmt"
	"os"
	"strings"

	dserrors "github.com/systmms/azops/internal/errors"
	"github.com/systmms/azops/internal/logging"
	"github.com/systmms/azops/internal/secure"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is used when --config is not given
	DefaultPath = "azops.yaml"

	// SubscriptionEnvVar is consulted when no subscription is configured
	SubscriptionEnvVar = "AZURE_SUBSCRIPTION_ID"
)

// Output formats accepted by --output and the output key
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config holds the runtime configuration: the parsed file plus flag overrides
type Config struct {
	Path   string
	Logger *logging.Logger

	// PathExplicit is set when --config was passed; a missing file is then an error
	PathExplicit bool

	// Flag overrides, applied on top of the file
	SubscriptionID string
	ResourceGroup  string
	Output         string
	SkipDirectory  bool
	MetricsFile    string

	Definition *Definition

	clientSecret *secure.Secret
}

// Definition represents the azops.yaml structure
type Definition struct {
	Version           int              `yaml:"version"`
	SubscriptionID    string           `yaml:"subscription_id,omitempty"`
	ResourceGroup     string           `yaml:"resource_group,omitempty"`
	AutomationAccount string           `yaml:"automation_account,omitempty"`
	Output            string           `yaml:"output,omitempty"`
	Credential        CredentialConfig `yaml:"credential,omitempty"`
}

// CredentialConfig selects how azops authenticates against Azure
type CredentialConfig struct {
	TenantID           string `yaml:"tenant_id,omitempty"`
	ClientID           string `yaml:"client_id,omitempty"`
	ClientSecret       string `yaml:"client_secret,omitempty"`
	UseManagedIdentity bool   `yaml:"use_managed_identity,omitempty"`
	UserAssignedID     string `yaml:"user_assigned_identity_id,omitempty"`
}

// Load reads, validates and parses the azops.yaml file. A missing file at
// the default path yields an empty definition so that flags and environment
// variables alone are enough.
func (c *Config) Load() error {
	if c.Definition != nil {
		return nil
	}
	if c.Path == "" {
		c.Path = DefaultPath
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) && !c.PathExplicit {
			c.logger().Debug("no configuration file at %s, using flags and environment", c.Path)
			c.Definition = &Definition{}
			return nil
		}
		if os.IsNotExist(err) {
			return dserrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Check the --config path, or omit it to rely on flags and AZURE_SUBSCRIPTION_ID",
			}
		}
		return dserrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return dserrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}
	if raw != nil {
		if err := validateDocument(raw); err != nil {
			return err
		}
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return dserrors.ConfigError{
			Message:    "configuration does not match the expected structure",
			Suggestion: err.Error(),
		}
	}

	if def.Version != 0 {
		return dserrors.ConfigError{
			Field:      "version",
			Value:      def.Version,
			Message:    "unsupported configuration version",
			Suggestion: "Set 'version: 0' at the top of your azops.yaml file",
		}
	}

	// The secret only lives in the enclave from here on.
	if def.Credential.ClientSecret != "" {
		c.clientSecret = secure.NewSecretString(def.Credential.ClientSecret)
		def.Credential.ClientSecret = ""
	}

	c.Definition = &def
	c.logger().Debug("loaded configuration from %s", c.Path)
	return nil
}

// Subscription returns the subscription id from flags, file or environment
func (c *Config) Subscription() (string, error) {
	if c.SubscriptionID != "" {
		return c.SubscriptionID, nil
	}
	if c.Definition != nil && c.Definition.SubscriptionID != "" {
		return c.Definition.SubscriptionID, nil
	}
	if sub := os.Getenv(SubscriptionEnvVar); sub != "" {
		return sub, nil
	}
	return "", dserrors.ConfigError{
		Field:      "subscription_id",
		Message:    "no Azure subscription configured",
		Suggestion: "Set subscription_id in azops.yaml, pass --subscription, or export " + SubscriptionEnvVar,
	}
}

// ResourceGroupName returns the resource group from flags or file; it may be empty
func (c *Config) ResourceGroupName() string {
	if c.ResourceGroup != "" {
		return c.ResourceGroup
	}
	if c.Definition != nil {
		return c.Definition.ResourceGroup
	}
	return ""
}

// RequireResourceGroup is ResourceGroupName for commands that cannot run without one
func (c *Config) RequireResourceGroup() (string, error) {
	if rg := c.ResourceGroupName(); rg != "" {
		return rg, nil
	}
	return "", dserrors.ConfigError{
		Field:      "resource_group",
		Message:    "a resource group is required for this command",
		Suggestion: "Pass --resource-group or set resource_group in azops.yaml",
	}
}

// AutomationAccount returns the automation account configured in the file
func (c *Config) AutomationAccount() string {
	if c.Definition == nil {
		return ""
	}
	return c.Definition.AutomationAccount
}

// OutputFormat returns the validated output format, defaulting to table
func (c *Config) OutputFormat() (string, error) {
	format := c.Output
	if format == "" && c.Definition != nil {
		format = c.Definition.Output
	}
	if format == "" {
		return OutputTable, nil
	}

	format = strings.ToLower(format)
	switch format {
	case OutputTable, OutputJSON, OutputYAML:
		return format, nil
	}
	return "", dserrors.ConfigError{
		Field:      "output",
		Value:      format,
		Message:    "unsupported output format",
		Suggestion: fmt.Sprintf("Use one of: %s, %s, %s", OutputTable, OutputJSON, OutputYAML),
	}
}

// Credential returns the credential block of the configuration
func (c *Config) Credential() CredentialConfig {
	if c.Definition == nil {
		return CredentialConfig{}
	}
	return c.Definition.Credential
}

// ClientSecret returns the sealed service principal secret, or nil
func (c *Config) ClientSecret() *secure.Secret {
	return c.clientSecret
}

// Close wipes sealed credential material
func (c *Config) Close() {
	c.clientSecret.Destroy()
	c.clientSecret = nil
}

func (c *Config) logger() *logging.Logger {
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
	return c.Logger
}
