package azauth

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/systmms/azops/internal/config"
	dserrors "github.com/systmms/azops/internal/errors"
	"github.com/systmms/azops/internal/logging"
	"github.com/systmms/azops/internal/secure"
)

// Authentication methods, in the order they are considered
const (
	MethodManagedIdentity = "managed_identity"
	MethodClientSecret    = "service_principal"
	MethodDefault         = "default_credential"
)

// Method reports which authentication method NewCredential picks for cfg
func Method(cfg config.CredentialConfig, secret *secure.Secret) string {
	switch {
	case cfg.UseManagedIdentity:
		return MethodManagedIdentity
	case !secret.IsEmpty():
		return MethodClientSecret
	default:
		return MethodDefault
	}
}

// NewCredential creates an Azure credential based on configuration:
// managed identity when requested, a service principal when a client secret
// is configured, and DefaultAzureCredential (environment, workload identity,
// Azure CLI) otherwise.
func NewCredential(cfg config.CredentialConfig, secret *secure.Secret, logger *logging.Logger) (azcore.TokenCredential, error) {
	var cred azcore.TokenCredential
	var err error

	method := Method(cfg, secret)
	logger.Debug("authenticating with %s", method)

	switch method {
	case MethodManagedIdentity:
		if cfg.UserAssignedID != "" {
			// User-assigned managed identity
			cred, err = azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
				ID: azidentity.ClientID(cfg.UserAssignedID),
			})
		} else {
			// System-assigned managed identity
			cred, err = azidentity.NewManagedIdentityCredential(nil)
		}
	case MethodClientSecret:
		if cfg.TenantID == "" || cfg.ClientID == "" {
			return nil, dserrors.ConfigError{
				Field:      "credential",
				Message:    "tenant_id and client_id are required for service principal authentication",
				Suggestion: "Add credential.tenant_id and credential.client_id next to credential.client_secret",
			}
		}
		err = secret.Use(func(clientSecret string) error {
			logger.Debug("service principal %s in tenant %s, client secret %s", cfg.ClientID, cfg.TenantID, logging.Secret(clientSecret))
			var spErr error
			cred, spErr = azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, clientSecret, nil)
			if spErr != nil {
				// never let the secret leave the enclave through an error message
				return errors.New(logging.Redact(spErr.Error(), []string{clientSecret}))
			}
			return nil
		})
	default:
		var opts *azidentity.DefaultAzureCredentialOptions
		if cfg.TenantID != "" {
			opts = &azidentity.DefaultAzureCredentialOptions{TenantID: cfg.TenantID}
		}
		cred, err = azidentity.NewDefaultAzureCredential(opts)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}
	return cred, nil
}
