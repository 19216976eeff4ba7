package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// ResourceIDError reports an Azure resource id that does not have the
// /subscriptions/{sub}/resourceGroups/{rg}/... shape.
type ResourceIDError struct {
	ID  string
	Err error
}

func (e *ResourceIDError) Error() string {
	return fmt.Sprintf("invalid resource id %q: %v", e.ID, e.Err)
}

func (e *ResourceIDError) Unwrap() error {
	return e.Err
}

// AzureError decorates a management API failure for display. The original
// error stays reachable through errors.Is / errors.As.
func AzureError(operation string, err error) error {
	if err == nil {
		return nil
	}

	ue := UserError{
		Message:    fmt.Sprintf("Azure request failed during %s", operation),
		Suggestion: AzureSuggestion(err),
		Err:        err,
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		ue.Details = fmt.Sprintf("%d %s", respErr.StatusCode, respErr.ErrorCode)
	} else {
		ue.Details = err.Error()
	}
	return ue
}

// AzureSuggestion provides a hint based on the HTTP status or message of an Azure error
func AzureSuggestion(err error) string {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusNotFound:
			return "Verify the resource name, resource group and subscription"
		case http.StatusUnauthorized:
			return "Check authentication: run 'az login' or configure a service principal"
		case http.StatusForbidden:
			return "The signed-in identity lacks RBAC permissions on this scope (Reader is sufficient for get/list)"
		case http.StatusTooManyRequests:
			return "Request was throttled by Azure Resource Manager. Wait a moment and try again"
		}
		if respErr.StatusCode >= 500 {
			return "Azure returned a server error. Try again later"
		}
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "defaultazurecredential") || strings.Contains(errStr, "credential"):
		return "Configure credentials: 'az login', managed identity, or credential.client_secret in azops.yaml"
	case strings.Contains(errStr, "subscription"):
		return "Set subscription_id in azops.yaml, --subscription, or AZURE_SUBSCRIPTION_ID"
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return "The operation timed out. Check your network connection and try again"
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return "Unable to reach Azure. Check your network and proxy configuration"
	}
	return ""
}

// IsNotFound reports whether err is an Azure 404 response
func IsNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

// SimplifyError simplifies complex error messages for users
func SimplifyError(err error) error {
	if err == nil {
		return nil
	}

	// Already a user-friendly error
	if _, ok := err.(UserError); ok {
		return err
	}
	if _, ok := err.(ConfigError); ok {
		return err
	}

	// Unwrap to get the root cause
	rootErr := err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}

	errStr := rootErr.Error()

	if strings.HasPrefix(errStr, "yaml:") {
		return ConfigError{
			Message:    "Invalid YAML format",
			Suggestion: "Check for indentation errors and missing quotes",
		}
	}

	if strings.Contains(errStr, "permission denied") {
		return UserError{
			Message:    "Permission denied",
			Suggestion: "Check file permissions or run with appropriate privileges",
			Err:        err,
		}
	}

	// Return original error if we can't simplify it
	return err
}
