package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/azops/internal/errors"
)

func responseError(status int, code string) error {
	req, _ := http.NewRequest(http.MethodGet, "https://management.azure.com/subscriptions/s1", nil)
	return &azcore.ResponseError{
		StatusCode: status,
		ErrorCode:  code,
		RawResponse: &http.Response{
			StatusCode: status,
			Status:     http.StatusText(status),
			Request:    req,
			Header:     http.Header{},
			Body:       http.NoBody,
		},
	}
}

func TestUserErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.UserError{
		Message:    "Operation failed",
		Details:    "Connection timeout",
		Suggestion: "Check network connectivity",
	}

	errMsg := err.Error()
	assert.Contains(t, errMsg, "Operation failed")
	assert.Contains(t, errMsg, "Details: Connection timeout")
	assert.Contains(t, errMsg, "Try: Check network connectivity")
}

func TestUserErrorFallsBackToWrapped(t *testing.T) {
	t.Parallel()

	inner := fmt.Errorf("boom")
	err := errors.UserError{Err: inner}

	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestConfigErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.ConfigError{
		Field:      "output",
		Value:      "xml",
		Message:    "unsupported output format",
		Suggestion: "Use table, json or yaml",
	}

	errMsg := err.Error()
	assert.Contains(t, errMsg, "in field 'output'")
	assert.Contains(t, errMsg, "(value: xml)")
	assert.Contains(t, errMsg, "unsupported output format")
	assert.Contains(t, errMsg, "Use table, json or yaml")
}

func TestResourceIDError(t *testing.T) {
	t.Parallel()

	parseErr := fmt.Errorf("invalid resource ID")
	var err error = &errors.ResourceIDError{ID: "not-an-id", Err: parseErr}

	assert.Contains(t, err.Error(), `"not-an-id"`)
	assert.ErrorIs(t, err, parseErr)

	var idErr *errors.ResourceIDError
	require.True(t, stderrors.As(fmt.Errorf("wrapped: %w", err), &idErr))
	assert.Equal(t, "not-an-id", idErr.ID)
}

func TestAzureSuggestion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "not found", err: responseError(http.StatusNotFound, "ResourceNotFound"), want: "Verify the resource name"},
		{name: "unauthorized", err: responseError(http.StatusUnauthorized, "InvalidAuthenticationToken"), want: "az login"},
		{name: "forbidden", err: responseError(http.StatusForbidden, "AuthorizationFailed"), want: "RBAC"},
		{name: "throttled", err: responseError(http.StatusTooManyRequests, "TooManyRequests"), want: "throttled"},
		{name: "server", err: responseError(http.StatusBadGateway, "BadGateway"), want: "server error"},
		{name: "credential", err: fmt.Errorf("DefaultAzureCredential: failed to acquire a token"), want: "Configure credentials"},
		{name: "network", err: fmt.Errorf("dial tcp: lookup management.azure.com: no such host"), want: "Unable to reach Azure"},
		{name: "unknown", err: fmt.Errorf("something else"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.AzureSuggestion(tt.err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestAzureErrorKeepsCause(t *testing.T) {
	t.Parallel()

	cause := responseError(http.StatusNotFound, "ResourceNotFound")
	err := errors.AzureError("automation connection get", cause)

	assert.Contains(t, err.Error(), "automation connection get")
	assert.Contains(t, err.Error(), "404 ResourceNotFound")
	assert.ErrorIs(t, err, cause)
	assert.True(t, errors.IsNotFound(err))
	assert.Nil(t, errors.AzureError("noop", nil))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsNotFound(responseError(http.StatusNotFound, "NotFound")))
	assert.False(t, errors.IsNotFound(responseError(http.StatusForbidden, "AuthorizationFailed")))
	assert.False(t, errors.IsNotFound(fmt.Errorf("404")))
}

func TestSimplifyError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, errors.SimplifyError(nil))

	userErr := errors.UserError{Message: "already friendly"}
	assert.Equal(t, userErr, errors.SimplifyError(userErr))

	yamlErr := errors.SimplifyError(fmt.Errorf("load: %w", fmt.Errorf("yaml: line 3: did not find expected key")))
	var cfgErr errors.ConfigError
	require.True(t, stderrors.As(yamlErr, &cfgErr))
	assert.Equal(t, "Invalid YAML format", cfgErr.Message)

	permErr := errors.SimplifyError(fmt.Errorf("open azops.yaml: permission denied"))
	assert.Contains(t, permErr.Error(), "Permission denied")
	var permUserErr errors.UserError
	require.True(t, stderrors.As(permErr, &permUserErr))

	// a file name ending in .yaml is not a YAML syntax error
	readErr := errors.SimplifyError(fmt.Errorf("read config: %w", fmt.Errorf("open /etc/azops.yaml: no such file or directory")))
	assert.False(t, stderrors.As(readErr, &cfgErr))

	plain := fmt.Errorf("plain")
	assert.Equal(t, plain, errors.SimplifyError(plain))
}
