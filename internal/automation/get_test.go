package automation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/azops/internal/automation"
	dserrors "github.com/systmms/azops/internal/errors"
	"github.com/systmms/azops/internal/fakes"
)

func seededClient() *fakes.FakeConnectionClient {
	client := fakes.NewFakeConnectionClient()
	client.AddConnection(automation.Connection{Name: "conn1", AccountName: "acct", ConnectionTypeName: "AzureServicePrincipal"})
	client.AddConnection(automation.Connection{Name: "conn2", AccountName: "acct", ConnectionTypeName: "AzureClassicCertificate"})
	client.AddConnection(automation.Connection{Name: "other", AccountName: "acct-2"})
	return client
}

func TestGetConnections_ByName(t *testing.T) {
	t.Parallel()

	client := seededClient()
	conns, err := automation.GetConnections(context.Background(), client, "acct", automation.ByConnectionName{Name: "conn1"})
	require.NoError(t, err)

	require.Len(t, conns, 1)
	assert.Equal(t, "conn1", conns[0].Name)
	assert.Equal(t, []string{"acct/conn1"}, client.GetCalls)
	assert.Empty(t, client.ListCalls)
}

func TestGetConnections_All(t *testing.T) {
	t.Parallel()

	client := seededClient()
	conns, err := automation.GetConnections(context.Background(), client, "acct", automation.ByAll{})
	require.NoError(t, err)

	assert.Equal(t, client.Connections["acct"], conns)
	assert.Equal(t, []string{"acct"}, client.ListCalls)
	assert.Empty(t, client.GetCalls)
}

func TestGetConnections_AllEmptyAccount(t *testing.T) {
	t.Parallel()

	client := seededClient()
	conns, err := automation.GetConnections(context.Background(), client, "unused", automation.ByAll{})
	require.NoError(t, err)
	assert.Empty(t, conns)
	assert.Equal(t, 1, client.TotalCalls())
}

func TestGetConnections_NotFoundPropagates(t *testing.T) {
	t.Parallel()

	client := seededClient()
	conns, err := automation.GetConnections(context.Background(), client, "acct", automation.ByConnectionName{Name: "missing"})

	require.Error(t, err)
	assert.Nil(t, conns)
	assert.True(t, dserrors.IsNotFound(err))
	assert.Equal(t, 1, client.TotalCalls())
}

func TestGetConnections_ErrorsUnchanged(t *testing.T) {
	t.Parallel()

	getErr := errors.New("authorization failed")
	listErr := errors.New("throttled")

	client := seededClient()
	client.GetErr = getErr
	client.ListErr = listErr

	_, err := automation.GetConnections(context.Background(), client, "acct", automation.ByConnectionName{Name: "conn1"})
	assert.Same(t, getErr, err)

	_, err = automation.GetConnections(context.Background(), client, "acct", automation.ByAll{})
	assert.Same(t, listErr, err)

	assert.Equal(t, 2, client.TotalCalls())
}

func TestGetConnections_NilSelector(t *testing.T) {
	t.Parallel()

	client := seededClient()
	_, err := automation.GetConnections(context.Background(), client, "acct", nil)
	assert.Error(t, err)
	assert.Equal(t, 0, client.TotalCalls())
}
