package fakes

import (
	"context"
	"sync"

	"github.com/systmms/azops/internal/automation"
)

// FakeConnectionClient is a mock implementation of automation.ConnectionClient
type FakeConnectionClient struct {
	mu sync.Mutex

	// Connections holds the connections of each account, in list order
	Connections map[string][]automation.Connection

	GetErr  error
	ListErr error

	GetCalls  []string
	ListCalls []string
}

// NewFakeConnectionClient creates an empty fake connection client
func NewFakeConnectionClient() *FakeConnectionClient {
	return &FakeConnectionClient{
		Connections: make(map[string][]automation.Connection),
	}
}

// AddConnection appends conn to its account
func (f *FakeConnectionClient) AddConnection(conn automation.Connection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Connections[conn.AccountName] = append(f.Connections[conn.AccountName], conn)
}

// GetConnection implements automation.ConnectionClient
func (f *FakeConnectionClient) GetConnection(_ context.Context, accountName, name string) (automation.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.GetCalls = append(f.GetCalls, accountName+"/"+name)
	if f.GetErr != nil {
		return automation.Connection{}, f.GetErr
	}
	for _, conn := range f.Connections[accountName] {
		if conn.Name == name {
			return conn, nil
		}
	}
	return automation.Connection{}, NotFoundError("connection", name)
}

// ListConnections implements automation.ConnectionClient
func (f *FakeConnectionClient) ListConnections(_ context.Context, accountName string) ([]automation.Connection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ListCalls = append(f.ListCalls, accountName)
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Connections[accountName], nil
}

// TotalCalls returns the number of client calls made
func (f *FakeConnectionClient) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.GetCalls) + len(f.ListCalls)
}

var _ automation.ConnectionClient = (*FakeConnectionClient)(nil)
