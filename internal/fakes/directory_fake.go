package fakes

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/systmms/azops/internal/directory"
)

// FakeDirectory is a mock implementation of directory.Lookup. Unknown
// tenants resolve to their id and unknown principals to "".
type FakeDirectory struct {
	mu sync.Mutex

	Tenants    map[uuid.UUID]string
	Principals map[string]string

	TenantErr    error
	PrincipalErr error

	TenantCalls    []uuid.UUID
	PrincipalCalls []string
}

// NewFakeDirectory creates an empty fake directory
func NewFakeDirectory() *FakeDirectory {
	return &FakeDirectory{
		Tenants:    make(map[uuid.UUID]string),
		Principals: make(map[string]string),
	}
}

// TenantDisplayName implements directory.Lookup
func (f *FakeDirectory) TenantDisplayName(_ context.Context, tenantID uuid.UUID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.TenantCalls = append(f.TenantCalls, tenantID)
	if f.TenantErr != nil {
		return "", f.TenantErr
	}
	if name, ok := f.Tenants[tenantID]; ok {
		return name, nil
	}
	return tenantID.String(), nil
}

// PrincipalDisplayName implements directory.Lookup
func (f *FakeDirectory) PrincipalDisplayName(_ context.Context, objectID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.PrincipalCalls = append(f.PrincipalCalls, objectID)
	if f.PrincipalErr != nil {
		return "", f.PrincipalErr
	}
	return f.Principals[objectID], nil
}

var _ directory.Lookup = (*FakeDirectory)(nil)
