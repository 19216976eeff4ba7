// Package secure keeps credential material encrypted in memory between the
// time it is read from configuration and the time it is handed to the Azure
// identity library. It wraps memguard enclaves.
package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// Secret holds a value sealed in a memguard enclave.
type Secret struct {
	mu      sync.RWMutex
	enclave *memguard.Enclave
}

// NewSecret seals data into an enclave. memguard wipes data after copying it.
func NewSecret(data []byte) *Secret {
	s := &Secret{}
	if len(data) > 0 {
		s.enclave = memguard.NewEnclave(data)
	}
	return s
}

// NewSecretString seals a string value.
func NewSecretString(value string) *Secret {
	return NewSecret([]byte(value))
}

// IsEmpty reports whether the secret holds no data.
func (s *Secret) IsEmpty() bool {
	if s == nil {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enclave == nil
}

// Use decrypts the secret into a locked buffer, passes a copy of its
// contents to fn and wipes the buffer afterwards.
func (s *Secret) Use(fn func(value string) error) error {
	if s == nil {
		return fn("")
	}
	s.mu.RLock()
	enclave := s.enclave
	s.mu.RUnlock()
	if enclave == nil {
		return fn("")
	}

	locked, err := enclave.Open()
	if err != nil {
		return err
	}
	defer locked.Destroy()

	return fn(string(locked.Bytes()))
}

// Destroy drops the enclave. Calling it more than once is safe; a destroyed
// secret behaves as empty.
func (s *Secret) Destroy() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enclave = nil
}

// String never reveals the value.
func (s *Secret) String() string {
	return "[REDACTED]"
}

// GoString never reveals the value.
func (s *Secret) GoString() string {
	return "[REDACTED]"
}
