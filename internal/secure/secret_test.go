package secure

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretUse(t *testing.T) {
	t.Parallel()

	s := NewSecretString("client-secret-value")
	defer s.Destroy()

	var seen string
	err := s.Use(func(value string) error {
		seen = value
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "client-secret-value", seen)
	assert.False(t, s.IsEmpty())
}

func TestSecretUseMultipleTimes(t *testing.T) {
	t.Parallel()

	s := NewSecretString("again")
	defer s.Destroy()

	for i := 0; i < 3; i++ {
		var n int
		require.NoError(t, s.Use(func(value string) error {
			n = len(value)
			return nil
		}))
		assert.Equal(t, 5, n)
	}
}

func TestSecretWipesSource(t *testing.T) {
	t.Parallel()

	src := []byte("wipe-me")
	s := NewSecret(src)
	defer s.Destroy()

	assert.Equal(t, make([]byte, len(src)), src)
}

func TestSecretEmpty(t *testing.T) {
	t.Parallel()

	s := NewSecretString("")
	assert.True(t, s.IsEmpty())

	var called bool
	require.NoError(t, s.Use(func(value string) error {
		called = true
		assert.Empty(t, value)
		return nil
	}))
	assert.True(t, called)

	var nilSecret *Secret
	assert.True(t, nilSecret.IsEmpty())
	nilSecret.Destroy()
}

func TestSecretDestroy(t *testing.T) {
	t.Parallel()

	s := NewSecretString("gone")
	s.Destroy()
	s.Destroy()
	assert.True(t, s.IsEmpty())
}

func TestSecretUsePropagatesError(t *testing.T) {
	t.Parallel()

	s := NewSecretString("x-value")
	defer s.Destroy()

	want := fmt.Errorf("credential rejected")
	assert.ErrorIs(t, s.Use(func(string) error { return want }), want)
}

func TestSecretFormatting(t *testing.T) {
	t.Parallel()

	s := NewSecretString("never-printed")
	defer s.Destroy()

	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", s))
}
