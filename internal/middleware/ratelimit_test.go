package middleware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginLimiter_IsPerKey(t *testing.T) {
	l := NewLoginLimiter(0.001, 2)

	require.True(t, l.Allow("10.0.0.1"))
	require.True(t, l.Allow("10.0.0.1"))
	require.False(t, l.Allow("10.0.0.1"))

	require.True(t, l.Allow("10.0.0.2"))
}
