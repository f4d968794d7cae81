package cryptox_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/readinglog/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestDeriveHMACKey(t *testing.T) {
	secret := []byte(strings.Repeat("s", 40))

	a, err := cryptox.DeriveHMACKey(secret, "jwt-hs256")
	require.NoError(t, err)
	require.Len(t, a, cryptox.HMACKeySize)

	b, err := cryptox.DeriveHMACKey(secret, "jwt-hs256")
	require.NoError(t, err)
	require.Equal(t, a, b, "derivation must be deterministic")

	c, err := cryptox.DeriveHMACKey(secret, "something-else")
	require.NoError(t, err)
	require.NotEqual(t, a, c, "info label separates keys")

	require.NotEqual(t, secret[:cryptox.HMACKeySize], a)
}

func TestDeriveHMACKeyRejectsWeakInput(t *testing.T) {
	_, err := cryptox.DeriveHMACKey([]byte("short"), "jwt-hs256")
	require.Error(t, err)

	_, err = cryptox.DeriveHMACKey([]byte(strings.Repeat("s", 40)), "")
	require.Error(t, err)
}
