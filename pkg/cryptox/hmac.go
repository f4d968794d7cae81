package cryptox

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HMACKeySize is the length of keys returned by DeriveHMACKey.
const HMACKeySize = 32

// MinSecretSize is the shortest operator secret DeriveHMACKey accepts.
const MinSecretSize = 32

// DeriveHMACKey stretches an operator supplied secret into a signing key
// with HKDF-SHA256. The info label binds the key to one purpose so the same
// secret never signs two kinds of data with the same key.
func DeriveHMACKey(secret []byte, info string) ([]byte, error) {
	if len(secret) < MinSecretSize {
		return nil, fmt.Errorf("cryptox: secret must be at least %d bytes, got %d", MinSecretSize, len(secret))
	}
	if info == "" {
		return nil, errors.New("cryptox: empty HKDF info label")
	}

	r := hkdf.New(sha256.New, secret, nil, []byte(info))

	out := make([]byte, HMACKeySize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("cryptox: derive key: %w", err)
	}

	return out, nil
}
