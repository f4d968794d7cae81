package jwtx

import (
	"errors"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

type keyEntry struct {
	alg string
	key any
}

// KeySet holds verification keys by kid. It is safe for concurrent use.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]keyEntry
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{
		keys: make(map[string]keyEntry),
	}
}

// AddSigner registers the signer's verification key under its kid.
func (k *KeySet) AddSigner(s Signer) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.KID() == "" {
		return errors.New("jwtx: signer has empty kid")
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[s.KID()] = keyEntry{alg: s.Alg(), key: s.VerificationKey()}
	return nil
}

// Get returns the key registered for kid and the algorithm it was
// registered with.
func (k *KeySet) Get(kid string) (any, string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if e, ok := k.keys[kid]; ok {
		return e.key, e.alg, nil
	}
	return nil, "", ErrNoKey
}

// Algs lists the distinct algorithms present in the set.
func (k *KeySet) Algs() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	seen := make(map[string]struct{}, len(k.keys))
	out := make([]string, 0, len(k.keys))
	for _, e := range k.keys {
		if _, ok := seen[e.alg]; ok {
			continue
		}
		seen[e.alg] = struct{}{}
		out = append(out, e.alg)
	}
	return out
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}
