package app

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/readinglog/pkg/cryptox"
	"github.com/aussiebroadwan/readinglog/pkg/jwtx"
)

// hmacInfo and kidInfo separate the JWT key and its key id from anything
// else derived from the same operator secret.
const (
	hmacInfo = "readinglog/jwt-hs256"
	kidInfo  = "readinglog/jwt-kid"
)

// kidLen is how many fingerprint characters make up a key id.
const kidLen = 16

// InitSigner builds the token signer selected by cfg.Algorithm. The key id
// is derived from the key material, so every instance started with the same
// secret or key file accepts the others' tokens, also across restarts.
func InitSigner(cfg Config, logger *slog.Logger) (jwtx.Signer, error) {
	switch cfg.Algorithm {
	case "HS256":
		key, err := cryptox.DeriveHMACKey([]byte(cfg.JWTSecret), hmacInfo)
		if err != nil {
			return nil, fmt.Errorf("failed to derive signing key: %w", err)
		}
		kidKey, err := cryptox.DeriveHMACKey([]byte(cfg.JWTSecret), kidInfo)
		if err != nil {
			return nil, fmt.Errorf("failed to derive key id: %w", err)
		}
		kid := "hs-" + cryptox.FingerprintToken(string(kidKey))[:kidLen]
		logger.Info("using HS256 signing key", "kid", kid)
		return jwtx.NewSignerHS256(kid, key)

	case "EdDSA":
		var pemKey []byte
		if cfg.KeyFile != "" {
			b, err := os.ReadFile(cfg.KeyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read signing key: %w", err)
			}
			pemKey = b
		} else {
			b, err := cryptox.GenerateEd25519Key()
			if err != nil {
				return nil, err
			}
			pemKey = b
		}

		kid, err := ed25519KID(pemKey)
		if err != nil {
			return nil, err
		}
		if cfg.KeyFile != "" {
			logger.Info("loaded EdDSA signing key", "kid", kid, "file", cfg.KeyFile)
		} else {
			logger.Warn("generated ephemeral EdDSA signing key, tokens will not survive a restart", "kid", kid)
		}
		return jwtx.NewSignerEdDSA(kid, pemKey)

	default:
		return nil, fmt.Errorf("unsupported algorithm %q", cfg.Algorithm)
	}
}

// ed25519KID names a PKCS8 Ed25519 key after its public half.
func ed25519KID(pemKey []byte) (string, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return "", errors.New("invalid PEM for Ed25519 key")
	}
	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return "", fmt.Errorf("parse PKCS8: %w", err)
	}
	key, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return "", fmt.Errorf("expected an Ed25519 key, got %T", priv)
	}
	pub := key.Public().(ed25519.PublicKey)
	return "ed-" + cryptox.FingerprintToken(string(pub))[:kidLen], nil
}

// InitCodec wires the signer into a codec configured from cfg.
func InitCodec(cfg Config, logger *slog.Logger) (*jwtx.Codec, error) {
	signer, err := InitSigner(cfg, logger)
	if err != nil {
		return nil, err
	}

	return jwtx.NewCodec(signer, jwtx.NewKeySet(), jwtx.CodecOptions{
		Issuer:     cfg.Issuer,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
		Leeway:     cfg.ClockSkew,
	})
}
