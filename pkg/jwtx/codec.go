package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CodecOptions tune token issuance and validation.
type CodecOptions struct {
	// Issuer written to and required on every token.
	Issuer string

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Leeway tolerated on exp/nbf. Zero means a token is stale from the
	// instant now reaches exp.
	Leeway time.Duration

	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

// Codec mints and parses access and refresh tokens with one signer.
type Codec struct {
	signer Signer
	keys   *KeySet
	opts   CodecOptions
	parser *jwt.Parser
}

// NewCodec builds a codec. The signer's key is added to keys when it is not
// already present, so keys may be nil.
func NewCodec(signer Signer, keys *KeySet, opts CodecOptions) (*Codec, error) {
	if signer == nil {
		return nil, errors.New("jwtx: nil signer")
	}
	if err := signer.Validate(); err != nil {
		return nil, err
	}
	if opts.AccessTTL <= 0 {
		opts.AccessTTL = DefaultAccessTokenTTL
	}
	if opts.RefreshTTL <= 0 {
		opts.RefreshTTL = DefaultRefreshTokenTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if keys == nil {
		keys = NewKeySet()
	}
	if _, _, err := keys.Get(signer.KID()); err != nil {
		if err := keys.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: register signer: %w", err)
		}
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods(keys.Algs()),
		jwt.WithLeeway(opts.Leeway),
		jwt.WithTimeFunc(opts.Now),
		jwt.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}

	return &Codec{
		signer: signer,
		keys:   keys,
		opts:   opts,
		parser: jwt.NewParser(parserOpts...),
	}, nil
}

// Keys exposes the verification key set, readiness checks use it.
func (c *Codec) Keys() *KeySet { return c.keys }

// GenerateAccessToken signs an access token for subject.
func (c *Codec) GenerateAccessToken(subject string, p Profile) (string, time.Time, error) {
	claims := NewAccessClaims(subject, p, c.opts.AccessTTL, c.opts.Issuer, c.opts.Now())
	return c.sign(claims)
}

// GenerateRefreshToken signs a refresh token for subject.
func (c *Codec) GenerateRefreshToken(subject string) (string, time.Time, error) {
	claims := NewRefreshClaims(subject, c.opts.RefreshTTL, c.opts.Issuer, c.opts.Now())
	return c.sign(claims)
}

func (c *Codec) sign(claims Claims) (string, time.Time, error) {
	token, err := c.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return token, claims.Expiry(), nil
}

// ParseAccessToken verifies raw and requires it to be an access token.
func (c *Codec) ParseAccessToken(raw string) (*Claims, error) {
	return c.parse(raw, TypeAccess)
}

// ParseRefreshToken verifies raw and requires it to be a refresh token.
func (c *Codec) ParseRefreshToken(raw string) (*Claims, error) {
	return c.parse(raw, TypeRefresh)
}

func (c *Codec) parse(raw string, want TokenType) (*Claims, error) {
	if raw == "" {
		return nil, ErrMalformed
	}

	claims := &Claims{}
	if _, err := c.parser.ParseWithClaims(raw, claims, c.keyFunc); err != nil {
		return nil, mapParseError(err)
	}

	if claims.Type != want {
		return nil, ErrTokenType
	}
	if _, err := claims.MemberID(); err != nil {
		return nil, err
	}

	return claims, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, ErrUnknownKID
	}

	key, alg, err := c.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
	}

	// A kid registered for EdDSA must never verify an HS256 token.
	if t.Method.Alg() != alg {
		return nil, ErrAlgMismatch
	}

	return key, nil
}
