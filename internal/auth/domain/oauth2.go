package domain

import (
	"errors"
	"strings"
)

// ProviderType identifies an external OAuth2 identity provider.
type ProviderType string

const (
	ProviderKakao  ProviderType = "kakao"
	ProviderNaver  ProviderType = "naver"
	ProviderGoogle ProviderType = "google"
)

var ErrUnknownProvider = errors.New("domain: unknown oauth2 provider")

// ParseProviderType normalises a provider name taken from a URL path.
func ParseProviderType(s string) (ProviderType, error) {
	switch p := ProviderType(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderKakao, ProviderNaver, ProviderGoogle:
		return p, nil
	default:
		return "", ErrUnknownProvider
	}
}

func (p ProviderType) String() string { return string(p) }

// OAuth2UserInfo is a provider profile mapped onto our canonical shape.
type OAuth2UserInfo struct {
	Email        string
	Nickname     string
	Image        string
	ProviderID   string
	ProviderType ProviderType
}
