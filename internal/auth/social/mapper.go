package social

import (
	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/tidwall/gjson"
)

// Mapper turns a provider's raw user-info JSON into a profile.
type Mapper func(raw []byte) (domain.OAuth2UserInfo, error)

var mappers = map[domain.ProviderType]Mapper{
	domain.ProviderKakao:  mapKakao,
	domain.ProviderNaver:  mapNaver,
	domain.ProviderGoogle: mapGoogle,
}

// Map resolves the mapper for provider and applies it. Unknown providers
// fail fast instead of yielding a half filled profile.
func Map(provider domain.ProviderType, raw []byte) (domain.OAuth2UserInfo, error) {
	m, ok := mappers[provider]
	if !ok {
		return domain.OAuth2UserInfo{}, autherr.Newf(autherr.KindUnsupportedProvider, "social.map", "provider %q is not supported", provider)
	}
	if !gjson.ValidBytes(raw) {
		return domain.OAuth2UserInfo{}, malformed(provider, "profile is not valid JSON")
	}

	info, err := m(raw)
	if err != nil {
		return domain.OAuth2UserInfo{}, err
	}
	if info.ProviderID == "" {
		return domain.OAuth2UserInfo{}, malformed(provider, "profile has no id")
	}

	info.ProviderType = provider
	return info, nil
}

// Supported lists providers that have a mapper.
func Supported(provider domain.ProviderType) bool {
	_, ok := mappers[provider]
	return ok
}

func malformed(provider domain.ProviderType, detail string) error {
	return autherr.Newf(autherr.KindMalformedProfile, "social.map", "%s: %s", provider, detail)
}

func mapKakao(raw []byte) (domain.OAuth2UserInfo, error) {
	account := gjson.GetBytes(raw, "kakao_account")
	profile := account.Get("profile")
	if !profile.IsObject() {
		return domain.OAuth2UserInfo{}, malformed(domain.ProviderKakao, "kakao_account.profile is missing")
	}

	return domain.OAuth2UserInfo{
		ProviderID: gjson.GetBytes(raw, "id").String(),
		Email:      account.Get("email").String(),
		Nickname:   profile.Get("nickname").String(),
		Image:      profile.Get("profile_image_url").String(),
	}, nil
}

func mapNaver(raw []byte) (domain.OAuth2UserInfo, error) {
	resp := gjson.GetBytes(raw, "response")
	if !resp.IsObject() {
		return domain.OAuth2UserInfo{}, malformed(domain.ProviderNaver, "response is missing")
	}

	return domain.OAuth2UserInfo{
		ProviderID: resp.Get("id").String(),
		Email:      resp.Get("email").String(),
		Nickname:   resp.Get("nickname").String(),
		Image:      resp.Get("profile_image").String(),
	}, nil
}

func mapGoogle(raw []byte) (domain.OAuth2UserInfo, error) {
	r := gjson.ParseBytes(raw)

	return domain.OAuth2UserInfo{
		ProviderID: r.Get("sub").String(),
		Email:      r.Get("email").String(),
		Nickname:   r.Get("name").String(),
		Image:      r.Get("picture").String(),
	}, nil
}
