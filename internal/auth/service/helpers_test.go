package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/service"
	"github.com/aussiebroadwan/readinglog/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/readinglog/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store *sqlite.Store
	clock *clock
	codec service.TokenCodec
	auth  *service.Authenticator
}

func newCodec(t *testing.T, c *clock) service.TokenCodec {
	t.Helper()

	signer, err := jwtx.NewSignerHS256("test", testSecret)
	require.NoError(t, err)
	jc, err := jwtx.NewCodec(signer, nil, jwtx.CodecOptions{
		Issuer:     "readinglog-auth",
		AccessTTL:  30 * time.Minute,
		RefreshTTL: 14 * 24 * time.Hour,
		Now:        c.Now,
	})
	require.NoError(t, err)
	return service.UnauthorizedOnFailure(service.NewTokenCodec(jc))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	c := newClock()
	codec := newCodec(t, c)
	return &fixture{
		store: st,
		clock: c,
		codec: codec,
		auth: &service.Authenticator{
			Store:                 st,
			Blacklist:             &service.TokenBlacklist{Store: st.Blacklist(), Now: c.Now},
			Codec:                 codec,
			RevokeRefreshOnLogout: true,
			AdminEmails:           []string{"Admin@Example.com"},
			Now:                   c.Now,
		},
	}
}

func (f *fixture) member(t *testing.T, providerID string) domain.Member {
	t.Helper()

	m, err := f.store.Members().Create(context.Background(), domain.Member{
		Email:        providerID + "@example.com",
		Nickname:     providerID,
		ProviderType: domain.ProviderGoogle,
		ProviderID:   providerID,
	})
	require.NoError(t, err)
	return m
}
