package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHousekeepingRunOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := f.clock.Now()

	stale := f.member(t, "stale")
	live := f.member(t, "live")
	require.NoError(t, f.store.RefreshTokens().Upsert(ctx, domain.RefreshToken{
		MemberID: stale.ID, TokenHash: "stale-hash", ExpiresAt: now.Add(-time.Second), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, f.store.RefreshTokens().Upsert(ctx, domain.RefreshToken{
		MemberID: live.ID, TokenHash: "live-hash", ExpiresAt: now.Add(time.Hour), CreatedAt: now, UpdatedAt: now,
	}))

	bl := f.store.Blacklist()
	require.NoError(t, bl.Add(ctx, domain.BlacklistedToken{TokenHash: "old-1", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, bl.Add(ctx, domain.BlacklistedToken{TokenHash: "old-2", ExpiresAt: now}))
	require.NoError(t, bl.Add(ctx, domain.BlacklistedToken{TokenHash: "new", ExpiresAt: now.Add(time.Minute)}))

	hk := service.NewHousekeepingService(f.store.RefreshTokens(), bl, quietLogger(), 0)
	hk.Now = f.clock.Now
	require.Equal(t, time.Hour, hk.Interval)

	report, err := hk.RunOnce(ctx)
	require.NoError(t, err)
	require.Equal(t, service.Report{RefreshTokensDeleted: 1, BlacklistDeleted: 2}, report)

	_, err = f.store.RefreshTokens().GetByMemberID(ctx, live.ID)
	require.NoError(t, err)
	ok, err := bl.IsBlacklisted(ctx, "new", now)
	require.NoError(t, err)
	require.True(t, ok)

	report, err = hk.RunOnce(ctx)
	require.NoError(t, err)
	require.Zero(t, report)
}

type failingBlacklist struct{}

func (failingBlacklist) Add(context.Context, domain.BlacklistedToken) error { return errors.New("down") }
func (failingBlacklist) IsBlacklisted(context.Context, string, time.Time) (bool, error) {
	return false, errors.New("down")
}
func (failingBlacklist) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, errors.New("down")
}

func TestHousekeepingFailuresAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	now := f.clock.Now()

	m := f.member(t, "stale")
	require.NoError(t, f.store.RefreshTokens().Upsert(ctx, domain.RefreshToken{
		MemberID: m.ID, TokenHash: "h", ExpiresAt: now.Add(-time.Second), CreatedAt: now, UpdatedAt: now,
	}))

	hk := service.NewHousekeepingService(f.store.RefreshTokens(), failingBlacklist{}, quietLogger(), time.Minute)
	hk.Now = f.clock.Now

	report, err := hk.RunOnce(ctx)
	require.Error(t, err)
	require.Equal(t, int64(1), report.RefreshTokensDeleted)
}

func TestHousekeepingRunStopsWithContext(t *testing.T) {
	f := newFixture(t)
	hk := service.NewHousekeepingService(f.store.RefreshTokens(), f.store.Blacklist(), quietLogger(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hk.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("housekeeping did not stop")
	}
}
