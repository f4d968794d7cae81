package principal_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/internal/auth/principal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeLifecycle(t *testing.T) {
	ctx, clear := principal.Scope(context.Background())

	_, ok := principal.Get(ctx)
	require.False(t, ok)

	require.NoError(t, principal.Set(ctx, principal.Principal{MemberID: 1, Nickname: "reader"}))
	p, ok := principal.Get(ctx)
	require.True(t, ok)
	require.EqualValues(t, 1, p.MemberID)

	clear()

	_, ok = principal.Get(ctx)
	require.False(t, ok, "nothing survives the scope")
	require.ErrorIs(t, principal.Set(ctx, principal.Principal{MemberID: 2}), principal.ErrScopeClosed)
}

func TestSetWithoutScope(t *testing.T) {
	require.ErrorIs(t, principal.Set(context.Background(), principal.Principal{}), principal.ErrNoScope)

	_, ok := principal.Get(context.Background())
	require.False(t, ok)

	principal.Clear(context.Background()) // no panic
}

func TestClearRunsOnPanic(t *testing.T) {
	var leaked context.Context

	func() {
		defer func() { _ = recover() }()

		ctx, clear := principal.Scope(context.Background())
		defer clear()
		leaked = ctx

		require.NoError(t, principal.Set(ctx, principal.Principal{MemberID: 3}))
		panic("handler blew up")
	}()

	_, ok := principal.Get(leaked)
	require.False(t, ok)
}

func TestScopesAreIsolated(t *testing.T) {
	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()

			ctx, clear := principal.Scope(context.Background())
			defer clear()

			assert.NoError(t, principal.Set(ctx, principal.Principal{MemberID: id}))
			p, ok := principal.Get(ctx)
			assert.True(t, ok)
			assert.Equal(t, id, p.MemberID)
		}(i)
	}
	wg.Wait()
}

func TestEarlyClear(t *testing.T) {
	ctx, clear := principal.Scope(context.Background())
	defer clear()

	require.NoError(t, principal.Set(ctx, principal.Principal{MemberID: 4}))
	principal.Clear(ctx)

	_, ok := principal.Get(ctx)
	require.False(t, ok)
	require.NoError(t, principal.Set(ctx, principal.Principal{MemberID: 5}), "slot stays usable until the scope ends")
}

func TestGuards(t *testing.T) {
	t.Run("no principal is unauthorized", func(t *testing.T) {
		ctx, clear := principal.Scope(context.Background())
		defer clear()

		_, err := principal.CanActivate(ctx)
		require.ErrorIs(t, err, autherr.ErrUnauthorized)

		_, err = principal.RequireAdmin(ctx)
		require.ErrorIs(t, err, autherr.ErrUnauthorized)
	})

	t.Run("member without role is forbidden from admin", func(t *testing.T) {
		ctx, clear := principal.Scope(context.Background())
		defer clear()
		require.NoError(t, principal.Set(ctx, principal.Principal{MemberID: 1}))

		p, err := principal.CanActivate(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, p.MemberID)

		_, err = principal.RequireAdmin(ctx)
		require.ErrorIs(t, err, autherr.ErrForbidden)
	})

	t.Run("admin passes", func(t *testing.T) {
		ctx, clear := principal.Scope(context.Background())
		defer clear()
		require.NoError(t, principal.Set(ctx, principal.Principal{MemberID: 1, IsAdmin: true}))

		_, err := principal.RequireAdmin(ctx)
		require.NoError(t, err)
	})
}
