// Package principal holds the authenticated member for the lifetime of one
// request. A request gets its own slot from Scope; nothing is shared across
// requests and the slot is emptied when the scope ends.
package principal

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	// ErrNoScope is returned by Set outside of a Scope.
	ErrNoScope = errors.New("principal: no request scope")

	// ErrScopeClosed is returned by Set after the scope was cleared.
	ErrScopeClosed = errors.New("principal: request scope closed")
)

// Principal is the authenticated member behind a request.
type Principal struct {
	MemberID int64
	Email    string
	Nickname string
	IsAdmin  bool

	// Token is the raw access token the member presented. Logout needs it to
	// blacklist exactly that token.
	Token     string
	ExpiresAt time.Time
}

type slot struct {
	mu     sync.Mutex
	p      *Principal
	closed bool
}

type ctxKey struct{}

// Scope attaches an empty slot to ctx. The returned clear func must run when
// the request finishes, on every path:
//
//	ctx, clear := principal.Scope(r.Context())
//	defer clear()
func Scope(ctx context.Context) (context.Context, func()) {
	s := &slot{}
	return context.WithValue(ctx, ctxKey{}, s), s.clear
}

func (s *slot) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = nil
	s.closed = true
}

func slotFrom(ctx context.Context) *slot {
	s, _ := ctx.Value(ctxKey{}).(*slot)
	return s
}

// Set stores p in the request's slot, replacing any earlier value.
func Set(ctx context.Context, p Principal) error {
	s := slotFrom(ctx)
	if s == nil {
		return ErrNoScope
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScopeClosed
	}
	s.p = &p
	return nil
}

// Get returns the request's principal, if one was set.
func Get(ctx context.Context) (Principal, bool) {
	s := slotFrom(ctx)
	if s == nil {
		return Principal{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.p == nil {
		return Principal{}, false
	}
	return *s.p, true
}

// Clear empties the slot early. The scope's own clear func still closes it.
func Clear(ctx context.Context) {
	s := slotFrom(ctx)
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = nil
}
