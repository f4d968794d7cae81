package principal

import (
	"context"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
)

// CanActivate admits any authenticated member. It has no side effects.
func CanActivate(ctx context.Context) (Principal, error) {
	p, ok := Get(ctx)
	if !ok {
		return Principal{}, autherr.New(autherr.KindUnauthorized, "guard.can_activate", nil)
	}
	return p, nil
}

// RequireAdmin admits only members holding the admin role. A missing
// principal is unauthorized, a present one without the role is forbidden.
func RequireAdmin(ctx context.Context) (Principal, error) {
	p, err := CanActivate(ctx)
	if err != nil {
		return Principal{}, err
	}
	if !p.IsAdmin {
		return Principal{}, autherr.New(autherr.KindForbidden, "guard.require_admin", nil)
	}
	return p, nil
}
