package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/readinglog/internal/auth/autherr"
	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/store"
)

type MemberService struct {
	Store store.Store
}

// Get returns the member with id. A member that vanished after its token was
// issued is reported as unauthorized.
func (s *MemberService) Get(ctx context.Context, id int64) (domain.Member, error) {
	m, err := s.Store.Members().GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Member{}, autherr.Newf(autherr.KindUnauthorized, "member.get", "member no longer exists")
	}
	if err != nil {
		return domain.Member{}, autherr.New(autherr.KindInternal, "member.get", err)
	}
	return m, nil
}
