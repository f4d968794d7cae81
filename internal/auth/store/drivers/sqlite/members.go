package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
	"github.com/aussiebroadwan/readinglog/internal/auth/store"
	"github.com/aussiebroadwan/readinglog/internal/auth/store/drivers/sqlite/gen"
)

type membersRepo struct {
	q *gen.Queries
}

func (r *membersRepo) GetByID(ctx context.Context, id int64) (domain.Member, error) {
	row, err := r.q.GetMemberByID(ctx, id)
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return mapMember(row), nil
}

func (r *membersRepo) GetByProvider(
	ctx context.Context,
	provider domain.ProviderType,
	providerID string,
) (domain.Member, error) {
	row, err := r.q.GetMemberByProvider(ctx, gen.GetMemberByProviderParams{
		ProviderType: provider.String(),
		ProviderID:   providerID,
	})
	if err != nil {
		return domain.Member{}, mapNotFound(err)
	}
	return mapMember(row), nil
}

func (r *membersRepo) Create(ctx context.Context, m domain.Member) (domain.Member, error) {
	role := m.Role
	if role == "" {
		role = domain.RoleUser
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}

	row, err := r.q.CreateMember(ctx, gen.CreateMemberParams{
		Email:        m.Email,
		Nickname:     m.Nickname,
		Image:        m.Image,
		ProviderType: m.ProviderType.String(),
		ProviderID:   m.ProviderID,
		Role:         string(role),
		CreatedAt:    toMillis(m.CreatedAt),
		UpdatedAt:    toMillis(m.UpdatedAt),
	})
	if err != nil {
		return domain.Member{}, mapConstraint(err)
	}
	return mapMember(row), nil
}

func (r *membersRepo) UpdateProfile(
	ctx context.Context,
	id int64,
	email, nickname, image string,
	now time.Time,
) error {
	n, err := r.q.UpdateMemberProfile(ctx, gen.UpdateMemberProfileParams{
		Email:     email,
		Nickname:  nickname,
		Image:     image,
		UpdatedAt: toMillis(now),
		ID:        id,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
