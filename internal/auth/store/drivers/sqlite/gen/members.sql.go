package gen

import "context"

const memberColumns = `id, email, nickname, image, provider_type, provider_id, role, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (Member, error) {
	var m Member
	err := row.Scan(
		&m.ID,
		&m.Email,
		&m.Nickname,
		&m.Image,
		&m.ProviderType,
		&m.ProviderID,
		&m.Role,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

const getMemberByID = `SELECT ` + memberColumns + ` FROM members WHERE id = ?`

func (q *Queries) GetMemberByID(ctx context.Context, id int64) (Member, error) {
	return scanMember(q.db.QueryRowContext(ctx, getMemberByID, id))
}

const getMemberByProvider = `SELECT ` + memberColumns + `
FROM members
WHERE provider_type = ? AND provider_id = ?`

type GetMemberByProviderParams struct {
	ProviderType string
	ProviderID   string
}

func (q *Queries) GetMemberByProvider(ctx context.Context, arg GetMemberByProviderParams) (Member, error) {
	return scanMember(q.db.QueryRowContext(ctx, getMemberByProvider, arg.ProviderType, arg.ProviderID))
}

const createMember = `INSERT INTO members (
    email, nickname, image, provider_type, provider_id, role, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + memberColumns

type CreateMemberParams struct {
	Email        string
	Nickname     string
	Image        string
	ProviderType string
	ProviderID   string
	Role         string
	CreatedAt    int64
	UpdatedAt    int64
}

func (q *Queries) CreateMember(ctx context.Context, arg CreateMemberParams) (Member, error) {
	row := q.db.QueryRowContext(ctx, createMember,
		arg.Email,
		arg.Nickname,
		arg.Image,
		arg.ProviderType,
		arg.ProviderID,
		arg.Role,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanMember(row)
}

const updateMemberProfile = `UPDATE members
SET email = ?, nickname = ?, image = ?, updated_at = ?
WHERE id = ?`

type UpdateMemberProfileParams struct {
	Email     string
	Nickname  string
	Image     string
	UpdatedAt int64
	ID        int64
}

func (q *Queries) UpdateMemberProfile(ctx context.Context, arg UpdateMemberProfileParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateMemberProfile,
		arg.Email,
		arg.Nickname,
		arg.Image,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
