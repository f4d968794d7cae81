package gen

import "context"

const upsertRefreshToken = `INSERT INTO refresh_tokens (
    member_id, token_hash, expires_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?)
ON CONFLICT (member_id) DO UPDATE SET
    token_hash = excluded.token_hash,
    expires_at = excluded.expires_at,
    updated_at = excluded.updated_at`

type UpsertRefreshTokenParams struct {
	MemberID  int64
	TokenHash string
	ExpiresAt int64
	CreatedAt int64
	UpdatedAt int64
}

func (q *Queries) UpsertRefreshToken(ctx context.Context, arg UpsertRefreshTokenParams) error {
	_, err := q.db.ExecContext(ctx, upsertRefreshToken,
		arg.MemberID,
		arg.TokenHash,
		arg.ExpiresAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getRefreshTokenByMemberID = `SELECT member_id, token_hash, expires_at, created_at, updated_at
FROM refresh_tokens
WHERE member_id = ?`

func (q *Queries) GetRefreshTokenByMemberID(ctx context.Context, memberID int64) (RefreshToken, error) {
	var t RefreshToken
	err := q.db.QueryRowContext(ctx, getRefreshTokenByMemberID, memberID).Scan(
		&t.MemberID,
		&t.TokenHash,
		&t.ExpiresAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// The token_hash predicate makes this a compare-and-swap.
const rotateRefreshToken = `UPDATE refresh_tokens
SET token_hash = ?, expires_at = ?, updated_at = ?
WHERE member_id = ? AND token_hash = ?`

type RotateRefreshTokenParams struct {
	TokenHash    string
	ExpiresAt    int64
	UpdatedAt    int64
	MemberID     int64
	ExpectedHash string
}

func (q *Queries) RotateRefreshToken(ctx context.Context, arg RotateRefreshTokenParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, rotateRefreshToken,
		arg.TokenHash,
		arg.ExpiresAt,
		arg.UpdatedAt,
		arg.MemberID,
		arg.ExpectedHash,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteRefreshTokenByMemberID = `DELETE FROM refresh_tokens WHERE member_id = ?`

func (q *Queries) DeleteRefreshTokenByMemberID(ctx context.Context, memberID int64) error {
	_, err := q.db.ExecContext(ctx, deleteRefreshTokenByMemberID, memberID)
	return err
}

const deleteExpiredRefreshTokens = `DELETE FROM refresh_tokens WHERE expires_at <= ?`

func (q *Queries) DeleteExpiredRefreshTokens(ctx context.Context, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredRefreshTokens, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
