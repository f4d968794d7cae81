package gen

import "context"

const addBlacklistedToken = `INSERT INTO blacklisted_tokens (token_hash, expired_at, created_at)
VALUES (?, ?, ?)
ON CONFLICT (token_hash) DO UPDATE SET expired_at = excluded.expired_at`

type AddBlacklistedTokenParams struct {
	TokenHash string
	ExpiredAt int64
	CreatedAt int64
}

func (q *Queries) AddBlacklistedToken(ctx context.Context, arg AddBlacklistedTokenParams) error {
	_, err := q.db.ExecContext(ctx, addBlacklistedToken, arg.TokenHash, arg.ExpiredAt, arg.CreatedAt)
	return err
}

const isTokenBlacklisted = `SELECT EXISTS (
    SELECT 1 FROM blacklisted_tokens WHERE token_hash = ? AND expired_at > ?
)`

type IsTokenBlacklistedParams struct {
	TokenHash string
	Now       int64
}

func (q *Queries) IsTokenBlacklisted(ctx context.Context, arg IsTokenBlacklistedParams) (bool, error) {
	var exists int64
	err := q.db.QueryRowContext(ctx, isTokenBlacklisted, arg.TokenHash, arg.Now).Scan(&exists)
	return exists == 1, err
}

const deleteExpiredBlacklistedTokens = `DELETE FROM blacklisted_tokens WHERE expired_at <= ?`

func (q *Queries) DeleteExpiredBlacklistedTokens(ctx context.Context, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpiredBlacklistedTokens, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
