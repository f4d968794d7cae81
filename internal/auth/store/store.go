package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict reports a lost compare-and-swap, the row changed underneath us.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite) implement
// this. Sub-repositories are exposed as methods so a Tx-scoped store can hand
// out the same repos bound to the transaction.
type Store interface {
	Members() Members
	RefreshTokens() RefreshTokens
	Blacklist() Blacklist

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A non-nil error from fn rolls
	// the transaction back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Members interface {
	// GetByID returns a member by id.
	GetByID(ctx context.Context, id int64) (domain.Member, error)

	// GetByProvider resolves the member linked to an external identity.
	GetByProvider(ctx context.Context, provider domain.ProviderType, providerID string) (domain.Member, error)

	// Create inserts a member and returns it with its assigned id.
	// Returns ErrAlreadyExists if the provider identity is already linked.
	Create(ctx context.Context, m domain.Member) (domain.Member, error)

	// UpdateProfile replaces email, nickname and image and bumps updated_at.
	UpdateProfile(ctx context.Context, id int64, email, nickname, image string, now time.Time) error
}

// RefreshTokens holds at most one row per member; member_id is the key.
type RefreshTokens interface {
	// Upsert stores t, replacing whatever token the member held before.
	Upsert(ctx context.Context, t domain.RefreshToken) error

	// GetByMemberID returns the member's live refresh token row.
	GetByMemberID(ctx context.Context, memberID int64) (domain.RefreshToken, error)

	// Rotate swaps the member's token for next only if the stored hash still
	// equals expectedHash. Returns ErrConflict when it does not.
	Rotate(ctx context.Context, expectedHash string, next domain.RefreshToken) error

	// DeleteByMemberID removes the member's refresh token. Deleting a missing
	// row is not an error.
	DeleteByMemberID(ctx context.Context, memberID int64) error

	// DeleteExpired removes rows whose expiry is at or before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Blacklist records revoked access tokens until they would have expired anyway.
type Blacklist interface {
	// Add inserts or overwrites the entry for t.TokenHash.
	Add(ctx context.Context, t domain.BlacklistedToken) error

	// IsBlacklisted reports whether hash has an entry that is still live at now.
	// Entries past their expiry are inert.
	IsBlacklisted(ctx context.Context, hash string, now time.Time) (bool, error)

	// DeleteExpired purges entries whose expiry is at or before now. Drivers
	// with native expiry may return 0 without doing anything.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
