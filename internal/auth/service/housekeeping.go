package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/readinglog/internal/auth/store"
)

// Report counts the rows removed by one housekeeping sweep.
type Report struct {
	RefreshTokensDeleted int64 `json:"refreshTokensDeleted"`
	BlacklistDeleted     int64 `json:"blacklistDeleted"`
}

// HousekeepingService periodically removes expired refresh tokens and
// blacklist entries so neither table grows without bound.
type HousekeepingService struct {
	RefreshTokens store.RefreshTokens
	Blacklist     store.Blacklist
	Logger        *slog.Logger
	Interval      time.Duration
	Now           func() time.Time
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(refresh store.RefreshTokens, blacklist store.Blacklist, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HousekeepingService{
		RefreshTokens: refresh,
		Blacklist:     blacklist,
		Logger:        logger,
		Interval:      interval,
	}
}

// Run sweeps once immediately and then on every tick until ctx is done.
// It always returns nil so it can sit in an errgroup next to the server.
func (s *HousekeepingService) Run(ctx context.Context) error {
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
	defer s.Logger.Info("housekeeping service stopped")

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *HousekeepingService) sweep(ctx context.Context) {
	if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
		s.Logger.Error("housekeeping sweep failed", "error", err)
	}
}

// RunOnce performs a single sweep. Each deletion is independent, a failure
// in one does not stop the other; the errors are joined.
func (s *HousekeepingService) RunOnce(ctx context.Context) (Report, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	var (
		r    Report
		errs []error
	)

	n, err := s.RefreshTokens.DeleteExpired(ctx, now)
	if err != nil {
		errs = append(errs, err)
	} else {
		r.RefreshTokensDeleted = n
	}

	n, err = s.Blacklist.DeleteExpired(ctx, now)
	if err != nil {
		errs = append(errs, err)
	} else {
		r.BlacklistDeleted = n
	}

	s.Logger.Info("housekeeping cleanup completed",
		"refresh_tokens_deleted", r.RefreshTokensDeleted,
		"blacklist_deleted", r.BlacklistDeleted,
	)
	return r, errors.Join(errs...)
}
