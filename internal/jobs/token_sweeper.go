package jobs

import (
	"context"
	"log/slog"
	"time"
)

const (
	// DefaultTokenTTL is how long an unused session token is kept.
	DefaultTokenTTL = 7 * 24 * time.Hour

	// DefaultSweepInterval is how often expired tokens are removed.
	DefaultSweepInterval = time.Hour
)

// TokenPurger deletes persisted tokens that have been idle since cutoff.
type TokenPurger interface {
	DeleteTokensOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenSweeper periodically removes session tokens idle longer than the TTL.
type TokenSweeper struct {
	store    TokenPurger
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	ticker   *time.Ticker
	done     chan bool
}

func NewTokenSweeper(store TokenPurger, ttl, interval time.Duration) *TokenSweeper {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &TokenSweeper{
		store:    store,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		done:     make(chan bool),
	}
}

// Start begins the token sweeper background job
func (s *TokenSweeper) Start(ctx context.Context) {
	slog.Info("starting session token sweeper", "interval", s.interval, "ttl", s.ttl)

	// Run immediately on start
	s.sweep(ctx)

	s.ticker = time.NewTicker(s.interval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.sweep(ctx)
			case <-ctx.Done():
				slog.Info("session token sweeper stopped", "reason", ctx.Err())
				return
			case <-s.done:
				slog.Info("session token sweeper stopped")
				return
			}
		}
	}()
}

// Stop stops the background job
func (s *TokenSweeper) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.done)
}

func (s *TokenSweeper) sweep(ctx context.Context) {
	cutoff := s.now().Add(-s.ttl)
	n, err := s.store.DeleteTokensOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("failed to sweep session tokens", "error", err)
		return
	}
	if n > 0 {
		slog.Info("swept expired session tokens", "count", n, "cutoff", cutoff)
	}
}
