package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventify/eventify-web/storage/db"
)

const (
	tokenOpTimeout = 5 * time.Second
	// touchInterval limits how often a read refreshes updated_at.
	touchInterval = time.Minute
)

// TokenSlot persists the credential token of one browser session.
type TokenSlot struct {
	queries   *db.Queries
	sessionID string
	now       func() time.Time
}

// TokenSlot returns the token slot for a browser session id.
func (s *Storage) TokenSlot(sessionID string) *TokenSlot {
	return &TokenSlot{queries: s.Queries, sessionID: sessionID, now: time.Now}
}

func (t *TokenSlot) Token() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), tokenOpTimeout)
	defer cancel()

	row, err := t.queries.GetSessionToken(ctx, t.sessionID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("failed to read session token", "error", err, "session_id", t.sessionID)
		}
		return "", false
	}

	now := t.now()
	if now.Sub(time.Unix(row.UpdatedAt, 0)) > touchInterval {
		err := t.queries.TouchSessionToken(ctx, db.TouchSessionTokenParams{
			UpdatedAt: now.Unix(),
			SessionID: t.sessionID,
		})
		if err != nil {
			slog.Warn("failed to touch session token", "error", err, "session_id", t.sessionID)
		}
	}

	return row.Token, row.Token != ""
}

func (t *TokenSlot) SetToken(token string) error {
	ctx, cancel := context.WithTimeout(context.Background(), tokenOpTimeout)
	defer cancel()

	now := t.now().Unix()
	err := t.queries.UpsertSessionToken(ctx, db.UpsertSessionTokenParams{
		SessionID: t.sessionID,
		Token:     token,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

func (t *TokenSlot) ClearToken() error {
	ctx, cancel := context.WithTimeout(context.Background(), tokenOpTimeout)
	defer cancel()

	if err := t.queries.DeleteSessionToken(ctx, t.sessionID); err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}
	return nil
}

// DeleteTokensOlderThan removes tokens not used since cutoff and returns how
// many were removed.
func (s *Storage) DeleteTokensOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.Queries.DeleteSessionTokensBefore(ctx, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired session tokens: %w", err)
	}
	return n, nil
}
