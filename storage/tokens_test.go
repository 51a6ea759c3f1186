package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventify/eventify-web/storage/db"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	database, _, cleanup, err := NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return Wrap(database)
}

func TestTokenSlot(t *testing.T) {
	s := newTestStorage(t)
	slot := s.TokenSlot("sid-1")

	_, ok := slot.Token()
	assert.False(t, ok)

	require.NoError(t, slot.SetToken("tok123"))
	token, ok := slot.Token()
	require.True(t, ok)
	assert.Equal(t, "tok123", token)

	require.NoError(t, slot.SetToken("tok456"))
	token, _ = slot.Token()
	assert.Equal(t, "tok456", token)

	other := s.TokenSlot("sid-2")
	_, ok = other.Token()
	assert.False(t, ok, "slots are keyed by session id")

	require.NoError(t, slot.ClearToken())
	_, ok = slot.Token()
	assert.False(t, ok)
	require.NoError(t, slot.ClearToken())
}

func TestTokenSlot_ReadRefreshesIdleToken(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	start := time.Unix(1_700_000_000, 0)
	slot := s.TokenSlot("sid")
	slot.now = func() time.Time { return start }
	require.NoError(t, slot.SetToken("t"))

	slot.now = func() time.Time { return start.Add(10 * time.Minute) }
	_, ok := slot.Token()
	require.True(t, ok)

	row, err := s.Queries.GetSessionToken(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, start.Add(10*time.Minute).Unix(), row.UpdatedAt)
	assert.Equal(t, start.Unix(), row.CreatedAt)
}

func TestDeleteTokensOlderThan(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	for sid, age := range map[string]time.Duration{
		"old":    48 * time.Hour,
		"recent": time.Hour,
	} {
		slot := s.TokenSlot(sid)
		slot.now = func() time.Time { return now.Add(-age) }
		require.NoError(t, slot.SetToken("t-"+sid))
	}

	n, err := s.DeleteTokensOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err := s.Queries.CountSessionTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWithTransaction_RollsBack(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := WithTransaction(s.DB(), func(tx *sql.Tx) error {
		return s.Queries.WithTx(tx).UpsertSessionToken(ctx, db.UpsertSessionTokenParams{
			SessionID: "tx", Token: "t", CreatedAt: 1, UpdatedAt: 1,
		})
	})
	require.NoError(t, err)

	count, err := s.Queries.CountSessionTokens(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
