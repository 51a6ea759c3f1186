package db

import (
	"context"
)

const countSessionTokens = `-- name: CountSessionTokens :one
SELECT COUNT(*) FROM session_tokens
`

func (q *Queries) CountSessionTokens(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countSessionTokens)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteSessionToken = `-- name: DeleteSessionToken :exec
DELETE FROM session_tokens
WHERE session_id = ?
`

func (q *Queries) DeleteSessionToken(ctx context.Context, sessionID string) error {
	_, err := q.db.ExecContext(ctx, deleteSessionToken, sessionID)
	return err
}

const deleteSessionTokensBefore = `-- name: DeleteSessionTokensBefore :execrows
DELETE FROM session_tokens
WHERE updated_at < ?
`

func (q *Queries) DeleteSessionTokensBefore(ctx context.Context, updatedAt int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteSessionTokensBefore, updatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getSessionToken = `-- name: GetSessionToken :one
SELECT session_id, token, created_at, updated_at FROM session_tokens
WHERE session_id = ?
`

func (q *Queries) GetSessionToken(ctx context.Context, sessionID string) (SessionToken, error) {
	row := q.db.QueryRowContext(ctx, getSessionToken, sessionID)
	var i SessionToken
	err := row.Scan(
		&i.SessionID,
		&i.Token,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const touchSessionToken = `-- name: TouchSessionToken :exec
UPDATE session_tokens SET updated_at = ?
WHERE session_id = ?
`

type TouchSessionTokenParams struct {
	UpdatedAt int64  `json:"updated_at"`
	SessionID string `json:"session_id"`
}

func (q *Queries) TouchSessionToken(ctx context.Context, arg TouchSessionTokenParams) error {
	_, err := q.db.ExecContext(ctx, touchSessionToken, arg.UpdatedAt, arg.SessionID)
	return err
}

const upsertSessionToken = `-- name: UpsertSessionToken :exec
INSERT INTO session_tokens (session_id, token, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (session_id) DO UPDATE SET
    token = excluded.token,
    updated_at = excluded.updated_at
`

type UpsertSessionTokenParams struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func (q *Queries) UpsertSessionToken(ctx context.Context, arg UpsertSessionTokenParams) error {
	_, err := q.db.ExecContext(ctx, upsertSessionToken,
		arg.SessionID,
		arg.Token,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
