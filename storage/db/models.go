package db

type SessionToken struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}
