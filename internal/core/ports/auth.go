package ports

import (
	"context"
	"time"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/session"
)

// SessionStore keeps admin sessions in the cache with sliding expiry.
type SessionStore interface {
	Create(ctx context.Context, id string, data session.Data) (*session.Session, error)
	Read(ctx context.Context, id string) (*session.Session, bool)
	Touch(ctx context.Context, id string, patch session.Patch) (*session.Session, bool)
	Destroy(ctx context.Context, id string)
	// IDs lists session ids visible to key enumeration (local store only).
	IDs(ctx context.Context) []string
}

// LoginRequest is the admin login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService gates admin routes.
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest, ipAddress, userAgent string) (*LoginResult, error)
	// Authenticate resolves a session id and slides its expiry.
	Authenticate(ctx context.Context, sessionID, ipAddress, userAgent string) (*session.Session, error)
	Logout(ctx context.Context, sessionID string)
	ListSessions(ctx context.Context) []string
	TerminateSession(ctx context.Context, sessionID string)
	// CleanupSessions purges expired sessions it can enumerate and returns how
	// many were removed.
	CleanupSessions(ctx context.Context) int
}
