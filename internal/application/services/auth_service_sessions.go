package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/session"
)

// Authenticate resolves a session id and slides its expiry, recording the
// caller's address and user agent.
func (s *AuthService) Authenticate(ctx context.Context, sessionID, ipAddress, userAgent string) (*session.Session, error) {
	if sessionID == "" {
		return nil, ErrUnauthorized
	}
	sess, ok := s.sessions.Touch(ctx, sessionID, session.Patch{
		IPAddress: &ipAddress,
		UserAgent: &userAgent,
	})
	if !ok {
		return nil, ErrSessionExpired
	}
	return sess, nil
}

func (s *AuthService) ListSessions(ctx context.Context) []string {
	return s.sessions.IDs(ctx)
}

func (s *AuthService) TerminateSession(ctx context.Context, sessionID string) {
	s.sessions.Destroy(ctx, sessionID)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"session_id": sessionID}).Info("admin session terminated")
	}
}

// CleanupSessions reads every enumerable session; reading an expired session
// deletes it.
func (s *AuthService) CleanupSessions(ctx context.Context) int {
	removed := 0
	for _, id := range s.sessions.IDs(ctx) {
		if _, ok := s.sessions.Read(ctx, id); !ok {
			removed++
		}
	}
	if s.logger != nil && removed > 0 {
		s.logger.WithFields(logrus.Fields{"removed": removed}).Info("cleaned up expired sessions")
	}
	return removed
}
