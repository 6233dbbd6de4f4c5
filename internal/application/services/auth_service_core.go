package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	config "github.com/Nguyenkim2108/league-scheude/configs"
	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/session"
	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
	"github.com/Nguyenkim2108/league-scheude/internal/utils"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("authentication required")
	ErrSessionExpired     = errors.New("session expired or invalid")
)

// AuthService authenticates the single configured admin account.
type AuthService struct {
	sessions ports.SessionStore
	cfg      *config.AdminConfig
	logger   *logrus.Logger
	newID    func() string
}

func NewAuthService(sessions ports.SessionStore, cfg *config.AdminConfig, logger *logrus.Logger) ports.AuthService {
	service := &AuthService{
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
		newID:    uuid.NewString,
	}

	if cfg.PasswordHash == "" && logger != nil {
		if issues := utils.PasswordWeaknesses(cfg.Password); len(issues) > 0 {
			logger.WithFields(logrus.Fields{"username": cfg.Username}).WithError(errors.Join(issues...)).Warn("admin password is weak; set ADMIN_PASSWORD_HASH or a stronger ADMIN_PASSWORD")
		}
	}

	return service
}

func (s *AuthService) Login(ctx context.Context, req *ports.LoginRequest, ipAddress, userAgent string) (*ports.LoginResult, error) {
	if req == nil || req.Username == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}
	if !s.checkCredentials(req.Username, req.Password) {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"username": req.Username, "ip_address": ipAddress}).Warn("admin login failed")
		}
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, s.newID(), session.Data{
		Username:  req.Username,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"username": sess.Username, "session_id": sess.ID, "ip_address": ipAddress}).Info("admin logged in")
	}
	return &ports.LoginResult{SessionID: sess.ID, ExpiresAt: sess.ExpiresAt}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	s.sessions.Destroy(ctx, sessionID)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"session_id": sessionID}).Info("admin logged out")
	}
}

func (s *AuthService) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	passOK := utils.CheckPassword(password, s.cfg.PasswordHash, s.cfg.Password)
	return userOK && passOK
}
