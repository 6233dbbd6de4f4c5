package helpers

import (
	"github.com/labstack/echo/v4"

	"github.com/Nguyenkim2108/league-scheude/internal/core/domain/session"
)

type ctxKey string

const (
	keyAdminSession ctxKey = "admin_session"
	keySessionID    ctxKey = "session_id"
)

func SetAdminSession(c echo.Context, s *session.Session) { c.Set(string(keyAdminSession), s) }
func GetAdminSessionRaw(c echo.Context) (*session.Session, bool) {
	v := c.Get(string(keyAdminSession))
	s, ok := v.(*session.Session)
	return s, ok
}

func SetSessionID(c echo.Context, id string) { c.Set(string(keySessionID), id) }
func GetSessionIDRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keySessionID))
	id, ok := v.(string)
	return id, ok
}
