package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/workbenchhq/workbench/internal/config"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

// Manager manages the auth token cookies. Both cookies are http-only and
// cross-site capable; SameSite=None requires the secure flag on any modern
// browser, so production configs must keep it on.
type Manager struct {
	secure bool
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{secure: cfg.AuthCookieSecure}
}

func (m *Manager) ReadAccessToken(c *gin.Context) (string, bool) {
	return m.read(c, AccessCookieName)
}

func (m *Manager) ReadRefreshToken(c *gin.Context) (string, bool) {
	return m.read(c, RefreshCookieName)
}

// SetAccess attaches the access token cookie. Used on login and refresh.
func (m *Manager) SetAccess(c *gin.Context, value string, expiresAt time.Time) {
	m.set(c, AccessCookieName, value, expiresAt)
}

// SetRefresh attaches the refresh token cookie. Used on login only.
func (m *Manager) SetRefresh(c *gin.Context, value string, expiresAt time.Time) {
	m.set(c, RefreshCookieName, value, expiresAt)
}

// Clear instructs the client to delete both cookies.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(AccessCookieName, "", -1, "/", "", m.secure, true)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", m.secure, true)
}

func (m *Manager) read(c *gin.Context, name string) (string, bool) {
	token, err := c.Cookie(name)
	if err != nil {
		return "", false
	}
	if strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

func (m *Manager) set(c *gin.Context, name, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(name, value, maxAge, "/", "", m.secure, true)
}
