package middleware

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"asset-inventory/internal/logging"
	"asset-inventory/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is the gin context key holding the resolved *models.User.
const CurrentUserKey = "currentUser"

// RedirectParam carries the originally requested path to the login page.
const RedirectParam = "redirectTo"

// SessionResolver maps an encrypted session cookie to its user.
// *session.Store implements it.
type SessionResolver interface {
	Resolve(ctx context.Context, encrypted string) (*models.User, error)
}

// GateConfig describes the paths the gate treats specially.
type GateConfig struct {
	CookieName  string
	LoginPath   string
	LandingPath string
	// PublicPrefixes are reachable without a session, e.g. "/static/".
	PublicPrefixes []string
}

// DefaultGateConfig mirrors the routes registered by router.SetupRouter.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		CookieName:     "session",
		LoginPath:      "/login",
		LandingPath:    "/",
		PublicPrefixes: []string{"/static/", "/api/auth/"},
	}
}

// SessionGate resolves the session cookie once per request and decides:
//
//	anonymous     + protected path -> redirect to login with redirectTo
//	authenticated + login path     -> redirect to the landing page
//	anything else                  -> pass through
//
// The resolved user is stored under CurrentUserKey. The gate never writes
// session state.
func SessionGate(resolver SessionResolver, cfg GateConfig, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolveUser(c, resolver, cfg.CookieName, log)
		if user != nil {
			c.Set(CurrentUserKey, user)
		}

		p := c.Request.URL.Path
		isLogin := p == cfg.LoginPath

		switch {
		case user == nil && !isLogin && !cfg.public(p):
			target := url.URL{
				Path:     cfg.LoginPath,
				RawQuery: url.Values{RedirectParam: {p}}.Encode(),
			}
			c.Redirect(http.StatusFound, target.String())
			c.Abort()
		case user != nil && isLogin:
			c.Redirect(http.StatusFound, cfg.LandingPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}

func resolveUser(c *gin.Context, resolver SessionResolver, cookieName string, log logging.Logger) *models.User {
	enc, err := c.Cookie(cookieName)
	if err != nil || enc == "" {
		return nil
	}
	user, err := resolver.Resolve(c.Request.Context(), enc)
	if err != nil {
		// storage trouble is treated as "not signed in"
		log.Error(c.Request.Context(), "session lookup failed", "error", err, "path", c.Request.URL.Path)
		return nil
	}
	return user
}

// public reports whether p is on the allow-list: configured prefixes, the
// favicon, and anything whose last segment carries a file extension.
func (cfg GateConfig) public(p string) bool {
	for _, prefix := range cfg.PublicPrefixes {
		if strings.HasPrefix(p, prefix) || p == strings.TrimSuffix(prefix, "/") {
			return true
		}
	}
	if p == "/favicon.ico" {
		return true
	}
	return strings.Contains(path.Base(p), ".")
}

// CurrentUser returns the user resolved by SessionGate, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

