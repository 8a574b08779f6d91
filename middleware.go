package commentator

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/public/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(a.accessGate)
	e.Use(cacheControlMiddleware)
}

// gateExempt reports whether a path is served without credentials: static
// assets and the crawler surface, mirroring the beta gate's allowlist.
func gateExempt(path string) bool {
	return strings.HasPrefix(path, "/public/") ||
		path == "/favicon.svg" ||
		path == "/robots.txt" ||
		path == "/sitemap.xml" ||
		path == "/feed.xml"
}

// accessGate enforces HTTP Basic credentials on every non-asset route. With
// no credentials configured the gate fails closed: everything is denied
// rather than the site going public by accident.
func (a *App) accessGate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if gateExempt(c.Request().URL.Path) {
			return next(c)
		}

		user, pass := a.Config.GateUser, a.Config.GatePass
		if user == "" || pass == "" {
			return gateChallenge(c)
		}

		u, p, ok := c.Request().BasicAuth()
		if !ok {
			return gateChallenge(c)
		}

		userOK := subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(p), []byte(pass)) == 1
		if userOK && passOK {
			return next(c)
		}
		return gateChallenge(c)
	}
}

func gateChallenge(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="Protected", charset="UTF-8"`)
	return c.String(http.StatusUnauthorized, "Authentication required")
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			// Pages are rebuilt from a fresh store snapshot per request and
			// everything sits behind the gate, so nothing else is cacheable.
			c.Response().Header().Set("Cache-Control", "no-store")
		}
		return next(c)
	}
}

// httpErrorHandler renders styled not-found/server-error pages for page
// routes and a JSON {error} body for the API surface.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	he, ok := err.(*echo.HTTPError)
	if ok {
		code = he.Code
	}

	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		msg := http.StatusText(code)
		if ok {
			if s, isStr := he.Message.(string); isStr {
				msg = s
			}
		}
		if code >= 500 {
			c.Logger().Errorf("api error: %v", err)
		}
		_ = c.JSON(code, echo.Map{"error": msg})
		return
	}

	if code == http.StatusNotFound {
		_ = a.renderStatus(c, http.StatusNotFound, "404.html", "Not found", nil)
		return
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = a.renderStatus(c, code, "500.html", "Something went wrong", nil)
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
