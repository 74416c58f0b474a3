package ranger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/http/middleware"
	"github.com/xy-planning-network/webbot/http/router"
	"github.com/xy-planning-network/webbot/http/session"
	"github.com/xy-planning-network/webbot/http/template"
	"github.com/xy-planning-network/webbot/logger"
	"github.com/xy-planning-network/webbot/page"
)

// defaultLogger constructs a [logger.Logger] configured for use in the application.
// When SENTRY_DSN is set, errors are shipped to Sentry.
func defaultLogger(cfg Config) logger.Logger {
	l := logger.New(logger.WithEnv(cfg.Env.String()), logger.WithLevel(cfg.LogLevel))
	l.Debug("setting up app logger", nil)

	return l
}

// defaultMetadata reads the manifest of app,
// falling back on the APP_TITLE and APP_DESCRIPTION env vars when it has none.
func defaultMetadata(app fs.FS, cfg Config) (page.Metadata, error) {
	md, err := page.LoadMetadata(app)
	if errors.Is(err, webbot.ErrNotExist) {
		md = page.Metadata{
			Label:       webbot.EnvVarOrString(AppTitleEnvVar, ""),
			Description: webbot.EnvVarOrString(AppDescEnvVar, ""),
		}
		err = md.Valid()
	}

	if err != nil {
		return page.Metadata{}, err
	}

	md = cfg.metadata(md)
	return md, md.Valid()
}

// defaultParser constructs a *template.Parser reading templates out of app, then out of package page.
//
// defaultParser makes available these functions in an HTML template:
//
//   - "env"
//   - "isDevelopment"
//   - "isProduction"
//   - "metadata"
//   - "nonce"
//   - "rootURL"
func defaultParser(cfg Config, app fs.FS, md page.Metadata) *template.Parser {
	return template.NewParser(
		[]fs.FS{app, page.Templates()},
		template.WithFn(template.Env(cfg.Env)),
		template.WithFn("isDevelopment", cfg.Env.IsDevelopment),
		template.WithFn("isProduction", cfg.Env.IsProduction),
		template.WithFn("metadata", func() page.Metadata { return md }),
		template.WithFn(template.Nonce()),
		template.WithFn(template.RootURL(cfg.BaseURL)),
	)
}

// defaultMiddlewares lists the middlewares every request passes through, in order.
func defaultMiddlewares(cfg Config, l logger.Logger, store session.Storer) []middleware.Adapter {
	return []middleware.Adapter{
		middleware.ReportPanic(cfg.Env),
		middleware.Metrics(),
		middleware.RateLimit(middleware.NewVisitors()),
		middleware.ForceHTTPS(cfg.Env, cfg.MetricsPath),
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.CORS(cfg.CORSOrigin),
		middleware.InjectSession(store),
	}
}

// defaultRouter constructs a [*router.Router] to be used by the web server.
// Requests for HTML nothing answers are redirected to the root.
func defaultRouter(cfg Config, l logger.Logger, assets fs.FS, mws []middleware.Adapter) *router.Router {
	r := router.New(cfg.Env, middleware.LogRequest(l), assets)
	r.OnEveryRequest(mws...)
	r.HandleNotFound(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
		if strings.Contains(rx.Header.Get("Accept"), "text/html") && rx.URL.Path != "/" {
			http.Redirect(wx, rx, "/", http.StatusFound)
			return
		}

		wx.WriteHeader(http.StatusNotFound)
	}))

	return r
}

// defaultSessionStore constructs a session.Storer to be used for storing session data.
//
// defaultSessionStore relies on these env vars:
//   - SESSION_AUTH_KEY
//   - SESSION_ENCRYPTION_KEY
//   - REDIS_URL, backing sessions with Redis instead of cookies when set
//   - REDIS_PASSWORD
//
// Both KEY env vars be valid hex encoded values; cf. [encoding/hex].
// Without SESSION_AUTH_KEY, no sessions are stored and nil returns.
func defaultSessionStore(cfg Config, appName string) (session.Storer, error) {
	if cfg.SessionAuthKey == "" {
		return nil, nil
	}

	appName = strings.ToLower(appName)
	appName = regexp.MustCompile(`[,':]`).ReplaceAllString(appName, "")
	appName = regexp.MustCompile(`\s`).ReplaceAllString(appName, "-")

	scfg := session.Config{
		AuthKey:     cfg.SessionAuthKey,
		EncryptKey:  cfg.SessionEncryptKey,
		Env:         cfg.Env,
		SessionName: "webbot-" + appName,
	}

	args := []session.ServiceOpt{session.WithMaxAge(3600 * 24 * 7)}
	if cfg.RedisURL != "" {
		args = append(args, session.WithRedis(cfg.RedisURL, cfg.RedisPassword))
	}

	store, err := session.NewStoreService(scfg, args...)
	if err != nil {
		return nil, err
	}

	return store, nil
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, cfg Config) *http.Server {
	port := cfg.Port
	if port == "" {
		port = DefaultPort
	}

	if port[0] != ':' {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}

func wrapConfig(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", webbot.ErrBadConfig, err)
}
