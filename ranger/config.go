package ranger

import (
	"net/url"
	"time"

	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/logger"
	"github.com/xy-planning-network/webbot/page"
)

const (
	// App metadata
	AppDescEnvVar  = "APP_DESCRIPTION"
	AppTitleEnvVar = "APP_TITLE"

	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// CORS defaults
	corsOriginEnvVar = "CORS_ORIGIN"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"
	defaultLogLvl  = logger.LogLevelInfo

	// Metrics defaults
	metricsPathEnvVar  = "METRICS_PATH"
	DefaultMetricsPath = "/metrics"

	// Page defaults
	backendEnvVar     = "BACKEND"
	defaultPageEnvVar = "DEFAULT_PAGE"
	pagesDirEnvVar    = "PAGES_DIR"

	// Redis defaults
	redisURLEnvVar  = "REDIS_URL"
	redisPassEnvVar = "REDIS_PASSWORD"

	// Web server defaults
	DefaultHost               = "localhost"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// A Config gathers everything configuring a webbot app, outside of its manifest.
type Config struct {
	Env         webbot.Environment
	BaseURL     *url.URL
	CORSOrigin  string
	Host        string
	Port        string
	LogLevel    logger.LogLevel
	MetricsPath string

	// Backend, DefaultPage and PagesDir override the app's manifest when set.
	Backend     string
	DefaultPage string
	PagesDir    string

	RedisURL      string
	RedisPassword string

	SessionAuthKey    string
	SessionEncryptKey string

	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewConfig reads a Config from the environment variables documented by the package.
func NewConfig() Config {
	lvl := logger.NewLogLevel(webbot.EnvVarOrString(logLevelEnvVar, "INFO"))
	if lvl == logger.LogLevelUnk {
		lvl = defaultLogLvl
	}

	return Config{
		Env:         webbot.EnvVarOrEnv(environmentEnvVar, webbot.Development),
		BaseURL:     webbot.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL),
		CORSOrigin:  webbot.EnvVarOrString(corsOriginEnvVar, ""),
		Host:        webbot.EnvVarOrString(hostEnvVar, DefaultHost),
		Port:        webbot.EnvVarOrString(portEnvVar, DefaultPort),
		LogLevel:    lvl,
		MetricsPath: webbot.EnvVarOrString(metricsPathEnvVar, DefaultMetricsPath),

		Backend:     webbot.EnvVarOrString(backendEnvVar, ""),
		DefaultPage: webbot.EnvVarOrString(defaultPageEnvVar, ""),
		PagesDir:    webbot.EnvVarOrString(pagesDirEnvVar, ""),

		RedisURL:      webbot.EnvVarOrString(redisURLEnvVar, ""),
		RedisPassword: webbot.EnvVarOrString(redisPassEnvVar, ""),

		SessionAuthKey:    webbot.EnvVarOrString(SessionAuthKeyEnvVar, ""),
		SessionEncryptKey: webbot.EnvVarOrString(SessionEncryptKeyEnvVar, ""),

		IdleTimeout:  webbot.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  webbot.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: webbot.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}

// metadata overrides md with what c sets.
func (c Config) metadata(md page.Metadata) page.Metadata {
	if c.Backend != "" {
		md.Backend = c.Backend
	}

	if c.DefaultPage != "" {
		md.DefaultPage = c.DefaultPage
	}

	if c.PagesDir != "" {
		md.PagesDir = c.PagesDir
	}

	return md.Defaults()
}
