package ranger_test

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/discover"
	"github.com/xy-planning-network/webbot/dispatch"
	"github.com/xy-planning-network/webbot/logger"
	"github.com/xy-planning-network/webbot/page"
	"github.com/xy-planning-network/webbot/ranger"
)

func newApp(manifest string) fstest.MapFS {
	return fstest.MapFS{
		page.ManifestFile:          {Data: []byte(manifest)},
		"pages/Home/content.tmpl":  {Data: []byte(`<p>home {{ env }}</p>`)},
		"pages/About/content.tmpl": {Data: []byte(`<p>about</p>`)},
		"static/app.css":           {Data: []byte("p {}")},
	}
}

func newRegistry() discover.Registry {
	reg := discover.Registry{}
	for _, name := range []string{"Home", "About"} {
		name := name
		reg.MustRegister(name, func(deps page.Deps) (*dispatch.Tree, error) {
			return page.New(name, page.Content(deps, []string{"pages/" + name + "/content.tmpl"}), deps)
		})
	}

	return reg
}

func testConfig() ranger.Config {
	return ranger.Config{Env: webbot.Testing, Port: ":0", LogLevel: logger.LogLevelDebug, MetricsPath: ranger.DefaultMetricsPath}
}

func newLogger(b *bytes.Buffer) logger.Logger {
	return logger.NewBotLogger(logger.WithLogger(log.New(b, "", 0)), logger.WithLevel(logger.LogLevelDebug))
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "https://example.com"+path, nil))
	return w
}

func TestNewMux(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	app := newApp("label: Demo\ndescription: A demo\n")

	// Act
	rng, err := ranger.New(app, newRegistry(),
		ranger.WithConfig(testConfig()),
		ranger.WithLogger(newLogger(b)),
		ranger.WithAssets(app),
	)

	// Assert
	require.Nil(t, err)
	require.Len(t, rng.EmitEntries(), 2)
	require.Equal(t, "mux", rng.EmitMetadata().Backend)
	require.Nil(t, rng.EmitSessionStore())
	require.Contains(t, b.String(), "no session store configured")

	w := serve(rng, "/")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/Home/", w.Header().Get("Location"))

	w = serve(rng, "/Home/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<p>home TESTING</p>")
	require.NotZero(t, w.Header().Get("X-Request-Id"))
	require.Contains(t, b.String(), "GET /Home/")

	w = serve(rng, "/static/app.css")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(rng, ranger.DefaultMetricsPath)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "webbot_dispatch_requests_total")
	require.Contains(t, w.Body.String(), "webbot_http_requests_total")

	w = serve(rng, "/missing")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewServeMux(t *testing.T) {
	// Arrange
	cfg := testConfig()
	cfg.Backend = "servemux"
	cfg.SessionAuthKey = "ABCD"

	// Act
	rng, err := ranger.New(newApp("label: Demo\ndescription: A demo\n"), newRegistry(),
		ranger.WithConfig(cfg),
		ranger.WithLogger(newLogger(new(bytes.Buffer))),
	)

	// Assert
	require.Nil(t, err)
	require.Equal(t, "servemux", rng.EmitMetadata().Backend)
	require.NotNil(t, rng.EmitSessionStore())

	w := serve(rng, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<title>Demo - A demo - About</title>")

	w = serve(rng, "/Home/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "<title>Demo - A demo - Home</title>")
}

func TestNewErrors(t *testing.T) {
	tcs := []struct {
		name     string
		manifest string
		cfg      func(ranger.Config) ranger.Config
		err      error
	}{
		{"bad-env", "label: Demo\n", func(c ranger.Config) ranger.Config { c.Env = "nope"; return c }, webbot.ErrBadConfig},
		{"no-label", "description: x\n", func(c ranger.Config) ranger.Config { return c }, webbot.ErrMissingData},
		{"bad-backend", "label: Demo\n", func(c ranger.Config) ranger.Config { c.Backend = "wsgi"; return c }, webbot.ErrNotValid},
		{"no-default-page", "label: Demo\n", func(c ranger.Config) ranger.Config { c.DefaultPage = "Blog"; return c }, webbot.ErrNotExist},
		{"bad-session-key", "label: Demo\n", func(c ranger.Config) ranger.Config { c.SessionAuthKey = "zz"; return c }, webbot.ErrBadConfig},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := ranger.New(newApp(tc.manifest), newRegistry(),
				ranger.WithConfig(tc.cfg(testConfig())),
				ranger.WithLogger(newLogger(new(bytes.Buffer))),
			)

			// Assert
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestGuide(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	ctx, cancel := context.WithCancel(context.Background())
	rng, err := ranger.New(newApp("label: Demo\n"), newRegistry(),
		ranger.WithConfig(testConfig()),
		ranger.WithLogger(newLogger(b)),
		ranger.WithContext(ctx),
		ranger.WithServer(&http.Server{Addr: "127.0.0.1:0"}),
	)
	require.Nil(t, err)

	done := make(chan error, 1)

	// Act
	go func() { done <- rng.Guide() }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	// Assert
	select {
	case err := <-done:
		require.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Guide did not stop")
	}
	require.True(t, strings.Contains(b.String(), "web server shutdown successfully"))
}

func TestNewConfig(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "STAGING")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PORT", "8080")
	t.Setenv("SERVER_READ_TIMEOUT", "1s")
	t.Setenv("BACKEND", "servemux")

	// Act
	cfg := ranger.NewConfig()

	// Assert
	require.Equal(t, webbot.Staging, cfg.Env)
	require.Equal(t, logger.LogLevelDebug, cfg.LogLevel)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, time.Second, cfg.ReadTimeout)
	require.Equal(t, ranger.DefaultServerWriteTimeout, cfg.WriteTimeout)
	require.Equal(t, "servemux", cfg.Backend)
	require.Equal(t, ranger.DefaultMetricsPath, cfg.MetricsPath)
	require.Equal(t, "http://localhost:3000", cfg.BaseURL.String())
}
