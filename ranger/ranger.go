package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/discover"
	"github.com/xy-planning-network/webbot/http/router"
	"github.com/xy-planning-network/webbot/http/session"
	"github.com/xy-planning-network/webbot/logger"
	"github.com/xy-planning-network/webbot/page"
)

// A Ranger manages and exposes all components of a webbot app to one another.
type Ranger struct {
	*router.Router

	assets   fs.FS
	cfg      Config
	ctx      context.Context
	entries  []discover.Entry
	l        logger.Logger
	md       page.Metadata
	sessions session.Storer
	srv      *http.Server
}

// New constructs a Ranger serving the pages of app registered in reg.
//
// Options are applied first; whatever they leave unset is defaulted from the environment.
func New(app fs.FS, reg discover.Registry, opts ...RangerOption) (*Ranger, error) {
	rng := &Ranger{cfg: NewConfig(), ctx: context.Background()}
	for _, opt := range opts {
		if err := opt(rng); err != nil {
			return nil, wrapConfig(err)
		}
	}

	if rng.l == nil {
		rng.l = defaultLogger(rng.cfg)
	}

	md, err := defaultMetadata(app, rng.cfg)
	if err != nil {
		return nil, wrapConfig(err)
	}
	rng.md = md
	rng.l.Debug(fmt.Sprintf("using app %s with %s backend", md.Label, md.Backend), nil)

	if rng.sessions == nil {
		rng.sessions, err = defaultSessionStore(rng.cfg, md.Label)
		if err != nil {
			return nil, wrapConfig(err)
		}
	}

	if rng.sessions == nil {
		rng.l.Warn("no session store configured, set "+SessionAuthKeyEnvVar, nil)
	}

	deps := page.Deps{
		Parser:   defaultParser(rng.cfg, app, md),
		Logger:   rng.l,
		Metadata: md,
		Env:      rng.cfg.Env,
		Assets:   rng.assets,
	}

	rng.entries, err = discover.Pages(app, md.PagesDir, reg, deps)
	if err != nil {
		return nil, err
	}

	rng.Router = defaultRouter(rng.cfg, rng.l, rng.assets, defaultMiddlewares(rng.cfg, rng.l, rng.sessions))
	if path := rng.cfg.MetricsPath; path != "" {
		rng.Handle(router.Route{Path: path, Method: http.MethodGet, Handler: promhttp.Handler()})
	}

	switch md.Backend {
	case "servemux":
		rng.CatchAll(discover.ServeMux(rng.entries))
	default:
		if err := discover.Mux(rng.Router, rng.entries, md.DefaultPage); err != nil {
			return nil, wrapConfig(err)
		}
	}

	if rng.srv == nil {
		rng.srv = defaultServer(rng.ctx, rng.cfg)
	}
	rng.srv.Handler = rng.Router

	return rng, nil
}

func (r *Ranger) EmitConfig() Config               { return r.cfg }
func (r *Ranger) EmitEntries() []discover.Entry    { return append([]discover.Entry(nil), r.entries...) }
func (r *Ranger) EmitEnv() webbot.Environment      { return r.cfg.Env }
func (r *Ranger) EmitLogger() logger.Logger        { return r.l }
func (r *Ranger) EmitMetadata() page.Metadata      { return r.md }
func (r *Ranger) EmitSessionStore() session.Storer { return r.sessions }

// Guide begins the web server.
//
// These, cancelling the context.Context set by WithContext, and (*Ranger).Shutdown, stop Guide:
//
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ctx, cancel := context.WithCancel(r.ctx)
	defer cancel()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	errs := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); err != http.ErrServerClosed {
			errs <- fmt.Errorf("could not listen: %w", err)
		}
		close(errs)
	}()

	select {
	case err, ok := <-errs:
		if ok {
			r.l.Error(err.Error(), nil)
			return err
		}
		return nil
	case <-ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown shutdowns the web server.
func (r *Ranger) Shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	if err := r.srv.Shutdown(shutdownCtx); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
