package ranger

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/xy-planning-network/webbot/http/session"
	"github.com/xy-planning-network/webbot/logger"
)

// A RangerOption configures a *Ranger under construction.
// Options are applied before any default is, so every one replaces a default.
type RangerOption func(rng *Ranger) error

// WithAssets serves the bundled resource files of the app out of assets.
func WithAssets(assets fs.FS) RangerOption {
	return func(rng *Ranger) error {
		rng.assets = assets
		return nil
	}
}

// WithConfig replaces the Config read from the environment.
func WithConfig(cfg Config) RangerOption {
	return func(rng *Ranger) error {
		if err := cfg.Env.Valid(); err != nil {
			return fmt.Errorf("environment %q: %w", cfg.Env, err)
		}

		rng.cfg = cfg
		return nil
	}
}

// WithContext exposes the provided context.Context to the webbot app.
// Cancelling ctx stops Guide.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) error {
		rng.ctx = ctx
		return nil
	}
}

// WithLogger exposes the provided logger.Logger to the webbot app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithSessionStore exposes the session.Storer to the webbot app.
func WithSessionStore(store session.Storer) RangerOption {
	return func(rng *Ranger) error {
		rng.sessions = store
		return nil
	}
}

// WithServer runs the webbot app on s.
// The handler of s is replaced by the app's router.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) error {
		rng.srv = s
		return nil
	}
}
