/*
Package ranger initializes and manages a webbot app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New]
from the filesystem of the app and the [discover.Registry] of its pages.
[New] reads the app's manifest (webbot.yaml), builds every page found in its pages directory
and mounts them on a router behind the default middlewares.

[*Ranger.Guide] begins a webbot app's web server.
By default, [*Ranger.Guide] listens on [DefaultPort] (:3000).
Stop that web server with [*Ranger.Shutdown],
cancel the context.Context given to [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

A developer configures a webbot app through its manifest, environment variables
and [RangerOption]s.
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - APP_DESCRIPTION: a short description of the application, when it has no manifest
  - APP_TITLE: a short title for the application, when it has no manifest
  - BACKEND: the router pages are mounted on, mux or servemux; overrides the manifest
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CORS_ORIGIN: the origin allowed to make cross-origin requests
  - DEFAULT_PAGE: the page / leads to; overrides the manifest; default: Home
  - ENVIRONMENT: the environment the application is running in; cf. [webbot.Environment]
  - HOST: the host the application is running on; default: localhost
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - METRICS_PATH: the path Prometheus scrapes metrics from; default: /metrics
  - PAGES_DIR: the directory holding one directory per page; overrides the manifest; default: pages
  - PORT: the port the application should listen on; default: :3000
  - REDIS_URL: the address of a Redis server storing sessions instead of cookies
  - REDIS_PASSWORD: the password for authenticating to REDIS_URL
  - SENTRY_DSN: the DSN errors are reported to
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
*/
package ranger
