package control

import (
	"net/http"
	"time"

	"github.com/xy-planning-network/webbot/dispatch"
)

// An Opt configures a Control when it is built.
type Opt func(*Control)

// OnGet sets the Processor for GET requests. GET requests are valid unless p decides otherwise.
func OnGet(p Processor) Opt { return on(http.MethodGet, p) }

// OnPost sets the Processor for POST requests.
func OnPost(p Processor) Opt { return on(http.MethodPost, p) }

// OnPut sets the Processor for PUT requests.
func OnPut(p Processor) Opt { return on(http.MethodPut, p) }

// OnDelete sets the Processor for DELETE requests.
func OnDelete(p Processor) Opt { return on(http.MethodDelete, p) }

func on(method string, p Processor) Opt {
	return func(c *Control) {
		c.processors[method] = p
	}
}

// WithValid sets the predicate guarding POST, PUT and DELETE processors not guarding themselves.
func WithValid(valid func(ui *UI, r *dispatch.Request) bool) Opt {
	return func(c *Control) {
		c.valid = valid
	}
}

// WithAutoLoad sets how the Control renders when embedded in another.
func WithAutoLoad(al AutoLoad) Opt {
	return func(c *Control) {
		c.autoLoad = al
	}
}

// WithAutoReload has the client refresh the Control every interval.
// A silent reload does not show the loading placeholder.
func WithAutoReload(interval time.Duration, silent bool) Opt {
	return func(c *Control) {
		c.autoReload = interval
		c.silentReload = silent
	}
}

// WithLoadingText sets the text of the loading placeholder.
func WithLoadingText(text string) Opt {
	return func(c *Control) {
		c.loadingText = text
	}
}
