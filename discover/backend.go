package discover

import (
	"fmt"
	"net/http"

	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/http/router"
)

// DefaultPage is the page the root URL leads to when none is configured.
const DefaultPage = "Home"

// Mux routes every method of /Name/ to the tree of each entry on r,
// and redirects / to the page named defaultPage.
func Mux(r *router.Router, entries []Entry, defaultPage string) error {
	if defaultPage == "" {
		defaultPage = DefaultPage
	}

	var found bool
	routes := make([]router.Route, 0, len(entries))
	for _, e := range entries {
		found = found || e.Name == defaultPage
		routes = append(routes, router.Route{Path: e.Path + "/", Handler: e.Tree})
	}

	if !found {
		return fmt.Errorf("%w: default page %s", webbot.ErrNotExist, defaultPage)
	}

	r.HandleRoutes(routes)
	r.Redirect("/", "/"+defaultPage+"/")
	return nil
}

// ServeMux routes /Name/ to the tree of each entry, and / to the first.
func ServeMux(entries []Entry) *http.ServeMux {
	mux := http.NewServeMux()
	for _, e := range entries {
		mux.Handle(e.Path+"/", e.Tree)
	}

	if len(entries) > 0 {
		mux.Handle("/{$}", entries[0].Tree)
	}

	return mux
}
