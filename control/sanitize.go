package control

import (
	html "html/template"

	"github.com/microcosm-cc/bluemonday"
)

var ugc = bluemonday.UGCPolicy()

// Sanitize strips s of markup unsafe to render from user-generated content.
// Templates call it as {{ sanitize .Text }}.
func Sanitize(s string) html.HTML { return html.HTML(ugc.Sanitize(s)) }
