package template

import (
	"errors"
	"fmt"
	html "html/template"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/xy-planning-network/webbot"
)

const (
	assetsBase = "static"
	cssTag     = `<link rel="stylesheet" href="%s">`
	jsTag      = `<script src="%s" type="text/javascript"></script>`
)

// Env encloses some string representing an environment.
// It returns "env" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning the enclosed value when called.
func Env(e webbot.Environment) (string, func() string) {
	return "env", func() string { return e.String() }
}

// Nonce returns "nonce" as the name of the function for convenient passing to a template.FuncMap
// and returns a function generating a uuid.
func Nonce() (string, func() string) {
	return "nonce", func() string { return uuid.NewString() }
}

// RootURL encloses the *url.URL representing the base URL of the web app.
// It returns "rootURL" as the name of the function for convenient passing to a template.FuncMap
// and returns a function returning its *url.URL.String().
// If u is nil, that function will always return an empty string.
func RootURL(u *url.URL) (string, func() string) {
	if u == nil {
		return "rootURL", func() string { return "" }
	}

	s := u.String()
	return "rootURL", func() string { return s }
}

// Resources encloses the environment and filesystem so when called executing a template,
// emits a tag loading each resource file: a stylesheet link for .css, a script for .js.
// It returns "resources" as the name of the function for convenient passing to a template.FuncMap.
//
// Outside of development, a file bundled with a content hash
// (i.e., static/comments-3f9a.js for comments.js) is preferred over the file itself.
func Resources(env webbot.Environment, filesys fs.FS) (string, func(files []string) html.HTML) {
	return "resources", func(files []string) html.HTML {
		var b strings.Builder
		for _, f := range files {
			tmpl := jsTag
			switch path.Ext(f) {
			case ".css":
				tmpl = cssTag
			case ".js":
			default:
				continue
			}

			b.WriteString(fmt.Sprintf(tmpl, resourceURI(env, filesys, f)))
			b.WriteString("\n")
		}

		return html.HTML(b.String())
	}
}

func resourceURI(env webbot.Environment, filesys fs.FS, file string) string {
	if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") || strings.HasPrefix(file, "/") {
		return file
	}

	plain := fmt.Sprintf("/%s/%s", assetsBase, file)
	if env.IsDevelopment() || filesys == nil {
		return plain
	}

	ext := path.Ext(file)
	glob := fmt.Sprintf("%s/%s-*%s", assetsBase, strings.TrimSuffix(file, ext), ext)
	matches, err := fs.Glob(filesys, glob)
	if errors.Is(err, path.ErrBadPattern) || len(matches) == 0 {
		return plain
	}

	return "/" + matches[0]
}
