package main

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"

	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/discover"
	"github.com/xy-planning-network/webbot/page"
)

// GeneratedFile registers every page of an app.
const GeneratedFile = "pages_gen.go"

var registryTmpl = template.Must(template.New(GeneratedFile).Parse(`// Code generated by webbot update; DO NOT EDIT.

package main

import (
	"github.com/xy-planning-network/webbot/discover"
{{- range .Pages }}
	{{ .Package }} "{{ .Import }}"
{{- end }}
)

// registry returns every page found in {{ .Dir }}.
func registry() discover.Registry {
	reg := discover.Registry{}
{{- range .Pages }}
	reg.MustRegister("{{ .Name }}", {{ .Package }}.New)
{{- end }}

	return reg
}
`))

type registryData struct {
	Dir   string
	Pages []registryPage
}

type registryPage struct {
	Name    string
	Package string
	Import  string
}

// update regenerates the page registry of the app in the directory named by the only argument,
// after adding a page when asked to.
func update(args []string, stdout, stderr io.Writer) error {
	fset := newFlagSet("update", stderr)
	newPage := fset.String("page", "", "The name of a page to add")
	if err := fset.Parse(args); err != nil {
		return err
	}

	if fset.NArg() != 1 {
		return fmt.Errorf("%w: update needs exactly one directory", webbot.ErrMissingData)
	}
	dir := fset.Arg(0)

	md, err := page.LoadMetadata(os.DirFS(dir))
	if err != nil {
		return err
	}

	if *newPage != "" {
		if err := addPage(dir, md, *newPage); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "added page %s\n", *newPage)
	}

	if err := generate(dir, md); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "updated %s\n", filepath.Join(dir, GeneratedFile))
	return nil
}

// generate writes the registry of every page directory of the app in dir.
func generate(dir string, md page.Metadata) error {
	names, err := discover.Dirs(os.DirFS(dir), md.PagesDir)
	if err != nil {
		return err
	}

	data := registryData{Dir: md.PagesDir}
	// discover is imported by the registry itself.
	used := map[string]bool{"discover": true}
	for _, name := range names {
		base := packageName(name)
		pkg := base
		for i := 1; used[pkg]; i++ {
			pkg = fmt.Sprintf("%s%d", base, i)
		}
		used[pkg] = true

		data.Pages = append(data.Pages, registryPage{
			Name:    name,
			Package: pkg,
			Import:  path.Join(md.Module, md.PagesDir, name),
		})
	}

	var b bytes.Buffer
	if err := registryTmpl.Execute(&b, data); err != nil {
		return err
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return fmt.Errorf("formatting %s: %w", GeneratedFile, err)
	}

	return os.WriteFile(filepath.Join(dir, GeneratedFile), src, 0o644)
}

// packageName derives a Go package name from the name of a page.
func packageName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || (unicode.IsDigit(r) && b.Len() > 0) || (r == '_' && b.Len() > 0) {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "page"
	}

	return b.String()
}
