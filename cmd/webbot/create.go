package main

import (
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/gorilla/securecookie"
	"github.com/namsral/flag"
	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/page"
)

const envPrefix = "WEBBOT"

// templates holds dotfiles too, such as create/.env.tmpl.
//
//go:embed all:templates
var templates embed.FS

// scaffold is what the templates of an app are executed with.
type scaffold struct {
	page.Metadata

	// Page is set when scaffolding a single page.
	Page string

	// Package is the Go package name of Page.
	Package string

	// AuthKey and EncryptKey are hex encoded session keys.
	AuthKey    string
	EncryptKey string
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fset := flag.NewFlagSetWithEnvPrefix(name, envPrefix, flag.ContinueOnError)
	fset.SetOutput(stderr)
	return fset
}

// create writes a new app into the directory named by the only argument.
func create(args []string, stdout, stderr io.Writer, ask prompter) error {
	fset := newFlagSet("create", stderr)
	label := fset.String("label", "", "A short title for the app")
	desc := fset.String("description", "", "A short description of the app")
	backend := fset.String("backend", "mux", "The router pages are mounted on: mux or servemux")
	module := fset.String("module", "", "The Go module path of the app (default: example.com/<dir>)")
	if err := fset.Parse(args); err != nil {
		return err
	}

	if fset.NArg() != 1 {
		return fmt.Errorf("%w: create needs exactly one directory", webbot.ErrMissingData)
	}
	dir := fset.Arg(0)

	if err := emptyDir(dir); err != nil {
		return err
	}

	md := page.Metadata{
		Label:       *label,
		Description: *desc,
		Backend:     *backend,
		Module:      *module,
	}

	if md.Module == "" {
		md.Module = "example.com/" + strings.ToLower(filepath.Base(filepath.Clean(dir)))
	}

	var err error
	if md.Label == "" {
		if md.Label, err = ask("What is the app called?", filepath.Base(dir)); err != nil {
			return err
		}
	}

	if md.Description == "" {
		if md.Description, err = ask("What does the app do?", ""); err != nil {
			return err
		}
	}

	md = md.Defaults()
	if err := md.Valid(); err != nil {
		return err
	}

	data := scaffold{
		Metadata:   md,
		AuthKey:    hex.EncodeToString(securecookie.GenerateRandomKey(32)),
		EncryptKey: hex.EncodeToString(securecookie.GenerateRandomKey(32)),
	}

	if err := writeTree(dir, "templates/create", data); err != nil {
		return err
	}

	manifest, err := md.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, page.ManifestFile), manifest, 0o644); err != nil {
		return err
	}

	if err := addPage(dir, md, md.DefaultPage); err != nil {
		return err
	}

	if err := generate(dir, md); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "created %s in %s, run go mod tidy there to fetch its dependencies\n", md.Label, dir)
	return nil
}

// emptyDir ensures dir exists and holds nothing.
func emptyDir(dir string) error {
	des, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, 0o755)
	}

	if err != nil {
		return err
	}

	if len(des) > 0 {
		return fmt.Errorf("%w: %s is not empty", webbot.ErrNotValid, dir)
	}

	return nil
}

// addPage writes a new page named name into the pages directory of the app in dir.
func addPage(dir string, md page.Metadata, name string) error {
	if name == "" || strings.ContainsAny(name, "-/ .") {
		return fmt.Errorf("%w: page name %q", webbot.ErrNotValid, name)
	}

	pageDir := filepath.Join(dir, md.PagesDir, name)
	if _, err := os.Stat(pageDir); err == nil {
		return fmt.Errorf("%w: page %s already exists", webbot.ErrNotValid, name)
	}

	return writeTree(pageDir, "templates/page", scaffold{
		Metadata: md,
		Page:     name,
		Package:  packageName(name),
	})
}

// writeTree executes every template below root into dir, dropping the .tmpl extension.
func writeTree(dir, root string, data scaffold) error {
	return fs.WalkDir(templates, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
		target := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(rel, ".tmpl")))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		tmpl, err := template.New(path.Base(p)).Delims("[[", "]]").ParseFS(templates, p)
		if err != nil {
			return err
		}

		f, err := os.Create(target)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("executing %s: %w", p, err)
		}

		return nil
	})
}
