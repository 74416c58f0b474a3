package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/dispatch"
	"github.com/xy-planning-network/webbot/logger"
	"github.com/xy-planning-network/webbot/page"
)

var ErrDuplicate = errors.New("duplicate")

// A Factory builds the tree of one page.
type Factory func(deps page.Deps) (*dispatch.Tree, error)

// A Registry maps the name of each page to the Factory building it.
type Registry map[string]Factory

// Register adds f for the page named name.
func (reg Registry) Register(name string, f Factory) error {
	if name == "" || f == nil {
		return fmt.Errorf("%w: page %q needs a name and factory", webbot.ErrMissingData, name)
	}

	if _, ok := reg[name]; ok {
		return fmt.Errorf("%w: page %s", ErrDuplicate, name)
	}

	reg[name] = f
	return nil
}

// MustRegister is like Register but panics on error.
func (reg Registry) MustRegister(name string, f Factory) {
	if err := reg.Register(name, f); err != nil {
		panic(err)
	}
}

// Names returns the names of the registered pages, sorted.
func (reg Registry) Names() []string {
	names := make([]string, 0, len(reg))
	for name := range reg {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// An Entry is a page found and built.
type Entry struct {
	Name string
	Path string
	Tree *dispatch.Tree
}

// Dirs lists the page directories below dir in fsys, sorted.
// Files and directories whose name starts with "." or "_" are skipped.
func Dirs(fsys fs.FS, dir string) ([]string, error) {
	des, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: pages directory %s", webbot.ErrNotExist, dir)
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, de := range des {
		name := de.Name()
		if !de.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}

		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// Pages builds the page of every directory below dir in fsys, in lexical order.
// A directory with no Factory in reg is an error wrapping webbot.ErrNotExist.
func Pages(fsys fs.FS, dir string, reg Registry, deps page.Deps) ([]Entry, error) {
	names, err := Dirs(fsys, dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		f, ok := reg[name]
		if !ok {
			return nil, fmt.Errorf("%w: no page registered for %s", webbot.ErrNotExist, path.Join(dir, name))
		}

		tree, err := f(deps)
		if err != nil {
			return nil, fmt.Errorf("building page %s: %w", name, err)
		}

		if deps.Logger != nil {
			deps.Logger.Debug("discovered page "+name, &logger.LogContext{Data: map[string]any{
				"nodes": len(tree.Root().AllNodes()),
			}})
		}

		entries = append(entries, Entry{Name: name, Path: "/" + name, Tree: tree})
	}

	return entries, nil
}
