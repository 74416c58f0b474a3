package template

import (
	"fmt"
	html "html/template"
	"io/fs"
	"path"
)

// Parser parses HTML templates from layered filesystems with the functions provided.
type Parser struct {
	fs  *mergeFS
	fns html.FuncMap
}

// NewParser constructs a *Parser reading templates from fss, earlier filesystems shadowing later ones.
func NewParser(fss []fs.FS, opts ...ParserOptFn) *Parser {
	p := &Parser{fs: newMergeFS(fss...), fns: make(html.FuncMap)}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// AddFn returns a copy of p whose function map includes the named function.
func (p *Parser) AddFn(name string, fn any) *Parser {
	fns := make(html.FuncMap, len(p.fns)+1)
	for k, v := range p.fns {
		fns[k] = v
	}
	fns[name] = fn

	return &Parser{fs: p.fs, fns: fns}
}

// FS returns the merged filesystem p reads templates from.
func (p *Parser) FS() fs.FS { return p.fs }

// Parse parses files found in p's filesystems with those functions provided previously.
// The returned template is named after the first file.
func (p *Parser) Parse(fps ...string) (*html.Template, error) {
	files := make([]string, 0, len(fps))
	for _, fp := range fps {
		if fp != "" {
			files = append(files, fp)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFiles)
	}

	if len(p.fs.layers) == 0 {
		return nil, fmt.Errorf("%w", ErrNoFS)
	}

	return html.New(path.Base(files[0])).Funcs(p.fns).ParseFS(p.fs, files...)
}
