package control

import (
	"fmt"
	html "html/template"
	"sort"
	"text/template/parse"

	"github.com/xy-planning-network/webbot/dispatch"
	"github.com/xy-planning-network/webbot/http/template"
)

// Funcs returns the functions every control template may call.
// slot, control and editable are bound to the UI executing the template;
// until then they render nothing.
func Funcs() html.FuncMap {
	return html.FuncMap{
		"control":     func(string) (html.HTML, error) { return "", nil },
		"editable":    func() bool { return true },
		"fieldErrors": func(string) []string { return nil },
		"sanitize":    Sanitize,
		"slot":        func(string) (html.HTML, error) { return "", nil },
	}
}

// Template is a View loading its UI from a template.
//
// Controls the template references with {{ control "name" }}
// become children of the Control rendering it,
// found in the catalog the tree is built with.
type Template struct {
	Element

	tmpl     *html.Template
	controls []string
}

// NewTemplate parses files with p into a *Template.
func NewTemplate(p *template.Parser, files ...string) (*Template, error) {
	for name, fn := range Funcs() {
		p = p.AddFn(name, fn)
	}

	tmpl, err := p.Parse(files...)
	if err != nil {
		return nil, fmt.Errorf("parsing %v: %w", files, err)
	}

	return &Template{tmpl: tmpl, controls: referencedControls(tmpl)}, nil
}

// TemplateBlueprint returns bp set up to build a *Control rendering files.
func TemplateBlueprint(bp dispatch.Blueprint, p *template.Parser, files []string, opts ...Opt) dispatch.Blueprint {
	return New(bp, func(*dispatch.Node) (View, error) { return NewTemplate(p, files...) }, opts...)
}

// BuildUI constructs a UI executing the template.
func (t *Template) BuildUI(*dispatch.Request) (*UI, error) { return NewUI(t.tmpl, nil), nil }

// Controls lists the names of the controls the template references, in order of appearance.
func (t *Template) Controls() []string { return append([]string(nil), t.controls...) }

// Discover looks up in c every control the template references.
func (t *Template) Discover(c dispatch.Catalog) ([]dispatch.Blueprint, error) {
	bps := make([]dispatch.Blueprint, 0, len(t.controls))
	for _, name := range t.controls {
		bp, ok := c.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s referenced by %s", ErrNoControl, name, t.tmpl.Name())
		}
		bps = append(bps, bp)
	}

	return bps, nil
}

// referencedControls walks every template defined in tmpl
// collecting the constant names passed to control.
func referencedControls(tmpl *html.Template) []string {
	seen := make(map[string]bool)
	var names []string

	var walk func(n parse.Node)
	walk = func(n parse.Node) {
		switch n := n.(type) {
		case *parse.ListNode:
			if n == nil {
				return
			}
			for _, c := range n.Nodes {
				walk(c)
			}
		case *parse.ActionNode:
			walk(n.Pipe)
		case *parse.PipeNode:
			if n == nil {
				return
			}
			for _, cmd := range n.Cmds {
				walk(cmd)
			}
		case *parse.CommandNode:
			if len(n.Args) == 2 {
				id, isIdent := n.Args[0].(*parse.IdentifierNode)
				str, isString := n.Args[1].(*parse.StringNode)
				if isIdent && isString && id.Ident == "control" && !seen[str.Text] {
					seen[str.Text] = true
					names = append(names, str.Text)
				}
			}
			for _, arg := range n.Args {
				walk(arg)
			}
		case *parse.IfNode:
			walk(&n.BranchNode)
		case *parse.RangeNode:
			walk(&n.BranchNode)
		case *parse.WithNode:
			walk(&n.BranchNode)
		case *parse.BranchNode:
			walk(n.Pipe)
			walk(n.List)
			walk(n.ElseList)
		case *parse.TemplateNode:
			walk(n.Pipe)
		}
	}

	if tmpl.Tree != nil {
		walk(tmpl.Tree.Root)
	}

	others := tmpl.Templates()
	sort.Slice(others, func(i, j int) bool { return others[i].Name() < others[j].Name() })
	for _, t := range others {
		if t.Name() != tmpl.Name() && t.Tree != nil {
			walk(t.Tree.Root)
		}
	}

	return names
}
