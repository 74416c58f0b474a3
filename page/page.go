package page

import (
	"bytes"
	"embed"
	"fmt"
	html "html/template"
	"io/fs"
	"net/http"

	"github.com/xy-planning-network/webbot"
	"github.com/xy-planning-network/webbot/control"
	"github.com/xy-planning-network/webbot/dispatch"
	"github.com/xy-planning-network/webbot/http/template"
	"github.com/xy-planning-network/webbot/logger"
)

const (
	DocumentTemplate = "webbot/document.tmpl"
	FrameTemplate    = "webbot/frame.tmpl"
	ContentTemplate  = "webbot/content.tmpl"

	mainControl    = "MainControl"
	contentControl = "ContentControl"
	contentSlot    = "pageContents"
)

//go:embed tmpl
var tmplFS embed.FS

// Templates returns the default templates pages render with,
// meant to be layered below an app's own.
func Templates() fs.FS {
	sub, err := fs.Sub(tmplFS, "tmpl")
	if err != nil {
		panic(err)
	}

	return sub
}

// Deps are what every page of an app is built with.
type Deps struct {
	Parser   *template.Parser
	Logger   logger.Logger
	Metadata Metadata
	Env      webbot.Environment

	// Assets holds the bundled resource files pages link to.
	Assets fs.FS
}

// A Page renders the full document of one URL-routed screen:
// its frame, the mainControl, filled with its contentControl.
type Page struct {
	node *dispatch.Node
	doc  *html.Template
	md   Metadata
}

type documentData struct {
	Title         string
	ResourceFiles []string
	Main          html.HTML
	Scripts       html.HTML
}

// Title returns the title of the document.
func (p *Page) Title() string {
	return fmt.Sprintf("%s - %s - %s", p.md.Label, p.md.Description, p.node.String())
}

// RenderResponse renders the document of the page.
func (p *Page) RenderResponse(r *dispatch.Request) (string, error) {
	n, ok := p.node.Child(dispatch.BaseName(mainControl))
	if !ok {
		return "", fmt.Errorf("%w: %s has no %s", webbot.ErrNotExist, p.node.Accessor(), mainControl)
	}

	main, ok := n.Handler().(*control.Control)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a control", webbot.ErrUnexpected, n.Accessor())
	}

	if r.Response.Scripts == nil {
		r.Response.Scripts = dispatch.NewScripts()
	}
	r.Response.Scripts.Add(p.node.InitScripts()...)

	// The document is always rendered as a page load.
	m, err := main.Instance("", r, nil, http.MethodGet).Render(r)
	if err != nil {
		return "", err
	}

	doc, err := p.doc.Clone()
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	err = doc.Execute(&b, documentData{
		Title:         p.Title(),
		ResourceFiles: p.node.Root().ResourceFiles(),
		Main:          m,
		Scripts:       r.Response.Scripts.HTML(),
	})
	if err != nil {
		return "", fmt.Errorf("executing %s: %w", p.doc.Name(), err)
	}

	return b.String(), nil
}

// frame is the View of a mainControl, placing its sibling contentControl in the pageContents slot.
type frame struct {
	*control.Template
	c  *control.Control
	md Metadata
}

func (f *frame) Bind(c *control.Control) { f.c = c }

func (f *frame) InitUI(ui *control.UI, r *dispatch.Request) error {
	content, ok := f.c.Sibling(contentControl)
	if !ok {
		return fmt.Errorf("%w: no %s beside %s", webbot.ErrNotExist, contentControl, f.c.Node().Accessor())
	}

	ui.ReplaceWith(contentSlot, content)
	return nil
}

func (f *frame) SetUIData(ui *control.UI, r *dispatch.Request) error {
	ui.Data = f.md
	return nil
}

// Frame returns the Blueprint of a mainControl rendering files,
// which fill the pageContents slot with the page's contentControl.
func Frame(deps Deps, files ...string) dispatch.Blueprint {
	if len(files) == 0 {
		files = []string{FrameTemplate}
	}

	return control.New(dispatch.Blueprint{Name: mainControl}, func(n *dispatch.Node) (control.View, error) {
		tmpl, err := control.NewTemplate(deps.Parser, files...)
		if err != nil {
			return nil, err
		}

		return &frame{Template: tmpl, md: deps.Metadata}, nil
	})
}

// Content returns the Blueprint of a contentControl rendering files.
func Content(deps Deps, files []string, opts ...control.Opt) dispatch.Blueprint {
	if len(files) == 0 {
		files = []string{ContentTemplate}
	}

	return control.TemplateBlueprint(dispatch.Blueprint{Name: contentControl}, deps.Parser, files, opts...)
}

// Blueprint returns the Blueprint of the page named name, showing content.
// content is renamed contentControl; when it has no Build, the default content template renders.
func Blueprint(name string, content dispatch.Blueprint, deps Deps, opts ...Opt) (dispatch.Blueprint, error) {
	if deps.Parser == nil {
		return dispatch.Blueprint{}, fmt.Errorf("%w: page %s has no template parser", webbot.ErrBadConfig, name)
	}

	cfg := config{document: DocumentTemplate}
	for _, opt := range opts {
		opt(&cfg)
	}

	if content.Build == nil {
		content = Content(deps, nil)
	}
	content.Name = contentControl

	main := Frame(deps)
	if cfg.frame != nil {
		main = *cfg.frame
	}
	main.Name = mainControl

	parser := deps.Parser.AddFn(template.Resources(deps.Env, deps.Assets))

	return dispatch.Blueprint{
		Name:          name,
		GrabFields:    cfg.grabFields,
		SharedFields:  cfg.sharedFields,
		SharedForms:   cfg.sharedForms,
		ResourceFiles: cfg.resourceFiles,
		Authorizer:    cfg.authorizer,
		Children:      []dispatch.Blueprint{main, content},
		Build: func(n *dispatch.Node) (dispatch.Handler, error) {
			doc, err := parser.Parse(cfg.document)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", cfg.document, err)
			}

			return &Page{node: n, doc: doc, md: deps.Metadata}, nil
		},
	}, nil
}

// New builds the tree of the page named name, showing content.
func New(name string, content dispatch.Blueprint, deps Deps, opts ...Opt) (*dispatch.Tree, error) {
	bp, err := Blueprint(name, content, deps, opts...)
	if err != nil {
		return nil, err
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	buildOpts := []dispatch.BuildOpt{dispatch.WithCatalog(cfg.catalog...)}
	if deps.Logger != nil {
		buildOpts = append(buildOpts, dispatch.WithLogger(deps.Logger))
	}

	return dispatch.Build(bp, buildOpts...)
}
