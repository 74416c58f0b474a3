package control_test

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/webbot/control"
	"github.com/xy-planning-network/webbot/dispatch"
	tt "github.com/xy-planning-network/webbot/http/template/templatetest"
)

type recView struct {
	control.Element
	steps *[]string
}

func (v *recView) BuildUI(r *dispatch.Request) (*control.UI, error) {
	*v.steps = append(*v.steps, "build")
	return control.Flow(control.Text("flow")), nil
}

func (v *recView) InitUI(ui *control.UI, r *dispatch.Request) error {
	*v.steps = append(*v.steps, "init")
	return nil
}

func (v *recView) SetUIData(ui *control.UI, r *dispatch.Request) error {
	*v.steps = append(*v.steps, "data")
	return nil
}

func recorder(steps *[]string, name string) control.ProcessorFunc {
	return func(ui *control.UI, r *dispatch.Request) error {
		*steps = append(*steps, name)
		return nil
	}
}

func buildTree(t *testing.T, bp dispatch.Blueprint, opts ...dispatch.BuildOpt) *dispatch.Tree {
	t.Helper()

	tree, err := dispatch.Build(bp, opts...)
	require.NoError(t, err)
	return tree
}

func request(method, path string) *dispatch.Request {
	return dispatch.NewRequest(method, url.Values{dispatch.HandlerField: {path}})
}

func TestControlRenderFlow(t *testing.T) {
	tcs := []struct {
		name     string
		method   string
		valid    bool
		expected []string
	}{
		{"get", http.MethodGet, false, []string{"build", "init", "get", "data"}},
		{"post", http.MethodPost, true, []string{"build", "init", "post", "data"}},
		{"post-invalid", http.MethodPost, false, []string{"build", "init", "data"}},
		{"put", http.MethodPut, true, []string{"build", "init", "put", "data"}},
		{"delete", http.MethodDelete, true, []string{"build", "init", "delete", "data"}},
		{"delete-invalid", http.MethodDelete, false, []string{"build", "init", "data"}},
		{"head", http.MethodHead, true, []string{"build", "init", "data"}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var steps []string
			bp := control.New(
				dispatch.Blueprint{Name: "Home"},
				func(n *dispatch.Node) (control.View, error) { return &recView{steps: &steps}, nil },
				control.OnGet(recorder(&steps, "get")),
				control.OnPost(recorder(&steps, "post")),
				control.OnPut(recorder(&steps, "put")),
				control.OnDelete(recorder(&steps, "delete")),
				control.WithValid(func(ui *control.UI, r *dispatch.Request) bool { return tc.valid }),
			)
			tree := buildTree(t, bp)

			// Act
			resp := tree.HandleRequest(request(tc.method, "home"))

			// Assert
			require.Equal(t, http.StatusOK, resp.Status)
			require.Equal(t, "flow", resp.Content)
			require.Equal(t, tc.expected, steps)
		})
	}
}

func TestControlGuardedProcessor(t *testing.T) {
	// Arrange
	var steps []string
	bp := control.New(
		dispatch.Blueprint{Name: "Home"},
		func(n *dispatch.Node) (control.View, error) { return &recView{steps: &steps}, nil },
		control.OnGet(control.Guard(
			func(ui *control.UI, r *dispatch.Request) bool { return r.Fields.Get("page") != "" },
			recorder(&steps, "get"),
		)),
	)
	tree := buildTree(t, bp)

	// Act
	tree.HandleRequest(request(http.MethodGet, "home"))

	// Assert
	require.Equal(t, []string{"build", "init", "data"}, steps)

	// Arrange
	steps = nil
	r := request(http.MethodGet, "home")
	r.Fields.Set("page", "2")

	// Act
	tree.HandleRequest(r)

	// Assert
	require.Equal(t, []string{"build", "init", "get", "data"}, steps)
}

type procView struct {
	control.Element
	steps *[]string
}

func (v *procView) Processors() map[string]control.Processor {
	return map[string]control.Processor{"post": recorder(v.steps, "own-post")}
}

func TestControlProcessorsView(t *testing.T) {
	// Arrange
	var steps []string
	bp := control.New(
		dispatch.Blueprint{Name: "Home"},
		func(n *dispatch.Node) (control.View, error) { return &procView{steps: &steps}, nil },
	)
	tree := buildTree(t, bp)

	// Act
	tree.HandleRequest(request(http.MethodPost, "home"))

	// Assert
	require.Equal(t, []string{"own-post"}, steps)
}

func TestControlErrors(t *testing.T) {
	boom := errors.New("boom")

	tcs := []struct {
		name string
		opts []control.Opt
		view control.View
	}{
		{"process", []control.Opt{control.OnGet(control.ProcessorFunc(func(*control.UI, *dispatch.Request) error { return boom }))}, control.Element{}},
		{"build", nil, failView{build: boom}},
		{"init", nil, failView{init: boom}},
		{"data", nil, failView{data: boom}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			bp := control.New(
				dispatch.Blueprint{Name: "Home"},
				func(n *dispatch.Node) (control.View, error) { return tc.view, nil },
				tc.opts...,
			)
			tree := buildTree(t, bp)

			// Act
			resp := tree.HandleRequest(request(http.MethodGet, "home"))

			// Assert
			require.Equal(t, http.StatusInternalServerError, resp.Status)
			require.Contains(t, resp.Content, "boom")
		})
	}
}

type failView struct{ build, init, data error }

func (f failView) BuildUI(*dispatch.Request) (*control.UI, error) { return control.Flow(), f.build }
func (f failView) InitUI(*control.UI, *dispatch.Request) error    { return f.init }
func (f failView) SetUIData(*control.UI, *dispatch.Request) error { return f.data }

func TestNewNoView(t *testing.T) {
	// Arrange
	bp := control.New(dispatch.Blueprint{Name: "Home"}, func(n *dispatch.Node) (control.View, error) { return nil, nil })

	// Act
	_, err := dispatch.Build(bp)

	// Assert
	require.ErrorIs(t, err, control.ErrNoView)

	// Act
	_, err = dispatch.Build(control.New(dispatch.Blueprint{Name: "Home"}, nil))

	// Assert
	require.ErrorIs(t, err, control.ErrNoView)
}

type denyEdit struct{}

func (denyEdit) AllowView(*dispatch.Request) bool { return true }
func (denyEdit) AllowEdit(*dispatch.Request) bool { return false }

func TestControlEditability(t *testing.T) {
	// Arrange
	p := tt.NewParser(tt.NewMockFile("home.tmpl", []byte(`{{ if editable }}edit{{ else }}view{{ end }}`)))
	bp := control.TemplateBlueprint(dispatch.Blueprint{Name: "Home"}, p, []string{"home.tmpl"})
	allowed := buildTree(t, bp)
	bp.Authorizer = denyEdit{}
	denied := buildTree(t, bp)

	// Act
	allowedResp := allowed.HandleRequest(request(http.MethodGet, "home"))
	deniedResp := denied.HandleRequest(request(http.MethodGet, "home"))

	// Assert
	require.Equal(t, "edit", allowedResp.Content)
	require.Equal(t, "view", deniedResp.Content)
}

func TestControlAutoReload(t *testing.T) {
	// Arrange
	bp := control.New(
		dispatch.Blueprint{Name: "Home"},
		func(n *dispatch.Node) (control.View, error) { return control.Element{}, nil },
		control.WithAutoReload(5*time.Second, true),
	)
	tree := buildTree(t, bp)
	r := request(http.MethodGet, "home")

	// Act
	resp := tree.HandleRequest(r)

	// Assert
	require.Equal(t, "<script>\nDynamicForm.get('home', true, '', 5000);\n</script>", resp.Content)
	require.Equal(t, []string{"DynamicForm.get('home', true, '', 5000);"}, r.Response.Scripts.All())
}

func TestControlScriptsAttachedOnce(t *testing.T) {
	// Arrange
	p := tt.NewParser(
		tt.NewMockFile("home.tmpl", []byte(`<h1>home</h1>{{ control "comments" }}{{ control "sidebar" }}`)),
		tt.NewMockFile("comments.tmpl", []byte(`<p>comments</p>`)),
		tt.NewMockFile("sidebar.tmpl", []byte(`<p>sidebar</p>`)),
	)
	reload := control.WithAutoReload(time.Second, true)
	catalog := dispatch.WithCatalog(
		control.TemplateBlueprint(dispatch.Blueprint{Name: "Comments"}, p, []string{"comments.tmpl"}, reload),
		control.TemplateBlueprint(dispatch.Blueprint{Name: "Sidebar"}, p, []string{"sidebar.tmpl"}, control.WithAutoLoad(control.AJAX)),
	)
	tree := buildTree(t, control.TemplateBlueprint(dispatch.Blueprint{Name: "Home"}, p, []string{"home.tmpl"}, reload), catalog)

	// Act
	resp := tree.HandleRequest(request(http.MethodGet, "home"))

	// Assert
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t, 1, strings.Count(resp.Content, "<script>"))
	require.True(t, strings.HasSuffix(resp.Content, strings.Join([]string{
		"<script>",
		"DynamicForm.get('home', true, '', 1000);",
		"DynamicForm.get('home-comments', true, '', 1000);",
		"DynamicForm.get('home-sidebar');",
		"</script>",
	}, "\n")))
	require.Contains(t, resp.Content, `<h1>home</h1>`)
	require.Contains(t, resp.Content,
		`<div id="home-comments:Loading" class="WLoading" hidden><span class="WContent">Loading Home Comments...</span></div>`+
			`<section id="home-comments" handler="home-comments"><p>comments</p></section>`)
	require.Contains(t, resp.Content, `<section id="home-sidebar" handler="home-sidebar"></section>`)

	// Act
	child := tree.HandleRequest(request(http.MethodGet, "home-comments"))

	// Assert
	require.Equal(t, "<p>comments</p><script>\nDynamicForm.get('home-comments', true, '', 1000);\n</script>", child.Content)
}

func TestTemplateDiscover(t *testing.T) {
	// Arrange
	p := tt.NewParser(
		tt.NewMockFile("home.tmpl", []byte(
			`{{ define "extra" }}{{ control "Sidebar" }}{{ end }}`+
				`{{ if .Show }}{{ control "comments" }}{{ else }}{{ control "empty" }}{{ end }}`+
				`{{ range .Items }}{{ control "comments" }}{{ end }}{{ template "extra" . }}`,
		)),
	)

	// Act
	tmpl, err := control.NewTemplate(p, "home.tmpl")

	// Assert
	require.NoError(t, err)
	require.Equal(t, []string{"comments", "empty", "Sidebar"}, tmpl.Controls())

	// Act
	_, err = tmpl.Discover(dispatch.NewCatalog(dispatch.Blueprint{Name: "Comments"}))

	// Assert
	require.ErrorIs(t, err, control.ErrNoControl)
	require.ErrorContains(t, err, "empty")
}

func TestTemplateDiscoverBuildsChildren(t *testing.T) {
	// Arrange
	p := tt.NewParser(
		tt.NewMockFile("home.tmpl", []byte(`{{ control "Comments" }}`)),
		tt.NewMockFile("comments.tmpl", []byte(`{{ control "reply" }}`)),
		tt.NewMockFile("reply.tmpl", []byte(`reply`)),
	)
	catalog := dispatch.WithCatalog(
		control.TemplateBlueprint(dispatch.Blueprint{Name: "Comments"}, p, []string{"comments.tmpl"}),
		control.TemplateBlueprint(dispatch.Blueprint{Name: "Reply"}, p, []string{"reply.tmpl"}),
	)

	// Act
	tree := buildTree(t, control.TemplateBlueprint(dispatch.Blueprint{Name: "Home"}, p, []string{"home.tmpl"}), catalog)

	// Assert
	reply, ok := tree.Find("home-comments-reply")
	require.True(t, ok)
	require.IsType(t, &control.Control{}, reply.Handler())

	resp := tree.HandleRequest(request(http.MethodGet, "home-comments-reply"))
	require.Equal(t, "reply", resp.Content)
}

func TestControlContentAutoLoad(t *testing.T) {
	tcs := []struct {
		name     string
		al       control.AutoLoad
		content  string
		expected []string
	}{
		{"inline", control.Inline, "flow", nil},
		{"ajax", control.AJAX, "", []string{"DynamicForm.get('home');"}},
		{"off", control.Off, "", nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var steps []string
			bp := control.New(
				dispatch.Blueprint{Name: "Home"},
				func(n *dispatch.Node) (control.View, error) { return &recView{steps: &steps}, nil },
				control.WithAutoLoad(tc.al),
			)
			tree := buildTree(t, bp)
			c := tree.Root().Handler().(*control.Control)
			r := request(http.MethodGet, "home")
			r.Response.Scripts = dispatch.NewScripts()

			// Act
			content, err := c.Content(r)

			// Assert
			require.NoError(t, err)
			require.Equal(t, tc.content, string(content))
			require.Equal(t, tc.expected, r.Response.Scripts.All())
		})
	}
}

func TestControlInstance(t *testing.T) {
	// Arrange
	var seen []string
	bp := control.New(
		dispatch.Blueprint{Name: "Home"},
		func(n *dispatch.Node) (control.View, error) { return control.Element{}, nil },
		control.OnPost(control.ProcessorFunc(func(ui *control.UI, r *dispatch.Request) error {
			seen = append(seen, r.Method+":"+r.Fields.Get("text")+":"+r.Fields.Get("page"))
			return nil
		})),
	)
	tree := buildTree(t, bp)
	c := tree.Root().Handler().(*control.Control)
	r := dispatch.NewRequest(http.MethodGet, url.Values{"page": {"1"}})

	// Act
	inst := c.Instance("home-1", r, url.Values{"text": {"hi"}}, http.MethodPost)
	out, err := inst.Render(r)

	// Assert
	require.NoError(t, err)
	require.Equal(t, "home", c.ID())
	require.Equal(t, "home-1", inst.ID())
	require.Equal(t, []string{"POST:hi:1"}, seen)
	require.Contains(t, string(out), `<section id="home-1" handler="home">`)
	require.Equal(t, url.Values{"page": {"1"}}, r.Fields)
	require.Equal(t, http.MethodGet, r.Method)
}

type frame struct {
	*control.Template
	c *control.Control
}

func (f *frame) Bind(c *control.Control) { f.c = c }

func (f *frame) InitUI(ui *control.UI, r *dispatch.Request) error {
	content, ok := f.c.Sibling("ContentControl")
	if !ok {
		return errors.New("no content")
	}

	ui.ReplaceWith("pageContents", content)
	return nil
}

func TestControlSlotsAndSiblings(t *testing.T) {
	// Arrange
	p := tt.NewParser(
		tt.NewMockFile("frame.tmpl", []byte(`<main>{{ slot "pageContents" }}{{ slot "unset" }}</main>`)),
		tt.NewMockFile("content.tmpl", []byte(`<p>{{ sanitize "<b>hi</b><script>x()</script>" }}</p>`)),
	)
	bp := dispatch.Blueprint{
		Name: "Home",
		Build: func(n *dispatch.Node) (dispatch.Handler, error) {
			return dispatch.HandlerFunc(func(r *dispatch.Request) (string, error) { return "", nil }), nil
		},
		Children: []dispatch.Blueprint{
			control.New(dispatch.Blueprint{Name: "MainControl"}, func(n *dispatch.Node) (control.View, error) {
				tmpl, err := control.NewTemplate(p, "frame.tmpl")
				return &frame{Template: tmpl}, err
			}),
			control.TemplateBlueprint(dispatch.Blueprint{Name: "ContentControl"}, p, []string{"content.tmpl"}),
		},
	}
	tree := buildTree(t, bp)

	// Act
	resp := tree.HandleRequest(request(http.MethodGet, "home-mainControl"))

	// Assert
	require.Equal(t, http.StatusOK, resp.Status)
	require.Equal(t,
		`<main><div id="home-contentControl:Loading" class="WLoading" hidden><span class="WContent">Loading Home ContentControl...</span></div>`+
			`<section id="home-contentControl" handler="home-contentControl"><p><b>hi</b></p></section></main>`,
		resp.Content,
	)
}

type commentForm struct {
	Text string `schema:"text" validate:"required,max=10"`
}

type formView struct {
	control.Element
	saved *[]string
}

func (fv *formView) Processors() map[string]control.Processor {
	return map[string]control.Processor{
		http.MethodPost: control.Form(func(ui *control.UI, r *dispatch.Request, f *commentForm) error {
			*fv.saved = append(*fv.saved, f.Text)
			return nil
		}),
	}
}

func TestControlForm(t *testing.T) {
	tcs := []struct {
		name   string
		text   string
		saved  []string
		errors map[string][]string
	}{
		{"valid", "hi", []string{"hi"}, nil},
		{"missing", "", nil, map[string][]string{"text": {"required; string"}}},
		{"too-long", "hello there world", nil, map[string][]string{"text": {"max=10; string"}}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var saved []string
			var errs map[string][]string
			fv := &formView{saved: &saved}
			bp := control.New(dispatch.Blueprint{Name: "Comments"}, func(n *dispatch.Node) (control.View, error) {
				return &struct {
					*formView
					dataHook
				}{fv, dataHook{func(ui *control.UI) { errs = ui.FieldErrors }}}, nil
			})
			tree := buildTree(t, bp)
			r := request(http.MethodPost, "comments")
			r.Fields.Set("text", tc.text)

			// Act
			resp := tree.HandleRequest(r)

			// Assert
			require.Equal(t, http.StatusOK, resp.Status)
			require.Equal(t, tc.saved, saved)
			require.Equal(t, tc.errors, errs)
		})
	}
}

type plainView struct{ control.Element }

type replyForm struct {
	Text  string `json:"text" validate:"required,max=10"`
	Votes int    `json:"votes" validate:"gte=0"`
}

func TestControlJSONForm(t *testing.T) {
	tcs := []struct {
		name   string
		reply  string
		saved  []string
		errors map[string][]string
	}{
		{"valid", `{"text":"hi","votes":2}`, []string{"hi"}, nil},
		{"invalid", `{"text":"","votes":-1}`, nil, map[string][]string{
			"text":  {"required; string"},
			"votes": {"gte=0; int"},
		}},
		{"missing", "", nil, map[string][]string{"": {"missing data: field reply"}}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var saved []string
			var errs map[string][]string
			bp := control.New(dispatch.Blueprint{Name: "Reply"}, func(n *dispatch.Node) (control.View, error) {
				return &struct {
					*plainView
					dataHook
				}{new(plainView), dataHook{func(ui *control.UI) { errs = ui.FieldErrors }}}, nil
			}, control.OnPost(control.JSONForm("reply", func(ui *control.UI, r *dispatch.Request, f *replyForm) error {
				saved = append(saved, f.Text)
				return nil
			})))
			tree := buildTree(t, bp)
			r := request(http.MethodPost, "reply")
			if tc.reply != "" {
				r.Fields.Set("reply", tc.reply)
			}

			// Act
			resp := tree.HandleRequest(r)

			// Assert
			require.Equal(t, http.StatusOK, resp.Status)
			require.Equal(t, tc.saved, saved)
			require.Equal(t, tc.errors, errs)
		})
	}
}

type dataHook struct{ fn func(ui *control.UI) }

func (d dataHook) SetUIData(ui *control.UI, r *dispatch.Request) error {
	d.fn(ui)
	return nil
}
