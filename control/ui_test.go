package control_test

import (
	html "html/template"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/webbot/control"
	"github.com/xy-planning-network/webbot/dispatch"
)

func TestUIRender(t *testing.T) {
	// Arrange
	tmpl := html.Must(html.New("ui").Funcs(control.Funcs()).Parse(
		`<h1>{{ .Title }}</h1>{{ slot "body" }}{{ if editable }}<button>save</button>{{ end }}`,
	))
	ui := control.NewUI(tmpl, struct{ Title string }{"<Comments>"})
	ui.ReplaceWith("body", control.Text("a & b"))
	ui.Append(control.Markup("<hr>"))
	ui.ClientSide("init();")
	r := dispatch.NewRequest("", nil)

	// Act
	out, err := ui.Render(r)

	// Assert
	require.NoError(t, err)
	require.Equal(t, html.HTML(`<h1>&lt;Comments&gt;</h1>a &amp; b<button>save</button><hr>`), out)
	require.Equal(t, []string{"init();"}, r.Response.Scripts.All())

	// Arrange
	ui.SetEditable(false)

	// Act
	out, err = ui.Render(dispatch.NewRequest("", nil))

	// Assert
	require.NoError(t, err)
	require.Equal(t, html.HTML(`<h1>&lt;Comments&gt;</h1>a &amp; b<hr>`), out)
	require.False(t, ui.Editable())
	slot, ok := ui.Slot("body")
	require.True(t, ok)
	require.Equal(t, control.Text("a & b"), slot)
}

func TestUIRenderNoControls(t *testing.T) {
	// Arrange
	tmpl := html.Must(html.New("ui").Funcs(control.Funcs()).Parse(`{{ control "comments" }}`))
	ui := control.NewUI(tmpl, nil)

	// Act
	_, err := ui.Render(dispatch.NewRequest("", nil))

	// Assert
	require.ErrorIs(t, err, control.ErrNoControl)
}

func TestFlow(t *testing.T) {
	// Arrange
	ui := control.Flow(control.Text("<a>"), control.Markup("<b>"))

	// Act
	out, err := ui.Render(dispatch.NewRequest("", nil))

	// Assert
	require.NoError(t, err)
	require.Equal(t, html.HTML("&lt;a&gt;<b>"), out)
}

func TestCallString(t *testing.T) {
	tcs := []struct {
		name     string
		call     string
		expected string
	}{
		{"plain", control.Get(false, 0, "home-comments"), "DynamicForm.get('home-comments');"},
		{"reload", control.Get(true, 5*time.Second, "home"), "DynamicForm.get('home', true, '', 5000);"},
		{"many", control.Get(false, 0, "a", "b"), "DynamicForm.get(['a', 'b']);"},
		{"post", control.Post(url.Values{"text": {"hi"}}, "home"), "DynamicForm.post('home', false, 'text=hi');"},
		{"put", control.Put(nil, "home"), "DynamicForm.put('home');"},
		{"delete", control.Delete(url.Values{"id": {"1"}}, "home"), "DynamicForm.delete('home', false, 'id=1');"},
		{"no-target", control.Call{}.String(), "DynamicForm.get('');"},
		{"quoted", control.Get(false, 0, "it's"), `DynamicForm.get('it\'s');`},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.call)
		})
	}
}

func TestSanitize(t *testing.T) {
	// Act
	actual := control.Sanitize(`<a href="https://example.com" onclick="x()">link</a><script>alert(1)</script>`)

	// Assert
	require.Equal(t, html.HTML(`<a href="https://example.com" rel="nofollow">link</a>`), actual)
}
