package page

import "github.com/xy-planning-network/webbot/dispatch"

type config struct {
	authorizer    dispatch.Authorizer
	catalog       []dispatch.Blueprint
	document      string
	frame         *dispatch.Blueprint
	grabFields    []string
	resourceFiles []string
	sharedFields  []string
	sharedForms   []string
}

// An Opt configures a page.
type Opt func(*config)

// WithAuthorizer decides who views and edits the page, and so every control in it.
func WithAuthorizer(a dispatch.Authorizer) Opt {
	return func(c *config) {
		c.authorizer = a
	}
}

// WithCatalog makes controls available to the templates of the page.
func WithCatalog(bps ...dispatch.Blueprint) Opt {
	return func(c *config) {
		c.catalog = append(c.catalog, bps...)
	}
}

// WithDocument replaces the template rendering the document.
func WithDocument(file string) Opt {
	return func(c *config) {
		c.document = file
	}
}

// WithFrame replaces the mainControl framing the page's content.
func WithFrame(bp dispatch.Blueprint) Opt {
	return func(c *config) {
		c.frame = &bp
	}
}

// WithGrabFields passes fields from outside the page into it.
func WithGrabFields(fields ...string) Opt {
	return func(c *config) {
		c.grabFields = append(c.grabFields, fields...)
	}
}

// WithResourceFiles links files into the document.
func WithResourceFiles(files ...string) Opt {
	return func(c *config) {
		c.resourceFiles = append(c.resourceFiles, files...)
	}
}

// WithSharedFields passes fields of the page into every control of it.
func WithSharedFields(fields ...string) Opt {
	return func(c *config) {
		c.sharedFields = append(c.sharedFields, fields...)
	}
}

// WithSharedForms passes forms of the page into every control of it.
func WithSharedForms(forms ...string) Opt {
	return func(c *config) {
		c.sharedForms = append(c.sharedForms, forms...)
	}
}
