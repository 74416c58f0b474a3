package dispatch

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/xy-planning-network/webbot/logger"
)

// A Blueprint statically declares a handler type and the children it owns.
type Blueprint struct {
	// Name is the handler's type name. Its first character is lower-cased to form the base name.
	Name string

	// Abstract marks a Blueprint as a base others copy from; it is never instantiated.
	Abstract bool

	// GrabFields are fields outside this handler passed in when it is requested.
	GrabFields []string

	// GrabForms are forms outside this handler passed in when it is requested.
	GrabForms []string

	// SharedFields are fields of this handler passed into all of its descendants.
	SharedFields []string

	// SharedForms are forms of this handler passed into all of its descendants.
	SharedForms []string

	// ResourceFiles must be loaded alongside this handler.
	ResourceFiles []string

	// Authorizer, when set, supplies this node's own view and edit checks.
	Authorizer Authorizer

	Children []Blueprint

	// Build constructs the Handler responding for n, once, when the tree is built.
	Build func(n *Node) (Handler, error)

	// Connect runs after Build and before any child is built,
	// a place to wire the handler to anything outside the tree.
	Connect func(n *Node) error
}

// BaseName returns the name a handler built from bp is routed by.
func (bp Blueprint) BaseName() string { return BaseName(bp.Name) }

// A Discoverer declares children only known once its Handler exists,
// e.g., controls referenced by a template.
type Discoverer interface {
	Discover(c Catalog) ([]Blueprint, error)
}

// A Catalog holds Blueprints available to a Discoverer, keyed by base name.
type Catalog map[string]Blueprint

// NewCatalog constructs a Catalog from bps.
func NewCatalog(bps ...Blueprint) Catalog {
	c := make(Catalog, len(bps))
	for _, bp := range bps {
		c[bp.BaseName()] = bp
	}

	return c
}

// Lookup finds the Blueprint by name, ignoring the case of its first character.
func (c Catalog) Lookup(name string) (Blueprint, bool) {
	bp, ok := c[BaseName(name)]
	return bp, ok
}

// A BuildContext is carried through the construction of a tree.
// Each step returns a new BuildContext instead of mutating the one it received.
type BuildContext struct {
	catalog Catalog
	scripts []string
	log     logger.Logger
}

// Catalog returns the Blueprints available for discovery.
func (bc BuildContext) Catalog() Catalog { return bc.catalog }

// Scripts returns the init scripts accumulated so far.
func (bc BuildContext) Scripts() []string { return append([]string(nil), bc.scripts...) }

// WithScripts returns a BuildContext with the scripts appended.
func (bc BuildContext) WithScripts(scripts ...string) BuildContext {
	next := bc
	next.scripts = append(append(make([]string, 0, len(bc.scripts)+len(scripts)), bc.scripts...), scripts...)
	return next
}

// build constructs the node for bp under parent, then every child below it.
func build(bp Blueprint, parent *Node, bc BuildContext) (*Node, BuildContext, error) {
	if err := validateBlueprint(bp); err != nil {
		return nil, bc, err
	}

	n := &Node{
		name:     bp.BaseName(),
		children: make(map[string]*Node),
		auth:     bp.Authorizer,
		log:      bc.log,
	}
	n.accessor = n.name
	n.grabFields = newFieldSet(bp.GrabFields...)
	n.grabForms = newFieldSet(bp.GrabForms...)
	n.sharedFields = newFieldSet(bp.SharedFields...)
	n.sharedForms = newFieldSet(bp.SharedForms...)
	n.resourceFiles = append([]string(nil), bp.ResourceFiles...)

	if parent != nil {
		n.parent = parent
		n.accessor = parent.accessor + Separator + n.name
		n.grabFields = n.grabFields.union(parent.sharedFields)
		n.grabForms = n.grabForms.union(parent.sharedForms)
		n.sharedFields = n.sharedFields.union(parent.sharedFields)
		n.sharedForms = n.sharedForms.union(parent.sharedForms)
	}

	bc = bc.WithScripts(initScripts(n)...)

	h, err := bp.Build(n)
	if err != nil {
		return nil, bc, fmt.Errorf("building %s: %w", n.accessor, err)
	}
	if h == nil {
		return nil, bc, fmt.Errorf("%w: %s built a nil handler", ErrNoBuild, n.accessor)
	}
	n.handler = h

	if bp.Connect != nil {
		if err := bp.Connect(n); err != nil {
			return nil, bc, fmt.Errorf("connecting %s: %w", n.accessor, err)
		}
	}

	children := bp.Children
	if d, ok := h.(Discoverer); ok {
		found, err := d.Discover(bc.Catalog())
		if err != nil {
			return nil, bc, fmt.Errorf("discovering children of %s: %w", n.accessor, err)
		}

		children = mergeDiscovered(children, found)
	}

	for _, childBP := range children {
		if childBP.Abstract {
			continue
		}

		if _, ok := n.children[childBP.BaseName()]; ok {
			return nil, bc, fmt.Errorf("%w: %s%s%s", ErrDuplicate, n.accessor, Separator, childBP.BaseName())
		}

		var child *Node
		child, bc, err = build(childBP, n, bc)
		if err != nil {
			return nil, bc, err
		}

		n.children[child.name] = child
		n.order = append(n.order, child)
	}

	for _, child := range n.order {
		child.siblings = newSiblings(n.order, child)
	}

	return n, bc, nil
}

// validateBlueprint checks bp can be built into a node.
func validateBlueprint(bp Blueprint) error {
	if bp.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrBadName)
	}

	if strings.Contains(bp.Name, Separator) {
		return fmt.Errorf("%w: %q cannot contain %q", ErrBadName, bp.Name, Separator)
	}

	if bp.Build == nil {
		return fmt.Errorf("%w: %s", ErrNoBuild, bp.Name)
	}

	return nil
}

// mergeDiscovered appends to declared every discovered Blueprint not already declared.
func mergeDiscovered(declared, discovered []Blueprint) []Blueprint {
	seen := make(map[string]bool, len(declared))
	for _, bp := range declared {
		seen[bp.BaseName()] = true
	}

	out := append([]Blueprint(nil), declared...)
	for _, bp := range discovered {
		if seen[bp.BaseName()] {
			continue
		}

		seen[bp.BaseName()] = true
		out = append(out, bp)
	}

	return out
}

// initScripts registers n with the client-side handler registry.
func initScripts(n *Node) []string {
	grabFields, _ := json.Marshal(n.grabFields.sorted())
	grabForms, _ := json.Marshal(n.grabForms.sorted())

	return []string{
		fmt.Sprintf("DynamicForm.handlers['%s'] = {};", n.accessor),
		fmt.Sprintf("DynamicForm.handlers['%s'].grabFields = %s;", n.accessor, grabFields),
		fmt.Sprintf("DynamicForm.handlers['%s'].grabForms = %s;", n.accessor, grabForms),
	}
}

// BaseName lower-cases the first character of name.
func BaseName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToLower(r)) + name[size:]
}
