package dispatch

import "sort"

// A fieldSet is a set of field or form names.
type fieldSet map[string]struct{}

func newFieldSet(names ...string) fieldSet {
	s := make(fieldSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}

	return s
}

// union returns a new fieldSet holding the members of both s and other.
func (s fieldSet) union(other fieldSet) fieldSet {
	out := make(fieldSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}

	for k := range other {
		out[k] = struct{}{}
	}

	return out
}

func (s fieldSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// sorted lists the members of s in lexical order, never nil.
func (s fieldSet) sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}

	sort.Strings(out)
	return out
}

// A Siblings registry names every other child of a node's parent.
type Siblings map[string]*Node

func newSiblings(children []*Node, self *Node) Siblings {
	s := make(Siblings, len(children))
	for _, c := range children {
		if c == self {
			continue
		}

		s[c.name] = c
	}

	return s
}

// Names lists the siblings' base names in lexical order.
func (s Siblings) Names() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}

	sort.Strings(out)
	return out
}
