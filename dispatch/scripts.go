package dispatch

import (
	html "html/template"
	"strings"
)

// Scripts is an ordered set of client-side scripts.
// Adding a script already present is a no-op.
type Scripts struct {
	list []string
	seen map[string]struct{}
}

func NewScripts(scripts ...string) *Scripts {
	s := &Scripts{seen: make(map[string]struct{})}
	s.Add(scripts...)
	return s
}

// Add appends each non-empty script not yet present.
func (s *Scripts) Add(scripts ...string) {
	for _, script := range scripts {
		script = strings.TrimSpace(script)
		if script == "" {
			continue
		}

		if s.seen == nil {
			s.seen = make(map[string]struct{})
		}

		if _, ok := s.seen[script]; ok {
			continue
		}

		s.seen[script] = struct{}{}
		s.list = append(s.list, script)
	}
}

func (s *Scripts) Len() int {
	if s == nil {
		return 0
	}

	return len(s.list)
}

// All returns a copy of the scripts in the order they were added.
func (s *Scripts) All() []string {
	if s == nil {
		return nil
	}

	return append([]string(nil), s.list...)
}

// HTML renders the scripts within a single script element.
// No scripts render nothing.
func (s *Scripts) HTML() html.HTML {
	if s == nil || len(s.list) == 0 {
		return ""
	}

	return html.HTML("<script>\n" + strings.Join(s.list, "\n") + "\n</script>")
}
