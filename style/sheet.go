package style

import (
	"fmt"
	"strings"

	"github.com/gogpu/ggdom/dom"
)

// Selector matches nodes by element name, id and classes. Empty fields
// match anything; every listed class must be present.
type Selector struct {
	Type    string
	ID      string
	Classes []string
}

// ParseSelector parses a compound selector such as "p#title.big.red" or
// "*". Combinators are not supported.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Selector{}, fmt.Errorf("style: empty selector")
	}
	if strings.ContainsAny(s, " >+~,") {
		return Selector{}, fmt.Errorf("style: unsupported selector %q", s)
	}
	var sel Selector
	i := strings.IndexAny(s, "#.")
	if i < 0 {
		i = len(s)
	}
	if typ := s[:i]; typ != "*" {
		sel.Type = typ
	}
	for rest := s[i:]; rest != ""; {
		marker := rest[0]
		rest = rest[1:]
		j := strings.IndexAny(rest, "#.")
		if j < 0 {
			j = len(rest)
		}
		name := rest[:j]
		rest = rest[j:]
		if name == "" {
			return Selector{}, fmt.Errorf("style: empty name in selector %q", s)
		}
		if marker == '#' {
			sel.ID = name
		} else {
			sel.Classes = append(sel.Classes, name)
		}
	}
	return sel, nil
}

// Matches reports whether n is selected.
func (s Selector) Matches(n *dom.NodeData) bool {
	if s.Type != "" && s.Type != n.Type.CSSName() {
		return false
	}
	if s.ID != "" && s.ID != n.ID {
		return false
	}
	for _, c := range s.Classes {
		if !n.HasClass(c) {
			return false
		}
	}
	return true
}

// Rule pairs a selector with its declarations.
type Rule struct {
	Selector     Selector
	Declarations []Declaration
}

// Sheet is an ordered list of rules. Later rules take precedence.
type Sheet struct {
	rules   []Rule
	version uint64
}

// NewSheet returns a sheet holding rules.
func NewSheet(rules ...Rule) *Sheet {
	return &Sheet{rules: rules, version: 1}
}

// Add appends a rule.
func (s *Sheet) Add(selector string, decls ...Declaration) error {
	sel, err := ParseSelector(selector)
	if err != nil {
		return err
	}
	s.rules = append(s.rules, Rule{Selector: sel, Declarations: decls})
	s.version++
	return nil
}

// MustAdd is Add for constant selectors. It panics on error.
func (s *Sheet) MustAdd(selector string, decls ...Declaration) *Sheet {
	if err := s.Add(selector, decls...); err != nil {
		panic(err)
	}
	return s
}

// Rules returns the rules in source order.
func (s *Sheet) Rules() []Rule { return s.rules }

// Version increases every time a rule is added. Layout uses it to decide
// whether constraints must be rebuilt.
func (s *Sheet) Version() uint64 {
	if s == nil {
		return 0
	}
	return s.version
}

// Match returns the declarations of every rule selecting n, in source
// order. It is safe on a nil receiver.
func (s *Sheet) Match(n *dom.NodeData) []Declaration {
	if s == nil {
		return nil
	}
	var out []Declaration
	for i := range s.rules {
		if s.rules[i].Selector.Matches(n) {
			out = append(out, s.rules[i].Declarations...)
		}
	}
	return out
}
