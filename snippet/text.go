package snippet

import "strings"

// Resolver supplies values for variable nodes at expansion time.
type Resolver func(name string) (string, bool)

// MapResolver resolves variables from a fixed map.
func MapResolver(vars map[string]string) Resolver {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// RenderOptions configures Text.
type RenderOptions struct {
	// Resolve supplies variable values. Variables it cannot resolve fall
	// back to their default content.
	Resolve Resolver

	// Replace builds the replacer for a node's transform. When nil,
	// transformed text is rendered unmodified.
	Replace func(*Transform) (func([]string) []string, error)
}

// Text renders a normalized tree to the static text an expansion starts
// from: placeholders show their defaults, choices their first option,
// authority tabstops are empty, copies mirror their authority through their
// own transform, and variables resolve through opts.Resolve.
func Text(root *Node, opts RenderOptions) (string, error) {
	auth := make(map[int]*Node)
	Walk(root, func(n *Node) bool {
		if n.Indexed() && n.Dependents != nil {
			auth[n.Tabstop] = n
		}
		return false
	})

	r := &renderer{opts: opts, auth: auth, active: make(map[*Node]bool)}
	var b strings.Builder
	if err := r.node(root, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

type renderer struct {
	opts RenderOptions
	auth map[int]*Node

	// active holds the authorities currently being mirrored, so a copy
	// nested inside its own authority renders empty instead of recursing
	// forever
	active map[*Node]bool
}

func (r *renderer) node(n *Node, b *strings.Builder) error {
	switch n.Kind {
	case KindText:
		b.WriteString(n.Esc)
	case KindSnippet:
		return r.children(n, b)
	case KindPlaceholder:
		if a := r.authorityFor(n); a != nil {
			return r.mirror(a, n, b)
		}
		return r.children(n, b)
	case KindChoice:
		if a := r.authorityFor(n); a != nil {
			return r.mirror(a, n, b)
		}
		if len(n.Children) > 0 {
			b.WriteString(n.Children[0].Esc)
		}
	case KindTabstop:
		if a := r.authorityFor(n); a != nil {
			return r.mirror(a, n, b)
		}
		// an authority tabstop holds nothing until the user types
	case KindVariable:
		return r.variable(n, b)
	}
	return nil
}

func (r *renderer) children(n *Node, b *strings.Builder) error {
	for _, c := range n.Children {
		if err := r.node(c, b); err != nil {
			return err
		}
	}
	return nil
}

// authorityFor returns the authority a copy mirrors, or nil when n is itself
// an authority or the tree has not been resolved.
func (r *renderer) authorityFor(n *Node) *Node {
	if !n.Indexed() || n.Dependents != nil {
		return nil
	}
	return r.auth[n.Tabstop]
}

func (r *renderer) mirror(a, n *Node, b *strings.Builder) error {
	if r.active[a] {
		return nil
	}
	r.active[a] = true
	var ab strings.Builder
	err := r.node(a, &ab)
	delete(r.active, a)
	if err != nil {
		return err
	}
	text, err := r.transform(n.Transform, ab.String())
	if err != nil {
		return err
	}
	b.WriteString(text)
	return nil
}

func (r *renderer) transform(t *Transform, text string) (string, error) {
	if t == nil || r.opts.Replace == nil {
		return text, nil
	}
	rep, err := r.opts.Replace(t)
	if err != nil {
		return "", err
	}
	return strings.Join(rep(strings.Split(text, "\n")), "\n"), nil
}

func (r *renderer) variable(n *Node, b *strings.Builder) error {
	if r.opts.Resolve != nil {
		if v, ok := r.opts.Resolve(n.Name); ok {
			v, err := r.transform(n.Transform, v)
			if err != nil {
				return err
			}
			b.WriteString(indentLines(v, n.PreviousText))
			return nil
		}
	}
	return r.children(n, b)
}

// indentLines replicates the indentation of the line the variable sits on
// across the continuation lines of a multi-line value. The indent is the
// leading whitespace of the final previous-text fragment.
func indentLines(v string, prev []string) string {
	if len(prev) == 0 || !strings.Contains(v, "\n") {
		return v
	}
	last := prev[len(prev)-1]
	i := 0
	for i < len(last) && (last[i] == ' ' || last[i] == '\t') {
		i++
	}
	indent := last[:i]
	if indent == "" {
		return v
	}
	lines := strings.Split(v, "\n")
	for j := 1; j < len(lines); j++ {
		lines[j] = indent + lines[j]
	}
	return strings.Join(lines, "\n")
}
