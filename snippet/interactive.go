package snippet

// IsInteractive reports whether the node is a target the jump engine can land
// on. The answer is meaningful only after dependents resolution: a tabstop
// counts as a mirror copy exactly when its Dependents list is nil, since the
// resolver leaves a non-nil list on every authority.
func (n *Node) IsInteractive() bool {
	switch n.Kind {
	case KindText, KindVariable:
		return false
	case KindChoice:
		return true
	case KindTabstop:
		return n.Dependents != nil
	case KindPlaceholder, KindSnippet:
		for _, c := range n.Children {
			if c.IsInteractive() {
				return true
			}
		}
	}
	return false
}
