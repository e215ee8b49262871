package snippet

// Walk visits n and, for container kinds, its children, depth-first and left
// to right. It stops as soon as fn returns true and reports whether it was
// stopped.
//
// Only placeholders and the snippet root are recursed into. Choice options
// and transform internals are not independently jumpable, so the walk treats
// choices and every other kind as opaque leaves.
func Walk(n *Node, fn func(*Node) bool) bool {
	if fn(n) {
		return true
	}
	switch n.Kind {
	case KindPlaceholder, KindSnippet:
		for _, c := range n.Children {
			if Walk(c, fn) {
				return true
			}
		}
	}
	return false
}
