package transformer

import "github.com/snipd/sdk/snippet"

// FixupExit guarantees the tree owns exactly one well-formed exit point: a
// bare tabstop bound to index 0 sitting directly under the root.
//
// A tree is left untouched only when its transform-free index-0 occupant is
// a bare tabstop, or a placeholder holding nothing but text, is a direct
// child of the root, and index 0 occurs exactly once in the whole tree. Any
// other arrangement is rewritten: every 0-bound node is demoted to one past
// the highest index in the tree (content preserved), and a fresh bare
// tabstop 0 is inserted directly under the root, right after the root child
// whose subtree held the old occupant, or at the end of the root's children
// when the tree had no index-0 node at all.
func FixupExit(root *snippet.Node) {
	var cand *snippet.Node
	candAt := -1
	for i, c := range root.Children {
		snippet.Walk(c, func(n *snippet.Node) bool {
			if n.Indexed() && n.Tabstop == 0 && n.Transform == nil {
				cand = n
				candAt = i
				return true
			}
			return false
		})
		if cand != nil {
			break
		}
	}

	if cand != nil && zeroCount(root) == 1 && isDirectChild(root, cand) && isSimpleExit(cand) {
		return
	}

	max := -1
	snippet.Walk(root, func(n *snippet.Node) bool {
		if n.Indexed() && n.Tabstop > max {
			max = n.Tabstop
		}
		return false
	})
	snippet.Walk(root, func(n *snippet.Node) bool {
		if n.Indexed() && n.Tabstop == 0 {
			n.Tabstop = max + 1
		}
		return false
	})

	at := len(root.Children)
	if candAt >= 0 {
		at = candAt + 1
	}
	exit := &snippet.Node{Kind: snippet.KindTabstop, Tabstop: 0}
	children := make([]*snippet.Node, 0, len(root.Children)+1)
	children = append(children, root.Children[:at]...)
	children = append(children, exit)
	children = append(children, root.Children[at:]...)
	root.Children = children
}

func zeroCount(root *snippet.Node) int {
	count := 0
	snippet.Walk(root, func(n *snippet.Node) bool {
		if n.Indexed() && n.Tabstop == 0 {
			count++
		}
		return false
	})
	return count
}

func isDirectChild(root, n *snippet.Node) bool {
	for _, c := range root.Children {
		if c == n {
			return true
		}
	}
	return false
}

// isSimpleExit reports whether n can serve as the final cursor position: a
// bare tabstop, or a placeholder whose whole subtree holds only text.
func isSimpleExit(n *snippet.Node) bool {
	switch n.Kind {
	case snippet.KindTabstop:
		return true
	case snippet.KindPlaceholder:
		simple := true
		snippet.Walk(n, func(m *snippet.Node) bool {
			if m != n && m.Kind != snippet.KindText {
				simple = false
				return true
			}
			return false
		})
		return simple
	}
	return false
}
