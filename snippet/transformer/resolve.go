package transformer

import "github.com/snipd/sdk/snippet"

// ResolveDependents partitions the nodes sharing a tabstop index into one
// authority and its ordered copies, and attaches the copies to the
// authority's Dependents list. Every authority ends up with a non-nil list,
// empty when the index is unique; copies keep a nil list.
//
// The winner between the recorded authority and a newly encountered node is
// decided by kind priority: placeholders and choices beat bare tabstops
// regardless of position, and ties go to the node seen first. The reduction
// is a strict left fold over walk order; a demoted node never competes
// again, only the slot's current authority does.
func ResolveDependents(root *snippet.Node) {
	type slot struct {
		authority *snippet.Node
		copies    []*snippet.Node
	}
	slots := make(map[int]*slot)
	var order []int

	snippet.Walk(root, func(n *snippet.Node) bool {
		if !n.Indexed() {
			return false
		}
		s, ok := slots[n.Tabstop]
		if !ok {
			slots[n.Tabstop] = &slot{authority: n}
			order = append(order, n.Tabstop)
			return false
		}
		if jumpPriority(n) > jumpPriority(s.authority) {
			s.copies = append(s.copies, s.authority)
			s.authority = n
		} else {
			s.copies = append(s.copies, n)
		}
		return false
	})

	for _, idx := range order {
		s := slots[idx]
		if s.copies == nil {
			s.copies = []*snippet.Node{}
		}
		s.authority.Dependents = s.copies
	}
}

func jumpPriority(n *snippet.Node) int {
	switch n.Kind {
	case snippet.KindPlaceholder, snippet.KindChoice:
		return 2
	}
	return 1
}
