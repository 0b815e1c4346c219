package formula

import "github.com/specialistvlad/gridcalc/internal/celladdr"

// Dependencies returns every cell reference in the tree in traversal order
// (node, then left, then right). Duplicates are kept.
func (t Tree) Dependencies() []celladdr.Address {
	return collectRefs(t.root, nil)
}

func collectRefs(n *Node, out []celladdr.Address) []celladdr.Address {
	if n == nil {
		return out
	}
	if n.Token.Kind == KindCellRef {
		out = append(out, n.Token.Ref)
	}
	out = collectRefs(n.Left, out)
	return collectRefs(n.Right, out)
}
