package payload

// Prune removes Null nodes from the tree rooted at n, then any list or map left
// without children, repeating upwards until every remaining container holds at
// least one scalar. Scalars are never removed, including "" and "0".
// Prune reports whether n itself is empty and should be dropped by its parent.
func (n *Node) Prune() bool {
	switch n.Kind() {
	case KindNull:
		return true
	case KindScalar:
		return false
	case KindList:
		kept := n.items[:0]
		for _, it := range n.items {
			if !it.Prune() {
				kept = append(kept, it)
			}
		}
		for i := len(kept); i < len(n.items); i++ {
			n.items[i] = nil
		}
		n.items = kept
		return len(kept) == 0
	case KindMap:
		kept := n.keys[:0]
		for _, k := range n.keys {
			if n.fields[k].Prune() {
				delete(n.fields, k)
				continue
			}
			kept = append(kept, k)
		}
		n.keys = kept
		return len(kept) == 0
	}
	return false
}
