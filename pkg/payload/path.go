package payload

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned for malformed paths or out-of-range list indexes.
var ErrInvalidPath = errors.New("invalid path")

// SetPath stores v at a dotted path such as "ShipmentDetails.Pieces.Piece.0.Depth",
// creating intermediate nodes as needed and replacing whatever was there before.
// Numeric segments address list items; an index equal to the list length appends.
// Missing intermediates become lists when the next segment is numeric and maps
// otherwise. A null, scalar or list intermediate reached by a non-numeric
// segment is replaced by a map.
func (n *Node) SetPath(path string, v *Node) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	if n.Kind() != KindMap {
		return fmt.Errorf("%w: %q: root is %s", ErrInvalidPath, path, n.Kind())
	}

	cur := n
	for i, seg := range segs {
		last := i == len(segs)-1
		var next *Node
		if !last {
			if _, numeric := listIndex(segs[i+1]); numeric {
				next = List()
			} else {
				next = Map()
			}
		}

		switch cur.kind {
		case KindMap:
			if last {
				cur.Set(seg, v)
				return nil
			}
			child, ok := cur.fields[seg]
			if !ok || replaceable(child, next) {
				cur.Set(seg, next)
				child = next
			}
			cur = child

		case KindList:
			idx, ok := listIndex(seg)
			if !ok || idx > len(cur.items) {
				return fmt.Errorf("%w: %q: segment %q does not address list of %d", ErrInvalidPath, path, seg, len(cur.items))
			}
			if last {
				if idx == len(cur.items) {
					cur.Append(v)
				} else {
					cur.items[idx] = nullIfNil(v)
				}
				return nil
			}
			if idx == len(cur.items) {
				cur.Append(next)
			}
			child := cur.items[idx]
			if replaceable(child, next) {
				cur.items[idx] = next
				child = next
			}
			cur = child
		}
	}
	return nil
}

// Lookup returns the node at a dotted path.
func (n *Node) Lookup(path string) (*Node, bool) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	cur := n
	for _, seg := range segs {
		var ok bool
		switch cur.Kind() {
		case KindMap:
			cur, ok = cur.Get(seg)
		case KindList:
			idx, numeric := listIndex(seg)
			if !numeric {
				return nil, false
			}
			cur, ok = cur.Index(idx)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// replaceable reports whether an intermediate node cannot hold the next segment
// and must give way to next.
func replaceable(child, next *Node) bool {
	switch child.kind {
	case KindNull, KindScalar:
		return true
	case KindList:
		return next.kind == KindMap
	}
	return false
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segs := strings.Split(path, ".")
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPath, path)
		}
	}
	return segs, nil
}

func listIndex(seg string) (int, bool) {
	idx, err := strconv.Atoi(seg)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func nullIfNil(v *Node) *Node {
	if v == nil {
		return Null()
	}
	return v
}
