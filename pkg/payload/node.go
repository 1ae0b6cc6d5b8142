// Package payload provides an ordered, tagged-variant tree used to assemble
// carrier wire documents before they are serialized.
//
// A Node is one of Null, Scalar, List or Map. Null marks a field that is known
// but absent; Prune drops those markers (and any container they leave empty)
// right before encoding, so builders can describe every field of a section
// without deciding at construction time which ones survive.
package payload

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the variant held by a Node.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is a tree element. The zero value is a Null node.
type Node struct {
	kind   Kind
	scalar string
	items  []*Node
	keys   []string
	fields map[string]*Node
}

// Null returns an absent marker.
func Null() *Node {
	return &Node{kind: KindNull}
}

// Scalar returns a leaf holding s. An empty s is kept as an intentional empty value.
func Scalar(s string) *Node {
	return &Node{kind: KindScalar, scalar: s}
}

// Text returns a Scalar for non-empty s and Null otherwise.
func Text(s string) *Node {
	if s == "" {
		return Null()
	}
	return Scalar(s)
}

// When returns v if cond holds and Null otherwise.
func When(cond bool, v *Node) *Node {
	if !cond {
		return Null()
	}
	return v
}

// List returns a list node holding items.
func List(items ...*Node) *Node {
	n := &Node{kind: KindList}
	for _, it := range items {
		n.Append(it)
	}
	return n
}

// Map returns an empty map node.
func Map() *Node {
	return &Node{kind: KindMap, fields: make(map[string]*Node)}
}

// Kind returns the variant of n.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindNull
	}
	return n.kind
}

// IsNull reports whether n is an absent marker.
func (n *Node) IsNull() bool {
	return n.Kind() == KindNull
}

// Value returns the scalar text, or "" for non-scalar nodes.
func (n *Node) Value() string {
	if n.Kind() != KindScalar {
		return ""
	}
	return n.scalar
}

// Len returns the number of list items or map entries.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindList:
		return len(n.items)
	case KindMap:
		return len(n.keys)
	default:
		return 0
	}
}

// Set stores v under key, keeping the key's original position when it already
// exists. A nil v is stored as Null. Set returns n for chaining.
func (n *Node) Set(key string, v *Node) *Node {
	if n.kind != KindMap {
		panic(fmt.Sprintf("payload: Set on %s node", n.kind))
	}
	if v == nil {
		v = Null()
	}
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = v
	return n
}

// Get returns the child stored under key.
func (n *Node) Get(key string) (*Node, bool) {
	if n.Kind() != KindMap {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Keys returns the map keys in insertion order.
func (n *Node) Keys() []string {
	if n.Kind() != KindMap {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Append adds v to the end of a list node.
func (n *Node) Append(v *Node) *Node {
	if n.kind != KindList {
		panic(fmt.Sprintf("payload: Append on %s node", n.kind))
	}
	if v == nil {
		v = Null()
	}
	n.items = append(n.items, v)
	return n
}

// Index returns the i-th list item.
func (n *Node) Index(i int) (*Node, bool) {
	if n.Kind() != KindList || i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return Null()
	}
	out := &Node{kind: n.kind, scalar: n.scalar}
	switch n.kind {
	case KindList:
		out.items = make([]*Node, len(n.items))
		for i, it := range n.items {
			out.items[i] = it.Clone()
		}
	case KindMap:
		out.keys = append([]string(nil), n.keys...)
		out.fields = make(map[string]*Node, len(n.fields))
		for k, v := range n.fields {
			out.fields[k] = v.Clone()
		}
	}
	return out
}

// FromValue converts a plain Go value into a Node. Maps are ordered by key.
func FromValue(v any) *Node {
	switch t := v.(type) {
	case nil:
		return Null()
	case *Node:
		if t == nil {
			return Null()
		}
		return t
	case string:
		return Scalar(t)
	case bool:
		return Scalar(strconv.FormatBool(t))
	case int:
		return Scalar(strconv.Itoa(t))
	case int64:
		return Scalar(strconv.FormatInt(t, 10))
	case float64:
		return Scalar(strconv.FormatFloat(t, 'f', -1, 64))
	case []string:
		l := List()
		for _, s := range t {
			l.Append(Scalar(s))
		}
		return l
	case []any:
		l := List()
		for _, it := range t {
			l.Append(FromValue(it))
		}
		return l
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := Map()
		for _, k := range keys {
			m.Set(k, FromValue(t[k]))
		}
		return m
	case fmt.Stringer:
		return Scalar(t.String())
	default:
		return Scalar(fmt.Sprint(t))
	}
}
