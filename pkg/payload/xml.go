package payload

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Root describes the document element wrapping an encoded tree. Name and
// attribute names are written verbatim, so prefixed forms like "req:Shipment"
// and "xmlns:req" are allowed.
type Root struct {
	Name  string
	Attrs []xml.Attr
}

// EncodeXML writes the XML declaration, the root element and the map n in
// insertion order. List values repeat their key once per item. Null nodes still
// present are skipped; call Prune first to also drop emptied containers.
func EncodeXML(w io.Writer, root Root, n *Node) error {
	if n.Kind() != KindMap {
		return fmt.Errorf("payload: cannot encode %s node as document", n.Kind())
	}
	enc := xml.NewEncoder(w)
	if err := enc.EncodeToken(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)}); err != nil {
		return err
	}
	start := xml.StartElement{Name: xml.Name{Local: root.Name}, Attr: root.Attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range n.keys {
		if err := encodeField(enc, k, n.fields[k]); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return err
	}
	return enc.Flush()
}

// MarshalXML prunes a copy of n and returns the encoded document.
func MarshalXML(root Root, n *Node) ([]byte, error) {
	tree := n.Clone()
	tree.Prune()
	var buf bytes.Buffer
	if err := EncodeXML(&buf, root, tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeField(enc *xml.Encoder, key string, v *Node) error {
	switch v.Kind() {
	case KindNull:
		return nil
	case KindList:
		for _, it := range v.items {
			if err := encodeField(enc, key, it); err != nil {
				return err
			}
		}
		return nil
	}

	start := xml.StartElement{Name: xml.Name{Local: key}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if v.kind == KindScalar {
		if v.scalar != "" {
			if err := enc.EncodeToken(xml.CharData(v.scalar)); err != nil {
				return err
			}
		}
	} else {
		for _, k := range v.keys {
			if err := encodeField(enc, k, v.fields[k]); err != nil {
				return err
			}
		}
	}
	return enc.EncodeToken(start.End())
}
