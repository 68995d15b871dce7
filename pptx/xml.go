package pptx

import (
	"encoding/xml"
	"strconv"

	"github.com/antchfx/xmlquery"
)

// The helpers below match elements by local name only. Slide parts in
// the wild use varying namespace prefixes, and within a slide the local
// names are unambiguous.

func newElement(prefix, local string) *xmlquery.Node {
	return &xmlquery.Node{
		Type:   xmlquery.ElementNode,
		Prefix: prefix,
		Data:   local,
	}
}

func newText(text string) *xmlquery.Node {
	return &xmlquery.Node{
		Type: xmlquery.TextNode,
		Data: text,
	}
}

// setAttr sets or replaces an unprefixed attribute.
func setAttr(n *xmlquery.Node, local, value string) {
	for i, a := range n.Attr {
		if a.Name.Local == local && a.Name.Space == "" {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xmlquery.Attr{
		Name:  xml.Name{Local: local},
		Value: value,
	})
}

func attrValue(n *xmlquery.Node, local string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

func attrInt(n *xmlquery.Node, local string) (int64, bool) {
	v, ok := attrValue(n, local)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// childElement returns the first child element with the given local
// name, or nil.
func childElement(n *xmlquery.Node, local string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			return c
		}
	}
	return nil
}

// childElements returns all child elements with the given local name.
func childElements(n *xmlquery.Node, local string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == local {
			out = append(out, c)
		}
	}
	return out
}

// descendants returns every element below n with the given local name,
// in document order.
func descendants(n *xmlquery.Node, local string) []*xmlquery.Node {
	var out []*xmlquery.Node
	var walk func(*xmlquery.Node)
	walk = func(cur *xmlquery.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode {
				if c.Data == local {
					out = append(out, c)
				}
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// rootElement returns the document's root element.
func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

// prependChild inserts n as parent's first child.
func prependChild(parent, n *xmlquery.Node) {
	n.Parent = parent
	n.PrevSibling = nil
	n.NextSibling = parent.FirstChild
	if parent.FirstChild != nil {
		parent.FirstChild.PrevSibling = n
	} else {
		parent.LastChild = n
	}
	parent.FirstChild = n
}
