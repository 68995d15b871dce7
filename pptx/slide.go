package pptx

import (
	"strconv"

	"github.com/antchfx/xmlquery"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\r\n"

// Slide is one slide part, parsed into a mutable XML tree.
type Slide struct {
	deck  *Deck
	index int
	path  string
	doc   *xmlquery.Node
	dirty bool
}

// Index returns the slide's 0-based position in presentation order.
func (s *Slide) Index() int {
	return s.index
}

// spTree returns the slide's shape tree element.
func (s *Slide) spTree() *xmlquery.Node {
	root := rootElement(s.doc)
	if root == nil {
		return nil
	}
	cSld := childElement(root, "cSld")
	if cSld == nil {
		return nil
	}
	return childElement(cSld, "spTree")
}

// serialize renders the slide part back to bytes.
func (s *Slide) serialize() []byte {
	root := rootElement(s.doc)
	if root == nil {
		return nil
	}
	return []byte(xmlDeclaration + root.OutputXML(true))
}

// ShapeKind distinguishes the shape elements a slide's tree can hold.
type ShapeKind int

const (
	ShapeText      ShapeKind = iota // p:sp
	ShapePicture                    // p:pic
	ShapeFrame                      // p:graphicFrame (tables, charts)
	ShapeGroup                      // p:grpSp
	ShapeConnector                  // p:cxnSp
)

var shapeKinds = map[string]ShapeKind{
	"sp":           ShapeText,
	"pic":          ShapePicture,
	"graphicFrame": ShapeFrame,
	"grpSp":        ShapeGroup,
	"cxnSp":        ShapeConnector,
}

// Shape is one shape on a slide.
type Shape struct {
	slide *Slide
	node  *xmlquery.Node
	Kind  ShapeKind
}

// Shapes returns the slide's shapes in document (z/reading) order.
func (s *Slide) Shapes() []Shape {
	tree := s.spTree()
	if tree == nil {
		return nil
	}
	var out []Shape
	for c := tree.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		kind, ok := shapeKinds[c.Data]
		if !ok {
			continue
		}
		out = append(out, Shape{slide: s, node: c, Kind: kind})
	}
	return out
}

// Offset returns the shape's top-left offset. Shapes without an explicit
// transform (placeholders inheriting layout geometry, and anything else
// non-positioned) report ok == false and are never side-cleared.
func (sh Shape) Offset() (x, y EMU, ok bool) {
	var holder *xmlquery.Node
	switch sh.Kind {
	case ShapeGroup:
		holder = childElement(sh.node, "grpSpPr")
	case ShapeFrame:
		holder = sh.node
	default:
		holder = childElement(sh.node, "spPr")
	}
	if holder == nil {
		return 0, 0, false
	}
	xfrm := childElement(holder, "xfrm")
	if xfrm == nil {
		return 0, 0, false
	}
	off := childElement(xfrm, "off")
	if off == nil {
		return 0, 0, false
	}
	xv, okX := attrInt(off, "x")
	yv, okY := attrInt(off, "y")
	if !okX || !okY {
		return 0, 0, false
	}
	return EMU(xv), EMU(yv), true
}

// HasText reports whether the shape carries a text body.
func (sh Shape) HasText() bool {
	return childElement(sh.node, "txBody") != nil
}

// Paragraphs returns the shape's text paragraphs in document order, or
// nil for shapes without text.
func (sh Shape) Paragraphs() []*Paragraph {
	body := childElement(sh.node, "txBody")
	if body == nil {
		return nil
	}
	var out []*Paragraph
	for _, p := range childElements(body, "p") {
		out = append(out, &Paragraph{slide: sh.slide, node: p})
	}
	return out
}

// Remove detaches the shape from the slide.
func (sh Shape) Remove() {
	xmlquery.RemoveFromTree(sh.node)
	sh.slide.dirty = true
}

// onSide reports whether an x offset falls on the given side of the
// midpoint. The midpoint itself belongs to the right side.
func onSide(x, midpoint EMU, side Side) bool {
	if side == SideLeft {
		return x < midpoint
	}
	return x >= midpoint
}

// ClearSide removes every positioned shape whose left edge falls on the
// given side of the deck midpoint, and returns how many were removed.
// Non-positioned shapes are left alone. Clearing twice is a no-op the
// second time, so a clear-then-compose cycle is idempotent.
func (s *Slide) ClearSide(side Side) int {
	midpoint := s.deck.Midpoint()
	removed := 0
	for _, sh := range s.Shapes() {
		x, _, positioned := sh.Offset()
		if !positioned {
			continue
		}
		if onSide(x, midpoint, side) {
			sh.Remove()
			removed++
		}
	}
	return removed
}

// maxShapeID returns the highest cNvPr id on the slide.
func (s *Slide) maxShapeID() int64 {
	tree := s.spTree()
	if tree == nil {
		return 1
	}
	max := int64(1)
	for _, n := range descendants(tree, "cNvPr") {
		if id, ok := attrInt(n, "id"); ok && id > max {
			max = id
		}
	}
	return max
}

// AddTextBox appends a new empty text box shape with the given geometry,
// top-anchored with word wrap enabled, and returns it for population.
func (s *Slide) AddTextBox(left, top, width, height EMU) *TextBox {
	id := s.maxShapeID() + 1

	sp := newElement("p", "sp")

	nvSpPr := newElement("p", "nvSpPr")
	cNvPr := newElement("p", "cNvPr")
	setAttr(cNvPr, "id", strconv.FormatInt(id, 10))
	setAttr(cNvPr, "name", "TextBox "+strconv.FormatInt(id, 10))
	xmlquery.AddChild(nvSpPr, cNvPr)
	cNvSpPr := newElement("p", "cNvSpPr")
	setAttr(cNvSpPr, "txBox", "1")
	xmlquery.AddChild(nvSpPr, cNvSpPr)
	xmlquery.AddChild(nvSpPr, newElement("p", "nvPr"))
	xmlquery.AddChild(sp, nvSpPr)

	spPr := newElement("p", "spPr")
	xfrm := newElement("a", "xfrm")
	off := newElement("a", "off")
	setAttr(off, "x", strconv.FormatInt(int64(left), 10))
	setAttr(off, "y", strconv.FormatInt(int64(top), 10))
	xmlquery.AddChild(xfrm, off)
	ext := newElement("a", "ext")
	setAttr(ext, "cx", strconv.FormatInt(int64(width), 10))
	setAttr(ext, "cy", strconv.FormatInt(int64(height), 10))
	xmlquery.AddChild(xfrm, ext)
	xmlquery.AddChild(spPr, xfrm)
	prstGeom := newElement("a", "prstGeom")
	setAttr(prstGeom, "prst", "rect")
	xmlquery.AddChild(prstGeom, newElement("a", "avLst"))
	xmlquery.AddChild(spPr, prstGeom)
	xmlquery.AddChild(sp, spPr)

	txBody := newElement("p", "txBody")
	bodyPr := newElement("a", "bodyPr")
	setAttr(bodyPr, "wrap", "square")
	setAttr(bodyPr, "anchor", "t")
	xmlquery.AddChild(txBody, bodyPr)
	xmlquery.AddChild(txBody, newElement("a", "lstStyle"))
	xmlquery.AddChild(sp, txBody)

	tree := s.spTree()
	xmlquery.AddChild(tree, sp)
	s.dirty = true

	return &TextBox{slide: s, sp: sp, txBody: txBody}
}
