package pptx

import (
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
)

// TextBox wraps a text-box shape for paragraph-by-paragraph population.
type TextBox struct {
	slide  *Slide
	sp     *xmlquery.Node
	txBody *xmlquery.Node
}

// Shape returns the underlying shape.
func (tb *TextBox) Shape() Shape {
	return Shape{slide: tb.slide, node: tb.sp, Kind: ShapeText}
}

// AddParagraph appends an empty paragraph to the text box.
func (tb *TextBox) AddParagraph() *Paragraph {
	p := newElement("a", "p")
	xmlquery.AddChild(tb.txBody, p)
	tb.slide.dirty = true
	return &Paragraph{slide: tb.slide, node: p}
}

// Paragraphs returns the box's paragraphs in order.
func (tb *TextBox) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, p := range childElements(tb.txBody, "p") {
		out = append(out, &Paragraph{slide: tb.slide, node: p})
	}
	return out
}

// RunFormat carries the character formatting applied to one run.
// A zero Size leaves the size inherited.
type RunFormat struct {
	Font   string
	Size   Points
	Bold   bool
	Italic bool
}

// Paragraph wraps one a:p element.
type Paragraph struct {
	slide *Slide
	node  *xmlquery.Node
}

// Text returns the paragraph's visible text: run and field text
// concatenated, with explicit line breaks as newlines.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for c := p.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		switch c.Data {
		case "r", "fld":
			if t := childElement(c, "t"); t != nil {
				sb.WriteString(t.InnerText())
			}
		case "br":
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Clear removes the paragraph's runs, breaks and fields, keeping the
// paragraph properties in place.
func (p *Paragraph) Clear() {
	c := p.node.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.Type == xmlquery.ElementNode {
			switch c.Data {
			case "r", "br", "fld", "endParaRPr":
				xmlquery.RemoveFromTree(c)
			}
		}
		c = next
	}
	p.slide.dirty = true
}

// pPr returns the paragraph properties element, creating it first in
// line if needed (a:pPr must precede the runs).
func (p *Paragraph) pPr() *xmlquery.Node {
	if props := childElement(p.node, "pPr"); props != nil {
		return props
	}
	props := newElement("a", "pPr")
	prependChild(p.node, props)
	return props
}

// SetAlignment sets the paragraph alignment.
func (p *Paragraph) SetAlignment(a Alignment) {
	setAttr(p.pPr(), "algn", string(a))
	p.slide.dirty = true
}

// SetSpaceBefore sets the space before the paragraph.
func (p *Paragraph) SetSpaceBefore(pts Points) {
	p.setSpacing("spcBef", pts)
}

// SetSpaceAfter sets the space after the paragraph.
func (p *Paragraph) SetSpaceAfter(pts Points) {
	p.setSpacing("spcAft", pts)
}

func (p *Paragraph) setSpacing(local string, pts Points) {
	props := p.pPr()
	spc := childElement(props, local)
	if spc == nil {
		spc = newElement("a", local)
		xmlquery.AddChild(props, spc)
	}
	spcPts := childElement(spc, "spcPts")
	if spcPts == nil {
		spcPts = newElement("a", "spcPts")
		xmlquery.AddChild(spc, spcPts)
	}
	setAttr(spcPts, "val", strconv.Itoa(pts.Centipoints()))
	p.slide.dirty = true
}

// AddRun appends a formatted text run to the paragraph.
func (p *Paragraph) AddRun(text string, f RunFormat) {
	r := newElement("a", "r")

	rPr := newElement("a", "rPr")
	setAttr(rPr, "lang", "en-US")
	if f.Size > 0 {
		setAttr(rPr, "sz", strconv.Itoa(f.Size.Centipoints()))
	}
	if f.Bold {
		setAttr(rPr, "b", "1")
	}
	if f.Italic {
		setAttr(rPr, "i", "1")
	}
	if f.Font != "" {
		latin := newElement("a", "latin")
		setAttr(latin, "typeface", f.Font)
		xmlquery.AddChild(rPr, latin)
	}
	xmlquery.AddChild(r, rPr)

	t := newElement("a", "t")
	xmlquery.AddChild(t, newText(text))
	xmlquery.AddChild(r, t)

	xmlquery.AddChild(p.node, r)
	p.slide.dirty = true
}

// AddBreak appends an explicit line break to the paragraph.
func (p *Paragraph) AddBreak() {
	xmlquery.AddChild(p.node, newElement("a", "br"))
	p.slide.dirty = true
}

// Runs returns the paragraph's run texts with their bold/italic flags,
// for inspection.
func (p *Paragraph) Runs() []RunInfo {
	var out []RunInfo
	for _, r := range childElements(p.node, "r") {
		info := RunInfo{}
		if t := childElement(r, "t"); t != nil {
			info.Text = t.InnerText()
		}
		if rPr := childElement(r, "rPr"); rPr != nil {
			if v, ok := attrValue(rPr, "b"); ok && (v == "1" || v == "true") {
				info.Bold = true
			}
			if v, ok := attrValue(rPr, "i"); ok && (v == "1" || v == "true") {
				info.Italic = true
			}
			if v, ok := attrInt(rPr, "sz"); ok {
				info.Size = Points(float64(v) / 100)
			}
			if latin := childElement(rPr, "latin"); latin != nil {
				info.Font, _ = attrValue(latin, "typeface")
			}
		}
		out = append(out, info)
	}
	return out
}

// RunInfo is the readable view of one run's text and formatting.
type RunInfo struct {
	Text   string
	Font   string
	Size   Points
	Bold   bool
	Italic bool
}
