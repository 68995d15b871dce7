package docx

import "encoding/xml"

// documentXML represents the structure of word/document.xml, reduced to
// the paragraph/run surface lyric documents use.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body.
type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Runs []runXML `xml:"r"`
}

// runXML represents a text run (<w:r>). Text collects the run's <w:t>
// content in order, with <w:br> and <w:cr> rendered as newlines and
// <w:tab> as a tab, the run-level layout the extractor understands.
type runXML struct {
	Props *runPropsXML
	Text  string
}

// UnmarshalXML walks the run's children manually so text, breaks and
// tabs keep their document order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				var props runPropsXML
				if err := d.DecodeElement(&props, &t); err != nil {
					return err
				}
				r.Props = &props
			case "t":
				var s string
				if err := d.DecodeElement(&s, &t); err != nil {
					return err
				}
				r.Text += s
			case "br", "cr":
				r.Text += "\n"
				if err := d.Skip(); err != nil {
					return err
				}
			case "tab":
				r.Text += "\t"
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Italic *onOffXML `xml:"i"`
	Bold   *onOffXML `xml:"b"`
}

// onOffXML is WordprocessingML's tri-state toggle: absent means
// unspecified, present without val (or with a truthy val) means on.
type onOffXML struct {
	Val string `xml:"val,attr"`
}

// enabled resolves the toggle's value.
func (o *onOffXML) enabled() bool {
	if o == nil {
		return false
	}
	switch o.Val {
	case "", "1", "true", "on":
		return true
	}
	return false
}
