package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ErrNoSuchSlide is returned when a slide index is out of range.
var ErrNoSuchSlide = errors.New("pptx: no such slide")

type presentationXML struct {
	XMLName     xml.Name       `xml:"presentation"`
	SlideIDList slideIDListXML `xml:"sldIdLst"`
	SlideSize   slideSizeXML   `xml:"sldSz"`
}

type slideIDListXML struct {
	IDs []slideIDXML `xml:"sldId"`
}

type slideIDXML struct {
	ID  string `xml:"id,attr"`
	RID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
}

type slideSizeXML struct {
	CX int64 `xml:"cx,attr"`
	CY int64 `xml:"cy,attr"`
}

type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// Deck is an open presentation. Parts are held in memory; slides are
// parsed lazily into mutable XML trees the first time they are asked
// for, and only slides that were actually modified are re-serialized
// on save. Everything else round-trips byte for byte.
type Deck struct {
	names      []string          // zip entry names in archive order
	parts      map[string][]byte // entry name -> raw bytes
	slidePaths []string          // part names in presentation order
	slides     map[int]*Slide    // parsed slides by index
	width      EMU
	height     EMU
}

// Open reads a .pptx file into memory.
func Open(filename string) (*Deck, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	return OpenReader(f, fi.Size())
}

// OpenReader reads a .pptx from an io.ReaderAt.
func OpenReader(r io.ReaderAt, size int64) (*Deck, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("not a valid pptx file: %w", err)
	}

	d := &Deck{
		parts:  make(map[string][]byte),
		slides: make(map[int]*Slide),
		width:  Inches(10),
		height: Inches(7.5),
	}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", zf.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", zf.Name, err)
		}
		d.names = append(d.names, zf.Name)
		d.parts[zf.Name] = data
	}

	if _, ok := d.parts["[Content_Types].xml"]; !ok {
		return nil, errors.New("not a valid pptx file: missing [Content_Types].xml")
	}
	if _, ok := d.parts["ppt/presentation.xml"]; !ok {
		return nil, errors.New("not a valid pptx file: missing ppt/presentation.xml")
	}

	if err := d.parsePresentation(); err != nil {
		return nil, err
	}
	return d, nil
}

// parsePresentation resolves the slide order and slide size from
// presentation.xml and its relationships part.
func (d *Deck) parsePresentation() error {
	var pres presentationXML
	if err := xml.Unmarshal(d.parts["ppt/presentation.xml"], &pres); err != nil {
		return fmt.Errorf("parsing presentation.xml: %w", err)
	}
	if pres.SlideSize.CX > 0 {
		d.width = EMU(pres.SlideSize.CX)
	}
	if pres.SlideSize.CY > 0 {
		d.height = EMU(pres.SlideSize.CY)
	}

	relsData, ok := d.parts["ppt/_rels/presentation.xml.rels"]
	if !ok {
		return errors.New("missing presentation relationships part")
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(relsData, &rels); err != nil {
		return fmt.Errorf("parsing presentation rels: %w", err)
	}
	targets := make(map[string]string, len(rels.Relationships))
	for _, rel := range rels.Relationships {
		if strings.HasSuffix(rel.Type, "/slide") {
			targets[rel.ID] = rel.Target
		}
	}

	for _, sid := range pres.SlideIDList.IDs {
		target, ok := targets[sid.RID]
		if !ok {
			return fmt.Errorf("slide id %s: unresolved relationship %s", sid.ID, sid.RID)
		}
		d.slidePaths = append(d.slidePaths, path.Clean(path.Join("ppt", target)))
	}
	return nil
}

// SlideCount returns the number of slides in presentation order.
func (d *Deck) SlideCount() int {
	return len(d.slidePaths)
}

// SlideWidth returns the slide width.
func (d *Deck) SlideWidth() EMU {
	return d.width
}

// SlideHeight returns the slide height.
func (d *Deck) SlideHeight() EMU {
	return d.height
}

// Midpoint returns the x coordinate splitting the slide into its left
// and right halves.
func (d *Deck) Midpoint() EMU {
	return d.width / 2
}

// Slide returns the slide at the given 0-based index, parsing it on
// first access.
func (d *Deck) Slide(index int) (*Slide, error) {
	if index < 0 || index >= len(d.slidePaths) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrNoSuchSlide, index, len(d.slidePaths))
	}
	if s, ok := d.slides[index]; ok {
		return s, nil
	}

	partPath := d.slidePaths[index]
	data, ok := d.parts[partPath]
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", ErrNoSuchSlide, partPath)
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", partPath, err)
	}
	s := &Slide{deck: d, index: index, path: partPath, doc: doc}
	d.slides[index] = s
	return s, nil
}

// Save writes the deck to a file.
func (d *Deck) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := d.SaveTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SaveTo writes the deck as a zip archive. Modified slides are
// re-serialized; every other part is copied unchanged.
func (d *Deck) SaveTo(w io.Writer) error {
	serialized := make(map[string][]byte)
	for _, s := range d.slides {
		if s.dirty {
			serialized[s.path] = s.serialize()
		}
	}

	names := d.names
	if len(names) != len(d.parts) {
		names = make([]string, 0, len(d.parts))
		for name := range d.parts {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	zw := zip.NewWriter(w)
	for _, name := range names {
		data := d.parts[name]
		if out, ok := serialized[name]; ok {
			data = out
		}
		fw, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return zw.Close()
}
