package pptx

// EMU is an English Metric Unit, the native length unit of OOXML
// drawing geometry. There are 914400 EMU to the inch.
type EMU int64

const (
	EMUPerInch  EMU = 914400
	EMUPerPoint EMU = 12700
)

// Inches converts inches to EMU.
func Inches(in float64) EMU {
	return EMU(in * float64(EMUPerInch))
}

// Inches converts the value back to inches.
func (e EMU) Inches() float64 {
	return float64(e) / float64(EMUPerInch)
}

// Points is a font or spacing size in typographic points.
type Points float64

// Centipoints returns the value in hundredths of a point, the unit
// OOXML uses for run sizes and paragraph spacing.
func (p Points) Centipoints() int {
	return int(p * 100)
}

// Alignment is a paragraph alignment value as written to a:pPr/@algn.
type Alignment string

const (
	AlignLeft    Alignment = "l"
	AlignCenter  Alignment = "ctr"
	AlignRight   Alignment = "r"
	AlignJustify Alignment = "just"
)

// Side names one horizontal half of a slide.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Valid reports whether the side is one of the two known values.
func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}
