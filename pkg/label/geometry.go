package label

import (
	"fmt"
	"strings"
)

// Page size presets.
const (
	PageLetter = "letter"
	PageA4     = "a4"
)

// Geometry describes the fixed page layout a label is flowed into.
// All lengths are PDF points (1/72 inch).
type Geometry struct {
	PageWidth  float64
	PageHeight float64

	// Margin is applied on all four sides; BottomReserve keeps a little
	// extra clearance above the bottom margin so grid rows never kiss
	// the page edge.
	Margin        float64
	BottomReserve float64

	// Grid spacing.
	Gutter  float64 // horizontal gap between cells
	CellPad float64 // padding inside a cell
	RowGap  float64 // vertical gap between unit rows

	// Reserved artwork sizes.
	QRSide    float64 // side of the QR code box, top-right of page one
	QRGap     float64 // clearance between text and the QR box
	ThumbSide float64 // side of an item thumbnail box

	ThumbCols int // cells per grid row in thumbs mode

	// Font sizes.
	TitleSize    float64
	IDSize       float64
	LocationSize float64
	SectionSize  float64
	BodySize     float64
	DescSize     float64
	ContSize     float64 // continuation header

	// Line advances.
	TitleLine   float64
	IDLine      float64
	LocLine     float64
	BodyLine    float64
	DescLine    float64
	ContLine    float64
	SectionLine float64
	BulletLine  float64

	// SectionGap is the vertical breathing room before a child section.
	SectionGap float64
}

// DefaultGeometry returns the compiled-in layout for a page size.
// Width and height are the only preset-specific values.
func DefaultGeometry(w, h float64) Geometry {
	return Geometry{
		PageWidth:     w,
		PageHeight:    h,
		Margin:        36, // 0.5in
		BottomReserve: 24,
		Gutter:        10.8,
		CellPad:       4,
		RowGap:        6,
		QRSide:        108, // 1.5in
		QRGap:         18,
		ThumbSide:     50,
		ThumbCols:     5,
		TitleSize:     24,
		IDSize:        16,
		LocationSize:  10,
		SectionSize:   12,
		BodySize:      10,
		DescSize:      9,
		ContSize:      16,
		TitleLine:     26,
		IDLine:        18,
		LocLine:       14,
		BodyLine:      11,
		DescLine:      10,
		ContLine:      22,
		SectionLine:   16,
		BulletLine:    12,
		SectionGap:    14,
	}
}

// Preset returns the geometry for a named page size. Only the two physical
// presets the CLI exposes are recognized.
func Preset(name string) (Geometry, error) {
	switch strings.ToLower(name) {
	case PageLetter:
		return DefaultGeometry(612, 792), nil
	case PageA4:
		return DefaultGeometry(595.28, 841.89), nil
	default:
		return Geometry{}, fmt.Errorf("unknown page size: %q (must be 'letter' or 'a4')", name)
	}
}

// ContentWidth is the usable width between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// Bottom is the y coordinate content may not cross.
func (g Geometry) Bottom() float64 {
	return g.PageHeight - g.Margin - g.BottomReserve
}
