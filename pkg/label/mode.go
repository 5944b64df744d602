package label

import (
	"fmt"

	"github.com/matzehuels/totelabel/pkg/inventory"
)

// Render mode names.
const (
	ModeThumbs = "thumbs"
	ModeText   = "text"
)

// Mode is the capability interface that parameterizes the flow engine:
// how many items form one atomic unit, how tall the unit is, and how it
// is drawn. The engine itself never branches on the mode name.
type Mode interface {
	// Name returns the mode identifier used in output filenames.
	Name() string

	// PerRow returns how many items form one atomic unit.
	PerRow(geo Geometry) int

	// MeasureUnit returns the unit height for up to PerRow items laid
	// out in columns of the given width.
	MeasureUnit(c Canvas, geo Geometry, items []inventory.Item, colW float64) float64

	// DrawUnit draws the unit with its top-left corner at (x, y).
	DrawUnit(c Canvas, geo Geometry, items []inventory.Item, x, y, colW float64)
}

// NewMode constructs the mode for a name. The image provider is only used
// by thumbs mode; text mode ignores it.
func NewMode(name string, images ImageProvider) (Mode, error) {
	switch name {
	case ModeThumbs:
		return &ThumbsMode{Images: images}, nil
	case ModeText:
		return &TextMode{}, nil
	default:
		return nil, fmt.Errorf("unknown render mode: %q (must be 'thumbs' or 'text')", name)
	}
}

// itemTitleText formats the quantity-and-title line of an item.
func itemTitleText(it inventory.Item) string {
	title := it.Title
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("%d × %s", it.Quantity, title)
}

// =============================================================================
// Thumbs Mode
// =============================================================================

// ThumbsMode lays items out as a grid of cells, each holding an optional
// thumbnail, the quantity-and-title line and a wrapped description.
type ThumbsMode struct {
	// Images provides thumbnails by URL; nil disables thumbnails and the
	// grid degrades to text-only cells.
	Images ImageProvider
}

// Name implements Mode.
func (m *ThumbsMode) Name() string { return ModeThumbs }

// PerRow implements Mode: one grid row of cells is the atomic unit.
func (m *ThumbsMode) PerRow(geo Geometry) int { return geo.ThumbCols }

// MeasureUnit implements Mode: the tallest cell sets the row height.
func (m *ThumbsMode) MeasureUnit(c Canvas, geo Geometry, items []inventory.Item, colW float64) float64 {
	h := 0.0
	for _, it := range items {
		if cellH := m.measureCell(c, geo, it, colW); cellH > h {
			h = cellH
		}
	}
	return h
}

// DrawUnit implements Mode.
func (m *ThumbsMode) DrawUnit(c Canvas, geo Geometry, items []inventory.Item, x, y, colW float64) {
	for i, it := range items {
		m.drawCell(c, geo, it, x+float64(i)*(colW+geo.Gutter), y, colW)
	}
}

// thumb reports whether a thumbnail is available for the URL. Providers
// cache, so probing during measurement does not refetch at draw time.
func (m *ThumbsMode) thumb(url string) bool {
	if url == "" || m.Images == nil {
		return false
	}
	_, ok := m.Images(url)
	return ok
}

func (m *ThumbsMode) measureCell(c Canvas, geo Geometry, it inventory.Item, colW float64) float64 {
	textW := colW - 2*geo.CellPad
	h := geo.CellPad

	if m.thumb(it.ImageURL) {
		h += geo.ThumbSide + 4
	}

	titleLines := wrapText(c, itemTitleText(it), textW, Font{Style: FontRegular, Size: geo.BodySize})
	h += float64(len(titleLines)) * geo.BodyLine

	if it.Description != "" {
		descLines := wrapText(c, it.Description, textW, Font{Style: FontRegular, Size: geo.DescSize})
		h += float64(len(descLines)) * geo.DescLine
	}

	return h + geo.CellPad
}

func (m *ThumbsMode) drawCell(c Canvas, geo Geometry, it inventory.Item, x, y, colW float64) {
	textW := colW - 2*geo.CellPad
	cursor := y + geo.CellPad

	if it.ImageURL != "" && m.Images != nil {
		if img, ok := m.Images(it.ImageURL); ok {
			c.Image(img, x+geo.CellPad, cursor, geo.ThumbSide, geo.ThumbSide)
			cursor += geo.ThumbSide + 4
		}
	}

	body := Font{Style: FontRegular, Size: geo.BodySize}
	for _, line := range wrapText(c, itemTitleText(it), textW, body) {
		c.Text(x+geo.CellPad, cursor+geo.BodySize, line, body)
		cursor += geo.BodyLine
	}

	if it.Description != "" {
		desc := Font{Style: FontRegular, Size: geo.DescSize, Dim: true}
		for _, line := range wrapText(c, it.Description, textW, desc) {
			c.Text(x+geo.CellPad, cursor+geo.DescSize, line, desc)
			cursor += geo.DescLine
		}
	}
}

// =============================================================================
// Text Mode
// =============================================================================

// TextMode lays items out as compact two-row entries: the quantity-and-
// title line, then an optional de-emphasized description. Both rows are
// ellipsized to the column width instead of wrapping.
type TextMode struct{}

// Name implements Mode.
func (m *TextMode) Name() string { return ModeText }

// PerRow implements Mode: a single entry is the atomic unit.
func (m *TextMode) PerRow(geo Geometry) int { return 1 }

// MeasureUnit implements Mode.
func (m *TextMode) MeasureUnit(c Canvas, geo Geometry, items []inventory.Item, colW float64) float64 {
	h := 2*geo.CellPad + geo.BodyLine
	for _, it := range items {
		if it.Description != "" {
			h += geo.DescLine
			break
		}
	}
	return h
}

// DrawUnit implements Mode.
func (m *TextMode) DrawUnit(c Canvas, geo Geometry, items []inventory.Item, x, y, colW float64) {
	textW := colW - 2*geo.CellPad
	cursor := y + geo.CellPad

	for _, it := range items {
		body := Font{Style: FontRegular, Size: geo.BodySize}
		c.Text(x+geo.CellPad, cursor+geo.BodySize, ellipsize(c, itemTitleText(it), textW, body), body)
		cursor += geo.BodyLine

		if it.Description != "" {
			desc := Font{Style: FontRegular, Size: geo.DescSize, Dim: true}
			c.Text(x+geo.CellPad, cursor+geo.DescSize, ellipsize(c, it.Description, textW, desc), desc)
			cursor += geo.DescLine
		}
	}
}
