package label

import (
	"fmt"
	"image"

	"github.com/matzehuels/totelabel/pkg/inventory"
)

// flowState tracks where the engine is in a label's page sequence.
type flowState int

const (
	stateNewPage flowState = iota
	stateInProgress
	stateClosed
)

// Flow lays one label's sections onto pages top-to-bottom. It keeps a
// vertical cursor, checks every atomic unit against the remaining space,
// and opens continuation pages when a unit no longer fits. A unit taller
// than the whole content area is placed on its own page rather than
// looping.
//
// A Flow is reusable: RenderLabel resets all per-label state.
type Flow struct {
	canvas Canvas
	geo    Geometry
	mode   Mode
	qr     ImageProvider

	forest *inventory.Forest
	root   *inventory.Tote

	state      flowState
	y          float64
	contentTop float64
	pages      int
	first      bool // still on the label's first page

	// current is the node a continuation header names: the root for the
	// leading sections, the specific child while its items flow.
	current *inventory.Tote

	qrImage  image.Image
	qrBottom float64 // reserved height of the QR area on page one, 0 when absent
}

// NewFlow creates a flow engine writing to the given canvas. The qr
// provider may be nil, in which case code sections are silently omitted.
func NewFlow(c Canvas, geo Geometry, mode Mode, qr ImageProvider) *Flow {
	return &Flow{canvas: c, geo: geo, mode: mode, qr: qr}
}

// RenderLabel flows one root label and returns the number of pages
// emitted. The final page is handed over even when only partially filled.
func (f *Flow) RenderLabel(forest *inventory.Forest, root *inventory.Tote) int {
	f.forest, f.root = forest, root
	f.state = stateNewPage
	f.pages = 0
	f.first = true
	f.current = root
	f.qrImage = nil
	f.qrBottom = 0

	sections := Compose(forest, root)

	// Resolve the code image before anything is drawn so the header can
	// reserve the QR area on page one. An unavailable provider leaves
	// the full width to the text, shifting nothing else.
	for _, s := range sections {
		if s.Kind == SectionCode && f.qr != nil {
			if img, ok := f.qr(root.QRData); ok {
				f.qrImage = img
				f.qrBottom = f.geo.Margin + f.geo.QRSide
			}
		}
	}

	f.openPage(false)
	for _, s := range sections {
		switch s.Kind {
		case SectionHeader:
			f.drawHeader(s.Tote)
		case SectionCode:
			f.drawCode()
		case SectionSubtotes:
			f.drawSubtotes(s.Tote)
		case SectionItems:
			f.drawItems(s)
		}
	}
	f.state = stateClosed
	return f.pages
}

// openPage starts a fresh page and draws its boilerplate: nothing for a
// label's first page, the continuation header for every page after it.
func (f *Flow) openPage(cont bool) {
	f.canvas.NewPage()
	f.pages++
	f.state = stateNewPage
	f.y = f.geo.Margin

	if cont {
		font := Font{Style: FontBold, Size: f.geo.ContSize}
		f.canvas.Text(f.geo.Margin, f.y+f.geo.ContSize, contTitle(f.current), font)
		f.y += f.geo.ContLine
	}

	f.contentTop = f.y
	f.state = stateInProgress
}

// contTitle formats the continuation header for a node.
func contTitle(t *inventory.Tote) string {
	if t.Title != "" {
		return fmt.Sprintf("%s — %s (cont.)", t.ID, t.Title)
	}
	return fmt.Sprintf("%s (cont.)", t.ID)
}

// ensure guarantees h points of vertical space, breaking to a
// continuation page when needed. At the top of a fresh page the unit is
// placed regardless of its height — the oversized-unit policy.
func (f *Flow) ensure(h float64) {
	if f.y+h <= f.geo.Bottom() {
		return
	}
	if f.y <= f.contentTop {
		return
	}
	f.first = false
	f.openPage(true)
}

// availWidth returns the usable row width at the current cursor: the full
// content width, minus the QR reservation while above it on page one.
func (f *Flow) availWidth() float64 {
	if f.first && f.qrBottom > 0 && f.y < f.qrBottom {
		return f.geo.ContentWidth() - (f.geo.QRSide + f.geo.QRGap)
	}
	return f.geo.ContentWidth()
}

// colWidth splits the available row width into per columns.
func (f *Flow) colWidth(per int) float64 {
	return (f.availWidth() - f.geo.Gutter*float64(per-1)) / float64(per)
}

// drawHeader renders the tote title, identifier and location. It is only
// ever drawn at the top of the label's first page.
func (f *Flow) drawHeader(t *inventory.Tote) {
	geo := f.geo
	avail := f.availWidth()

	title := t.Title
	if title == "" {
		title = "(Untitled tote)"
	}
	titleFont := Font{Style: FontBold, Size: geo.TitleSize}
	for _, line := range wrapText(f.canvas, title, avail, titleFont) {
		f.canvas.Text(geo.Margin, f.y+geo.TitleSize, line, titleFont)
		f.y += geo.TitleLine
	}

	idFont := Font{Style: FontBold, Size: geo.IDSize}
	for _, line := range wrapText(f.canvas, "Tote: "+t.ID, avail, idFont) {
		f.canvas.Text(geo.Margin, f.y+geo.IDSize, line, idFont)
		f.y += geo.IDLine
	}

	if t.Location != "" {
		locFont := Font{Style: FontRegular, Size: geo.LocationSize, Dim: true}
		for _, line := range wrapText(f.canvas, "Location: "+t.Location, avail, locFont) {
			f.canvas.Text(geo.Margin, f.y+geo.LocationSize, line, locFont)
			f.y += geo.LocLine
		}
		f.y += 2
	} else {
		f.y += 8
	}

	f.y += 12
}

// drawCode places the resolved code image in the top-right corner of the
// current page. With no image resolved this is a no-op, and the layout
// around it is unchanged beyond the released width reservation.
func (f *Flow) drawCode() {
	if f.qrImage == nil {
		return
	}
	geo := f.geo
	f.canvas.Image(f.qrImage, geo.PageWidth-geo.Margin-geo.QRSide, geo.Margin, geo.QRSide, geo.QRSide)
}

// drawSubtotes renders the bulleted summary of direct children. The whole
// section is one atomic unit for overflow purposes.
func (f *Flow) drawSubtotes(t *inventory.Tote) {
	geo := f.geo
	avail := f.availWidth()
	bodyFont := Font{Style: FontRegular, Size: geo.BodySize}

	// Measure heading plus every wrapped bullet line.
	h := geo.SectionLine
	bullets := make([][]string, 0, len(t.Children))
	for _, childID := range t.Children {
		bullets = append(bullets, wrapText(f.canvas, f.bulletText(childID), avail-12, bodyFont))
	}
	for _, lines := range bullets {
		h += float64(len(lines)) * geo.BulletLine
	}
	f.ensure(h)

	headFont := Font{Style: FontBold, Size: geo.SectionSize}
	f.canvas.Text(geo.Margin, f.y+geo.SectionSize, "Sub totes:", headFont)
	f.y += geo.SectionLine

	for _, lines := range bullets {
		for _, line := range lines {
			f.canvas.Text(geo.Margin+12, f.y+geo.BodySize, line, bodyFont)
			f.y += geo.BulletLine
		}
	}

	f.y += geo.SectionGap
}

func (f *Flow) bulletText(childID string) string {
	line := "• " + childID
	if child, ok := f.forest.Get(childID); ok && child.Title != "" {
		line += " — " + child.Title
	}
	return line
}

// drawItems renders one node's item list: the root's own items under an
// "Items:" heading, a child's under its named sub-header. The mode
// decides what one atomic unit is and how tall it runs.
func (f *Flow) drawItems(s Section) {
	geo := f.geo
	t := s.Tote
	f.current = t

	headFont := Font{Style: FontBold, Size: geo.SectionSize}
	if s.Child {
		f.ensure(geo.SectionGap + geo.SectionLine)
		if f.y > f.contentTop {
			f.y += geo.SectionGap
		}
		head := "Sub tote: " + t.ID
		if t.Title != "" {
			head += " — " + t.Title
		}
		f.canvas.Text(geo.Margin, f.y+geo.SectionSize, head, headFont)
	} else {
		f.ensure(geo.SectionLine)
		f.canvas.Text(geo.Margin, f.y+geo.SectionSize, "Items:", headFont)
	}
	f.y += geo.SectionLine

	if len(t.Items) == 0 {
		f.ensure(geo.LocLine)
		body := Font{Style: FontRegular, Size: geo.BodySize}
		f.canvas.Text(geo.Margin+12, f.y+geo.BodySize, "(No items recorded)", body)
		f.y += geo.LocLine
		return
	}

	per := f.mode.PerRow(geo)
	for i := 0; i < len(t.Items); i += per {
		end := i + per
		if end > len(t.Items) {
			end = len(t.Items)
		}
		chunk := t.Items[i:end]

		colW := f.colWidth(per)
		h := f.mode.MeasureUnit(f.canvas, geo, chunk, colW)
		f.ensure(h)

		// A page break restores the full row width; remeasure so the
		// unit is drawn with the geometry it will actually occupy.
		if w := f.colWidth(per); w != colW {
			colW = w
			h = f.mode.MeasureUnit(f.canvas, geo, chunk, colW)
		}

		f.mode.DrawUnit(f.canvas, geo, chunk, geo.Margin, f.y, colW)
		f.y += h + geo.RowGap
	}
}
