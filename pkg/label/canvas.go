// Package label composes tote labels into sections and flows them onto
// fixed-size pages.
//
// The package is the layout core of totelabel: Compose turns one root tote
// into an ordered section sequence (header, optional code, sub-tote summary,
// item content per node), and Flow lays those sections out top-to-bottom,
// breaking to continuation pages when an atomic unit no longer fits. Drawing
// goes through the Canvas interface so the same flow drives the PDF backend
// and an in-memory recorder in tests.
package label

import "image"

// FontStyle selects between the two type weights a label uses.
type FontStyle int

const (
	// FontRegular is the body weight.
	FontRegular FontStyle = iota
	// FontBold is used for titles, identifiers and section headers.
	FontBold
)

// Font bundles the text attributes for a single draw call. Dim text is
// rendered visually de-emphasized (gray) by the backend.
type Font struct {
	Style FontStyle
	Size  float64
	Dim   bool
}

// Canvas is the draw-primitive surface the flow engine writes to.
// Coordinates are points with the origin at the top-left corner of the
// page; y grows downward. Text y is the baseline.
type Canvas interface {
	// NewPage closes the current page, if any, and opens a fresh one.
	NewPage()

	// Text draws a single line at the given baseline position.
	Text(x, y float64, s string, f Font)

	// TextWidth measures a string in the given font.
	TextWidth(s string, f Font) float64

	// Image draws an image scaled into the given box. Implementations
	// should preserve aspect ratio within the box.
	Image(img image.Image, x, y, w, h float64)
}

// ImageProvider yields a renderable image for a reference (a QR payload or
// a thumbnail URL), or reports absence. Providers must degrade instead of
// failing: any problem is (nil, false), never an error.
type ImageProvider func(ref string) (image.Image, bool)
