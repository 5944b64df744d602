// Package pdfsink renders the label flow into a PDF document using
// jung-kurt/gofpdf. A Document implements label.Canvas, collects every
// page drawn through it, and serializes the finished document in one
// shot, so a failed run never leaves a partial file behind.
package pdfsink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/matzehuels/totelabel/pkg/errors"
	"github.com/matzehuels/totelabel/pkg/label"
)

const fontFamily = "Helvetica"

// Document is a PDF-backed label.Canvas.
type Document struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	names     map[image.Image]string
	nextImage int
}

// New creates an empty document with the given page geometry. No page
// exists until the first NewPage call.
func New(geo label.Geometry) *Document {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: geo.PageWidth, Ht: geo.PageHeight},
	})
	// The flow engine owns pagination.
	pdf.SetAutoPageBreak(false, 0)
	return &Document{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
		names:     make(map[image.Image]string),
	}
}

// NewPage starts a fresh page.
func (d *Document) NewPage() {
	d.pdf.AddPage()
}

// Text draws a single line with its baseline at y.
func (d *Document) Text(x, y float64, s string, f label.Font) {
	d.applyFont(f)
	if f.Dim {
		d.pdf.SetTextColor(110, 110, 110)
	} else {
		d.pdf.SetTextColor(0, 0, 0)
	}
	d.pdf.Text(x, y, d.translate(s))
}

// TextWidth measures a string in the given font.
func (d *Document) TextWidth(s string, f label.Font) float64 {
	d.applyFont(f)
	return d.pdf.GetStringWidth(d.translate(s))
}

// Image draws an image scaled to fit the box while preserving its aspect
// ratio. Identical image values are embedded once and referenced from
// every placement.
func (d *Document) Image(img image.Image, x, y, w, h float64) {
	name, ok := d.names[img]
	if !ok {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return
		}
		d.nextImage++
		name = fmt.Sprintf("img%d", d.nextImage)
		d.pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, &buf)
		d.names[img] = name
	}

	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	if iw <= 0 || ih <= 0 {
		return
	}
	scale := w / iw
	if s := h / ih; s < scale {
		scale = s
	}
	dw, dh := iw*scale, ih*scale
	// Center within the box.
	d.pdf.ImageOptions(name, x+(w-dw)/2, y+(h-dh)/2, dw, dh, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

func (d *Document) applyFont(f label.Font) {
	style := ""
	if f.Style == label.FontBold {
		style = "B"
	}
	d.pdf.SetFont(fontFamily, style, f.Size)
}

// PageCount returns the number of pages drawn so far.
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

// Bytes serializes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "failed to serialize PDF")
	}
	return buf.Bytes(), nil
}

// WriteFile serializes the document and writes it to path, creating
// parent directories as needed. The file is written only after the whole
// document serialized successfully.
func (d *Document) WriteFile(path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to create output directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to write %s", path)
	}
	return nil
}
