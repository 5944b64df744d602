// Package assets provides the optional image collaborators for label
// rendering: QR code generation and item thumbnail fetching.
//
// Both collaborators share one contract: they yield an image or report
// absence, never an error. A missing or failing collaborator degrades the
// label (the visual element is omitted) instead of aborting the run.
package assets

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// NewQR returns a provider that renders a payload string as a QR code
// image of the given pixel size. Any encoding failure (for example a
// payload too large for the symbol) yields absence.
func NewQR(sizePx int) func(payload string) (image.Image, bool) {
	return func(payload string) (image.Image, bool) {
		if payload == "" {
			return nil, false
		}
		q, err := qrcode.New(payload, qrcode.Medium)
		if err != nil {
			return nil, false
		}
		return q.Image(sizePx), true
	}
}

// NoImage is a provider that always reports absence. Used when code or
// thumbnail generation is disabled.
func NoImage(string) (image.Image, bool) {
	return nil, false
}
