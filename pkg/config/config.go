// Package config loads optional layout overrides from a TOML file.
//
// The compiled-in geometry is the default; a config file only needs to
// name the values it wants to change. Zero and negative values are
// rejected rather than silently producing degenerate pages.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/totelabel/pkg/errors"
	"github.com/matzehuels/totelabel/pkg/label"
)

// Layout mirrors the tunable subset of label.Geometry. Pointer fields
// distinguish "not set" from an explicit value.
type Layout struct {
	Margin     *float64 `toml:"margin"`
	Gutter     *float64 `toml:"gutter"`
	RowGap     *float64 `toml:"row_gap"`
	QRSide     *float64 `toml:"qr_side"`
	ThumbSide  *float64 `toml:"thumb_side"`
	ThumbCols  *int     `toml:"thumb_cols"`
	TitleSize  *float64 `toml:"title_size"`
	BodySize   *float64 `toml:"body_size"`
	DescSize   *float64 `toml:"desc_size"`
	SectionGap *float64 `toml:"section_gap"`
}

// File is the top-level config document.
type File struct {
	Layout Layout `toml:"layout"`
}

// Load reads a config file and returns its parsed form.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to read config file %s", path)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse config file %s", path)
	}
	if err := f.Layout.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (l Layout) validate() error {
	checks := []struct {
		name string
		val  *float64
	}{
		{"margin", l.Margin},
		{"gutter", l.Gutter},
		{"row_gap", l.RowGap},
		{"qr_side", l.QRSide},
		{"thumb_side", l.ThumbSide},
		{"title_size", l.TitleSize},
		{"body_size", l.BodySize},
		{"desc_size", l.DescSize},
		{"section_gap", l.SectionGap},
	}
	for _, c := range checks {
		if c.val != nil && *c.val <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "layout.%s must be positive", c.name)
		}
	}
	if l.ThumbCols != nil && *l.ThumbCols < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "layout.thumb_cols must be at least 1")
	}
	return nil
}

// Apply overlays the set fields onto a geometry and returns the result.
func (l Layout) Apply(geo label.Geometry) label.Geometry {
	if l.Margin != nil {
		geo.Margin = *l.Margin
	}
	if l.Gutter != nil {
		geo.Gutter = *l.Gutter
	}
	if l.RowGap != nil {
		geo.RowGap = *l.RowGap
	}
	if l.QRSide != nil {
		geo.QRSide = *l.QRSide
	}
	if l.ThumbSide != nil {
		geo.ThumbSide = *l.ThumbSide
	}
	if l.ThumbCols != nil {
		geo.ThumbCols = *l.ThumbCols
	}
	if l.TitleSize != nil {
		geo.TitleSize = *l.TitleSize
	}
	if l.BodySize != nil {
		geo.BodySize = *l.BodySize
	}
	if l.DescSize != nil {
		geo.DescSize = *l.DescSize
	}
	if l.SectionGap != nil {
		geo.SectionGap = *l.SectionGap
	}
	return geo
}
