// Package pipeline provides the core label generation pipeline for totelabel.
//
// This package implements the complete read → build → render pipeline so the
// CLI (and any future entry point) shares one code path and one set of
// defaults.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Read: Parse exported inventory CSV files into normalized records
//  2. Build: Assemble records into a tote forest (attributes, items, parents)
//  3. Render: Flow one label per root tote into a PDF document per mode
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Inputs: []string{"data/totes.csv"},
//	    Output: "output/labels.pdf",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, out := range result.Outputs {
//	    fmt.Println(out.Path)
//	}
package pipeline

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/totelabel/pkg/config"
	"github.com/matzehuels/totelabel/pkg/errors"
	"github.com/matzehuels/totelabel/pkg/label"
)

// Defaults shared by every entry point.
const (
	// DefaultOutput is the output path when none is given.
	DefaultOutput = "output/labels.pdf"

	// DefaultPage is the page size preset.
	DefaultPage = label.PageLetter

	// qrScale and thumbScale oversample raster artwork relative to its
	// placed size in points so it stays sharp in print.
	qrScale    = 4
	thumbScale = 4
)

// DefaultModes is the mode set used when none is requested.
var DefaultModes = []string{label.ModeThumbs, label.ModeText}

// ValidModes is the set of supported render modes.
var ValidModes = map[string]bool{
	label.ModeThumbs: true,
	label.ModeText:   true,
}

// ValidPages is the set of supported page size presets.
var ValidPages = map[string]bool{
	label.PageLetter: true,
	label.PageA4:     true,
}

// Options contains all configuration for the label pipeline.
type Options struct {
	// Read options
	Inputs []string `json:"inputs"`

	// Render options
	Output   string   `json:"output,omitempty"`
	Page     string   `json:"page,omitempty"`
	Modes    []string `json:"modes,omitempty"`
	NoThumbs bool     `json:"no_thumbs,omitempty"`
	NoQR     bool     `json:"no_qr,omitempty"`

	// Layout carries optional geometry overrides from a config file.
	Layout *config.Layout `json:"layout,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// Outputs lists the documents written, one per mode.
	Outputs []Output

	// Stats contains counts and timing information.
	Stats Stats
}

// Output describes one written document.
type Output struct {
	Mode  string
	Path  string
	Pages int
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	Totes      int
	Roots      int
	Labels     int
	Items      int
	ReadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// ValidateMode checks that a render mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidMode,
			"invalid mode: %s (must be 'thumbs' or 'text')", mode)
	}
	return nil
}

// ValidatePage checks that a page preset is valid.
func ValidatePage(page string) error {
	if !ValidPages[page] {
		return errors.New(errors.ErrCodeInvalidPage,
			"invalid page size: %s (must be 'letter' or 'a4')", page)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Inputs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one input file is required")
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Page == "" {
		o.Page = DefaultPage
	}
	if err := ValidatePage(o.Page); err != nil {
		return err
	}
	if len(o.Modes) == 0 {
		o.Modes = append([]string(nil), DefaultModes...)
	}
	for _, m := range o.Modes {
		if err := ValidateMode(m); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Geometry resolves the page preset plus any layout overrides.
func (o *Options) Geometry() (label.Geometry, error) {
	geo, err := label.Preset(o.Page)
	if err != nil {
		return label.Geometry{}, errors.Wrap(errors.ErrCodeInvalidPage, err, "invalid page size")
	}
	if o.Layout != nil {
		geo = o.Layout.Apply(geo)
	}
	return geo, nil
}

// OutputPath returns the output path for one mode. With a single mode
// the requested path is used as-is; with several, each document gets a
// mode suffix before the extension so one run can write both variants.
func (o *Options) OutputPath(mode string) string {
	if len(o.Modes) == 1 {
		return o.Output
	}
	ext := filepath.Ext(o.Output)
	base := strings.TrimSuffix(o.Output, ext)
	if ext == "" {
		ext = ".pdf"
	}
	return base + "_" + mode + ext
}
