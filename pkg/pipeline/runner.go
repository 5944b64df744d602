package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/totelabel/pkg/assets"
	"github.com/matzehuels/totelabel/pkg/cache"
	"github.com/matzehuels/totelabel/pkg/errors"
	"github.com/matzehuels/totelabel/pkg/inventory"
	"github.com/matzehuels/totelabel/pkg/label"
	"github.com/matzehuels/totelabel/pkg/pdfsink"
)

// Runner encapsulates pipeline execution.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (thumbnail caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute runs the complete read → build → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{RunID: uuid.NewString()}
	r.Logger.Info("starting run",
		"run", result.RunID,
		"inputs", len(opts.Inputs))

	// Stage 1: Read
	readStart := time.Now()
	records, err := inventory.ReadFiles(opts.Inputs, opts.Logger)
	if err != nil {
		return nil, err
	}
	result.Stats.Records = len(records)
	result.Stats.ReadTime = time.Since(readStart)

	r.Logger.Info("read inventory",
		"files", len(opts.Inputs),
		"records", len(records),
		"duration", result.Stats.ReadTime)

	// Stage 2: Build
	buildStart := time.Now()
	forest := inventory.Build(records, opts.Logger)
	if forest.Len() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "no totes found in input data")
	}
	result.Stats.Totes = forest.Len()
	result.Stats.Roots = len(forest.Roots())
	result.Stats.Labels = len(forest.LabelRoots())
	result.Stats.Items = forest.ItemCount()
	result.Stats.BuildTime = time.Since(buildStart)

	r.Logger.Info("built tote forest",
		"totes", result.Stats.Totes,
		"roots", result.Stats.Roots,
		"labels", result.Stats.Labels,
		"items", result.Stats.Items,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	geo, err := opts.Geometry()
	if err != nil {
		return nil, err
	}

	qr := label.ImageProvider(assets.NoImage)
	if !opts.NoQR {
		qr = assets.NewQR(int(geo.QRSide) * qrScale)
	}

	for _, name := range opts.Modes {
		out, err := r.renderMode(ctx, name, geo, qr, forest, opts)
		if err != nil {
			return nil, err
		}
		result.Outputs = append(result.Outputs, out)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered labels",
		"modes", opts.Modes,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderMode flows every label-root tote's label into one document and
// writes it. Nested totes with children of their own get a label too, so
// items below the direct-child expansion depth still land on a page.
func (r *Runner) renderMode(ctx context.Context, name string, geo label.Geometry, qr label.ImageProvider, forest *inventory.Forest, opts Options) (Output, error) {
	images := label.ImageProvider(assets.NoImage)
	if name == label.ModeThumbs && !opts.NoThumbs {
		thumbs := assets.NewThumbs(ctx, r.Cache, int(geo.ThumbSide)*thumbScale, opts.Logger)
		images = thumbs.Provide
	}

	mode, err := label.NewMode(name, images)
	if err != nil {
		return Output{}, err
	}

	doc := pdfsink.New(geo)
	flow := label.NewFlow(doc, geo, mode, qr)

	for _, root := range forest.LabelRoots() {
		if err := ctx.Err(); err != nil {
			return Output{}, err
		}
		pages := flow.RenderLabel(forest, root)
		r.Logger.Debug("rendered label",
			"mode", name, "tote", root.ID, "pages", pages)
	}

	path := opts.OutputPath(name)
	if err := doc.WriteFile(path); err != nil {
		return Output{}, err
	}

	return Output{Mode: name, Path: path, Pages: doc.PageCount()}, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
