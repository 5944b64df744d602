package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/totelabel/pkg/config"
	"github.com/matzehuels/totelabel/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	input      string // input CSV file, directory, or glob pattern
	output     string // output PDF path (mode suffix added when both modes render)
	page       string // page size preset: "letter" or "a4"
	modes      string // render modes: "thumbs", "text", "both" (comma-separated also accepted)
	configPath string // optional TOML layout override file
	noThumbs   bool   // skip thumbnail fetching (thumbs mode falls back to text-only cells)
	noQR       bool   // skip QR code rendering
	noCache    bool   // disable the thumbnail file cache
}

// generateCommand creates the generate command, the main entry point of the tool.
//
// Default settings:
//   - input: ./data (all *.csv files inside)
//   - output: output/labels.pdf
//   - page: letter
//   - modes: both (writes labels_thumbs.pdf and labels_text.pdf)
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		input:  "data",
		output: pipeline.DefaultOutput,
		page:   pipeline.DefaultPage,
		modes:  "both",
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate printable tote labels from inventory CSV exports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", opts.input, "input CSV file, directory, or glob pattern")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output PDF path")
	cmd.Flags().StringVar(&opts.page, "page", opts.page, "page size: letter (default), a4")
	cmd.Flags().StringVarP(&opts.modes, "mode", "m", opts.modes, "render mode(s): both (default), thumbs, text")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML file with layout overrides")
	cmd.Flags().BoolVar(&opts.noThumbs, "no-thumbs", false, "skip item photo thumbnails")
	cmd.Flags().BoolVar(&opts.noQR, "no-qr", false, "skip QR codes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the thumbnail cache")

	return cmd
}

// runGenerate resolves inputs and flags into pipeline options and executes the run.
func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts) error {
	inputs, err := collectInputs(opts.input)
	if err != nil {
		return err
	}
	c.Logger.Debug("Collected inputs", "files", len(inputs))

	pOpts := pipeline.Options{
		Inputs:   inputs,
		Output:   opts.output,
		Page:     opts.page,
		Modes:    parseModes(opts.modes),
		NoThumbs: opts.noThumbs,
		NoQR:     opts.noQR,
		Logger:   c.Logger,
	}

	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		pOpts.Layout = &cfg.Layout
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	verbose := c.Logger.GetLevel() <= LogDebug
	var spin *Spinner
	if !verbose {
		spin = newSpinnerWithContext(ctx, "Generating labels...")
		spin.Start()
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, pOpts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d document(s)", len(result.Outputs)))

	pages := 0
	for _, out := range result.Outputs {
		pages += out.Pages
	}

	printSuccess("Labels generated")
	printStats(result.Stats.Totes, result.Stats.Labels, result.Stats.Items, pages)
	for _, out := range result.Outputs {
		printFile(out.Path)
	}
	if result.Stats.Labels < result.Stats.Totes {
		printDetail("%d sub-tote(s) are summarized on their parent labels", result.Stats.Totes-result.Stats.Labels)
	}
	return nil
}

// parseModes parses the --mode flag into a slice of render modes.
// "both" (or empty) selects every mode; otherwise the value is a
// comma-separated mode list. Validation happens in the pipeline.
func parseModes(s string) []string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "both" {
		return append([]string(nil), pipeline.DefaultModes...)
	}
	var modes []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			modes = append(modes, m)
		}
	}
	return modes
}
