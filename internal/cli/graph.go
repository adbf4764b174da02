package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quadplan/quadplan/pkg/pipeline"
	"github.com/quadplan/quadplan/pkg/plan"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output    string   // output base path (format extensions are appended)
	formats   []string // output formats: "dot", "json", "svg", "png"
	level     int      // storey to derive the graph for
	threshold float64  // minimum shared wall length for an edge
	detailed  bool     // show room type and area in rendered nodes
	noCache   bool     // bypass the artifact cache
}

// newGraphCmd creates the graph command. It builds a plan from its TOML
// definition and writes the adjacency graph of one storey in the requested
// formats.
func newGraphCmd() *cobra.Command {
	var formatsStr string
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [plan.toml]",
		Short: "Derive the room adjacency graph of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runGraph(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: plan file without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json, png (comma-separated)")
	cmd.Flags().IntVarP(&opts.level, "level", "l", 0, "storey to analyse (0 = ground)")
	cmd.Flags().Float64VarP(&opts.threshold, "threshold", "t", pipeline.DefaultThreshold, "minimum shared wall length for adjacency")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with room type and area")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func runGraph(cmd *cobra.Command, path string, opts *graphOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	def, err := plan.Load(path)
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	c, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer c.Close()

	runner := pipeline.NewRunner(c, logger)

	spin := newSpinner(ctx, "Deriving adjacency graph...")
	spin.start()
	res, err := runner.Execute(ctx, def, pipeline.Options{
		Threshold: opts.threshold,
		Level:     opts.level,
		Formats:   opts.formats,
		Detailed:  opts.detailed,
	})
	spin.stop()
	if err != nil {
		return err
	}

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	}

	name := def.Name
	if name == "" {
		name = filepath.Base(base)
	}
	printSuccess("Derived adjacency graph for %s (storey %d)", StyleHighlight.Render(name), opts.level)
	printStats(res.Stats.Rooms, res.Stats.Doorways, anyHit(res.CacheHits))

	for _, format := range opts.formats {
		out := base + "." + format
		if err := os.WriteFile(out, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}

	prog.done(fmt.Sprintf("Wrote %d artifact(s)", len(opts.formats)))
	return nil
}

func anyHit(hits map[string]bool) bool {
	for _, hit := range hits {
		if hit {
			return true
		}
	}
	return false
}
