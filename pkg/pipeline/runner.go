package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/quadplan/quadplan/pkg/cache"
	"github.com/quadplan/quadplan/pkg/observability"
	"github.com/quadplan/quadplan/pkg/plan"
	"github.com/quadplan/quadplan/pkg/quad"
	"github.com/quadplan/quadplan/pkg/render"
)

// ArtifactTTL is how long rendered artifacts stay cached. Keys are
// content-addressed, so the TTL only bounds cache growth.
const ArtifactTTL = 24 * time.Hour

// Runner executes the pipeline with artifact caching. It is stateless
// apart from the cache and logger; one Runner serves many concurrent
// requests as long as each request builds its own tree.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil logger
// falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute builds the tree a definition describes and renders it.
func (r *Runner) Execute(ctx context.Context, def *plan.Definition, opts Options) (*Result, error) {
	observability.Pipeline().OnBuildStart(ctx, def.Name)
	start := time.Now()
	root, err := def.Build()
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, def.Name, 0, time.Since(start), err)
		return nil, fmt.Errorf("build plan: %w", err)
	}
	observability.Pipeline().OnBuildComplete(ctx, def.Name, len(root.Leafs()), time.Since(start), nil)
	return r.Run(ctx, root, opts)
}

// ExecuteSnapshot restores a stored snapshot and renders it.
func (r *Runner) ExecuteSnapshot(ctx context.Context, s *plan.Snapshot, opts Options) (*Result, error) {
	root, err := s.Restore()
	if err != nil {
		return nil, fmt.Errorf("restore snapshot: %w", err)
	}
	return r.Run(ctx, root, opts)
}

// Run derives the adjacency graph of one storey and renders the requested
// artifacts, consulting the cache per format.
func (r *Runner) Run(ctx context.Context, root *quad.Quad, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	snap := plan.Capture(root)
	raw, err := encodeJSON(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	storey := root.ByLevel(opts.Level)
	if storey == nil {
		return nil, fmt.Errorf("%w %d", ErrBadLevel, opts.Level)
	}

	start := time.Now()
	g := storey.Graph(opts.Threshold)
	result := &Result{
		Root:         root.Lowest(),
		SnapshotHash: cache.Hash(raw),
		Artifacts:    make(map[string][]byte, len(opts.Formats)),
		CacheHits:    make(map[string]bool, len(opts.Formats)),
		Stats: Stats{
			Storeys:  len(root.LevelsAbove()) + 1,
			Rooms:    g.NodeCount(),
			Doorways: g.EdgeCount(),
		},
	}
	r.Logger.Info("derived adjacency graph",
		"level", opts.Level,
		"rooms", result.Stats.Rooms,
		"doorways", result.Stats.Doorways,
		"duration", time.Since(start))

	dot := render.ToDOT(g, render.Options{Detailed: opts.Detailed})
	scopedHash := fmt.Sprintf("%s:%d", result.SnapshotHash, opts.Level)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()

	for _, format := range opts.Formats {
		key := cache.ArtifactKey(scopedHash, format, opts.Threshold, opts.Detailed)
		if data, found, err := r.Cache.Get(ctx, key); err == nil && found {
			observability.Cache().OnCacheHit(ctx, "artifact")
			result.Artifacts[format] = data
			result.CacheHits[format] = true
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")

		start := time.Now()
		var data []byte
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			var buf bytes.Buffer
			if err := plan.WriteGraphJSON(g, &buf); err != nil {
				observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
				return nil, err
			}
			data = buf.Bytes()
		case FormatSVG:
			if data, err = render.RenderSVG(ctx, dot); err != nil {
				observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
				return nil, fmt.Errorf("render svg: %w", err)
			}
		case FormatPNG:
			if data, err = render.RenderPNG(ctx, dot); err != nil {
				observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
				return nil, fmt.Errorf("render png: %w", err)
			}
		}
		result.Artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, ArtifactTTL); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
		r.Logger.Info("rendered artifact",
			"format", format,
			"bytes", len(data),
			"duration", time.Since(start))
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), nil)
	return result, nil
}
