// Package pipeline runs the complete plan → tree → graph → artifact
// pipeline shared by the CLI and the HTTP server. Centralizing it keeps
// both entry points rendering identical output from identical input, and
// gives them a single place for artifact caching.
package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quadplan/quadplan/pkg/quad"
)

// Output formats.
const (
	FormatDOT  = "dot"
	FormatJSON = "json"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatJSON: true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// DefaultThreshold is the minimum shared-wall width, in plan units, for
// two rooms to count as adjacent. Narrower overlaps cannot fit a doorway.
const DefaultThreshold = 1.0

var (
	ErrBadFormat = errors.New("unsupported output format")
	ErrBadLevel  = errors.New("no storey at level")
)

// Options configures one pipeline run. The zero value renders the ground
// storey as SVG with the default doorway threshold.
type Options struct {
	// Threshold is the minimum shared-wall width for an adjacency edge.
	// Zero means DefaultThreshold.
	Threshold float64 `json:"threshold,omitempty"`

	// Level selects the storey whose adjacency graph is built.
	Level int `json:"level,omitempty"`

	// Formats lists the artifacts to produce. Empty means svg.
	Formats []string `json:"formats,omitempty"`

	// Detailed includes room types and areas in rendered labels.
	Detailed bool `json:"detailed,omitempty"`
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Threshold < 0 {
		return fmt.Errorf("threshold %g must not be negative", o.Threshold)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return fmt.Errorf("%w: %q", ErrBadFormat, f)
		}
	}
	return nil
}

// Stats records how much work one run did.
type Stats struct {
	Storeys  int `json:"storeys"`
	Rooms    int `json:"rooms"`
	Doorways int `json:"doorways"`
}

// Result is the output of one pipeline run.
type Result struct {
	// Root is the lowest root of the built tree stack.
	Root *quad.Quad

	// SnapshotHash identifies the plan content; artifact cache keys
	// derive from it.
	SnapshotHash string

	// Artifacts maps format name to rendered bytes.
	Artifacts map[string][]byte

	// CacheHits maps format name to whether the artifact came from
	// cache.
	CacheHits map[string]bool

	Stats Stats
}

// encodeJSON marshals v the same way everywhere, so hashes are stable.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
