// Package plan turns declarative floor-plan definitions into quad trees
// and back. A definition is a TOML document describing the plot outline
// and a sequence of subdivision operations; a snapshot is the JSON form of
// a built tree, suitable for storage and transport.
package plan

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/quadplan/quadplan/pkg/geo"
	"github.com/quadplan/quadplan/pkg/quad"
)

var (
	ErrNoOutline    = errors.New("definition has no outline corners")
	ErrBadOutline   = errors.New("outline needs exactly four corners")
	ErrUnknownQuad  = errors.New("no quad at address")
	ErrUnknownLevel = errors.New("no storey at level")
	ErrRedivide     = errors.New("quad is already divided")
	ErrBadRatio     = errors.New("division ratios must lie in (0,1)")
)

// Definition is a parsed plan file.
type Definition struct {
	Name    string  `toml:"name"`
	Outline Outline `toml:"outline"`
	Ops     []Op    `toml:"op"`
}

// Outline describes the plot: four corner points in anticlockwise order,
// the ground-floor elevation, a storey height and the number of storeys.
type Outline struct {
	Corners   [][2]float64 `toml:"corners"`
	Elevation float64      `toml:"elevation"`
	Height    float64      `toml:"height"`
	Storeys   int          `toml:"storeys"`
}

// Op is one subdivision step, addressed by quad path id and storey level.
// Rotation is applied before division so the division line follows the
// rotated edges.
type Op struct {
	Quad   string    `toml:"quad"`
	Level  int       `toml:"level"`
	Rotate int       `toml:"rotate"`
	Divide []float64 `toml:"divide"`
	Type   string    `toml:"type"`
	Style  string    `toml:"style"`
}

// Load reads and parses a plan definition from a TOML file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a plan definition from TOML bytes.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return &def, nil
}

// Build constructs the quad tree stack the definition describes and
// returns its lowest root. Operations apply in file order; the first
// failing operation aborts the build.
func (d *Definition) Build() (*quad.Quad, error) {
	if len(d.Outline.Corners) == 0 {
		return nil, ErrNoOutline
	}
	if len(d.Outline.Corners) != 4 {
		return nil, fmt.Errorf("%w, got %d", ErrBadOutline, len(d.Outline.Corners))
	}

	var corners [4]geo.Point
	for i, c := range d.Outline.Corners {
		corners[i] = geo.Point{X: c[0], Y: c[1]}
	}
	height := d.Outline.Height
	if height == 0 {
		height = quad.DefaultHeight
	}
	root := quad.NewRoot(corners, d.Outline.Elevation, height)
	for s := 1; s < d.Outline.Storeys; s++ {
		root.Highest().AddAbove()
	}

	for i, op := range d.Ops {
		if err := apply(root, op); err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, op.Quad, err)
		}
	}
	return root, nil
}

func apply(root *quad.Quad, op Op) error {
	storey := root.ByLevel(op.Level)
	if storey == nil {
		return fmt.Errorf("%w %d", ErrUnknownLevel, op.Level)
	}
	q := storey
	if op.Quad != "" {
		if q = storey.ByID(op.Quad); q == nil {
			return fmt.Errorf("%w %q", ErrUnknownQuad, op.Quad)
		}
	}

	for r := op.Rotate; r > 0; r-- {
		q.Rotate()
	}
	for r := op.Rotate; r < 0; r++ {
		q.Unrotate()
	}
	if len(op.Divide) > 0 {
		if len(op.Divide) != 2 {
			return fmt.Errorf("%w: got %d ratios", ErrBadRatio, len(op.Divide))
		}
		for _, t := range op.Divide {
			if !(t > 0 && t < 1) {
				return fmt.Errorf("%w: %g", ErrBadRatio, t)
			}
		}
		if q.Divided() {
			return ErrRedivide
		}
		if !q.Divide(op.Divide) {
			return ErrRedivide
		}
	}
	if op.Type != "" {
		q.SetType(op.Type)
	}
	if op.Style != "" {
		q.Style = op.Style
	}
	return nil
}
