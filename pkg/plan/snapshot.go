package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/quadplan/quadplan/pkg/geo"
	"github.com/quadplan/quadplan/pkg/quad"
)

var (
	ErrNoCorners   = errors.New("snapshot root has no corners")
	ErrBadChildren = errors.New("snapshot node needs zero or two children")
)

// Snapshot is the JSON form of a quad tree stack. The lowest root carries
// absolute corners and elevation; everything below derives, so only the
// structure travels: division ratios, rotations, types and the storey
// chain. Restore rebuilds an equivalent tree.
type Snapshot struct {
	Corners   *[4][2]float64 `json:"corners,omitempty"`
	Elevation *float64       `json:"elevation,omitempty"`
	Height    *float64       `json:"height,omitempty"`
	Rotation  int            `json:"rotation,omitempty"`
	Division  []float64      `json:"division,omitempty"`
	Type      string         `json:"type,omitempty"`
	Style     string         `json:"style,omitempty"`
	Children  []*Snapshot    `json:"children,omitempty"`
	Above     *Snapshot      `json:"above,omitempty"`
}

// Capture snapshots the whole stack this quad belongs to, starting at the
// lowest root.
func Capture(q *quad.Quad) *Snapshot {
	root := q.Root().Lowest()
	s := captureTree(root)

	var corners [4][2]float64
	rot := root.Rotation()
	for i := range corners {
		// Undo the rotation reindexing so the stored corner order
		// survives the round trip together with the rotation itself.
		c := root.Coordinate(i - rot)
		corners[i] = [2]float64{c.X, c.Y}
	}
	s.Corners = &corners
	elevation := root.Elevation()
	s.Elevation = &elevation

	cur := s
	for above := root.Above(); above != nil; above = above.Above() {
		cur.Above = captureTree(above)
		cur = cur.Above
	}
	return s
}

func captureTree(q *quad.Quad) *Snapshot {
	s := &Snapshot{
		Rotation: q.Rotation(),
		Type:     q.Type(),
		Style:    q.Style,
	}
	if q.Parent() == nil {
		h := q.Height()
		s.Height = &h
	}
	if q.Divided() {
		s.Division = append([]float64(nil), q.Division()...)
		s.Children = []*Snapshot{
			captureTree(q.Left()),
			captureTree(q.Right()),
		}
	}
	return s
}

// Restore rebuilds a quad tree stack from the snapshot and returns its
// lowest root.
func (s *Snapshot) Restore() (*quad.Quad, error) {
	if s.Corners == nil {
		return nil, ErrNoCorners
	}
	var corners [4]geo.Point
	for i, c := range s.Corners {
		corners[i] = geo.Point{X: c[0], Y: c[1]}
	}
	elevation := 0.0
	if s.Elevation != nil {
		elevation = *s.Elevation
	}
	height := quad.DefaultHeight
	if s.Height != nil {
		height = *s.Height
	}
	root := quad.NewRoot(corners, elevation, height)
	if err := s.restoreTree(root); err != nil {
		return nil, err
	}

	cur, level := s.Above, root
	for ; cur != nil; cur = cur.Above {
		level.AddAbove()
		level = level.Above()
		if cur.Height != nil {
			level.SetHeight(*cur.Height)
		}
		if err := cur.restoreTree(level); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func (s *Snapshot) restoreTree(q *quad.Quad) error {
	q.SetType(s.Type)
	q.Style = s.Style
	if s.Rotation != 0 {
		q.SetRotation(s.Rotation)
	}
	switch len(s.Children) {
	case 0:
		return nil
	case 2:
	default:
		return fmt.Errorf("%w, got %d", ErrBadChildren, len(s.Children))
	}
	if len(s.Division) != 2 {
		return fmt.Errorf("%w: division missing", ErrBadChildren)
	}
	q.Divide(s.Division)
	if err := s.Children[0].restoreTree(q.Left()); err != nil {
		return err
	}
	return s.Children[1].restoreTree(q.Right())
}

// WriteJSON writes the snapshot to w as indented JSON.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ReadJSON decodes a snapshot from r.
func ReadJSON(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
