package quad

// Vertical stacking. Roots of independently-built trees link into a chain
// of storeys through above/below references. The links live only on roots;
// a non-root quad resolves its counterpart on an adjacent storey by looking
// up its own path address in the neighbouring tree. The links are kept
// mutually consistent: q.Above().Below() == q whenever q.Above() exists.

// Above returns the quad directly above this one, or nil. For a root this
// is the root of the storey above; for any other quad it is the quad at
// the same path address in the tree above, when that tree is divided
// deeply enough to contain one.
func (q *Quad) Above() *Quad {
	if q.above != nil && q.parent == nil {
		return q.above
	}
	r := q.Root()
	if r.above == nil {
		return nil
	}
	return r.above.ByID(q.ID())
}

// Below returns the quad directly below this one, or nil.
// The mirror of [Quad.Above].
func (q *Quad) Below() *Quad {
	if q.below != nil && q.parent == nil {
		return q.below
	}
	r := q.Root()
	if r.below == nil {
		return nil
	}
	return r.below.ByID(q.ID())
}

// AboveMore returns the nearest quad above this one or any of its
// ancestors. There may be no quad at exactly this address on the storey
// above when that storey is divided more coarsely; the enclosing parent's
// counterpart then stands in. Returns nil when no storey exists above.
func (q *Quad) AboveMore() *Quad {
	if len(q.Root().LevelsAbove()) == 0 {
		return nil
	}
	if a := q.Above(); a != nil {
		return a
	}
	if q.parent == nil {
		return nil
	}
	return q.parent.AboveMore()
}

// BelowMore returns the nearest quad below this one or any of its
// ancestors. The mirror of [Quad.AboveMore].
func (q *Quad) BelowMore() *Quad {
	if len(q.Root().LevelsBelow()) == 0 {
		return nil
	}
	if b := q.Below(); b != nil {
		return b
	}
	if q.parent == nil {
		return nil
	}
	return q.parent.BelowMore()
}

// Lowest returns the root of the lowest storey in this quad's stack.
func (q *Quad) Lowest() *Quad {
	if b := q.Below(); b != nil {
		return b.Lowest()
	}
	return q
}

// Highest returns the root of the highest storey in this quad's stack.
func (q *Quad) Highest() *Quad {
	if a := q.Above(); a != nil {
		return a.Highest()
	}
	return q
}

// LevelsBelow returns the roots of the storeys below this quad's root,
// nearest first.
func (q *Quad) LevelsBelow() []*Quad {
	var out []*Quad
	for r := q.Root().below; r != nil; r = r.Root().below {
		out = append(out, r)
	}
	return out
}

// LevelsAbove returns the roots of the storeys above this quad's root,
// nearest first.
func (q *Quad) LevelsAbove() []*Quad {
	var out []*Quad
	for r := q.Root().above; r != nil; r = r.Root().above {
		out = append(out, r)
	}
	return out
}

// Level returns this storey's index in the stack; the lowest storey is 0.
func (q *Quad) Level() int { return len(q.LevelsBelow()) }

// ByLevel walks n storeys up (n > 0) or down (n < 0) from the lowest
// storey's root. ByLevel(0) is the lowest root itself. Returns nil when
// the stack has no storey at that level.
func (q *Quad) ByLevel(n int) *Quad {
	cur := q.Lowest()
	for ; n > 0 && cur != nil; n-- {
		cur = cur.Above()
	}
	for ; n < 0 && cur != nil; n++ {
		cur = cur.Below()
	}
	return cur
}

// AddAbove attaches a fresh empty root as a new storey above this quad's
// root. Fails when a storey above already exists.
func (q *Quad) AddAbove() bool {
	r := q.Root()
	if r.above != nil {
		return false
	}
	n := &Quad{}
	r.above = n
	n.below = r
	return true
}

// DelAbove removes the storey above this quad's root and everything above
// it, undividing the removed trees. Fails when there is nothing above.
func (q *Quad) DelAbove() bool {
	r := q.Root()
	if r.above == nil {
		return false
	}
	r.above.DelAbove()
	r.above.Undivide()
	r.above.below = nil
	r.above = nil
	return true
}

// CloneAbove replaces the storey above this quad's root with a copy of
// this storey, duplicating its layout upward.
func (q *Quad) CloneAbove() bool {
	r := q.Root()
	c := r.Clone()
	r.DelAbove()
	r.above = c
	c.below = r
	r.CleanCache()
	return true
}

// SwapAbove exchanges the content of a root with the root directly above
// it: subtree, division, rotation, type, style and height move; position
// in the stack, corner coordinates and elevation stay. Only valid on a
// root with a storey above.
func (q *Quad) SwapAbove() bool {
	if q.parent != nil {
		return false
	}
	a := q.above
	if a == nil {
		return false
	}
	q.children, a.children = a.children, q.children
	for _, c := range q.children {
		c.parent = q
	}
	for _, c := range a.children {
		c.parent = a
	}
	q.division, a.division = a.division, q.division
	q.rotation, a.rotation = a.rotation, q.rotation
	q.typ, a.typ = a.typ, q.typ
	q.Style, a.Style = a.Style, q.Style
	q.WallInner, a.WallInner = a.WallInner, q.WallInner
	q.WallOuter, a.WallOuter = a.WallOuter, q.WallOuter
	q.height, a.height = a.height, q.height
	q.CleanCache()
	a.CleanCache()
	return true
}
