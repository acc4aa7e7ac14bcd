package picking

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/saiko-tech/tile-picker/pkg/picking/collision"
)

// MinNodeSize is the size at or below which Build stops splitting.
const MinNodeSize = 1

// Camera orders candidate targets front to back.
type Camera interface {
	// DistanceTo returns a depth value for p; smaller is nearer the viewer.
	DistanceTo(p mgl32.Vec3) float32
}

// Tree is a loose quadtree over mouse targets.
//
// Quadrants only partition X and Y. Each node's Z range grows to cover the
// targets inserted beneath it, so the box test stays tight for height fields.
// A target that does not fit inside a single quadrant stays in the lowest node
// that fully contains it.
//
// Usage is NewTree, Build, Insert, then any number of queries. A populated Tree is
// not modified by queries and may be shared between goroutines as long as
// nothing is inserted concurrently.
type Tree struct {
	size     uint32
	box      collision.AABB
	targets  []Target
	children *[4]*Tree
}

// NewTree creates an unbuilt node covering box.
// size is the span of the node in grid cells; it is halved for each level of children.
func NewTree(size uint32, box collision.AABB) *Tree {
	return &Tree{size: size, box: box, targets: make([]Target, 0, 2)}
}

// Box returns the node's current extent.
func (t *Tree) Box() collision.AABB {
	return t.box
}

// Size returns the node's size budget.
func (t *Tree) Size() uint32 {
	return t.size
}

// Build creates the whole skeleton of child nodes down to MinNodeSize.
// Nodes that already have children are left as they are.
func (t *Tree) Build() {
	if t.size <= MinNodeSize {
		return
	}

	if t.children == nil {
		size := t.size / 2
		quadrants := t.box.Quadrants()
		t.children = &[4]*Tree{
			NewTree(size, quadrants[0]),
			NewTree(size, quadrants[1]),
			NewTree(size, quadrants[2]),
			NewTree(size, quadrants[3]),
		}
	}

	for _, c := range t.children {
		c.Build()
	}
}

// Insert adds target to the first child (in quadrant order) whose XY extent
// fully contains it, or to this node if there is no such child.
func (t *Tree) Insert(target Target) {
	bb := target.BoundingBox()
	t.box.ExpandZ(bb)

	if t.children != nil {
		for _, c := range t.children {
			if c.box.ContainsXY(bb) {
				c.Insert(target)
				return
			}
		}
	}

	t.targets = append(t.targets, target)
}

// IntersectsLine finds the target under line.
//
// Candidates whose boxes the line crosses are tried in order of
// camera.DistanceTo(box center), and the first one with a real triangle hit is
// returned. Ordering by box center is an approximation: with overlapping
// boxes it can pick a target whose contact point is not the nearest one.
// NearestHit is exact.
func (t *Tree) IntersectsLine(line collision.Line, camera Camera) (Hit, bool) {
	targets, ok := t.search(line)
	if !ok {
		return Hit{}, false
	}

	type candidate struct {
		target Target
		dist   float32
	}

	candidates := make([]candidate, len(targets))
	for i, target := range targets {
		candidates[i] = candidate{target: target, dist: camera.DistanceTo(target.BoundingBox().Center())}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	for _, c := range candidates {
		if hit, ok := c.target.Intersects(line); ok {
			return hit, true
		}
	}

	return Hit{}, false
}

// NearestHit tests every candidate and returns the hit with the smallest line parameter.
func (t *Tree) NearestHit(line collision.Line) (Hit, bool) {
	targets, ok := t.search(line)
	if !ok {
		return Hit{}, false
	}

	var (
		nearest Hit
		found   bool
	)

	for _, target := range targets {
		hit, ok := target.Intersects(line)
		if ok && (!found || hit.T < nearest.T) {
			nearest = hit
			found = true
		}
	}

	return nearest, found
}

// search collects possible targets in this node and its children.
// ok is false if line misses this node's box entirely, otherwise the
// returned list may still be empty.
func (t *Tree) search(line collision.Line) (found []Target, ok bool) {
	if !collision.LineIntersectsAABB(line, t.box) {
		return nil, false
	}

	found = make([]Target, 0, len(t.targets))
	for _, target := range t.targets {
		if collision.LineIntersectsAABB(line, target.BoundingBox()) {
			found = append(found, target)
		}
	}

	if t.children != nil {
		for _, c := range t.children {
			if targets, ok := c.search(line); ok {
				found = append(found, targets...)
			}
		}
	}

	return found, true
}

// Walk visits every node depth-first, children in quadrant order.
// Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(depth int, box collision.AABB, targets []Target) bool) {
	t.walk(0, func(depth int, n *Tree) bool {
		return fn(depth, n.box, n.targets)
	})
}

func (t *Tree) walk(depth int, fn func(int, *Tree) bool) {
	if !fn(depth, t) || t.children == nil {
		return
	}

	for _, c := range t.children {
		c.walk(depth+1, fn)
	}
}

// TreeStats summarizes the shape of a Tree.
type TreeStats struct {
	Nodes    int
	Leaves   int
	Targets  int
	MaxDepth int
	// RootTargets counts targets that straddle the root's quadrant boundaries.
	RootTargets int
}

// Stats walks the tree and counts its nodes and targets.
func (t *Tree) Stats() TreeStats {
	s := TreeStats{RootTargets: len(t.targets)}

	t.walk(0, func(depth int, n *Tree) bool {
		s.Nodes++
		s.Targets += len(n.targets)
		if n.children == nil {
			s.Leaves++
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		return true
	})

	return s
}
