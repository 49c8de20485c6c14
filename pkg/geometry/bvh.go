package geometry

import (
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// BVHNode represents a node in the Bounding Volume Hierarchy.
//
// A node is exactly one of: empty (no primitive, no children), a leaf
// (Primitive set) or internal (Left and Right set). Each internal node owns
// its two subtrees.
type BVHNode struct {
	Bounds    core.AABB
	Left      *BVHNode
	Right     *BVHNode
	Primitive Primitive // Non-nil for leaf nodes
}

// IsEmpty reports whether the node holds nothing
func (n *BVHNode) IsEmpty() bool {
	return n == nil || (n.Primitive == nil && n.Left == nil && n.Right == nil)
}

// IsLeaf reports whether the node wraps a single primitive
func (n *BVHNode) IsLeaf() bool {
	return n != nil && n.Primitive != nil
}

// BVH represents a Bounding Volume Hierarchy for fast ray-primitive intersection
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of primitives
func NewBVH(primitives []Primitive) *BVH {
	// Sorting happens in place, so work on a copy of the caller's slice
	prims := make([]Primitive, len(primitives))
	copy(prims, primitives)

	return &BVH{Root: buildBVH(prims)}
}

// buildBVH recursively splits primitives at the median centroid along the
// longest axis of their union bound
func buildBVH(prims []Primitive) *BVHNode {
	switch len(prims) {
	case 0:
		return &BVHNode{}
	case 1:
		return &BVHNode{Bounds: prims[0].Bounds(), Primitive: prims[0]}
	}

	bounds := prims[0].Bounds()
	for _, p := range prims[1:] {
		bounds = bounds.Union(p.Bounds())
	}

	sortByCentroid(prims, bounds.LongestAxis())

	mid := len(prims) / 2
	return &BVHNode{
		Bounds: bounds,
		Left:   buildBVH(prims[:mid]),
		Right:  buildBVH(prims[mid:]),
	}
}

// sortByCentroid orders primitives by centroid coordinate along axis.
// The sort is stable so equal centroids keep their input order.
func sortByCentroid(prims []Primitive, axis int) {
	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].Centroid().Axis(axis) < prims[j].Centroid().Axis(axis)
	})
}

// Query returns the nearest hit along the ray, skipping ignore (which may be nil)
func (bvh *BVH) Query(ray core.Ray, ignore Primitive) RaycastHit {
	if bvh == nil {
		return NoHit()
	}
	return QueryNode(bvh.Root, ray, ignore)
}

// QueryNode recursively tests ray intersection with a BVH subtree.
//
// Both children of an internal node are always visited once its bound is
// hit; the closer of the two results wins, with ties going to the right child.
func QueryNode(node *BVHNode, ray core.Ray, ignore Primitive) RaycastHit {
	if node.IsEmpty() {
		return NoHit()
	}
	if !node.Bounds.IntersectsRay(ray) {
		return NoHit()
	}

	if node.IsLeaf() {
		if ignore != nil && node.Primitive == ignore {
			return NoHit()
		}
		return node.Primitive.Intersect(ray)
	}

	left := QueryNode(node.Left, ray, ignore)
	right := QueryNode(node.Right, ray, ignore)
	if left.Distance < right.Distance {
		return left
	}
	return right
}

// BruteForce tests every primitive and returns the nearest hit. It is the
// reference the BVH must agree with.
func BruteForce(primitives []Primitive, ray core.Ray, ignore Primitive) RaycastHit {
	closest := NoHit()
	for _, p := range primitives {
		if ignore != nil && p == ignore {
			continue
		}
		if hit := p.Intersect(ray); hit.Distance < closest.Distance {
			closest = hit
		}
	}
	return closest
}

// Leaves returns the primitives stored in the tree's leaves, left to right
func (bvh *BVH) Leaves() []Primitive {
	var out []Primitive
	var walk func(n *BVHNode)
	walk = func(n *BVHNode) {
		switch {
		case n.IsEmpty():
		case n.IsLeaf():
			out = append(out, n.Primitive)
		default:
			walk(n.Left)
			walk(n.Right)
		}
	}
	if bvh != nil {
		walk(bvh.Root)
	}
	return out
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes   int
	LeafNodes    int
	EmptyNodes   int
	MaxDepth     int
	AvgLeafDepth float64
	Primitives   int
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh == nil || bvh.Root == nil {
		return stats
	}

	collectStats(bvh.Root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgLeafDepth /= float64(stats.LeafNodes)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	switch {
	case node.IsEmpty():
		stats.EmptyNodes++
	case node.IsLeaf():
		stats.LeafNodes++
		stats.Primitives++
		stats.AvgLeafDepth += float64(depth) // Accumulate depth for average calculation
	default:
		collectStats(node.Left, depth+1, stats)
		collectStats(node.Right, depth+1, stats)
	}
}
