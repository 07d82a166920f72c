package core

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

var (
	// ErrEmptyBVH is returned when a BVH is built over no shapes
	ErrEmptyBVH = errors.New("bvh: empty shape range")
	// ErrNoBoundingBox is returned when a shape cannot report a bounding box
	ErrNoBoundingBox = errors.New("bvh: shape has no bounding box")
)

// BVHNode is an interior node of the Bounding Volume Hierarchy.
// Children are either other nodes or leaf shapes; a single-shape range
// stores the same shape on both sides.
type BVHNode struct {
	Left  Shape
	Right Shape
	Box   AABB

	single bool
}

// NewBVH builds a hierarchy over shapes valid for the shutter interval [time0, time1].
// The split axis at each level is drawn from random, so a fixed seed gives a fixed tree.
// The input slice is not modified.
func NewBVH(shapes []Shape, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyBVH
	}

	// Work on a copy; building sorts sub-ranges in place
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return buildBVH(shapesCopy, 0, len(shapesCopy), time0, time1, random)
}

// MustNewBVH is NewBVH for scene authoring code; it panics on malformed input
func MustNewBVH(shapes []Shape, time0, time1 float64, random *rand.Rand) *BVHNode {
	node, err := NewBVH(shapes, time0, time1, random)
	if err != nil {
		panic(err)
	}
	return node
}

// buildBVH recursively builds the node for shapes[start:end]
func buildBVH(shapes []Shape, start, end int, time0, time1 float64, random *rand.Rand) (*BVHNode, error) {
	span := end - start
	if span <= 0 {
		return nil, ErrEmptyBVH
	}

	axis := random.Intn(3)
	keys, err := boxMinKeys(shapes[start:end], axis, time0, time1)
	if err != nil {
		return nil, err
	}

	node := &BVHNode{}
	switch span {
	case 1:
		node.Left = shapes[start]
		node.Right = shapes[start]
		node.single = true
	case 2:
		// Keep input order unless the second is strictly smaller
		if keys[1].key < keys[0].key {
			node.Left, node.Right = shapes[start+1], shapes[start]
		} else {
			node.Left, node.Right = shapes[start], shapes[start+1]
		}
	default:
		sort.SliceStable(keys, func(i, j int) bool {
			return keys[i].key < keys[j].key
		})
		for i, k := range keys {
			shapes[start+i] = k.shape
		}

		mid := start + span/2
		left, err := buildBVH(shapes, start, mid, time0, time1, random)
		if err != nil {
			return nil, err
		}
		right, err := buildBVH(shapes, mid, end, time0, time1, random)
		if err != nil {
			return nil, err
		}
		node.Left, node.Right = left, right
	}

	leftBox, okLeft := node.Left.BoundingBox(time0, time1)
	rightBox, okRight := node.Right.BoundingBox(time0, time1)
	if !okLeft || !okRight {
		return nil, ErrNoBoundingBox
	}
	node.Box = leftBox.Union(rightBox)

	return node, nil
}

// keyedShape pairs a shape with its sort key
type keyedShape struct {
	shape Shape
	key   float64
}

// boxMinKeys looks up the minimum corner of each shape's box along axis
func boxMinKeys(shapes []Shape, axis int, time0, time1 float64) ([]keyedShape, error) {
	keys := make([]keyedShape, len(shapes))
	for i, shape := range shapes {
		box, ok := shape.BoundingBox(time0, time1)
		if !ok {
			return nil, fmt.Errorf("%w (index %d)", ErrNoBoundingBox, i)
		}
		keys[i] = keyedShape{shape: shape, key: box.Min.Axis(axis)}
	}
	return keys, nil
}

// Hit tests the node box first and only descends when it is hit.
// The right child is searched only up to the left child's hit distance.
func (n *BVHNode) Hit(ray Ray, tMin, tMax float64, sampler Sampler) (*HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := n.Left.Hit(ray, tMin, tMax, sampler)
	if hitLeft {
		tMax = leftHit.T
	}

	rightHit, hitRight := n.Right.Hit(ray, tMin, tMax, sampler)
	if hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox returns the box computed at construction time
func (n *BVHNode) BoundingBox(time0, time1 float64) (AABB, bool) {
	return n.Box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	InteriorNodes int
	Leaves        int // Distinct leaf shapes
	MaxDepth      int
}

// Stats walks the tree and collects structural statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.InteriorNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	for i, child := range []Shape{n.Left, n.Right} {
		// Degenerate single-shape node: count the shared leaf once
		if i == 1 && n.single {
			break
		}
		if childNode, ok := child.(*BVHNode); ok {
			childNode.collectStats(depth+1, stats)
		} else {
			stats.Leaves++
		}
	}
}
