// Package nodeindex maintains inverted indexes over extracted data nodes
// using Roaring bitmaps, so node lookups across one or many schemas stay
// cheap even for large documents.
package nodeindex

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/usestring/schemex/pkg/schema"
)

// Index holds data nodes from one or more schemas with inverted indexes by
// type, name and depth. An Index is built once and then queried; it is not
// safe for concurrent mutation.
type Index struct {
	nodes []schema.DataNode

	byType map[schema.DataType]*roaring.Bitmap
	byName map[string]*roaring.Bitmap
	leaves *roaring.Bitmap
}

// New returns an empty index.
func New() *Index {
	return &Index{
		byType: make(map[schema.DataType]*roaring.Bitmap),
		byName: make(map[string]*roaring.Bitmap),
		leaves: roaring.New(),
	}
}

// Build indexes the data nodes of all given schemas.
func Build(schemas ...*schema.Schema) *Index {
	ix := New()
	for _, s := range schemas {
		ix.Add(s)
	}
	return ix
}

// Add appends one schema's data nodes to the index.
func (ix *Index) Add(s *schema.Schema) {
	for _, node := range s.DataNodes {
		id := uint32(len(ix.nodes))
		ix.nodes = append(ix.nodes, node)

		bitmapFor(ix.byType, node.DataType).Add(id)
		bitmapFor(ix.byName, node.Name).Add(id)
		if node.IsLeaf {
			ix.leaves.Add(id)
		}
	}
}

// Len returns the number of indexed nodes.
func (ix *Index) Len() int {
	return len(ix.nodes)
}

// Filter narrows a Find call. Zero values leave a dimension unconstrained;
// MaxDepth 0 means unlimited (depth 0 nodes always match).
type Filter struct {
	Type     schema.DataType
	Name     string
	LeafOnly bool
	MaxDepth int
}

// Find returns the nodes matching every set filter dimension, in index
// order.
func (ix *Index) Find(f Filter) []schema.DataNode {
	var candidates *roaring.Bitmap

	if f.Type != "" {
		candidates = ix.intersect(candidates, ix.byType[f.Type])
	}
	if f.Name != "" {
		candidates = ix.intersect(candidates, ix.byName[f.Name])
	}
	if f.LeafOnly {
		candidates = ix.intersect(candidates, ix.leaves)
	}
	if candidates == nil {
		candidates = roaring.New()
		candidates.AddRange(0, uint64(len(ix.nodes)))
	}

	var out []schema.DataNode
	it := candidates.Iterator()
	for it.HasNext() {
		node := ix.nodes[it.Next()]
		if f.MaxDepth > 0 && node.Depth > f.MaxDepth {
			continue
		}
		out = append(out, node)
	}
	return out
}

// intersect ANDs a dimension bitmap into the running candidate set. A nil
// dimension bitmap (no nodes in that bucket) yields the empty set.
func (ix *Index) intersect(candidates, dim *roaring.Bitmap) *roaring.Bitmap {
	if dim == nil {
		return roaring.New()
	}
	if candidates == nil {
		return dim.Clone()
	}
	candidates.And(dim)
	return candidates
}

func bitmapFor[K comparable](m map[K]*roaring.Bitmap, key K) *roaring.Bitmap {
	bm, ok := m[key]
	if !ok {
		bm = roaring.New()
		m[key] = bm
	}
	return bm
}
