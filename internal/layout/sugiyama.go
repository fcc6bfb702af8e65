// Package layout implements the Sugiyama hierarchical layout algorithm for graph positioning.
//
// The five-phase pass (cycle removal, layer assignment, virtual-node
// insertion, crossing minimization, coordinate assignment) is composed from
// the layering, crossing, and coordinate subpackages rather than
// reimplementing each phase inline a second time.
package layout

import (
	"github.com/plantgo/plantgo/internal/layout/coordinate"
	"github.com/plantgo/plantgo/internal/layout/crossing"
	"github.com/plantgo/plantgo/internal/layout/layering"
)

// Node represents a graph node with dimensions.
type Node struct {
	ID      string
	Width   float64
	Height  float64
	Virtual bool // true for virtual nodes inserted for long edges
	X       float64
	Y       float64
	Layer   int
	Order   int
}

// Edge represents a directed edge between two nodes.
type Edge struct {
	From     string
	To       string
	Label    string
	Reversed bool // true if edge was reversed during cycle removal
}

// Graph represents the input graph for layout.
type Graph struct {
	Nodes []*Node
	Edges []*Edge
}

// Options configures the layout algorithm.
type Options struct {
	NodePadding  float64 // horizontal spacing between nodes in a layer
	LayerSpacing float64 // vertical spacing between layers
}

// DefaultOptions returns sensible default layout options.
func DefaultOptions() Options {
	return Options{
		NodePadding:  40,
		LayerSpacing: 60,
	}
}

// Layout runs the full Sugiyama algorithm on the graph.
// It modifies the nodes in place, setting their X, Y, Layer, and Order fields.
func Layout(g *Graph, opts Options) {
	if len(g.Nodes) == 0 {
		return
	}
	nodeIndex := buildNodeIndex(g)
	adj := buildAdjacency(g, nodeIndex)
	n := len(g.Nodes)

	reversed := removeCycles(adj, n)
	for _, e := range g.Edges {
		key := edgeKey(nodeIndex[e.From], nodeIndex[e.To])
		if reversed[key] {
			e.Reversed = true
		}
	}

	layers := layering.Assign(adj, n)
	for i, layer := range layers {
		g.Nodes[i].Layer = layer
	}

	adj, layers, g.Nodes = insertVirtualNodes(adj, layers, g.Nodes)

	layerBuckets := buildLayerBuckets(layers)
	layerBuckets = crossing.Minimize(layerBuckets, adj, len(g.Nodes))
	for _, bucket := range layerBuckets {
		for order, idx := range bucket {
			g.Nodes[idx].Order = order
		}
	}

	sizes := make([]coordinate.NodeSize, len(g.Nodes))
	for i, node := range g.Nodes {
		sizes[i] = coordinate.NodeSize{Width: node.Width, Height: node.Height}
	}
	positions := coordinate.Assign(layerBuckets, sizes, opts.NodePadding, opts.LayerSpacing)
	for i, pos := range positions {
		g.Nodes[i].X = pos.X
		g.Nodes[i].Y = pos.Y
	}
}

func buildNodeIndex(g *Graph) map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		idx[n.ID] = i
	}
	return idx
}

func buildAdjacency(g *Graph, nodeIndex map[string]int) [][]int {
	n := len(g.Nodes)
	adj := make([][]int, n)
	for _, e := range g.Edges {
		from, okF := nodeIndex[e.From]
		to, okT := nodeIndex[e.To]
		if !okF || !okT {
			continue
		}
		if from == to {
			continue // skip self-loops
		}
		adj[from] = append(adj[from], to)
	}
	return adj
}

func edgeKey(from, to int) [2]int {
	return [2]int{from, to}
}

// removeCycles uses DFS to find back edges and reverses them.
// Returns a set of reversed edge keys.
func removeCycles(adj [][]int, n int) map[[2]int]bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, n)
	reversed := make(map[[2]int]bool)
	var dfs func(u int)
	dfs = func(u int) {
		color[u] = gray
		newAdj := make([]int, 0, len(adj[u]))
		for _, v := range adj[u] {
			switch color[v] {
			case gray:
				// Back edge — reverse it.
				reversed[edgeKey(u, v)] = true
				adj[v] = append(adj[v], u)
			case white:
				newAdj = append(newAdj, v)
				dfs(v)
			default:
				newAdj = append(newAdj, v)
			}
		}
		adj[u] = newAdj
		color[u] = black
	}
	for i := range n {
		if color[i] == white {
			dfs(i)
		}
	}
	return reversed
}

// insertVirtualNodes adds dummy nodes for edges spanning more than one layer,
// so the crossing-minimization pass has a node at every intermediate layer
// to route the long edge through.
func insertVirtualNodes(adj [][]int, layers []int, nodes []*Node) ([][]int, []int, []*Node) {
	newAdj := make([][]int, len(adj))
	for i := range adj {
		newAdj[i] = append([]int(nil), adj[i]...)
	}
	for u := range len(adj) {
		for j, v := range adj[u] {
			span := layers[v] - layers[u]
			if span <= 1 {
				continue
			}
			prev := u
			for k := 1; k < span; k++ {
				vn := &Node{
					ID:      "",
					Width:   0,
					Height:  0,
					Virtual: true,
					Layer:   layers[u] + k,
				}
				vnIdx := len(nodes)
				nodes = append(nodes, vn)
				layers = append(layers, layers[u]+k)
				newAdj = append(newAdj, nil)
				if prev == u {
					newAdj[prev][j] = vnIdx
				} else {
					newAdj[prev] = append(newAdj[prev], vnIdx)
				}
				prev = vnIdx
			}
			newAdj[prev] = append(newAdj[prev], v)
		}
	}
	return newAdj, layers, nodes
}

func buildLayerBuckets(layers []int) [][]int {
	maxLayer := 0
	for _, l := range layers {
		if l > maxLayer {
			maxLayer = l
		}
	}
	buckets := make([][]int, maxLayer+1)
	for i, l := range layers {
		buckets[l] = append(buckets[l], i)
	}
	return buckets
}
