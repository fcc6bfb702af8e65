package layout

import (
	"math"
	"sort"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/geom"
	"github.com/plantgo/plantgo/internal/layoutmodel"
)

const (
	componentPadX      = 14.0
	componentPadY      = 10.0
	componentMinWidth  = 90.0
	componentMinHeight = 40.0
	packagePadding     = 20.0
	packageHeaderH     = 24.0
	packageGapV        = 30.0
)

// componentEntry is one component or interface placed within a package,
// keyed by its canonical id for relationship lookup.
type componentEntry struct {
	id   string
	name string
	kind ast.ComponentKind
}

// Component lays out a component diagram per §4.4: components are grouped
// by package (a synthetic default package holds ungrouped components),
// each package's subgraph is Sugiyama-layered independently, and packages
// are stacked top to bottom as bordered containers.
func Component(diagram *ast.Diagram, cfg Config) layoutmodel.LayoutResult {
	packages, relationships := collectComponentPackages(diagram.Statements)

	gen := newIDGen()
	var elements []layoutmodel.LayoutElement
	y := cfg.BaseMargin

	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entries := packages[name]
		if len(entries) == 0 {
			continue
		}
		pkgElements, pkgBounds := layoutComponentPackage(gen, entries, relationships, cfg)
		if name != "" {
			headerBounds := geom.Rect{
				X:      0,
				Y:      y,
				Width:  pkgBounds.Width + packagePadding*2,
				Height: pkgBounds.Height + packagePadding*2 + packageHeaderH,
			}
			elements = append(elements, layoutmodel.LayoutElement{
				ID:        gen.next("package"),
				Kind:      layoutmodel.Rectangle,
				Bounds:    headerBounds,
				Text:      name,
				Rectangle: &layoutmodel.RectanglePayload{Label: name},
			})
			elements = append(elements, translateElements(pkgElements, packagePadding, y+packageHeaderH+packagePadding)...)
			y += headerBounds.Height + packageGapV
		} else {
			elements = append(elements, translateElements(pkgElements, 0, y)...)
			y += pkgBounds.Height + packageGapV
		}
	}

	bounds := layoutmodel.Bounds(elements)
	return layoutmodel.LayoutResult{Elements: elements, Bounds: bounds}
}

func translateElements(elements []layoutmodel.LayoutElement, dx, dy float64) []layoutmodel.LayoutElement {
	out := make([]layoutmodel.LayoutElement, len(elements))
	for i, el := range elements {
		el.Bounds.X += dx
		el.Bounds.Y += dy
		if el.EdgePayload != nil {
			pts := make([]geom.Point, len(el.EdgePayload.Points))
			for j, p := range el.EdgePayload.Points {
				pts[j] = geom.Point{X: p.X + dx, Y: p.Y + dy}
			}
			payload := *el.EdgePayload
			payload.Points = pts
			el.EdgePayload = &payload
		}
		out[i] = el
	}
	return out
}

// collectComponentPackages walks the diagram's top-level statements,
// bucketing components/interfaces by their enclosing Package ("" for the
// synthetic default package) and gathering every Relationship regardless
// of which package its endpoints live in.
func collectComponentPackages(statements []ast.Statement) (map[string][]componentEntry, []*ast.Relationship) {
	packages := map[string][]componentEntry{}
	var relationships []*ast.Relationship
	var walk func(stmts []ast.Statement, pkg string)
	walk = func(stmts []ast.Statement, pkg string) {
		for _, stmt := range stmts {
			switch s := stmt.(type) {
			case *ast.Component:
				packages[pkg] = append(packages[pkg], componentEntry{id: s.ID(), name: s.Name, kind: s.Kind})
			case *ast.Package:
				name := s.Name
				walk(s.Statements, name)
			case *ast.Relationship:
				relationships = append(relationships, s)
			}
		}
	}
	walk(statements, "")
	return packages, relationships
}

// layoutComponentPackage runs the shared Sugiyama pass over one package's
// component subgraph, considering only relationships whose both endpoints
// are members of this package.
func layoutComponentPackage(gen *idGen, entries []componentEntry, relationships []*ast.Relationship, cfg Config) ([]layoutmodel.LayoutElement, geom.Rect) {
	members := make(map[string]bool, len(entries))
	for _, e := range entries {
		members[e.id] = true
	}

	g := &Graph{}
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		w, h := componentNodeSize(cfg, e)
		index[e.id] = i
		g.Nodes = append(g.Nodes, &Node{ID: e.id, Width: w, Height: h})
	}
	for _, r := range relationships {
		if !members[r.Left] || !members[r.Right] || r.Left == r.Right {
			continue
		}
		g.Edges = append(g.Edges, &Edge{From: r.Left, To: r.Right, Label: r.Label})
	}

	opts := DefaultOptions()
	Layout(g, opts)

	elements := make([]layoutmodel.LayoutElement, 0, len(entries)+len(g.Edges))
	byID := make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.Virtual {
			continue
		}
		byID[n.ID] = n
	}
	for _, e := range entries {
		n := byID[e.id]
		if n == nil {
			continue
		}
		elements = append(elements, buildComponentElement(gen, e, n))
	}
	for _, r := range relationships {
		if !members[r.Left] || !members[r.Right] || r.Left == r.Right {
			continue
		}
		from, to := byID[r.Left], byID[r.Right]
		if from == nil || to == nil {
			continue
		}
		elements = append(elements, buildComponentEdge(gen, from, to, r))
	}

	bounds := layoutmodel.Bounds(elements)
	return elements, bounds
}

func componentNodeSize(cfg Config, e componentEntry) (float64, float64) {
	size := textSize(cfg, e.name)
	w := size.Width + componentPadX*2
	h := size.Height + componentPadY*2
	if w < componentMinWidth {
		w = componentMinWidth
	}
	if h < componentMinHeight {
		h = componentMinHeight
	}
	return w, h
}

func buildComponentElement(gen *idGen, e componentEntry, n *Node) layoutmodel.LayoutElement {
	bounds := geom.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
	switch e.kind {
	case ast.ComponentInterface:
		return layoutmodel.LayoutElement{
			ID: gen.next("interface"), Kind: layoutmodel.Ellipse, Bounds: bounds, Text: e.name,
			Ellipse: &layoutmodel.EllipsePayload{Label: e.name},
		}
	default:
		return layoutmodel.LayoutElement{
			ID: gen.next("component"), Kind: layoutmodel.Rectangle, Bounds: bounds, Text: e.name,
			Rectangle: &layoutmodel.RectanglePayload{Label: e.name, CornerRadius: 4},
		}
	}
}

func buildComponentEdge(gen *idGen, from, to *Node, r *ast.Relationship) layoutmodel.LayoutElement {
	fromBounds := geom.Rect{X: from.X, Y: from.Y, Width: from.Width, Height: from.Height}
	toBounds := geom.Rect{X: to.X, Y: to.Y, Width: to.Width, Height: to.Height}
	points := []geom.Point{
		{X: fromBounds.CenterX(), Y: fromBounds.Bottom()},
		{X: toBounds.CenterX(), Y: toBounds.Y},
	}
	minX, maxX := math.Min(points[0].X, points[1].X), math.Max(points[0].X, points[1].X)
	minY, maxY := math.Min(points[0].Y, points[1].Y), math.Max(points[0].Y, points[1].Y)
	edgeBounds := geom.Rect{X: minX, Y: minY, Width: math.Max(1, maxX-minX), Height: math.Max(1, maxY-minY)}
	return layoutmodel.LayoutElement{
		ID:     gen.next("dependency"),
		Kind:   layoutmodel.Edge,
		Bounds: edgeBounds,
		Text:   r.Label,
		EdgePayload: &layoutmodel.EdgePayload{
			Points:   points,
			Label:    r.Label,
			ArrowEnd: true,
			Kind:     relationshipEdgeKind(r.Type),
		},
	}
}

func relationshipEdgeKind(t ast.RelationshipType) layoutmodel.EdgeKind {
	switch t {
	case ast.RelDependency:
		return layoutmodel.EdgeDependency
	case ast.RelInheritance:
		return layoutmodel.EdgeInheritance
	case ast.RelRealization:
		return layoutmodel.EdgeRealization
	case ast.RelComposition:
		return layoutmodel.EdgeComposition
	case ast.RelAggregation:
		return layoutmodel.EdgeAggregation
	default:
		return layoutmodel.EdgeAssociation
	}
}
