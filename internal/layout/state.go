package layout

import (
	"fmt"
	"math"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/geom"
	"github.com/plantgo/plantgo/internal/layoutmodel"
)

const (
	statePadX       = 16.0
	statePadY       = 10.0
	stateMinWidth   = 70.0
	stateMinHeight  = 35.0
	pseudoNodeSize  = 20.0
	stateLevelGapV  = 40.0
	stateGapH       = 30.0
)

const (
	initialNodeID = "__initial__"
	finalNodeID   = "__final__"
)

// stateNode is one placed node in a level-assigned state graph, either a
// simple/pseudostate state or a composite state whose body was laid out
// recursively.
type stateNode struct {
	id                 string
	kind               ast.StateKind
	level              int
	bounds             geom.Rect
	composite          *ast.State
	sub                *layoutmodel.SubLayoutResult
	translatedChildren []layoutmodel.LayoutElement
}

// stateTransition is a transition with both endpoints already resolved to
// canonical node ids ("[*]" translated to initialNodeID/finalNodeID).
type stateTransition struct {
	from, to string
	label    string
}

// State lays out a state diagram AST per §4.3: bounded fixed-point level
// assignment, per-level centered placement, composite-state recursion, and
// rule-based edge routing.
func State(diagram *ast.Diagram, cfg Config) layoutmodel.LayoutResult {
	var states []*ast.State
	var transitions []*ast.Transition
	for _, stmt := range diagram.Statements {
		switch s := stmt.(type) {
		case *ast.State:
			states = append(states, s)
		case *ast.Transition:
			transitions = append(transitions, s)
		}
	}
	elements, bounds := layoutStateGraph(states, transitions, cfg, newIDGen())
	return layoutmodel.LayoutResult{Elements: elements, Bounds: bounds}
}

// idGen produces unique element ids across a (possibly recursive) layout
// pass, since nested composite layouts share no state with their parent
// otherwise.
type idGen struct{ n int }

func newIDGen() *idGen { return &idGen{} }

func (g *idGen) next(prefix string) string {
	g.n++
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

// layoutStateGraph assigns levels, places nodes (recursing into composite
// substates), routes edges, and returns the flat element list plus bounds.
// It is used both for the diagram's top-level states and, recursively, for
// a composite state's body (§4.3.2).
func layoutStateGraph(states []*ast.State, astTransitions []*ast.Transition, cfg Config, gen *idGen) ([]layoutmodel.LayoutElement, geom.Rect) {
	nameToID := make(map[string]string, len(states))
	byID := make(map[string]*ast.State, len(states))
	for _, s := range states {
		id := s.ID()
		nameToID[s.Name] = id
		if s.Alias != "" {
			nameToID[s.Alias] = id
		}
		byID[id] = s
	}
	resolve := func(name string) string {
		if name == "[*]" {
			return ""
		}
		if id, ok := nameToID[name]; ok {
			return id
		}
		return name
	}

	hasInitial, hasFinal := false, false
	var transitions []stateTransition
	for _, t := range astTransitions {
		from, to := t.From, t.To
		var fid, tid string
		if from == "[*]" {
			hasInitial = true
			fid = initialNodeID
		} else {
			fid = resolve(from)
		}
		if to == "[*]" {
			hasFinal = true
			tid = finalNodeID
		} else {
			tid = resolve(to)
		}
		transitions = append(transitions, stateTransition{from: fid, to: tid, label: t.Label})
	}

	allIDs := make(map[string]bool)
	if hasInitial {
		allIDs[initialNodeID] = true
	}
	if hasFinal {
		allIDs[finalNodeID] = true
	}
	for _, s := range states {
		allIDs[s.ID()] = true
	}
	for _, t := range transitions {
		if t.from != "" {
			allIDs[t.from] = true
		}
		if t.to != "" {
			allIDs[t.to] = true
		}
	}

	order := make([]string, 0, len(allIDs))
	seen := make(map[string]bool, len(allIDs))
	addOrdered := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	if hasInitial {
		addOrdered(initialNodeID)
	}
	for _, s := range states {
		addOrdered(s.ID())
	}
	for _, t := range transitions {
		addOrdered(t.from)
		addOrdered(t.to)
	}
	if hasFinal {
		addOrdered(finalNodeID)
	}

	levels := assignLevels(order, transitions, hasInitial, hasFinal)

	nodes := make(map[string]*stateNode, len(order))
	for _, id := range order {
		kind := ast.StateSimple
		var composite *ast.State
		switch id {
		case initialNodeID:
			kind = ast.StateInitial
		case finalNodeID:
			kind = ast.StateFinal
		default:
			if s, ok := byID[id]; ok {
				kind = s.Kind
				if kind == ast.StateComposite {
					composite = s
				}
			}
		}
		nodes[id] = &stateNode{id: id, kind: kind, level: levels[id], composite: composite}
	}

	maxLevel := 0
	levelNodes := make(map[int][]string)
	for _, id := range order {
		lv := nodes[id].level
		levelNodes[lv] = append(levelNodes[lv], id)
		if lv > maxLevel {
			maxLevel = lv
		}
	}

	var elements []layoutmodel.LayoutElement

	// Size every node first (composite recursion included) so level widths
	// can be computed before any X is assigned.
	for _, id := range order {
		n := nodes[id]
		if n.composite != nil {
			subElements, subBounds := layoutStateGraph(n.composite.Substates, n.composite.InternalTransitions, cfg, gen)
			n.sub = &layoutmodel.SubLayoutResult{Elements: subElements, Bounds: subBounds}
			w := subBounds.Width + cfg.CompositePadding*2
			h := subBounds.Height + cfg.CompositePadding*2 + cfg.CompositeHeaderH
			if subBounds.Empty() {
				w, h = stateMinWidth, stateMinHeight
			}
			n.bounds.Width, n.bounds.Height = w, h
			continue
		}
		n.bounds.Width, n.bounds.Height = nodeSize(cfg, id, n.kind, byID[id])
	}

	levelWidths := make(map[int]float64, maxLevel+1)
	overallMaxWidth := 0.0
	for lv := 0; lv <= maxLevel; lv++ {
		ids := levelNodes[lv]
		w := 0.0
		for i, id := range ids {
			if i > 0 {
				w += stateGapH
			}
			w += nodes[id].bounds.Width
		}
		levelWidths[lv] = w
		if w > overallMaxWidth {
			overallMaxWidth = w
		}
	}
	centerX := overallMaxWidth / 2

	y := cfg.BaseMargin
	for lv := 0; lv <= maxLevel; lv++ {
		ids := levelNodes[lv]
		if len(ids) == 0 {
			continue
		}
		levelHeight := 0.0
		for _, id := range ids {
			if nodes[id].bounds.Height > levelHeight {
				levelHeight = nodes[id].bounds.Height
			}
		}
		startX := cfg.BaseMargin + centerX - levelWidths[lv]/2
		x := startX
		for _, id := range ids {
			n := nodes[id]
			n.bounds.X = x
			n.bounds.Y = y
			x += n.bounds.Width + stateGapH
		}
		y += levelHeight + stateLevelGapV
	}

	// Emit node elements.
	for _, id := range order {
		n := nodes[id]
		if n.composite != nil {
			elements = append(elements, buildCompositeElement(gen, n))
			elements = append(elements, n.translatedChildren...)
			continue
		}
		elements = append(elements, buildSimpleStateElement(gen, n, byID[id]))
	}

	// Route edges. backwardIdx increments per backward edge so parallel
	// backward arrows fan out on the right instead of overlapping (§4.3.3).
	backwardIdx := 0
	for _, t := range transitions {
		from, ok1 := nodes[t.from]
		to, ok2 := nodes[t.to]
		if !ok1 || !ok2 {
			continue
		}
		el, isBackward := routeStateEdge(gen, from, to, t.label, backwardIdx)
		elements = append(elements, el)
		if isBackward {
			backwardIdx++
		}
	}

	var rects []geom.Rect
	for _, n := range nodes {
		rects = append(rects, n.bounds)
	}
	bounds := geom.UnionRects(append(rects, elementBounds(elements)...))
	if !bounds.Empty() {
		bounds.Width += cfg.BaseMargin
		bounds.Height += cfg.BaseMargin
	}

	return elements, bounds
}

func elementBounds(elements []layoutmodel.LayoutElement) []geom.Rect {
	rects := make([]geom.Rect, 0, len(elements))
	for _, el := range elements {
		rects = append(rects, el.Bounds)
	}
	return rects
}

func nodeSize(cfg Config, id string, kind ast.StateKind, decl *ast.State) (float64, float64) {
	switch kind {
	case ast.StateInitial, ast.StateFinal, ast.StateChoice, ast.StateFork, ast.StateJoin, ast.StateHistory, ast.StateDeepHistory:
		return pseudoNodeSize, pseudoNodeSize
	default:
		name := id
		if decl != nil {
			name = decl.Name
			if decl.Alias != "" {
				name = decl.Alias
			}
		}
		size := textSize(cfg, name)
		w := size.Width + statePadX*2
		h := size.Height + statePadY*2
		if w < stateMinWidth {
			w = stateMinWidth
		}
		if h < stateMinHeight {
			h = stateMinHeight
		}
		return w, h
	}
}

// assignLevels is the bounded fixed-point BFS of §4.3.1: initial nodes
// start at level 0, each transition propagates from_level+1 to an unset
// target (ignoring transitions into the synthesized final node), and the
// loop runs until a fixed point or |states|+1 rounds, whichever is first.
func assignLevels(order []string, transitions []stateTransition, hasInitial, hasFinal bool) map[string]int {
	levels := make(map[string]int)
	if hasInitial {
		levels[initialNodeID] = 0
	} else {
		targets := make(map[string]bool)
		for _, t := range transitions {
			targets[t.to] = true
		}
		for _, id := range order {
			if id != finalNodeID && !targets[id] {
				levels[id] = 0
			}
		}
	}
	if len(levels) == 0 {
		for _, id := range order {
			if id != finalNodeID {
				levels[id] = 0
				break
			}
		}
	}

	maxIterations := len(order) + 1
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for _, t := range transitions {
			if t.to == finalNodeID {
				continue
			}
			fromLevel, ok := levels[t.from]
			if !ok {
				continue
			}
			if _, has := levels[t.to]; !has {
				levels[t.to] = fromLevel + 1
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	if hasFinal {
		maxLevel := 0
		for _, lv := range levels {
			if lv > maxLevel {
				maxLevel = lv
			}
		}
		levels[finalNodeID] = maxLevel + 1
	}

	for _, id := range order {
		if _, ok := levels[id]; !ok {
			levels[id] = 0
		}
	}
	return levels
}

func buildSimpleStateElement(gen *idGen, n *stateNode, decl *ast.State) layoutmodel.LayoutElement {
	switch n.kind {
	case ast.StateInitial:
		return layoutmodel.LayoutElement{ID: gen.next("initial"), Kind: layoutmodel.InitialState, Bounds: n.bounds}
	case ast.StateFinal:
		return layoutmodel.LayoutElement{ID: gen.next("final"), Kind: layoutmodel.FinalState, Bounds: n.bounds}
	case ast.StateChoice, ast.StateFork, ast.StateJoin, ast.StateHistory, ast.StateDeepHistory:
		label := ""
		if decl != nil {
			label = decl.Name
		}
		return layoutmodel.LayoutElement{
			ID: gen.next("pseudo"), Kind: layoutmodel.Ellipse, Bounds: n.bounds, Text: label,
			Ellipse: &layoutmodel.EllipsePayload{Label: label},
		}
	default:
		name := n.id
		if decl != nil {
			name = decl.Name
			if decl.Alias != "" {
				name = decl.Alias
			}
		}
		return layoutmodel.LayoutElement{
			ID: gen.next("state"), Kind: layoutmodel.State, Bounds: n.bounds, Text: name,
			State: &layoutmodel.StatePayload{Name: name},
		}
	}
}

// buildCompositeElement wraps a recursively laid out composite state's
// body in a CompositeState container, translating every inner element by
// the container's origin (§4.3.2).
func buildCompositeElement(gen *idGen, n *stateNode) layoutmodel.LayoutElement {
	name := n.composite.Name
	if n.composite.Alias != "" {
		name = n.composite.Alias
	}
	headerH := 20.0
	originX := n.bounds.X + 15
	originY := n.bounds.Y + headerH + 5
	translated := make([]layoutmodel.LayoutElement, len(n.sub.Elements))
	for i, el := range n.sub.Elements {
		el.Bounds.X += originX
		el.Bounds.Y += originY
		if el.EdgePayload != nil {
			pts := make([]geom.Point, len(el.EdgePayload.Points))
			for j, p := range el.EdgePayload.Points {
				pts[j] = geom.Point{X: p.X + originX, Y: p.Y + originY}
			}
			payload := *el.EdgePayload
			payload.Points = pts
			el.EdgePayload = &payload
		}
		translated[i] = el
	}
	container := layoutmodel.LayoutElement{
		ID:     gen.next("composite"),
		Kind:   layoutmodel.CompositeState,
		Bounds: n.bounds,
		Text:   name,
		CompositeState: &layoutmodel.CompositeStatePayload{Name: name, HeaderHeight: headerH},
	}
	n.translatedChildren = translated
	return container
}

// routeStateEdge implements the three routing rules of §4.3.3 and reports
// whether the backward rule applied (so the caller can track a running
// backward_index for the offset).
func routeStateEdge(gen *idGen, from, to *stateNode, label string, backwardIdx int) (layoutmodel.LayoutElement, bool) {
	fromCX, fromCY := from.bounds.CenterX(), from.bounds.CenterY()
	toCX, toCY := to.bounds.CenterX(), to.bounds.CenterY()
	dy := toCY - fromCY
	dx := toCX - fromCX

	isSmall := func(n *stateNode) bool {
		switch n.kind {
		case ast.StateInitial, ast.StateFinal, ast.StateHistory, ast.StateDeepHistory, ast.StateChoice:
			return true
		}
		return false
	}

	var points []geom.Point
	backward := dy < -20
	switch {
	case backward:
		offset := 15.0 + float64(backwardIdx)*20.0
		rightX := math.Max(from.bounds.Right(), to.bounds.Right()) + offset
		fromY := from.bounds.Y + from.bounds.Height*0.3
		toY := to.bounds.Y + to.bounds.Height*0.7
		points = []geom.Point{
			{X: from.bounds.Right(), Y: fromY},
			{X: rightX, Y: fromY},
			{X: rightX, Y: toY},
			{X: to.bounds.Right(), Y: toY},
		}
	case dy > 10:
		startY, endY := from.bounds.Bottom(), to.bounds.Y
		if isSmall(to) {
			endY = toCY
		}
		if isSmall(from) {
			startY = fromCY
		}
		points = []geom.Point{{X: fromCX, Y: startY}, {X: toCX, Y: endY}}
	case dx > 0:
		points = []geom.Point{{X: from.bounds.Right(), Y: fromCY}, {X: to.bounds.X, Y: toCY}}
	default:
		points = []geom.Point{{X: from.bounds.X, Y: fromCY}, {X: to.bounds.Right(), Y: toCY}}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	bounds := geom.Rect{X: minX, Y: minY, Width: math.Max(1, maxX-minX), Height: math.Max(1, maxY-minY)}

	el := layoutmodel.LayoutElement{
		ID:     gen.next("transition"),
		Kind:   layoutmodel.Edge,
		Bounds: bounds,
		Text:   label,
		EdgePayload: &layoutmodel.EdgePayload{
			Points:   points,
			Label:    label,
			ArrowEnd: true,
			Kind:     layoutmodel.EdgeTransition,
		},
	}
	return el, backward
}
