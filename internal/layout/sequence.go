package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/geom"
	"github.com/plantgo/plantgo/internal/layoutmodel"
)

// seqParticipant is the placed geometry for one sequence diagram lifeline.
type seqParticipant struct {
	id     string
	name   string
	alias  string
	kind   ast.ParticipantKind
	box    string
	x      float64
	y      float64
	width  float64
	height float64
}

func (p *seqParticipant) centerX() float64 { return p.x + p.width/2 }

type actEntry struct {
	level  int
	startY float64
}

type completedActivation struct {
	participant string
	level       int
	startY      float64
	endY        float64
}

type autonumberState struct {
	enabled bool
	current int
	step    int
	format  string
	levels  []int
}

func (a *autonumberState) apply(cmd *ast.Autonumber) {
	switch cmd.Command {
	case ast.AutonumberStart:
		a.enabled = true
		if cmd.Start != 0 {
			a.current = cmd.Start
		} else if a.current == 0 {
			a.current = 1
		}
		if cmd.Step != 0 {
			a.step = cmd.Step
		} else if a.step == 0 {
			a.step = 1
		}
		if cmd.Format != "" {
			a.format = cmd.Format
		}
	case ast.AutonumberStop:
		a.enabled = false
	case ast.AutonumberResume:
		a.enabled = true
		if cmd.Start != 0 {
			a.current = cmd.Start
		}
		if cmd.Step != 0 {
			a.step = cmd.Step
		}
		if cmd.Format != "" {
			a.format = cmd.Format
		}
		if a.step == 0 {
			a.step = 1
		}
	case ast.AutonumberInc:
		level := cmd.Level
		if level < 1 {
			level = 1
		}
		for len(a.levels) < level {
			a.levels = append(a.levels, 0)
		}
		a.levels[level-1]++
		for i := level; i < len(a.levels); i++ {
			a.levels[i] = 0
		}
	}
}

// next returns the formatted label for the next number and advances state.
func (a *autonumberState) next() string {
	var label string
	if len(a.levels) > 0 {
		parts := make([]string, len(a.levels))
		for i, v := range a.levels {
			parts[i] = strconv.Itoa(v)
		}
		label = strings.Join(parts, ".")
	} else {
		label = formatAutonumber(a.current, a.format)
		a.current += a.step
	}
	return label
}

// formatAutonumber applies a digit-mask format ('0' => zero-padded digit,
// any other rune => literal) to n. An empty format just renders n.
func formatAutonumber(n int, format string) string {
	if format == "" {
		return strconv.Itoa(n)
	}
	zeros := strings.Count(format, "0")
	digits := []rune(strconv.Itoa(n))
	if zeros > len(digits) {
		pad := make([]rune, zeros-len(digits))
		for i := range pad {
			pad[i] = '0'
		}
		digits = append(pad, digits...)
	}
	var sb strings.Builder
	di := 0
	for _, ch := range format {
		if ch == '0' {
			if di < len(digits) {
				sb.WriteRune(digits[di])
				di++
			}
		} else {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// seqEngine carries all mutable layout state threaded through the vertical
// flow pass (§4.2.2-§4.2.6). One engine instance lays out exactly one
// diagram; nothing is shared across invocations (§5).
type seqEngine struct {
	cfg        Config
	pmap       map[string]*seqParticipant
	nameToID   map[string]string
	order      []string
	elements   []layoutmodel.LayoutElement
	currentY   float64
	actStacks  map[string][]actEntry
	completed  []completedActivation
	callStack  []callEntry
	autonum    autonumberState
	idCounter  int
	lineHeight float64
}

type callEntry struct {
	caller string
	callee string
}

func (e *seqEngine) nextID(prefix string) string {
	e.idCounter++
	return fmt.Sprintf("%s-%d", prefix, e.idCounter)
}

func (e *seqEngine) resolveID(name string) string {
	if id, ok := e.nameToID[name]; ok {
		return id
	}
	return name
}

// Sequence lays out a sequence diagram AST into a flat, ordered
// LayoutResult per §4.2. Diagrams with no participants produce an empty
// result.
func Sequence(diagram *ast.Diagram, cfg Config) layoutmodel.LayoutResult {
	participants := collectSeqParticipants(diagram)
	if len(participants) == 0 {
		return layoutmodel.LayoutResult{}
	}

	astBoxes := collectSeqBoxes(diagram)
	topMargin := cfg.BaseMargin
	for _, b := range astBoxes {
		if b.Title != "" {
			topMargin += 20
			break
		}
	}

	placeSeqParticipants(participants, diagram, cfg)

	nameToID := make(map[string]string, len(participants)*2)
	pmap := make(map[string]*seqParticipant, len(participants))
	order := make([]string, len(participants))
	for i, p := range participants {
		pmap[p.id] = p
		order[i] = p.id
		nameToID[p.name] = p.id
		if p.alias != "" {
			nameToID[p.alias] = p.id
		}
	}

	headerHeight := 0.0
	for _, p := range participants {
		p.y = topMargin
		if p.height > headerHeight {
			headerHeight = p.height
		}
	}

	eng := &seqEngine{
		cfg:       cfg,
		pmap:      pmap,
		nameToID:  nameToID,
		order:     order,
		actStacks: make(map[string][]actEntry),
	}
	eng.lineHeight = textHeight(cfg, "x")
	if eng.lineHeight == 0 {
		eng.lineHeight = cfg.FontSize + 4
	}
	eng.currentY = topMargin + headerHeight

	eng.processStatements(diagram.Statements)

	// Close any activations left open at diagram end.
	for name, stack := range eng.actStacks {
		for _, entry := range stack {
			eng.completed = append(eng.completed, completedActivation{
				participant: name,
				level:       entry.level,
				startY:      entry.startY,
				endY:        eng.currentY,
			})
		}
	}

	footerY := eng.currentY - 11
	minFooterY := topMargin + headerHeight + cfg.MinSpacing
	if footerY < minFooterY {
		footerY = minFooterY
	}

	var out []layoutmodel.LayoutElement

	// Boxes render first, underneath everything else (§4.2.8).
	for _, b := range astBoxes {
		out = append(out, eng.buildBoxElement(b, topMargin, footerY+headerHeight))
	}

	// Participant headers.
	for _, p := range participants {
		out = append(out, eng.buildParticipantElement(p, "header"))
	}

	// Top-level elements in source order (includes nested fragment/section
	// contents already appended in order by processStatements).
	out = append(out, eng.elements...)

	// Activation rectangles.
	for _, c := range eng.completed {
		p, ok := pmap[eng.resolveID(c.participant)]
		if !ok {
			continue
		}
		h := c.endY - c.startY
		if h < 10 {
			h = 10
		}
		offset := float64(c.level-1) * cfg.ActivationWidth / 2
		out = append(out, layoutmodel.LayoutElement{
			ID:     eng.nextID("activation"),
			Kind:   layoutmodel.Activation,
			Bounds: geom.Rect{X: p.centerX() - cfg.ActivationWidth/2 + offset, Y: c.startY, Width: cfg.ActivationWidth, Height: h},
		})
	}

	// Lifelines.
	for _, p := range participants {
		out = append(out, layoutmodel.LayoutElement{
			ID:     eng.nextID("lifeline"),
			Kind:   layoutmodel.Edge,
			Bounds: geom.Rect{X: p.centerX(), Y: topMargin + p.height, Width: 1, Height: math.Max(1, footerY-(topMargin+p.height))},
			EdgePayload: &layoutmodel.EdgePayload{
				Points: []geom.Point{{X: p.centerX(), Y: topMargin + p.height}, {X: p.centerX(), Y: footerY}},
				Dashed: true,
				Kind:   layoutmodel.EdgeMessage,
			},
		})
	}

	// Footers.
	for _, p := range participants {
		fp := *p
		fp.y = footerY
		out = append(out, eng.buildParticipantElement(&fp, "footer"))
	}

	result := layoutmodel.LayoutResult{Elements: out, Bounds: layoutmodel.Bounds(out)}
	return widenForTextOverflow(result, eng, cfg)
}

// collectSeqParticipants gathers participants in first-appearance order:
// explicit declarations first (in declared order), then implicit
// discoveries from message endpoints and note targets, walked recursively
// into fragment sections (§4.2.1).
func collectSeqParticipants(diagram *ast.Diagram) []*seqParticipant {
	seen := make(map[string]bool)
	var result []*seqParticipant
	for _, stmt := range diagram.Statements {
		if p, ok := stmt.(*ast.Participant); ok {
			id := p.ID()
			if !seen[id] {
				seen[id] = true
				result = append(result, &seqParticipant{id: id, name: p.Name, alias: p.Alias, kind: p.Kind, box: p.Box})
			}
		}
	}
	walkSeqStatements(diagram.Statements, func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.Message:
			for _, name := range []string{s.From, s.To} {
				if name != "" && !seen[name] {
					seen[name] = true
					result = append(result, &seqParticipant{id: name, name: name, kind: ast.ParticipantDefault})
				}
			}
		case *ast.Note:
			for _, name := range s.Targets {
				if name != "" && !seen[name] {
					seen[name] = true
					result = append(result, &seqParticipant{id: name, name: name, kind: ast.ParticipantDefault})
				}
			}
		}
	})
	return result
}

// walkSeqStatements visits every statement reachable from stmts, recursing
// into fragment sections (the only nesting construct sequence diagrams
// have — box membership is already flattened onto Participant.Box by the
// parser).
func walkSeqStatements(stmts []ast.Statement, visit func(ast.Statement)) {
	for _, stmt := range stmts {
		visit(stmt)
		if f, ok := stmt.(*ast.Fragment); ok {
			for _, sec := range f.Sections {
				walkSeqStatements(sec.Statements, visit)
			}
		}
	}
}

func collectSeqBoxes(diagram *ast.Diagram) []*ast.Box {
	var boxes []*ast.Box
	for _, stmt := range diagram.Statements {
		if b, ok := stmt.(*ast.Box); ok {
			boxes = append(boxes, b)
		}
	}
	return boxes
}

// placeSeqParticipants computes widths and the 1-D packing of gaps between
// consecutive participants, driven by message span groups (§4.2.1).
func placeSeqParticipants(participants []*seqParticipant, diagram *ast.Diagram, cfg Config) {
	pos := make(map[string]int, len(participants))
	for i, p := range participants {
		display := p.name
		if p.alias != "" {
			display = p.alias
		}
		size := textSize(cfg, display)
		p.width = size.Width + cfg.ParticipantPadX*2
		if p.width < cfg.ParticipantMinWidth {
			p.width = cfg.ParticipantMinWidth
		}
		p.height = size.Height + cfg.ParticipantPadY*2
		pos[p.id] = i
	}
	nameToID := make(map[string]string, len(participants)*2)
	for _, p := range participants {
		nameToID[p.name] = p.id
		if p.alias != "" {
			nameToID[p.alias] = p.id
		}
	}

	n := len(participants)
	gaps := make([]float64, max0(n-1))
	direct := make([]bool, max0(n-1))
	for i := range gaps {
		gaps[i] = cfg.MinSpacing
	}

	type spanMsg struct {
		i, j  int // participant positions, i < j
		label string
	}
	bySpan := make(map[int][]spanMsg)
	maxSpan := 0
	walkSeqStatements(diagram.Statements, func(stmt ast.Statement) {
		m, ok := stmt.(*ast.Message)
		if !ok {
			return
		}
		fi, fok := pos[nameToID[m.From]]
		ti, tok := pos[nameToID[m.To]]
		if !fok || !tok || fi == ti {
			return
		}
		i, j := fi, ti
		if i > j {
			i, j = j, i
		}
		span := j - i
		bySpan[span] = append(bySpan[span], spanMsg{i: i, j: j, label: m.Label})
		if span > maxSpan {
			maxSpan = span
		}
	})

	for span := 1; span <= maxSpan; span++ {
		for _, sm := range bySpan[span] {
			textW := textWidth(cfg, sm.label)
			required := textW + cfg.ArrowPadding
			if span == 1 {
				wFrom := participants[sm.i].width
				wTo := participants[sm.j].width
				needed := required - (wFrom+wTo)/2
				if needed < cfg.MinSpacing {
					needed = cfg.MinSpacing
				}
				if needed > gaps[sm.i] {
					gaps[sm.i] = needed
				}
				direct[sm.i] = true
				continue
			}
			current := (participants[sm.i].width)/2 + (participants[sm.j].width)/2
			for k := sm.i; k < sm.j; k++ {
				current += gaps[k]
			}
			for k := sm.i + 1; k < sm.j; k++ {
				current += participants[k].width
			}
			if current < required {
				deficit := required - current
				gaps[sm.i] += deficit
			}
			for k := sm.i; k < sm.j; k++ {
				direct[k] = true
			}
		}
	}
	// Pairs crossed by no direct message can shrink toward a smaller
	// minimum — there is no arrow whose length they must accommodate.
	for i := range gaps {
		if !direct[i] && gaps[i] > 30 {
			gaps[i] = 30
		}
	}

	x := 20.0 // seqLeftMargin
	for i, p := range participants {
		p.x = x
		x += p.width
		if i < len(gaps) {
			x += gaps[i]
		}
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// processStatements walks statements in source order, advancing the
// vertical cursor and appending LayoutElements for each construct (§4.2.2).
func (e *seqEngine) processStatements(stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.Message:
			e.processMessage(s)
		case *ast.Note:
			e.processNote(s)
		case *ast.Fragment:
			e.processFragment(s)
		case *ast.Divider:
			e.processDivider(s)
		case *ast.Delay:
			e.processDelay(s)
		case *ast.Autonumber:
			e.autonum.apply(s)
		case *ast.Activate:
			e.processActivate(s)
		case *ast.Return:
			e.processReturn(s)
		case *ast.Space:
			h := s.Height
			if h == 0 {
				h = e.cfg.MessageSpacing
			}
			e.currentY += h
		case *ast.Reference:
			e.processReference(s)
		}
	}
}

func (e *seqEngine) activate(participant string, atY float64) {
	depth := len(e.actStacks[participant])
	e.actStacks[participant] = append(e.actStacks[participant], actEntry{level: depth + 1, startY: atY})
}

func (e *seqEngine) deactivate(participant string, atY float64) {
	stack := e.actStacks[participant]
	if len(stack) == 0 {
		return
	}
	entry := stack[len(stack)-1]
	e.actStacks[participant] = stack[:len(stack)-1]
	e.completed = append(e.completed, completedActivation{participant: participant, level: entry.level, startY: entry.startY, endY: atY})
}

func (e *seqEngine) processActivate(a *ast.Activate) {
	switch a.Kind {
	case ast.ActivateOn:
		e.activate(a.Target, e.currentY)
	case ast.ActivateOff, ast.ActivateDestroy:
		e.deactivate(a.Target, e.currentY)
	}
}

func (e *seqEngine) processReturn(r *ast.Return) {
	if len(e.callStack) == 0 {
		return
	}
	top := e.callStack[len(e.callStack)-1]
	e.callStack = e.callStack[:len(e.callStack)-1]
	e.emitMessage(top.callee, top.caller, r.Label, true, ast.ArrowNormal, false, true, false, false, true)
}

// processMessage handles a regular message, including its activation side
// effects and autonumber stamping (§4.2.3-§4.2.5).
func (e *seqEngine) processMessage(m *ast.Message) {
	e.emitMessage(m.From, m.To, m.Label, m.Dashed, m.ArrowType, m.Activate, m.Deactivate, m.Create, m.Destroy, false)
}

// emitMessage draws one message arrow (real or a synthesized return) and
// applies activation/autonumber effects. isReturn suppresses autonumbering
// per §4.2.5 ("on each non-return message").
func (e *seqEngine) emitMessage(from, to, label string, dashed bool, arrowType ast.ArrowHead, activate, deactivate, create, destroy, isReturn bool) {
	fromID := e.resolveID(from)
	toID := e.resolveID(to)
	fp, fok := e.pmap[fromID]
	tp, tok := e.pmap[toID]
	if !fok || !tok {
		return
	}

	self := fromID == toID
	lines := lineCount(label)
	if lines < 1 {
		lines = 1
	}

	var arrowY float64
	var points []geom.Point
	if self {
		arrowY = e.currentY
		const loopWidth, loopHeight = 42.0, 13.0
		points = []geom.Point{
			{X: fp.centerX(), Y: arrowY},
			{X: fp.centerX() + loopWidth, Y: arrowY},
			{X: fp.centerX() + loopWidth, Y: arrowY + loopHeight},
			{X: fp.centerX(), Y: arrowY + loopHeight},
		}
		e.currentY += e.cfg.SelfMessageHeight
	} else {
		consumed := e.cfg.MessageSpacing + float64(lines)*e.lineHeight
		arrowY = e.currentY + consumed
		points = []geom.Point{{X: fp.centerX(), Y: arrowY}, {X: tp.centerX(), Y: arrowY}}
		e.currentY = arrowY
	}

	props := map[string]string{}
	if !isReturn && e.autonum.enabled {
		props["autonumber"] = e.autonum.next()
	}
	if len(props) == 0 {
		props = nil
	}

	bounds := geom.Rect{X: points[0].X, Y: points[0].Y, Width: 1, Height: 1}
	for _, pt := range points[1:] {
		bounds = bounds.Union(geom.Rect{X: pt.X, Y: pt.Y, Width: 1, Height: 1})
	}

	e.elements = append(e.elements, layoutmodel.LayoutElement{
		ID:         e.nextID("message"),
		Kind:       layoutmodel.Edge,
		Bounds:     bounds,
		Text:       label,
		Properties: props,
		EdgePayload: &layoutmodel.EdgePayload{
			Points:     points,
			Label:      label,
			ArrowEnd:   true,
			Dashed:     dashed,
			Kind:       layoutmodel.EdgeMessage,
		},
	})

	if activate {
		e.callStack = append(e.callStack, callEntry{caller: fromID, callee: toID})
		e.activate(toID, arrowY)
	}
	if deactivate {
		e.deactivate(fromID, arrowY)
	}
	if destroy {
		e.deactivate(toID, arrowY)
	}
}

func (e *seqEngine) processNote(n *ast.Note) {
	size := textSize(e.cfg, n.Text)
	h := size.Height + e.cfg.NotePadding*2 + 10
	w := size.Width + e.cfg.NotePadding*2

	startY := e.currentY
	var x float64
	if len(n.Targets) > 0 {
		if p, ok := e.pmap[e.resolveID(n.Targets[0])]; ok {
			switch n.Placement {
			case ast.NoteLeft:
				x = p.centerX() - w - 15
			case ast.NoteRight:
				x = p.centerX() + 15
			default:
				x = p.centerX() - w/2
			}
			if len(n.Targets) > 1 {
				if last, ok := e.pmap[e.resolveID(n.Targets[len(n.Targets)-1])]; ok && n.Placement != ast.NoteLeft && n.Placement != ast.NoteRight {
					x = p.centerX() - w/2
					w = last.centerX() - p.centerX() + w
				}
			}
		}
	}
	e.elements = append(e.elements, layoutmodel.LayoutElement{
		ID:     e.nextID("note"),
		Kind:   layoutmodel.Rectangle,
		Bounds: geom.Rect{X: x, Y: startY, Width: w, Height: size.Height + e.cfg.NotePadding*2},
		Text:   n.Text,
		Rectangle: &layoutmodel.RectanglePayload{Label: n.Text},
	})
	e.currentY += h
}

func (e *seqEngine) processDivider(d *ast.Divider) {
	e.elements = append(e.elements, layoutmodel.LayoutElement{
		ID:     e.nextID("divider"),
		Kind:   layoutmodel.Text,
		Bounds: geom.Rect{X: 0, Y: e.currentY, Width: 1, Height: e.cfg.DividerHeight},
		Text:   d.Text,
	})
	e.currentY += e.cfg.DividerHeight
}

func (e *seqEngine) processDelay(d *ast.Delay) {
	e.elements = append(e.elements, layoutmodel.LayoutElement{
		ID:     e.nextID("delay"),
		Kind:   layoutmodel.Text,
		Bounds: geom.Rect{X: 0, Y: e.currentY, Width: 1, Height: e.cfg.DelayHeight},
		Text:   d.Text,
	})
	e.currentY += e.cfg.DelayHeight
}

func (e *seqEngine) processReference(r *ast.Reference) {
	touched := make(map[string]bool, len(r.Participants))
	for _, name := range r.Participants {
		touched[name] = true
	}
	minX, maxX := e.spanFor(touched)
	startY := e.currentY
	h := e.cfg.FragmentHeaderH + e.cfg.FragmentPadding*2
	e.elements = append(e.elements, layoutmodel.LayoutElement{
		ID:     e.nextID("ref"),
		Kind:   layoutmodel.Fragment,
		Bounds: geom.Rect{X: minX - e.cfg.FragmentPadding, Y: startY, Width: (maxX - minX) + e.cfg.FragmentPadding*2, Height: h},
		Text:   r.Label,
		Fragment: &layoutmodel.FragmentPayload{
			FragmentType: "ref",
			Sections:     []layoutmodel.FragmentSectionSpan{{StartY: startY, EndY: startY + h, Condition: r.Label}},
		},
	})
	e.currentY += h + 15
}

// processFragment frames a combined fragment per §4.2.6, recursing into
// each section's statements through the shared engine state so activation
// and autonumber carry across the frame boundary.
func (e *seqEngine) processFragment(f *ast.Fragment) {
	startY := e.currentY
	e.currentY += e.cfg.FragmentHeaderH + 26

	touched := make(map[string]bool)
	walkSeqStatements(sectionsToStatements(f.Sections), func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.Message:
			touched[s.From] = true
			touched[s.To] = true
		case *ast.Note:
			for _, t := range s.Targets {
				touched[t] = true
			}
		}
	})

	var sections []layoutmodel.FragmentSectionSpan
	for i, sec := range f.Sections {
		secStartY := e.currentY
		e.processStatements(sec.Statements)
		secEndY := e.currentY
		cond := sec.Condition
		if i == 0 && cond == "" {
			cond = f.Condition
		}
		sections = append(sections, layoutmodel.FragmentSectionSpan{StartY: secStartY, EndY: secEndY, Condition: cond})
		if i < len(f.Sections)-1 {
			e.currentY += 43
		}
	}
	e.currentY += e.cfg.FragmentPadding + 5
	endY := e.currentY
	e.currentY += 15

	minX, maxX := e.spanFor(touched)
	fragX := minX - e.cfg.FragmentPadding
	fragW := (maxX - minX) + e.cfg.FragmentPadding*2

	e.elements = append(e.elements, layoutmodel.LayoutElement{
		ID:     e.nextID("fragment"),
		Kind:   layoutmodel.Fragment,
		Bounds: geom.Rect{X: fragX, Y: startY, Width: fragW, Height: endY - startY},
		Text:   fragmentLabel(f.Kind),
		Fragment: &layoutmodel.FragmentPayload{
			FragmentType: fragmentLabel(f.Kind),
			Sections:     sections,
		},
	})
}

func sectionsToStatements(sections []ast.FragmentSection) []ast.Statement {
	var out []ast.Statement
	for _, s := range sections {
		out = append(out, s.Statements...)
	}
	return out
}

// spanFor returns the tight X bounding of the given participant names,
// falling back to the full diagram width when the set is empty (§4.2.6).
func (e *seqEngine) spanFor(touched map[string]bool) (float64, float64) {
	full := func() (float64, float64) {
		if len(e.order) == 0 {
			return 0, 0
		}
		first := e.pmap[e.order[0]]
		last := e.pmap[e.order[len(e.order)-1]]
		return first.x, last.x + last.width
	}
	if len(touched) == 0 {
		return full()
	}
	minX := math.MaxFloat64
	maxX := -math.MaxFloat64
	for name := range touched {
		if name == "" {
			continue
		}
		if p, ok := e.pmap[e.resolveID(name)]; ok {
			if p.x < minX {
				minX = p.x
			}
			if p.x+p.width > maxX {
				maxX = p.x + p.width
			}
		}
	}
	if minX == math.MaxFloat64 {
		return full()
	}
	return minX, maxX
}

func (e *seqEngine) buildParticipantElement(p *seqParticipant, role string) layoutmodel.LayoutElement {
	display := p.name
	if p.alias != "" {
		display = p.alias
	}
	props := map[string]string{"role": role}
	if p.kind != ast.ParticipantDefault {
		props["participant_kind"] = participantKindString(p.kind)
	}
	return layoutmodel.LayoutElement{
		ID:         e.nextID("participant"),
		Kind:       layoutmodel.ParticipantBox,
		Bounds:     geom.Rect{X: p.x, Y: p.y, Width: p.width, Height: p.height},
		Text:       display,
		Properties: props,
		Rectangle:  &layoutmodel.RectanglePayload{Label: display, CornerRadius: 4},
	}
}

func (e *seqEngine) buildBoxElement(b *ast.Box, topY, bottomY float64) layoutmodel.LayoutElement {
	minX := math.MaxFloat64
	maxX := -math.MaxFloat64
	for _, member := range b.Members {
		if p, ok := e.pmap[e.resolveID(member)]; ok {
			if p.x < minX {
				minX = p.x
			}
			if p.x+p.width > maxX {
				maxX = p.x + p.width
			}
		}
	}
	if minX == math.MaxFloat64 {
		minX, maxX = 0, 0
	}
	return layoutmodel.LayoutElement{
		ID:     e.nextID("box"),
		Kind:   layoutmodel.Rectangle,
		Bounds: geom.Rect{X: minX - 10, Y: topY - 5, Width: (maxX - minX) + 20, Height: bottomY - (topY - 5)},
		Text:   b.Title,
		Rectangle: &layoutmodel.RectanglePayload{Label: b.Title},
	}
}

func participantKindString(k ast.ParticipantKind) string {
	switch k {
	case ast.ParticipantActor:
		return "actor"
	case ast.ParticipantBoundary:
		return "boundary"
	case ast.ParticipantControl:
		return "control"
	case ast.ParticipantEntity:
		return "entity"
	case ast.ParticipantDatabase:
		return "database"
	case ast.ParticipantCollections:
		return "collections"
	case ast.ParticipantQueue:
		return "queue"
	default:
		return "participant"
	}
}

func fragmentLabel(kind ast.FragmentKind) string {
	return kind.String()
}

// widenForTextOverflow measures every message label and widens the
// overall bounds when a label would otherwise extend past the current
// right edge (§4.2.7). Participant spacing itself is never recomputed.
func widenForTextOverflow(result layoutmodel.LayoutResult, e *seqEngine, cfg Config) layoutmodel.LayoutResult {
	if result.Bounds.Empty() {
		return result
	}
	maxRight := result.Bounds.Right()
	for _, el := range result.Elements {
		if el.Kind != layoutmodel.Edge || el.EdgePayload == nil || el.Text == "" {
			continue
		}
		textW := textWidth(cfg, el.Text)
		pts := el.EdgePayload.Points
		if len(pts) == 0 {
			continue
		}
		var right float64
		if len(pts) == 4 {
			// self-message loop; overflow measured from the loop's right edge
			right = pts[1].X + 5 + textW
		} else {
			minX := math.Min(pts[0].X, pts[len(pts)-1].X)
			right = minX + 5 + textW
		}
		if right > maxRight {
			maxRight = right
		}
	}
	if maxRight > result.Bounds.Right() {
		overflow := maxRight - result.Bounds.Right() + 5
		result.Bounds.Width += overflow
	}
	return result
}
