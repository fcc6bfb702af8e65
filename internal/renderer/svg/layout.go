package svg

import (
	"fmt"
	"io"
	"math"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"github.com/plantgo/plantgo/internal/geom"
	"github.com/plantgo/plantgo/internal/layoutmodel"
	"github.com/plantgo/plantgo/internal/theme"
)

// xmlEscaper escapes the characters svgo's Text writes verbatim into a
// <text> element body.
var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escSeq escapes a label for embedding in SVG text content.
func escSeq(s string) string {
	return xmlEscaper.Replace(s)
}

// LayoutRenderer serializes a layoutmodel.LayoutResult to SVG. It never
// walks the AST directly: every diagram family it handles (sequence, state,
// component) funnels through its layout engine first, so rendering here is
// a single generic dispatch over ElementType.
type LayoutRenderer struct {
	resolver *theme.Resolver
}

// NewLayoutRenderer creates a renderer that resolves colors/fonts through
// the given resolver (skinparam -> theme -> hardcoded default).
func NewLayoutRenderer(resolver *theme.Resolver) *LayoutRenderer {
	return &LayoutRenderer{resolver: resolver}
}

// Render writes the positioned elements of result as an SVG document sized
// to result.Bounds, preserving element order (the layout engines emit in
// their required paint order: backgrounds before foreground content).
func (r *LayoutRenderer) Render(w io.Writer, result layoutmodel.LayoutResult) error {
	width := int(result.Bounds.Right()) + 20
	height := int(result.Bounds.Bottom()) + 20
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	canvas := svgo.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", r.resolver.ResolveColor("BackgroundColor")))

	fontSize := r.resolver.ResolveInt("FontSize", 13)
	canvas.Gstyle(fmt.Sprintf("font-family:%s", r.resolver.ResolveColor("FontName")))
	for _, el := range result.Elements {
		r.renderElement(canvas, el, fontSize)
	}
	canvas.Gend()

	canvas.End()
	return nil
}

func (r *LayoutRenderer) renderElement(canvas *svgo.SVG, el layoutmodel.LayoutElement, fontSize int) {
	switch el.Kind {
	case layoutmodel.Rectangle, layoutmodel.ParticipantBox, layoutmodel.Activation:
		r.renderRectangle(canvas, el, fontSize)
	case layoutmodel.Ellipse:
		r.renderEllipse(canvas, el, fontSize)
	case layoutmodel.Text:
		r.renderText(canvas, el, fontSize)
	case layoutmodel.Edge:
		r.renderEdge(canvas, el, fontSize)
	case layoutmodel.Fragment:
		r.renderFragment(canvas, el, fontSize)
	case layoutmodel.State, layoutmodel.CompositeState:
		r.renderState(canvas, el, fontSize)
	case layoutmodel.InitialState:
		r.renderInitialState(canvas, el)
	case layoutmodel.FinalState:
		r.renderFinalState(canvas, el)
	}
}

func (r *LayoutRenderer) renderRectangle(canvas *svgo.SVG, el layoutmodel.LayoutElement, fontSize int) {
	x, y := int(el.Bounds.X), int(el.Bounds.Y)
	w, h := int(el.Bounds.Width), int(el.Bounds.Height)
	fill := r.resolveFill(el.Kind)
	stroke := r.resolver.ResolveColor("ClassBorderColor")
	radius := 0
	if el.Rectangle != nil {
		radius = int(el.Rectangle.CornerRadius)
	}
	style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", fill, stroke)
	if radius > 0 {
		canvas.Roundrect(x, y, w, h, radius, radius, style)
	} else {
		canvas.Rect(x, y, w, h, style)
	}
	if el.Text != "" {
		textColor := r.resolver.ResolveColor("FontColor")
		canvas.Text(x+w/2, y+h/2+fontSize/3, escSeq(el.Text),
			fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:%s", fontSize, textColor))
	}
}

func (r *LayoutRenderer) resolveFill(kind layoutmodel.ElementType) string {
	switch kind {
	case layoutmodel.ParticipantBox:
		return r.resolver.ResolveColor("ParticipantBackgroundColor")
	case layoutmodel.Activation:
		return r.resolver.ResolveColor("ClassBackgroundColor")
	default:
		return r.resolver.ResolveColor("ClassBackgroundColor")
	}
}

func (r *LayoutRenderer) renderEllipse(canvas *svgo.SVG, el layoutmodel.LayoutElement, fontSize int) {
	cx, cy := int(el.Bounds.CenterX()), int(el.Bounds.CenterY())
	rx, ry := int(el.Bounds.Width/2), int(el.Bounds.Height/2)
	fill := r.resolver.ResolveColor("ClassBackgroundColor")
	stroke := r.resolver.ResolveColor("ClassBorderColor")
	canvas.Ellipse(cx, cy, rx, ry, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", fill, stroke))
	if el.Text != "" {
		textColor := r.resolver.ResolveColor("FontColor")
		canvas.Text(cx, cy+fontSize/3, escSeq(el.Text),
			fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:%s", fontSize, textColor))
	}
}

func (r *LayoutRenderer) renderText(canvas *svgo.SVG, el layoutmodel.LayoutElement, fontSize int) {
	size := fontSize
	if el.TextPayload != nil && el.TextPayload.FontSize > 0 {
		size = int(el.TextPayload.FontSize)
	}
	color := r.resolver.ResolveColor("FontColor")
	canvas.Text(int(el.Bounds.X), int(el.Bounds.Y), escSeq(el.Text),
		fmt.Sprintf("font-size:%dpx;fill:%s", size, color))
}

func (r *LayoutRenderer) renderEdge(canvas *svgo.SVG, el layoutmodel.LayoutElement, fontSize int) {
	if el.EdgePayload == nil || len(el.EdgePayload.Points) < 2 {
		return
	}
	pts := el.EdgePayload.Points
	color := r.resolver.ResolveColor("ArrowColor")
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", color)
	if el.EdgePayload.Dashed {
		style += ";stroke-dasharray:5,5"
	}
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = int(p.X), int(p.Y)
	}
	canvas.Polyline(xs, ys, style)
	if el.EdgePayload.ArrowEnd {
		r.renderArrowhead(canvas, pts[len(pts)-2], pts[len(pts)-1], color)
	}
	if el.EdgePayload.ArrowStart {
		r.renderArrowhead(canvas, pts[1], pts[0], color)
	}
	if el.EdgePayload.Label != "" {
		midX := (pts[0].X + pts[len(pts)-1].X) / 2
		midY := (pts[0].Y+pts[len(pts)-1].Y)/2 - 5
		textColor := r.resolver.ResolveColor("FontColor")
		canvas.Text(int(midX), int(midY), escSeq(el.EdgePayload.Label),
			fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:%s", fontSize, textColor))
	}
}

func (r *LayoutRenderer) renderArrowhead(canvas *svgo.SVG, from, to geom.Point, color string) {
	const size = 8.0
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	x1 := to.X - size*math.Cos(angle-0.4)
	y1 := to.Y - size*math.Sin(angle-0.4)
	x2 := to.X - size*math.Cos(angle+0.4)
	y2 := to.Y - size*math.Sin(angle+0.4)
	xs := []int{int(to.X), int(x1), int(x2)}
	ys := []int{int(to.Y), int(y1), int(y2)}
	canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s", color))
}

func (r *LayoutRenderer) renderFragment(canvas *svgo.SVG, el layoutmodel.LayoutElement, fontSize int) {
	x, y := int(el.Bounds.X), int(el.Bounds.Y)
	w, h := int(el.Bounds.Width), int(el.Bounds.Height)
	stroke := r.resolver.ResolveColor("ClassBorderColor")
	canvas.Rect(x, y, w, h, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", stroke))
	if el.Fragment == nil {
		return
	}
	labelColor := r.resolver.ResolveColor("FontColor")
	canvas.Text(x+5, y+14, escSeq(el.Fragment.FragmentType),
		fmt.Sprintf("font-weight:bold;font-size:%dpx;fill:%s", fontSize, labelColor))
	for i, section := range el.Fragment.Sections {
		if i > 0 {
			canvas.Line(x, int(section.StartY), x+w, int(section.StartY),
				fmt.Sprintf("stroke:%s;stroke-width:1;stroke-dasharray:4,4", stroke))
		}
		if section.Condition != "" {
			canvas.Text(x+5, int(section.StartY)+14, escSeq("["+section.Condition+"]"),
				fmt.Sprintf("font-size:%dpx;fill:%s", fontSize-2, labelColor))
		}
	}
}

func (r *LayoutRenderer) renderState(canvas *svgo.SVG, el layoutmodel.LayoutElement, fontSize int) {
	x, y := int(el.Bounds.X), int(el.Bounds.Y)
	w, h := int(el.Bounds.Width), int(el.Bounds.Height)
	fill := r.resolver.ResolveColor("ClassBackgroundColor")
	stroke := r.resolver.ResolveColor("ClassBorderColor")
	canvas.Roundrect(x, y, w, h, 8, 8, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", fill, stroke))
	textColor := r.resolver.ResolveColor("FontColor")
	if el.Kind == layoutmodel.CompositeState && el.CompositeState != nil {
		headerH := int(el.CompositeState.HeaderHeight)
		canvas.Line(x, y+headerH, x+w, y+headerH, fmt.Sprintf("stroke:%s;stroke-width:1", stroke))
		canvas.Text(x+w/2, y+headerH-6, escSeq(el.Text),
			fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:%s", fontSize, textColor))
		return
	}
	canvas.Text(x+w/2, y+h/2+fontSize/3, escSeq(el.Text),
		fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:%s", fontSize, textColor))
}

func (r *LayoutRenderer) renderInitialState(canvas *svgo.SVG, el layoutmodel.LayoutElement) {
	cx, cy := int(el.Bounds.CenterX()), int(el.Bounds.CenterY())
	radius := int(el.Bounds.Width / 2)
	fill := r.resolver.ResolveColor("FontColor")
	canvas.Circle(cx, cy, radius, fmt.Sprintf("fill:%s", fill))
}

func (r *LayoutRenderer) renderFinalState(canvas *svgo.SVG, el layoutmodel.LayoutElement) {
	cx, cy := int(el.Bounds.CenterX()), int(el.Bounds.CenterY())
	radius := int(el.Bounds.Width / 2)
	stroke := r.resolver.ResolveColor("FontColor")
	canvas.Circle(cx, cy, radius, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1", stroke))
	canvas.Circle(cx, cy, radius-4, fmt.Sprintf("fill:%s", stroke))
}
