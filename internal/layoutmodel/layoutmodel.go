// Package layoutmodel defines the output contract of the layout engines: a
// flat, ordered list of positioned LayoutElement values plus the overall
// bounds. Renderers consume this instead of walking the AST directly.
package layoutmodel

import "github.com/plantgo/plantgo/internal/geom"

// ElementType tags the kind of a LayoutElement and carries its kind-specific
// payload. At most one of the pointer fields is non-nil for a given Kind;
// InitialState, FinalState, Activation and Text elements carry none.
type ElementType int

const (
	Rectangle ElementType = iota
	Ellipse
	Text
	Edge
	Fragment
	State
	CompositeState
	InitialState
	FinalState
	Activation
	ParticipantBox
)

// String renders the element type's name, used in renderer dispatch and
// diagnostic output.
func (t ElementType) String() string {
	switch t {
	case Rectangle:
		return "rectangle"
	case Ellipse:
		return "ellipse"
	case Text:
		return "text"
	case Edge:
		return "edge"
	case Fragment:
		return "fragment"
	case State:
		return "state"
	case CompositeState:
		return "composite_state"
	case InitialState:
		return "initial_state"
	case FinalState:
		return "final_state"
	case Activation:
		return "activation"
	case ParticipantBox:
		return "participant_box"
	default:
		return "unknown"
	}
}

// EdgeKind classifies the visual treatment of an Edge element (arrowhead
// shape, line decoration), independent of the diagram family it came from.
type EdgeKind int

const (
	EdgeMessage EdgeKind = iota
	EdgeAssociation
	EdgeInheritance
	EdgeRealization
	EdgeComposition
	EdgeAggregation
	EdgeDependency
	EdgeTransition
)

// RectanglePayload is the Rectangle element's kind-specific data: a labeled
// box with optionally rounded corners (participant headers, class boxes,
// component boxes).
type RectanglePayload struct {
	Label        string
	CornerRadius float64
}

// EllipsePayload is the Ellipse element's kind-specific data (state-diagram
// choice/fork markers, when not rendered as InitialState/FinalState).
type EllipsePayload struct {
	Label string
}

// TextPayload is the Text element's kind-specific data: a standalone label
// (titles, headers, footers, fragment condition text).
type TextPayload struct {
	Text     string
	FontSize float64
}

// EdgePayload is the Edge element's kind-specific data: a polyline with an
// optional label and arrowhead/line-style decoration.
type EdgePayload struct {
	Points          []geom.Point
	Label           string
	ArrowStart      bool
	ArrowEnd        bool
	Dashed          bool
	Kind            EdgeKind
	FromCardinality string
	ToCardinality   string
}

// FragmentSectionSpan records one section of a rendered combined-fragment
// frame: its vertical extent and optional guard-condition label.
type FragmentSectionSpan struct {
	StartY    float64
	EndY      float64
	Condition string
}

// FragmentPayload is the Fragment element's kind-specific data: a bordered
// frame (alt/opt/loop/par/...) with one or more labeled sections stacked
// top to bottom in source order.
type FragmentPayload struct {
	FragmentType string
	Sections     []FragmentSectionSpan
}

// StatePayload is the State element's kind-specific data: a simple
// state-diagram node.
type StatePayload struct {
	Name        string
	Description string
}

// CompositeStatePayload is the CompositeState element's kind-specific data:
// a container whose nested elements were laid out by a recursive pass and
// translated into the container's coordinate space.
type CompositeStatePayload struct {
	Name         string
	HeaderHeight float64
}

// LayoutElement is one positioned, renderable unit of a LayoutResult. Id is
// stable and unique within the result; Properties carries free-form
// annotations (e.g. "autonumber") that don't warrant their own field.
type LayoutElement struct {
	ID         string
	Bounds     geom.Rect
	Text       string
	Properties map[string]string
	Kind       ElementType

	Rectangle      *RectanglePayload      `json:",omitempty"`
	Ellipse        *EllipsePayload        `json:",omitempty"`
	TextPayload    *TextPayload           `json:",omitempty"`
	EdgePayload    *EdgePayload           `json:",omitempty"`
	Fragment       *FragmentPayload       `json:",omitempty"`
	State          *StatePayload          `json:",omitempty"`
	CompositeState *CompositeStatePayload `json:",omitempty"`
}

// LayoutResult is the layout engine's output: the ordered elements plus the
// overall bounds (the tight union of all element bounds, optionally widened
// for text overflow).
type LayoutResult struct {
	Elements []LayoutElement
	Bounds   geom.Rect
}

// SubLayoutResult is the recursive-layout output for a composite state's
// body, translated by the caller into the containing CompositeState's frame.
type SubLayoutResult struct {
	Elements []LayoutElement
	Bounds   geom.Rect
}

// Bounds computes the tight union of every element's Bounds, ignoring
// elements with a zero-value (empty) Bounds. Callers widen the result for
// text overflow separately; this only folds geometry already assigned.
func Bounds(elements []LayoutElement) geom.Rect {
	rects := make([]geom.Rect, 0, len(elements))
	for _, e := range elements {
		rects = append(rects, e.Bounds)
	}
	return geom.UnionRects(rects)
}

// Property returns el.Properties[key] and whether it was present, tolerating
// a nil Properties map.
func (el LayoutElement) Property(key string) (string, bool) {
	if el.Properties == nil {
		return "", false
	}
	v, ok := el.Properties[key]
	return v, ok
}

// WithProperty returns a copy of el with key set to value in Properties,
// allocating the map if necessary. The receiver's map is left unchanged.
func (el LayoutElement) WithProperty(key, value string) LayoutElement {
	props := make(map[string]string, len(el.Properties)+1)
	for k, v := range el.Properties {
		props[k] = v
	}
	props[key] = value
	el.Properties = props
	return el
}
