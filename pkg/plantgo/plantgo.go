// Package plantgo provides the public library API for rendering PlantUML
// diagrams to SVG.
//
// The primary entry point is Render, which reads PlantUML input and writes
// SVG output:
//
//	err := plantgo.Render(os.Stdin, os.Stdout)
//
// Use options to customize rendering:
//
//	err := plantgo.Render(input, output,
//	    plantgo.WithSkinparam("backgroundColor", "#FFFFFF"),
//	    plantgo.WithFontSize(14),
//	)
//
// For validation without rendering:
//
//	errs := plantgo.Validate(input)
//
// For parsing to an AST:
//
//	diagram, errs := plantgo.Parse(input)
package plantgo

import (
	"fmt"
	"io"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/config"
	"github.com/plantgo/plantgo/internal/layout"
	"github.com/plantgo/plantgo/internal/layoutmodel"
	"github.com/plantgo/plantgo/internal/parser"
	"github.com/plantgo/plantgo/internal/renderer/svg"
	"github.com/plantgo/plantgo/internal/theme"
)

// configFileName is the config file consulted for the lowest-priority
// layer of render defaults, read from the process's working directory.
const configFileName = "plantgo.yaml"

// Diagram is an opaque handle to a parsed PlantUML diagram.
// Obtain one via Parse, then pass it to RenderDiagram.
type Diagram struct {
	internal *ast.Diagram
}

// Error represents a parse or validation error with source position.
type Error struct {
	Line    int
	Column  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Option configures rendering behavior. The core does not require any
// option to be set; every recognized option has a default, and an explicit
// Option always outranks a config-file value. The resulting skinparams
// outrank the theme, which outranks the hardcoded defaults. Skinparam
// directives in the diagram source are parsed but not applied to rendering.
type Option func(*RenderOptions)

// RenderOptions is the façade's flat configuration object (§6.1). Zero
// value is valid: every field defaults to the core's built-in behavior.
type RenderOptions struct {
	Theme            *theme.Theme
	Skinparams       map[string]string
	FontFamily       string
	FontSize         float64
	BaseMargin       float64
	ParticipantWidth float64
}

func newRenderOptions() *RenderOptions {
	return &RenderOptions{Skinparams: make(map[string]string)}
}

// applyConfigDefaults fills o from plantgo.yaml in the working directory,
// the lowest-priority layer in the resolution chain. A missing or
// unreadable file leaves o untouched; an Option applied afterward always
// overrides whatever this sets.
func applyConfigDefaults(o *RenderOptions) {
	d, err := config.Load(configFileName)
	if err != nil {
		return
	}
	if d.FontFamily != "" {
		o.FontFamily = d.FontFamily
	}
	if d.FontSize > 0 {
		o.FontSize = d.FontSize
	}
	if d.BaseMargin > 0 {
		o.BaseMargin = d.BaseMargin
	}
	if d.ParticipantWidth > 0 {
		o.ParticipantWidth = d.ParticipantWidth
	}
	for k, v := range d.Skinparams {
		o.Skinparams[k] = v
	}
}

// WithTheme sets the theme for rendering. If not specified, the Darcula
// theme is used.
func WithTheme(t *theme.Theme) Option {
	return func(o *RenderOptions) { o.Theme = t }
}

// WithSkinparam sets a skinparam override that takes highest priority in
// the property resolution chain.
func WithSkinparam(name, value string) Option {
	return func(o *RenderOptions) { o.Skinparams[name] = value }
}

// WithFontFamily overrides the CSS font-family used in the rendered SVG
// text. Text measurement (spacing, wrapping) is unaffected: the layout
// engines always measure against the embedded sans-serif face.
func WithFontFamily(family string) Option {
	return func(o *RenderOptions) { o.FontFamily = family }
}

// WithFontSize overrides the base font size used by both the layout
// engines (for text measurement) and the renderer.
func WithFontSize(size float64) Option {
	return func(o *RenderOptions) { o.FontSize = size }
}

// WithBaseMargin overrides the outer margin the layout engines reserve
// around diagram content.
func WithBaseMargin(margin float64) Option {
	return func(o *RenderOptions) { o.BaseMargin = margin }
}

// WithParticipantWidth overrides the minimum participant/state/component
// box width the layout engines pack around.
func WithParticipantWidth(width float64) Option {
	return func(o *RenderOptions) { o.ParticipantWidth = width }
}

// Render reads PlantUML from r and writes SVG to w. Options may be
// provided to customize theme, skinparam overrides, and layout tuning.
func Render(r io.Reader, w io.Writer, opts ...Option) error {
	diagram, errs := Parse(r)
	if len(errs) > 0 {
		return errs[0]
	}
	return RenderDiagram(w, diagram, opts...)
}

// RenderDiagram renders a previously parsed diagram to SVG.
func RenderDiagram(w io.Writer, d *Diagram, opts ...Option) error {
	o := newRenderOptions()
	applyConfigDefaults(o)
	for _, opt := range opts {
		opt(o)
	}
	resolver := theme.NewResolver(o.Theme)
	for k, v := range o.Skinparams {
		resolver.SetSkinparam(k, v)
	}
	if o.FontFamily != "" {
		resolver.SetSkinparam("defaultFontName", o.FontFamily)
	}
	if o.FontSize > 0 {
		resolver.SetSkinparam("defaultFontSize", fmt.Sprintf("%d", int(o.FontSize)))
	}

	cfg := layout.DefaultConfig()
	if o.FontSize > 0 {
		cfg.FontSize = o.FontSize
	}
	if o.BaseMargin > 0 {
		cfg.BaseMargin = o.BaseMargin
	}
	if o.ParticipantWidth > 0 {
		cfg.ParticipantMinWidth = o.ParticipantWidth
	}

	var result layoutmodel.LayoutResult
	switch diagramFamily(d.internal) {
	case familyState:
		result = layout.State(d.internal, cfg)
	case familyComponent:
		result = layout.Component(d.internal, cfg)
	default:
		result = layout.Sequence(d.internal, cfg)
	}
	return svg.NewLayoutRenderer(resolver).Render(w, result)
}

// Parse reads PlantUML from r and returns the parsed diagram and any
// errors. Parsing uses error recovery to continue after errors and report
// multiple issues.
func Parse(r io.Reader) (*Diagram, []*Error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, []*Error{{Line: 1, Column: 1, Message: fmt.Sprintf("reading input: %s", err)}}
	}
	diagram, parseErrs := parser.Parse(string(data))
	if len(parseErrs) > 0 {
		errs := make([]*Error, len(parseErrs))
		for i, pe := range parseErrs {
			errs[i] = &Error{Line: pe.Pos.Line, Column: pe.Pos.Column, Message: pe.Message}
		}
		return &Diagram{internal: diagram}, errs
	}
	return &Diagram{internal: diagram}, nil
}

// Validate reads PlantUML from r and returns any parse errors without
// rendering.
func Validate(r io.Reader) []*Error {
	_, errs := Parse(r)
	return errs
}

type diagramFamilyKind int

const (
	familySequence diagramFamilyKind = iota
	familyState
	familyComponent
)

// diagramFamily classifies a parsed diagram by inspecting its top-level
// statements for a family-specific node. Sequence and state signals are
// checked before component, since a component diagram reuses
// ast.Package/ast.Relationship from the class AST (§3.2 SUPPLEMENT) and
// would otherwise be misclassified. A diagram with no family-specific
// statement (including an empty diagram) defaults to sequence, matching the
// parser's own "ambiguous diagrams parse as sequence" rule.
func diagramFamily(d *ast.Diagram) diagramFamilyKind {
	hasComponent := false
	for _, stmt := range d.Statements {
		switch stmt.(type) {
		case *ast.Participant, *ast.Message, *ast.Fragment,
			*ast.Activate, *ast.Return, *ast.Autonumber, *ast.Divider, *ast.Delay:
			return familySequence
		case *ast.State, *ast.Transition, *ast.StateDiagram:
			return familyState
		case *ast.Component:
			hasComponent = true
		}
	}
	if hasComponent {
		return familyComponent
	}
	return familySequence
}
