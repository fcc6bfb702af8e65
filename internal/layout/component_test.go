package layout

import (
	"testing"

	"github.com/plantgo/plantgo/internal/layoutmodel"
	"github.com/plantgo/plantgo/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentDefaultPackageUngrouped(t *testing.T) {
	t.Parallel()
	diagram, errs := parser.Parse("@startuml\ncomponent Frontend\ncomponent Backend\nFrontend --> Backend\n@enduml")
	require.Empty(t, errs)

	result := Component(diagram, DefaultConfig())
	require.NotEmpty(t, result.Elements)

	var names []string
	for _, el := range result.Elements {
		if el.Kind == layoutmodel.Rectangle && el.Rectangle != nil {
			names = append(names, el.Text)
		}
	}
	assert.Contains(t, names, "Frontend")
	assert.Contains(t, names, "Backend")
}

func TestComponentNamedPackageGetsHeaderBox(t *testing.T) {
	t.Parallel()
	src := "@startuml\ncomponent Frontend\npackage backend {\n  component Auth\n  component Billing\n}\n@enduml"
	diagram, errs := parser.Parse(src)
	require.Empty(t, errs)

	result := Component(diagram, DefaultConfig())
	var sawPackageHeader, sawAuth, sawBilling, sawFrontend bool
	for _, el := range result.Elements {
		if el.Text == "backend" && el.Kind == layoutmodel.Rectangle {
			sawPackageHeader = true
		}
		if el.Text == "Auth" {
			sawAuth = true
		}
		if el.Text == "Billing" {
			sawBilling = true
		}
		if el.Text == "Frontend" {
			sawFrontend = true
		}
	}
	assert.True(t, sawPackageHeader, "expected a package header box for backend")
	assert.True(t, sawAuth)
	assert.True(t, sawBilling)
	assert.True(t, sawFrontend)
}

func TestComponentSamePackageRelationshipProducesEdge(t *testing.T) {
	t.Parallel()
	src := "@startuml\npackage backend {\n  component Auth\n  component Billing\n  Auth --> Billing : charges\n}\n@enduml"
	diagram, errs := parser.Parse(src)
	require.Empty(t, errs)

	result := Component(diagram, DefaultConfig())
	found := false
	for _, el := range result.Elements {
		if el.Kind == layoutmodel.Edge && el.EdgePayload != nil && el.EdgePayload.Label == "charges" {
			found = true
		}
	}
	assert.True(t, found, "expected an edge for the same-package relationship")
}

func TestComponentCrossPackageRelationshipExcluded(t *testing.T) {
	t.Parallel()
	src := "@startuml\ncomponent Frontend\npackage backend {\n  component Auth\n}\nFrontend --> Auth : calls\n@enduml"
	diagram, errs := parser.Parse(src)
	require.Empty(t, errs)

	result := Component(diagram, DefaultConfig())
	for _, el := range result.Elements {
		if el.Kind == layoutmodel.Edge && el.EdgePayload != nil {
			assert.NotEqual(t, "calls", el.EdgePayload.Label,
				"a relationship crossing package boundaries should be excluded from layout")
		}
	}
}

func TestComponentInterfaceRenderedAsEllipse(t *testing.T) {
	t.Parallel()
	diagram, errs := parser.Parse("@startuml\ninterface Payments\ncomponent Checkout\nCheckout --> Payments\n@enduml")
	require.Empty(t, errs)

	result := Component(diagram, DefaultConfig())
	var sawInterfaceEllipse, sawComponentRectangle bool
	for _, el := range result.Elements {
		switch {
		case el.Text == "Payments" && el.Kind == layoutmodel.Ellipse:
			sawInterfaceEllipse = true
		case el.Text == "Checkout" && el.Kind == layoutmodel.Rectangle:
			sawComponentRectangle = true
		}
	}
	assert.True(t, sawInterfaceEllipse, "expected the interface to render as an ellipse")
	assert.True(t, sawComponentRectangle, "expected the component to render as a rectangle")
}

func TestComponentEmptyDiagram(t *testing.T) {
	t.Parallel()
	diagram, errs := parser.Parse("@startuml\n@enduml")
	require.Empty(t, errs)
	result := Component(diagram, DefaultConfig())
	assert.Empty(t, result.Elements)
}
