package parser

import (
	"os"
	"testing"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseComponentDeclaration(t *testing.T) {
	t.Parallel()
	t.Run("KeywordForm", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\ncomponent Gateway\n@enduml")
		require.Empty(t, errs)
		c, ok := diagram.Statements[0].(*ast.Component)
		require.True(t, ok)
		assert.Equal(t, "Gateway", c.Name)
		assert.Equal(t, ast.ComponentDefault, c.Kind)
	})
	t.Run("BracketForm", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\ncomponent Gateway\n[Auth Service]\n@enduml")
		require.Empty(t, errs)
		require.Len(t, diagram.Statements, 2)
		c, ok := diagram.Statements[1].(*ast.Component)
		require.True(t, ok)
		assert.Equal(t, "Auth Service", c.Name)
	})
	t.Run("WithAlias", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\ncomponent \"Billing Service\" as billing\n@enduml")
		require.Empty(t, errs)
		c := diagram.Statements[0].(*ast.Component)
		assert.Equal(t, "Billing Service", c.Name)
		assert.Equal(t, "billing", c.Alias)
		assert.Equal(t, "billing", c.ID())
	})
	t.Run("WithStereotype", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\ncomponent Gateway <<service>>\n@enduml")
		require.Empty(t, errs)
		c := diagram.Statements[0].(*ast.Component)
		assert.Equal(t, "service", c.Stereotype)
	})
	t.Run("Interface", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\ncomponent Gateway\ninterface HTTP\n@enduml")
		require.Empty(t, errs)
		c := diagram.Statements[1].(*ast.Component)
		assert.Equal(t, ast.ComponentInterface, c.Kind)
		assert.Equal(t, "HTTP", c.Name)
	})
	t.Run("Database", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\ncomponent Gateway\ndatabase Store\n@enduml")
		require.Empty(t, errs)
		c := diagram.Statements[1].(*ast.Component)
		assert.Equal(t, ast.ComponentDatabase, c.Kind)
	})
}

func TestParseComponentRelationship(t *testing.T) {
	t.Parallel()
	t.Run("KeywordNames", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\ncomponent Gateway\ncomponent Auth\nGateway --> Auth : calls\n@enduml")
		require.Empty(t, errs)
		require.Len(t, diagram.Statements, 3)
		rel, ok := diagram.Statements[2].(*ast.Relationship)
		require.True(t, ok)
		assert.Equal(t, "Gateway", rel.Left)
		assert.Equal(t, "Auth", rel.Right)
		assert.Equal(t, "calls", rel.Label)
	})
	t.Run("BracketNames", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\ncomponent Gateway\n[Gateway] --> [Auth Service]\n@enduml")
		require.Empty(t, errs)
		rel, ok := diagram.Statements[1].(*ast.Relationship)
		require.True(t, ok)
		assert.Equal(t, "Gateway", rel.Left)
		assert.Equal(t, "Auth Service", rel.Right)
	})
}

func TestParseComponentPackage(t *testing.T) {
	t.Parallel()
	diagram, errs := Parse("@startuml\ncomponent Frontend\npackage backend {\n  component Auth\n  component Billing\n}\n@enduml")
	require.Empty(t, errs)
	require.Len(t, diagram.Statements, 2)
	pkg, ok := diagram.Statements[1].(*ast.Package)
	require.True(t, ok)
	assert.Equal(t, "backend", pkg.Name)
	require.Len(t, pkg.Statements, 2)
	_, ok = pkg.Statements[0].(*ast.Component)
	assert.True(t, ok)
}

func TestParseComponentFixture(t *testing.T) {
	t.Parallel()
	data, err := os.ReadFile("../../testdata/component_basic.puml")
	require.NoError(t, err)
	diagram, errs := Parse(string(data))
	require.Empty(t, errs, "fixture should parse without errors: %v", errs)
	var components, relationships, packages int
	for _, stmt := range diagram.Statements {
		switch stmt.(type) {
		case *ast.Component:
			components++
		case *ast.Relationship:
			relationships++
		case *ast.Package:
			packages++
		}
	}
	assert.GreaterOrEqual(t, components, 1)
	assert.GreaterOrEqual(t, relationships, 1)
	assert.GreaterOrEqual(t, packages, 1)
}
