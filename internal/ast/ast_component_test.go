package ast_test

import (
	"testing"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func TestComponentNode(t *testing.T) {
	t.Parallel()
	pos := lexer.Pos{Line: 1, Column: 1}
	c := &ast.Component{Pos: pos, Name: "Auth Service", Alias: "auth", Kind: ast.ComponentDefault}
	var s ast.Statement = c
	assert.Equal(t, pos, s.Position())
	assert.Equal(t, "auth", c.ID())
}

func TestComponentIDFallsBackToName(t *testing.T) {
	t.Parallel()
	c := &ast.Component{Name: "Gateway"}
	assert.Equal(t, "Gateway", c.ID())
}

func TestComponentKindConstants(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ast.ComponentKind(0), ast.ComponentDefault)
	assert.Equal(t, ast.ComponentKind(1), ast.ComponentInterface)
	assert.Equal(t, ast.ComponentKind(2), ast.ComponentDatabase)
}

func TestComponentInsidePackage(t *testing.T) {
	t.Parallel()
	pkg := &ast.Package{
		Name: "backend",
		Statements: []ast.Statement{
			&ast.Component{Name: "auth"},
			&ast.Component{Name: "billing"},
		},
	}
	assert.Len(t, pkg.Statements, 2)
}

func TestRelationshipBetweenComponents(t *testing.T) {
	t.Parallel()
	rel := &ast.Relationship{Left: "auth", Right: "billing", Type: ast.RelDependency}
	assert.Equal(t, "auth", rel.Left)
	assert.Equal(t, "billing", rel.Right)
}
