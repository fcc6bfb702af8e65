package ast_test

import (
	"testing"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func TestStateNode(t *testing.T) {
	t.Parallel()
	pos := lexer.Pos{Line: 1, Column: 1}
	s := &ast.State{Pos: pos, Name: "Active", Kind: ast.StateComposite}
	var st ast.Statement = s
	assert.Equal(t, pos, st.Position())
}

func TestStateID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "A", (&ast.State{Name: "Active", Alias: "A"}).ID())
	assert.Equal(t, "Active", (&ast.State{Name: "Active"}).ID())
}

func TestTransitionNode(t *testing.T) {
	t.Parallel()
	pos := lexer.Pos{Line: 2, Column: 1}
	tr := &ast.Transition{Pos: pos, From: "Idle", To: "Running", Label: "start"}
	var st ast.Statement = tr
	assert.Equal(t, pos, st.Position())
}

func TestStateKindConstants(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ast.StateKind(0), ast.StateSimple)
	assert.Equal(t, ast.StateKind(1), ast.StateComposite)
	assert.Equal(t, ast.StateKind(2), ast.StateInitial)
	assert.Equal(t, ast.StateKind(3), ast.StateFinal)
	assert.Equal(t, ast.StateKind(4), ast.StateChoice)
	assert.Equal(t, ast.StateKind(5), ast.StateFork)
	assert.Equal(t, ast.StateKind(6), ast.StateJoin)
	assert.Equal(t, ast.StateKind(7), ast.StateHistory)
	assert.Equal(t, ast.StateKind(8), ast.StateDeepHistory)
}

func TestStateDiagramNode(t *testing.T) {
	t.Parallel()
	pos := lexer.Pos{Line: 1, Column: 1}
	d := &ast.StateDiagram{
		Pos:         pos,
		States:      []*ast.State{{Name: "Idle"}},
		Transitions: []*ast.Transition{{From: "Idle", To: "Running"}},
	}
	var n ast.Node = d
	assert.Equal(t, pos, n.Position())
	assert.Len(t, d.States, 1)
	assert.Len(t, d.Transitions, 1)
}
