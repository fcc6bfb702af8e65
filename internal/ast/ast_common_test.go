package ast_test

import (
	"testing"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func TestNoteStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 2, Column: 1}
		n := &ast.Note{Pos: pos, Placement: ast.NoteLeft, Targets: []string{"Foo"}, Text: "hello"}
		var s ast.Statement = n
		assert.Equal(t, pos, s.Position())
	})
	t.Run("MultipleAnchors", func(t *testing.T) {
		t.Parallel()
		n := &ast.Note{Placement: ast.NoteOver, Targets: []string{"A", "B"}, Text: "shared"}
		assert.Len(t, n.Targets, 2)
	})
}

func TestSkinparamStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 3, Column: 1}
		sp := &ast.Skinparam{Pos: pos, Name: "backgroundColor", Value: "#FFF"}
		var s ast.Statement = sp
		assert.Equal(t, pos, s.Position())
	})
}

func TestHideShowStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 4, Column: 1}
		hs := &ast.HideShow{Pos: pos, IsHide: true, Target: "members"}
		var s ast.Statement = hs
		assert.Equal(t, pos, s.Position())
	})
}

func TestNotePositionConstants(t *testing.T) {
	t.Parallel()
	t.Run("Values", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ast.NotePosition(0), ast.NoteLeft)
		assert.Equal(t, ast.NotePosition(1), ast.NoteRight)
		assert.Equal(t, ast.NotePosition(2), ast.NoteOver)
		assert.Equal(t, ast.NotePosition(3), ast.NoteTop)
		assert.Equal(t, ast.NotePosition(4), ast.NoteBottom)
	})
}
