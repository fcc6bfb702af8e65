package ast_test

import (
	"testing"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/lexer"
	"github.com/stretchr/testify/assert"
)

func TestParticipantStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 2, Column: 1}
		p := &ast.Participant{Pos: pos, Name: "Alice", Kind: ast.ParticipantDefault}
		var s ast.Statement = p
		assert.Equal(t, pos, s.Position())
	})
	t.Run("IDPrefersAlias", func(t *testing.T) {
		t.Parallel()
		p := &ast.Participant{Name: "Display Name", Alias: "A"}
		assert.Equal(t, "A", p.ID())
		p2 := &ast.Participant{Name: "Bob"}
		assert.Equal(t, "Bob", p2.ID())
	})
}

func TestBoxStatement(t *testing.T) {
	t.Parallel()
	pos := lexer.Pos{Line: 1, Column: 1}
	b := &ast.Box{Pos: pos, Title: "Internal", Members: []string{"A", "B"}}
	var s ast.Statement = b
	assert.Equal(t, pos, s.Position())
	assert.Equal(t, []string{"A", "B"}, b.Members)
}

func TestMessageStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 3, Column: 1}
		m := &ast.Message{Pos: pos, From: "Alice", To: "Bob"}
		var s ast.Statement = m
		assert.Equal(t, pos, s.Position())
	})
	t.Run("CarriesActivationFlags", func(t *testing.T) {
		t.Parallel()
		m := &ast.Message{From: "Alice", To: "Bob", Activate: true, Create: true, Destroy: true, Deactivate: true}
		assert.True(t, m.Activate)
		assert.True(t, m.Create)
		assert.True(t, m.Destroy)
		assert.True(t, m.Deactivate)
	})
}

func TestFragmentStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 4, Column: 1}
		f := &ast.Fragment{Pos: pos, Kind: ast.FragmentAlt}
		var s ast.Statement = f
		assert.Equal(t, pos, s.Position())
	})
	t.Run("SectionsAreOrdered", func(t *testing.T) {
		t.Parallel()
		f := &ast.Fragment{
			Kind: ast.FragmentAlt,
			Sections: []ast.FragmentSection{
				{Condition: "Success"},
				{Condition: "Failure"},
			},
		}
		assert.Len(t, f.Sections, 2)
		assert.Equal(t, "Success", f.Sections[0].Condition)
		assert.Equal(t, "Failure", f.Sections[1].Condition)
	})
}

func TestActivateStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 5, Column: 1}
		a := &ast.Activate{Pos: pos, Target: "Bob", Kind: ast.ActivateOn}
		var s ast.Statement = a
		assert.Equal(t, pos, s.Position())
	})
}

func TestReturnStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 6, Column: 1}
		r := &ast.Return{Pos: pos, Label: "ok"}
		var s ast.Statement = r
		assert.Equal(t, pos, s.Position())
	})
}

func TestAutonumberStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 7, Column: 1}
		a := &ast.Autonumber{Pos: pos, Command: ast.AutonumberStart}
		var s ast.Statement = a
		assert.Equal(t, pos, s.Position())
	})
	t.Run("StopCarriesNoParams", func(t *testing.T) {
		t.Parallel()
		a := &ast.Autonumber{Command: ast.AutonumberStop}
		assert.Equal(t, 0, a.Start)
		assert.Equal(t, 0, a.Step)
	})
}

func TestDividerStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 8, Column: 1}
		d := &ast.Divider{Pos: pos, Text: "Init"}
		var s ast.Statement = d
		assert.Equal(t, pos, s.Position())
	})
}

func TestDelayStatement(t *testing.T) {
	t.Parallel()
	t.Run("ImplementsStatement", func(t *testing.T) {
		t.Parallel()
		pos := lexer.Pos{Line: 9, Column: 1}
		d := &ast.Delay{Pos: pos}
		var s ast.Statement = d
		assert.Equal(t, pos, s.Position())
	})
}

func TestSpaceStatement(t *testing.T) {
	t.Parallel()
	pos := lexer.Pos{Line: 1, Column: 1}
	sp := &ast.Space{Pos: pos, Height: 20}
	var s ast.Statement = sp
	assert.Equal(t, pos, s.Position())
}

func TestReferenceStatement(t *testing.T) {
	t.Parallel()
	pos := lexer.Pos{Line: 1, Column: 1}
	r := &ast.Reference{Pos: pos, Label: "see other diagram", Participants: []string{"A"}}
	var s ast.Statement = r
	assert.Equal(t, pos, s.Position())
}

func TestParticipantKindConstants(t *testing.T) {
	t.Parallel()
	t.Run("Values", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ast.ParticipantKind(0), ast.ParticipantDefault)
		assert.Equal(t, ast.ParticipantKind(1), ast.ParticipantActor)
		assert.Equal(t, ast.ParticipantKind(2), ast.ParticipantBoundary)
		assert.Equal(t, ast.ParticipantKind(3), ast.ParticipantControl)
		assert.Equal(t, ast.ParticipantKind(4), ast.ParticipantEntity)
		assert.Equal(t, ast.ParticipantKind(5), ast.ParticipantDatabase)
		assert.Equal(t, ast.ParticipantKind(6), ast.ParticipantCollections)
		assert.Equal(t, ast.ParticipantKind(7), ast.ParticipantQueue)
	})
}

func TestFragmentKindString(t *testing.T) {
	t.Parallel()
	cases := []struct {
		kind ast.FragmentKind
		want string
	}{
		{ast.FragmentAlt, "alt"},
		{ast.FragmentOpt, "opt"},
		{ast.FragmentLoop, "loop"},
		{ast.FragmentPar, "par"},
		{ast.FragmentBreak, "break"},
		{ast.FragmentCritical, "critical"},
		{ast.FragmentRef, "ref"},
		{ast.FragmentGroup, "group"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.kind.String())
		})
	}
}
