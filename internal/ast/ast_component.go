package ast

import "github.com/plantgo/plantgo/internal/lexer"

// ComponentKind classifies a component diagram node.
type ComponentKind int

const (
	ComponentDefault ComponentKind = iota
	ComponentInterface
	ComponentDatabase
)

// Component represents a component diagram node ("component NAME",
// "interface NAME", or "database NAME"). Grouping into packages and the
// relationships between components reuse Package and Relationship from
// ast_class.go (§3.2 SUPPLEMENT): a component endpoint is just another
// identifier from a Relationship's point of view.
type Component struct {
	Pos        lexer.Pos
	Name       string
	Alias      string
	Kind       ComponentKind
	Stereotype string
}

func (c *Component) Position() lexer.Pos { return c.Pos }
func (c *Component) stmtNode()           {}

// ID returns the component's canonical identifier.
func (c *Component) ID() string {
	if c.Alias != "" {
		return c.Alias
	}
	return c.Name
}
