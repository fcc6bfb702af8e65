package parser

import (
	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/lexer"
)

// parseComponent handles "component NAME [as ALIAS] [<<stereotype>>]" and the
// bracket shorthand "[NAME]". "interface" and "database" declarations share
// this production with a different Kind, reusing the class parser's
// tryStereotype for the "<<...>>" suffix.
func (p *Parser) parseComponent(kind ast.ComponentKind) *ast.Component {
	tok := p.advance() // consume 'component'/'interface'/'database'
	name := p.readComponentName()
	c := &ast.Component{Pos: tok.Pos, Name: name, Kind: kind}
	if p.current().Type == lexer.TokenAs {
		p.advance()
		if p.current().Type == lexer.TokenIdent || p.current().Type == lexer.TokenString {
			c.Alias = stripQuotes(p.current().Literal)
			p.advance()
		}
	}
	c.Stereotype = p.tryStereotype()
	p.skipToNextLine()
	return c
}

// parseBracketComponentOrRelationship handles a top-level "[Name]" that may
// either declare an anonymous component or be the left side of a
// relationship ("[Name] --> [Other]").
func (p *Parser) parseBracketComponentOrRelationship() ast.Statement {
	pos := p.current().Pos
	name := p.readComponentName()
	if p.current().Type == lexer.TokenArrow {
		return p.parseRelationship(pos, name, "")
	}
	return &ast.Component{Pos: pos, Name: name, Kind: ast.ComponentDefault}
}

func (p *Parser) readComponentName() string {
	if p.current().Type == lexer.TokenLBracket {
		p.advance()
		var name string
		for p.current().Type != lexer.TokenRBracket && p.current().Type != lexer.TokenNewline && p.current().Type != lexer.TokenEOF {
			if name != "" {
				name += " "
			}
			name += p.current().Literal
			p.advance()
		}
		if p.current().Type == lexer.TokenRBracket {
			p.advance()
		}
		return name
	}
	if p.current().Type == lexer.TokenString {
		name := stripQuotes(p.current().Literal)
		p.advance()
		return name
	}
	if p.current().Type == lexer.TokenIdent {
		name := p.current().Literal
		p.advance()
		return name
	}
	return ""
}
