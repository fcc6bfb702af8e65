package parser

import (
	"strings"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/plantgo/plantgo/internal/lexer"
)

// parseState handles "state NAME [as ALIAS] [<<stereotype>>] [#color] [{ ... }]"
// and the shorthand "state NAME { ... }" used for composite states.
func (p *Parser) parseState() *ast.State {
	tok := p.advance() // consume 'state'
	name := p.readStateName()
	st := &ast.State{Pos: tok.Pos, Name: name, Kind: ast.StateSimple}
	for {
		switch p.current().Type {
		case lexer.TokenAs:
			p.advance()
			if p.current().Type == lexer.TokenIdent || p.current().Type == lexer.TokenString {
				st.Alias = stripQuotes(p.current().Literal)
				p.advance()
			}
		case lexer.TokenHash:
			p.advance()
			if p.current().Type == lexer.TokenIdent {
				st.Color = "#" + p.current().Literal
				p.advance()
			}
		case lexer.TokenLAngle:
			p.advance()
			if p.current().Type == lexer.TokenLAngle {
				p.advance()
			}
			for p.current().Type != lexer.TokenRAngle && p.current().Type != lexer.TokenNewline && p.current().Type != lexer.TokenEOF {
				p.advance()
			}
			if p.current().Type == lexer.TokenRAngle {
				p.advance()
				if p.current().Type == lexer.TokenRAngle {
					p.advance()
				}
			}
		default:
			goto done
		}
	}
done:
	if p.current().Type == lexer.TokenLBrace {
		st.Kind = ast.StateComposite
		p.parseStateBody(st)
		return st
	}
	p.skipToNextLine()
	return st
}

func (p *Parser) readStateName() string {
	if p.current().Type == lexer.TokenLBracket {
		p.advance()
		if p.current().Type == lexer.TokenStar {
			p.advance()
		}
		if p.current().Type == lexer.TokenRBracket {
			p.advance()
		}
		return "[*]"
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

func (p *Parser) parseStateBody(st *ast.State) {
	p.advance() // consume '{'
	p.skipNewlines()
	for p.current().Type != lexer.TokenRBrace && p.current().Type != lexer.TokenEOF {
		switch p.current().Type {
		case lexer.TokenState:
			st.Substates = append(st.Substates, p.parseState())
		case lexer.TokenLBracket:
			p.parseInternalOrTopTransition(st)
		case lexer.TokenIdent:
			p.parseInternalOrTopTransition(st)
		default:
			p.skipToNextLine()
		}
		p.skipNewlines()
	}
	if p.current().Type == lexer.TokenRBrace {
		p.advance()
	}
	p.skipToNextLine()
}

// parseInternalOrTopTransition handles both a nested transition line
// ("A --> B") and an internal-action line ("Active : entry / doSomething").
func (p *Parser) parseInternalOrTopTransition(st *ast.State) {
	if p.current().Type == lexer.TokenIdent && p.peek().Type == lexer.TokenColon {
		p.advance() // state name (self-reference, already known from st)
		p.advance() // ':'
		text := strings.TrimSpace(p.readRestOfLine())
		word := leadingWord(text)
		action := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(strings.TrimPrefix(text, word)), "/"))
		applyInternalAction(st, word, action)
		return
	}
	tr := p.parseStateTransitionStatement()
	if tr != nil {
		st.InternalTransitions = append(st.InternalTransitions, tr)
	}
}

func applyInternalAction(st *ast.State, label, text string) {
	switch strings.ToLower(label) {
	case "entry":
		st.Entry = text
	case "exit":
		st.Exit = text
	case "do", "do/":
		st.Do = text
	}
}

// parseStateTransitionFromMarker parses a top-level transition whose source
// is the pseudo-state marker "[*]".
func (p *Parser) parseStateTransitionFromMarker() ast.Statement {
	return p.parseStateTransitionStatement()
}

// parseStateTransitionOrStatement parses a top-level "FROM --> TO [: label]"
// line, or an internal-action line "STATE : entry / action" when it appears
// outside a composite body.
func (p *Parser) parseStateTransitionOrStatement() ast.Statement {
	if p.peek().Type == lexer.TokenColon {
		tok := p.current()
		name := tok.Literal
		p.advance()
		p.advance() // ':'
		text := strings.TrimSpace(p.readRestOfLine())
		st := &ast.State{Pos: tok.Pos, Name: name, Kind: ast.StateSimple}
		word := leadingWord(text)
		action := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(strings.TrimPrefix(text, word)), "/"))
		applyInternalAction(st, word, action)
		return st
	}
	return p.parseStateTransitionStatement()
}

// leadingWord returns the first whitespace-delimited word of s, used to
// classify an internal-action line by its "entry"/"exit"/"do" keyword.
func leadingWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (p *Parser) parseStateTransitionStatement() *ast.Transition {
	pos := p.current().Pos
	from := p.readStateName()
	if p.current().Type != lexer.TokenArrow {
		p.addError(p.current().Pos, "expected '-->' in state transition")
		p.skipToNextLine()
		return nil
	}
	p.advance() // consume arrow
	to := p.readStateName()
	tr := &ast.Transition{Pos: pos, From: from, To: to}
	if p.current().Type == lexer.TokenColon {
		p.advance()
		label := strings.TrimSpace(p.readRestOfLine())
		tr.Label = label
		parseTransitionLabel(tr, label)
	} else {
		p.skipToNextLine()
	}
	return tr
}

// parseTransitionLabel splits a "event [guard] / action" label into its
// constituent parts, matching the PlantUML state-transition label grammar.
func parseTransitionLabel(tr *ast.Transition, label string) {
	rest := label
	if idx := strings.Index(rest, "/"); idx >= 0 {
		tr.Action = strings.TrimSpace(rest[idx+1:])
		rest = rest[:idx]
	}
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "[") {
		if end := strings.Index(rest, "]"); end >= 0 {
			tr.Guard = strings.TrimSpace(rest[1:end])
			rest = strings.TrimSpace(rest[end+1:])
		}
	} else if idx := strings.Index(rest, "["); idx >= 0 {
		tr.Event = strings.TrimSpace(rest[:idx])
		if end := strings.Index(rest, "]"); end >= 0 {
			tr.Guard = strings.TrimSpace(rest[idx+1 : end])
		}
		return
	}
	tr.Event = rest
}
